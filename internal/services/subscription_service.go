package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/statera-app/statera-backend/internal/data/dberr"
	"github.com/statera-app/statera-backend/internal/data/repos"
	types "github.com/statera-app/statera-backend/internal/domain"
	"github.com/statera-app/statera-backend/internal/platform/logger"
)

type SubscriptionService interface {
	// Purchase opens a subscription on a plan and records its first invoice.
	Purchase(ctx context.Context, userID, planID uuid.UUID, startsAt time.Time) (*types.Subscription, error)
	Cancel(ctx context.Context, subID uuid.UUID) (*types.Subscription, error)
}

type subscriptionService struct {
	db          *gorm.DB
	log         *logger.Logger
	subRepo     repos.SubscriptionRepo
	invoiceRepo repos.InvoiceRepo
	planRepo    repos.PlanRepo
	windowSync  ContractWindowSyncService
}

func NewSubscriptionService(
	db *gorm.DB,
	log *logger.Logger,
	subRepo repos.SubscriptionRepo,
	invoiceRepo repos.InvoiceRepo,
	planRepo repos.PlanRepo,
	windowSync ContractWindowSyncService,
) SubscriptionService {
	return &subscriptionService{
		db:          db,
		log:         log.With("service", "SubscriptionService"),
		subRepo:     subRepo,
		invoiceRepo: invoiceRepo,
		planRepo:    planRepo,
		windowSync:  windowSync,
	}
}

func (ss *subscriptionService) Purchase(ctx context.Context, userID, planID uuid.UUID, startsAt time.Time) (*types.Subscription, error) {
	if userID == uuid.Nil {
		return nil, fmt.Errorf("user id required")
	}
	plans, err := ss.planRepo.GetByIDs(ctx, nil, []uuid.UUID{planID})
	if err != nil {
		return nil, err
	}
	if len(plans) == 0 {
		return nil, dberr.ErrNotFound
	}
	plan := plans[0]

	periodEnd := periodEndFor(plan.Interval, startsAt)
	var sub *types.Subscription
	err = ss.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		created, err := ss.subRepo.Create(ctx, tx, []*types.Subscription{{
			UserID:           userID,
			PlanID:           &plan.ID,
			Status:           types.SubscriptionStatusActive,
			StartsAt:         &startsAt,
			EndsAt:           &periodEnd,
			CurrentPeriodEnd: &periodEnd,
		}})
		if err != nil {
			return err
		}
		sub = created[0]

		_, err = ss.invoiceRepo.Create(ctx, tx, []*types.Invoice{{
			SubscriptionID: sub.ID,
			AmountDue:      plan.Amount,
			AmountPaid:     plan.Amount,
			Currency:       plan.Currency,
			Status:         types.InvoiceStatusPaid,
			Description:    fmt.Sprintf("%s subscription", plan.Name),
			PaidAt:         &startsAt,
		}})
		return err
	})
	if err != nil {
		return nil, err
	}

	ss.windowSync.OnSubscriptionWritten(ctx, sub)
	return sub, nil
}

func (ss *subscriptionService) Cancel(ctx context.Context, subID uuid.UUID) (*types.Subscription, error) {
	subs, err := ss.subRepo.GetByIDs(ctx, nil, []uuid.UUID{subID})
	if err != nil {
		return nil, err
	}
	if len(subs) == 0 {
		return nil, dberr.ErrNotFound
	}
	sub := subs[0]

	now := time.Now().UTC()
	sub.Status = types.SubscriptionStatusCanceled
	sub.EndsAt = &now
	if err := ss.subRepo.Update(ctx, nil, sub); err != nil {
		return nil, err
	}

	ss.windowSync.OnSubscriptionWritten(ctx, sub)
	return sub, nil
}

func periodEndFor(interval string, start time.Time) time.Time {
	switch interval {
	case "year":
		return start.AddDate(1, 0, 0)
	default:
		return start.AddDate(0, 1, 0)
	}
}
