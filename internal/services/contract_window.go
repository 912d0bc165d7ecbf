package services

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/statera-app/statera-backend/internal/data/repos"
	types "github.com/statera-app/statera-backend/internal/domain"
	"github.com/statera-app/statera-backend/internal/platform/logger"
)

// ContractWindowSyncService keeps Organization.contract_start/contract_end
// equal to the window of the owner's most recently started subscription.
//
// Two reconcile directions share one diff-guarded write: a subscription write
// fans out to every organization of the owner, an organization write pulls
// for that one organization. A write only happens when the computed window
// differs from the stored one, which is what stops the two directions from
// re-triggering each other. When a user has several subscriptions the
// latest-started one wins on both paths; a subscription write that is not the
// latest-started is ignored.
type ContractWindowSyncService interface {
	OnSubscriptionWritten(ctx context.Context, sub *types.Subscription)
	OnOrganizationWritten(ctx context.Context, o *types.Organization)

	// SyncOrganization applies the owner's authoritative window to one
	// organization; reports whether a write happened.
	SyncOrganization(ctx context.Context, tx *gorm.DB, o *types.Organization) (bool, error)

	// SyncFromSubscription fans the written subscription's window out to the
	// owner's organizations; reports how many were updated.
	SyncFromSubscription(ctx context.Context, tx *gorm.DB, sub *types.Subscription) (int, error)
}

type contractWindowSyncService struct {
	db      *gorm.DB
	log     *logger.Logger
	orgRepo repos.OrganizationRepo
	subRepo repos.SubscriptionRepo
}

func NewContractWindowSyncService(db *gorm.DB, log *logger.Logger, orgRepo repos.OrganizationRepo, subRepo repos.SubscriptionRepo) ContractWindowSyncService {
	return &contractWindowSyncService{
		db:      db,
		log:     log.With("service", "ContractWindowSyncService"),
		orgRepo: orgRepo,
		subRepo: subRepo,
	}
}

func (ws *contractWindowSyncService) OnSubscriptionWritten(ctx context.Context, sub *types.Subscription) {
	if sub == nil {
		ws.log.Warn("subscription hook without payload")
		return
	}
	updated, err := ws.SyncFromSubscription(ctx, nil, sub)
	if err != nil {
		ws.log.Error("contract window push failed", "subscription_id", sub.ID, "user_id", sub.UserID, "error", err)
		return
	}
	ws.log.Debug("contract window push done", "subscription_id", sub.ID, "orgs_updated", updated)
}

func (ws *contractWindowSyncService) OnOrganizationWritten(ctx context.Context, o *types.Organization) {
	if o == nil {
		ws.log.Warn("organization hook without payload")
		return
	}
	changed, err := ws.SyncOrganization(ctx, nil, o)
	if err != nil {
		ws.log.Error("contract window pull failed", "organization_id", o.ID, "user_id", o.UserID, "error", err)
		return
	}
	ws.log.Debug("contract window pull done", "organization_id", o.ID, "changed", changed)
}

func (ws *contractWindowSyncService) SyncFromSubscription(ctx context.Context, tx *gorm.DB, sub *types.Subscription) (int, error) {
	latest, err := ws.subRepo.LatestStartedByUserID(ctx, tx, sub.UserID)
	if err != nil {
		return 0, err
	}
	if latest == nil {
		return 0, nil
	}
	if latest.ID != sub.ID {
		// A stale subscription write must not clobber a newer window.
		ws.log.Debug("subscription is not the latest-started; push skipped",
			"subscription_id", sub.ID, "latest_id", latest.ID)
		return 0, nil
	}

	orgs, err := ws.orgRepo.ListByUserID(ctx, tx, sub.UserID)
	if err != nil {
		return 0, err
	}

	start, end := latest.WindowStart(), latest.WindowEnd()
	updated := 0
	for _, o := range orgs {
		changed, err := ws.applyWindow(ctx, tx, o, start, end)
		if err != nil {
			ws.log.Error("contract window write failed", "organization_id", o.ID, "error", err)
			continue
		}
		if changed {
			updated++
		}
	}
	return updated, nil
}

func (ws *contractWindowSyncService) SyncOrganization(ctx context.Context, tx *gorm.DB, o *types.Organization) (bool, error) {
	latest, err := ws.subRepo.LatestStartedByUserID(ctx, tx, o.UserID)
	if err != nil {
		return false, err
	}
	if latest == nil {
		return false, nil
	}
	return ws.applyWindow(ctx, tx, o, latest.WindowStart(), latest.WindowEnd())
}

// applyWindow is the shared diff-guarded write primitive.
func (ws *contractWindowSyncService) applyWindow(ctx context.Context, tx *gorm.DB, o *types.Organization, start, end *time.Time) (bool, error) {
	if timesEqual(o.ContractStart, start) && timesEqual(o.ContractEnd, end) {
		return false, nil
	}
	if err := ws.orgRepo.UpdateContractWindow(ctx, tx, o.ID, start, end); err != nil {
		return false, err
	}
	o.ContractStart = start
	o.ContractEnd = end
	return true, nil
}

func timesEqual(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Equal(*b)
}
