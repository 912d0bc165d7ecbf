package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/statera-app/statera-backend/internal/data/repos"
	types "github.com/statera-app/statera-backend/internal/domain"
	"github.com/statera-app/statera-backend/internal/platform/logger"
)

// BillingService is the read side over subscriptions, invoices and plans.
// Nothing here mutates; every field in the assembled payloads defaults
// independently so a missing plan or invoice never fails the view.
type BillingService interface {
	Current(ctx context.Context, userID uuid.UUID) (*types.Subscription, error)
	StatusPayload(ctx context.Context, userID uuid.UUID) (*BillingStatus, error)
	History(ctx context.Context, userID uuid.UUID) ([]*SubscriptionHistory, error)
}

type BillingStatus struct {
	Status           string     `json:"status"`
	Active           bool       `json:"active"`
	PlanName         string     `json:"plan_name"`
	PlanInterval     string     `json:"plan_interval"`
	Amount           int64      `json:"amount"`
	Currency         string     `json:"currency"`
	CurrentPeriodEnd *time.Time `json:"current_period_end,omitempty"`
	PaymentLabel     string     `json:"payment_label"`
	InvoiceStatus    string     `json:"invoice_status"`
	InvoiceHostedURL string     `json:"invoice_hosted_url,omitempty"`
}

type LedgerEntry struct {
	InvoiceID   *uuid.UUID `json:"invoice_id,omitempty"`
	Amount      int64      `json:"amount"`
	Currency    string     `json:"currency"`
	Status      string     `json:"status"`
	Description string     `json:"description"`
	PaidAt      *time.Time `json:"paid_at,omitempty"`
	HostedURL   string     `json:"hosted_url,omitempty"`
	Synthesized bool       `json:"synthesized"`
}

type SubscriptionHistory struct {
	SubscriptionID uuid.UUID     `json:"subscription_id"`
	Status         string        `json:"status"`
	PlanName       string        `json:"plan_name"`
	StartedAt      *time.Time    `json:"started_at,omitempty"`
	EndedAt        *time.Time    `json:"ended_at,omitempty"`
	PaymentLabel   string        `json:"payment_label"`
	Entries        []LedgerEntry `json:"entries"`
}

type billingService struct {
	log     *logger.Logger
	subRepo repos.SubscriptionRepo
}

func NewBillingService(log *logger.Logger, subRepo repos.SubscriptionRepo) BillingService {
	return &billingService{
		log:     log.With("service", "BillingService"),
		subRepo: subRepo,
	}
}

func (bs *billingService) Current(ctx context.Context, userID uuid.UUID) (*types.Subscription, error) {
	return bs.subRepo.ActiveByUserID(ctx, nil, userID)
}

func (bs *billingService) StatusPayload(ctx context.Context, userID uuid.UUID) (*BillingStatus, error) {
	payload := &BillingStatus{Status: "none"}

	sub, err := bs.subRepo.LatestCreatedByUserID(ctx, nil, userID)
	if err != nil {
		return nil, err
	}
	if sub == nil {
		return payload, nil
	}

	if sub.Status != "" {
		payload.Status = sub.Status
	}
	payload.Active = sub.Status == types.SubscriptionStatusActive
	payload.CurrentPeriodEnd = sub.CurrentPeriodEnd
	payload.PaymentLabel = paymentLabel(sub)

	if sub.Plan != nil {
		payload.PlanName = sub.Plan.Name
		payload.PlanInterval = sub.Plan.Interval
		payload.Amount = sub.Plan.Amount
		payload.Currency = sub.Plan.Currency
	}
	if len(sub.Invoices) > 0 {
		first := sub.Invoices[0]
		payload.InvoiceStatus = first.Status
		payload.InvoiceHostedURL = first.HostedURL
	}
	return payload, nil
}

func (bs *billingService) History(ctx context.Context, userID uuid.UUID) ([]*SubscriptionHistory, error) {
	subs, err := bs.subRepo.ListByUserID(ctx, nil, userID)
	if err != nil {
		return nil, err
	}

	history := make([]*SubscriptionHistory, 0, len(subs))
	for _, sub := range subs {
		entry := &SubscriptionHistory{
			SubscriptionID: sub.ID,
			Status:         sub.Status,
			StartedAt:      sub.WindowStart(),
			EndedAt:        sub.WindowEnd(),
			PaymentLabel:   paymentLabel(sub),
		}
		if sub.Plan != nil {
			entry.PlanName = sub.Plan.Name
		}

		if len(sub.Invoices) > 0 {
			for i := range sub.Invoices {
				inv := sub.Invoices[i]
				entry.Entries = append(entry.Entries, LedgerEntry{
					InvoiceID:   &inv.ID,
					Amount:      inv.AmountDue,
					Currency:    inv.Currency,
					Status:      inv.Status,
					Description: inv.Description,
					PaidAt:      inv.PaidAt,
					HostedURL:   inv.HostedURL,
				})
			}
		} else {
			entry.Entries = append(entry.Entries, synthesizeLedgerEntry(sub))
		}
		history = append(history, entry)
	}
	return history, nil
}

// synthesizeLedgerEntry stands in for the invoice a subscription should have
// generated, so the history view is never empty for it.
func synthesizeLedgerEntry(sub *types.Subscription) LedgerEntry {
	entry := LedgerEntry{
		Status:      types.InvoiceStatusPaid,
		PaidAt:      sub.WindowStart(),
		Synthesized: true,
	}
	if sub.Plan != nil {
		entry.Amount = sub.Plan.Amount
		entry.Currency = sub.Plan.Currency
		entry.Description = fmt.Sprintf("%s subscription", sub.Plan.Name)
	}
	return entry
}

func paymentLabel(sub *types.Subscription) string {
	if label := strings.TrimSpace(sub.PaymentLabel); label != "" {
		return label
	}
	brand := strings.TrimSpace(sub.PaymentBrand)
	last4 := strings.TrimSpace(sub.PaymentLast4)
	if brand != "" && last4 != "" {
		return fmt.Sprintf("%s ****%s", brand, last4)
	}
	return ""
}
