package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/statera-app/statera-backend/internal/data/dberr"
	"github.com/statera-app/statera-backend/internal/data/repos"
	"github.com/statera-app/statera-backend/internal/data/repos/testutil"
	types "github.com/statera-app/statera-backend/internal/domain"
)

func newSubscriptionService(t *testing.T, tx *gorm.DB) SubscriptionService {
	t.Helper()
	log := testutil.Logger(t)
	subRepo := repos.NewSubscriptionRepo(tx, log)
	windowSync := NewContractWindowSyncService(tx, log, repos.NewOrganizationRepo(tx, log), subRepo)
	return NewSubscriptionService(
		tx,
		log,
		subRepo,
		repos.NewInvoiceRepo(tx, log),
		repos.NewPlanRepo(tx, log),
		windowSync,
	)
}

func TestPurchaseOpensSubscriptionWithInvoice(t *testing.T) {
	ctx := context.Background()
	tx := testutil.Tx(t, testutil.DB(t))
	svc := newSubscriptionService(t, tx)

	u := testutil.SeedUser(t, ctx, tx, "buyer@example.com")
	org := testutil.SeedOrganization(t, ctx, tx, u.ID)
	plan := testutil.SeedPlan(t, ctx, tx, "Pro", 2900)
	start := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)

	sub, err := svc.Purchase(ctx, u.ID, plan.ID, start)
	if err != nil {
		t.Fatalf("purchase: %v", err)
	}
	if sub.Status != types.SubscriptionStatusActive {
		t.Fatalf("status = %q, want active", sub.Status)
	}
	if sub.StartsAt == nil || !sub.StartsAt.Equal(start) {
		t.Fatalf("starts_at = %v, want %v", sub.StartsAt, start)
	}
	wantEnd := start.AddDate(0, 1, 0)
	if sub.EndsAt == nil || !sub.EndsAt.Equal(wantEnd) {
		t.Fatalf("ends_at = %v, want %v", sub.EndsAt, wantEnd)
	}

	var invoices []types.Invoice
	if err := tx.Where("subscription_id = ?", sub.ID).Find(&invoices).Error; err != nil {
		t.Fatalf("load invoices: %v", err)
	}
	if len(invoices) != 1 {
		t.Fatalf("invoices = %d, want 1", len(invoices))
	}
	inv := invoices[0]
	if inv.AmountDue != 2900 || inv.Status != types.InvoiceStatusPaid {
		t.Fatalf("invoice = %+v", inv)
	}
	if inv.Description != "Pro subscription" {
		t.Fatalf("invoice description = %q", inv.Description)
	}

	// The purchase hook pushes the window onto the owner's organizations.
	var gotOrg types.Organization
	if err := tx.First(&gotOrg, "id = ?", org.ID).Error; err != nil {
		t.Fatalf("reload organization: %v", err)
	}
	if gotOrg.ContractStart == nil || !gotOrg.ContractStart.Equal(start) {
		t.Fatalf("contract_start = %v, want %v", gotOrg.ContractStart, start)
	}
}

func TestPurchaseYearlyPlanPeriod(t *testing.T) {
	ctx := context.Background()
	tx := testutil.Tx(t, testutil.DB(t))
	svc := newSubscriptionService(t, tx)

	u := testutil.SeedUser(t, ctx, tx, "annual@example.com")
	plan := &types.Plan{
		ID:       uuid.New(),
		Name:     "Annual",
		Interval: "year",
		Amount:   29900,
		Currency: "usd",
	}
	if err := tx.WithContext(ctx).Create(plan).Error; err != nil {
		t.Fatalf("seed plan: %v", err)
	}
	start := time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)

	sub, err := svc.Purchase(ctx, u.ID, plan.ID, start)
	if err != nil {
		t.Fatalf("purchase: %v", err)
	}
	want := start.AddDate(1, 0, 0)
	if sub.CurrentPeriodEnd == nil || !sub.CurrentPeriodEnd.Equal(want) {
		t.Fatalf("current_period_end = %v, want %v", sub.CurrentPeriodEnd, want)
	}
}

func TestPurchaseUnknownPlan(t *testing.T) {
	ctx := context.Background()
	tx := testutil.Tx(t, testutil.DB(t))
	svc := newSubscriptionService(t, tx)

	u := testutil.SeedUser(t, ctx, tx, "no-plan@example.com")

	_, err := svc.Purchase(ctx, u.ID, uuid.New(), time.Now().UTC())
	if !errors.Is(err, dberr.ErrNotFound) {
		t.Fatalf("err = %v, want not found", err)
	}
}

func TestCancelClosesSubscription(t *testing.T) {
	ctx := context.Background()
	tx := testutil.Tx(t, testutil.DB(t))
	svc := newSubscriptionService(t, tx)

	u := testutil.SeedUser(t, ctx, tx, "cancel@example.com")
	start := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)
	sub := testutil.SeedSubscription(t, ctx, tx, u.ID, nil, types.SubscriptionStatusActive, &start, &end)

	got, err := svc.Cancel(ctx, sub.ID)
	if err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if got.Status != types.SubscriptionStatusCanceled {
		t.Fatalf("status = %q, want canceled", got.Status)
	}
	if got.EndsAt == nil || got.EndsAt.Equal(end) {
		t.Fatalf("ends_at should be moved to cancellation time, got %v", got.EndsAt)
	}
}
