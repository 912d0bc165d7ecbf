package services

import (
	"context"
	"testing"
	"time"

	"github.com/statera-app/statera-backend/internal/data/repos"
	"github.com/statera-app/statera-backend/internal/data/repos/testutil"
	types "github.com/statera-app/statera-backend/internal/domain"
)

func TestStatusPayloadWithoutSubscription(t *testing.T) {
	ctx := context.Background()
	tx := testutil.Tx(t, testutil.DB(t))
	log := testutil.Logger(t)
	svc := NewBillingService(log, repos.NewSubscriptionRepo(tx, log))

	u := testutil.SeedUser(t, ctx, tx, "no-billing@example.com")

	payload, err := svc.StatusPayload(ctx, u.ID)
	if err != nil {
		t.Fatalf("status payload: %v", err)
	}
	if payload.Status != "none" {
		t.Fatalf("status = %q, want none", payload.Status)
	}
	if payload.Active {
		t.Fatalf("active should be false without a subscription")
	}
}

func TestStatusPayloadAssemblesFields(t *testing.T) {
	ctx := context.Background()
	tx := testutil.Tx(t, testutil.DB(t))
	log := testutil.Logger(t)
	svc := NewBillingService(log, repos.NewSubscriptionRepo(tx, log))

	u := testutil.SeedUser(t, ctx, tx, "billing@example.com")
	plan := testutil.SeedPlan(t, ctx, tx, "Pro", 2900)
	start := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)
	sub := testutil.SeedSubscription(t, ctx, tx, u.ID, &plan.ID, types.SubscriptionStatusActive, &start, &end)
	sub.PaymentBrand = "visa"
	sub.PaymentLast4 = "4242"
	if err := tx.Save(sub).Error; err != nil {
		t.Fatalf("update subscription payment: %v", err)
	}
	inv := testutil.SeedInvoice(t, ctx, tx, sub.ID, 2900)

	payload, err := svc.StatusPayload(ctx, u.ID)
	if err != nil {
		t.Fatalf("status payload: %v", err)
	}
	if payload.Status != types.SubscriptionStatusActive || !payload.Active {
		t.Fatalf("status = %q active=%v, want active/true", payload.Status, payload.Active)
	}
	if payload.PlanName != "Pro" || payload.PlanInterval != "month" || payload.Amount != 2900 || payload.Currency != "usd" {
		t.Fatalf("plan fields wrong: %+v", payload)
	}
	if payload.PaymentLabel != "visa ****4242" {
		t.Fatalf("payment label = %q", payload.PaymentLabel)
	}
	if payload.InvoiceStatus != inv.Status {
		t.Fatalf("invoice status = %q, want %q", payload.InvoiceStatus, inv.Status)
	}
}

func TestHistoryKeepsRealInvoices(t *testing.T) {
	ctx := context.Background()
	tx := testutil.Tx(t, testutil.DB(t))
	log := testutil.Logger(t)
	svc := NewBillingService(log, repos.NewSubscriptionRepo(tx, log))

	u := testutil.SeedUser(t, ctx, tx, "history@example.com")
	plan := testutil.SeedPlan(t, ctx, tx, "Team", 9900)
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	sub := testutil.SeedSubscription(t, ctx, tx, u.ID, &plan.ID, types.SubscriptionStatusActive, &start, nil)
	testutil.SeedInvoice(t, ctx, tx, sub.ID, 9900)
	testutil.SeedInvoice(t, ctx, tx, sub.ID, 9900)

	history, err := svc.History(ctx, u.ID)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(history) != 1 {
		t.Fatalf("history length = %d, want 1", len(history))
	}
	entry := history[0]
	if entry.PlanName != "Team" {
		t.Fatalf("plan name = %q", entry.PlanName)
	}
	if len(entry.Entries) != 2 {
		t.Fatalf("ledger entries = %d, want 2", len(entry.Entries))
	}
	for _, le := range entry.Entries {
		if le.Synthesized {
			t.Fatalf("real invoices must not be marked synthesized")
		}
		if le.InvoiceID == nil {
			t.Fatalf("real ledger entry should carry the invoice id")
		}
	}
}

func TestHistorySynthesizesMissingInvoice(t *testing.T) {
	ctx := context.Background()
	tx := testutil.Tx(t, testutil.DB(t))
	log := testutil.Logger(t)
	svc := NewBillingService(log, repos.NewSubscriptionRepo(tx, log))

	u := testutil.SeedUser(t, ctx, tx, "synth@example.com")
	plan := testutil.SeedPlan(t, ctx, tx, "Starter", 900)
	start := time.Date(2025, 11, 1, 0, 0, 0, 0, time.UTC)
	testutil.SeedSubscription(t, ctx, tx, u.ID, &plan.ID, types.SubscriptionStatusCanceled, &start, nil)

	history, err := svc.History(ctx, u.ID)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(history) != 1 || len(history[0].Entries) != 1 {
		t.Fatalf("want exactly one synthesized entry, got %+v", history)
	}
	le := history[0].Entries[0]
	if !le.Synthesized {
		t.Fatalf("entry should be synthesized")
	}
	if le.InvoiceID != nil {
		t.Fatalf("synthesized entry must not reference an invoice")
	}
	if le.Amount != 900 || le.Currency != "usd" {
		t.Fatalf("synthesized amount/currency = %d/%q", le.Amount, le.Currency)
	}
	if le.Description != "Starter subscription" {
		t.Fatalf("description = %q", le.Description)
	}
	if le.Status != types.InvoiceStatusPaid {
		t.Fatalf("status = %q, want paid", le.Status)
	}
	if le.PaidAt == nil || !le.PaidAt.Equal(start) {
		t.Fatalf("paid_at = %v, want %v", le.PaidAt, start)
	}
}

func TestCurrentPicksActiveSubscription(t *testing.T) {
	ctx := context.Background()
	tx := testutil.Tx(t, testutil.DB(t))
	log := testutil.Logger(t)
	svc := NewBillingService(log, repos.NewSubscriptionRepo(tx, log))

	u := testutil.SeedUser(t, ctx, tx, "current@example.com")
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	testutil.SeedSubscription(t, ctx, tx, u.ID, nil, types.SubscriptionStatusCanceled, &start, nil)
	active := testutil.SeedSubscription(t, ctx, tx, u.ID, nil, types.SubscriptionStatusActive, &start, nil)

	got, err := svc.Current(ctx, u.ID)
	if err != nil {
		t.Fatalf("current: %v", err)
	}
	if got == nil || got.ID != active.ID {
		t.Fatalf("current = %v, want %s", got, active.ID)
	}
}

func TestPaymentLabel(t *testing.T) {
	cases := []struct {
		name string
		sub  types.Subscription
		want string
	}{
		{"stored label wins", types.Subscription{PaymentLabel: "corporate card", PaymentBrand: "visa", PaymentLast4: "4242"}, "corporate card"},
		{"composed from brand and last4", types.Subscription{PaymentBrand: "mastercard", PaymentLast4: "4444"}, "mastercard ****4444"},
		{"brand alone is not enough", types.Subscription{PaymentBrand: "visa"}, ""},
		{"empty", types.Subscription{}, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := paymentLabel(&tc.sub); got != tc.want {
				t.Fatalf("paymentLabel = %q, want %q", got, tc.want)
			}
		})
	}
}
