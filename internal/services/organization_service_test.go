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

func newOrganizationService(t *testing.T, tx *gorm.DB) OrganizationService {
	t.Helper()
	log := testutil.Logger(t)
	windowSync := NewContractWindowSyncService(
		tx,
		log,
		repos.NewOrganizationRepo(tx, log),
		repos.NewSubscriptionRepo(tx, log),
	)
	return NewOrganizationService(tx, log, repos.NewOrganizationRepo(tx, log), windowSync)
}

func TestOrganizationCreatePullsWindow(t *testing.T) {
	ctx := context.Background()
	tx := testutil.Tx(t, testutil.DB(t))
	svc := newOrganizationService(t, tx)

	u := testutil.SeedUser(t, ctx, tx, "org-create@example.com")
	start := time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)
	testutil.SeedSubscription(t, ctx, tx, u.ID, nil, types.SubscriptionStatusActive, &start, &end)

	org, err := svc.Create(ctx, u.ID, "  Acme  ", "acme")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if org.Name != "Acme" {
		t.Fatalf("name = %q, want trimmed", org.Name)
	}

	var got types.Organization
	if err := tx.First(&got, "id = ?", org.ID).Error; err != nil {
		t.Fatalf("reload organization: %v", err)
	}
	if got.ContractStart == nil || !got.ContractStart.Equal(start) {
		t.Fatalf("contract_start = %v, want %v from owner's subscription", got.ContractStart, start)
	}
	if got.ContractEnd == nil || !got.ContractEnd.Equal(end) {
		t.Fatalf("contract_end = %v, want %v", got.ContractEnd, end)
	}
}

func TestOrganizationRename(t *testing.T) {
	ctx := context.Background()
	tx := testutil.Tx(t, testutil.DB(t))
	svc := newOrganizationService(t, tx)

	u := testutil.SeedUser(t, ctx, tx, "org-rename@example.com")
	org := testutil.SeedOrganization(t, ctx, tx, u.ID)

	renamed, err := svc.Rename(ctx, org.ID, "New Name")
	if err != nil {
		t.Fatalf("rename: %v", err)
	}
	if renamed.Name != "New Name" {
		t.Fatalf("name = %q", renamed.Name)
	}

	if _, err := svc.Rename(ctx, org.ID, "   "); err == nil {
		t.Fatalf("blank name should be rejected")
	}
}

func TestOrganizationGetByIDNotFound(t *testing.T) {
	ctx := context.Background()
	tx := testutil.Tx(t, testutil.DB(t))
	svc := newOrganizationService(t, tx)

	_, err := svc.GetByID(ctx, uuid.New())
	if !errors.Is(err, dberr.ErrNotFound) {
		t.Fatalf("err = %v, want not found", err)
	}
}

func TestOrganizationListByUserID(t *testing.T) {
	ctx := context.Background()
	tx := testutil.Tx(t, testutil.DB(t))
	svc := newOrganizationService(t, tx)

	u := testutil.SeedUser(t, ctx, tx, "org-list@example.com")
	other := testutil.SeedUser(t, ctx, tx, "org-other@example.com")
	a := testutil.SeedOrganization(t, ctx, tx, u.ID)
	b := testutil.SeedOrganization(t, ctx, tx, u.ID)
	testutil.SeedOrganization(t, ctx, tx, other.ID)

	list, err := svc.ListByUserID(ctx, u.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("list = %d organizations, want 2", len(list))
	}
	seen := map[uuid.UUID]bool{}
	for _, o := range list {
		seen[o.ID] = true
	}
	if !seen[a.ID] || !seen[b.ID] {
		t.Fatalf("list missing expected organizations: %v", list)
	}
}
