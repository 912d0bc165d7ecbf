package user

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/statera-app/statera-backend/internal/data/repos/testutil"
)

func TestSoftDeleteAndRestore(t *testing.T) {
	ctx := context.Background()
	tx := testutil.Tx(t, testutil.DB(t))
	repo := NewUserRepo(tx, testutil.Logger(t))

	u := testutil.SeedUser(t, ctx, tx, "repo-lifecycle@example.com")

	if err := repo.SoftDelete(ctx, tx, u.ID); err != nil {
		t.Fatalf("soft delete: %v", err)
	}
	found, err := repo.GetByIDs(ctx, tx, []uuid.UUID{u.ID})
	if err != nil {
		t.Fatalf("get after delete: %v", err)
	}
	if len(found) != 0 {
		t.Fatalf("soft-deleted user should be invisible, got %v", found)
	}

	if err := repo.Restore(ctx, tx, u.ID); err != nil {
		t.Fatalf("restore: %v", err)
	}
	found, err = repo.GetByIDs(ctx, tx, []uuid.UUID{u.ID})
	if err != nil {
		t.Fatalf("get after restore: %v", err)
	}
	if len(found) != 1 || found[0].ID != u.ID {
		t.Fatalf("restored user should be visible, got %v", found)
	}
}

func TestGetByEmail(t *testing.T) {
	ctx := context.Background()
	tx := testutil.Tx(t, testutil.DB(t))
	repo := NewUserRepo(tx, testutil.Logger(t))

	u := testutil.SeedUser(t, ctx, tx, "by-email@example.com")

	got, err := repo.GetByEmail(ctx, tx, "by-email@example.com")
	if err != nil {
		t.Fatalf("get by email: %v", err)
	}
	if got.ID != u.ID {
		t.Fatalf("got %s, want %s", got.ID, u.ID)
	}

	_, err = repo.GetByEmail(ctx, tx, "absent@example.com")
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("err = %v, want record not found", err)
	}
}

func TestEmailExists(t *testing.T) {
	ctx := context.Background()
	tx := testutil.Tx(t, testutil.DB(t))
	repo := NewUserRepo(tx, testutil.Logger(t))

	testutil.SeedUser(t, ctx, tx, "exists@example.com")

	exists, err := repo.EmailExists(ctx, tx, "exists@example.com")
	if err != nil {
		t.Fatalf("email exists: %v", err)
	}
	if !exists {
		t.Fatalf("seeded email should exist")
	}
	exists, err = repo.EmailExists(ctx, tx, "missing@example.com")
	if err != nil {
		t.Fatalf("email exists: %v", err)
	}
	if exists {
		t.Fatalf("missing email should not exist")
	}
}
