package services

import (
	"context"
	"fmt"
	"sort"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/statera-app/statera-backend/internal/data/repos"
	"github.com/statera-app/statera-backend/internal/data/repos/testutil"
	types "github.com/statera-app/statera-backend/internal/domain"
)

// fakeNotifier records deliveries and fails for a chosen set of members.
type fakeNotifier struct {
	failFor   map[uuid.UUID]bool
	delivered []uuid.UUID
}

func (f *fakeNotifier) Notify(_ context.Context, member *types.Member, _ *types.Announcement) error {
	if f.failFor[member.ID] {
		return fmt.Errorf("delivery refused for %s", member.ID)
	}
	f.delivered = append(f.delivered, member.ID)
	return nil
}

func newBatchNotifier(t *testing.T, tx *gorm.DB, n Notifier) BatchNotifierService {
	t.Helper()
	log := testutil.Logger(t)
	annRepo := repos.NewAnnouncementRepo(tx, log)
	return NewBatchNotifierService(
		tx,
		log,
		annRepo,
		repos.NewMemberRepo(tx, log),
		n,
		NewDispatchTrackerService(log, annRepo),
	)
}

func sortedIDs(ids []uuid.UUID) []uuid.UUID {
	out := append([]uuid.UUID(nil), ids...)
	sort.Slice(out, func(i, j int) bool { return out[i].String() < out[j].String() })
	return out
}

func TestDispatchBatchIsolatesFailures(t *testing.T) {
	ctx := context.Background()
	tx := testutil.Tx(t, testutil.DB(t))
	log := testutil.Logger(t)

	u := testutil.SeedUser(t, ctx, tx, "batch-owner@example.com")
	org := testutil.SeedOrganization(t, ctx, tx, u.ID)
	m1 := testutil.SeedMember(t, ctx, tx, &org.ID, "m1@example.com")
	m2 := testutil.SeedMember(t, ctx, tx, &org.ID, "m2@example.com")
	m3 := testutil.SeedMember(t, ctx, tx, &org.ID, "m3@example.com")
	ann := testutil.SeedAnnouncement(t, ctx, tx, "maintenance window")

	notifier := &fakeNotifier{failFor: map[uuid.UUID]bool{m2.ID: true}}
	svc := newBatchNotifier(t, tx, notifier)

	if err := svc.DispatchBatch(ctx, ann.ID, []uuid.UUID{m1.ID, m2.ID, m3.ID}); err != nil {
		t.Fatalf("dispatch batch: %v", err)
	}

	annRepo := repos.NewAnnouncementRepo(tx, log)
	notified, err := annRepo.ListNotifiedMemberIDs(ctx, tx, ann.ID)
	if err != nil {
		t.Fatalf("list notified: %v", err)
	}
	wantNotified := sortedIDs([]uuid.UUID{m1.ID, m3.ID})
	gotNotified := sortedIDs(notified)
	if len(gotNotified) != 2 || gotNotified[0] != wantNotified[0] || gotNotified[1] != wantNotified[1] {
		t.Fatalf("notified members = %v, want %v", gotNotified, wantNotified)
	}

	pending, err := annRepo.ListPendingMemberIDs(ctx, tx, ann.ID)
	if err != nil {
		t.Fatalf("list pending: %v", err)
	}
	if len(pending) != 1 || pending[0] != m2.ID {
		t.Fatalf("pending members = %v, want [%s]", pending, m2.ID)
	}

	// Partial delivery still counts as a dispatch.
	var got types.Announcement
	if err := tx.First(&got, "id = ?", ann.ID).Error; err != nil {
		t.Fatalf("reload announcement: %v", err)
	}
	if got.SentAt == nil {
		t.Fatalf("sent_at should be set once something was delivered")
	}
}

func TestDispatchBatchAllFailuresLeavesUnsent(t *testing.T) {
	ctx := context.Background()
	tx := testutil.Tx(t, testutil.DB(t))

	u := testutil.SeedUser(t, ctx, tx, "all-fail@example.com")
	org := testutil.SeedOrganization(t, ctx, tx, u.ID)
	m := testutil.SeedMember(t, ctx, tx, &org.ID, "refused@example.com")
	ann := testutil.SeedAnnouncement(t, ctx, tx, "never delivered")

	notifier := &fakeNotifier{failFor: map[uuid.UUID]bool{m.ID: true}}
	svc := newBatchNotifier(t, tx, notifier)

	if err := svc.DispatchBatch(ctx, ann.ID, []uuid.UUID{m.ID}); err != nil {
		t.Fatalf("dispatch batch: %v", err)
	}

	var got types.Announcement
	if err := tx.First(&got, "id = ?", ann.ID).Error; err != nil {
		t.Fatalf("reload announcement: %v", err)
	}
	if got.SentAt != nil {
		t.Fatalf("sent_at must stay unset when nothing was delivered")
	}
}

func TestDispatchBatchUnknownTarget(t *testing.T) {
	ctx := context.Background()
	tx := testutil.Tx(t, testutil.DB(t))

	notifier := &fakeNotifier{}
	svc := newBatchNotifier(t, tx, notifier)

	if err := svc.DispatchBatch(ctx, uuid.New(), []uuid.UUID{uuid.New()}); err != nil {
		t.Fatalf("unknown target should be dropped, got %v", err)
	}
	if len(notifier.delivered) != 0 {
		t.Fatalf("nothing should be delivered for an unknown target")
	}
}

func TestDispatchBatchNoRecipients(t *testing.T) {
	ctx := context.Background()
	tx := testutil.Tx(t, testutil.DB(t))

	ann := testutil.SeedAnnouncement(t, ctx, tx, "empty batch")

	notifier := &fakeNotifier{}
	svc := newBatchNotifier(t, tx, notifier)

	if err := svc.DispatchBatch(ctx, ann.ID, nil); err != nil {
		t.Fatalf("empty batch: %v", err)
	}

	var got types.Announcement
	if err := tx.First(&got, "id = ?", ann.ID).Error; err != nil {
		t.Fatalf("reload announcement: %v", err)
	}
	if got.SentAt != nil {
		t.Fatalf("empty batch must not mark the announcement sent")
	}
}
