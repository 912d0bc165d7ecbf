package services

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/statera-app/statera-backend/internal/data/repos"
	"github.com/statera-app/statera-backend/internal/data/repos/testutil"
	types "github.com/statera-app/statera-backend/internal/domain"
)

func TestOnNotificationSentRecordsOnce(t *testing.T) {
	ctx := context.Background()
	tx := testutil.Tx(t, testutil.DB(t))
	log := testutil.Logger(t)

	annRepo := repos.NewAnnouncementRepo(tx, log)
	svc := NewDispatchTrackerService(log, annRepo)

	ann := testutil.SeedAnnouncement(t, ctx, tx, "release notes")

	svc.OnNotificationSent(ctx, ann.ID, "members@example.com", "email")

	var got types.Announcement
	if err := tx.First(&got, "id = ?", ann.ID).Error; err != nil {
		t.Fatalf("reload announcement: %v", err)
	}
	if got.SentAt == nil {
		t.Fatalf("sent_at should be set after the first event")
	}
	first := *got.SentAt

	svc.OnNotificationSent(ctx, ann.ID, "members@example.com", "email")

	if err := tx.First(&got, "id = ?", ann.ID).Error; err != nil {
		t.Fatalf("reload announcement: %v", err)
	}
	if got.SentAt == nil || !got.SentAt.Equal(first) {
		t.Fatalf("sent_at moved from %v to %v on a duplicate event", first, got.SentAt)
	}
}

func TestOnNotificationSentNilID(t *testing.T) {
	ctx := context.Background()
	tx := testutil.Tx(t, testutil.DB(t))
	log := testutil.Logger(t)

	ann := testutil.SeedAnnouncement(t, ctx, tx, "unrelated")

	svc := NewDispatchTrackerService(log, repos.NewAnnouncementRepo(tx, log))
	svc.OnNotificationSent(ctx, uuid.Nil, "members@example.com", "email")

	var got types.Announcement
	if err := tx.First(&got, "id = ?", ann.ID).Error; err != nil {
		t.Fatalf("reload announcement: %v", err)
	}
	if got.SentAt != nil {
		t.Fatalf("nil id event must not mark anything sent")
	}
}
