package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/statera-app/statera-backend/internal/data/repos"
	"github.com/statera-app/statera-backend/internal/platform/logger"
)

// DispatchTrackerService records the first successful dispatch of an
// announcement. The transition is one-way and keyed by id with a null
// sentinel guard, so duplicate delivery of the sent event is a no-op rather
// than an error.
type DispatchTrackerService interface {
	OnNotificationSent(ctx context.Context, announcementID uuid.UUID, recipient, channel string)
}

type dispatchTrackerService struct {
	log     *logger.Logger
	annRepo repos.AnnouncementRepo
}

func NewDispatchTrackerService(log *logger.Logger, annRepo repos.AnnouncementRepo) DispatchTrackerService {
	return &dispatchTrackerService{
		log:     log.With("service", "DispatchTrackerService"),
		annRepo: annRepo,
	}
}

func (ts *dispatchTrackerService) OnNotificationSent(ctx context.Context, announcementID uuid.UUID, recipient, channel string) {
	if announcementID == uuid.Nil {
		// Events that crossed a queue boundary can arrive without a usable
		// reference; resolving by id is all we have, so drop.
		ts.log.Warn("notification sent event without announcement id", "recipient", recipient, "channel", channel)
		return
	}

	affected, err := ts.annRepo.MarkSent(ctx, nil, announcementID, time.Now().UTC())
	if err != nil {
		ts.log.Error("failed to record dispatch timestamp",
			"announcement_id", announcementID, "recipient", recipient, "channel", channel, "error", err)
		return
	}
	if affected == 0 {
		ts.log.Debug("dispatch timestamp already recorded", "announcement_id", announcementID)
		return
	}
	ts.log.Info("dispatch timestamp recorded",
		"announcement_id", announcementID, "recipient", recipient, "channel", channel)
}
