package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/statera-app/statera-backend/internal/data/repos"
	"github.com/statera-app/statera-backend/internal/platform/logger"
)

// BatchNotifierService delivers one notification per recipient member and
// records delivery on the pivot. Pivot writes share one transaction;
// deliveries run per recipient so one failure cannot take out the rest.
//
// Re-running a batch re-notifies anyone already delivered to: callers are
// expected to filter already-notified members before dispatching.
type BatchNotifierService interface {
	DispatchBatch(ctx context.Context, targetID uuid.UUID, recipientIDs []uuid.UUID) error
}

type batchNotifierService struct {
	db         *gorm.DB
	log        *logger.Logger
	annRepo    repos.AnnouncementRepo
	memberRepo repos.MemberRepo
	notifier   Notifier
	tracker    DispatchTrackerService
}

func NewBatchNotifierService(
	db *gorm.DB,
	log *logger.Logger,
	annRepo repos.AnnouncementRepo,
	memberRepo repos.MemberRepo,
	notifier Notifier,
	tracker DispatchTrackerService,
) BatchNotifierService {
	return &batchNotifierService{
		db:         db,
		log:        log.With("service", "BatchNotifierService"),
		annRepo:    annRepo,
		memberRepo: memberRepo,
		notifier:   notifier,
		tracker:    tracker,
	}
}

func (bs *batchNotifierService) DispatchBatch(ctx context.Context, targetID uuid.UUID, recipientIDs []uuid.UUID) error {
	anns, err := bs.annRepo.GetByIDs(ctx, nil, []uuid.UUID{targetID})
	if err != nil {
		return err
	}
	if len(anns) == 0 {
		bs.log.Warn("dispatch target not found", "announcement_id", targetID)
		return nil
	}
	ann := anns[0]

	members, err := bs.memberRepo.GetByIDs(ctx, nil, recipientIDs)
	if err != nil {
		return err
	}
	if len(members) == 0 {
		bs.log.Info("dispatch batch has no recipients", "announcement_id", targetID)
		return nil
	}

	delivered := 0
	err = bs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		memberIDs := make([]uuid.UUID, 0, len(members))
		for _, m := range members {
			memberIDs = append(memberIDs, m.ID)
		}
		if err := bs.annRepo.EnsureMemberPivots(ctx, tx, ann.ID, memberIDs); err != nil {
			return err
		}

		for _, m := range members {
			if err := bs.notifier.Notify(ctx, m, ann); err != nil {
				bs.log.Error("recipient delivery failed",
					"announcement_id", ann.ID, "member_id", m.ID, "error", err)
				continue
			}
			if err := bs.annRepo.SetMemberNotified(ctx, tx, ann.ID, m.ID, time.Now().UTC()); err != nil {
				bs.log.Error("failed to record recipient delivery",
					"announcement_id", ann.ID, "member_id", m.ID, "error", err)
				continue
			}
			delivered++
		}
		return nil
	})
	if err != nil {
		return err
	}

	bs.log.Info("dispatch batch complete",
		"announcement_id", ann.ID, "recipients", len(members), "delivered", delivered)

	if delivered > 0 {
		bs.tracker.OnNotificationSent(ctx, ann.ID, "batch", ann.Channel)
	}
	return nil
}
