package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/statera-app/statera-backend/internal/data/dberr"
	"github.com/statera-app/statera-backend/internal/data/repos"
	types "github.com/statera-app/statera-backend/internal/domain"
	"github.com/statera-app/statera-backend/internal/platform/logger"
)

// DispatchJob is one unit of batch-notification work handed to the queue.
type DispatchJob struct {
	AnnouncementID uuid.UUID   `json:"announcement_id"`
	RecipientIDs   []uuid.UUID `json:"recipient_ids"`
}

// DispatchQueue enqueues dispatch work for later execution by a worker.
type DispatchQueue interface {
	Enqueue(ctx context.Context, job DispatchJob) error
}

type AnnouncementService interface {
	Create(ctx context.Context, title, body string, orgIDs, groupIDs []uuid.UUID) (*types.Announcement, error)
	GetByID(ctx context.Context, annID uuid.UUID) (*types.Announcement, error)

	// Dispatch resolves the announcement's audience, filters members already
	// notified, and enqueues the remainder as one batch job.
	Dispatch(ctx context.Context, annID uuid.UUID) (int, error)
}

type announcementService struct {
	db         *gorm.DB
	log        *logger.Logger
	annRepo    repos.AnnouncementRepo
	memberRepo repos.MemberRepo
	queue      DispatchQueue
}

func NewAnnouncementService(
	db *gorm.DB,
	log *logger.Logger,
	annRepo repos.AnnouncementRepo,
	memberRepo repos.MemberRepo,
	queue DispatchQueue,
) AnnouncementService {
	return &announcementService{
		db:         db,
		log:        log.With("service", "AnnouncementService"),
		annRepo:    annRepo,
		memberRepo: memberRepo,
		queue:      queue,
	}
}

func (as *announcementService) Create(ctx context.Context, title, body string, orgIDs, groupIDs []uuid.UUID) (*types.Announcement, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, fmt.Errorf("title required")
	}

	var ann *types.Announcement
	err := as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		created, err := as.annRepo.Create(ctx, tx, []*types.Announcement{{
			Title: title,
			Body:  body,
		}})
		if err != nil {
			return err
		}
		ann = created[0]

		if err := as.annRepo.AttachOrganizations(ctx, tx, ann.ID, orgIDs); err != nil {
			return err
		}
		return as.annRepo.AttachGroups(ctx, tx, ann.ID, groupIDs)
	})
	if err != nil {
		return nil, err
	}
	return ann, nil
}

func (as *announcementService) GetByID(ctx context.Context, annID uuid.UUID) (*types.Announcement, error) {
	found, err := as.annRepo.GetByIDs(ctx, nil, []uuid.UUID{annID})
	if err != nil {
		return nil, err
	}
	if len(found) == 0 {
		return nil, dberr.ErrNotFound
	}
	return found[0], nil
}

func (as *announcementService) Dispatch(ctx context.Context, annID uuid.UUID) (int, error) {
	ann, err := as.GetByID(ctx, annID)
	if err != nil {
		return 0, err
	}

	memberIDs, err := as.resolveAudience(ctx, ann.ID)
	if err != nil {
		return 0, err
	}
	if len(memberIDs) == 0 {
		as.log.Info("announcement has no audience", "announcement_id", ann.ID)
		return 0, nil
	}

	// The batch notifier re-delivers blindly, so the already-notified filter
	// happens here, before enqueueing.
	if err := as.annRepo.EnsureMemberPivots(ctx, nil, ann.ID, memberIDs); err != nil {
		return 0, err
	}
	pending, err := as.annRepo.ListPendingMemberIDs(ctx, nil, ann.ID)
	if err != nil {
		return 0, err
	}
	if len(pending) == 0 {
		as.log.Info("all announcement recipients already notified", "announcement_id", ann.ID)
		return 0, nil
	}

	if err := as.queue.Enqueue(ctx, DispatchJob{AnnouncementID: ann.ID, RecipientIDs: pending}); err != nil {
		return 0, err
	}
	as.log.Info("announcement dispatch enqueued", "announcement_id", ann.ID, "recipients", len(pending))
	return len(pending), nil
}

func (as *announcementService) resolveAudience(ctx context.Context, annID uuid.UUID) ([]uuid.UUID, error) {
	orgIDs, err := as.annRepo.ListOrganizationIDs(ctx, nil, annID)
	if err != nil {
		return nil, err
	}
	groupIDs, err := as.annRepo.ListGroupIDs(ctx, nil, annID)
	if err != nil {
		return nil, err
	}

	seen := map[uuid.UUID]struct{}{}
	var memberIDs []uuid.UUID

	byOrg, err := as.memberRepo.ListByOrganizationIDs(ctx, nil, orgIDs)
	if err != nil {
		return nil, err
	}
	byGroup, err := as.memberRepo.ListByGroupIDs(ctx, nil, groupIDs)
	if err != nil {
		return nil, err
	}
	for _, m := range append(byOrg, byGroup...) {
		if _, ok := seen[m.ID]; ok {
			continue
		}
		seen[m.ID] = struct{}{}
		memberIDs = append(memberIDs, m.ID)
	}
	return memberIDs, nil
}
