package announce

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/statera-app/statera-backend/internal/domain"
	"github.com/statera-app/statera-backend/internal/platform/logger"
)

type AnnouncementRepo interface {
	Create(ctx context.Context, tx *gorm.DB, anns []*types.Announcement) ([]*types.Announcement, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, annIDs []uuid.UUID) ([]*types.Announcement, error)

	// MarkSent performs the conditional one-way transition and reports how
	// many rows it touched (0 when sent_at was already set).
	MarkSent(ctx context.Context, tx *gorm.DB, annID uuid.UUID, at time.Time) (int64, error)

	AttachOrganizations(ctx context.Context, tx *gorm.DB, annID uuid.UUID, orgIDs []uuid.UUID) error
	AttachGroups(ctx context.Context, tx *gorm.DB, annID uuid.UUID, groupIDs []uuid.UUID) error
	ListOrganizationIDs(ctx context.Context, tx *gorm.DB, annID uuid.UUID) ([]uuid.UUID, error)
	ListGroupIDs(ctx context.Context, tx *gorm.DB, annID uuid.UUID) ([]uuid.UUID, error)

	EnsureMemberPivots(ctx context.Context, tx *gorm.DB, annID uuid.UUID, memberIDs []uuid.UUID) error
	SetMemberNotified(ctx context.Context, tx *gorm.DB, annID, memberID uuid.UUID, at time.Time) error
	ListPendingMemberIDs(ctx context.Context, tx *gorm.DB, annID uuid.UUID) ([]uuid.UUID, error)
	ListNotifiedMemberIDs(ctx context.Context, tx *gorm.DB, annID uuid.UUID) ([]uuid.UUID, error)
}

type announcementRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewAnnouncementRepo(db *gorm.DB, baseLog *logger.Logger) AnnouncementRepo {
	return &announcementRepo{db: db, log: baseLog.With("repo", "AnnouncementRepo")}
}

func (ar *announcementRepo) Create(ctx context.Context, tx *gorm.DB, anns []*types.Announcement) ([]*types.Announcement, error) {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}
	if len(anns) == 0 {
		return []*types.Announcement{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&anns).Error; err != nil {
		return nil, err
	}
	return anns, nil
}

func (ar *announcementRepo) GetByIDs(ctx context.Context, tx *gorm.DB, annIDs []uuid.UUID) ([]*types.Announcement, error) {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}
	var results []*types.Announcement
	if len(annIDs) == 0 {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Where("id IN ?", annIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (ar *announcementRepo) MarkSent(ctx context.Context, tx *gorm.DB, annID uuid.UUID, at time.Time) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}
	res := transaction.WithContext(ctx).
		Model(&types.Announcement{}).
		Where("id = ? AND sent_at IS NULL", annID).
		Update("sent_at", at)
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}

func (ar *announcementRepo) AttachOrganizations(ctx context.Context, tx *gorm.DB, annID uuid.UUID, orgIDs []uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}
	if len(orgIDs) == 0 {
		return nil
	}
	rows := make([]types.AnnouncementOrganization, 0, len(orgIDs))
	for _, orgID := range orgIDs {
		rows = append(rows, types.AnnouncementOrganization{AnnouncementID: annID, OrganizationID: orgID})
	}
	return transaction.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&rows).Error
}

func (ar *announcementRepo) AttachGroups(ctx context.Context, tx *gorm.DB, annID uuid.UUID, groupIDs []uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}
	if len(groupIDs) == 0 {
		return nil
	}
	rows := make([]types.AnnouncementGroup, 0, len(groupIDs))
	for _, groupID := range groupIDs {
		rows = append(rows, types.AnnouncementGroup{AnnouncementID: annID, GroupID: groupID})
	}
	return transaction.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&rows).Error
}

func (ar *announcementRepo) ListOrganizationIDs(ctx context.Context, tx *gorm.DB, annID uuid.UUID) ([]uuid.UUID, error) {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}
	var ids []uuid.UUID
	if err := transaction.WithContext(ctx).
		Model(&types.AnnouncementOrganization{}).
		Where("announcement_id = ?", annID).
		Pluck("organization_id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

func (ar *announcementRepo) ListGroupIDs(ctx context.Context, tx *gorm.DB, annID uuid.UUID) ([]uuid.UUID, error) {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}
	var ids []uuid.UUID
	if err := transaction.WithContext(ctx).
		Model(&types.AnnouncementGroup{}).
		Where("announcement_id = ?", annID).
		Pluck("group_id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

func (ar *announcementRepo) EnsureMemberPivots(ctx context.Context, tx *gorm.DB, annID uuid.UUID, memberIDs []uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}
	if len(memberIDs) == 0 {
		return nil
	}
	rows := make([]types.AnnouncementMember, 0, len(memberIDs))
	for _, memberID := range memberIDs {
		rows = append(rows, types.AnnouncementMember{AnnouncementID: annID, MemberID: memberID})
	}
	return transaction.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&rows).Error
}

func (ar *announcementRepo) SetMemberNotified(ctx context.Context, tx *gorm.DB, annID, memberID uuid.UUID, at time.Time) error {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}
	return transaction.WithContext(ctx).
		Model(&types.AnnouncementMember{}).
		Where("announcement_id = ? AND member_id = ?", annID, memberID).
		Update("notified_at", at).Error
}

func (ar *announcementRepo) ListPendingMemberIDs(ctx context.Context, tx *gorm.DB, annID uuid.UUID) ([]uuid.UUID, error) {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}
	var ids []uuid.UUID
	if err := transaction.WithContext(ctx).
		Model(&types.AnnouncementMember{}).
		Where("announcement_id = ? AND notified_at IS NULL", annID).
		Pluck("member_id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

func (ar *announcementRepo) ListNotifiedMemberIDs(ctx context.Context, tx *gorm.DB, annID uuid.UUID) ([]uuid.UUID, error) {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}
	var ids []uuid.UUID
	if err := transaction.WithContext(ctx).
		Model(&types.AnnouncementMember{}).
		Where("announcement_id = ? AND notified_at IS NOT NULL", annID).
		Pluck("member_id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}
