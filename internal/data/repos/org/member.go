package org

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/statera-app/statera-backend/internal/domain"
	"github.com/statera-app/statera-backend/internal/platform/logger"
)

type MemberRepo interface {
	Create(ctx context.Context, tx *gorm.DB, members []*types.Member) ([]*types.Member, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, memberIDs []uuid.UUID) ([]*types.Member, error)
	ListByOrganizationIDs(ctx context.Context, tx *gorm.DB, orgIDs []uuid.UUID) ([]*types.Member, error)
	ListByGroupIDs(ctx context.Context, tx *gorm.DB, groupIDs []uuid.UUID) ([]*types.Member, error)
}

type memberRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewMemberRepo(db *gorm.DB, baseLog *logger.Logger) MemberRepo {
	return &memberRepo{db: db, log: baseLog.With("repo", "MemberRepo")}
}

func (mr *memberRepo) Create(ctx context.Context, tx *gorm.DB, members []*types.Member) ([]*types.Member, error) {
	transaction := tx
	if transaction == nil {
		transaction = mr.db
	}
	if len(members) == 0 {
		return []*types.Member{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&members).Error; err != nil {
		return nil, err
	}
	return members, nil
}

func (mr *memberRepo) GetByIDs(ctx context.Context, tx *gorm.DB, memberIDs []uuid.UUID) ([]*types.Member, error) {
	transaction := tx
	if transaction == nil {
		transaction = mr.db
	}
	var results []*types.Member
	if len(memberIDs) == 0 {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Where("id IN ?", memberIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (mr *memberRepo) ListByOrganizationIDs(ctx context.Context, tx *gorm.DB, orgIDs []uuid.UUID) ([]*types.Member, error) {
	transaction := tx
	if transaction == nil {
		transaction = mr.db
	}
	var results []*types.Member
	if len(orgIDs) == 0 {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Where("organization_id IN ?", orgIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (mr *memberRepo) ListByGroupIDs(ctx context.Context, tx *gorm.DB, groupIDs []uuid.UUID) ([]*types.Member, error) {
	transaction := tx
	if transaction == nil {
		transaction = mr.db
	}
	var results []*types.Member
	if len(groupIDs) == 0 {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Where("group_id IN ?", groupIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
