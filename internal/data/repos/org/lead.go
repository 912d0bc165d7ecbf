package org

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/statera-app/statera-backend/internal/data/dberr"
	types "github.com/statera-app/statera-backend/internal/domain"
	"github.com/statera-app/statera-backend/internal/platform/logger"
)

type LeadRepo interface {
	Create(ctx context.Context, tx *gorm.DB, lead *types.Lead) (*types.Lead, error)
	List(ctx context.Context, tx *gorm.DB, status string, limit int) ([]*types.Lead, error)
	UpdateStatus(ctx context.Context, tx *gorm.DB, leadID uuid.UUID, status string) error
}

type leadRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewLeadRepo(db *gorm.DB, baseLog *logger.Logger) LeadRepo {
	return &leadRepo{db: db, log: baseLog.With("repo", "LeadRepo")}
}

func (lr *leadRepo) Create(ctx context.Context, tx *gorm.DB, lead *types.Lead) (*types.Lead, error) {
	transaction := tx
	if transaction == nil {
		transaction = lr.db
	}
	if err := transaction.WithContext(ctx).Create(lead).Error; err != nil {
		return nil, dberr.Map(err)
	}
	return lead, nil
}

func (lr *leadRepo) List(ctx context.Context, tx *gorm.DB, status string, limit int) ([]*types.Lead, error) {
	transaction := tx
	if transaction == nil {
		transaction = lr.db
	}
	q := transaction.WithContext(ctx).Model(&types.Lead{}).Order("created_at DESC")
	if status != "" {
		q = q.Where("status = ?", status)
	}
	if limit > 0 {
		q = q.Limit(limit)
	}
	var results []*types.Lead
	if err := q.Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (lr *leadRepo) UpdateStatus(ctx context.Context, tx *gorm.DB, leadID uuid.UUID, status string) error {
	transaction := tx
	if transaction == nil {
		transaction = lr.db
	}
	return transaction.WithContext(ctx).
		Model(&types.Lead{}).
		Where("id = ?", leadID).
		Update("status", status).Error
}
