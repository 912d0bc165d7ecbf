package billing

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/statera-app/statera-backend/internal/domain"
	"github.com/statera-app/statera-backend/internal/platform/logger"
)

type PlanRepo interface {
	Create(ctx context.Context, tx *gorm.DB, plans []*types.Plan) ([]*types.Plan, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, planIDs []uuid.UUID) ([]*types.Plan, error)
	List(ctx context.Context, tx *gorm.DB) ([]*types.Plan, error)
}

type planRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPlanRepo(db *gorm.DB, baseLog *logger.Logger) PlanRepo {
	return &planRepo{db: db, log: baseLog.With("repo", "PlanRepo")}
}

func (pr *planRepo) Create(ctx context.Context, tx *gorm.DB, plans []*types.Plan) ([]*types.Plan, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}
	if len(plans) == 0 {
		return []*types.Plan{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&plans).Error; err != nil {
		return nil, err
	}
	return plans, nil
}

func (pr *planRepo) GetByIDs(ctx context.Context, tx *gorm.DB, planIDs []uuid.UUID) ([]*types.Plan, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}
	var results []*types.Plan
	if len(planIDs) == 0 {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Where("id IN ?", planIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (pr *planRepo) List(ctx context.Context, tx *gorm.DB) ([]*types.Plan, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}
	var results []*types.Plan
	if err := transaction.WithContext(ctx).
		Order("amount ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
