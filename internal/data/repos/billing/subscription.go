package billing

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/statera-app/statera-backend/internal/domain"
	"github.com/statera-app/statera-backend/internal/platform/logger"
)

type SubscriptionRepo interface {
	Create(ctx context.Context, tx *gorm.DB, subs []*types.Subscription) ([]*types.Subscription, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, subIDs []uuid.UUID) ([]*types.Subscription, error)
	Update(ctx context.Context, tx *gorm.DB, s *types.Subscription) error

	// LatestStartedByUserID returns the subscription with the greatest start
	// timestamp (legacy column considered when canonical is null); nil when
	// the user has none.
	LatestStartedByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.Subscription, error)

	// LatestCreatedByUserID returns the most recently created subscription
	// regardless of status; nil when the user has none.
	LatestCreatedByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.Subscription, error)

	// ActiveByUserID returns the active subscription with the latest creation
	// timestamp; nil when no active subscription exists.
	ActiveByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.Subscription, error)

	// ListByUserID returns all subscriptions newest first with Plan and
	// Invoices preloaded.
	ListByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.Subscription, error)
}

type subscriptionRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewSubscriptionRepo(db *gorm.DB, baseLog *logger.Logger) SubscriptionRepo {
	return &subscriptionRepo{db: db, log: baseLog.With("repo", "SubscriptionRepo")}
}

func (sr *subscriptionRepo) Create(ctx context.Context, tx *gorm.DB, subs []*types.Subscription) ([]*types.Subscription, error) {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}
	if len(subs) == 0 {
		return []*types.Subscription{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&subs).Error; err != nil {
		return nil, err
	}
	return subs, nil
}

func (sr *subscriptionRepo) GetByIDs(ctx context.Context, tx *gorm.DB, subIDs []uuid.UUID) ([]*types.Subscription, error) {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}
	var results []*types.Subscription
	if len(subIDs) == 0 {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Where("id IN ?", subIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (sr *subscriptionRepo) Update(ctx context.Context, tx *gorm.DB, s *types.Subscription) error {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}
	return transaction.WithContext(ctx).Save(s).Error
}

func (sr *subscriptionRepo) LatestStartedByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.Subscription, error) {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}
	var result types.Subscription
	err := transaction.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("COALESCE(starts_at, subscription_start) DESC NULLS LAST").
		First(&result).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (sr *subscriptionRepo) LatestCreatedByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.Subscription, error) {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}
	var result types.Subscription
	err := transaction.WithContext(ctx).
		Preload("Plan").
		Preload("Invoices", func(q *gorm.DB) *gorm.DB { return q.Order("created_at ASC") }).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		First(&result).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (sr *subscriptionRepo) ActiveByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.Subscription, error) {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}
	var result types.Subscription
	err := transaction.WithContext(ctx).
		Preload("Plan").
		Where("user_id = ? AND status = ?", userID, types.SubscriptionStatusActive).
		Order("created_at DESC").
		First(&result).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (sr *subscriptionRepo) ListByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.Subscription, error) {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}
	var results []*types.Subscription
	if err := transaction.WithContext(ctx).
		Preload("Plan").
		Preload("Invoices", func(q *gorm.DB) *gorm.DB { return q.Order("created_at ASC") }).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
