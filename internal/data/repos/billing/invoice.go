package billing

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/statera-app/statera-backend/internal/domain"
	"github.com/statera-app/statera-backend/internal/platform/logger"
)

type InvoiceRepo interface {
	Create(ctx context.Context, tx *gorm.DB, invoices []*types.Invoice) ([]*types.Invoice, error)
	ListBySubscriptionID(ctx context.Context, tx *gorm.DB, subID uuid.UUID) ([]*types.Invoice, error)
}

type invoiceRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewInvoiceRepo(db *gorm.DB, baseLog *logger.Logger) InvoiceRepo {
	return &invoiceRepo{db: db, log: baseLog.With("repo", "InvoiceRepo")}
}

func (ir *invoiceRepo) Create(ctx context.Context, tx *gorm.DB, invoices []*types.Invoice) ([]*types.Invoice, error) {
	transaction := tx
	if transaction == nil {
		transaction = ir.db
	}
	if len(invoices) == 0 {
		return []*types.Invoice{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&invoices).Error; err != nil {
		return nil, err
	}
	return invoices, nil
}

func (ir *invoiceRepo) ListBySubscriptionID(ctx context.Context, tx *gorm.DB, subID uuid.UUID) ([]*types.Invoice, error) {
	transaction := tx
	if transaction == nil {
		transaction = ir.db
	}
	var results []*types.Invoice
	if err := transaction.WithContext(ctx).
		Where("subscription_id = ?", subID).
		Order("created_at ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
