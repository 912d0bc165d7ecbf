package billing

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	SubscriptionStatusActive   = "active"
	SubscriptionStatusTrialing = "trialing"
	SubscriptionStatusPastDue  = "past_due"
	SubscriptionStatusCanceled = "canceled"
)

const (
	InvoiceStatusPaid = "paid"
	InvoiceStatusOpen = "open"
	InvoiceStatusVoid = "void"
)

// Plan is an immutable catalog entry.
type Plan struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string    `gorm:"not null;column:name" json:"name"`
	Interval    string    `gorm:"not null;column:interval" json:"interval"`
	Amount      int64     `gorm:"not null;column:amount" json:"amount"`
	Currency    string    `gorm:"not null;column:currency" json:"currency"`
	Description string    `gorm:"column:description" json:"description"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}

func (Plan) TableName() string { return "plans" }

func (p *Plan) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

type Subscription struct {
	ID     uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID uuid.UUID  `gorm:"type:uuid;not null;index;column:user_id" json:"user_id"`
	PlanID *uuid.UUID `gorm:"type:uuid;index;column:plan_id" json:"plan_id,omitempty"`
	Status string     `gorm:"not null;default:'active';column:status" json:"status"`

	StartsAt         *time.Time `gorm:"column:starts_at" json:"starts_at,omitempty"`
	EndsAt           *time.Time `gorm:"column:ends_at" json:"ends_at,omitempty"`
	CurrentPeriodEnd *time.Time `gorm:"column:current_period_end" json:"current_period_end,omitempty"`

	// Legacy window columns kept from the pre-migration schema; read as a
	// fallback when the canonical columns are nil.
	SubscriptionStart *time.Time `gorm:"column:subscription_start" json:"-"`
	SubscriptionEnd   *time.Time `gorm:"column:subscription_end" json:"-"`

	PaymentBrand string `gorm:"column:payment_brand" json:"payment_brand"`
	PaymentLast4 string `gorm:"column:payment_last4" json:"payment_last4"`
	PaymentLabel string `gorm:"column:payment_label" json:"payment_label"`

	ExternalRef string `gorm:"index;column:external_ref" json:"external_ref"`

	Plan     *Plan     `gorm:"foreignKey:PlanID" json:"plan,omitempty"`
	Invoices []Invoice `gorm:"foreignKey:SubscriptionID" json:"invoices,omitempty"`

	CreatedAt time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Subscription) TableName() string { return "subscriptions" }

func (s *Subscription) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// WindowStart returns the canonical start, falling back to the legacy column.
func (s *Subscription) WindowStart() *time.Time {
	if s.StartsAt != nil {
		return s.StartsAt
	}
	return s.SubscriptionStart
}

// WindowEnd returns the canonical end, falling back to the legacy column.
func (s *Subscription) WindowEnd() *time.Time {
	if s.EndsAt != nil {
		return s.EndsAt
	}
	return s.SubscriptionEnd
}

type Invoice struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	SubscriptionID uuid.UUID `gorm:"type:uuid;not null;index;column:subscription_id" json:"subscription_id"`
	AmountDue      int64     `gorm:"not null;column:amount_due" json:"amount_due"`
	AmountPaid     int64     `gorm:"not null;column:amount_paid" json:"amount_paid"`
	Currency       string    `gorm:"not null;column:currency" json:"currency"`
	Status         string    `gorm:"not null;default:'open';column:status" json:"status"`
	Description    string    `gorm:"column:description" json:"description"`

	PaidAt      *time.Time `gorm:"column:paid_at" json:"paid_at,omitempty"`
	ExternalRef string     `gorm:"index;column:external_ref" json:"external_ref"`
	HostedURL   string     `gorm:"column:hosted_url" json:"hosted_url,omitempty"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (Invoice) TableName() string { return "invoices" }

func (i *Invoice) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}
