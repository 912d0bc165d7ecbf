package announce

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Announcement transitions unsent -> sent exactly once; sent_at is only ever
// written through the conditional update in the dispatch tracker.
type Announcement struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Title   string    `gorm:"not null;column:title" json:"title"`
	Body    string    `gorm:"column:body" json:"body"`
	Channel string    `gorm:"not null;default:'email';column:channel" json:"channel"`

	SentAt *time.Time `gorm:"column:sent_at" json:"sent_at,omitempty"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (Announcement) TableName() string { return "announcements" }

func (a *Announcement) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

type AnnouncementOrganization struct {
	AnnouncementID uuid.UUID `gorm:"type:uuid;primaryKey;column:announcement_id" json:"announcement_id"`
	OrganizationID uuid.UUID `gorm:"type:uuid;primaryKey;column:organization_id" json:"organization_id"`
}

func (AnnouncementOrganization) TableName() string { return "announcement_organization" }

type AnnouncementGroup struct {
	AnnouncementID uuid.UUID `gorm:"type:uuid;primaryKey;column:announcement_id" json:"announcement_id"`
	GroupID        uuid.UUID `gorm:"type:uuid;primaryKey;column:group_id" json:"group_id"`
}

func (AnnouncementGroup) TableName() string { return "announcement_group" }

// AnnouncementMember records per-member delivery; notified_at is set only
// after a successful notify so retries can target the remainder.
type AnnouncementMember struct {
	AnnouncementID uuid.UUID  `gorm:"type:uuid;primaryKey;column:announcement_id" json:"announcement_id"`
	MemberID       uuid.UUID  `gorm:"type:uuid;primaryKey;column:member_id" json:"member_id"`
	NotifiedAt     *time.Time `gorm:"column:notified_at" json:"notified_at,omitempty"`
}

func (AnnouncementMember) TableName() string { return "announcement_member" }
