package auth

import (
	"time"

	"github.com/google/uuid"
)

// OAuth token rows are issued by the external auth collaborator; they are
// modeled here only so user removal can detach them.

type OAuthAccessToken struct {
	ID        string     `gorm:"primaryKey;column:id" json:"id"`
	UserID    *uuid.UUID `gorm:"type:uuid;index;column:user_id" json:"user_id,omitempty"`
	ClientID  string     `gorm:"column:client_id" json:"client_id"`
	Name      string     `gorm:"column:name" json:"name"`
	Revoked   bool       `gorm:"not null;default:false;column:revoked" json:"revoked"`
	ExpiresAt *time.Time `gorm:"column:expires_at" json:"expires_at,omitempty"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (OAuthAccessToken) TableName() string { return "oauth_access_tokens" }

type OAuthAuthCode struct {
	ID        string     `gorm:"primaryKey;column:id" json:"id"`
	UserID    *uuid.UUID `gorm:"type:uuid;index;column:user_id" json:"user_id,omitempty"`
	ClientID  string     `gorm:"column:client_id" json:"client_id"`
	Revoked   bool       `gorm:"not null;default:false;column:revoked" json:"revoked"`
	ExpiresAt *time.Time `gorm:"column:expires_at" json:"expires_at,omitempty"`
}

func (OAuthAuthCode) TableName() string { return "oauth_auth_codes" }

type OAuthDeviceCode struct {
	ID        string     `gorm:"primaryKey;column:id" json:"id"`
	UserID    *uuid.UUID `gorm:"type:uuid;index;column:user_id" json:"user_id,omitempty"`
	ClientID  string     `gorm:"column:client_id" json:"client_id"`
	UserCode  string     `gorm:"column:user_code" json:"user_code"`
	Revoked   bool       `gorm:"not null;default:false;column:revoked" json:"revoked"`
	ExpiresAt *time.Time `gorm:"column:expires_at" json:"expires_at,omitempty"`
}

func (OAuthDeviceCode) TableName() string { return "oauth_device_codes" }
