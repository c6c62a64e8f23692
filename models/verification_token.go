package models

import (
	"time"

	"github.com/google/uuid"
)

// EmailVerificationToken is one-time use. Only the SHA-256 digest of the
// raw token is stored; the raw value travels in the verification link.
type EmailVerificationToken struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	TenantID uuid.UUID `gorm:"type:uuid;not null;index" json:"tenant_id"`
	Tenant   Tenant    `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	UserID   uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	User     User      `gorm:"constraint:OnDelete:CASCADE" json:"-"`

	TokenHash  []byte     `gorm:"not null;uniqueIndex" json:"-"`
	ExpiresAt  time.Time  `gorm:"not null" json:"expires_at"`
	ConsumedAt *time.Time `json:"consumed_at"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}
