package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	RoleWorker = "worker"
	RoleClient = "client"
)

// User belongs to exactly one tenant. Email uniqueness is scoped per role:
// a worker and a client may share an address, two workers may not.
type User struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	TenantID uuid.UUID `gorm:"type:uuid;not null;index" json:"tenant_id"`
	Tenant   Tenant    `gorm:"constraint:OnDelete:CASCADE" json:"-"`

	Role            string     `gorm:"not null;uniqueIndex:idx_users_role_email" json:"role"`
	Email           string     `gorm:"not null;uniqueIndex:idx_users_role_email" json:"email"`
	EmailVerifiedAt *time.Time `json:"email_verified_at"`

	PasswordHash string `gorm:"not null" json:"-"`
	IsActive     bool   `gorm:"not null;default:true" json:"is_active"`

	Locale   string `gorm:"not null;default:es-ES" json:"locale"`
	Timezone string `gorm:"not null;default:Europe/Madrid" json:"timezone"`

	CreatedAt time.Time  `gorm:"not null" json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at"`
}
