package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	TenantStatusActive   = "active"
	TenantStatusDisabled = "disabled"

	SubscriptionTrial  = "trial"
	SubscriptionActive = "active"
)

// Tenant is the billing and isolation unit. Every domain row carries a
// tenant_id and all queries are scoped to it. Trial bounds stay nil until
// the first worker verifies their email.
type Tenant struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	Status             string `gorm:"not null;default:active" json:"status"`
	SubscriptionStatus string `gorm:"not null;default:trial" json:"subscription_status"`

	TrialStartsAt *time.Time `json:"trial_starts_at"`
	TrialEndsAt   *time.Time `json:"trial_ends_at"`

	CreatedAt time.Time  `gorm:"not null" json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at"`
}
