package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// NutritionProfile holds the biometric inputs for the target calculator,
// plus optional per-field overrides. One profile per user.
type NutritionProfile struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	TenantID uuid.UUID `gorm:"type:uuid;not null;index" json:"tenant_id"`
	Tenant   Tenant    `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	UserID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"user_id"`
	User     User      `gorm:"constraint:OnDelete:CASCADE" json:"-"`

	Sex           string          `gorm:"not null" json:"sex"`
	BirthDate     time.Time       `gorm:"type:date;not null" json:"-"`
	HeightCm      int             `gorm:"not null" json:"height_cm"`
	WeightKg      decimal.Decimal `gorm:"type:numeric(5,2);not null" json:"weight_kg"`
	ActivityLevel string          `gorm:"not null" json:"activity_level"`
	Goal          string          `gorm:"not null;default:maintain" json:"goal"`

	OverrideKcal     *int `json:"override_kcal"`
	OverrideProteinG *int `json:"override_protein_g"`
	OverrideCarbsG   *int `json:"override_carbs_g"`
	OverrideFatG     *int `json:"override_fat_g"`

	CreatedAt time.Time  `gorm:"not null" json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at"`
}
