package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Ingredient is a tenant-scoped catalog entry with per-100g macro values.
type Ingredient struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	TenantID uuid.UUID `gorm:"type:uuid;not null;index" json:"tenant_id"`
	Tenant   Tenant    `gorm:"constraint:OnDelete:CASCADE" json:"-"`

	Name string `gorm:"not null" json:"name"`

	KcalPer100g     decimal.Decimal `gorm:"type:numeric(7,2);not null" json:"kcal_per_100g"`
	ProteinGPer100g decimal.Decimal `gorm:"type:numeric(7,2);not null" json:"protein_g_per_100g"`
	CarbsGPer100g   decimal.Decimal `gorm:"type:numeric(7,2);not null" json:"carbs_g_per_100g"`
	FatGPer100g     decimal.Decimal `gorm:"type:numeric(7,2);not null" json:"fat_g_per_100g"`

	ServingSizeG decimal.NullDecimal `gorm:"type:numeric(7,2)" json:"serving_size_g"`

	CreatedAt time.Time  `gorm:"not null" json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at"`
}
