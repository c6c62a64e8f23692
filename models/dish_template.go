package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DishTemplate is a reusable named recipe: an ordered set of
// (ingredient, quantity_g) pairs.
type DishTemplate struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	TenantID uuid.UUID `gorm:"type:uuid;not null;index" json:"tenant_id"`
	Tenant   Tenant    `gorm:"constraint:OnDelete:CASCADE" json:"-"`

	Name string `gorm:"not null" json:"name"`

	CreatedAt time.Time  `gorm:"not null" json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at"`
}

// DishTemplateItem references an ingredient with RESTRICT: an ingredient
// used by any dish cannot be deleted.
type DishTemplateItem struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	TenantID uuid.UUID `gorm:"type:uuid;not null;index" json:"tenant_id"`
	Tenant   Tenant    `gorm:"constraint:OnDelete:CASCADE" json:"-"`

	DishTemplateID uuid.UUID    `gorm:"type:uuid;not null;index" json:"dish_template_id"`
	DishTemplate   DishTemplate `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	IngredientID   uuid.UUID    `gorm:"type:uuid;not null;index" json:"ingredient_id"`
	Ingredient     Ingredient   `gorm:"constraint:OnDelete:RESTRICT" json:"-"`

	QuantityG decimal.Decimal `gorm:"type:numeric(8,2);not null" json:"quantity_g"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}
