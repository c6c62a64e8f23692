package models

import (
	"time"

	"github.com/google/uuid"
)

// WeekPlanTemplate is a reusable weekly skeleton keyed by (day, slot).
type WeekPlanTemplate struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	TenantID uuid.UUID `gorm:"type:uuid;not null;index" json:"tenant_id"`
	Tenant   Tenant    `gorm:"constraint:OnDelete:CASCADE" json:"-"`

	Name string `gorm:"not null" json:"name"`

	CreatedAt time.Time  `gorm:"not null" json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at"`
}

// WeekPlanTemplateItem snapshots the dish name so the slot stays readable
// if the dish is deleted (dish FK is SET NULL).
type WeekPlanTemplateItem struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	TenantID uuid.UUID `gorm:"type:uuid;not null;index" json:"tenant_id"`
	Tenant   Tenant    `gorm:"constraint:OnDelete:CASCADE" json:"-"`

	WeekPlanTemplateID uuid.UUID        `gorm:"type:uuid;not null;index" json:"week_plan_template_id"`
	WeekPlanTemplate   WeekPlanTemplate `gorm:"constraint:OnDelete:CASCADE" json:"-"`

	DayKey  string `gorm:"not null" json:"day_key"`
	SlotKey string `gorm:"not null" json:"slot_key"`

	DishTemplateID   *uuid.UUID    `gorm:"type:uuid" json:"dish_template_id"`
	DishTemplate     *DishTemplate `gorm:"constraint:OnDelete:SET NULL" json:"-"`
	DishTemplateName *string       `json:"dish_template_name"`

	Notes    *string `json:"notes"`
	Position int     `gorm:"not null;default:0" json:"position"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}

// WeekPlanInstance is a concrete week materialized from a template for one
// client. Instance rows are independently editable; edits never propagate
// back to the source template.
type WeekPlanInstance struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	TenantID uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_instances_client_week" json:"tenant_id"`
	Tenant   Tenant    `gorm:"constraint:OnDelete:CASCADE" json:"-"`

	TemplateID *uuid.UUID        `gorm:"type:uuid" json:"template_id"`
	Template   *WeekPlanTemplate `gorm:"foreignKey:TemplateID;constraint:OnDelete:SET NULL" json:"-"`

	ClientRef            string    `gorm:"not null;uniqueIndex:idx_instances_client_week" json:"client_ref"`
	WeekStartDate        time.Time `gorm:"type:date;not null;uniqueIndex:idx_instances_client_week" json:"-"`
	TemplateNameSnapshot *string   `json:"template_name_snapshot"`

	CreatedAt time.Time  `gorm:"not null" json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at"`
}

type WeekPlanInstanceItem struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	TenantID uuid.UUID `gorm:"type:uuid;not null;index" json:"tenant_id"`
	Tenant   Tenant    `gorm:"constraint:OnDelete:CASCADE" json:"-"`

	WeekPlanInstanceID uuid.UUID        `gorm:"type:uuid;not null;index" json:"week_plan_instance_id"`
	WeekPlanInstance   WeekPlanInstance `gorm:"constraint:OnDelete:CASCADE" json:"-"`

	SourceTemplateItemID *uuid.UUID `gorm:"type:uuid" json:"source_template_item_id"`

	DayKey  string `gorm:"not null" json:"day_key"`
	SlotKey string `gorm:"not null" json:"slot_key"`

	DishTemplateID *uuid.UUID `gorm:"type:uuid" json:"dish_template_id"`
	DishName       *string    `json:"dish_name"`

	Notes    *string `json:"notes"`
	Position int     `gorm:"not null;default:0" json:"position"`

	CreatedAt time.Time  `gorm:"not null" json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at"`
}
