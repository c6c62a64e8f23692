package services

import (
	"errors"
	"strings"
	"time"

	"github.com/admsdev98/NutriOrxata/config"
	"github.com/admsdev98/NutriOrxata/models"
	"github.com/admsdev98/NutriOrxata/utils"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type IngredientInput struct {
	Name            string
	KcalPer100g     float64
	ProteinGPer100g float64
	CarbsGPer100g   float64
	FatGPer100g     float64
	ServingSizeG    *float64
}

type IngredientOut struct {
	ID              string     `json:"id"`
	TenantID        string     `json:"tenant_id"`
	Name            string     `json:"name"`
	KcalPer100g     float64    `json:"kcal_per_100g"`
	ProteinGPer100g float64    `json:"protein_g_per_100g"`
	CarbsGPer100g   float64    `json:"carbs_g_per_100g"`
	FatGPer100g     float64    `json:"fat_g_per_100g"`
	ServingSizeG    *float64   `json:"serving_size_g"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       *time.Time `json:"updated_at"`
}

func ingredientOut(row *models.Ingredient) IngredientOut {
	out := IngredientOut{
		ID:        row.ID.String(),
		TenantID:  row.TenantID.String(),
		Name:      row.Name,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
	out.KcalPer100g, _ = row.KcalPer100g.Float64()
	out.ProteinGPer100g, _ = row.ProteinGPer100g.Float64()
	out.CarbsGPer100g, _ = row.CarbsGPer100g.Float64()
	out.FatGPer100g, _ = row.FatGPer100g.Float64()
	if row.ServingSizeG.Valid {
		v, _ := row.ServingSizeG.Decimal.Float64()
		out.ServingSizeG = &v
	}
	return out
}

func applyIngredientInput(row *models.Ingredient, in IngredientInput) {
	row.Name = strings.TrimSpace(in.Name)
	row.KcalPer100g = decimal.NewFromFloat(in.KcalPer100g)
	row.ProteinGPer100g = decimal.NewFromFloat(in.ProteinGPer100g)
	row.CarbsGPer100g = decimal.NewFromFloat(in.CarbsGPer100g)
	row.FatGPer100g = decimal.NewFromFloat(in.FatGPer100g)
	if in.ServingSizeG != nil {
		row.ServingSizeG = decimal.NewNullDecimal(decimal.NewFromFloat(*in.ServingSizeG))
	} else {
		row.ServingSizeG = decimal.NullDecimal{}
	}
}

func ListIngredients(user *models.User, query string, limit, offset int) ([]IngredientOut, *ServiceError) {
	stmt := config.DB.Where("tenant_id = ?", user.TenantID)
	if q := strings.TrimSpace(query); q != "" {
		stmt = stmt.Where("name ILIKE ?", "%"+q+"%")
	}

	var rows []models.Ingredient
	if err := stmt.Order("name asc").Limit(limit).Offset(offset).Find(&rows).Error; err != nil {
		return nil, errInternal("ingredient_list_failed")
	}

	out := make([]IngredientOut, 0, len(rows))
	for i := range rows {
		out = append(out, ingredientOut(&rows[i]))
	}
	return out, nil
}

func CreateIngredient(user *models.User, in IngredientInput) (*IngredientOut, *ServiceError) {
	row := models.Ingredient{
		ID:        uuid.New(),
		TenantID:  user.TenantID,
		CreatedAt: time.Now().UTC(),
	}
	applyIngredientInput(&row, in)
	if row.Name == "" {
		return nil, errBadRequest("invalid_ingredient_name")
	}

	if err := config.DB.Create(&row).Error; err != nil {
		return nil, errInternal("ingredient_save_failed")
	}
	out := ingredientOut(&row)
	return &out, nil
}

func fetchIngredient(tenantID, ingredientID uuid.UUID) (*models.Ingredient, *ServiceError) {
	var row models.Ingredient
	err := config.DB.Where("tenant_id = ? AND id = ?", tenantID, ingredientID).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errNotFound("ingredient_not_found")
	}
	if err != nil {
		return nil, errInternal("ingredient_lookup_failed")
	}
	return &row, nil
}

func GetIngredient(user *models.User, ingredientID uuid.UUID) (*IngredientOut, *ServiceError) {
	row, serviceErr := fetchIngredient(user.TenantID, ingredientID)
	if serviceErr != nil {
		return nil, serviceErr
	}
	out := ingredientOut(row)
	return &out, nil
}

func UpdateIngredient(user *models.User, ingredientID uuid.UUID, in IngredientInput) (*IngredientOut, *ServiceError) {
	row, serviceErr := fetchIngredient(user.TenantID, ingredientID)
	if serviceErr != nil {
		return nil, serviceErr
	}

	applyIngredientInput(row, in)
	if row.Name == "" {
		return nil, errBadRequest("invalid_ingredient_name")
	}
	now := time.Now().UTC()
	row.UpdatedAt = &now

	if err := config.DB.Save(row).Error; err != nil {
		return nil, errInternal("ingredient_save_failed")
	}
	out := ingredientOut(row)
	return &out, nil
}

type DishTemplateRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// IngredientUsedBy lists the dish templates referencing an ingredient; the
// same set that makes deletion a conflict.
func IngredientUsedBy(user *models.User, ingredientID uuid.UUID) ([]DishTemplateRef, *ServiceError) {
	if _, serviceErr := fetchIngredient(user.TenantID, ingredientID); serviceErr != nil {
		return nil, serviceErr
	}

	var rows []models.DishTemplate
	err := config.DB.
		Distinct("dish_templates.id", "dish_templates.name").
		Joins("JOIN dish_template_items ON dish_template_items.dish_template_id = dish_templates.id").
		Where("dish_templates.tenant_id = ?", user.TenantID).
		Where("dish_template_items.tenant_id = ?", user.TenantID).
		Where("dish_template_items.ingredient_id = ?", ingredientID).
		Order("dish_templates.name asc").
		Find(&rows).Error
	if err != nil {
		return nil, errInternal("ingredient_lookup_failed")
	}

	out := make([]DishTemplateRef, 0, len(rows))
	for _, row := range rows {
		out = append(out, DishTemplateRef{ID: row.ID.String(), Name: row.Name})
	}
	return out, nil
}

func DeleteIngredient(user *models.User, ingredientID uuid.UUID) *ServiceError {
	row, serviceErr := fetchIngredient(user.TenantID, ingredientID)
	if serviceErr != nil {
		return serviceErr
	}

	var count int64
	err := config.DB.Model(&models.DishTemplateItem{}).
		Where("tenant_id = ? AND ingredient_id = ?", user.TenantID, ingredientID).
		Count(&count).Error
	if err != nil {
		return errInternal("ingredient_delete_failed")
	}
	if count > 0 {
		return errConflict("ingredient_in_use")
	}

	if err := config.DB.Delete(row).Error; err != nil {
		return errInternal("ingredient_delete_failed")
	}
	return nil
}

type DishItemInput struct {
	IngredientID string
	QuantityG    float64
}

type DishTemplateInput struct {
	Name  string
	Items []DishItemInput
}

type DishTemplateListItem struct {
	ID        string     `json:"id"`
	TenantID  string     `json:"tenant_id"`
	Name      string     `json:"name"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at"`
}

type DishTemplateItemOut struct {
	IngredientID   string  `json:"ingredient_id"`
	IngredientName string  `json:"ingredient_name"`
	QuantityG      float64 `json:"quantity_g"`
}

type MacroTotalsOut struct {
	Kcal     float64 `json:"kcal"`
	ProteinG float64 `json:"protein_g"`
	CarbsG   float64 `json:"carbs_g"`
	FatG     float64 `json:"fat_g"`
}

type DishTemplateOut struct {
	ID        string                `json:"id"`
	TenantID  string                `json:"tenant_id"`
	Name      string                `json:"name"`
	Items     []DishTemplateItemOut `json:"items"`
	Totals    MacroTotalsOut        `json:"totals"`
	CreatedAt time.Time             `json:"created_at"`
	UpdatedAt *time.Time            `json:"updated_at"`
}

func ListDishTemplates(user *models.User, query string, limit, offset int) ([]DishTemplateListItem, *ServiceError) {
	stmt := config.DB.Where("tenant_id = ?", user.TenantID)
	if q := strings.TrimSpace(query); q != "" {
		stmt = stmt.Where("name ILIKE ?", "%"+q+"%")
	}

	var rows []models.DishTemplate
	if err := stmt.Order("name asc").Limit(limit).Offset(offset).Find(&rows).Error; err != nil {
		return nil, errInternal("dish_template_list_failed")
	}

	out := make([]DishTemplateListItem, 0, len(rows))
	for _, row := range rows {
		out = append(out, DishTemplateListItem{
			ID:        row.ID.String(),
			TenantID:  row.TenantID.String(),
			Name:      row.Name,
			CreatedAt: row.CreatedAt,
			UpdatedAt: row.UpdatedAt,
		})
	}
	return out, nil
}

func fetchDishTemplate(tenantID, templateID uuid.UUID) (*models.DishTemplate, *ServiceError) {
	var row models.DishTemplate
	err := config.DB.Where("tenant_id = ? AND id = ?", tenantID, templateID).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errNotFound("dish_template_not_found")
	}
	if err != nil {
		return nil, errInternal("dish_template_lookup_failed")
	}
	return &row, nil
}

type dishItemRow struct {
	Item       models.DishTemplateItem
	Ingredient models.Ingredient
}

func fetchDishItemRows(tenantID, templateID uuid.UUID) ([]dishItemRow, *ServiceError) {
	var items []models.DishTemplateItem
	err := config.DB.
		Where("tenant_id = ? AND dish_template_id = ?", tenantID, templateID).
		Order("created_at asc").
		Find(&items).Error
	if err != nil {
		return nil, errInternal("dish_template_lookup_failed")
	}

	ids := make([]uuid.UUID, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.IngredientID)
	}

	var ingredients []models.Ingredient
	if len(ids) > 0 {
		err = config.DB.Where("tenant_id = ? AND id IN ?", tenantID, ids).Find(&ingredients).Error
		if err != nil {
			return nil, errInternal("dish_template_lookup_failed")
		}
	}
	byID := make(map[uuid.UUID]models.Ingredient, len(ingredients))
	for _, ingredient := range ingredients {
		byID[ingredient.ID] = ingredient
	}

	rows := make([]dishItemRow, 0, len(items))
	for _, item := range items {
		rows = append(rows, dishItemRow{Item: item, Ingredient: byID[item.IngredientID]})
	}
	return rows, nil
}

func dishTemplateOut(template *models.DishTemplate, rows []dishItemRow) *DishTemplateOut {
	macroItems := make([]utils.MacroItem, 0, len(rows))
	itemsOut := make([]DishTemplateItemOut, 0, len(rows))
	for _, row := range rows {
		macroItems = append(macroItems, utils.MacroItem{
			Per100g: utils.MacroPer100g{
				Kcal:     row.Ingredient.KcalPer100g,
				ProteinG: row.Ingredient.ProteinGPer100g,
				CarbsG:   row.Ingredient.CarbsGPer100g,
				FatG:     row.Ingredient.FatGPer100g,
			},
			QuantityG: row.Item.QuantityG,
		})

		quantity, _ := row.Item.QuantityG.Float64()
		itemsOut = append(itemsOut, DishTemplateItemOut{
			IngredientID:   row.Item.IngredientID.String(),
			IngredientName: row.Ingredient.Name,
			QuantityG:      quantity,
		})
	}

	totals := utils.ComputeTemplateTotals(macroItems)
	totalsOut := MacroTotalsOut{}
	totalsOut.Kcal, _ = totals.Kcal.Float64()
	totalsOut.ProteinG, _ = totals.ProteinG.Float64()
	totalsOut.CarbsG, _ = totals.CarbsG.Float64()
	totalsOut.FatG, _ = totals.FatG.Float64()

	return &DishTemplateOut{
		ID:        template.ID.String(),
		TenantID:  template.TenantID.String(),
		Name:      template.Name,
		Items:     itemsOut,
		Totals:    totalsOut,
		CreatedAt: template.CreatedAt,
		UpdatedAt: template.UpdatedAt,
	}
}

func GetDishTemplate(user *models.User, templateID uuid.UUID) (*DishTemplateOut, *ServiceError) {
	template, serviceErr := fetchDishTemplate(user.TenantID, templateID)
	if serviceErr != nil {
		return nil, serviceErr
	}
	rows, serviceErr := fetchDishItemRows(user.TenantID, template.ID)
	if serviceErr != nil {
		return nil, serviceErr
	}
	return dishTemplateOut(template, rows), nil
}

// resolveDishItemIngredients parses and checks every referenced ingredient
// against the tenant's catalog before any row is written.
func resolveDishItemIngredients(tenantID uuid.UUID, items []DishItemInput) ([]uuid.UUID, *ServiceError) {
	ids := make([]uuid.UUID, 0, len(items))
	unique := make(map[uuid.UUID]struct{}, len(items))
	for _, item := range items {
		id, err := uuid.Parse(item.IngredientID)
		if err != nil {
			return nil, errBadRequest("invalid_ingredient_id")
		}
		ids = append(ids, id)
		unique[id] = struct{}{}
	}

	if len(unique) > 0 {
		var count int64
		uniqueIDs := make([]uuid.UUID, 0, len(unique))
		for id := range unique {
			uniqueIDs = append(uniqueIDs, id)
		}
		err := config.DB.Model(&models.Ingredient{}).
			Where("tenant_id = ? AND id IN ?", tenantID, uniqueIDs).
			Count(&count).Error
		if err != nil {
			return nil, errInternal("dish_template_save_failed")
		}
		if count != int64(len(unique)) {
			return nil, errNotFound("ingredient_not_found")
		}
	}
	return ids, nil
}

func CreateDishTemplate(user *models.User, in DishTemplateInput) (*DishTemplateOut, *ServiceError) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, errBadRequest("invalid_dish_template_name")
	}
	ids, serviceErr := resolveDishItemIngredients(user.TenantID, in.Items)
	if serviceErr != nil {
		return nil, serviceErr
	}

	now := time.Now().UTC()
	template := models.DishTemplate{
		ID:        uuid.New(),
		TenantID:  user.TenantID,
		Name:      name,
		CreatedAt: now,
	}

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&template).Error; err != nil {
			return err
		}
		for i, item := range in.Items {
			row := models.DishTemplateItem{
				ID:             uuid.New(),
				TenantID:       user.TenantID,
				DishTemplateID: template.ID,
				IngredientID:   ids[i],
				QuantityG:      decimal.NewFromFloat(item.QuantityG),
				CreatedAt:      now,
			}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, errInternal("dish_template_save_failed")
	}

	return GetDishTemplate(user, template.ID)
}

// UpdateDishTemplate replaces the item list wholesale: existing items are
// deleted and the payload reinserted rather than diffed.
func UpdateDishTemplate(user *models.User, templateID uuid.UUID, in DishTemplateInput) (*DishTemplateOut, *ServiceError) {
	template, serviceErr := fetchDishTemplate(user.TenantID, templateID)
	if serviceErr != nil {
		return nil, serviceErr
	}

	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, errBadRequest("invalid_dish_template_name")
	}
	ids, serviceErr := resolveDishItemIngredients(user.TenantID, in.Items)
	if serviceErr != nil {
		return nil, serviceErr
	}

	now := time.Now().UTC()
	err := config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(template).Updates(map[string]interface{}{
			"name":       name,
			"updated_at": now,
		}).Error; err != nil {
			return err
		}
		if err := tx.
			Where("tenant_id = ? AND dish_template_id = ?", user.TenantID, template.ID).
			Delete(&models.DishTemplateItem{}).Error; err != nil {
			return err
		}
		for i, item := range in.Items {
			row := models.DishTemplateItem{
				ID:             uuid.New(),
				TenantID:       user.TenantID,
				DishTemplateID: template.ID,
				IngredientID:   ids[i],
				QuantityG:      decimal.NewFromFloat(item.QuantityG),
				CreatedAt:      now,
			}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, errInternal("dish_template_save_failed")
	}

	return GetDishTemplate(user, template.ID)
}

func DeleteDishTemplate(user *models.User, templateID uuid.UUID) *ServiceError {
	template, serviceErr := fetchDishTemplate(user.TenantID, templateID)
	if serviceErr != nil {
		return serviceErr
	}

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("tenant_id = ? AND dish_template_id = ?", user.TenantID, template.ID).
			Delete(&models.DishTemplateItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(template).Error
	})
	if err != nil {
		return errInternal("dish_template_delete_failed")
	}
	return nil
}
