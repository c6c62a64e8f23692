package services

import (
	"sort"
	"strings"

	"github.com/admsdev98/NutriOrxata/config"
	"github.com/admsdev98/NutriOrxata/models"

	"github.com/google/uuid"
)

// Slot keys are free text typed by Spanish-speaking workers, so the
// keyword table covers both languages. Entry order is the tie-break: a
// slot key matching several meal types resolves to the earliest entry.
var mealTypeKeywords = []struct {
	mealType string
	keywords []string
}{
	{"breakfast", []string{"breakfast", "desayuno"}},
	{"lunch", []string{"lunch", "almuerzo", "comida"}},
	{"dinner", []string{"dinner", "cena"}},
	{"snack", []string{"snack", "merienda"}},
}

func mealTypeFromSlotKey(slotKey string) string {
	normalized := strings.ToLower(strings.TrimSpace(slotKey))
	for _, entry := range mealTypeKeywords {
		for _, keyword := range entry.keywords {
			if strings.Contains(normalized, keyword) {
				return entry.mealType
			}
		}
	}
	return ""
}

func dishNameMatchesMealType(dishName, mealType string) bool {
	normalized := strings.ToLower(strings.TrimSpace(dishName))
	for _, entry := range mealTypeKeywords {
		if entry.mealType != mealType {
			continue
		}
		for _, keyword := range entry.keywords {
			if strings.Contains(normalized, keyword) {
				return true
			}
		}
	}
	return false
}

// historicalDishIDsForMealType collects dishes the tenant already planned
// into slots of the given meal type, across templates and instances.
func historicalDishIDsForMealType(tenantID uuid.UUID, mealType string) (map[uuid.UUID]struct{}, *ServiceError) {
	type slotDish struct {
		SlotKey        string
		DishTemplateID *uuid.UUID
	}

	var templateRows []slotDish
	err := config.DB.Model(&models.WeekPlanTemplateItem{}).
		Select("slot_key", "dish_template_id").
		Where("tenant_id = ? AND dish_template_id IS NOT NULL", tenantID).
		Find(&templateRows).Error
	if err != nil {
		return nil, errInternal("dish_suggestion_failed")
	}

	var instanceRows []slotDish
	err = config.DB.Model(&models.WeekPlanInstanceItem{}).
		Select("slot_key", "dish_template_id").
		Where("tenant_id = ? AND dish_template_id IS NOT NULL", tenantID).
		Find(&instanceRows).Error
	if err != nil {
		return nil, errInternal("dish_suggestion_failed")
	}

	matched := make(map[uuid.UUID]struct{})
	for _, row := range append(templateRows, instanceRows...) {
		if row.DishTemplateID == nil {
			continue
		}
		if mealTypeFromSlotKey(row.SlotKey) == mealType {
			matched[*row.DishTemplateID] = struct{}{}
		}
	}
	return matched, nil
}

type DishSuggestion struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	MealType string `json:"meal_type,omitempty"`
	Score    int    `json:"score"`
}

// ListDishSuggestions ranks the tenant's dishes for a slot: +2 when the
// dish was historically planned into slots of the same meal type, +1 when
// its name matches the meal-type keywords. Unmatched dishes only surface
// when nothing scored.
func ListDishSuggestions(user *models.User, slotKey, query string, limit int) ([]DishSuggestion, *ServiceError) {
	normalizedSlot := strings.TrimSpace(slotKey)
	if normalizedSlot == "" {
		return nil, errBadRequest("invalid_slot_key")
	}

	mealType := mealTypeFromSlotKey(normalizedSlot)
	historical := map[uuid.UUID]struct{}{}
	if mealType != "" {
		var serviceErr *ServiceError
		historical, serviceErr = historicalDishIDsForMealType(user.TenantID, mealType)
		if serviceErr != nil {
			return nil, serviceErr
		}
	}

	stmt := config.DB.Where("tenant_id = ?", user.TenantID)
	if q := strings.TrimSpace(query); q != "" {
		stmt = stmt.Where("name ILIKE ?", "%"+q+"%")
	}
	var dishes []models.DishTemplate
	if err := stmt.Find(&dishes).Error; err != nil {
		return nil, errInternal("dish_suggestion_failed")
	}

	scored := make([]DishSuggestion, 0, len(dishes))
	for _, dish := range dishes {
		score := 0
		if mealType != "" {
			if _, ok := historical[dish.ID]; ok {
				score += 2
			}
			if dishNameMatchesMealType(dish.Name, mealType) {
				score++
			}
		}
		scored = append(scored, DishSuggestion{
			ID:       dish.ID.String(),
			Name:     dish.Name,
			MealType: mealType,
			Score:    score,
		})
	}

	matched := make([]DishSuggestion, 0, len(scored))
	for _, s := range scored {
		if s.Score > 0 {
			matched = append(matched, s)
		}
	}
	ordered := scored
	if len(matched) > 0 {
		ordered = matched
	}
	sort.SliceStable(ordered, func(a, b int) bool {
		if ordered[a].Score != ordered[b].Score {
			return ordered[a].Score > ordered[b].Score
		}
		return strings.ToLower(ordered[a].Name) < strings.ToLower(ordered[b].Name)
	})

	if len(ordered) > limit {
		ordered = ordered[:limit]
	}
	return ordered, nil
}
