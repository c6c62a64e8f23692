package services

import (
	"errors"
	"time"

	"github.com/admsdev98/NutriOrxata/config"
	"github.com/admsdev98/NutriOrxata/models"
	"github.com/admsdev98/NutriOrxata/utils"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type NutritionProfileInput struct {
	Sex           string
	BirthDate     time.Time
	HeightCm      int
	WeightKg      float64
	ActivityLevel string
	Goal          string

	OverrideKcal     *int
	OverrideProteinG *int
	OverrideCarbsG   *int
	OverrideFatG     *int
}

var validSexes = map[string]bool{"male": true, "female": true}
var validActivityLevels = map[string]bool{
	"sedentary": true, "light": true, "moderate": true, "very_active": true, "athlete": true,
}
var validGoals = map[string]bool{"maintain": true, "cut": true, "bulk": true}

func validateProfileInput(in NutritionProfileInput) *ServiceError {
	if !validSexes[in.Sex] {
		return errBadRequest("invalid_sex")
	}
	if !validActivityLevels[in.ActivityLevel] {
		return errBadRequest("invalid_activity_level")
	}
	if !validGoals[in.Goal] {
		return errBadRequest("invalid_goal")
	}
	if in.HeightCm <= 0 {
		return errBadRequest("invalid_height")
	}
	if in.WeightKg <= 0 {
		return errBadRequest("invalid_weight")
	}
	if in.BirthDate.IsZero() {
		return errBadRequest("invalid_birth_date")
	}
	return nil
}

type NutritionProfileOut struct {
	ID            string  `json:"id"`
	TenantID      string  `json:"tenant_id"`
	UserID        string  `json:"user_id"`
	Sex           string  `json:"sex"`
	BirthDate     string  `json:"birth_date"`
	HeightCm      int     `json:"height_cm"`
	WeightKg      float64 `json:"weight_kg"`
	ActivityLevel string  `json:"activity_level"`
	Goal          string  `json:"goal"`

	OverrideKcal     *int `json:"override_kcal"`
	OverrideProteinG *int `json:"override_protein_g"`
	OverrideCarbsG   *int `json:"override_carbs_g"`
	OverrideFatG     *int `json:"override_fat_g"`

	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at"`
}

func profileOut(row *models.NutritionProfile) *NutritionProfileOut {
	weightKg, _ := row.WeightKg.Float64()
	return &NutritionProfileOut{
		ID:            row.ID.String(),
		TenantID:      row.TenantID.String(),
		UserID:        row.UserID.String(),
		Sex:           row.Sex,
		BirthDate:     row.BirthDate.Format("2006-01-02"),
		HeightCm:      row.HeightCm,
		WeightKg:      weightKg,
		ActivityLevel: row.ActivityLevel,
		Goal:          row.Goal,

		OverrideKcal:     row.OverrideKcal,
		OverrideProteinG: row.OverrideProteinG,
		OverrideCarbsG:   row.OverrideCarbsG,
		OverrideFatG:     row.OverrideFatG,

		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
}

func fetchNutritionProfile(user *models.User) (*models.NutritionProfile, *ServiceError) {
	var row models.NutritionProfile
	err := config.DB.Where("tenant_id = ? AND user_id = ?", user.TenantID, user.ID).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errNotFound("nutrition_profile_not_found")
	}
	if err != nil {
		return nil, errInternal("profile_lookup_failed")
	}
	return &row, nil
}

func GetNutritionProfile(user *models.User) (*NutritionProfileOut, *ServiceError) {
	row, serviceErr := fetchNutritionProfile(user)
	if serviceErr != nil {
		return nil, serviceErr
	}
	return profileOut(row), nil
}

// UpsertNutritionProfile is a full replace: every field comes from the
// payload, including cleared overrides.
func UpsertNutritionProfile(user *models.User, in NutritionProfileInput) (*NutritionProfileOut, *ServiceError) {
	if serviceErr := validateProfileInput(in); serviceErr != nil {
		return nil, serviceErr
	}

	now := time.Now().UTC()
	var row models.NutritionProfile
	err := config.DB.Where("tenant_id = ? AND user_id = ?", user.TenantID, user.ID).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		row = models.NutritionProfile{
			ID:        uuid.New(),
			TenantID:  user.TenantID,
			UserID:    user.ID,
			CreatedAt: now,
		}
	} else if err != nil {
		return nil, errInternal("profile_save_failed")
	} else {
		row.UpdatedAt = &now
	}

	row.Sex = in.Sex
	row.BirthDate = in.BirthDate
	row.HeightCm = in.HeightCm
	row.WeightKg = decimal.NewFromFloat(in.WeightKg)
	row.ActivityLevel = in.ActivityLevel
	row.Goal = in.Goal
	row.OverrideKcal = in.OverrideKcal
	row.OverrideProteinG = in.OverrideProteinG
	row.OverrideCarbsG = in.OverrideCarbsG
	row.OverrideFatG = in.OverrideFatG

	if err := config.DB.Save(&row).Error; err != nil {
		return nil, errInternal("profile_save_failed")
	}
	return profileOut(&row), nil
}

type NutritionTargetsResult struct {
	Daily    map[string]int `json:"daily"`
	Weekly   map[string]int `json:"weekly"`
	Warnings []string       `json:"warnings"`
}

func GetNutritionTargets(user *models.User) (*NutritionTargetsResult, *ServiceError) {
	row, serviceErr := fetchNutritionProfile(user)
	if serviceErr != nil {
		return nil, serviceErr
	}

	ageYears := utils.CalculateAge(row.BirthDate, time.Now().UTC())
	weightKg, _ := row.WeightKg.Float64()

	targets, err := utils.CalculateTargets(utils.TargetInputs{
		Sex:           row.Sex,
		AgeYears:      ageYears,
		HeightCm:      row.HeightCm,
		WeightKg:      weightKg,
		ActivityLevel: row.ActivityLevel,
		Goal:          row.Goal,

		OverrideKcal:     row.OverrideKcal,
		OverrideProteinG: row.OverrideProteinG,
		OverrideCarbsG:   row.OverrideCarbsG,
		OverrideFatG:     row.OverrideFatG,
	})
	if err != nil {
		// Stored rows are pre-validated; a failure here means bad data.
		return nil, errInternal(err.Error())
	}

	return &NutritionTargetsResult{
		Daily: map[string]int{
			"kcal":      targets.DailyKcal,
			"protein_g": targets.DailyProteinG,
			"carbs_g":   targets.DailyCarbsG,
			"fat_g":     targets.DailyFatG,
		},
		Weekly: map[string]int{
			"kcal":      targets.WeeklyKcal,
			"protein_g": targets.WeeklyProteinG,
			"carbs_g":   targets.WeeklyCarbsG,
			"fat_g":     targets.WeeklyFatG,
		},
		Warnings: targets.Warnings,
	}, nil
}
