package controllers

import (
	"net/http"
	"time"

	"github.com/admsdev98/NutriOrxata/middlewares"
	"github.com/admsdev98/NutriOrxata/services"

	"github.com/gin-gonic/gin"
)

func GetNutritionProfile(c *gin.Context) {
	user := middlewares.CurrentUser(c)

	result, serviceErr := services.GetNutritionProfile(user)
	if serviceErr != nil {
		abortServiceError(c, serviceErr)
		return
	}
	c.JSON(http.StatusOK, result)
}

type nutritionProfileInput struct {
	Sex           string  `json:"sex" binding:"required"`
	BirthDate     string  `json:"birth_date" binding:"required"`
	HeightCm      int     `json:"height_cm" binding:"required"`
	WeightKg      float64 `json:"weight_kg" binding:"required"`
	ActivityLevel string  `json:"activity_level" binding:"required"`
	Goal          string  `json:"goal" binding:"required"`

	OverrideKcal     *int `json:"override_kcal"`
	OverrideProteinG *int `json:"override_protein_g"`
	OverrideCarbsG   *int `json:"override_carbs_g"`
	OverrideFatG     *int `json:"override_fat_g"`
}

func UpsertNutritionProfile(c *gin.Context) {
	user := middlewares.CurrentUser(c)

	var input nutritionProfileInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_payload"})
		return
	}

	birthDate, err := time.Parse("2006-01-02", input.BirthDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_birth_date"})
		return
	}

	result, serviceErr := services.UpsertNutritionProfile(user, services.NutritionProfileInput{
		Sex:           input.Sex,
		BirthDate:     birthDate,
		HeightCm:      input.HeightCm,
		WeightKg:      input.WeightKg,
		ActivityLevel: input.ActivityLevel,
		Goal:          input.Goal,

		OverrideKcal:     input.OverrideKcal,
		OverrideProteinG: input.OverrideProteinG,
		OverrideCarbsG:   input.OverrideCarbsG,
		OverrideFatG:     input.OverrideFatG,
	})
	if serviceErr != nil {
		abortServiceError(c, serviceErr)
		return
	}
	c.JSON(http.StatusOK, result)
}

func GetNutritionTargets(c *gin.Context) {
	user := middlewares.CurrentUser(c)

	result, serviceErr := services.GetNutritionTargets(user)
	if serviceErr != nil {
		abortServiceError(c, serviceErr)
		return
	}
	c.JSON(http.StatusOK, result)
}
