package controllers

import (
	"net/http"
	"strconv"

	"github.com/admsdev98/NutriOrxata/middlewares"
	"github.com/admsdev98/NutriOrxata/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func listParams(c *gin.Context, defaultLimit, maxLimit int) (query string, limit, offset int) {
	query = c.Query("query")
	limit = defaultLimit
	if raw := c.Query("limit"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v >= 1 && v <= maxLimit {
			limit = v
		}
	}
	if raw := c.Query("offset"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v >= 0 {
			offset = v
		}
	}
	return query, limit, offset
}

func pathUUID(c *gin.Context, name, code string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": code})
		return uuid.Nil, false
	}
	return id, true
}

type ingredientInput struct {
	Name            string   `json:"name" binding:"required"`
	KcalPer100g     float64  `json:"kcal_per_100g" binding:"gte=0"`
	ProteinGPer100g float64  `json:"protein_g_per_100g" binding:"gte=0"`
	CarbsGPer100g   float64  `json:"carbs_g_per_100g" binding:"gte=0"`
	FatGPer100g     float64  `json:"fat_g_per_100g" binding:"gte=0"`
	ServingSizeG    *float64 `json:"serving_size_g" binding:"omitempty,gt=0"`
}

func (in ingredientInput) toService() services.IngredientInput {
	return services.IngredientInput{
		Name:            in.Name,
		KcalPer100g:     in.KcalPer100g,
		ProteinGPer100g: in.ProteinGPer100g,
		CarbsGPer100g:   in.CarbsGPer100g,
		FatGPer100g:     in.FatGPer100g,
		ServingSizeG:    in.ServingSizeG,
	}
}

func ListIngredients(c *gin.Context) {
	user := middlewares.CurrentUser(c)
	query, limit, offset := listParams(c, 50, 200)

	result, serviceErr := services.ListIngredients(user, query, limit, offset)
	if serviceErr != nil {
		abortServiceError(c, serviceErr)
		return
	}
	c.JSON(http.StatusOK, result)
}

func CreateIngredient(c *gin.Context) {
	user := middlewares.CurrentUser(c)

	var input ingredientInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_payload"})
		return
	}

	result, serviceErr := services.CreateIngredient(user, input.toService())
	if serviceErr != nil {
		abortServiceError(c, serviceErr)
		return
	}
	c.JSON(http.StatusOK, result)
}

func GetIngredient(c *gin.Context) {
	user := middlewares.CurrentUser(c)
	id, ok := pathUUID(c, "id", "invalid_ingredient_id")
	if !ok {
		return
	}

	result, serviceErr := services.GetIngredient(user, id)
	if serviceErr != nil {
		abortServiceError(c, serviceErr)
		return
	}
	c.JSON(http.StatusOK, result)
}

func UpdateIngredient(c *gin.Context) {
	user := middlewares.CurrentUser(c)
	id, ok := pathUUID(c, "id", "invalid_ingredient_id")
	if !ok {
		return
	}

	var input ingredientInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_payload"})
		return
	}

	result, serviceErr := services.UpdateIngredient(user, id, input.toService())
	if serviceErr != nil {
		abortServiceError(c, serviceErr)
		return
	}
	c.JSON(http.StatusOK, result)
}

func IngredientUsedBy(c *gin.Context) {
	user := middlewares.CurrentUser(c)
	id, ok := pathUUID(c, "id", "invalid_ingredient_id")
	if !ok {
		return
	}

	result, serviceErr := services.IngredientUsedBy(user, id)
	if serviceErr != nil {
		abortServiceError(c, serviceErr)
		return
	}
	c.JSON(http.StatusOK, result)
}

func DeleteIngredient(c *gin.Context) {
	user := middlewares.CurrentUser(c)
	id, ok := pathUUID(c, "id", "invalid_ingredient_id")
	if !ok {
		return
	}

	if serviceErr := services.DeleteIngredient(user, id); serviceErr != nil {
		abortServiceError(c, serviceErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

type dishTemplateInput struct {
	Name  string `json:"name" binding:"required"`
	Items []struct {
		IngredientID string  `json:"ingredient_id" binding:"required"`
		QuantityG    float64 `json:"quantity_g" binding:"required,gt=0"`
	} `json:"items" binding:"required,min=1"`
}

func (in dishTemplateInput) toService() services.DishTemplateInput {
	items := make([]services.DishItemInput, 0, len(in.Items))
	for _, item := range in.Items {
		items = append(items, services.DishItemInput{
			IngredientID: item.IngredientID,
			QuantityG:    item.QuantityG,
		})
	}
	return services.DishTemplateInput{Name: in.Name, Items: items}
}

func ListDishTemplates(c *gin.Context) {
	user := middlewares.CurrentUser(c)
	query, limit, offset := listParams(c, 50, 200)

	result, serviceErr := services.ListDishTemplates(user, query, limit, offset)
	if serviceErr != nil {
		abortServiceError(c, serviceErr)
		return
	}
	c.JSON(http.StatusOK, result)
}

func GetDishTemplate(c *gin.Context) {
	user := middlewares.CurrentUser(c)
	id, ok := pathUUID(c, "id", "invalid_dish_template_id")
	if !ok {
		return
	}

	result, serviceErr := services.GetDishTemplate(user, id)
	if serviceErr != nil {
		abortServiceError(c, serviceErr)
		return
	}
	c.JSON(http.StatusOK, result)
}

func CreateDishTemplate(c *gin.Context) {
	user := middlewares.CurrentUser(c)

	var input dishTemplateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_payload"})
		return
	}

	result, serviceErr := services.CreateDishTemplate(user, input.toService())
	if serviceErr != nil {
		abortServiceError(c, serviceErr)
		return
	}
	c.JSON(http.StatusOK, result)
}

func UpdateDishTemplate(c *gin.Context) {
	user := middlewares.CurrentUser(c)
	id, ok := pathUUID(c, "id", "invalid_dish_template_id")
	if !ok {
		return
	}

	var input dishTemplateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_payload"})
		return
	}

	result, serviceErr := services.UpdateDishTemplate(user, id, input.toService())
	if serviceErr != nil {
		abortServiceError(c, serviceErr)
		return
	}
	c.JSON(http.StatusOK, result)
}

func DeleteDishTemplate(c *gin.Context) {
	user := middlewares.CurrentUser(c)
	id, ok := pathUUID(c, "id", "invalid_dish_template_id")
	if !ok {
		return
	}

	if serviceErr := services.DeleteDishTemplate(user, id); serviceErr != nil {
		abortServiceError(c, serviceErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
