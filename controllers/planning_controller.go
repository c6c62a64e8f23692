package controllers

import (
	"net/http"
	"time"

	"github.com/admsdev98/NutriOrxata/middlewares"
	"github.com/admsdev98/NutriOrxata/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type weekPlanTemplateInput struct {
	Name  string `json:"name" binding:"required"`
	Items []struct {
		DayKey         string  `json:"day_key" binding:"required"`
		SlotKey        string  `json:"slot_key" binding:"required"`
		DishTemplateID *string `json:"dish_template_id"`
		Notes          *string `json:"notes"`
	} `json:"items" binding:"required,min=1"`
}

func (in weekPlanTemplateInput) toService() services.WeekPlanTemplateInput {
	items := make([]services.WeekPlanTemplateItemInput, 0, len(in.Items))
	for _, item := range in.Items {
		items = append(items, services.WeekPlanTemplateItemInput{
			DayKey:         item.DayKey,
			SlotKey:        item.SlotKey,
			DishTemplateID: item.DishTemplateID,
			Notes:          item.Notes,
		})
	}
	return services.WeekPlanTemplateInput{Name: in.Name, Items: items}
}

func ListWeekPlanTemplates(c *gin.Context) {
	user := middlewares.CurrentUser(c)
	query, limit, offset := listParams(c, 50, 200)

	result, serviceErr := services.ListWeekPlanTemplates(user, query, limit, offset)
	if serviceErr != nil {
		abortServiceError(c, serviceErr)
		return
	}
	c.JSON(http.StatusOK, result)
}

func GetWeekPlanTemplate(c *gin.Context) {
	user := middlewares.CurrentUser(c)
	id, ok := pathUUID(c, "id", "invalid_template_id")
	if !ok {
		return
	}

	result, serviceErr := services.GetWeekPlanTemplate(user, id)
	if serviceErr != nil {
		abortServiceError(c, serviceErr)
		return
	}
	c.JSON(http.StatusOK, result)
}

func CreateWeekPlanTemplate(c *gin.Context) {
	user := middlewares.CurrentUser(c)

	var input weekPlanTemplateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_payload"})
		return
	}

	result, serviceErr := services.CreateWeekPlanTemplate(user, input.toService())
	if serviceErr != nil {
		abortServiceError(c, serviceErr)
		return
	}
	c.JSON(http.StatusOK, result)
}

func UpdateWeekPlanTemplate(c *gin.Context) {
	user := middlewares.CurrentUser(c)
	id, ok := pathUUID(c, "id", "invalid_template_id")
	if !ok {
		return
	}

	var input weekPlanTemplateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_payload"})
		return
	}

	result, serviceErr := services.UpdateWeekPlanTemplate(user, id, input.toService())
	if serviceErr != nil {
		abortServiceError(c, serviceErr)
		return
	}
	c.JSON(http.StatusOK, result)
}

func DeleteWeekPlanTemplate(c *gin.Context) {
	user := middlewares.CurrentUser(c)
	id, ok := pathUUID(c, "id", "invalid_template_id")
	if !ok {
		return
	}

	if serviceErr := services.DeleteWeekPlanTemplate(user, id); serviceErr != nil {
		abortServiceError(c, serviceErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func ListDishSuggestions(c *gin.Context) {
	user := middlewares.CurrentUser(c)

	slotKey := c.Query("slot_key")
	if slotKey == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_slot_key"})
		return
	}
	_, limit, _ := listParams(c, 20, 100)

	result, serviceErr := services.ListDishSuggestions(user, slotKey, c.Query("query"), limit)
	if serviceErr != nil {
		abortServiceError(c, serviceErr)
		return
	}
	c.JSON(http.StatusOK, result)
}

type instanceFromTemplateInput struct {
	TemplateID    string `json:"template_id" binding:"required"`
	ClientRef     string `json:"client_ref" binding:"required"`
	WeekStartDate string `json:"week_start_date" binding:"required"`
}

func CreateWeekPlanInstanceFromTemplate(c *gin.Context) {
	user := middlewares.CurrentUser(c)

	var input instanceFromTemplateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_payload"})
		return
	}

	templateID, err := uuid.Parse(input.TemplateID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_template_id"})
		return
	}
	weekStartDate, err := time.Parse("2006-01-02", input.WeekStartDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_week_start_date"})
		return
	}

	result, serviceErr := services.CreateWeekPlanInstanceFromTemplate(user, templateID, input.ClientRef, weekStartDate)
	if serviceErr != nil {
		abortServiceError(c, serviceErr)
		return
	}
	c.JSON(http.StatusOK, result)
}

func GetWeekPlanInstanceByClientWeek(c *gin.Context) {
	user := middlewares.CurrentUser(c)

	clientRef := c.Query("client_ref")
	if clientRef == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_client_ref"})
		return
	}
	weekStartDate, err := time.Parse("2006-01-02", c.Query("week_start_date"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_week_start_date"})
		return
	}

	result, serviceErr := services.GetWeekPlanInstanceByClientWeek(user, clientRef, weekStartDate)
	if serviceErr != nil {
		abortServiceError(c, serviceErr)
		return
	}
	c.JSON(http.StatusOK, result)
}

func GetWeekPlanInstance(c *gin.Context) {
	user := middlewares.CurrentUser(c)
	id, ok := pathUUID(c, "id", "invalid_instance_id")
	if !ok {
		return
	}

	result, serviceErr := services.GetWeekPlanInstance(user, id)
	if serviceErr != nil {
		abortServiceError(c, serviceErr)
		return
	}
	c.JSON(http.StatusOK, result)
}

type weekPlanInstanceUpdateInput struct {
	Items []struct {
		DayKey         string  `json:"day_key" binding:"required"`
		SlotKey        string  `json:"slot_key" binding:"required"`
		DishTemplateID *string `json:"dish_template_id"`
		DishName       *string `json:"dish_name"`
		Notes          *string `json:"notes"`
	} `json:"items" binding:"required,min=1"`
}

func UpdateWeekPlanInstance(c *gin.Context) {
	user := middlewares.CurrentUser(c)
	id, ok := pathUUID(c, "id", "invalid_instance_id")
	if !ok {
		return
	}

	var input weekPlanInstanceUpdateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_payload"})
		return
	}

	items := make([]services.WeekPlanInstanceItemInput, 0, len(input.Items))
	for _, item := range input.Items {
		items = append(items, services.WeekPlanInstanceItemInput{
			DayKey:         item.DayKey,
			SlotKey:        item.SlotKey,
			DishTemplateID: item.DishTemplateID,
			DishName:       item.DishName,
			Notes:          item.Notes,
		})
	}

	result, serviceErr := services.UpdateWeekPlanInstance(user, id, items)
	if serviceErr != nil {
		abortServiceError(c, serviceErr)
		return
	}
	c.JSON(http.StatusOK, result)
}
