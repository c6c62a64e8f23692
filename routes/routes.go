package routes

import (
	"net/http"
	"strings"

	appconfig "github.com/admsdev98/NutriOrxata/config"
	"github.com/admsdev98/NutriOrxata/controllers"
	"github.com/admsdev98/NutriOrxata/middlewares"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func parseCORSOrigins(raw string) []string {
	var origins []string
	for _, origin := range strings.Split(raw, ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			origins = append(origins, origin)
		}
	}
	return origins
}

func SetupRouter() *gin.Engine {
	r := gin.Default()

	if origins := parseCORSOrigins(appconfig.App.CORSOrigins); len(origins) > 0 {
		corsConfig := cors.DefaultConfig()
		corsConfig.AllowOrigins = origins
		corsConfig.AllowCredentials = true
		corsConfig.AllowHeaders = []string{"*"}
		r.Use(cors.New(corsConfig))
	}

	health := func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
	r.GET("/health", health)
	r.GET("/api/health", health)

	// Public auth routes
	auth := r.Group("/api/auth")
	{
		auth.POST("/register", controllers.Register)
		auth.POST("/verify-email", controllers.VerifyEmail)
		auth.GET("/verify-email", controllers.VerifyEmailLink)
		auth.POST("/login", controllers.Login)
	}

	authed := r.Group("/api")
	authed.Use(middlewares.AuthMiddleware())
	write := middlewares.RequireWriteAccess()
	{
		authed.GET("/auth/me", controllers.Me)

		nutrition := authed.Group("/nutrition")
		{
			nutrition.GET("/profile/me", controllers.GetNutritionProfile)
			nutrition.PUT("/profile/me", write, controllers.UpsertNutritionProfile)
			nutrition.GET("/targets/me", controllers.GetNutritionTargets)
		}

		food := authed.Group("/food")
		{
			food.GET("/ingredients", controllers.ListIngredients)
			food.POST("/ingredients", write, controllers.CreateIngredient)
			food.GET("/ingredients/:id", controllers.GetIngredient)
			food.PUT("/ingredients/:id", write, controllers.UpdateIngredient)
			food.GET("/ingredients/:id/used-by", controllers.IngredientUsedBy)
			food.DELETE("/ingredients/:id", write, controllers.DeleteIngredient)

			food.GET("/dish-templates", controllers.ListDishTemplates)
			food.POST("/dish-templates", write, controllers.CreateDishTemplate)
			food.GET("/dish-templates/:id", controllers.GetDishTemplate)
			food.PUT("/dish-templates/:id", write, controllers.UpdateDishTemplate)
			food.DELETE("/dish-templates/:id", write, controllers.DeleteDishTemplate)
		}

		planning := authed.Group("/planning")
		{
			planning.GET("/week-plan-templates", controllers.ListWeekPlanTemplates)
			planning.POST("/week-plan-templates", write, controllers.CreateWeekPlanTemplate)
			planning.GET("/week-plan-templates/:id", controllers.GetWeekPlanTemplate)
			planning.PUT("/week-plan-templates/:id", write, controllers.UpdateWeekPlanTemplate)
			planning.DELETE("/week-plan-templates/:id", write, controllers.DeleteWeekPlanTemplate)

			planning.GET("/dish-suggestions", controllers.ListDishSuggestions)

			planning.POST("/week-plan-instances/from-template", write, controllers.CreateWeekPlanInstanceFromTemplate)
			planning.GET("/week-plan-instances/by-client-week", controllers.GetWeekPlanInstanceByClientWeek)
			planning.GET("/week-plan-instances/:id", controllers.GetWeekPlanInstance)
			planning.PUT("/week-plan-instances/:id", write, controllers.UpdateWeekPlanInstance)
		}
	}

	return r
}
