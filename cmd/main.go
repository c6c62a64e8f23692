package main

import (
	"os"

	"github.com/admsdev98/NutriOrxata/config"
	"github.com/admsdev98/NutriOrxata/routes"
	"github.com/admsdev98/NutriOrxata/services"
	"github.com/admsdev98/NutriOrxata/utils"
)

func main() {
	config.Load()
	config.InitDB()
	utils.InitMailer()
	services.EnsureDevWorkerSeed()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	r := routes.SetupRouter()
	if err := r.Run(":" + port); err != nil {
		config.Log.Fatalf("server stopped: %v", err)
	}
}
