package config

import (
	"fmt"
	"os"

	"github.com/admsdev98/NutriOrxata/models"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var (
	DB  *gorm.DB
	Log *zap.SugaredLogger
)

// AppConfig is read once from the environment at startup.
type AppConfig struct {
	Environment      string
	JWTSecret        string
	CORSOrigins      string
	PublicAPIBaseURL string

	SESFromEmail string
	AWSRegion    string

	DevSeedWorkerEnabled  bool
	DevSeedWorkerEmail    string
	DevSeedWorkerPassword string
}

var App AppConfig

func Load() {
	// .env is optional outside development; real deployments set the
	// environment directly.
	_ = godotenv.Load()

	InitLogger()

	App = AppConfig{
		Environment:      getenv("API_ENVIRONMENT", "development"),
		JWTSecret:        os.Getenv("API_JWT_SECRET"),
		CORSOrigins:      os.Getenv("API_CORS_ORIGINS"),
		PublicAPIBaseURL: getenv("PUBLIC_API_BASE_URL", "http://localhost:8080/api"),

		SESFromEmail: os.Getenv("SES_EMAIL"),
		AWSRegion:    os.Getenv("AWS_REGION"),

		DevSeedWorkerEnabled:  os.Getenv("DEV_SEED_WORKER_ENABLED") == "true",
		DevSeedWorkerEmail:    os.Getenv("DEV_SEED_WORKER_EMAIL"),
		DevSeedWorkerPassword: os.Getenv("DEV_SEED_WORKER_PASSWORD"),
	}

	if App.JWTSecret == "" {
		Log.Fatal("API_JWT_SECRET is not set")
	}
}

func InitLogger() {
	if Log != nil {
		return
	}
	logger, err := zap.NewProduction()
	if err != nil {
		panic(fmt.Sprintf("logger init failed: %v", err))
	}
	Log = logger.Sugar()
}

func IsDevelopment() bool {
	return App.Environment == "development"
}

func InitDB() {
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		getenv("DB_HOST", "localhost"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		getenv("DB_PORT", "5432"),
	)

	var err error
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		Log.Fatalf("Failed to connect to database: %v", err)
	}

	err = DB.AutoMigrate(
		&models.Tenant{},
		&models.User{},
		&models.EmailVerificationToken{},
		&models.NutritionProfile{},
		&models.Ingredient{},
		&models.DishTemplate{},
		&models.DishTemplateItem{},
		&models.WeekPlanTemplate{},
		&models.WeekPlanTemplateItem{},
		&models.WeekPlanInstance{},
		&models.WeekPlanInstanceItem{},
	)
	if err != nil {
		Log.Fatalf("AutoMigrate failed: %v", err)
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
