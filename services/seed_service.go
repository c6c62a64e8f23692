package services

import (
	"errors"
	"strings"
	"time"

	"github.com/admsdev98/NutriOrxata/config"
	"github.com/admsdev98/NutriOrxata/models"
	"github.com/admsdev98/NutriOrxata/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// EnsureDevWorkerSeed creates a verified worker with an active tenant so the
// app is usable right after a fresh migration. Development only, idempotent.
func EnsureDevWorkerSeed() {
	if !config.IsDevelopment() || !config.App.DevSeedWorkerEnabled {
		return
	}

	email := strings.ToLower(strings.TrimSpace(config.App.DevSeedWorkerEmail))
	password := config.App.DevSeedWorkerPassword
	if email == "" || password == "" {
		return
	}

	var user models.User
	err := config.DB.Where("email = ? AND role = ?", email, models.RoleWorker).First(&user).Error
	if err == nil {
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		config.Log.Warnf("dev worker seed lookup failed: %v", err)
		return
	}

	hashed, err := utils.HashPassword(password)
	if err != nil {
		config.Log.Warnf("dev worker seed hash failed: %v", err)
		return
	}

	now := time.Now().UTC()
	tenant := models.Tenant{
		ID:                 uuid.New(),
		Status:             models.TenantStatusActive,
		SubscriptionStatus: models.SubscriptionActive,
		TrialStartsAt:      &now,
		CreatedAt:          now,
	}
	seedUser := models.User{
		ID:              uuid.New(),
		TenantID:        tenant.ID,
		Role:            models.RoleWorker,
		Email:           email,
		EmailVerifiedAt: &now,
		PasswordHash:    hashed,
		IsActive:        true,
		Locale:          "es-ES",
		Timezone:        "Europe/Madrid",
		CreatedAt:       now,
	}

	err = config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&tenant).Error; err != nil {
			return err
		}
		return tx.Create(&seedUser).Error
	})
	if err != nil {
		config.Log.Warnf("dev worker seed failed: %v", err)
		return
	}
	config.Log.Infow("seeded dev worker", "email", email)
}
