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

const (
	verificationTokenTTL = 48 * time.Hour
	trialDuration        = 30 * 24 * time.Hour
)

type RegisterResult struct {
	// DevVerifyToken echoes the raw verification token in development so
	// the flow can be exercised without a mailbox.
	DevVerifyToken string
}

// RegisterWorker creates a tenant in trial plus its first worker user and
// issues a hashed one-time verification token.
func RegisterWorker(email, password string) (*RegisterResult, *ServiceError) {
	email = strings.ToLower(strings.TrimSpace(email))

	var existing models.User
	err := config.DB.Where("email = ? AND role = ?", email, models.RoleWorker).First(&existing).Error
	if err == nil {
		return nil, errConflict("email_in_use")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errInternal("registration_failed")
	}

	hashed, err := utils.HashPassword(password)
	if err != nil {
		return nil, errInternal("registration_failed")
	}

	rawToken, err := utils.NewVerificationToken()
	if err != nil {
		return nil, errInternal("registration_failed")
	}

	now := time.Now().UTC()
	tenant := models.Tenant{
		ID:                 uuid.New(),
		Status:             models.TenantStatusActive,
		SubscriptionStatus: models.SubscriptionTrial,
		CreatedAt:          now,
	}
	user := models.User{
		ID:           uuid.New(),
		TenantID:     tenant.ID,
		Role:         models.RoleWorker,
		Email:        email,
		PasswordHash: hashed,
		IsActive:     true,
		Locale:       "es-ES",
		Timezone:     "Europe/Madrid",
		CreatedAt:    now,
	}
	token := models.EmailVerificationToken{
		ID:        uuid.New(),
		TenantID:  tenant.ID,
		UserID:    user.ID,
		TokenHash: utils.HashVerificationToken(rawToken),
		ExpiresAt: now.Add(verificationTokenTTL),
		CreatedAt: now,
	}

	err = config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&tenant).Error; err != nil {
			return err
		}
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		return tx.Create(&token).Error
	})
	if err != nil {
		return nil, errConflict("email_in_use")
	}

	// Fire-and-forget: delivery failures never undo the registration.
	if err := utils.SendVerificationEmail(email, rawToken); err != nil {
		config.Log.Warnf("verification email to %s failed: %v", email, err)
	}

	result := &RegisterResult{}
	if config.IsDevelopment() {
		result.DevVerifyToken = rawToken
	}
	return result, nil
}

// VerifyEmail consumes a verification token at most once. The first
// verification starts the tenant's 30-day trial.
func VerifyEmail(rawToken string) *ServiceError {
	tokenHash := utils.HashVerificationToken(rawToken)
	now := time.Now().UTC()

	var token models.EmailVerificationToken
	err := config.DB.Where("token_hash = ? AND consumed_at IS NULL", tokenHash).First(&token).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errBadRequest("invalid_token")
	}
	if err != nil {
		return errInternal("verification_failed")
	}
	if now.After(token.ExpiresAt) {
		return errBadRequest("token_expired")
	}

	err = config.DB.Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.Where("id = ?", token.UserID).First(&user).Error; err != nil {
			return err
		}
		if user.EmailVerifiedAt == nil {
			if err := tx.Model(&user).Update("email_verified_at", now).Error; err != nil {
				return err
			}
		}

		var tenant models.Tenant
		if err := tx.Where("id = ?", token.TenantID).First(&tenant).Error; err != nil {
			return err
		}
		if tenant.TrialStartsAt == nil {
			trialEnd := now.Add(trialDuration)
			updates := map[string]interface{}{
				"trial_starts_at":     now,
				"trial_ends_at":       trialEnd,
				"subscription_status": models.SubscriptionTrial,
			}
			if err := tx.Model(&tenant).Updates(updates).Error; err != nil {
				return err
			}
		}

		return tx.Model(&token).Update("consumed_at", now).Error
	})
	if err != nil {
		return errInternal("verification_failed")
	}
	return nil
}

type LoginResult struct {
	AccessToken string
	AccessMode  string
}

func Login(email, password string) (*LoginResult, *ServiceError) {
	email = strings.ToLower(strings.TrimSpace(email))

	var user models.User
	err := config.DB.Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errUnauthorized("invalid_credentials")
	}
	if err != nil {
		return nil, errInternal("login_failed")
	}
	if !user.IsActive {
		return nil, errForbidden("user_inactive")
	}
	if !utils.CheckPasswordHash(password, user.PasswordHash) {
		return nil, errUnauthorized("invalid_credentials")
	}

	var tenant models.Tenant
	if err := config.DB.Where("id = ?", user.TenantID).First(&tenant).Error; err != nil {
		return nil, errInternal("login_failed")
	}

	accessMode, serviceErr := ResolveLoginAccess(&user, &tenant, time.Now().UTC())
	if serviceErr != nil {
		return nil, serviceErr
	}

	token, err := utils.GenerateJWT(user.ID.String(), user.TenantID.String(), user.Role, accessMode)
	if err != nil {
		return nil, errInternal("login_failed")
	}

	return &LoginResult{AccessToken: token, AccessMode: accessMode}, nil
}

type MeResult struct {
	ID         string `json:"id"`
	TenantID   string `json:"tenant_id"`
	Role       string `json:"role"`
	Email      string `json:"email"`
	AccessMode string `json:"access_mode"`
}

// Me recomputes the access mode from live tenant state rather than the
// token, so mid-session trial expiry is observable.
func Me(user *models.User) (*MeResult, *ServiceError) {
	var tenant models.Tenant
	if err := config.DB.Where("id = ?", user.TenantID).First(&tenant).Error; err != nil {
		return nil, errInternal("tenant_lookup_failed")
	}

	return &MeResult{
		ID:         user.ID.String(),
		TenantID:   user.TenantID.String(),
		Role:       user.Role,
		Email:      user.Email,
		AccessMode: SessionAccessMode(user, &tenant, time.Now().UTC()),
	}, nil
}
