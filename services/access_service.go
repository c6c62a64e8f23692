package services

import (
	"time"

	"github.com/admsdev98/NutriOrxata/models"
	"github.com/admsdev98/NutriOrxata/utils"
)

const (
	ModeBlocked = "blocked"
	ModeActive  = "active"
	ModeTrial   = "trial"
	ModeExpired = "expired"
)

// TenantAccessMode resolves the tenant-level mode. Total over its inputs:
// always returns one of blocked|active|expired|trial.
func TenantAccessMode(tenant *models.Tenant, now time.Time) string {
	if tenant.Status != models.TenantStatusActive {
		return ModeBlocked
	}
	if tenant.SubscriptionStatus == models.SubscriptionActive {
		return ModeActive
	}
	if tenant.TrialEndsAt != nil && !now.Before(*tenant.TrialEndsAt) {
		return ModeExpired
	}
	return ModeTrial
}

// ResolveLoginAccess projects the tenant mode onto a per-session access
// mode for the given role. Workers with an expired trial are demoted to
// read-only but may still log in; clients have no read-only tier.
func ResolveLoginAccess(user *models.User, tenant *models.Tenant, now time.Time) (string, *ServiceError) {
	mode := TenantAccessMode(tenant, now)

	if user.Role == models.RoleWorker {
		if user.EmailVerifiedAt == nil {
			return "", errForbidden("email_not_verified")
		}
		if mode == ModeBlocked {
			return "", errForbidden("tenant_blocked")
		}
		if mode == ModeExpired {
			return utils.AccessModeReadOnly, nil
		}
		return utils.AccessModeActive, nil
	}

	if mode == ModeExpired || mode == ModeBlocked {
		return "", errForbidden("tenant_inactive")
	}
	return utils.AccessModeActive, nil
}

// SessionAccessMode is the live recomputation used by /me, so trial expiry
// is visible without re-login.
func SessionAccessMode(user *models.User, tenant *models.Tenant, now time.Time) string {
	mode := TenantAccessMode(tenant, now)
	if user.Role == models.RoleWorker && mode == ModeExpired {
		return utils.AccessModeReadOnly
	}
	return utils.AccessModeActive
}
