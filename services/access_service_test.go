package services

import (
	"net/http"
	"testing"
	"time"

	"github.com/admsdev98/NutriOrxata/models"
	"github.com/admsdev98/NutriOrxata/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var accessNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func tenantWith(status, subscription string, trialEndsAt *time.Time) *models.Tenant {
	return &models.Tenant{
		Status:             status,
		SubscriptionStatus: subscription,
		TrialEndsAt:        trialEndsAt,
	}
}

func TestTenantAccessMode(t *testing.T) {
	past := accessNow.Add(-24 * time.Hour)
	future := accessNow.Add(24 * time.Hour)

	cases := []struct {
		name   string
		tenant *models.Tenant
		want   string
	}{
		{"disabled tenant is blocked", tenantWith(models.TenantStatusDisabled, models.SubscriptionActive, nil), ModeBlocked},
		{"paid subscription is active", tenantWith(models.TenantStatusActive, models.SubscriptionActive, &past), ModeActive},
		{"trial past its end is expired", tenantWith(models.TenantStatusActive, models.SubscriptionTrial, &past), ModeExpired},
		{"trial ending now is expired", tenantWith(models.TenantStatusActive, models.SubscriptionTrial, &accessNow), ModeExpired},
		{"trial still running", tenantWith(models.TenantStatusActive, models.SubscriptionTrial, &future), ModeTrial},
		{"trial not yet started", tenantWith(models.TenantStatusActive, models.SubscriptionTrial, nil), ModeTrial},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, TenantAccessMode(tc.tenant, accessNow))
		})
	}
}

func TestResolveLoginAccessWorker(t *testing.T) {
	past := accessNow.Add(-24 * time.Hour)
	verified := accessNow.Add(-48 * time.Hour)
	worker := &models.User{Role: models.RoleWorker, EmailVerifiedAt: &verified}

	mode, serviceErr := ResolveLoginAccess(worker, tenantWith(models.TenantStatusActive, models.SubscriptionActive, nil), accessNow)
	require.Nil(t, serviceErr)
	assert.Equal(t, utils.AccessModeActive, mode)

	mode, serviceErr = ResolveLoginAccess(worker, tenantWith(models.TenantStatusActive, models.SubscriptionTrial, &past), accessNow)
	require.Nil(t, serviceErr)
	assert.Equal(t, utils.AccessModeReadOnly, mode)

	_, serviceErr = ResolveLoginAccess(worker, tenantWith(models.TenantStatusDisabled, models.SubscriptionActive, nil), accessNow)
	require.NotNil(t, serviceErr)
	assert.Equal(t, http.StatusForbidden, serviceErr.Status)
	assert.Equal(t, "tenant_blocked", serviceErr.Code)
}

func TestResolveLoginAccessUnverifiedWorker(t *testing.T) {
	worker := &models.User{Role: models.RoleWorker}
	_, serviceErr := ResolveLoginAccess(worker, tenantWith(models.TenantStatusActive, models.SubscriptionActive, nil), accessNow)
	require.NotNil(t, serviceErr)
	assert.Equal(t, http.StatusForbidden, serviceErr.Status)
	assert.Equal(t, "email_not_verified", serviceErr.Code)
}

func TestResolveLoginAccessClient(t *testing.T) {
	past := accessNow.Add(-24 * time.Hour)
	future := accessNow.Add(24 * time.Hour)
	client := &models.User{Role: models.RoleClient}

	mode, serviceErr := ResolveLoginAccess(client, tenantWith(models.TenantStatusActive, models.SubscriptionTrial, &future), accessNow)
	require.Nil(t, serviceErr)
	assert.Equal(t, utils.AccessModeActive, mode)

	for name, tenant := range map[string]*models.Tenant{
		"expired trial": tenantWith(models.TenantStatusActive, models.SubscriptionTrial, &past),
		"blocked":       tenantWith(models.TenantStatusDisabled, models.SubscriptionActive, nil),
	} {
		t.Run(name, func(t *testing.T) {
			_, serviceErr := ResolveLoginAccess(client, tenant, accessNow)
			require.NotNil(t, serviceErr)
			assert.Equal(t, http.StatusForbidden, serviceErr.Status)
			assert.Equal(t, "tenant_inactive", serviceErr.Code)
		})
	}
}

func TestSessionAccessMode(t *testing.T) {
	past := accessNow.Add(-24 * time.Hour)
	verified := accessNow.Add(-48 * time.Hour)
	worker := &models.User{Role: models.RoleWorker, EmailVerifiedAt: &verified}
	client := &models.User{Role: models.RoleClient}

	expired := tenantWith(models.TenantStatusActive, models.SubscriptionTrial, &past)
	assert.Equal(t, utils.AccessModeReadOnly, SessionAccessMode(worker, expired, accessNow))

	active := tenantWith(models.TenantStatusActive, models.SubscriptionActive, nil)
	assert.Equal(t, utils.AccessModeActive, SessionAccessMode(worker, active, accessNow))
	assert.Equal(t, utils.AccessModeActive, SessionAccessMode(client, active, accessNow))
}
