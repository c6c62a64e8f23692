package middlewares

import (
	"net/http"
	"strings"

	"github.com/admsdev98/NutriOrxata/config"
	"github.com/admsdev98/NutriOrxata/models"
	"github.com/admsdev98/NutriOrxata/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	ContextUser   = "user"
	ContextClaims = "claims"
)

func bearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return ""
	}
	const prefix = "bearer "
	if len(authHeader) < len(prefix) || !strings.EqualFold(authHeader[:len(prefix)], prefix) {
		return ""
	}
	return strings.TrimSpace(authHeader[len(prefix):])
}

// AuthMiddleware validates the bearer token and loads the current user.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := bearerToken(c)
		if tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing_token"})
			return
		}

		claims, err := utils.ParseJWT(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid_token"})
			return
		}

		userID, err := uuid.Parse(claims.Subject)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid_token"})
			return
		}

		var user models.User
		if err := config.DB.Where("id = ?", userID).First(&user).Error; err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "user_not_found"})
			return
		}
		if !user.IsActive {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "user_inactive"})
			return
		}

		c.Set(ContextUser, &user)
		c.Set(ContextClaims, claims)

		c.Next()
	}
}

// RequireWriteAccess gates mutations on the access_mode claim issued at
// login. The claim is trusted as-is: a tenant expiring mid-session keeps
// write access until the token is refreshed (window bounded by token TTL).
func RequireWriteAccess() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := c.MustGet(ContextClaims).(*utils.AccessClaims)
		if !ok || claims.AccessMode == utils.AccessModeReadOnly {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "read_only"})
			return
		}
		c.Next()
	}
}

// CurrentUser fetches the user loaded by AuthMiddleware.
func CurrentUser(c *gin.Context) *models.User {
	return c.MustGet(ContextUser).(*models.User)
}
