// internal/middleware/auth.go
package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/prodmarket/marketplace-backend/internal/models"
	"github.com/prodmarket/marketplace-backend/internal/services"
	"github.com/prodmarket/marketplace-backend/internal/utils"
)

const (
	ContextActorKey  = "actor"
	ContextClaimsKey = "claims"
)

// AuthRequired validates the bearer token and stores the actor in the
// request context.
func AuthRequired(jwtManager *utils.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := extractClaims(c, jwtManager)
		if !ok {
			return
		}

		c.Set(ContextClaimsKey, claims)
		c.Set(ContextActorKey, services.Actor{
			ID:         claims.UserID,
			Email:      claims.Email,
			Role:       claims.Role,
			BusinessID: claims.BusinessID,
		})
		c.Next()
	}
}

// AdminRequired allows only admins past. Must run after AuthRequired.
func AdminRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := GetActor(c)
		if !ok || actor.Role != models.RoleAdmin {
			utils.ForbiddenResponse(c, "Admin access required")
			c.Abort()
			return
		}
		c.Next()
	}
}

// PasswordChangeGuard blocks users who must change their temporary
// password from using anything but the change-password endpoint. The flag
// is read from the database so a completed change takes effect without
// re-login.
func PasswordChangeGuard(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := GetActor(c)
		if !ok {
			c.Next()
			return
		}

		var user models.User
		if err := db.Select("password_change_required").First(&user, "id = ?", actor.ID).Error; err != nil {
			// A token for a user that no longer exists is dead; anything
			// else is a transient failure we must not let through.
			if errors.Is(err, gorm.ErrRecordNotFound) {
				utils.UnauthorizedResponse(c, "Invalid or expired token")
			} else {
				utils.InternalErrorResponse(c, "An unexpected error occurred")
			}
			c.Abort()
			return
		}

		if user.PasswordChangeRequired {
			utils.ForbiddenResponse(c, "Password change required before continuing")
			c.Abort()
			return
		}
		c.Next()
	}
}

// OptionalAuth stores the actor when a valid token is present but lets
// unauthenticated requests through.
func OptionalAuth(jwtManager *utils.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.Next()
			return
		}

		token, ok := parseBearer(header)
		if !ok {
			c.Next()
			return
		}

		claims, err := jwtManager.ValidateToken(token)
		if err != nil {
			c.Next()
			return
		}

		c.Set(ContextClaimsKey, claims)
		c.Set(ContextActorKey, services.Actor{
			ID:         claims.UserID,
			Email:      claims.Email,
			Role:       claims.Role,
			BusinessID: claims.BusinessID,
		})
		c.Next()
	}
}

// GetActor retrieves the authenticated actor from the request context.
func GetActor(c *gin.Context) (services.Actor, bool) {
	value, exists := c.Get(ContextActorKey)
	if !exists {
		return services.Actor{}, false
	}
	actor, ok := value.(services.Actor)
	return actor, ok
}

func extractClaims(c *gin.Context, jwtManager *utils.JWTManager) (*utils.JWTClaims, bool) {
	header := c.GetHeader("Authorization")
	if header == "" {
		utils.UnauthorizedResponse(c, "Authorization header required")
		c.Abort()
		return nil, false
	}

	token, ok := parseBearer(header)
	if !ok {
		utils.UnauthorizedResponse(c, "Invalid authorization header format")
		c.Abort()
		return nil, false
	}

	claims, err := jwtManager.ValidateToken(token)
	if err != nil {
		utils.UnauthorizedResponse(c, "Invalid or expired token")
		c.Abort()
		return nil, false
	}

	return claims, true
}

func parseBearer(header string) (string, bool) {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	return strings.TrimSpace(parts[1]), true
}
