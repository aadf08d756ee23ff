package middleware

import (
	"net/http"

	"fleetwatch-backend/internal/models"
	"fleetwatch-backend/internal/services"
	"fleetwatch-backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

const (
	// ContextUserKey is the gin context key the authenticated user is stored under.
	ContextUserKey = "currentUser"
	// ContextUserIDKey holds just the authenticated user's ID.
	ContextUserIDKey = "currentUserID"
)

// AuthMiddleware validates the bearer token on every request and attaches
// the resolved user to the request context.
func AuthMiddleware(auth *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			utils.ErrorResponse(c, http.StatusUnauthorized, "Authorization header required", nil)
			c.Abort()
			return
		}

		user, err := auth.ResolveToken(c.Request.Context(), header)
		if err != nil {
			utils.ErrorResponse(c, http.StatusUnauthorized, "Invalid or expired token", err)
			c.Abort()
			return
		}

		c.Set(ContextUserKey, user)
		c.Set(ContextUserIDKey, user.ID)
		c.Next()
	}
}

// CurrentUser returns the authenticated user stored by AuthMiddleware.
func CurrentUser(c *gin.Context) (*models.AuthUser, bool) {
	v, ok := c.Get(ContextUserKey)
	if !ok {
		return nil, false
	}
	user, ok := v.(*models.AuthUser)
	return user, ok
}
