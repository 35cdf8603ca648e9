package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/swiftroute/bus-ticketing-backend/internal/auth"
	"github.com/swiftroute/bus-ticketing-backend/internal/user"
)

// RequireAdmin ensures the authenticated user is an administrator.
// It MUST be used after auth.AuthRequired middleware.
func RequireAdmin(userService user.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := auth.GetUserID(c)
		if userID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		u, err := userService.GetByID(c.Request.Context(), userID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
			return
		}

		if !u.IsAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden: admin access required"})
			return
		}

		c.Next()
	}
}
