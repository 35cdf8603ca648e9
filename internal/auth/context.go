package auth

import "github.com/gin-gonic/gin"

const (
	ctxUserIDKey = "userID"
	ctxEmailKey  = "userEmail"
)

// SetIdentity stores the authenticated identity on the request context.
func SetIdentity(c *gin.Context, userID, email string) {
	c.Set(ctxUserIDKey, userID)
	c.Set(ctxEmailKey, email)
}

// GetUserID returns the authenticated user's ID or empty string.
func GetUserID(c *gin.Context) string {
	if v, ok := c.Get(ctxUserIDKey); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// GetUserEmail returns the authenticated user's email or empty string.
func GetUserEmail(c *gin.Context) string {
	if v, ok := c.Get(ctxEmailKey); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}
