// internal/interfaces/http/middleware/session.go
package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// sessionHeader carries the guest cart session between requests.
const sessionHeader = "X-Session-ID"

// GuestSession assigns a session identifier to storefront visitors.
// Clients echo the header back on subsequent requests; a missing or
// blank header gets a freshly minted ID.
func GuestSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := c.GetHeader(sessionHeader)
		if sessionID == "" {
			sessionID = uuid.New().String()
		}

		c.Set("session_id", sessionID)
		c.Header(sessionHeader, sessionID)

		c.Next()
	}
}

// GetSessionIDFromContext extracts the guest session ID from gin context
func GetSessionIDFromContext(c *gin.Context) (string, bool) {
	sessionID, exists := c.Get("session_id")
	if !exists {
		return "", false
	}
	return sessionID.(string), true
}
