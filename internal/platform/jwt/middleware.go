package jwtmw

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// ContextUserID is the gin context key holding the authenticated user's ID.
const ContextUserID = "userID"

// Verifier validates a token of the given class and returns the user ID.
// Following Go convention: the interface is defined by the consumer
// (middleware), not the provider (Manager).
type Verifier interface {
	Verify(token, class string) (uint, error)
}

// AuthRequired returns a Gin middleware function that validates access tokens
// and restricts access to authenticated users only. This is the single
// enforcement point: downstream handlers only read the attached user ID.
func AuthRequired(verifier Verifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		// 1. Get Authorization header
		auth := c.GetHeader("Authorization")
		if !strings.HasPrefix(auth, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "access token required"})
			return
		}
		tokenStr := strings.TrimPrefix(auth, "Bearer ")

		// 2. Verify as an access-class token
		userID, err := verifier.Verify(tokenStr, ClassAccess)
		if err != nil {
			// Validation error or invalid token
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "invalid or expired access token"})
			return
		}

		// 3. Attach the resolved identity to the request context
		c.Set(ContextUserID, userID)

		// 4. Pass control to the next handler
		c.Next()
	}
}

// UserIDFromContext returns the authenticated user ID set by AuthRequired.
func UserIDFromContext(c *gin.Context) (uint, bool) {
	v, ok := c.Get(ContextUserID)
	if !ok {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok
}
