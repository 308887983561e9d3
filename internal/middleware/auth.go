package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"motorent/internal/service"
)

const (
	contextUserIDKey   = "authUserID"
	contextUserTypeKey = "authUserType"
)

// TokenVerifier validates a bearer token and returns its claims.
type TokenVerifier interface {
	VerifyToken(token string) (*service.Claims, error)
}

// AuthMiddleware returns middleware that requires a valid bearer token and
// stores the verified identity on the request context.
func AuthMiddleware(verifier TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := service.ExtractBearerToken(c.GetHeader("Authorization"))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing or malformed authorization header"})
			return
		}

		claims, err := verifier.VerifyToken(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}

		c.Set(contextUserIDKey, claims.UserID)
		c.Set(contextUserTypeKey, string(claims.UserType))
		c.Next()
	}
}

// UserID returns the verified user ID set by AuthMiddleware, or empty.
func UserID(c *gin.Context) string {
	return c.GetString(contextUserIDKey)
}

// UserType returns the verified user type set by AuthMiddleware, or empty.
func UserType(c *gin.Context) string {
	return c.GetString(contextUserTypeKey)
}
