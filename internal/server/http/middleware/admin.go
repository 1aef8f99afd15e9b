package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// PrincipalVerifier checks a presented key against the single
// privileged principal.
type PrincipalVerifier interface {
	VerifyPrincipal(key string) error
}

// AdminRequired restricts a route group to the privileged principal.
func AdminRequired(verifier PrincipalVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := extractBearer(c)
		if key == "" {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}
		if err := verifier.VerifyPrincipal(key); err != nil {
			c.AbortWithStatus(http.StatusForbidden)
			return
		}
		c.Next()
	}
}

func extractBearer(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if strings.HasPrefix(strings.ToLower(authHeader), "bearer ") {
		return strings.TrimSpace(authHeader[7:])
	}
	return ""
}
