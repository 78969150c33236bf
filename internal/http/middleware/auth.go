package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Ronei-rcm/rare-toy-admin/internal/auth"
)

const authContextKey = "auth_context"

// RequireAuth validates the bearer session token and stores the auth context
// for handlers.
func RequireAuth(svc *auth.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || strings.TrimSpace(token) == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":      "missing bearer token",
				"request_id": GetRequestID(c),
			})
			return
		}

		authCtx, err := svc.Verify(strings.TrimSpace(token))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":      "invalid or expired session",
				"request_id": GetRequestID(c),
			})
			return
		}

		c.Set(authContextKey, authCtx)
		c.Next()
	}
}

// GetAuthContext returns the authenticated session, if any.
func GetAuthContext(c *gin.Context) (auth.Context, bool) {
	v, ok := c.Get(authContextKey)
	if !ok {
		return auth.Context{}, false
	}
	authCtx, ok := v.(auth.Context)
	return authCtx, ok
}
