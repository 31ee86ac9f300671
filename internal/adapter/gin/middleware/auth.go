package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"task-manager-api/pkg/auth"
)

// userIDKey is the gin context key under which the authenticated user's ID
// is stored by RequireAuth.
const userIDKey = "auth.userID"

// RequireAuth gates protected routes on a valid bearer token.
//
// The request is rejected with:
//   - 401 when the Authorization header is missing,
//   - 401 when the header has no bearer token segment,
//   - 403 when the token fails verification (expired or invalid).
//
// On success the token's subject is stored in the gin context and the
// request proceeds. The gate only reads; it never touches persisted state.
func RequireAuth(tokens *auth.TokenService, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Token requerido"})
			return
		}

		parts := strings.Fields(header)
		if len(parts) < 2 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Token inválido"})
			return
		}

		userID, err := tokens.Verify(parts[1])
		if err != nil {
			log.Warn("token rejected", zap.String("path", c.Request.URL.Path), zap.Error(err))
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "Token expirado o inválido"})
			return
		}

		c.Set(userIDKey, userID)
		c.Next()
	}
}

// UserID retrieves the authenticated user's ID set by RequireAuth.
// Returns (0, false) on routes that did not pass through the gate.
func UserID(c *gin.Context) (int64, bool) {
	v, ok := c.Get(userIDKey)
	if !ok {
		return 0, false
	}
	id, ok := v.(int64)
	return id, ok && id > 0
}
