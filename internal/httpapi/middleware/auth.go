package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/polyglotcap/captions/internal/auth"
	"github.com/polyglotcap/captions/internal/common"
)

// UserKey is the gin context key under which AuthRequired binds the
// authenticated username.
const UserKey = "auth_user"

func AuthRequired(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		const prefix = "Bearer "
		if !strings.HasPrefix(header, prefix) {
			common.Fail(c, http.StatusUnauthorized, 40101, "missing bearer token")
			c.Abort()
			return
		}

		username, err := auth.ParseToken(strings.TrimSpace(header[len(prefix):]), secret)
		if err != nil {
			common.Fail(c, http.StatusUnauthorized, 40102, "invalid or expired token")
			c.Abort()
			return
		}

		c.Set(UserKey, username)
		c.Next()
	}
}
