package auth

import (
	"database/sql"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"mangamanager/internal/user"
)

const CtxUserIDKey = "user_id"
const CtxUsernameKey = "username"

// RequireUser validates the bearer token and resolves its subject to an
// existing, active user. The user id and username are placed on the context.
func RequireUser(db *sql.DB, secret []byte, alg string) gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.GetHeader("Authorization")
		if h == "" || !strings.HasPrefix(h, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}
		tokenStr := strings.TrimPrefix(h, "Bearer ")
		username, err := ParseToken(secret, alg, tokenStr)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}
		u, err := user.GetByUsername(db, username)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}
		if !u.Active {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "inactive user"})
			return
		}
		c.Set(CtxUserIDKey, u.ID)
		c.Set(CtxUsernameKey, u.Username)
		c.Next()
	}
}
