package mw

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"mindcare-backend/internal/auth"
	"mindcare-backend/internal/model"
)

const (
	ctxUserID   = "auth_user_id"
	ctxUserRole = "auth_user_role"
)

// Authenticate verifies the Bearer token and records the caller's
// identity on the request context.
func Authenticate(issuer *auth.Issuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authorization required"})
			return
		}

		claims, err := issuer.Verify(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}

		c.Set(ctxUserID, claims.UserID)
		c.Set(ctxUserRole, claims.Role)
		c.Next()
	}
}

// RequireRole rejects callers whose role is not one of the given roles.
func RequireRole(roles ...model.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := UserRole(c)
		for _, r := range roles {
			if role == r {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "insufficient permissions"})
	}
}

// UserID returns the authenticated caller's user ID, or 0 when the
// request did not pass Authenticate.
func UserID(c *gin.Context) int64 {
	if v, ok := c.Get(ctxUserID); ok {
		if id, ok := v.(int64); ok {
			return id
		}
	}
	return 0
}

// UserRole returns the authenticated caller's role.
func UserRole(c *gin.Context) model.Role {
	if v, ok := c.Get(ctxUserRole); ok {
		if role, ok := v.(model.Role); ok {
			return role
		}
	}
	return ""
}
