// Package middleware provides HTTP middleware for the back-office API.
package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/webteam-oss/backoffice-api/internal/metrics"
	"github.com/webteam-oss/backoffice-api/internal/models"
	"github.com/webteam-oss/backoffice-api/internal/rbac"
	"github.com/webteam-oss/backoffice-api/internal/service"
)

// identityKey is the gin context key holding the resolved account.
const identityKey = "auth.identity"

// RequireAuth resolves the bearer token to an account and attaches it to the
// request context. The account is re-fetched from the store on every
// request; claims baked into the token are never trusted for authorization.
func RequireAuth(auth service.AuthService, m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "not authorized, no token"})
			return
		}

		user, err := auth.ResolveIdentity(c.Request.Context(), token)
		if err != nil {
			m.TokenRejected.Inc()
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "not authorized, token failed"})
			return
		}

		SetIdentity(c, user)
		c.Next()
	}
}

// SetIdentity attaches the resolved account to the request context.
func SetIdentity(c *gin.Context, user *models.User) {
	c.Set(identityKey, user)
}

// Identity returns the account resolved by RequireAuth, or nil.
func Identity(c *gin.Context) *models.User {
	value, ok := c.Get(identityKey)
	if !ok {
		return nil
	}
	user, _ := value.(*models.User)
	return user
}

// RequireRole permits the request only when the resolved identity's role is
// a member of the allowed set. Pure membership: "super-admin" does not
// satisfy a check for "admin" unless explicitly listed.
func RequireRole(m *metrics.Metrics, roles ...string) gin.HandlerFunc {
	allowed := make(map[string]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}

	return func(c *gin.Context) {
		user := Identity(c)
		if user == nil || !allowed[user.Role] {
			m.AccessDenied.Inc()
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden: insufficient role"})
			return
		}
		c.Next()
	}
}

// RequirePermission permits the request only when the identity's role grants
// the named capability in the permission table.
func RequirePermission(table *rbac.Table, m *metrics.Metrics, capability string) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := Identity(c)
		if user == nil || !table.Allows(user.Role, capability) {
			m.AccessDenied.Inc()
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden: insufficient permissions"})
			return
		}
		c.Next()
	}
}

func extractToken(c *gin.Context) string {
	bearerToken := c.GetHeader("Authorization")
	parts := strings.Split(bearerToken, " ")
	if len(parts) == 2 && parts[0] == "Bearer" {
		return parts[1]
	}
	return ""
}
