package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// CORSConfig holds configuration for cross-origin request handling.
type CORSConfig struct {
	// AllowedOrigins is the list of origins permitted to call the API from a
	// browser. An empty list disables cross-origin access.
	AllowedOrigins []string
}

// CORS returns middleware that validates the Origin header against the
// allowed set and answers preflight requests. Requests without an Origin
// header (curl, server-to-server) pass through untouched.
func CORS(config CORSConfig) gin.HandlerFunc {
	// Build a set of allowed origins for O(1) lookup
	allowedSet := make(map[string]bool)
	for _, origin := range config.AllowedOrigins {
		// Normalize: remove trailing slash, lowercase
		normalized := strings.TrimSuffix(strings.ToLower(origin), "/")
		allowedSet[normalized] = true
	}

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if origin == "" {
			c.Next()
			return
		}

		if !isAllowedOrigin(origin, allowedSet) {
			if c.Request.Method == http.MethodOptions {
				c.AbortWithStatus(http.StatusForbidden)
				return
			}
			// Non-preflight: proceed without CORS headers, the browser blocks
			// the response on its side.
			c.Next()
			return
		}

		c.Header("Access-Control-Allow-Origin", origin)
		c.Header("Access-Control-Allow-Methods", "GET,POST,PUT,DELETE,OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type,Authorization,X-Request-ID")
		c.Header("Access-Control-Allow-Credentials", "true")
		c.Header("Vary", "Origin")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

// isAllowedOrigin checks if the given origin is in the allowed set.
func isAllowedOrigin(origin string, allowedSet map[string]bool) bool {
	normalized := strings.TrimSuffix(strings.ToLower(origin), "/")
	return allowedSet[normalized]
}
