package auth

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"ukphone/internal/api"
	"ukphone/internal/config"

	"github.com/gin-gonic/gin"
)

// APIKeyMiddleware validates API key from request headers
func APIKeyMiddleware(cfg config.SecurityConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		apiKey := extractAPIKey(c)

		if apiKey == "" {
			api.AbortWithError(c, http.StatusUnauthorized, api.ErrCodeMissingAPIKey,
				"API key is required. Provide X-API-Key header or Authorization: ApiKey <key>")
			return
		}

		// An unset server key never matches
		if cfg.APIKey == "" || subtle.ConstantTimeCompare([]byte(apiKey), []byte(cfg.APIKey)) != 1 {
			api.AbortWithError(c, http.StatusUnauthorized, api.ErrCodeInvalidAPIKey, "Invalid API key provided")
			return
		}

		c.Next()
	}
}

// extractAPIKey reads X-API-Key, falling back to "Authorization: ApiKey <key>"
func extractAPIKey(c *gin.Context) string {
	if apiKey := c.GetHeader("X-API-Key"); apiKey != "" {
		return apiKey
	}

	authHeader := c.GetHeader("Authorization")
	if strings.HasPrefix(authHeader, "ApiKey ") {
		return strings.TrimPrefix(authHeader, "ApiKey ")
	}

	return ""
}
