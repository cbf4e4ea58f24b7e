package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"ukphone/internal/config"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestAPIKeyMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	testConfig := config.SecurityConfig{
		APIKey: "test-api-key-12345",
	}

	t.Run("valid API key in X-API-Key header", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest("POST", "/api/v1/phone/format", nil)
		c.Request.Header.Set("X-API-Key", "test-api-key-12345")

		middleware := APIKeyMiddleware(testConfig)
		middleware(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.False(t, c.IsAborted())
	})

	t.Run("valid API key in Authorization header", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest("POST", "/api/v1/phone/format", nil)
		c.Request.Header.Set("Authorization", "ApiKey test-api-key-12345")

		middleware := APIKeyMiddleware(testConfig)
		middleware(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.False(t, c.IsAborted())
	})

	t.Run("bearer scheme is not accepted", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest("POST", "/api/v1/phone/format", nil)
		c.Request.Header.Set("Authorization", "Bearer test-api-key-12345")

		middleware := APIKeyMiddleware(testConfig)
		middleware(c)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "MISSING_API_KEY")
	})

	t.Run("missing API key", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest("POST", "/api/v1/phone/format", nil)

		middleware := APIKeyMiddleware(testConfig)
		middleware(c)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.True(t, c.IsAborted())
		assert.Contains(t, w.Body.String(), "MISSING_API_KEY")
	})

	t.Run("invalid API key", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest("POST", "/api/v1/phone/format", nil)
		c.Request.Header.Set("X-API-Key", "wrong-key")

		middleware := APIKeyMiddleware(testConfig)
		middleware(c)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.True(t, c.IsAborted())
		assert.Contains(t, w.Body.String(), "INVALID_API_KEY")
	})

	t.Run("empty config API key allows nothing", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest("POST", "/api/v1/phone/format", nil)
		c.Request.Header.Set("X-API-Key", "any-key")

		middleware := APIKeyMiddleware(config.SecurityConfig{})
		middleware(c)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.True(t, c.IsAborted())
	})
}
