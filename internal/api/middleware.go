package api

import (
	"fmt"
	"time"

	"ukphone/internal/config"
	"ukphone/internal/logger"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestIDHeader carries the per-request correlation id
const RequestIDHeader = "X-Request-ID"

// RequestIDMiddleware adds a unique request ID to each request
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.New().String()
		}

		c.Set("request_id", requestID)
		c.Header(RequestIDHeader, requestID)
		c.Next()
	}
}

// RequestID returns the id set by RequestIDMiddleware, or "unknown"
func RequestID(c *gin.Context) string {
	if id, ok := c.Get("request_id"); ok {
		if idStr, ok := id.(string); ok {
			return idStr
		}
	}
	return "unknown"
}

// LoggingMiddleware logs HTTP requests with structured logging
func LoggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		latency := time.Since(start)

		event := logger.Info()
		if c.Writer.Status() >= 500 {
			event = logger.Error()
		} else if c.Writer.Status() >= 400 {
			event = logger.Warn()
		}

		// Query strings are not logged; they may contain phone numbers.
		event.
			Str("request_id", RequestID(c)).
			Str("method", c.Request.Method).
			Str("path", path).
			Int("status", c.Writer.Status()).
			Dur("latency", latency).
			Str("client_ip", c.ClientIP()).
			Str("user_agent", c.Request.UserAgent())

		if len(c.Errors) > 0 {
			event.Str("error", c.Errors.String())
		}

		event.Msg("http request")
	}
}

// CORSMiddleware adds CORS headers based on configuration
func CORSMiddleware(cfg config.CORSConfig) gin.HandlerFunc {
	corsConfig := cors.Config{
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization", RequestIDHeader, "X-API-Key"},
		ExposeHeaders: []string{RequestIDHeader},
		MaxAge:        12 * time.Hour,
	}

	if cfg.AllowAll {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = []string{cfg.FrontendURL}
		corsConfig.AllowCredentials = true
	}

	return cors.New(corsConfig)
}

// ErrorHandlerMiddleware recovers from panics and answers with the standard envelope
func ErrorHandlerMiddleware() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		logger.Error().
			Str("request_id", RequestID(c)).
			Str("panic", fmt.Sprint(recovered)).
			Msg("recovered from panic")
		SendInternalError(c, "unexpected error")
		c.Abort()
	})
}
