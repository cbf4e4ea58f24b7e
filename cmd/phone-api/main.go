// @title UK Phone API
// @version 1.0
// @description Validates and normalizes UK mobile numbers to +447XXXXXXXXX

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api/v1
// @schemes http https

// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key
// @description Required when the server runs with REQUIRE_API_KEY=true.

package main

import (
	"context"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"ukphone/docs"
	"ukphone/internal/api"
	"ukphone/internal/api/handlers"
	"ukphone/internal/auth"
	"ukphone/internal/config"
	"ukphone/internal/health"
	"ukphone/internal/logger"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func main() {
	// Load and validate configuration first (before logger)
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger.Init(cfg.Logger)

	logger.Info().
		Str("environment", cfg.Logger.Environment).
		Str("log_level", cfg.Logger.Level).
		Bool("require_api_key", cfg.Features.RequireAPIKey).
		Bool("rate_limit", cfg.RateLimitEnabled()).
		Msg("configuration loaded successfully")

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router, err := newRouter(cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to build router")
	}

	// Start server with configured bind address
	addr := cfg.GetBindAddress()
	// Use a listener so we can discover the selected port when PORT=0
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		logger.Fatal().Err(err).Str("addr", addr).Msg("failed to bind listener")
	}

	tcpAddr, ok := ln.Addr().(*net.TCPAddr)
	if !ok {
		_ = ln.Close()
		logger.Fatal().Msg("failed to determine TCP address")
	}
	selectedPort := tcpAddr.Port

	srv := &http.Server{
		Addr:    ln.Addr().String(),
		Handler: router,
	}

	// Graceful shutdown
	go func() {
		logger.Info().
			Int("port", selectedPort).
			Str("addr", cfg.Server.Host).
			Msg("starting server")
		if cfg.Features.EnableSwagger {
			logger.Info().
				Str("url", fmt.Sprintf("http://%s:%d/swagger/index.html", cfg.Server.Host, selectedPort)).
				Msg("API documentation available")
		}
		if err := srv.Serve(ln); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info().Msg("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal().Err(err).Msg("server forced to shutdown")
	}

	logger.Info().Msg("server exited")

	// Print the selected port on graceful exit for supervising processes
	fmt.Printf("PORT=%d\n", selectedPort) //nolint:forbidigo // Intentional stdout output for supervisor
}

func newRouter(cfg *config.Config) (*gin.Engine, error) {
	phoneHandler, err := handlers.NewPhoneHandler()
	if err != nil {
		return nil, fmt.Errorf("create phone handler: %w", err)
	}

	router := gin.New()

	router.Use(api.RequestIDMiddleware())
	router.Use(api.LoggingMiddleware())
	router.Use(api.ErrorHandlerMiddleware())
	router.Use(api.CORSMiddleware(cfg.CORS))
	if cfg.RateLimitEnabled() {
		limiter := api.NewIPRateLimiter(cfg.Security.RateLimitRPS, cfg.Security.RateLimitBurst)
		router.Use(limiter.RateLimit())
	}

	router.NoRoute(func(c *gin.Context) {
		api.SendNotFound(c, "Route")
	})

	healthChecker := health.NewHealthChecker()
	router.GET("/health", healthChecker.Handler)

	v1 := router.Group("/api/v1")
	if cfg.Features.RequireAPIKey {
		v1.Use(auth.APIKeyMiddleware(cfg.Security))
	}
	{
		phoneRoutes := v1.Group("/phone")
		{
			phoneRoutes.POST("/format", phoneHandler.FormatNumber)
			phoneRoutes.GET("/validate", phoneHandler.ValidateNumber)
		}
	}

	if cfg.Features.EnableSwagger {
		docs.SwaggerInfo.Host = cfg.GetBindAddress()
		router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return router, nil
}
