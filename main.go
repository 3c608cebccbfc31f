package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Mayen007/qrgen/auth"
	"github.com/Mayen007/qrgen/cache"
	"github.com/Mayen007/qrgen/config"
	"github.com/Mayen007/qrgen/handler"
	appLogger "github.com/Mayen007/qrgen/logger"
	"github.com/Mayen007/qrgen/middleware"
	redisClient "github.com/Mayen007/qrgen/redis"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"
	httpSwagger "github.com/swaggo/http-swagger"
)

// @title QRGen API
// @version 1.0
// @description QR code generation and scan analytics service with Redis persistence, in-process caching and JWT authentication.

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

// @tag.name QRCodes
// @tag.description Creating, listing, rendering and deleting QR codes

// @tag.name Scans
// @tag.description Public scan tracking

// @tag.name Analytics
// @tag.description Aggregated dashboard metrics and raw scan logs

// @tag.name Authentication
// @tag.description Registration, login and profile

// @tag.name System
// @tag.description Health checks and cache metrics

func main() {
	// Initialize logger
	appLogger.Initialize()

	// Load configuration
	cfg := config.MustLoadConfig()
	log.Info().Msg("Configuration loaded successfully")

	if cfg.Auth.JWTSecret == "" {
		log.Fatal().Msg("auth.jwt_secret must be configured (QRGEN_AUTH_JWT_SECRET)")
	}

	// Initialize Redis client
	rdb := redisClient.NewClient(cfg.Redis)

	// Initialize cache (if enabled)
	var cacheClient *cache.Cache
	if cfg.Cache.Enabled {
		var err error
		cacheClient, err = cache.New(cfg.Cache)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to initialize cache")
		}
	} else {
		log.Info().Msg("Cache disabled in configuration")
	}

	// JWT manager for user sessions
	jwtManager := auth.NewJWTManager(
		cfg.Auth.JWTSecret,
		time.Duration(cfg.Auth.AccessTokenTTLMin)*time.Minute,
		time.Duration(cfg.Auth.RefreshTokenTTLMin)*time.Minute,
	)

	// Create handlers with dependency injection
	qrHandler := handler.NewQRHandler(rdb, cacheClient, cfg)
	userHandler := handler.NewUserHandler(rdb, jwtManager)

	// Set up router
	r := mux.NewRouter()

	// Apply global middleware
	rateLimiter := middleware.NewRateLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst)
	userAuth := middleware.NewUserAuth(jwtManager)

	r.Use(middleware.CORS)
	r.Use(middleware.RequestLogger)
	r.Use(rateLimiter.Limit)

	// Public routes
	r.HandleFunc("/health", qrHandler.HealthCheck).Methods("GET")
	r.HandleFunc("/cache/metrics", qrHandler.CacheMetrics).Methods("GET")
	r.HandleFunc("/api/auth/register", userHandler.Register).Methods("POST")
	r.HandleFunc("/api/auth/login", userHandler.Login).Methods("POST")
	r.HandleFunc("/qr/{qrCodeID}", qrHandler.QRCodeImage).Methods("GET")
	r.HandleFunc("/s/{qrCodeID}", qrHandler.TrackScan).Methods("GET")

	// Authenticated API routes
	api := r.PathPrefix("/api").Subrouter()
	api.Use(userAuth.Protect)
	api.HandleFunc("/user", userHandler.Me).Methods("GET")
	api.HandleFunc("/qrcodes", qrHandler.CreateQRCode).Methods("POST")
	api.HandleFunc("/qrcodes", qrHandler.ListQRCodes).Methods("GET")
	api.HandleFunc("/qrcodes/{qrCodeID}", qrHandler.DeleteQRCode).Methods("DELETE")
	api.HandleFunc("/qrcodes/{qrCodeID}/scans", qrHandler.GetScanLog).Methods("GET")
	api.HandleFunc("/analytics", qrHandler.GetAnalytics).Methods("GET")

	// Swagger UI
	r.PathPrefix("/swagger/").Handler(httpSwagger.WrapHandler)

	// Configure HTTP server
	serverAddress := fmt.Sprintf("%s:%s", cfg.WebServer.IP, cfg.WebServer.Port)
	server := &http.Server{
		Addr:         serverAddress,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.WebServer.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.WebServer.WriteTimeout) * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Info().
			Str("address", serverAddress).
			Str("scheme", cfg.WebServer.Scheme).
			Msg("Starting server")

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.WebServer.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	// Close cache
	if cacheClient != nil {
		cacheClient.Close()
	}

	// Close Redis connection
	if err := rdb.Close(); err != nil {
		log.Error().Err(err).Msg("Failed to close Redis connection")
	}

	log.Info().Msg("Server stopped gracefully")
}
