package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"virtual-card-wallet/config"
	httpHandler "virtual-card-wallet/internal/adapter/http/handler"
	"virtual-card-wallet/internal/adapter/identity"
	"virtual-card-wallet/internal/adapter/issuer"
	redisStorage "virtual-card-wallet/internal/adapter/storage/redis"
	"virtual-card-wallet/internal/core/ports"
	"virtual-card-wallet/internal/service"
	"virtual-card-wallet/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.New(cfg.Log.Level, cfg.Log.Pretty)

	log.Info().
		Str("mode", cfg.Server.Mode).
		Int("port", cfg.Server.Port).
		Msg("Starting Virtual Card Wallet API")

	ctx := context.Background()

	// Initialize Redis client (sessions + rate limiting)
	rdb, err := redisStorage.NewClient(ctx, cfg.Redis, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer rdb.Close()
	log.Info().Msg("Redis connected")

	// Upstream clients
	issuerClient := issuer.NewClient(cfg.Issuer, logger.Component(log, "issuer"))
	identityClient := identity.NewClient(cfg.Identity, logger.Component(log, "identity"))

	// Redis stores
	sessionStore := redisStorage.NewSessionStore(rdb)
	rateLimitStore := redisStorage.NewRateLimitStore(rdb)

	// Core services
	tokenSvc := service.NewJWTTokenService(cfg.JWT.Secret, cfg.JWT.Expiry, cfg.JWT.Issuer)
	authSvc := service.NewAuthService(identityClient, issuerClient, tokenSvc, sessionStore, logger.Component(log, "auth"))
	ledgerSvc := service.NewLedgerService(issuerClient, logger.Component(log, "ledger"))
	applicationSvc := service.NewApplicationService(issuerClient, logger.Component(log, "application"))
	challengeSvc := service.NewChallengeService(issuerClient, logger.Component(log, "challenge"))
	controlSvc := service.NewControlService(issuerClient, logger.Component(log, "control"))

	// Health checkers
	redisHealth := redisStorage.NewHealthCheck(rdb)

	// Setup Gin router with all routes
	router := httpHandler.SetupRouter(httpHandler.RouterDeps{
		AuthSvc:        authSvc,
		LedgerSvc:      ledgerSvc,
		ApplicationSvc: applicationSvc,
		ChallengeSvc:   challengeSvc,
		ControlSvc:     controlSvc,
		TokenSvc:       tokenSvc,
		SessionStore:   sessionStore,
		RateLimitStore: rateLimitStore,
		HealthCheckers: []ports.HealthChecker{redisHealth},
		Logger:         log,
	})

	// HTTP Server with graceful shutdown
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("addr", addr).Msg("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}
