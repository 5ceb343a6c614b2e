package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"virtual-card-wallet/internal/adapter/http/middleware"
	redisStore "virtual-card-wallet/internal/adapter/storage/redis"
	"virtual-card-wallet/internal/core/ports"
)

// RouterDeps holds all dependencies needed to set up routes.
type RouterDeps struct {
	AuthSvc        ports.AuthService
	LedgerSvc      ports.LedgerService
	ApplicationSvc ports.ApplicationService
	ChallengeSvc   ports.ChallengeService
	ControlSvc     ports.ControlService
	TokenSvc       ports.TokenService
	SessionStore   ports.SessionStore
	RateLimitStore *redisStore.RateLimitStore // nil = rate limiting disabled
	HealthCheckers []ports.HealthChecker
	Logger         zerolog.Logger
}

// SetupRouter initialises the Gin engine with all routes and middleware.
func SetupRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.RequestLogger(deps.Logger))
	r.Use(middleware.MaxBodySize(1 << 20)) // 1 MB request body limit

	// Health check (verifies Redis)
	r.GET("/health", HealthCheck(deps.HealthCheckers...))

	// Rate limit rules
	rules := middleware.DefaultRateLimitRules()

	// Helper: return rate limiter middleware if store is available, else noop.
	rl := func(group string) gin.HandlerFunc {
		if deps.RateLimitStore == nil {
			return func(c *gin.Context) { c.Next() }
		}
		rule, ok := rules[group]
		if !ok {
			return func(c *gin.Context) { c.Next() }
		}
		return middleware.RateLimiter(deps.RateLimitStore, group, rule, deps.Logger)
	}

	// API v1 routes
	v1 := r.Group("/api/v1")

	// --- Public routes (no session) ---
	authHandler := NewAuthHandler(deps.AuthSvc)
	auth := v1.Group("/auth")
	{
		auth.POST("/register", rl("auth_register"), authHandler.Register)
		auth.POST("/login", rl("auth_login"), authHandler.Login)
		auth.POST("/logout", authHandler.Logout)
		auth.POST("/password-reset", rl("auth_reset"), authHandler.PasswordReset)
	}

	// --- Session-authenticated routes ---
	sessionAuth := middleware.SessionAuth(deps.TokenSvc, deps.SessionStore, deps.Logger)
	cardsHandler := NewCardsHandler(deps.LedgerSvc, deps.ApplicationSvc, deps.ChallengeSvc, deps.ControlSvc)

	cards := v1.Group("/cards", sessionAuth)
	{
		cards.GET("", rl("cards"), cardsHandler.List)
		cards.POST("", rl("cards_apply"), cardsHandler.Apply)
		cards.GET("/:id", rl("cards"), cardsHandler.Detail)
		cards.POST("/:id/challenge", rl("challenge"), cardsHandler.CheckChallenge)
		cards.POST("/:id/challenge/approve", rl("challenge"), cardsHandler.ApproveChallenge)
		cards.POST("/:id/challenge/reject", rl("challenge"), cardsHandler.RejectChallenge)
		cards.POST("/:id/toggle", rl("cards"), cardsHandler.Toggle)
	}

	return r
}
