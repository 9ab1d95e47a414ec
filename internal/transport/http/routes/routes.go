package routes

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/RahulSaini3125/jwt-auth-rest-api/internal/infra/config"
	"github.com/RahulSaini3125/jwt-auth-rest-api/internal/transport/http/handlers"
	"github.com/RahulSaini3125/jwt-auth-rest-api/internal/transport/http/middleware"
	"github.com/RahulSaini3125/jwt-auth-rest-api/internal/usecase"
)

// ServiceSet groups the services the HTTP layer depends on.
type ServiceSet struct {
	Auth         *usecase.AuthService
	Registration *usecase.RegistrationService
	Activation   *usecase.ActivationService
	Notes        *usecase.NoteService
}

// Dependencies encapsulates the objects required to register routes.
type Dependencies struct {
	Config      *config.AppConfig
	Logger      *zap.Logger
	RateLimiter *middleware.RateLimiter
	Services    ServiceSet
	TokenParser middleware.AccessTokenParser
	Metrics     *middleware.HTTPMetrics
	Database    DatabaseChecker
	Cache       CacheChecker
}

// DatabaseChecker exposes readiness behaviour for database connections.
type DatabaseChecker interface {
	Ping(ctx context.Context) error
}

// CacheChecker exposes readiness behaviour for cache backends.
type CacheChecker interface {
	HealthCheck(ctx context.Context) error
}

// Register configures the Gin engine with routes and middleware.
func Register(deps Dependencies) *gin.Engine {
	if deps.Config.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.EnrichContext())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(deps.Logger))
	r.Use(middleware.CORS(deps.Config.App.AllowedOrigins))

	if deps.Metrics != nil {
		r.Use(deps.Metrics.Handler())
	}

	healthOptions := make([]handlers.HealthOption, 0, 2)

	if deps.Database != nil {
		healthOptions = append(healthOptions, handlers.WithReadinessCheck("database", deps.Database.Ping))
	}

	if deps.Cache != nil {
		healthOptions = append(healthOptions, handlers.WithReadinessCheck("redis", deps.Cache.HealthCheck))
	}

	healthHandler := handlers.NewHealthHandler(healthOptions...)

	r.GET("/healthz", healthHandler.Status)
	r.GET("/readyz", healthHandler.Readiness)

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	registrationHandler := handlers.NewRegistrationHandler(deps.Services.Registration, deps.Services.Activation)

	// Activation links arrive from email clients as plain GETs, so the
	// endpoint lives outside the API group.
	r.GET("/activate/:uid/:token", registrationHandler.Activate)

	api := r.Group("/api/v1")
	{
		accountGroup := api.Group("/accounts")

		registerHandlers := appendRateLimited(deps, "register", deps.Config.RateLimit.RegisterMaxAttempts, registrationHandler.Register)
		accountGroup.POST("/register", registerHandlers...)

		authHandler := handlers.NewAuthHandler(deps.Services.Auth)
		loginHandlers := appendRateLimited(deps, "login", deps.Config.RateLimit.LoginMaxAttempts, authHandler.Login)
		accountGroup.POST("/login", loginHandlers...)

		if deps.Services.Notes != nil && deps.TokenParser != nil {
			authMiddleware := middleware.RequireAuth(deps.TokenParser)

			noteHandler := handlers.NewNoteHandler(deps.Services.Notes)
			noteGroup := api.Group("/notes")
			noteGroup.Use(authMiddleware)
			noteGroup.POST("", noteHandler.Create)
			noteGroup.GET("", noteHandler.List)
		}
	}

	return r
}

func appendRateLimited(deps Dependencies, route string, limit int, handler gin.HandlerFunc) []gin.HandlerFunc {
	if deps.RateLimiter == nil || deps.Config == nil || limit <= 0 {
		return []gin.HandlerFunc{handler}
	}

	window := deps.Config.RateLimit.WindowDuration
	if window <= 0 {
		window = time.Minute
	}

	return []gin.HandlerFunc{deps.RateLimiter.LimitByIP(route, limit, window), handler}
}
