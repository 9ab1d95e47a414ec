package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/RahulSaini3125/jwt-auth-rest-api/internal/core/port"
	"github.com/RahulSaini3125/jwt-auth-rest-api/internal/infra/config"
	"github.com/RahulSaini3125/jwt-auth-rest-api/internal/infra/database"
	eventsinfra "github.com/RahulSaini3125/jwt-auth-rest-api/internal/infra/events"
	"github.com/RahulSaini3125/jwt-auth-rest-api/internal/infra/logger"
	"github.com/RahulSaini3125/jwt-auth-rest-api/internal/infra/mail"
	redisinfra "github.com/RahulSaini3125/jwt-auth-rest-api/internal/infra/redis"
	"github.com/RahulSaini3125/jwt-auth-rest-api/internal/infra/security"
	postgresrepo "github.com/RahulSaini3125/jwt-auth-rest-api/internal/repository/postgres"
	redisrepo "github.com/RahulSaini3125/jwt-auth-rest-api/internal/repository/redis"
	"github.com/RahulSaini3125/jwt-auth-rest-api/internal/transport/http/middleware"
	"github.com/RahulSaini3125/jwt-auth-rest-api/internal/transport/http/routes"
	"github.com/RahulSaini3125/jwt-auth-rest-api/internal/usecase"
)

type Application struct {
	cfg      *config.AppConfig
	engine   *gin.Engine
	logger   *zap.Logger
	pool     *pgxpool.Pool
	redis    *redisinfra.Client
	producer *eventsinfra.Producer
}

func New(ctx context.Context, cfg *config.AppConfig) (*Application, error) {
	log, err := logger.New(cfg.App.Env)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	pool, err := database.NewPostgresPool(ctx, cfg.Postgres, log)
	if err != nil {
		return nil, fmt.Errorf("init postgres: %w", err)
	}

	keyProvider, err := security.NewFileKeyProvider(cfg.JWT.KeyDirectory)
	if err != nil {
		return nil, fmt.Errorf("init key provider: %w", err)
	}

	tokenIssuer, err := security.NewJWTIssuer(keyProvider, security.JWTIssuerConfig{
		Issuer:          cfg.App.Name,
		Kid:             keyProvider.SigningKid(),
		AccessTokenTTL:  cfg.JWT.AccessTokenTTL,
		RefreshTokenTTL: cfg.JWT.RefreshTokenTTL,
	})
	if err != nil {
		return nil, fmt.Errorf("init token issuer: %w", err)
	}

	argonCfg := security.Argon2Config{
		Memory:      cfg.Argon2.Memory,
		Iterations:  cfg.Argon2.Iterations,
		Parallelism: cfg.Argon2.Parallelism,
		SaltLength:  cfg.Argon2.SaltLength,
		KeyLength:   cfg.Argon2.KeyLength,
	}
	if err := security.ConfigureArgon2(argonCfg); err != nil {
		return nil, fmt.Errorf("configure argon2: %w", err)
	}

	proofIssuer, err := security.NewStateProofIssuer(cfg.Activation.Secret)
	if err != nil {
		return nil, fmt.Errorf("init proof issuer: %w", err)
	}

	redisClient, err := redisinfra.NewClient(cfg.Redis, log)
	if err != nil {
		return nil, fmt.Errorf("init redis: %w", err)
	}

	mailer, err := mail.NewClient(cfg.SMTP, log)
	if err != nil {
		_ = redisClient.Close()
		return nil, fmt.Errorf("init mailer: %w", err)
	}

	var producer *eventsinfra.Producer
	var eventPublisher port.EventPublisher
	if len(cfg.Kafka.Brokers) > 0 {
		producer, err = eventsinfra.NewProducer(cfg.Kafka, log)
		if err != nil {
			log.Warn("failed to init kafka producer, using stub publisher", zap.Error(err))
			eventPublisher = eventsinfra.NewStubPublisher(log)
		} else {
			eventPublisher = eventsinfra.NewPublisher(producer, cfg.App)
			log.Info("kafka event publisher initialized", zap.Strings("brokers", cfg.Kafka.Brokers))
		}
	} else {
		log.Info("kafka brokers not configured, using stub publisher")
		eventPublisher = eventsinfra.NewStubPublisher(log)
	}

	rateLimitWindow := cfg.RateLimit.WindowDuration
	if rateLimitWindow <= 0 {
		rateLimitWindow = time.Minute
	}
	rateLimitStore := redisrepo.NewRateLimitRepository(redisClient.Client(), "auth:rate-limit", rateLimitWindow*2)
	rateLimiter := middleware.NewRateLimiter(rateLimitStore, log)

	metrics, err := middleware.NewHTTPMetrics(middleware.HTTPMetricsOptions{Namespace: "auth"})
	if err != nil {
		_ = redisClient.Close()
		return nil, fmt.Errorf("init http metrics: %w", err)
	}

	repos := postgresrepo.NewRepositories(pool)

	activationService := usecase.NewActivationService(repos.Accounts, proofIssuer, eventPublisher, cfg.Activation.TokenTTL, log)
	registrationService := usecase.NewRegistrationService(
		repos.Accounts,
		activationService,
		mailer,
		eventPublisher,
		security.DefaultPasswordValidator(),
		cfg.App.BaseURL,
		log,
	)
	authService := usecase.NewAuthService(repos.Accounts, tokenIssuer, eventPublisher, log)
	noteService := usecase.NewNoteService(repos.Notes)

	engine := routes.Register(routes.Dependencies{
		Config:      cfg,
		Logger:      log,
		RateLimiter: rateLimiter,
		TokenParser: tokenIssuer,
		Metrics:     metrics,
		Database:    pool,
		Cache:       redisClient,
		Services: routes.ServiceSet{
			Auth:         authService,
			Registration: registrationService,
			Activation:   activationService,
			Notes:        noteService,
		},
	})

	return &Application{
		cfg:      cfg,
		engine:   engine,
		logger:   log,
		pool:     pool,
		redis:    redisClient,
		producer: producer,
	}, nil
}

func (a *Application) Run(ctx context.Context) error {
	defer func() {
		_ = a.logger.Sync()
	}()
	defer func() {
		if a.pool != nil {
			a.pool.Close()
		}
	}()
	defer func() {
		if a.redis != nil {
			_ = a.redis.Close()
		}
	}()
	defer func() {
		if a.producer != nil {
			_ = a.producer.Close()
		}
	}()

	srv := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", a.cfg.App.Host, a.cfg.App.Port),
		Handler:           a.engine,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	a.logger.Info("starting auth API",
		zap.String("env", a.cfg.App.Env),
		zap.String("address", srv.Addr),
	)

	serverErrCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrCh <- fmt.Errorf("run server: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown server: %w", err)
		}
		return nil
	case err := <-serverErrCh:
		return err
	}
}
