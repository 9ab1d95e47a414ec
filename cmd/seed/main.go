package main

import (
	"context"
	"flag"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/RahulSaini3125/jwt-auth-rest-api/internal/core/domain"
	"github.com/RahulSaini3125/jwt-auth-rest-api/internal/infra/config"
	"github.com/RahulSaini3125/jwt-auth-rest-api/internal/infra/database"
	"github.com/RahulSaini3125/jwt-auth-rest-api/internal/infra/logger"
	"github.com/RahulSaini3125/jwt-auth-rest-api/internal/infra/security"
	postgresrepo "github.com/RahulSaini3125/jwt-auth-rest-api/internal/repository/postgres"
)

// Seeds a superuser account. Superusers are created active and verified, so
// they can log in without going through the activation email.
func main() {
	_ = godotenv.Load()

	email := flag.String("email", "", "superuser email (required)")
	password := flag.String("password", "", "superuser password (required)")
	firstName := flag.String("first-name", "", "first name")
	lastName := flag.String("last-name", "", "last name")
	flag.Parse()

	if *email == "" || *password == "" {
		log.Fatal("both -email and -password are required")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logg, err := logger.New(cfg.App.Env)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer func() { _ = logg.Sync() }()

	ctx := context.Background()

	pool, err := database.NewPostgresPool(ctx, cfg.Postgres, logg)
	if err != nil {
		log.Fatalf("failed to connect to postgres: %v", err)
	}
	defer pool.Close()

	if err := security.ConfigureArgon2(security.Argon2Config{
		Memory:      cfg.Argon2.Memory,
		Iterations:  cfg.Argon2.Iterations,
		Parallelism: cfg.Argon2.Parallelism,
		SaltLength:  cfg.Argon2.SaltLength,
		KeyLength:   cfg.Argon2.KeyLength,
	}); err != nil {
		log.Fatalf("failed to configure argon2: %v", err)
	}

	if err := security.DefaultPasswordValidator().Validate(*password); err != nil {
		log.Fatalf("password rejected: %v", err)
	}

	passwordHash, err := security.HashPassword(*password)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	now := time.Now().UTC()
	account := domain.NewSuperuserAccount(
		uuid.NewString(),
		domain.NormalizeEmail(*email),
		*firstName,
		*lastName,
		passwordHash,
		now,
	)

	repos := postgresrepo.NewRepositories(pool)
	if err := repos.Accounts.Create(ctx, account); err != nil {
		log.Fatalf("failed to create superuser: %v", err)
	}

	log.Printf("superuser %s created", account.Email)
}
