package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap/zaptest"

	"github.com/RahulSaini3125/jwt-auth-rest-api/internal/core/domain"
	"github.com/RahulSaini3125/jwt-auth-rest-api/internal/infra/security"
)

func seedLoginAccount(t *testing.T, accounts *memoryAccountRepo, password string, mutate func(*domain.Account)) domain.Account {
	t.Helper()

	hash, err := security.HashPassword(password)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}

	account := domain.Account{
		ID:                "c1a0fa10-0000-4000-8000-000000000001",
		Email:             "alice@example.com",
		PasswordHash:      hash,
		Active:            true,
		EmailVerified:     true,
		CreatedAt:         time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC),
		PasswordChangedAt: time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC),
	}
	if mutate != nil {
		mutate(&account)
	}

	if err := accounts.Create(context.Background(), account); err != nil {
		t.Fatalf("seed account: %v", err)
	}
	return account
}

func newAuthFixture(t *testing.T) (*AuthService, *memoryAccountRepo, *stubPublisher) {
	t.Helper()

	accounts := newMemoryAccountRepo()
	publisher := &stubPublisher{}
	issuer := &stubTokenIssuer{pair: domain.TokenPair{AccessToken: "access", RefreshToken: "refresh"}}

	return NewAuthService(accounts, issuer, publisher, zaptest.NewLogger(t)), accounts, publisher
}

func TestLoginSuccess(t *testing.T) {
	svc, accounts, publisher := newAuthFixture(t)
	seedLoginAccount(t, accounts, "Tr!ckyPelican42", nil)

	result, err := svc.Login(context.Background(), "Alice@Example.com", "Tr!ckyPelican42")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	if result.Email != "alice@example.com" {
		t.Fatalf("unexpected email %q", result.Email)
	}
	if result.Tokens.AccessToken != "access" || result.Tokens.RefreshToken != "refresh" {
		t.Fatalf("unexpected token pair %+v", result.Tokens)
	}

	if len(publisher.logins) != 1 {
		t.Fatalf("expected one login event, got %d", len(publisher.logins))
	}
}

func TestLoginMissingFields(t *testing.T) {
	svc, _, _ := newAuthFixture(t)

	for name, tc := range map[string]struct {
		email, password, field string
	}{
		"missing email":    {email: " ", password: "whatever", field: "email"},
		"missing password": {email: "alice@example.com", password: "", field: "password"},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := svc.Login(context.Background(), tc.email, tc.password)
			var vErr *ValidationError
			if !errors.As(err, &vErr) || vErr.Field != tc.field {
				t.Fatalf("expected %s ValidationError, got %v", tc.field, err)
			}
		})
	}
}

func TestLoginUnknownAccount(t *testing.T) {
	svc, _, _ := newAuthFixture(t)

	_, err := svc.Login(context.Background(), "nobody@example.com", "whatever")
	if !errors.Is(err, ErrAccountNotFound) {
		t.Fatalf("expected ErrAccountNotFound, got %v", err)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	svc, accounts, publisher := newAuthFixture(t)
	seedLoginAccount(t, accounts, "Tr!ckyPelican42", nil)

	_, err := svc.Login(context.Background(), "alice@example.com", "wrong-password")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if len(publisher.logins) != 0 {
		t.Fatal("no login event may be published for a failed login")
	}
}

func TestLoginUnverifiedEmail(t *testing.T) {
	svc, accounts, _ := newAuthFixture(t)
	seedLoginAccount(t, accounts, "Tr!ckyPelican42", func(a *domain.Account) {
		a.EmailVerified = false
	})

	_, err := svc.Login(context.Background(), "alice@example.com", "Tr!ckyPelican42")
	if !errors.Is(err, ErrEmailNotVerified) {
		t.Fatalf("expected ErrEmailNotVerified, got %v", err)
	}
}

func TestLoginDeactivatedAccount(t *testing.T) {
	svc, accounts, _ := newAuthFixture(t)
	seedLoginAccount(t, accounts, "Tr!ckyPelican42", func(a *domain.Account) {
		a.Active = false
	})

	_, err := svc.Login(context.Background(), "alice@example.com", "Tr!ckyPelican42")
	if !errors.Is(err, ErrAccountDeactivated) {
		t.Fatalf("expected ErrAccountDeactivated, got %v", err)
	}
}

func TestLoginCredentialCheckPrecedesStateChecks(t *testing.T) {
	svc, accounts, _ := newAuthFixture(t)
	// Both unverified and deactivated, and the password is wrong: the
	// credential failure must win.
	seedLoginAccount(t, accounts, "Tr!ckyPelican42", func(a *domain.Account) {
		a.EmailVerified = false
		a.Active = false
	})

	_, err := svc.Login(context.Background(), "alice@example.com", "wrong-password")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}
