package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/RahulSaini3125/jwt-auth-rest-api/internal/core/domain"
	"github.com/RahulSaini3125/jwt-auth-rest-api/internal/core/port"
	"github.com/RahulSaini3125/jwt-auth-rest-api/internal/infra/security"
	"github.com/RahulSaini3125/jwt-auth-rest-api/internal/repository"
)

// AuthService coordinates credential login.
type AuthService struct {
	accounts  port.AccountRepository
	tokens    port.SessionTokenIssuer
	publisher port.EventPublisher
	logger    *zap.Logger
	now       func() time.Time
}

// NewAuthService constructs an AuthService instance.
func NewAuthService(
	accounts port.AccountRepository,
	tokens port.SessionTokenIssuer,
	publisher port.EventPublisher,
	logger *zap.Logger,
) *AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthService{
		accounts:  accounts,
		tokens:    tokens,
		publisher: publisher,
		logger:    logger,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// LoginResult carries the outcome of a successful login.
type LoginResult struct {
	Email  string
	Tokens domain.TokenPair
}

// Login checks credentials and account state in a fixed order and issues a
// token pair on success. The checks run most-specific first: missing fields,
// unknown account, wrong password, unverified email, deactivated account.
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	normalized := domain.NormalizeEmail(email)
	if normalized == "" {
		return nil, NewValidationError("email", "email is required")
	}
	if password == "" {
		return nil, NewValidationError("password", "password is required")
	}

	account, err := s.accounts.GetByEmail(ctx, normalized)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, fmt.Errorf("lookup account: %w", err)
	}

	ok, err := security.VerifyPassword(password, account.PasswordHash)
	if err != nil {
		return nil, fmt.Errorf("verify password: %w", err)
	}
	if !ok {
		return nil, ErrInvalidCredentials
	}

	if !account.EmailVerified {
		return nil, ErrEmailNotVerified
	}
	if !account.Active {
		return nil, ErrAccountDeactivated
	}

	pair, err := s.tokens.Issue(*account)
	if err != nil {
		return nil, fmt.Errorf("issue tokens: %w", err)
	}

	if s.publisher != nil {
		event := domain.AccountLoginEvent{
			AccountID: account.ID,
			Email:     account.Email,
			LoginAt:   s.now(),
		}
		if err := s.publisher.PublishAccountLogin(ctx, event); err != nil {
			s.logger.Warn("publish account login event failed", zap.Error(err))
		}
	}

	return &LoginResult{Email: account.Email, Tokens: pair}, nil
}
