package usecase

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/RahulSaini3125/jwt-auth-rest-api/internal/core/domain"
	"github.com/RahulSaini3125/jwt-auth-rest-api/internal/core/port"
	"github.com/RahulSaini3125/jwt-auth-rest-api/internal/infra/security"
	"github.com/RahulSaini3125/jwt-auth-rest-api/internal/repository"
)

const defaultActivationTTL = time.Hour

// ActivationService issues and verifies the email activation tokens embedded
// in activation links. Tokens carry a proof bound to the account's current
// state, so a token stops validating once the account is activated or its
// password changes.
type ActivationService struct {
	accounts  port.AccountRepository
	proofs    port.ProofIssuer
	publisher port.EventPublisher
	codec     security.ActivationCodec
	ttl       time.Duration
	logger    *zap.Logger
	now       func() time.Time
}

// NewActivationService constructs an activation service.
func NewActivationService(
	accounts port.AccountRepository,
	proofs port.ProofIssuer,
	publisher port.EventPublisher,
	ttl time.Duration,
	logger *zap.Logger,
) *ActivationService {
	if ttl <= 0 {
		ttl = defaultActivationTTL
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ActivationService{
		accounts:  accounts,
		proofs:    proofs,
		publisher: publisher,
		codec:     security.ActivationCodec{},
		ttl:       ttl,
		logger:    logger,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// EncodeAccountID renders an account id for use in an activation link path.
func EncodeAccountID(id string) string {
	return base64.RawURLEncoding.EncodeToString([]byte(id))
}

// Issue produces an activation token for the account.
func (s *ActivationService) Issue(account domain.Account) (string, error) {
	proof, err := s.proofs.Issue(account)
	if err != nil {
		return "", fmt.Errorf("issue activation proof: %w", err)
	}
	return s.codec.Encode(proof, s.now().Add(s.ttl)), nil
}

// Validate reports whether the token is currently acceptable for the account.
// Malformed tokens, expired tokens, and proofs issued against a different
// account state all report false; the reason is never disclosed.
func (s *ActivationService) Validate(account domain.Account, token string) bool {
	proof, expiresAt, err := s.codec.Decode(token)
	if err != nil {
		return false
	}
	if s.now().After(expiresAt) {
		return false
	}
	return s.proofs.Verify(account, proof)
}

// Activate processes an activation link. Every failure path collapses to
// ErrActivationInvalid so the link reveals nothing about accounts.
func (s *ActivationService) Activate(ctx context.Context, encodedID, token string) (*domain.Account, error) {
	idBytes, err := base64.RawURLEncoding.DecodeString(encodedID)
	if err != nil {
		return nil, ErrActivationInvalid
	}

	account, err := s.accounts.GetByID(ctx, string(idBytes))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrActivationInvalid
		}
		return nil, fmt.Errorf("lookup account: %w", err)
	}

	if !s.Validate(*account, token) {
		return nil, ErrActivationInvalid
	}

	at := s.now()
	if err := s.accounts.MarkActivated(ctx, account.ID, at); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrActivationInvalid
		}
		return nil, fmt.Errorf("mark activated: %w", err)
	}

	account.Activate()

	if s.publisher != nil {
		event := domain.AccountActivatedEvent{
			AccountID:   account.ID,
			Email:       account.Email,
			ActivatedAt: at,
		}
		if err := s.publisher.PublishAccountActivated(ctx, event); err != nil {
			s.logger.Warn("publish account activated event failed", zap.Error(err))
		}
	}

	return account, nil
}
