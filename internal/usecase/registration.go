package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/RahulSaini3125/jwt-auth-rest-api/internal/core/domain"
	"github.com/RahulSaini3125/jwt-auth-rest-api/internal/core/port"
	"github.com/RahulSaini3125/jwt-auth-rest-api/internal/infra/logger"
	"github.com/RahulSaini3125/jwt-auth-rest-api/internal/infra/security"
	"github.com/RahulSaini3125/jwt-auth-rest-api/internal/repository"
)

const (
	activationEmailSubject = "Activate your account"
	maxNameLength          = 30
)

// RegistrationInput carries the fields submitted on sign-up.
type RegistrationInput struct {
	Email                string
	FirstName            string
	LastName             string
	Password             string
	PasswordConfirmation string
}

// RegistrationService handles new account onboarding: validation, the
// account row, and the activation email.
type RegistrationService struct {
	accounts          port.AccountRepository
	activation        *ActivationService
	mailer            port.Mailer
	publisher         port.EventPublisher
	passwordValidator *security.PasswordValidator
	baseURL           string
	logger            *zap.Logger
}

// NewRegistrationService constructs a registration service.
func NewRegistrationService(
	accounts port.AccountRepository,
	activation *ActivationService,
	mailer port.Mailer,
	publisher port.EventPublisher,
	validator *security.PasswordValidator,
	baseURL string,
	log *zap.Logger,
) *RegistrationService {
	if validator == nil {
		validator = security.DefaultPasswordValidator()
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &RegistrationService{
		accounts:          accounts,
		activation:        activation,
		mailer:            mailer,
		publisher:         publisher,
		passwordValidator: validator,
		baseURL:           strings.TrimRight(baseURL, "/"),
		logger:            log,
	}
}

// Register validates the input, creates the account in an unverified and
// inactive state, and sends the activation email. The account row is
// committed before the email goes out; a delivery failure is reported to the
// caller but never rolls the account back.
func (s *RegistrationService) Register(ctx context.Context, input RegistrationInput) (*domain.Account, error) {
	email := domain.NormalizeEmail(input.Email)
	if email == "" {
		return nil, NewValidationError("email", "email is required")
	}
	if input.Password == "" {
		return nil, NewValidationError("password", "password is required")
	}
	if input.PasswordConfirmation == "" {
		return nil, NewValidationError("password_confirmation", "password confirmation is required")
	}
	if input.Password != input.PasswordConfirmation {
		return nil, NewValidationError("password_confirmation", "passwords do not match")
	}

	firstName := strings.TrimSpace(input.FirstName)
	lastName := strings.TrimSpace(input.LastName)
	if firstName == "" {
		return nil, NewValidationError("first_name", "first name is required")
	}
	if utf8.RuneCountInString(firstName) > maxNameLength {
		return nil, NewValidationError("first_name", fmt.Sprintf("first name must be at most %d characters", maxNameLength))
	}
	if utf8.RuneCountInString(lastName) > maxNameLength {
		return nil, NewValidationError("last_name", fmt.Sprintf("last name must be at most %d characters", maxNameLength))
	}

	if err := s.passwordValidator.Validate(input.Password); err != nil {
		return nil, NewValidationError("password", err.Error())
	}

	// Advisory fast path: a concurrent registration can still slip past this
	// check, so the unique constraint on Create stays authoritative.
	exists, err := s.accounts.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("check email uniqueness: %w", err)
	}
	if exists {
		return nil, NewValidationError("email", "account with this email already exists")
	}

	passwordHash, err := security.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	createdAt := s.activation.now()
	account := domain.Account{
		ID:                uuid.NewString(),
		Email:             email,
		FirstName:         firstName,
		LastName:          lastName,
		PasswordHash:      passwordHash,
		Active:            false,
		EmailVerified:     false,
		CreatedAt:         createdAt,
		PasswordChangedAt: createdAt,
	}

	if err := s.accounts.Create(ctx, account); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, NewValidationError("email", "account with this email already exists")
		}
		return nil, fmt.Errorf("create account: %w", err)
	}

	if s.publisher != nil {
		event := domain.AccountRegisteredEvent{
			AccountID:    account.ID,
			Email:        account.Email,
			RegisteredAt: account.CreatedAt,
		}
		if err := s.publisher.PublishAccountRegistered(ctx, event); err != nil {
			s.logger.Warn("publish account registered event failed", zap.Error(err))
		}
	}

	if err := s.sendActivationEmail(account); err != nil {
		s.logger.Error("send activation email failed",
			zap.String("email", logger.MaskEmail(account.Email)),
			zap.Error(err),
		)
		return &account, NewValidationError("email", "failed to send activation email")
	}

	return &account, nil
}

// ActivationLink builds the URL delivered in the activation email.
func (s *RegistrationService) ActivationLink(account domain.Account) (string, error) {
	token, err := s.activation.Issue(account)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s/activate/%s/%s", s.baseURL, EncodeAccountID(account.ID), token), nil
}

func (s *RegistrationService) sendActivationEmail(account domain.Account) error {
	link, err := s.ActivationLink(account)
	if err != nil {
		return err
	}

	if !s.mailer.IsEnabled() {
		s.logger.Info("mailer disabled, skipping activation email",
			zap.String("email", logger.MaskEmail(account.Email)),
			zap.String("link", link),
		)
		return nil
	}

	body := fmt.Sprintf(
		"Hi %s,\n\nPlease click the link below to activate your account:\n\n%s\n\nThe link expires in one hour.\n",
		account.FirstName, link,
	)

	return s.mailer.Send(activationEmailSubject, body, []string{account.Email})
}
