package usecase

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"go.uber.org/zap/zaptest"

	"github.com/RahulSaini3125/jwt-auth-rest-api/internal/core/domain"
	"github.com/RahulSaini3125/jwt-auth-rest-api/internal/infra/security"
)

var activationLinkPattern = regexp.MustCompile(`/activate/([A-Za-z0-9_-]+)/([A-Za-z0-9_-]+)`)

// Exercises the full onboarding path with in-memory dependencies: register,
// fail to log in while unverified, activate via the emailed link, log in, and
// confirm the link cannot be replayed.
func TestRegistrationToLoginFlow(t *testing.T) {
	proofs, err := security.NewStateProofIssuer("flow-test-secret")
	if err != nil {
		t.Fatalf("new proof issuer: %v", err)
	}

	accounts := newMemoryAccountRepo()
	publisher := &stubPublisher{}
	mailer := &stubMailer{}
	log := zaptest.NewLogger(t)

	activation := NewActivationService(accounts, proofs, publisher, time.Hour, log)
	registration := NewRegistrationService(accounts, activation, mailer, publisher, nil, "https://accounts.example.com", log)
	auth := NewAuthService(accounts, &stubTokenIssuer{pair: domain.TokenPair{AccessToken: "a", RefreshToken: "r"}}, publisher, log)

	ctx := context.Background()

	account, err := registration.Register(ctx, RegistrationInput{
		Email:                "carol@example.com",
		FirstName:            "Carol",
		Password:             "Tr!ckyPelican42",
		PasswordConfirmation: "Tr!ckyPelican42",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	// Login before activation fails on the verification flag.
	if _, err := auth.Login(ctx, "carol@example.com", "Tr!ckyPelican42"); !errors.Is(err, ErrEmailNotVerified) {
		t.Fatalf("expected ErrEmailNotVerified before activation, got %v", err)
	}

	if len(mailer.sent) != 1 {
		t.Fatalf("expected one activation email, got %d", len(mailer.sent))
	}
	match := activationLinkPattern.FindStringSubmatch(mailer.sent[0].body)
	if match == nil {
		t.Fatalf("no activation link found in email body:\n%s", mailer.sent[0].body)
	}
	uid, token := match[1], match[2]

	if uid != EncodeAccountID(account.ID) {
		t.Fatalf("link encodes wrong account: %q", uid)
	}

	activated, err := activation.Activate(ctx, uid, token)
	if err != nil {
		t.Fatalf("activate: %v", err)
	}
	if !activated.Active || !activated.EmailVerified {
		t.Fatal("activation must flip both flags")
	}

	// The same link must not work twice.
	if _, err := activation.Activate(ctx, uid, token); !errors.Is(err, ErrActivationInvalid) {
		t.Fatalf("expected ErrActivationInvalid on replay, got %v", err)
	}

	result, err := auth.Login(ctx, "carol@example.com", "Tr!ckyPelican42")
	if err != nil {
		t.Fatalf("login after activation: %v", err)
	}
	if result.Tokens.AccessToken == "" || result.Tokens.RefreshToken == "" {
		t.Fatal("expected a token pair after login")
	}

	if len(publisher.registered) != 1 || len(publisher.activated) != 1 || len(publisher.logins) != 1 {
		t.Fatalf("unexpected event counts: %d registered, %d activated, %d logins",
			len(publisher.registered), len(publisher.activated), len(publisher.logins))
	}
}
