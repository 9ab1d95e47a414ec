package security

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/RahulSaini3125/jwt-auth-rest-api/internal/core/domain"
	"github.com/RahulSaini3125/jwt-auth-rest-api/internal/core/port"
)

const proofSaltLength = 16

// ErrProofSecretRequired indicates the issuer was constructed without a key.
var ErrProofSecretRequired = errors.New("proof secret is required")

// StateProofIssuer derives unguessable proof values from an account's
// verification and credential state using keyed HMAC-SHA256. A proof carries
// its own random salt, so repeated issuance yields distinct values, but every
// proof stops verifying the moment the bound state changes: flipping
// email_verified or rotating the password both alter the HMAC input.
type StateProofIssuer struct {
	secret []byte
}

// NewStateProofIssuer constructs an issuer keyed with the provided secret.
func NewStateProofIssuer(secret string) (*StateProofIssuer, error) {
	if strings.TrimSpace(secret) == "" {
		return nil, ErrProofSecretRequired
	}
	return &StateProofIssuer{secret: []byte(secret)}, nil
}

// Issue returns a fresh proof bound to the account's current state.
func (p *StateProofIssuer) Issue(account domain.Account) (string, error) {
	salt := make([]byte, proofSaltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("generate proof salt: %w", err)
	}

	mac := p.compute(salt, account)
	return base64.RawURLEncoding.EncodeToString(append(salt, mac...)), nil
}

// Verify reports whether the proof was minted from the account's current
// state. Malformed input verifies as false, never as an error.
func (p *StateProofIssuer) Verify(account domain.Account, proof string) bool {
	raw, err := base64.RawURLEncoding.DecodeString(proof)
	if err != nil {
		return false
	}
	if len(raw) != proofSaltLength+sha256.Size {
		return false
	}

	salt := raw[:proofSaltLength]
	presented := raw[proofSaltLength:]

	return hmac.Equal(presented, p.compute(salt, account))
}

func (p *StateProofIssuer) compute(salt []byte, account domain.Account) []byte {
	state := strings.Join([]string{
		account.ID,
		account.Email,
		strconv.FormatBool(account.EmailVerified),
		account.PasswordChangedAt.UTC().Format(time.RFC3339Nano),
	}, "\n")

	mac := hmac.New(sha256.New, p.secret)
	mac.Write(salt)
	mac.Write([]byte(state))
	return mac.Sum(nil)
}

var _ port.ProofIssuer = (*StateProofIssuer)(nil)
