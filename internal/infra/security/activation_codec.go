package security

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"time"
)

// ErrTokenMalformed indicates the presented activation token was not produced
// by Encode. Decode never distinguishes the corruption further; callers treat
// every malformed token as a non-match.
var ErrTokenMalformed = errors.New("activation token malformed")

type activationPayload struct {
	Proof     string `json:"proof"`
	ExpiresAt string `json:"expires_at"`
}

// ActivationCodec wraps a (proof, expiry) pair into an opaque URL-safe string
// and back. It holds no state and applies no cryptography of its own; the
// proof inside must already be unguessable.
type ActivationCodec struct{}

// Encode serializes the pair. Deterministic given its inputs.
func (ActivationCodec) Encode(proof string, expiresAt time.Time) string {
	payload, _ := json.Marshal(activationPayload{
		Proof:     proof,
		ExpiresAt: expiresAt.UTC().Format(time.RFC3339Nano),
	})
	return base64.RawURLEncoding.EncodeToString(payload)
}

// Decode is the inverse of Encode. It is total over attacker-controlled
// input: any token not produced by Encode yields ErrTokenMalformed.
func (ActivationCodec) Decode(token string) (string, time.Time, error) {
	raw, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return "", time.Time{}, ErrTokenMalformed
	}

	var payload activationPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return "", time.Time{}, ErrTokenMalformed
	}
	if payload.Proof == "" || payload.ExpiresAt == "" {
		return "", time.Time{}, ErrTokenMalformed
	}

	expiresAt, err := time.Parse(time.RFC3339Nano, payload.ExpiresAt)
	if err != nil {
		return "", time.Time{}, ErrTokenMalformed
	}

	return payload.Proof, expiresAt, nil
}
