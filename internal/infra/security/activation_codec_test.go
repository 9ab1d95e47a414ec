package security

import (
	"encoding/base64"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestActivationCodecRoundTrip(t *testing.T) {
	codec := ActivationCodec{}
	expiresAt := time.Date(2025, 6, 1, 12, 30, 0, 123456789, time.UTC)

	token := codec.Encode("some-proof-value", expiresAt)
	if token == "" {
		t.Fatal("expected non-empty token")
	}
	if strings.ContainsAny(token, "+/=") {
		t.Fatalf("token is not URL-safe: %q", token)
	}

	proof, decodedExpiry, err := codec.Decode(token)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if proof != "some-proof-value" {
		t.Fatalf("unexpected proof %q", proof)
	}
	if !decodedExpiry.Equal(expiresAt) {
		t.Fatalf("expected expiry %v, got %v", expiresAt, decodedExpiry)
	}
}

func TestActivationCodecEncodeDeterministic(t *testing.T) {
	codec := ActivationCodec{}
	expiresAt := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	first := codec.Encode("proof", expiresAt)
	second := codec.Encode("proof", expiresAt)
	if first != second {
		t.Fatal("expected identical tokens for identical inputs")
	}
}

func TestActivationCodecDecodeRejectsGarbage(t *testing.T) {
	codec := ActivationCodec{}

	cases := map[string]string{
		"empty":               "",
		"not base64":          "%%%not-base64%%%",
		"base64 but not json": base64.RawURLEncoding.EncodeToString([]byte("hello world")),
		"json wrong shape":    base64.RawURLEncoding.EncodeToString([]byte(`{"foo":"bar"}`)),
		"missing proof":       base64.RawURLEncoding.EncodeToString([]byte(`{"expires_at":"2025-06-01T12:00:00Z"}`)),
		"missing expiry":      base64.RawURLEncoding.EncodeToString([]byte(`{"proof":"p"}`)),
		"bad timestamp":       base64.RawURLEncoding.EncodeToString([]byte(`{"proof":"p","expires_at":"yesterday"}`)),
		"json array":          base64.RawURLEncoding.EncodeToString([]byte(`[1,2,3]`)),
	}

	for name, token := range cases {
		t.Run(name, func(t *testing.T) {
			_, _, err := codec.Decode(token)
			if !errors.Is(err, ErrTokenMalformed) {
				t.Fatalf("expected ErrTokenMalformed, got %v", err)
			}
		})
	}
}

func TestActivationCodecDecodeTamperedToken(t *testing.T) {
	codec := ActivationCodec{}
	token := codec.Encode("proof", time.Now().Add(time.Hour))

	// Truncation breaks either the base64 framing or the JSON inside.
	truncated := token[:len(token)/2]
	if _, _, err := codec.Decode(truncated); !errors.Is(err, ErrTokenMalformed) {
		t.Fatalf("expected ErrTokenMalformed for truncated token, got %v", err)
	}
}
