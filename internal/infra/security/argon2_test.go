package security

import (
	"strings"
	"testing"
)

func TestHashPasswordProducesVerifiableHash(t *testing.T) {
	hash, err := HashPassword("correct horse battery staple")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}

	if !strings.HasPrefix(hash, "argon2id$") {
		t.Fatalf("unexpected hash format: %q", hash)
	}

	ok, err := VerifyPassword("correct horse battery staple", hash)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if !ok {
		t.Fatal("expected password to verify")
	}
}

func TestVerifyPasswordRejectsWrongPassword(t *testing.T) {
	hash, err := HashPassword("correct horse battery staple")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}

	ok, err := VerifyPassword("wrong password", hash)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if ok {
		t.Fatal("expected wrong password to be rejected")
	}
}

func TestHashPasswordSalted(t *testing.T) {
	first, err := HashPassword("same input")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	second, err := HashPassword("same input")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if first == second {
		t.Fatal("expected distinct hashes for the same password")
	}
}

func TestVerifyPasswordMalformedHash(t *testing.T) {
	for name, encoded := range map[string]string{
		"empty":          "",
		"wrong scheme":   "bcrypt$whatever",
		"missing fields": "argon2id$v=19",
		"bad params":     "argon2id$v=19$m=x,t=y,p=z$c2FsdA$aGFzaA",
	} {
		t.Run(name, func(t *testing.T) {
			if _, err := VerifyPassword("password", encoded); err == nil {
				t.Fatal("expected error for malformed hash")
			}
		})
	}
}
