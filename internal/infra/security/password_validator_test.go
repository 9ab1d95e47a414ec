package security

import (
	"errors"
	"testing"
)

func TestDefaultPasswordValidatorAcceptsStrongPassword(t *testing.T) {
	validator := DefaultPasswordValidator()

	if err := validator.Validate("Tr!ckyPelican42"); err != nil {
		t.Fatalf("expected strong password to be accepted, got %v", err)
	}
}

func TestDefaultPasswordValidatorRejections(t *testing.T) {
	validator := DefaultPasswordValidator()

	cases := map[string]struct {
		password string
		code     string
	}{
		"too short":           {password: "Ab1!", code: "min_length"},
		"single class":        {password: "alllowercaseletters", code: "character_classes"},
		"common weak pattern": {password: "Password1!", code: "weak_password"},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			err := validator.Validate(tc.password)
			if err == nil {
				t.Fatal("expected validation error")
			}

			var vErr *PasswordValidationError
			if !errors.As(err, &vErr) {
				t.Fatalf("expected PasswordValidationError, got %T", err)
			}
			if vErr.Code != tc.code {
				t.Fatalf("expected code %q, got %q", tc.code, vErr.Code)
			}
		})
	}
}

func TestMinLengthRuleCountsRunes(t *testing.T) {
	rule := MinLengthRule(8)

	if err := rule.Validate("пароль42"); err != nil {
		t.Fatalf("expected 8-rune password to pass, got %v", err)
	}
	if err := rule.Validate("пароль4"); err == nil {
		t.Fatal("expected 7-rune password to fail")
	}
}
