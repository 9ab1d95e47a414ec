package domain

import (
	"strings"
	"time"
)

// Account mirrors the persisted representation in the accounts.users table.
type Account struct {
	ID                string
	Email             string
	FirstName         string
	LastName          string
	PasswordHash      string
	Active            bool
	Staff             bool
	Superuser         bool
	EmailVerified     bool
	CreatedAt         time.Time
	PasswordChangedAt time.Time
}

// NormalizeEmail lowercases and trims an email address so uniqueness checks
// and lookups agree on a single canonical form.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Activate flips the two flags an activation event is allowed to change.
func (a *Account) Activate() {
	a.Active = true
	a.EmailVerified = true
}

// NewSuperuserAccount builds an operator account that skips the verification
// flow. Used by the seed command only; the registration flow never sets these
// flags.
func NewSuperuserAccount(id, email, firstName, lastName, passwordHash string, now time.Time) Account {
	return Account{
		ID:                id,
		Email:             NormalizeEmail(email),
		FirstName:         firstName,
		LastName:          lastName,
		PasswordHash:      passwordHash,
		Active:            true,
		Staff:             true,
		Superuser:         true,
		EmailVerified:     true,
		CreatedAt:         now,
		PasswordChangedAt: now,
	}
}
