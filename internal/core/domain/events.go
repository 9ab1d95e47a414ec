package domain

import "time"

// AccountRegisteredEvent is emitted after a new account row is committed.
type AccountRegisteredEvent struct {
	AccountID    string    `json:"account_id"`
	Email        string    `json:"email"`
	RegisteredAt time.Time `json:"registered_at"`
}

// AccountActivatedEvent is emitted once an activation link is accepted.
type AccountActivatedEvent struct {
	AccountID   string    `json:"account_id"`
	Email       string    `json:"email"`
	ActivatedAt time.Time `json:"activated_at"`
}

// AccountLoginEvent is emitted after a successful credential login.
type AccountLoginEvent struct {
	AccountID string    `json:"account_id"`
	Email     string    `json:"email"`
	LoginAt   time.Time `json:"login_at"`
}
