package port

import "github.com/RahulSaini3125/jwt-auth-rest-api/internal/core/domain"

// ProofIssuer produces and checks unguessable values bound to an account's
// current verification and credential state. A proof stops verifying as soon
// as the account's email_verified flag or password changes.
type ProofIssuer interface {
	Issue(account domain.Account) (string, error)
	Verify(account domain.Account, proof string) bool
}

// SessionTokenIssuer mints the bearer tokens returned by a successful login.
type SessionTokenIssuer interface {
	Issue(account domain.Account) (domain.TokenPair, error)
}
