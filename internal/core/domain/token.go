package domain

// TokenPair carries the bearer tokens minted for an authenticated session.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}
