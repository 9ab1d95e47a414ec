package security

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/RahulSaini3125/jwt-auth-rest-api/internal/core/domain"
	"github.com/RahulSaini3125/jwt-auth-rest-api/internal/core/port"
)

const (
	tokenUseAccess  = "access"
	tokenUseRefresh = "refresh"
)

var (
	// ErrExpiredAccessToken indicates the presented access token has expired.
	ErrExpiredAccessToken = errors.New("access token expired")
	// ErrInvalidAccessToken indicates the token is malformed, mis-signed, or not an access token.
	ErrInvalidAccessToken = errors.New("invalid access token")
)

// SessionClaims augments registered claims with account context.
type SessionClaims struct {
	Email    string `json:"email"`
	TokenUse string `json:"use"`
	jwt.RegisteredClaims
}

// JWTIssuerConfig carries the issuance parameters.
type JWTIssuerConfig struct {
	Issuer          string
	Kid             string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration
}

// JWTIssuer mints and verifies RS256 session tokens.
type JWTIssuer struct {
	keys KeyProvider
	cfg  JWTIssuerConfig
	now  func() time.Time
}

// NewJWTIssuer constructs a JWTIssuer backed by the provided key provider.
func NewJWTIssuer(keys KeyProvider, cfg JWTIssuerConfig) (*JWTIssuer, error) {
	if keys == nil {
		return nil, errors.New("key provider is required")
	}
	if cfg.AccessTokenTTL <= 0 {
		cfg.AccessTokenTTL = 15 * time.Minute
	}
	if cfg.RefreshTokenTTL <= 0 {
		cfg.RefreshTokenTTL = 7 * 24 * time.Hour
	}
	return &JWTIssuer{keys: keys, cfg: cfg, now: time.Now}, nil
}

// Issue mints an access and refresh token pair for the account.
func (i *JWTIssuer) Issue(account domain.Account) (domain.TokenPair, error) {
	if account.ID == "" {
		return domain.TokenPair{}, errors.New("account id is required")
	}

	access, err := i.sign(account, tokenUseAccess, i.cfg.AccessTokenTTL)
	if err != nil {
		return domain.TokenPair{}, err
	}

	refresh, err := i.sign(account, tokenUseRefresh, i.cfg.RefreshTokenTTL)
	if err != nil {
		return domain.TokenPair{}, err
	}

	return domain.TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

func (i *JWTIssuer) sign(account domain.Account, use string, ttl time.Duration) (string, error) {
	now := i.now().UTC()

	claims := SessionClaims{
		Email:    account.Email,
		TokenUse: use,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   account.ID,
			Issuer:    i.cfg.Issuer,
			Audience:  jwt.ClaimStrings{i.cfg.Issuer},
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        uuid.NewString(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	token.Header["kid"] = i.cfg.Kid

	signingKey, err := i.keys.GetSigningKey()
	if err != nil {
		return "", fmt.Errorf("get signing key: %w", err)
	}

	signed, err := token.SignedString(signingKey)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}

	return signed, nil
}

// ParseAccessToken validates the JWT access token and returns its claims.
func (i *JWTIssuer) ParseAccessToken(token string) (*SessionClaims, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, ErrInvalidAccessToken
	}

	claims := &SessionClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodRSA); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}

		kid, ok := t.Header["kid"].(string)
		if !ok {
			return nil, fmt.Errorf("kid header not found")
		}

		return i.keys.GetVerificationKey(kid)
	}, jwt.WithIssuer(i.cfg.Issuer), jwt.WithAudience(i.cfg.Issuer))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredAccessToken
		}
		return nil, ErrInvalidAccessToken
	}

	if parsed == nil || !parsed.Valid {
		return nil, ErrInvalidAccessToken
	}
	if claims.TokenUse != tokenUseAccess {
		return nil, ErrInvalidAccessToken
	}
	if strings.TrimSpace(claims.Subject) == "" {
		return nil, ErrInvalidAccessToken
	}

	return claims, nil
}

var _ port.SessionTokenIssuer = (*JWTIssuer)(nil)
