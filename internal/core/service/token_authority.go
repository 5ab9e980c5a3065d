package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/accounthub/account-service/internal/core/domain"
)

const defaultTokenTTL = time.Hour

// sessionClaims is the JWT payload of a session token.
type sessionClaims struct {
	jwt.RegisteredClaims
	Username string   `json:"username"`
	Email    string   `json:"email,omitempty"`
	Roles    []string `json:"roles"`
}

// TokenAuthority issues, validates and refreshes HS256 session tokens.
// It depends only on its key and clock, so it is safe for concurrent use.
type TokenAuthority struct {
	key    []byte
	ttl    time.Duration
	issuer string
	now    func() time.Time
}

// TokenOption customises a TokenAuthority.
type TokenOption func(*TokenAuthority)

// WithTokenClock overrides time.Now.
func WithTokenClock(now func() time.Time) TokenOption {
	return func(a *TokenAuthority) {
		if now != nil {
			a.now = now
		}
	}
}

// WithIssuer sets the iss claim written and required by the authority.
func WithIssuer(issuer string) TokenOption {
	return func(a *TokenAuthority) { a.issuer = issuer }
}

// NewTokenAuthority returns an authority signing with key. A non-positive ttl
// falls back to one hour.
func NewTokenAuthority(key []byte, ttl time.Duration, opts ...TokenOption) (*TokenAuthority, error) {
	if len(key) == 0 {
		return nil, errors.New("token authority: signing key is empty")
	}
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}
	a := &TokenAuthority{key: key, ttl: ttl, now: time.Now}
	for _, opt := range opts {
		opt(a)
	}
	return a, nil
}

// TTL is the validity window of every issued token.
func (a *TokenAuthority) TTL() time.Duration {
	return a.ttl
}

// Issue mints a token for an identity already authenticated by the account directory.
func (a *TokenAuthority) Issue(user *domain.User) (*domain.SessionToken, error) {
	if user == nil || user.ID == "" {
		return nil, domain.ErrInvalidCredentials
	}
	return a.mint(user.ID, user.Username, user.Email, user.Roles)
}

// Refresh mints a new token for an already verified caller. The subject and
// role claims are carried over; issued-at, expiry and token id are new.
func (a *TokenAuthority) Refresh(claims *domain.Claims) (*domain.SessionToken, error) {
	if claims == nil || claims.UserID == "" {
		return nil, domain.ErrInvalidToken
	}
	return a.mint(claims.UserID, claims.Username, claims.Email, claims.Roles)
}

// Validate checks signature and expiry and returns the token's claims.
func (a *TokenAuthority) Validate(token string) (*domain.Claims, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(a.now),
		jwt.WithExpirationRequired(),
		jwt.WithStrictDecoding(),
	}
	if a.issuer != "" {
		opts = append(opts, jwt.WithIssuer(a.issuer))
	}

	sc := &sessionClaims{}
	parsed, err := jwt.ParseWithClaims(token, sc, func(*jwt.Token) (any, error) {
		return a.key, nil
	}, opts...)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, domain.ErrExpiredToken
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidToken, err)
	}
	if !parsed.Valid || sc.Subject == "" {
		return nil, domain.ErrInvalidToken
	}

	claims := &domain.Claims{
		UserID:   sc.Subject,
		Username: sc.Username,
		Email:    sc.Email,
		Roles:    sc.Roles,
		TokenID:  sc.ID,
	}
	if sc.IssuedAt != nil {
		claims.IssuedAt = sc.IssuedAt.Time
	}
	if sc.ExpiresAt != nil {
		claims.ExpiresAt = sc.ExpiresAt.Time
	}
	return claims, nil
}

func (a *TokenAuthority) mint(subject, username, email string, roles []string) (*domain.SessionToken, error) {
	now := a.now()
	expiresAt := now.Add(a.ttl)

	claims := sessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    a.issuer,
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
		Username: username,
		Email:    email,
		Roles:    append([]string(nil), roles...),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.key)
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}

	return &domain.SessionToken{
		AccessToken: signed,
		TokenType:   domain.TokenTypeBearer,
		ExpiresAt:   claims.ExpiresAt.Time,
	}, nil
}
