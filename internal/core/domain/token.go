package domain

import (
	"slices"
	"time"
)

// TokenTypeBearer is the scheme callers put in front of the access token.
const TokenTypeBearer = "Bearer"

// SessionToken is a freshly minted, opaque bearer credential.
type SessionToken struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// Claims is the verified content of a session token. It is passed explicitly
// through call arguments rather than kept in any ambient security context.
type Claims struct {
	UserID    string
	Username  string
	Email     string
	Roles     []string
	TokenID   string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// HasRole reports whether the claims carry role.
func (c *Claims) HasRole(role string) bool {
	return slices.Contains(c.Roles, role)
}

// HasAnyRole reports whether the claims carry at least one of roles.
func (c *Claims) HasAnyRole(roles ...string) bool {
	for _, r := range roles {
		if c.HasRole(r) {
			return true
		}
	}
	return false
}
