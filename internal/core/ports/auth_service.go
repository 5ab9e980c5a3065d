package ports

import (
	"context"

	"github.com/accounthub/account-service/internal/core/domain"
)

// RegisterInput carries sign-up data. The role is chosen by the route, not the caller.
type RegisterInput struct {
	Username string
	Email    string
	Password string
	Phone    string
}

type AuthService interface {
	RegisterClient(ctx context.Context, in RegisterInput) (*domain.RegistrationConfirmation, error)
	RegisterEmployee(ctx context.Context, in RegisterInput) (*domain.RegistrationConfirmation, error)
	Login(ctx context.Context, login, password string) (*domain.SessionToken, error)
	Refresh(ctx context.Context, claims *domain.Claims) (*domain.SessionToken, error)
}

// TokenValidator verifies bearer tokens. It fails with domain.ErrInvalidToken or
// domain.ErrExpiredToken so the boundary can tell them apart.
type TokenValidator interface {
	Validate(token string) (*domain.Claims, error)
}
