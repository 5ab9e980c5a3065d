package ports

import (
	"context"

	"github.com/accounthub/account-service/internal/core/domain"
)

// UpdateProfileInput carries the mutable fields of a profile. Nil means unchanged.
type UpdateProfileInput struct {
	TargetID string
	Username *string
	Email    *string
	Phone    *string
}

// UserService covers profile reads and updates.
type UserService interface {
	Me(ctx context.Context, actor *domain.Claims) (*domain.User, error)
	// UpdateClient and UpdateEmployee return the emitted alert, or nil when the
	// change triggered none. A nil alert is not an error.
	UpdateClient(ctx context.Context, actor *domain.Claims, in UpdateProfileInput) (*domain.Alert, error)
	UpdateEmployee(ctx context.Context, actor *domain.Claims, in UpdateProfileInput) (*domain.Alert, error)
	ListUsers(ctx context.Context) ([]*domain.User, error)
}

// AlertService exposes alert listing and the read transition.
type AlertService interface {
	ListByUser(ctx context.Context, actor *domain.Claims, userID string) ([]*domain.Alert, error)
	ListAll(ctx context.Context) ([]*domain.Alert, error)
	MarkRead(ctx context.Context, actor *domain.Claims, alertID string) error
}
