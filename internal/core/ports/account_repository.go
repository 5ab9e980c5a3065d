package ports

import (
	"context"

	"github.com/accounthub/account-service/internal/core/domain"
)

// AccountRepository is the account directory: user, role and credential storage.
type AccountRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	// FindByLogin matches login against username or email.
	FindByLogin(ctx context.Context, login string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
	// UpdateProfile persists user and, when alert is non-nil, inserts it in the
	// same transaction. Readers observe both writes or neither. The stored alert
	// (with its assigned ID) is returned.
	UpdateProfile(ctx context.Context, user *domain.User, alert *domain.Alert) (*domain.Alert, error)
}
