package ports

import (
	"context"

	"github.com/accounthub/account-service/internal/core/domain"
)

// AlertRepository reads alerts and performs the single allowed mutation.
type AlertRepository interface {
	// ListByUser returns the user's alerts, newest first.
	ListByUser(ctx context.Context, userID string) ([]*domain.Alert, error)
	// ListAll returns every alert, newest first.
	ListAll(ctx context.Context) ([]*domain.Alert, error)
	// MarkRead sets the read flag. Repeating it on an already read alert succeeds.
	// Unknown ids yield domain.ErrAlertNotFound.
	MarkRead(ctx context.Context, alertID string) error
}
