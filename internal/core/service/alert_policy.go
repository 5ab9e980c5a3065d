package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/accounthub/account-service/internal/core/domain"
)

// AlertPolicy decides whether a profile change deserves an alert.
// It returns nil when no business rule fires.
type AlertPolicy interface {
	Evaluate(before, after *domain.User, now time.Time) *domain.Alert
}

// FieldChangePolicy raises an alert when a login-relevant field changes.
// Email changes take precedence over username changes. Other fields are ignored.
type FieldChangePolicy struct{}

func (FieldChangePolicy) Evaluate(before, after *domain.User, now time.Time) *domain.Alert {
	switch {
	case !strings.EqualFold(before.Email, after.Email):
		return &domain.Alert{
			UserID:    after.ID,
			Category:  domain.AlertEmailChanged,
			Message:   fmt.Sprintf("The email of account %q changed from %s to %s.", after.Username, before.Email, after.Email),
			CreatedAt: now,
		}
	case before.Username != after.Username:
		return &domain.Alert{
			UserID:    after.ID,
			Category:  domain.AlertUsernameChanged,
			Message:   fmt.Sprintf("The username of account %s changed from %q to %q.", after.Email, before.Username, after.Username),
			CreatedAt: now,
		}
	}
	return nil
}
