package domain

import "time"

// AlertCategory classifies why an alert was emitted.
type AlertCategory string

const (
	AlertEmailChanged    AlertCategory = "email_changed"
	AlertUsernameChanged AlertCategory = "username_changed"
)

// Alert is a notification persisted as the side effect of a profile mutation.
// Only Read ever changes after creation, and only from false to true.
type Alert struct {
	ID        string        `json:"id"`
	UserID    string        `json:"user_id"`
	Category  AlertCategory `json:"category"`
	Message   string        `json:"message"`
	Read      bool          `json:"read"`
	CreatedAt time.Time     `json:"created_at"`
}
