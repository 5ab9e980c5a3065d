package domain

import "time"

// ActivityKind enumerates audited account events.
type ActivityKind string

const (
	ActivityLoginSuccess   ActivityKind = "auth.login.success"
	ActivityLoginFailure   ActivityKind = "auth.login.failure"
	ActivityTokenRefreshed ActivityKind = "auth.token.refreshed"
	ActivityProfileUpdated ActivityKind = "user.profile.updated"
	ActivityAlertRead      ActivityKind = "alert.read"
)

// ActivityEvent is an entry of the account audit trail.
type ActivityEvent struct {
	Kind       ActivityKind
	UserID     string // empty when the actor could not be identified
	Subject    string // login name, alert id, or target user id
	Detail     string
	OccurredAt time.Time
}
