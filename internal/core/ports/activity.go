package ports

import (
	"context"

	"github.com/accounthub/account-service/internal/core/domain"
)

// ActivityRecorder accepts audit events without blocking the caller.
type ActivityRecorder interface {
	Record(event domain.ActivityEvent)
}

// ActivityRepository persists audit events.
type ActivityRepository interface {
	Insert(ctx context.Context, event *domain.ActivityEvent) error
}

// ActivityService stores a single audit event.
type ActivityService interface {
	Process(ctx context.Context, event domain.ActivityEvent) error
}
