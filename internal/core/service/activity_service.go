package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/accounthub/account-service/internal/api/metrics"
	"github.com/accounthub/account-service/internal/core/domain"
	"github.com/accounthub/account-service/internal/core/ports"
)

type activityService struct {
	repo ports.ActivityRepository
	log  zerolog.Logger
}

// NewActivityService returns an ActivityService that appends events to the audit trail.
func NewActivityService(repo ports.ActivityRepository, log zerolog.Logger) ports.ActivityService {
	return &activityService{repo: repo, log: log}
}

// Process persists a single audit event.
func (s *activityService) Process(ctx context.Context, ev domain.ActivityEvent) error {
	start := time.Now()

	if ev.Kind == "" {
		metrics.ActivityErrorsTotal.WithLabelValues("invalid_event").Inc()
		return fmt.Errorf("process activity: empty kind")
	}
	if ev.OccurredAt.IsZero() {
		ev.OccurredAt = start.UTC()
	}

	if err := s.repo.Insert(ctx, &ev); err != nil {
		metrics.ActivityErrorsTotal.WithLabelValues("insert_failed").Inc()
		return fmt.Errorf("process activity: %w", err)
	}

	metrics.ActivityProcessedTotal.WithLabelValues(string(ev.Kind)).Inc()
	metrics.ActivityProcessingDuration.WithLabelValues(string(ev.Kind)).Observe(time.Since(start).Seconds())

	s.log.Debug().
		Str("kind", string(ev.Kind)).
		Str("user_id", ev.UserID).
		Str("subject", ev.Subject).
		Msg("activity recorded")
	return nil
}
