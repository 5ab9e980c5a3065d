package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/accounthub/account-service/internal/core/domain"
	"github.com/accounthub/account-service/internal/core/ports"
)

type AlertService struct {
	repo     ports.AlertRepository
	accounts ports.AccountRepository
	activity ports.ActivityRecorder
	log      zerolog.Logger
}

func NewAlertService(repo ports.AlertRepository, accounts ports.AccountRepository, activity ports.ActivityRecorder, log zerolog.Logger) *AlertService {
	if activity == nil {
		activity = nopRecorder{}
	}
	return &AlertService{repo: repo, accounts: accounts, activity: activity, log: log}
}

// ListByUser returns userID's alerts. Users see their own; employees and admins
// may read anyone's. An unknown userID is ErrUserNotFound, not an empty list.
func (s *AlertService) ListByUser(ctx context.Context, actor *domain.Claims, userID string) ([]*domain.Alert, error) {
	if actor == nil {
		return nil, domain.ErrInvalidToken
	}
	if userID != actor.UserID && !actor.HasAnyRole(domain.RoleEmployee, domain.RoleAdmin) {
		return nil, domain.ErrForbidden
	}
	if _, err := s.accounts.FindByID(ctx, userID); err != nil {
		return nil, err
	}
	return s.repo.ListByUser(ctx, userID)
}

// ListAll is the unfiltered administrative listing. Access is enforced by the router.
func (s *AlertService) ListAll(ctx context.Context) ([]*domain.Alert, error) {
	return s.repo.ListAll(ctx)
}

// MarkRead flips the alert's read flag. Calling it again is a no-op success.
func (s *AlertService) MarkRead(ctx context.Context, actor *domain.Claims, alertID string) error {
	if err := s.repo.MarkRead(ctx, alertID); err != nil {
		return err
	}

	ev := domain.ActivityEvent{
		Kind:       domain.ActivityAlertRead,
		Subject:    alertID,
		OccurredAt: time.Now().UTC(),
	}
	if actor != nil {
		ev.UserID = actor.UserID
	}
	s.activity.Record(ev)
	s.log.Debug().Str("alert_id", alertID).Msg("alert marked as read")
	return nil
}
