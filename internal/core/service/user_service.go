package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/accounthub/account-service/internal/api/metrics"
	"github.com/accounthub/account-service/internal/core/domain"
	"github.com/accounthub/account-service/internal/core/ports"
)

type UserService struct {
	repo     ports.AccountRepository
	policy   AlertPolicy
	activity ports.ActivityRecorder
	log      zerolog.Logger
	now      func() time.Time
}

func NewUserService(repo ports.AccountRepository, policy AlertPolicy, activity ports.ActivityRecorder, log zerolog.Logger) *UserService {
	if policy == nil {
		policy = FieldChangePolicy{}
	}
	if activity == nil {
		activity = nopRecorder{}
	}
	return &UserService{repo: repo, policy: policy, activity: activity, log: log, now: time.Now}
}

// Me returns the account behind actor.
func (s *UserService) Me(ctx context.Context, actor *domain.Claims) (*domain.User, error) {
	if actor == nil || actor.UserID == "" {
		return nil, domain.ErrInvalidToken
	}
	return s.repo.FindByID(ctx, actor.UserID)
}

// UpdateClient updates a client profile. Clients may edit themselves; employees
// and admins may edit any client.
func (s *UserService) UpdateClient(ctx context.Context, actor *domain.Claims, in ports.UpdateProfileInput) (*domain.Alert, error) {
	return s.updateProfile(ctx, actor, in, domain.RoleClient, domain.RoleEmployee, domain.RoleAdmin)
}

// UpdateEmployee updates an employee profile. Employees may edit themselves;
// admins may edit any employee.
func (s *UserService) UpdateEmployee(ctx context.Context, actor *domain.Claims, in ports.UpdateProfileInput) (*domain.Alert, error) {
	return s.updateProfile(ctx, actor, in, domain.RoleEmployee, domain.RoleAdmin)
}

func (s *UserService) ListUsers(ctx context.Context) ([]*domain.User, error) {
	return s.repo.List(ctx)
}

func (s *UserService) updateProfile(
	ctx context.Context,
	actor *domain.Claims,
	in ports.UpdateProfileInput,
	targetRole string,
	managerRoles ...string,
) (*domain.Alert, error) {
	if actor == nil || actor.UserID == "" {
		return nil, domain.ErrInvalidToken
	}

	targetID := in.TargetID
	if targetID == "" {
		targetID = actor.UserID
	}
	if targetID != actor.UserID && !actor.HasAnyRole(managerRoles...) {
		return nil, domain.ErrForbidden
	}

	before, err := s.repo.FindByID(ctx, targetID)
	if err != nil {
		return nil, err
	}
	if !before.HasRole(targetRole) {
		return nil, fmt.Errorf("%w: %s", domain.ErrRoleMismatch, targetRole)
	}

	after, err := applyProfile(before, in)
	if err != nil {
		return nil, err
	}
	now := s.now().UTC()
	after.UpdatedAt = now

	alert, err := s.repo.UpdateProfile(ctx, after, s.policy.Evaluate(before, after, now))
	if err != nil {
		return nil, err
	}

	s.activity.Record(domain.ActivityEvent{
		Kind:       domain.ActivityProfileUpdated,
		UserID:     actor.UserID,
		Subject:    targetID,
		OccurredAt: now,
	})

	if alert == nil {
		s.log.Debug().Str("user_id", targetID).Msg("profile updated without alert")
		return nil, nil
	}

	metrics.AlertsCreatedTotal.WithLabelValues(string(alert.Category)).Inc()
	s.log.Info().
		Str("user_id", targetID).
		Str("alert_id", alert.ID).
		Str("category", string(alert.Category)).
		Msg("profile updated, alert emitted")
	return alert, nil
}

// applyProfile returns a copy of u with the requested changes applied.
func applyProfile(u *domain.User, in ports.UpdateProfileInput) (*domain.User, error) {
	out := *u
	out.Roles = append([]string(nil), u.Roles...)

	if in.Username != nil {
		name := strings.TrimSpace(*in.Username)
		if name == "" {
			return nil, fmt.Errorf("%w: username must not be empty", domain.ErrInvalidProfile)
		}
		out.Username = name
	}
	if in.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*in.Email))
		if email == "" {
			return nil, fmt.Errorf("%w: email must not be empty", domain.ErrInvalidProfile)
		}
		out.Email = email
	}
	if in.Phone != nil {
		out.Phone = strings.TrimSpace(*in.Phone)
	}
	return &out, nil
}
