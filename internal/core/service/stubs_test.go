package service

import (
	"context"
	"strconv"
	"strings"
	"sync"

	"github.com/accounthub/account-service/internal/core/domain"
)

type stubAccountRepo struct {
	mu        sync.Mutex
	users     map[string]*domain.User
	alerts    []*domain.Alert
	nextID    int
	updateErr error
	findErr   error
}

func newStubAccountRepo() *stubAccountRepo {
	return &stubAccountRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	clone.Roles = append([]string(nil), u.Roles...)
	return &clone
}

func (r *stubAccountRepo) seed(u *domain.User) *domain.User {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[u.ID] = cloneUser(u)
	return u
}

func (r *stubAccountRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Username == user.Username || u.Email == user.Email {
			return nil, domain.ErrUserExists
		}
	}
	r.nextID++
	created := cloneUser(user)
	created.ID = "user-" + strconv.Itoa(r.nextID)
	r.users[created.ID] = cloneUser(created)
	return created, nil
}

func (r *stubAccountRepo) FindByLogin(_ context.Context, login string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.findErr != nil {
		return nil, r.findErr
	}
	for _, u := range r.users {
		if u.Username == login || strings.EqualFold(u.Email, login) {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubAccountRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.findErr != nil {
		return nil, r.findErr
	}
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubAccountRepo) List(_ context.Context) ([]*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*domain.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, cloneUser(u))
	}
	return out, nil
}

func (r *stubAccountRepo) UpdateProfile(_ context.Context, user *domain.User, alert *domain.Alert) (*domain.Alert, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.updateErr != nil {
		return nil, r.updateErr
	}
	r.users[user.ID] = cloneUser(user)
	if alert == nil {
		return nil, nil
	}
	stored := *alert
	stored.ID = "alert-" + strconv.Itoa(len(r.alerts)+1)
	r.alerts = append(r.alerts, &stored)
	out := stored
	return &out, nil
}

type stubAlertRepo struct {
	mu     sync.Mutex
	alerts map[string]*domain.Alert
	err    error
}

func newStubAlertRepo(alerts ...*domain.Alert) *stubAlertRepo {
	r := &stubAlertRepo{alerts: make(map[string]*domain.Alert)}
	for _, a := range alerts {
		clone := *a
		r.alerts[a.ID] = &clone
	}
	return r
}

func (r *stubAlertRepo) ListByUser(_ context.Context, userID string) ([]*domain.Alert, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	var out []*domain.Alert
	for _, a := range r.alerts {
		if a.UserID == userID {
			clone := *a
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *stubAlertRepo) ListAll(_ context.Context) ([]*domain.Alert, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	out := make([]*domain.Alert, 0, len(r.alerts))
	for _, a := range r.alerts {
		clone := *a
		out = append(out, &clone)
	}
	return out, nil
}

func (r *stubAlertRepo) MarkRead(_ context.Context, alertID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	a, ok := r.alerts[alertID]
	if !ok {
		return domain.ErrAlertNotFound
	}
	a.Read = true
	return nil
}

type recordingActivity struct {
	mu     sync.Mutex
	events []domain.ActivityEvent
}

func (r *recordingActivity) Record(ev domain.ActivityEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
}

func (r *recordingActivity) kinds() []domain.ActivityKind {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.ActivityKind, 0, len(r.events))
	for _, ev := range r.events {
		out = append(out, ev.Kind)
	}
	return out
}
