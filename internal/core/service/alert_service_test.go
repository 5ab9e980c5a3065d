package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/accounthub/account-service/internal/core/domain"
)

func newAlertSvc(repo *stubAlertRepo, activity *recordingActivity) *AlertService {
	return NewAlertService(repo, seededUsers(), activity, zerolog.Nop())
}

func TestAlertService_MarkRead_Idempotent(t *testing.T) {
	repo := newStubAlertRepo(&domain.Alert{ID: "al-1", UserID: "c-1", Category: domain.AlertEmailChanged})
	activity := &recordingActivity{}
	svc := newAlertSvc(repo, activity)
	actor := &domain.Claims{UserID: "c-1"}

	for i := 0; i < 2; i++ {
		if err := svc.MarkRead(context.Background(), actor, "al-1"); err != nil {
			t.Fatalf("call %d: MarkRead: %v", i+1, err)
		}
		if !repo.alerts["al-1"].Read {
			t.Fatalf("call %d: read flag not set", i+1)
		}
	}
	if len(activity.kinds()) != 2 {
		t.Fatalf("expected two alert.read activities, got %v", activity.kinds())
	}
}

func TestAlertService_MarkRead_UnknownID(t *testing.T) {
	svc := newAlertSvc(newStubAlertRepo(), &recordingActivity{})

	if err := svc.MarkRead(context.Background(), &domain.Claims{UserID: "c-1"}, "nope"); !errors.Is(err, domain.ErrAlertNotFound) {
		t.Fatalf("expected ErrAlertNotFound, got %v", err)
	}
}

func TestAlertService_ListByUser(t *testing.T) {
	repo := newStubAlertRepo(
		&domain.Alert{ID: "al-1", UserID: "c-1"},
		&domain.Alert{ID: "al-2", UserID: "c-2"},
	)
	svc := newAlertSvc(repo, &recordingActivity{})
	employee := &domain.Claims{UserID: "e-1", Roles: []string{domain.RoleEmployee}}

	own, err := svc.ListByUser(context.Background(), &domain.Claims{UserID: "c-1", Roles: []string{domain.RoleClient}}, "c-1")
	if err != nil {
		t.Fatalf("ListByUser: %v", err)
	}
	if len(own) != 1 || own[0].ID != "al-1" {
		t.Fatalf("unexpected alerts: %+v", own)
	}

	if _, err := svc.ListByUser(context.Background(), &domain.Claims{UserID: "c-1", Roles: []string{domain.RoleClient}}, "c-2"); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}

	other, err := svc.ListByUser(context.Background(), employee, "c-2")
	if err != nil || len(other) != 1 {
		t.Fatalf("employee listing failed: %v %+v", err, other)
	}

	none, err := svc.ListByUser(context.Background(), employee, "e-1")
	if err != nil || len(none) != 0 {
		t.Fatalf("known user without alerts should list empty: %v %+v", err, none)
	}
}

func TestAlertService_ListByUser_UnknownUser(t *testing.T) {
	svc := newAlertSvc(newStubAlertRepo(), &recordingActivity{})
	admin := &domain.Claims{UserID: "a-1", Roles: []string{domain.RoleAdmin}}

	alerts, err := svc.ListByUser(context.Background(), admin, "ghost")
	if !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
	if alerts != nil {
		t.Fatalf("expected no alerts, got %+v", alerts)
	}
}

func TestAlertService_ListAll(t *testing.T) {
	repo := newStubAlertRepo(&domain.Alert{ID: "al-1"}, &domain.Alert{ID: "al-2"})
	svc := newAlertSvc(repo, &recordingActivity{})

	all, err := svc.ListAll(context.Background())
	if err != nil {
		t.Fatalf("ListAll: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 alerts, got %d", len(all))
	}

	repo.err = domain.ErrUpstreamUnavailable
	if _, err := svc.ListAll(context.Background()); !errors.Is(err, domain.ErrUpstreamUnavailable) {
		t.Fatalf("expected ErrUpstreamUnavailable, got %v", err)
	}
}
