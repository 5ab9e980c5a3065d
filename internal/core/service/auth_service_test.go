package service

import (
	"context"
	"errors"
	"slices"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/accounthub/account-service/internal/core/domain"
	"github.com/accounthub/account-service/internal/core/ports"
)

func newAuthSvc(t *testing.T, repo *stubAccountRepo, activity *recordingActivity) (*AuthService, *TokenAuthority) {
	t.Helper()
	tokens, err := NewTokenAuthority([]byte("secret"), time.Hour, WithIssuer("account-service"))
	if err != nil {
		t.Fatalf("NewTokenAuthority: %v", err)
	}
	return NewAuthService(repo, tokens, activity, zerolog.Nop()), tokens
}

func TestAuthService_RegisterClient_Success(t *testing.T) {
	repo := newStubAccountRepo()
	svc, _ := newAuthSvc(t, repo, &recordingActivity{})

	conf, err := svc.RegisterClient(context.Background(), ports.RegisterInput{
		Username: "alice",
		Email:    "Alice@Example.com",
		Password: "pass123",
	})
	if err != nil {
		t.Fatalf("RegisterClient returned error: %v", err)
	}
	if conf.UserID == "" || conf.Email != "alice@example.com" {
		t.Fatalf("unexpected confirmation: %+v", conf)
	}
	if !slices.Equal(conf.Roles, []string{domain.RoleClient}) {
		t.Fatalf("expected client role, got %v", conf.Roles)
	}

	stored, err := repo.FindByID(context.Background(), conf.UserID)
	if err != nil {
		t.Fatalf("stored user missing: %v", err)
	}
	if stored.PasswordHash == "pass123" {
		t.Fatalf("expected password to be hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("pass123")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
}

func TestAuthService_RegisterEmployee_AssignsEmployeeRole(t *testing.T) {
	repo := newStubAccountRepo()
	svc, _ := newAuthSvc(t, repo, &recordingActivity{})

	conf, err := svc.RegisterEmployee(context.Background(), ports.RegisterInput{
		Username: "erin",
		Email:    "erin@example.com",
		Password: "pass123",
	})
	if err != nil {
		t.Fatalf("RegisterEmployee returned error: %v", err)
	}
	if !slices.Equal(conf.Roles, []string{domain.RoleEmployee}) {
		t.Fatalf("expected employee role, got %v", conf.Roles)
	}
}

func TestAuthService_Register_Validation(t *testing.T) {
	svc, _ := newAuthSvc(t, newStubAccountRepo(), &recordingActivity{})

	cases := []ports.RegisterInput{
		{Username: "", Email: "a@example.com", Password: "p"},
		{Username: "a", Email: " ", Password: "p"},
		{Username: "a", Email: "a@example.com", Password: ""},
	}
	for _, in := range cases {
		if _, err := svc.RegisterClient(context.Background(), in); !errors.Is(err, domain.ErrInvalidProfile) {
			t.Fatalf("input %+v: expected ErrInvalidProfile, got %v", in, err)
		}
	}
}

func TestAuthService_Register_Duplicate(t *testing.T) {
	svc, _ := newAuthSvc(t, newStubAccountRepo(), &recordingActivity{})

	in := ports.RegisterInput{Username: "bob", Email: "bob@example.com", Password: "pass"}
	if _, err := svc.RegisterClient(context.Background(), in); err != nil {
		t.Fatalf("first register failed: %v", err)
	}
	if _, err := svc.RegisterClient(context.Background(), in); !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestAuthService_Login_AliceClientScenario(t *testing.T) {
	repo := newStubAccountRepo()
	activity := &recordingActivity{}
	svc, tokens := newAuthSvc(t, repo, activity)

	if _, err := svc.RegisterClient(context.Background(), ports.RegisterInput{
		Username: "alice", Email: "alice@example.com", Password: "s3cret",
	}); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	for _, login := range []string{"alice", "alice@example.com"} {
		token, err := svc.Login(context.Background(), login, "s3cret")
		if err != nil {
			t.Fatalf("login with %q failed: %v", login, err)
		}
		if token.AccessToken == "" {
			t.Fatalf("expected token, got empty")
		}

		claims, err := tokens.Validate(token.AccessToken)
		if err != nil {
			t.Fatalf("token invalid: %v", err)
		}
		if !slices.Equal(claims.Roles, []string{domain.RoleClient}) {
			t.Fatalf("expected roles {client}, got %v", claims.Roles)
		}
		if claims.Username != "alice" {
			t.Fatalf("unexpected username claim %q", claims.Username)
		}
	}

	if got := activity.kinds(); len(got) != 2 || got[0] != domain.ActivityLoginSuccess {
		t.Fatalf("expected two login success events, got %v", got)
	}
}

func TestAuthService_Login_InvalidPassword(t *testing.T) {
	repo := newStubAccountRepo()
	activity := &recordingActivity{}
	svc, _ := newAuthSvc(t, repo, activity)

	_, _ = svc.RegisterClient(context.Background(), ports.RegisterInput{Username: "dave", Email: "dave@example.com", Password: "goodpass"})
	token, err := svc.Login(context.Background(), "dave@example.com", "badpass")
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if token != nil {
		t.Fatalf("expected no token on failure")
	}
	if got := activity.kinds(); len(got) != 1 || got[0] != domain.ActivityLoginFailure {
		t.Fatalf("expected a login failure event, got %v", got)
	}
}

func TestAuthService_Login_UnknownUserIsInvalidCredentials(t *testing.T) {
	svc, _ := newAuthSvc(t, newStubAccountRepo(), &recordingActivity{})

	if _, err := svc.Login(context.Background(), "ghost@example.com", "pass"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := svc.Login(context.Background(), "", ""); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for empty input, got %v", err)
	}
}

func TestAuthService_Login_UpstreamFailurePropagates(t *testing.T) {
	repo := newStubAccountRepo()
	repo.findErr = domain.ErrUpstreamUnavailable
	svc, _ := newAuthSvc(t, repo, &recordingActivity{})

	if _, err := svc.Login(context.Background(), "alice", "pass"); !errors.Is(err, domain.ErrUpstreamUnavailable) {
		t.Fatalf("expected ErrUpstreamUnavailable, got %v", err)
	}
}

func TestAuthService_Refresh(t *testing.T) {
	activity := &recordingActivity{}
	svc, tokens := newAuthSvc(t, newStubAccountRepo(), activity)

	claims := &domain.Claims{UserID: "user-9", Username: "carol", Roles: []string{domain.RoleEmployee}, TokenID: "old"}
	token, err := svc.Refresh(context.Background(), claims)
	if err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	got, err := tokens.Validate(token.AccessToken)
	if err != nil {
		t.Fatalf("refreshed token invalid: %v", err)
	}
	if got.UserID != "user-9" || got.TokenID == "old" {
		t.Fatalf("unexpected refreshed claims: %+v", got)
	}
	if kinds := activity.kinds(); len(kinds) != 1 || kinds[0] != domain.ActivityTokenRefreshed {
		t.Fatalf("expected refresh activity, got %v", kinds)
	}

	if _, err := svc.Refresh(context.Background(), nil); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for nil claims, got %v", err)
	}
}
