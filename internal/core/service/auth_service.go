package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/accounthub/account-service/internal/api/metrics"
	"github.com/accounthub/account-service/internal/core/domain"
	"github.com/accounthub/account-service/internal/core/ports"
)

const registrationMessage = "Account created. A confirmation will be sent to the registered email."

// AuthService implements registration, login and token refresh.
type AuthService struct {
	repo     ports.AccountRepository
	tokens   *TokenAuthority
	activity ports.ActivityRecorder
	log      zerolog.Logger
}

func NewAuthService(repo ports.AccountRepository, tokens *TokenAuthority, activity ports.ActivityRecorder, log zerolog.Logger) *AuthService {
	if activity == nil {
		activity = nopRecorder{}
	}
	return &AuthService{repo: repo, tokens: tokens, activity: activity, log: log}
}

func (s *AuthService) RegisterClient(ctx context.Context, in ports.RegisterInput) (*domain.RegistrationConfirmation, error) {
	return s.register(ctx, in, domain.RoleClient)
}

func (s *AuthService) RegisterEmployee(ctx context.Context, in ports.RegisterInput) (*domain.RegistrationConfirmation, error) {
	return s.register(ctx, in, domain.RoleEmployee)
}

func (s *AuthService) register(ctx context.Context, in ports.RegisterInput, role string) (*domain.RegistrationConfirmation, error) {
	username := strings.TrimSpace(in.Username)
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if username == "" || email == "" || in.Password == "" {
		return nil, domain.ErrInvalidProfile
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	created, err := s.repo.Create(ctx, &domain.User{
		Username:     username,
		Email:        email,
		Phone:        strings.TrimSpace(in.Phone),
		PasswordHash: string(hash),
		Roles:        []string{role},
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("user_id", created.ID).Str("role", role).Msg("account registered")

	return &domain.RegistrationConfirmation{
		UserID:   created.ID,
		Username: created.Username,
		Email:    created.Email,
		Roles:    created.Roles,
		Message:  registrationMessage,
	}, nil
}

// Login authenticates login (username or email) and password and issues a token.
// Unknown accounts and wrong passwords both yield domain.ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, login, password string) (*domain.SessionToken, error) {
	login = strings.TrimSpace(login)
	if login == "" || password == "" {
		metrics.LoginsTotal.WithLabelValues("invalid_credentials").Inc()
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindByLogin(ctx, login)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			s.loginFailed(login, "unknown account")
			return nil, domain.ErrInvalidCredentials
		}
		metrics.LoginsTotal.WithLabelValues("error").Inc()
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		s.loginFailed(login, "password mismatch")
		return nil, domain.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("error").Inc()
		return nil, err
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	metrics.TokensIssuedTotal.WithLabelValues("login").Inc()
	s.activity.Record(domain.ActivityEvent{
		Kind:       domain.ActivityLoginSuccess,
		UserID:     user.ID,
		Subject:    login,
		OccurredAt: time.Now().UTC(),
	})
	return token, nil
}

// Refresh issues a new token for a caller whose claims were verified upstream.
func (s *AuthService) Refresh(_ context.Context, claims *domain.Claims) (*domain.SessionToken, error) {
	token, err := s.tokens.Refresh(claims)
	if err != nil {
		return nil, err
	}

	metrics.TokensIssuedTotal.WithLabelValues("refresh").Inc()
	s.activity.Record(domain.ActivityEvent{
		Kind:       domain.ActivityTokenRefreshed,
		UserID:     claims.UserID,
		Subject:    claims.TokenID,
		OccurredAt: time.Now().UTC(),
	})
	return token, nil
}

func (s *AuthService) loginFailed(login, reason string) {
	metrics.LoginsTotal.WithLabelValues("invalid_credentials").Inc()
	s.log.Warn().Str("login", login).Str("reason", reason).Msg("login rejected")
	s.activity.Record(domain.ActivityEvent{
		Kind:       domain.ActivityLoginFailure,
		Subject:    login,
		Detail:     reason,
		OccurredAt: time.Now().UTC(),
	})
}

type nopRecorder struct{}

func (nopRecorder) Record(domain.ActivityEvent) {}
