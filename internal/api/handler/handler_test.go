package handler

import (
	"context"
	"net/http/httptest"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/accounthub/account-service/internal/api/middleware"
	"github.com/accounthub/account-service/internal/core/domain"
	"github.com/accounthub/account-service/internal/core/ports"
)

func newContext(method, target, body string, claims *domain.Claims) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if claims != nil {
		c.Set(middleware.ClaimsKey, claims)
	}
	return c, rec
}

type stubAuthService struct {
	registerClientFn   func(ctx context.Context, in ports.RegisterInput) (*domain.RegistrationConfirmation, error)
	registerEmployeeFn func(ctx context.Context, in ports.RegisterInput) (*domain.RegistrationConfirmation, error)
	loginFn            func(ctx context.Context, login, password string) (*domain.SessionToken, error)
	refreshFn          func(ctx context.Context, claims *domain.Claims) (*domain.SessionToken, error)
}

func (s *stubAuthService) RegisterClient(ctx context.Context, in ports.RegisterInput) (*domain.RegistrationConfirmation, error) {
	return s.registerClientFn(ctx, in)
}

func (s *stubAuthService) RegisterEmployee(ctx context.Context, in ports.RegisterInput) (*domain.RegistrationConfirmation, error) {
	return s.registerEmployeeFn(ctx, in)
}

func (s *stubAuthService) Login(ctx context.Context, login, password string) (*domain.SessionToken, error) {
	return s.loginFn(ctx, login, password)
}

func (s *stubAuthService) Refresh(ctx context.Context, claims *domain.Claims) (*domain.SessionToken, error) {
	return s.refreshFn(ctx, claims)
}

type stubUserService struct {
	meFn             func(ctx context.Context, actor *domain.Claims) (*domain.User, error)
	updateClientFn   func(ctx context.Context, actor *domain.Claims, in ports.UpdateProfileInput) (*domain.Alert, error)
	updateEmployeeFn func(ctx context.Context, actor *domain.Claims, in ports.UpdateProfileInput) (*domain.Alert, error)
	listFn           func(ctx context.Context) ([]*domain.User, error)
}

func (s *stubUserService) Me(ctx context.Context, actor *domain.Claims) (*domain.User, error) {
	return s.meFn(ctx, actor)
}

func (s *stubUserService) UpdateClient(ctx context.Context, actor *domain.Claims, in ports.UpdateProfileInput) (*domain.Alert, error) {
	return s.updateClientFn(ctx, actor, in)
}

func (s *stubUserService) UpdateEmployee(ctx context.Context, actor *domain.Claims, in ports.UpdateProfileInput) (*domain.Alert, error) {
	return s.updateEmployeeFn(ctx, actor, in)
}

func (s *stubUserService) ListUsers(ctx context.Context) ([]*domain.User, error) {
	return s.listFn(ctx)
}

type stubAlertService struct {
	listByUserFn func(ctx context.Context, actor *domain.Claims, userID string) ([]*domain.Alert, error)
	listAllFn    func(ctx context.Context) ([]*domain.Alert, error)
	markReadFn   func(ctx context.Context, actor *domain.Claims, alertID string) error
}

func (s *stubAlertService) ListByUser(ctx context.Context, actor *domain.Claims, userID string) ([]*domain.Alert, error) {
	return s.listByUserFn(ctx, actor, userID)
}

func (s *stubAlertService) ListAll(ctx context.Context) ([]*domain.Alert, error) {
	return s.listAllFn(ctx)
}

func (s *stubAlertService) MarkRead(ctx context.Context, actor *domain.Claims, alertID string) error {
	return s.markReadFn(ctx, actor, alertID)
}
