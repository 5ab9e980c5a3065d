package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/accounthub/account-service/internal/core/domain"
	"github.com/accounthub/account-service/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Login authenticates a user and returns a session token.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials (username or email)"
// @Success      200   {object}  domain.SessionToken
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /api/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	token, err := h.authService.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, token)
}

// RegisterClient creates a client account.
//
// @Summary      Register a client
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Registration details"
// @Success      201   {object}  domain.RegistrationConfirmation
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /api/register/client [post]
func (h *AuthHandler) RegisterClient(c echo.Context) error {
	return h.register(c, h.authService.RegisterClient)
}

// RegisterEmployee creates an employee account.
//
// @Summary      Register an employee
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Registration details"
// @Success      201   {object}  domain.RegistrationConfirmation
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /api/register/employee [post]
func (h *AuthHandler) RegisterEmployee(c echo.Context) error {
	return h.register(c, h.authService.RegisterEmployee)
}

type registerFunc func(ctx context.Context, in ports.RegisterInput) (*domain.RegistrationConfirmation, error)

func (h *AuthHandler) register(c echo.Context, fn registerFunc) error {
	var req registerRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	confirmation, err := fn(c.Request().Context(), ports.RegisterInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		Phone:    req.Phone,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, confirmation)
}

// Refresh mints a new token for the authenticated caller.
//
// @Summary      Refresh the session token
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  domain.SessionToken
// @Failure      401  {object}  errorResponse
// @Router       /api/refresh-token [post]
func (h *AuthHandler) Refresh(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	token, err := h.authService.Refresh(c.Request().Context(), claims)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, token)
}
