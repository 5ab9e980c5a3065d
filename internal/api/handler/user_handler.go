package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/accounthub/account-service/internal/core/domain"
	"github.com/accounthub/account-service/internal/core/ports"
)

// UserHandler serves profile reads and updates plus the service-facing user list.
type UserHandler struct {
	users ports.UserService
}

func NewUserHandler(users ports.UserService) *UserHandler {
	return &UserHandler{users: users}
}

// Me returns the authenticated caller's profile.
//
// @Summary      Current user
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  userResponse
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/me [get]
func (h *UserHandler) Me(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	user, err := h.users.Me(c.Request().Context(), claims)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toUserResponse(user))
}

// UpdateClient updates a client profile. Returns the emitted alert, or 204 when
// the change produced none.
//
// @Summary      Update a client profile
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      updateProfileRequest  true  "Fields to change"
// @Success      200   {object}  alertResponse
// @Success      204
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /api/update/client [put]
func (h *UserHandler) UpdateClient(c echo.Context) error {
	return h.update(c, h.users.UpdateClient)
}

// UpdateEmployee updates an employee profile. Returns the emitted alert, or 204
// when the change produced none.
//
// @Summary      Update an employee profile
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      updateProfileRequest  true  "Fields to change"
// @Success      200   {object}  alertResponse
// @Success      204
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /api/update/employee [put]
func (h *UserHandler) UpdateEmployee(c echo.Context) error {
	return h.update(c, h.users.UpdateEmployee)
}

type updateFunc func(ctx context.Context, actor *domain.Claims, in ports.UpdateProfileInput) (*domain.Alert, error)

func (h *UserHandler) update(c echo.Context, fn updateFunc) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req updateProfileRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	alert, err := fn(c.Request().Context(), claims, ports.UpdateProfileInput{
		TargetID: req.UserID,
		Username: req.Username,
		Email:    req.Email,
		Phone:    req.Phone,
	})
	if err != nil {
		return err
	}
	if alert == nil {
		return c.NoContent(http.StatusNoContent)
	}
	return c.JSON(http.StatusOK, toAlertResponse(alert))
}

// ListUsers returns every account. Reached only with a valid service signature.
//
// @Summary      List users (service callers)
// @Tags         users
// @Produce      json
// @Security     ServiceSignature
// @Success      200  {array}   userResponse
// @Failure      401  {object}  errorResponse
// @Router       /api/users [get]
func (h *UserHandler) ListUsers(c echo.Context) error {
	users, err := h.users.ListUsers(c.Request().Context())
	if err != nil {
		return err
	}

	out := make([]userResponse, 0, len(users))
	for _, u := range users {
		out = append(out, toUserResponse(u))
	}
	return c.JSON(http.StatusOK, out)
}
