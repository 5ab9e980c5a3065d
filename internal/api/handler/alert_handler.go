package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/accounthub/account-service/internal/core/ports"
)

type AlertHandler struct {
	alerts ports.AlertService
}

func NewAlertHandler(alerts ports.AlertService) *AlertHandler {
	return &AlertHandler{alerts: alerts}
}

// ListByUser handles GET /api/alerts/user/:userId.
//
// @Summary      Alerts of one user
// @Tags         alerts
// @Produce      json
// @Security     BearerAuth
// @Param        userId  path      string  true  "User id"
// @Success      200     {array}   alertResponse
// @Failure      401     {object}  errorResponse
// @Failure      403     {object}  errorResponse
// @Failure      404     {object}  errorResponse
// @Router       /api/alerts/user/{userId} [get]
func (h *AlertHandler) ListByUser(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	alerts, err := h.alerts.ListByUser(c.Request().Context(), claims, c.Param("userId"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toAlertResponses(alerts))
}

// ListAll handles GET /api/alerts.
//
// @Summary      All alerts
// @Tags         alerts
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   alertResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Router       /api/alerts [get]
func (h *AlertHandler) ListAll(c echo.Context) error {
	alerts, err := h.alerts.ListAll(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toAlertResponses(alerts))
}

// MarkRead handles PUT /api/alerts/:alertId/read. Repeating it is harmless.
//
// @Summary      Mark an alert as read
// @Tags         alerts
// @Security     BearerAuth
// @Param        alertId  path  string  true  "Alert id"
// @Success      200
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/alerts/{alertId}/read [put]
func (h *AlertHandler) MarkRead(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	if err := h.alerts.MarkRead(c.Request().Context(), claims, c.Param("alertId")); err != nil {
		return err
	}
	return c.NoContent(http.StatusOK)
}
