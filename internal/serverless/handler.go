package serverless

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

// UserSource supplies the raw user list.
type UserSource interface {
	FetchUsers(ctx context.Context) (json.RawMessage, error)
}

type usersData struct {
	Users json.RawMessage `json:"users"`
}

type usersEnvelope struct {
	Data usersData `json:"data"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Handler exposes the function over HTTP.
type Handler struct {
	source UserSource
	log    zerolog.Logger
}

func NewHandler(source UserSource, log zerolog.Logger) *Handler {
	return &Handler{source: source, log: log}
}

// GraphQLUsers answers with {"data":{"users":[...]}}. Any failure is logged and
// reported as 500.
func (h *Handler) GraphQLUsers(c echo.Context) error {
	users, err := h.source.FetchUsers(c.Request().Context())
	if err != nil {
		h.log.Error().Err(err).Msg("fetch users failed")
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: "failed to query users: " + err.Error()})
	}
	return c.JSON(http.StatusOK, usersEnvelope{Data: usersData{Users: users}})
}

// NewServer returns the Echo instance serving the function.
func NewServer(h *Handler) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.POST("/api/GraphQLUsers", h.GraphQLUsers)
	return e
}
