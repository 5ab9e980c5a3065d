package handler

import (
	"fmt"

	"github.com/labstack/echo/v4"

	"github.com/accounthub/account-service/internal/api/middleware"
	"github.com/accounthub/account-service/internal/core/domain"
)

// ctxClaims extracts the claims injected by the Auth middleware. A token without
// a subject is structurally valid but unusable, so it is rejected here before
// any service call.
func ctxClaims(c echo.Context) (*domain.Claims, error) {
	claims := middleware.ClaimsFrom(c)
	if claims == nil {
		return nil, fmt.Errorf("%w: missing authentication claims", domain.ErrInvalidToken)
	}
	if claims.UserID == "" {
		return nil, fmt.Errorf("%w: token missing subject", domain.ErrInvalidToken)
	}
	return claims, nil
}
