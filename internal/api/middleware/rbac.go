package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/accounthub/account-service/internal/core/domain"
)

// RBAC enforces role-based access control. The caller passes when its claims
// carry at least one of allowedRoles. Must run after Auth.
func RBAC(allowedRoles ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims := ClaimsFrom(c)
			if claims == nil {
				return domain.ErrInvalidToken
			}
			if !claims.HasAnyRole(allowedRoles...) {
				return domain.ErrForbidden
			}
			return next(c)
		}
	}
}
