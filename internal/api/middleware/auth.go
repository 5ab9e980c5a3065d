package middleware

import (
	"errors"
	"fmt"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/accounthub/account-service/internal/api/metrics"
	"github.com/accounthub/account-service/internal/core/domain"
	"github.com/accounthub/account-service/internal/core/ports"
)

// ClaimsKey is the echo context key holding the verified *domain.Claims.
const ClaimsKey = "claims"

// Auth validates the bearer token and injects its claims into the context.
// Expired and otherwise invalid tokens fail with distinct domain errors.
func Auth(validator ports.TokenValidator) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
			if authHeader == "" {
				metrics.TokenValidationsTotal.WithLabelValues("missing").Inc()
				return fmt.Errorf("%w: missing authorization header", domain.ErrInvalidToken)
			}

			scheme, token, ok := strings.Cut(authHeader, " ")
			token = strings.TrimSpace(token)
			if !ok || !strings.EqualFold(scheme, domain.TokenTypeBearer) || token == "" {
				metrics.TokenValidationsTotal.WithLabelValues("invalid").Inc()
				return fmt.Errorf("%w: invalid authorization header", domain.ErrInvalidToken)
			}

			claims, err := validator.Validate(token)
			if err != nil {
				if errors.Is(err, domain.ErrExpiredToken) {
					metrics.TokenValidationsTotal.WithLabelValues("expired").Inc()
				} else {
					metrics.TokenValidationsTotal.WithLabelValues("invalid").Inc()
				}
				return err
			}

			metrics.TokenValidationsTotal.WithLabelValues("ok").Inc()
			c.Set(ClaimsKey, claims)
			return next(c)
		}
	}
}

// ClaimsFrom returns the claims stored by Auth, or nil when absent.
func ClaimsFrom(c echo.Context) *domain.Claims {
	claims, _ := c.Get(ClaimsKey).(*domain.Claims)
	return claims
}
