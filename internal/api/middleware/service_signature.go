package middleware

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/accounthub/account-service/internal/api/metrics"
	"github.com/accounthub/account-service/internal/core/domain"
	"github.com/accounthub/account-service/pkg/signature"
)

// DefaultSignatureHeader carries the signature presented by the serverless function.
const DefaultSignatureHeader = "serverlessSignature"

// ReplayGuard reports whether a signature digest is being used for the first time.
type ReplayGuard interface {
	FirstUse(ctx context.Context, digest string) (bool, error)
}

// SignatureConfig configures ServiceSignature.
type SignatureConfig struct {
	// Header defaults to DefaultSignatureHeader.
	Header string
	// Audience is the public base URL of this backend. The signed context is
	// Audience followed by the request path.
	Audience string
	// Guard is optional. When it errors the request is let through and the
	// failure is logged.
	Guard ReplayGuard
	Log   zerolog.Logger
}

// ServiceSignature admits requests that carry a fresh, valid service signature.
// Every failure, including a panic during verification, answers with
// domain.ErrSignatureRejected.
func ServiceSignature(authority *signature.Authority, cfg SignatureConfig) echo.MiddlewareFunc {
	header := cfg.Header
	if header == "" {
		header = DefaultSignatureHeader
	}
	audience := strings.TrimRight(cfg.Audience, "/")

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			presented := c.Request().Header.Get(header)
			if presented == "" {
				metrics.SignatureVerificationsTotal.WithLabelValues("missing").Inc()
				return fmt.Errorf("%w: missing %s header", domain.ErrSignatureRejected, header)
			}

			signedContext := audience + c.Request().URL.Path
			if err := verifySignature(c.Request().Context(), authority, cfg, signedContext, presented); err != nil {
				cfg.Log.Warn().
					Err(err).
					Str("path", c.Request().URL.Path).
					Str("remote_ip", c.RealIP()).
					Msg("service signature rejected")
				return fmt.Errorf("%w: %v", domain.ErrSignatureRejected, err)
			}

			metrics.SignatureVerificationsTotal.WithLabelValues("accepted").Inc()
			return next(c)
		}
	}
}

func verifySignature(ctx context.Context, authority *signature.Authority, cfg SignatureConfig, signedContext, presented string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			metrics.SignatureVerificationsTotal.WithLabelValues("error").Inc()
			err = fmt.Errorf("verification panicked: %v", r)
		}
	}()

	if _, err := authority.Check(signedContext, presented); err != nil {
		metrics.SignatureVerificationsTotal.WithLabelValues(rejectionReason(err)).Inc()
		return err
	}

	if cfg.Guard == nil {
		return nil
	}
	_, digest, _ := signature.Parse(presented)
	first, gerr := cfg.Guard.FirstUse(ctx, digest)
	if gerr != nil {
		cfg.Log.Warn().Err(gerr).Msg("replay guard unavailable, accepting signature")
		return nil
	}
	if !first {
		metrics.SignatureVerificationsTotal.WithLabelValues("replayed").Inc()
		return errors.New("signature already used")
	}
	return nil
}

func rejectionReason(err error) string {
	switch {
	case errors.Is(err, signature.ErrMalformed):
		return "malformed"
	case errors.Is(err, signature.ErrStale):
		return "stale"
	case errors.Is(err, signature.ErrMismatch):
		return "mismatch"
	}
	return "error"
}
