package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/teamhub/identity-service/internal/api/metrics"
	"github.com/teamhub/identity-service/internal/core/domain"
	"github.com/teamhub/identity-service/internal/core/ports"
)

// PrincipalKey is the echo context key under which Auth stores the
// authenticated principal. Handlers and middleware read it back with
// c.Get(PrincipalKey).
const PrincipalKey = "principal"

// Auth validates the bearer token and injects the principal into context.
// Malformed, tampered and expired tokens all produce the same 401 response;
// the distinction is kept for metrics only.
func Auth(validator ports.TokenValidator) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			principal, err := validator.Validate(parts[1])
			if err != nil {
				metrics.TokenRejectionsTotal.WithLabelValues(rejectionReason(err)).Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "unauthenticated")
			}

			c.Set(PrincipalKey, principal)
			return next(c)
		}
	}
}

func rejectionReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrTokenExpired):
		return "expired"
	case errors.Is(err, domain.ErrTokenBadSignature):
		return "bad_signature"
	default:
		return "malformed"
	}
}
