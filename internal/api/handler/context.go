package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/teamhub/identity-service/internal/api/middleware"
	"github.com/teamhub/identity-service/internal/core/domain"
)

// ctxPrincipal extracts the principal injected by the Auth middleware.
// Its absence means the middleware never ran on this route; treat that as
// an unauthenticated request rather than a server fault.
func ctxPrincipal(c echo.Context) (domain.Principal, error) {
	principal, ok := c.Get(middleware.PrincipalKey).(domain.Principal)
	if !ok || principal.Username == "" {
		return domain.Principal{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return principal, nil
}
