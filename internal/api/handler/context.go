package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/volleybot/admin-api/internal/core/domain"
)

// principalKey is the context key under which the session middleware stores
// the authenticated principal.
const principalKey = "principal"

// ctxPrincipal extracts the principal injected by the session middleware.
// Its absence means the middleware did not run; treat as unauthenticated.
func ctxPrincipal(c echo.Context) (*domain.Principal, error) {
	principal, _ := c.Get(principalKey).(*domain.Principal)
	if principal == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "not authenticated")
	}
	return principal, nil
}
