package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/volleybot/admin-api/internal/core/ports"
)

// accessCookie must match the name the auth handler issues.
const accessCookie = "access_token"

// Session resolves the access-token cookie to a principal and injects it
// into the request context under "principal".
func Session(auth ports.AuthService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(accessCookie)
			if err != nil || cookie.Value == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "access token missing")
			}

			principal, err := auth.Identity(c.Request().Context(), cookie.Value)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid or expired session")
			}

			c.Set("principal", principal)
			return next(c)
		}
	}
}
