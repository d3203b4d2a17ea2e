package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/volleybot/admin-api/internal/core/domain"
)

// AdminOnly rejects sessions whose principal lost administrator rights after
// the token was issued. Must run after Session.
func AdminOnly() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			principal, _ := c.Get("principal").(*domain.Principal)
			if principal == nil || !principal.IsAdmin {
				return echo.NewHTTPError(http.StatusForbidden, "administrator rights required")
			}
			return next(c)
		}
	}
}
