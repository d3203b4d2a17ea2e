package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/volleybot/admin-api/internal/core/domain"
)

// detailResponse is the canonical error envelope for all API errors. The
// field name matches what the console client and the login page decode.
type detailResponse struct {
	Detail string `json:"detail"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their appropriate HTTP status codes.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders a consistent JSON envelope: {"detail": "<message>"}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c)
		_ = c.JSON(code, detailResponse{Detail: msg})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	// Known domain errors → deterministic HTTP codes.
	switch {
	case errors.Is(err, domain.ErrInvalidLogin),
		errors.Is(err, domain.ErrLoginExpired),
		errors.Is(err, domain.ErrLoginReplayed),
		errors.Is(err, domain.ErrSessionExpired),
		errors.Is(err, domain.ErrInvalidToken),
		errors.Is(err, domain.ErrUserNotFound):
		return http.StatusUnauthorized, err.Error()
	case errors.Is(err, domain.ErrNotAdmin),
		errors.Is(err, domain.ErrAdminRequired):
		return http.StatusForbidden, err.Error()
	case errors.Is(err, domain.ErrScheduleNotFound):
		return http.StatusNotFound, err.Error()
	case errors.Is(err, domain.ErrInvalidSchedule),
		errors.Is(err, domain.ErrInvalidWeekday),
		errors.Is(err, domain.ErrDuplicateAdmin),
		errors.Is(err, domain.ErrLastAdmin),
		errors.Is(err, domain.ErrAdminIDRequired):
		return http.StatusBadRequest, err.Error()
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "internal server error"
}
