package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/volleybot/admin-api/internal/api/metrics"
	"github.com/volleybot/admin-api/internal/core/domain"
	"github.com/volleybot/admin-api/internal/core/ports"
)

// AuthHandler implements the session endpoints backing the login view and
// the console's session store.
type AuthHandler struct {
	authService   ports.AuthService
	botUsername   string
	secureCookies bool
}

func NewAuthHandler(authService ports.AuthService, botUsername string, secureCookies bool) *AuthHandler {
	return &AuthHandler{
		authService:   authService,
		botUsername:   botUsername,
		secureCookies: secureCookies,
	}
}

// Login verifies a Telegram Login Widget payload and opens a session.
//
// @Summary      Sign in via the Telegram login widget
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      telegramLoginRequest  true  "Signed widget payload"
// @Success      200   {object}  loginResponse
// @Failure      401   {object}  detailResponse
// @Failure      403   {object}  detailResponse
// @Router       /api/auth/telegram [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req telegramLoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	principal, tokens, err := h.authService.Login(c.Request().Context(), ports.LoginInput{
		ID:        req.ID,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Username:  req.Username,
		PhotoURL:  req.PhotoURL,
		AuthDate:  req.AuthDate,
		Hash:      req.Hash,
	})
	if err != nil {
		metrics.LoginsTotal.WithLabelValues(loginResult(err)).Inc()
		return err
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	setSessionCookies(c, tokens, h.secureCookies)
	return c.JSON(http.StatusOK, loginResponse{Success: true, User: principal})
}

// Refresh rotates the refresh token and issues a new access token.
//
// @Summary      Refresh the session
// @Tags         auth
// @Produce      json
// @Success      200  {object}  statusResponse
// @Failure      401  {object}  detailResponse
// @Router       /api/auth/refresh [post]
func (h *AuthHandler) Refresh(c echo.Context) error {
	cookie, err := c.Cookie(CookieRefresh)
	if err != nil || cookie.Value == "" {
		metrics.TokenRefreshesTotal.WithLabelValues("rejected").Inc()
		return echo.NewHTTPError(http.StatusUnauthorized, "refresh token missing")
	}

	_, tokens, err := h.authService.Refresh(c.Request().Context(), cookie.Value)
	if err != nil {
		metrics.TokenRefreshesTotal.WithLabelValues("rejected").Inc()
		return err
	}

	metrics.TokenRefreshesTotal.WithLabelValues("success").Inc()
	setSessionCookies(c, tokens, h.secureCookies)
	return c.JSON(http.StatusOK, statusResponse{Success: true, Message: "token refreshed"})
}

// Me returns the current principal.
//
// @Summary      Current session identity
// @Tags         auth
// @Produce      json
// @Success      200  {object}  domain.Principal
// @Failure      401  {object}  detailResponse
// @Router       /api/auth/me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, principal)
}

// Logout closes the session. It always succeeds: the cookies are cleared
// even when no valid refresh token was presented.
//
// @Summary      Sign out
// @Tags         auth
// @Produce      json
// @Success      200  {object}  statusResponse
// @Router       /api/auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	if cookie, err := c.Cookie(CookieRefresh); err == nil && cookie.Value != "" {
		h.authService.Logout(c.Request().Context(), cookie.Value)
	}
	clearSessionCookies(c, h.secureCookies)
	return c.JSON(http.StatusOK, statusResponse{Success: true, Message: "logged out"})
}

// WidgetConfig returns the parameters the login page needs to bootstrap the
// Telegram widget.
//
// @Summary      Telegram widget configuration
// @Tags         auth
// @Produce      json
// @Success      200  {object}  widgetConfigResponse
// @Router       /api/auth/telegram/config [get]
func (h *AuthHandler) WidgetConfig(c echo.Context) error {
	return c.JSON(http.StatusOK, widgetConfigResponse{
		BotUsername: h.botUsername,
		ButtonSize:  "large",
		Lang:        "ru",
	})
}

func loginResult(err error) string {
	switch {
	case errors.Is(err, domain.ErrInvalidLogin):
		return "invalid_signature"
	case errors.Is(err, domain.ErrLoginExpired):
		return "expired"
	case errors.Is(err, domain.ErrLoginReplayed):
		return "replayed"
	case errors.Is(err, domain.ErrNotAdmin):
		return "forbidden"
	default:
		return "error"
	}
}
