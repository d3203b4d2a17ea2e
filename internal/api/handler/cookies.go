package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/volleybot/admin-api/internal/core/ports"
)

const (
	// CookieAccess carries the short-lived access JWT.
	CookieAccess = "access_token"
	// CookieRefresh carries the long-lived refresh JWT.
	CookieRefresh = "refresh_token"

	// cookiePath scopes both cookies to the API so the static frontend
	// never sees them.
	cookiePath = "/api"
)

// setSessionCookies attaches the token pair as HttpOnly cookies.
func setSessionCookies(c echo.Context, tokens *ports.SessionTokens, secure bool) {
	c.SetCookie(sessionCookie(CookieAccess, tokens.AccessToken, tokens.AccessExpiresAt, secure))
	c.SetCookie(sessionCookie(CookieRefresh, tokens.RefreshToken, tokens.RefreshExpiresAt, secure))
}

// clearSessionCookies expires both cookies on the client.
func clearSessionCookies(c echo.Context, secure bool) {
	expired := time.Unix(0, 0)
	access := sessionCookie(CookieAccess, "", expired, secure)
	access.MaxAge = -1
	refresh := sessionCookie(CookieRefresh, "", expired, secure)
	refresh.MaxAge = -1
	c.SetCookie(access)
	c.SetCookie(refresh)
}

func sessionCookie(name, value string, expiresAt time.Time, secure bool) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     cookiePath,
		Expires:  expiresAt,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
}
