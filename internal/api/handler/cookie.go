package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/tourhub/marketplace/internal/api/middleware"
	"github.com/tourhub/marketplace/internal/core/service"
)

// SessionCookies writes and clears the auth_token cookie.
type SessionCookies struct {
	secure bool
	now    func() time.Time
}

// NewSessionCookies returns a cookie writer; secure should be true in production.
func NewSessionCookies(secure bool) *SessionCookies {
	return &SessionCookies{secure: secure, now: time.Now}
}

// Set attaches a session cookie lasting as long as the token.
func (s *SessionCookies) Set(c echo.Context, token string) {
	c.SetCookie(&http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(service.SessionTTL / time.Second),
		Expires:  s.now().Add(service.SessionTTL),
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteStrictMode,
	})
}

// Clear tells the browser to drop the session cookie.
func (s *SessionCookies) Clear(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteStrictMode,
	})
}
