package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/tourhub/marketplace/internal/core/domain"
)

const (
	// SessionCookie carries the session token.
	SessionCookie = "auth_token"

	identityKey = "identity"
)

// SessionVerifier checks a session token against the live account and returns
// the caller's current identity.
type SessionVerifier interface {
	VerifySession(ctx context.Context, token string) (*domain.Identity, error)
}

// Auth validates the session token and injects the identity into context.
// The token is read from the auth_token cookie, falling back to an
// Authorization: Bearer header for non-browser clients.
func Auth(verifier SessionVerifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, err := SessionToken(c)
			if err != nil {
				return err
			}

			id, err := verifier.VerifySession(c.Request().Context(), token)
			switch {
			case err == nil:
			case errors.Is(err, domain.ErrAccountInactive):
				return echo.NewHTTPError(http.StatusForbidden, "account is not active")
			case errors.Is(err, domain.ErrStoreUnavailable):
				return err
			default:
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid or expired session")
			}

			SetIdentity(c, id)
			return next(c)
		}
	}
}

// SessionToken extracts the raw token from the request.
func SessionToken(c echo.Context) (string, error) {
	if cookie, err := c.Cookie(SessionCookie); err == nil && cookie.Value != "" {
		return cookie.Value, nil
	}

	authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
	if authHeader == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || parts[1] == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
	}
	return parts[1], nil
}

// SetIdentity stores the caller's identity on the request context.
func SetIdentity(c echo.Context, id *domain.Identity) {
	c.Set(identityKey, id)
}

// IdentityFrom returns the identity set by Auth, or nil outside an
// authenticated route.
func IdentityFrom(c echo.Context) *domain.Identity {
	id, _ := c.Get(identityKey).(*domain.Identity)
	return id
}
