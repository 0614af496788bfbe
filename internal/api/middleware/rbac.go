package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/tourhub/marketplace/internal/core/domain"
)

// RequireUserType restricts a route to the given user types. It must run
// after Auth.
func RequireUserType(allowedTypes ...domain.UserType) echo.MiddlewareFunc {
	allowed := make(map[domain.UserType]struct{}, len(allowedTypes))
	for _, t := range allowedTypes {
		allowed[t] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id := IdentityFrom(c)
			if id == nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
			}
			if _, ok := allowed[id.UserType]; !ok {
				return c.JSON(http.StatusForbidden, map[string]string{"error": "forbidden"})
			}
			return next(c)
		}
	}
}
