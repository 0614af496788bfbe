package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/tourhub/marketplace/internal/api/middleware"
	"github.com/tourhub/marketplace/internal/core/domain"
	"github.com/tourhub/marketplace/internal/core/ports"
)

// ctxIdentity returns the identity injected by the Auth middleware. A missing
// identity means the route was mounted without it.
func ctxIdentity(c echo.Context) (*domain.Identity, error) {
	id := middleware.IdentityFrom(c)
	if id == nil || id.UserID == "" {
		return nil, domain.ErrUnauthenticated
	}
	return id, nil
}

func clientInfo(c echo.Context) ports.ClientInfo {
	return ports.ClientInfo{
		IP:        c.RealIP(),
		UserAgent: c.Request().UserAgent(),
	}
}
