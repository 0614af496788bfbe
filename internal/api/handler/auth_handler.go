package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/tourhub/marketplace/internal/api/middleware"
	"github.com/tourhub/marketplace/internal/core/domain"
	"github.com/tourhub/marketplace/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
	cookies     *SessionCookies
	log         zerolog.Logger
}

func NewAuthHandler(authService ports.AuthService, cookies *SessionCookies, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{authService: authService, cookies: cookies, log: log}
}

// Register creates a new account and signs it in.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "User registration details"
// @Success      201   {object}  userResponse
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /api/auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, token, err := h.authService.Register(c.Request().Context(), ports.RegisterInput{
		Email:       req.Email,
		Password:    req.Password,
		FullName:    req.FullName,
		UserType:    req.UserType,
		PhoneNumber: req.PhoneNumber,
	}, clientInfo(c))
	if err != nil {
		return err
	}

	h.cookies.Set(c, token)
	return c.JSON(http.StatusCreated, userResponse{User: user})
}

// Login authenticates a user and sets the session cookie.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  userResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, token, err := h.authService.Login(c.Request().Context(), req.Email, req.Password, clientInfo(c))
	if err != nil {
		return err
	}

	h.cookies.Set(c, token)
	return c.JSON(http.StatusOK, userResponse{User: user})
}

// Logout clears the session cookie. It always succeeds.
//
// @Summary      Logout
// @Tags         auth
// @Produce      json
// @Success      200  {object}  messageResponse
// @Router       /api/auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	if cookie, err := c.Cookie(middleware.SessionCookie); err == nil && cookie.Value != "" {
		h.authService.Logout(c.Request().Context(), cookie.Value, clientInfo(c))
	}
	h.cookies.Clear(c)
	return c.JSON(http.StatusOK, messageResponse{Message: "Logged out successfully"})
}

// Session returns the signed-in user, or null. It never fails: any problem
// with the session is reported as anonymous and the stale cookie is cleared.
//
// @Summary      Current session
// @Tags         auth
// @Produce      json
// @Success      200  {object}  sessionResponse
// @Router       /api/auth/session [get]
func (h *AuthHandler) Session(c echo.Context) error {
	cookie, err := c.Cookie(middleware.SessionCookie)
	if err != nil || cookie.Value == "" {
		return c.JSON(http.StatusOK, sessionResponse{})
	}

	user, err := h.authService.Session(c.Request().Context(), cookie.Value)
	if err != nil {
		// Keep the cookie through a store outage; the token may still be good.
		if errors.Is(err, domain.ErrStoreUnavailable) {
			h.log.Warn().Err(err).Msg("session lookup failed, reporting anonymous")
		} else {
			h.cookies.Clear(c)
		}
		return c.JSON(http.StatusOK, sessionResponse{})
	}

	return c.JSON(http.StatusOK, sessionResponse{User: user})
}

// UpdateProfile edits the signed-in user's display name and phone number.
//
// @Summary      Update profile
// @Tags         auth
// @Accept       json
// @Produce      json
// @Security     CookieAuth
// @Param        body  body      profileRequest  true  "Fields to change"
// @Success      200   {object}  userResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /api/auth/profile [patch]
func (h *AuthHandler) UpdateProfile(c echo.Context) error {
	id, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req profileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, err := h.authService.UpdateProfile(c.Request().Context(), id.UserID, domain.ProfileUpdate{
		FullName:    req.FullName,
		PhoneNumber: req.PhoneNumber,
	}, clientInfo(c))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, userResponse{User: user})
}
