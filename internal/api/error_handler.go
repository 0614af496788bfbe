package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/tourhub/marketplace/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their appropriate HTTP status codes.
//   - Logs unexpected errors internally and hides their cause unless
//     exposeDetails is set (development only).
//   - Renders a consistent JSON envelope: {"error": "<message>"}.
func NewHTTPErrorHandler(log zerolog.Logger, exposeDetails bool) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, resp := resolveError(err, log, c)
		if code == http.StatusInternalServerError && exposeDetails {
			resp.Details = err.Error()
		}

		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}
		_ = c.JSON(code, resp)
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, errorResponse) {
	// Echo's own errors (bind failures, 404 from router, middleware rejections).
	var he *echo.HTTPError
	if errors.As(err, &he) {
		if he.Internal != nil {
			log.Debug().Err(he.Internal).Str("path", c.Path()).Msg("request rejected")
		}
		return he.Code, errorResponse{Error: fmt.Sprintf("%v", he.Message)}
	}

	var ve *domain.ValidationError
	switch {
	case errors.As(err, &ve):
		return http.StatusBadRequest, errorResponse{Error: ve.Message}
	case errors.Is(err, domain.ErrValidation), errors.Is(err, domain.ErrNoProfileFields):
		return http.StatusBadRequest, errorResponse{Error: rootMessage(err)}
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, errorResponse{Error: domain.ErrInvalidCredentials.Error()}
	case errors.Is(err, domain.ErrInvalidToken), errors.Is(err, domain.ErrUnauthenticated):
		return http.StatusUnauthorized, errorResponse{Error: "authentication required"}
	case errors.Is(err, domain.ErrAccountInactive):
		return http.StatusForbidden, errorResponse{Error: "account is not active"}
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, errorResponse{Error: "access forbidden"}
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, errorResponse{Error: "user not found"}
	case errors.Is(err, domain.ErrBookingNotFound):
		return http.StatusNotFound, errorResponse{Error: "booking not found"}
	case errors.Is(err, domain.ErrListingNotFound):
		return http.StatusNotFound, errorResponse{Error: "listing not found"}
	case errors.Is(err, domain.ErrBlogPostNotFound):
		return http.StatusNotFound, errorResponse{Error: "blog post not found"}
	case errors.Is(err, domain.ErrUserExists):
		return http.StatusConflict, errorResponse{Error: "an account with this email already exists"}
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Str("request_id", c.Response().Header().Get(echo.HeaderXRequestID)).
		Msg("unhandled error")

	return http.StatusInternalServerError, errorResponse{Error: "internal server error"}
}

// rootMessage returns the innermost error text, which for sentinels is the
// client-safe message.
func rootMessage(err error) string {
	for {
		next := errors.Unwrap(err)
		if next == nil {
			return err.Error()
		}
		err = next
	}
}
