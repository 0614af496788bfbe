package handler

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/tourhub/marketplace/internal/core/domain"
	"github.com/tourhub/marketplace/internal/core/ports"
)

// BookingHandler serves the signed-in user's bookings.
type BookingHandler struct {
	service ports.BookingService
}

func NewBookingHandler(service ports.BookingService) *BookingHandler {
	return &BookingHandler{service: service}
}

type bookingResponse struct {
	Booking *domain.Booking `json:"booking"`
}

// Get handles GET /api/bookings/:id.
//
// @Summary      Get one of my bookings
// @Tags         bookings
// @Produce      json
// @Security     CookieAuth
// @Param        id   path      string  true  "Booking record id"
// @Success      200  {object}  bookingResponse
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Failure      500  {object}  errorResponse
// @Router       /api/bookings/{id} [get]
func (h *BookingHandler) Get(c echo.Context) error {
	id, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	booking, err := h.service.GetBooking(c.Request().Context(), c.Param("id"), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, bookingResponse{Booking: booking})
}

// Voucher handles GET /api/bookings/:id/voucher.
//
// @Summary      Download a booking voucher
// @Tags         bookings
// @Produce      application/pdf
// @Security     CookieAuth
// @Param        id   path      string  true  "Booking record id"
// @Success      200  {file}    binary
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Failure      500  {object}  errorResponse
// @Router       /api/bookings/{id}/voucher [get]
func (h *BookingHandler) Voucher(c echo.Context) error {
	id, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	bookingID := c.Param("id")
	pdf, err := h.service.Voucher(c.Request().Context(), bookingID, id)
	if err != nil {
		return err
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="voucher-%s.pdf"`, bookingID))
	c.Response().Header().Set(echo.HeaderCacheControl, "private, no-store")
	return c.Blob(http.StatusOK, "application/pdf", pdf)
}
