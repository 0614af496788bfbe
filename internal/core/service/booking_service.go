package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/tourhub/marketplace/internal/core/domain"
	"github.com/tourhub/marketplace/internal/core/ports"
	"github.com/tourhub/marketplace/internal/pkg/metrics"
)

// BookingService serves the signed-in user's own bookings.
type BookingService struct {
	repo     ports.BookingRepository
	renderer ports.VoucherRenderer
	baseURL  string
	log      zerolog.Logger
}

func NewBookingService(repo ports.BookingRepository, renderer ports.VoucherRenderer, publicBaseURL string, log zerolog.Logger) *BookingService {
	return &BookingService{
		repo:     repo,
		renderer: renderer,
		baseURL:  strings.TrimRight(publicBaseURL, "/"),
		log:      log,
	}
}

// GetBooking returns the booking when caller owns it. A booking owned by
// someone else is reported as not found.
func (s *BookingService) GetBooking(ctx context.Context, id string, caller *domain.Identity) (*domain.Booking, error) {
	if caller == nil {
		return nil, domain.ErrUnauthenticated
	}
	booking, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrBookingNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("find booking: %w", err)
	}
	if booking.UserRecordID != caller.RecordID {
		s.log.Warn().
			Str("booking_id", id).
			Str("user_id", caller.UserID).
			Msg("booking requested by non-owner")
		return nil, domain.ErrBookingNotFound
	}
	return booking, nil
}

// Voucher renders the printable voucher for a booking the caller owns.
func (s *BookingService) Voucher(ctx context.Context, id string, caller *domain.Identity) ([]byte, error) {
	booking, err := s.GetBooking(ctx, id, caller)
	if err != nil {
		return nil, err
	}
	pdf, err := s.renderer.Render(booking, s.bookingURL(booking.ID))
	if err != nil {
		return nil, fmt.Errorf("render voucher: %w", err)
	}
	metrics.VouchersGeneratedTotal.Inc()
	return pdf, nil
}

func (s *BookingService) bookingURL(id string) string {
	return s.baseURL + "/bookings/" + id
}
