package ports

import (
	"context"

	"github.com/tourhub/marketplace/internal/core/domain"
)

// BookingRepository reads bookings created by the checkout flow.
type BookingRepository interface {
	FindByID(ctx context.Context, id string) (*domain.Booking, error)
}

// VoucherRenderer turns a booking into a printable document.
type VoucherRenderer interface {
	Render(booking *domain.Booking, bookingURL string) ([]byte, error)
}

// BookingService exposes a caller's own bookings.
type BookingService interface {
	GetBooking(ctx context.Context, id string, caller *domain.Identity) (*domain.Booking, error)
	Voucher(ctx context.Context, id string, caller *domain.Identity) ([]byte, error)
}
