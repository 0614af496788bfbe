package airtable

import (
	"context"
	"errors"
	"fmt"

	"github.com/tourhub/marketplace/internal/core/domain"
)

type bookingRecord struct {
	Reference      string     `json:"Reference"`
	User           linked     `json:"User"`
	Listing        linked     `json:"Listing"`
	ListingName    lookupText `json:"Listing Name"`
	Guests         int        `json:"Guests"`
	TotalPrice     float64    `json:"Total Price"`
	Currency       string     `json:"Currency"`
	PaymentStatus  string     `json:"Payment Status"`
	ContactName    string     `json:"Contact Name"`
	ContactEmail   string     `json:"Contact Email"`
	ContactPhone   string     `json:"Contact Phone"`
	ExperienceDate string     `json:"Experience Date"`
}

// BookingRepository reads the Bookings table.
type BookingRepository struct {
	client *Client
	table  string
}

func NewBookingRepository(client *Client, table string) *BookingRepository {
	return &BookingRepository{client: client, table: table}
}

func (r *BookingRepository) FindByID(ctx context.Context, id string) (*domain.Booking, error) {
	rec, err := r.client.Get(ctx, r.table, id)
	if errors.Is(err, ErrRecordNotFound) {
		return nil, domain.ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get booking: %w", err)
	}

	var b bookingRecord
	if err := decodeFields(*rec, &b); err != nil {
		return nil, err
	}
	currency := b.Currency
	if currency == "" {
		currency = "USD"
	}
	return &domain.Booking{
		ID:              rec.ID,
		Reference:       b.Reference,
		UserRecordID:    b.User.first(),
		ListingRecordID: b.Listing.first(),
		ListingName:     string(b.ListingName),
		Guests:          b.Guests,
		TotalPrice:      b.TotalPrice,
		Currency:        currency,
		PaymentStatus:   b.PaymentStatus,
		ContactName:     b.ContactName,
		ContactEmail:    b.ContactEmail,
		ContactPhone:    b.ContactPhone,
		ExperienceDate:  parseDate(b.ExperienceDate),
		CreatedAt:       rec.CreatedTime,
	}, nil
}
