package voucher

import (
	"bytes"
	"testing"
	"time"

	"github.com/tourhub/marketplace/internal/core/domain"
)

func TestRenderer_Render(t *testing.T) {
	r := NewRenderer("")

	pdf, err := r.Render(&domain.Booking{
		ID:             "recBK1",
		Reference:      "TH-1001",
		ListingName:    "Café crawl in Lisbon",
		Guests:         2,
		TotalPrice:     159,
		Currency:       "EUR",
		PaymentStatus:  "Paid",
		ContactName:    "Alice B",
		ContactEmail:   "a@b.com",
		ExperienceDate: time.Date(2025, 7, 14, 0, 0, 0, 0, time.UTC),
	}, "https://tours.example.com/bookings/recBK1")
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if !bytes.HasPrefix(pdf, []byte("%PDF")) {
		t.Fatalf("expected PDF header, got %q", pdf[:min(len(pdf), 8)])
	}
}

func TestRenderer_Render_MinimalBooking(t *testing.T) {
	pdf, err := NewRenderer("TourHub").Render(&domain.Booking{ID: "recBK2"}, "https://tours.example.com/bookings/recBK2")
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if len(pdf) == 0 {
		t.Fatalf("expected output")
	}
}
