package domain

import "time"

// Booking is created by the checkout flow; this service only reads it.
type Booking struct {
	ID              string    `json:"id"`
	Reference       string    `json:"reference"`
	UserRecordID    string    `json:"userRecordId"`
	ListingRecordID string    `json:"listingRecordId"`
	ListingName     string    `json:"listingName"`
	Guests          int       `json:"guests"`
	TotalPrice      float64   `json:"totalPrice"`
	Currency        string    `json:"currency"`
	PaymentStatus   string    `json:"paymentStatus"`
	ContactName     string    `json:"contactName"`
	ContactEmail    string    `json:"contactEmail"`
	ContactPhone    string    `json:"contactPhone,omitempty"`
	ExperienceDate  time.Time `json:"experienceDate"`
	CreatedAt       time.Time `json:"createdAt"`
}
