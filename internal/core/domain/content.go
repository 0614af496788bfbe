package domain

import "time"

// Listing is a bookable tour or experience.
type Listing struct {
	ID               string   `json:"id"`
	Slug             string   `json:"slug"`
	Title            string   `json:"title"`
	Summary          string   `json:"summary"`
	Description      string   `json:"description"`
	Destination      string   `json:"destination"`
	Price            float64  `json:"price"`
	Currency         string   `json:"currency"`
	DurationHours    float64  `json:"durationHours"`
	MaxGuests        int      `json:"maxGuests"`
	Rating           float64  `json:"rating,omitempty"`
	Images           []string `json:"images"`
	ProviderRecordID string   `json:"providerId,omitempty"`
	Featured         bool     `json:"featured"`
}

// ListingFilter narrows ListListings; zero value means all published listings.
type ListingFilter struct {
	Destination  string
	FeaturedOnly bool
}

type Destination struct {
	ID          string `json:"id"`
	Slug        string `json:"slug"`
	Name        string `json:"name"`
	Country     string `json:"country"`
	Description string `json:"description"`
	HeroImage   string `json:"heroImage,omitempty"`
}

type BlogPost struct {
	ID          string    `json:"id"`
	Slug        string    `json:"slug"`
	Title       string    `json:"title"`
	Excerpt     string    `json:"excerpt"`
	Body        string    `json:"body,omitempty"`
	Author      string    `json:"author"`
	CoverImage  string    `json:"coverImage,omitempty"`
	PublishedAt time.Time `json:"publishedAt"`
}
