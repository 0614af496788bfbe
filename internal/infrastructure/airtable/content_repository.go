package airtable

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/tourhub/marketplace/internal/core/domain"
)

const (
	colPublished        = "Published"
	colSlug             = "Slug"
	colFeatured         = "Featured"
	colDestinationSlug  = "Destination Slug"
	colProviderRecordID = "Provider Record ID"
)

type listingRecord struct {
	Slug            string      `json:"Slug"`
	Title           string      `json:"Title"`
	Summary         string      `json:"Summary"`
	Description     string      `json:"Description"`
	DestinationSlug lookupText  `json:"Destination Slug"`
	Price           float64     `json:"Price"`
	Currency        string      `json:"Currency"`
	DurationHours   float64     `json:"Duration Hours"`
	MaxGuests       int         `json:"Max Guests"`
	Rating          float64     `json:"Rating"`
	Images          attachments `json:"Images"`
	Provider        linked      `json:"Provider"`
	Featured        bool        `json:"Featured"`
}

func (r listingRecord) toDomain(id string) domain.Listing {
	images := []string(r.Images)
	if images == nil {
		images = []string{}
	}
	return domain.Listing{
		ID:               id,
		Slug:             r.Slug,
		Title:            r.Title,
		Summary:          r.Summary,
		Description:      r.Description,
		Destination:      string(r.DestinationSlug),
		Price:            r.Price,
		Currency:         r.Currency,
		DurationHours:    r.DurationHours,
		MaxGuests:        r.MaxGuests,
		Rating:           r.Rating,
		Images:           images,
		ProviderRecordID: r.Provider.first(),
		Featured:         r.Featured,
	}
}

type destinationRecord struct {
	Slug        string      `json:"Slug"`
	Name        string      `json:"Name"`
	Country     string      `json:"Country"`
	Description string      `json:"Description"`
	HeroImage   attachments `json:"Hero Image"`
}

type blogRecord struct {
	Slug        string      `json:"Slug"`
	Title       string      `json:"Title"`
	Excerpt     string      `json:"Excerpt"`
	Body        string      `json:"Body"`
	Author      lookupText  `json:"Author"`
	CoverImage  attachments `json:"Cover Image"`
	PublishedAt string      `json:"Published At"`
}

func (r blogRecord) toDomain(id string) domain.BlogPost {
	return domain.BlogPost{
		ID:          id,
		Slug:        r.Slug,
		Title:       r.Title,
		Excerpt:     r.Excerpt,
		Body:        r.Body,
		Author:      string(r.Author),
		CoverImage:  r.CoverImage.first(),
		PublishedAt: parseDate(r.PublishedAt),
	}
}

// ContentTables names the tables ContentRepository reads.
type ContentTables struct {
	Listings     string
	Destinations string
	Blog         string
}

// ContentRepository reads published marketing content.
type ContentRepository struct {
	client *Client
	tables ContentTables
}

func NewContentRepository(client *Client, tables ContentTables) *ContentRepository {
	return &ContentRepository{client: client, tables: tables}
}

func (r *ContentRepository) ListListings(ctx context.Context, filter domain.ListingFilter) ([]domain.Listing, error) {
	clauses := []string{IsTrue(colPublished)}
	if filter.Destination != "" {
		clauses = append(clauses, Eq(colDestinationSlug, filter.Destination))
	}
	if filter.FeaturedOnly {
		clauses = append(clauses, IsTrue(colFeatured))
	}
	return r.listings(ctx, ListParams{
		Formula: And(clauses...),
		Sort:    []Sort{{Field: colFeatured, Direction: "desc"}, {Field: "Title"}},
	})
}

func (r *ContentRepository) FindListingBySlug(ctx context.Context, slug string) (*domain.Listing, error) {
	listings, err := r.listings(ctx, ListParams{
		Formula:    And(IsTrue(colPublished), Eq(colSlug, slug)),
		MaxRecords: 1,
	})
	if err != nil {
		return nil, err
	}
	if len(listings) == 0 {
		return nil, domain.ErrListingNotFound
	}
	return &listings[0], nil
}

// ListListingsByProvider includes unpublished drafts: providers see all of
// their own listings.
func (r *ContentRepository) ListListingsByProvider(ctx context.Context, providerRecordID string) ([]domain.Listing, error) {
	return r.listings(ctx, ListParams{
		Formula: RecordIDIn(colProviderRecordID, providerRecordID),
		Sort:    []Sort{{Field: "Title"}},
	})
}

func (r *ContentRepository) ListDestinations(ctx context.Context) ([]domain.Destination, error) {
	records, err := r.client.List(ctx, r.tables.Destinations, ListParams{
		Formula: IsTrue(colPublished),
		Sort:    []Sort{{Field: "Name"}},
	})
	if err != nil {
		return nil, fmt.Errorf("list destinations: %w", err)
	}
	out := make([]domain.Destination, 0, len(records))
	for _, rec := range records {
		var d destinationRecord
		if err := decodeFields(rec, &d); err != nil {
			return nil, err
		}
		out = append(out, domain.Destination{
			ID:          rec.ID,
			Slug:        d.Slug,
			Name:        d.Name,
			Country:     d.Country,
			Description: d.Description,
			HeroImage:   d.HeroImage.first(),
		})
	}
	return out, nil
}

// ListBlogPosts returns summaries, newest first. Bodies are omitted.
func (r *ContentRepository) ListBlogPosts(ctx context.Context) ([]domain.BlogPost, error) {
	records, err := r.client.List(ctx, r.tables.Blog, ListParams{
		Formula: IsTrue(colPublished),
		Sort:    []Sort{{Field: "Published At", Direction: "desc"}},
		Fields:  []string{"Slug", "Title", "Excerpt", "Author", "Cover Image", "Published At"},
	})
	if err != nil {
		return nil, fmt.Errorf("list blog posts: %w", err)
	}
	out := make([]domain.BlogPost, 0, len(records))
	for _, rec := range records {
		var b blogRecord
		if err := decodeFields(rec, &b); err != nil {
			return nil, err
		}
		out = append(out, b.toDomain(rec.ID))
	}
	return out, nil
}

func (r *ContentRepository) FindBlogPostBySlug(ctx context.Context, slug string) (*domain.BlogPost, error) {
	records, err := r.client.List(ctx, r.tables.Blog, ListParams{
		Formula:    And(IsTrue(colPublished), Eq(colSlug, slug)),
		MaxRecords: 1,
	})
	if err != nil {
		return nil, fmt.Errorf("find blog post: %w", err)
	}
	if len(records) == 0 {
		return nil, domain.ErrBlogPostNotFound
	}
	var b blogRecord
	if err := decodeFields(records[0], &b); err != nil {
		return nil, err
	}
	post := b.toDomain(records[0].ID)
	return &post, nil
}

func (r *ContentRepository) listings(ctx context.Context, p ListParams) ([]domain.Listing, error) {
	records, err := r.client.List(ctx, r.tables.Listings, p)
	if err != nil {
		return nil, fmt.Errorf("list listings: %w", err)
	}
	out := make([]domain.Listing, 0, len(records))
	for _, rec := range records {
		var l listingRecord
		if err := decodeFields(rec, &l); err != nil {
			return nil, err
		}
		out = append(out, l.toDomain(rec.ID))
	}
	return out, nil
}

func decodeFields(rec Record, dst any) error {
	if len(rec.Fields) == 0 {
		return nil
	}
	if err := json.Unmarshal(rec.Fields, dst); err != nil {
		return fmt.Errorf("%w: decode record %s: %w", domain.ErrStoreUnavailable, rec.ID, err)
	}
	return nil
}
