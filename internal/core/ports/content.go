package ports

import (
	"context"
	"time"

	"github.com/tourhub/marketplace/internal/core/domain"
)

// ContentRepository reads published marketing content from the record store.
type ContentRepository interface {
	ListListings(ctx context.Context, filter domain.ListingFilter) ([]domain.Listing, error)
	FindListingBySlug(ctx context.Context, slug string) (*domain.Listing, error)
	ListListingsByProvider(ctx context.Context, providerRecordID string) ([]domain.Listing, error)
	ListDestinations(ctx context.Context) ([]domain.Destination, error)
	ListBlogPosts(ctx context.Context) ([]domain.BlogPost, error)
	FindBlogPostBySlug(ctx context.Context, slug string) (*domain.BlogPost, error)
}

// Cache is a TTL key/value store for JSON-serialisable values.
// Get reports false on a miss.
type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
}

// ContentService serves content with time-based memoization.
type ContentService interface {
	ListListings(ctx context.Context, filter domain.ListingFilter) ([]domain.Listing, error)
	GetListing(ctx context.Context, slug string) (*domain.Listing, error)
	ProviderListings(ctx context.Context, providerRecordID string) ([]domain.Listing, error)
	ListDestinations(ctx context.Context) ([]domain.Destination, error)
	ListBlogPosts(ctx context.Context) ([]domain.BlogPost, error)
	GetBlogPost(ctx context.Context, slug string) (*domain.BlogPost, error)
}
