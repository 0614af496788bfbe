package service

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/rs/zerolog"

	"github.com/tourhub/marketplace/internal/core/domain"
	"github.com/tourhub/marketplace/internal/core/ports"
	"github.com/tourhub/marketplace/internal/pkg/metrics"
)

// DefaultContentTTL is used when the configured TTL is not positive.
const DefaultContentTTL = 5 * time.Minute

// ContentService memoizes record-store content for a fixed TTL. A nil cache
// disables memoization; cache errors fall through to the store.
type ContentService struct {
	repo  ports.ContentRepository
	cache ports.Cache
	ttl   time.Duration
	log   zerolog.Logger
}

func NewContentService(repo ports.ContentRepository, cache ports.Cache, ttl time.Duration, log zerolog.Logger) *ContentService {
	if ttl <= 0 {
		ttl = DefaultContentTTL
	}
	return &ContentService{repo: repo, cache: cache, ttl: ttl, log: log}
}

func (s *ContentService) ListListings(ctx context.Context, filter domain.ListingFilter) ([]domain.Listing, error) {
	return readThrough(ctx, s, listingsKey(filter), func() ([]domain.Listing, error) {
		return s.repo.ListListings(ctx, filter)
	})
}

// listingsKey escapes the caller-supplied destination so that no query string
// can produce the key of a different filter.
func listingsKey(filter domain.ListingFilter) string {
	return fmt.Sprintf("content:listings:%t:%s", filter.FeaturedOnly, url.QueryEscape(filter.Destination))
}

func (s *ContentService) GetListing(ctx context.Context, slug string) (*domain.Listing, error) {
	return readThrough(ctx, s, "content:listing:"+url.QueryEscape(slug), func() (*domain.Listing, error) {
		return s.repo.FindListingBySlug(ctx, slug)
	})
}

// ProviderListings is read straight from the store so providers always see
// their own edits.
func (s *ContentService) ProviderListings(ctx context.Context, providerRecordID string) ([]domain.Listing, error) {
	return s.repo.ListListingsByProvider(ctx, providerRecordID)
}

func (s *ContentService) ListDestinations(ctx context.Context) ([]domain.Destination, error) {
	return readThrough(ctx, s, "content:destinations", func() ([]domain.Destination, error) {
		return s.repo.ListDestinations(ctx)
	})
}

func (s *ContentService) ListBlogPosts(ctx context.Context) ([]domain.BlogPost, error) {
	return readThrough(ctx, s, "content:blog", func() ([]domain.BlogPost, error) {
		return s.repo.ListBlogPosts(ctx)
	})
}

func (s *ContentService) GetBlogPost(ctx context.Context, slug string) (*domain.BlogPost, error) {
	return readThrough(ctx, s, "content:blog:"+url.QueryEscape(slug), func() (*domain.BlogPost, error) {
		return s.repo.FindBlogPostBySlug(ctx, slug)
	})
}

// readThrough serves key from the cache, or calls load and stores its result.
// Errors from load, including not-found, are never cached.
func readThrough[T any](ctx context.Context, s *ContentService, key string, load func() (T, error)) (T, error) {
	if s.cache != nil {
		var cached T
		hit, err := s.cache.Get(ctx, key, &cached)
		switch {
		case err != nil:
			metrics.ContentCacheTotal.WithLabelValues("error").Inc()
			s.log.Warn().Err(err).Str("key", key).Msg("content cache read failed")
		case hit:
			metrics.ContentCacheTotal.WithLabelValues("hit").Inc()
			return cached, nil
		default:
			metrics.ContentCacheTotal.WithLabelValues("miss").Inc()
		}
	}

	value, err := load()
	if err != nil {
		return value, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, value, s.ttl); err != nil {
			s.log.Warn().Err(err).Str("key", key).Msg("content cache write failed")
		}
	}
	return value, nil
}
