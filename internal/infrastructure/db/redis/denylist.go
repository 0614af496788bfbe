package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/tourhub/marketplace/internal/core/domain"
)

// TokenDenyList records revoked session token ids until they would have
// expired anyway.
// Key format: <prefix>revoked:<jti>
type TokenDenyList struct {
	client *redis.Client
	prefix string
	now    func() time.Time
}

// NewTokenDenyList creates a TokenDenyList wrapping the given Redis client.
func NewTokenDenyList(client *redis.Client, prefix string) *TokenDenyList {
	return &TokenDenyList{client: client, prefix: prefix, now: time.Now}
}

// Revoke deny-lists the token for the rest of its lifetime. Tokens that have
// already expired, or carry no id, are skipped.
func (d *TokenDenyList) Revoke(ctx context.Context, id *domain.Identity) error {
	if id == nil || id.TokenID == "" {
		return nil
	}
	ttl := id.ExpiresAt.Sub(d.now())
	if ttl <= 0 {
		return nil
	}
	if err := d.client.Set(ctx, d.key(id.TokenID), id.UserID, ttl).Err(); err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}
	return nil
}

// IsRevoked reports whether the token id has been deny-listed.
func (d *TokenDenyList) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	n, err := d.client.Exists(ctx, d.key(tokenID)).Result()
	if err != nil {
		return false, fmt.Errorf("revocation check: %w", err)
	}
	return n > 0, nil
}

func (d *TokenDenyList) key(tokenID string) string {
	return d.prefix + "revoked:" + tokenID
}
