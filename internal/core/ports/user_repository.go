package ports

import (
	"context"

	"github.com/tourhub/marketplace/internal/core/domain"
)

// UserRepository defines persistence for user accounts.
// Find methods return domain.ErrUserNotFound when nothing matches.
type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	// FindByUserID looks up by the public identifier, not the store's record id.
	FindByUserID(ctx context.Context, userID string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	Update(ctx context.Context, recordID string, update domain.ProfileUpdate) (*domain.User, error)
}
