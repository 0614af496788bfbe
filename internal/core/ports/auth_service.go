package ports

import (
	"context"

	"github.com/tourhub/marketplace/internal/core/domain"
)

// RegisterInput carries the registration form after transport validation.
type RegisterInput struct {
	Email       string
	Password    string
	FullName    string
	UserType    string
	PhoneNumber string
}

// ClientInfo describes the caller for the audit trail.
type ClientInfo struct {
	IP        string
	UserAgent string
}

// AuthService implements the session boundary: register, login, logout,
// session lookup and profile updates. Tokens are opaque strings here.
type AuthService interface {
	Register(ctx context.Context, in RegisterInput, client ClientInfo) (*domain.User, string, error)
	Login(ctx context.Context, email, password string, client ClientInfo) (*domain.User, string, error)
	Logout(ctx context.Context, token string, client ClientInfo)
	Session(ctx context.Context, token string) (*domain.User, error)
	VerifySession(ctx context.Context, token string) (*domain.Identity, error)
	UpdateProfile(ctx context.Context, userID string, update domain.ProfileUpdate, client ClientInfo) (*domain.User, error)
}

// TokenRevoker records logged-out token ids until they would have expired anyway.
type TokenRevoker interface {
	Revoke(ctx context.Context, identity *domain.Identity) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}
