package domain

import "errors"

var (
	ErrValidation         = errors.New("validation failed")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrAccountInactive    = errors.New("account is not active")
	ErrUserExists         = errors.New("user already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrNoProfileFields    = errors.New("no valid fields to update")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrUnauthenticated    = errors.New("authentication required")
	ErrForbidden          = errors.New("access forbidden")
	ErrStoreUnavailable   = errors.New("record store unavailable")

	ErrBookingNotFound  = errors.New("booking not found")
	ErrListingNotFound  = errors.New("listing not found")
	ErrBlogPostNotFound = errors.New("blog post not found")
)

// ValidationError carries a client-facing message and matches ErrValidation.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// NewValidationError returns an error that satisfies errors.Is(err, ErrValidation).
func NewValidationError(msg string) error {
	return &ValidationError{Message: msg}
}
