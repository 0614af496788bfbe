package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/tourhub/marketplace/internal/core/domain"
	"github.com/tourhub/marketplace/internal/core/ports"
	"github.com/tourhub/marketplace/internal/pkg/metrics"
)

var errTokenRevoked = fmt.Errorf("token revoked: %w", domain.ErrInvalidToken)

// AuthService implements registration, login, logout and session resolution.
// The revoker and audit dependencies are optional and may be nil.
type AuthService struct {
	users   ports.UserRepository
	creds   *CredentialService
	revoker ports.TokenRevoker
	audit   ports.AuditRepository
	log     zerolog.Logger
	now     func() time.Time
}

func NewAuthService(
	users ports.UserRepository,
	creds *CredentialService,
	revoker ports.TokenRevoker,
	audit ports.AuditRepository,
	log zerolog.Logger,
) *AuthService {
	return &AuthService{
		users:   users,
		creds:   creds,
		revoker: revoker,
		audit:   audit,
		log:     log,
		now:     time.Now,
	}
}

// Register creates an Active account and returns it with a fresh session token.
//
// The email existence check and the create are two separate store calls, so two
// concurrent registrations for one address can both succeed.
func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput, client ports.ClientInfo) (*domain.User, string, error) {
	email := strings.TrimSpace(in.Email)
	fullName := strings.TrimSpace(in.FullName)
	if email == "" || in.Password == "" || fullName == "" || strings.TrimSpace(in.UserType) == "" {
		metrics.AuthAttemptsTotal.WithLabelValues("register", "invalid").Inc()
		return nil, "", domain.NewValidationError("email, password, fullName and userType are required")
	}
	userType, ok := domain.ParseUserType(in.UserType)
	if !ok {
		metrics.AuthAttemptsTotal.WithLabelValues("register", "invalid").Inc()
		return nil, "", domain.NewValidationError(`userType must be "Traveler" or "Service Provider"`)
	}

	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		metrics.AuthAttemptsTotal.WithLabelValues("register", "conflict").Inc()
		return nil, "", domain.ErrUserExists
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		metrics.AuthAttemptsTotal.WithLabelValues("register", "error").Inc()
		return nil, "", fmt.Errorf("check existing user: %w", err)
	}

	hash, err := s.creds.HashPassword(in.Password)
	if err != nil {
		metrics.AuthAttemptsTotal.WithLabelValues("register", "error").Inc()
		return nil, "", fmt.Errorf("hash password: %w", err)
	}

	now := s.now().UTC()
	created, err := s.users.Create(ctx, &domain.User{
		UserID:        newUserID(),
		Email:         email,
		PasswordHash:  hash,
		FullName:      fullName,
		UserType:      userType,
		PhoneNumber:   strings.TrimSpace(in.PhoneNumber),
		AccountStatus: domain.AccountActive,
		JoinDate:      time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		metrics.AuthAttemptsTotal.WithLabelValues("register", "error").Inc()
		return nil, "", fmt.Errorf("create user: %w", err)
	}

	token, err := s.creds.IssueToken(domain.IdentityOf(created))
	if err != nil {
		metrics.AuthAttemptsTotal.WithLabelValues("register", "error").Inc()
		return nil, "", fmt.Errorf("issue token: %w", err)
	}

	metrics.AuthAttemptsTotal.WithLabelValues("register", "success").Inc()
	s.record(ctx, ports.AuditRegister, created.UserID, created.Email, client, "")
	s.log.Info().Str("user_id", created.UserID).Str("user_type", string(created.UserType)).Msg("user registered")

	return created, token, nil
}

// Login verifies credentials. Unknown email and wrong password are
// indistinguishable; a correct password on a non-Active account yields
// domain.ErrAccountInactive.
func (s *AuthService) Login(ctx context.Context, email, password string, client ports.ClientInfo) (*domain.User, string, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		metrics.AuthAttemptsTotal.WithLabelValues("login", "invalid").Inc()
		return nil, "", domain.NewValidationError("email and password are required")
	}

	user, err := s.users.FindByEmail(ctx, email)
	if errors.Is(err, domain.ErrUserNotFound) {
		s.creds.VerifyNoAccount(password)
		metrics.AuthAttemptsTotal.WithLabelValues("login", "invalid").Inc()
		s.record(ctx, ports.AuditLoginFailed, "", email, client, "unknown_email")
		return nil, "", domain.ErrInvalidCredentials
	}
	if err != nil {
		metrics.AuthAttemptsTotal.WithLabelValues("login", "error").Inc()
		return nil, "", fmt.Errorf("find user: %w", err)
	}

	if !s.creds.VerifyPassword(password, user.PasswordHash) {
		metrics.AuthAttemptsTotal.WithLabelValues("login", "invalid").Inc()
		s.record(ctx, ports.AuditLoginFailed, user.UserID, email, client, "bad_password")
		return nil, "", domain.ErrInvalidCredentials
	}

	if !user.AccountStatus.IsActive() {
		metrics.AuthAttemptsTotal.WithLabelValues("login", "inactive").Inc()
		s.record(ctx, ports.AuditLoginFailed, user.UserID, email, client, "inactive")
		return nil, "", domain.ErrAccountInactive
	}

	token, err := s.creds.IssueToken(domain.IdentityOf(user))
	if err != nil {
		metrics.AuthAttemptsTotal.WithLabelValues("login", "error").Inc()
		return nil, "", fmt.Errorf("issue token: %w", err)
	}

	metrics.AuthAttemptsTotal.WithLabelValues("login", "success").Inc()
	s.record(ctx, ports.AuditLogin, user.UserID, user.Email, client, "")
	return user, token, nil
}

// Logout deny-lists the token when a revoker is configured. It never fails:
// the caller clears the cookie regardless.
func (s *AuthService) Logout(ctx context.Context, token string, client ports.ClientInfo) {
	if token == "" {
		return
	}
	id, err := s.creds.VerifyToken(token)
	if err != nil {
		return
	}
	if s.revoker != nil {
		if err := s.revoker.Revoke(ctx, id); err != nil {
			s.log.Warn().Err(err).Str("user_id", id.UserID).Msg("failed to revoke token")
		}
	}
	s.record(ctx, ports.AuditLogout, id.UserID, id.Email, client, "")
}

// verifyToken checks signature, expiry and the deny-list. It does not touch
// the user record.
func (s *AuthService) verifyToken(ctx context.Context, token string) (*domain.Identity, error) {
	id, err := s.creds.VerifyToken(token)
	if err != nil {
		return nil, err
	}
	if s.revoker != nil && id.TokenID != "" {
		revoked, err := s.revoker.IsRevoked(ctx, id.TokenID)
		if err != nil {
			s.log.Warn().Err(err).Str("user_id", id.UserID).Msg("revocation check failed, accepting token")
		} else if revoked {
			return nil, errTokenRevoked
		}
	}
	return id, nil
}

// resolve verifies token and loads the live user behind it. Status is re-read
// from the store, never trusted from the token snapshot.
func (s *AuthService) resolve(ctx context.Context, token string) (*domain.Identity, *domain.User, error) {
	claims, err := s.verifyToken(ctx, token)
	if err != nil {
		if errors.Is(err, errTokenRevoked) {
			metrics.SessionsResolvedTotal.WithLabelValues("revoked").Inc()
		} else {
			metrics.SessionsResolvedTotal.WithLabelValues("invalid_token").Inc()
		}
		return nil, nil, err
	}

	user, err := s.users.FindByUserID(ctx, claims.UserID)
	if errors.Is(err, domain.ErrUserNotFound) {
		metrics.SessionsResolvedTotal.WithLabelValues("user_not_found").Inc()
		return nil, nil, err
	}
	if err != nil {
		metrics.SessionsResolvedTotal.WithLabelValues("store_error").Inc()
		return nil, nil, fmt.Errorf("load session user: %w", err)
	}

	if !user.AccountStatus.IsActive() {
		metrics.SessionsResolvedTotal.WithLabelValues("inactive").Inc()
		return nil, nil, domain.ErrAccountInactive
	}

	metrics.SessionsResolvedTotal.WithLabelValues("authenticated").Inc()
	return claims, user, nil
}

// Session returns the live user behind token.
func (s *AuthService) Session(ctx context.Context, token string) (*domain.User, error) {
	_, user, err := s.resolve(ctx, token)
	if err != nil {
		return nil, err
	}
	return user, nil
}

// VerifySession is Session for protected routes: the returned identity is
// built from the live user record, carrying over only the token id and expiry.
func (s *AuthService) VerifySession(ctx context.Context, token string) (*domain.Identity, error) {
	claims, user, err := s.resolve(ctx, token)
	if err != nil {
		return nil, err
	}
	id := domain.IdentityOf(user)
	id.TokenID = claims.TokenID
	id.ExpiresAt = claims.ExpiresAt
	return &id, nil
}

// UpdateProfile applies the whitelisted fields to the live record of userID.
func (s *AuthService) UpdateProfile(ctx context.Context, userID string, update domain.ProfileUpdate, client ports.ClientInfo) (*domain.User, error) {
	if update.IsEmpty() {
		return nil, domain.ErrNoProfileFields
	}
	if update.FullName != nil {
		name := strings.TrimSpace(*update.FullName)
		if name == "" {
			return nil, domain.NewValidationError("fullName cannot be empty")
		}
		update.FullName = &name
	}
	if update.PhoneNumber != nil {
		phone := strings.TrimSpace(*update.PhoneNumber)
		update.PhoneNumber = &phone
	}

	user, err := s.users.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("load user: %w", err)
	}
	if !user.AccountStatus.IsActive() {
		return nil, domain.ErrAccountInactive
	}

	updated, err := s.users.Update(ctx, user.RecordID, update)
	if err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}

	s.record(ctx, ports.AuditProfileUpdate, updated.UserID, updated.Email, client, "")
	return updated, nil
}

func (s *AuthService) record(ctx context.Context, typ, userID, email string, client ports.ClientInfo, reason string) {
	if s.audit == nil {
		return
	}
	event := &ports.AuditEvent{
		Type:      typ,
		UserID:    userID,
		Email:     email,
		IP:        client.IP,
		UserAgent: client.UserAgent,
		Reason:    reason,
		At:        s.now().UTC(),
	}
	if err := s.audit.InsertEvent(ctx, event); err != nil {
		s.log.Warn().Err(err).Str("event", typ).Msg("failed to insert audit event")
	}
}

// newUserID mints the public identifier stored in the "User ID" column.
func newUserID() string {
	return "usr_" + strings.ReplaceAll(uuid.NewString(), "-", "")
}
