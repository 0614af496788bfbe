package service

import (
	"errors"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/tourhub/marketplace/internal/core/domain"
)

const (
	// SessionTTL is fixed at issuance and never refreshed.
	SessionTTL = 7 * 24 * time.Hour

	passwordCost = 10
)

// sessionClaims is the JWT payload: a denormalised snapshot of the user.
type sessionClaims struct {
	jwt.RegisteredClaims
	RecordID      string `json:"rid"`
	UserID        string `json:"userId"`
	Email         string `json:"email"`
	FullName      string `json:"fullName"`
	UserType      string `json:"userType"`
	PhoneNumber   string `json:"phoneNumber,omitempty"`
	AccountStatus string `json:"accountStatus"`
	JoinDate      string `json:"joinDate,omitempty"`
	ProfilePhoto  string `json:"profilePhoto,omitempty"`
}

// CredentialService hashes passwords and issues/verifies session tokens.
type CredentialService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewCredentialService fails when secret is empty; callers treat that as fatal at startup.
func NewCredentialService(secret string) (*CredentialService, error) {
	if secret == "" {
		return nil, errors.New("credentials: signing secret is not configured")
	}
	return &CredentialService{secret: []byte(secret), ttl: SessionTTL, now: time.Now}, nil
}

func (s *CredentialService) HashPassword(plain string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), passwordCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword returns false for a mismatch and for a malformed hash alike.
func (s *CredentialService) VerifyPassword(plain, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}

// decoyHash is a bcrypt hash at passwordCost of a random value nobody knows.
var decoyHash = sync.OnceValue(func() string {
	hash, err := bcrypt.GenerateFromPassword([]byte(uuid.NewString()), passwordCost)
	if err != nil {
		panic(err)
	}
	return string(hash)
})

// VerifyNoAccount spends the same bcrypt work as VerifyPassword when no
// account matched, so login latency does not reveal registered emails.
// It always reports false.
func (s *CredentialService) VerifyNoAccount(plain string) bool {
	_ = bcrypt.CompareHashAndPassword([]byte(decoyHash()), []byte(plain))
	return false
}

func (s *CredentialService) IssueToken(id domain.Identity) (string, error) {
	now := s.now()
	claims := sessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   id.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
		RecordID:      id.RecordID,
		UserID:        id.UserID,
		Email:         id.Email,
		FullName:      id.FullName,
		UserType:      string(id.UserType),
		PhoneNumber:   id.PhoneNumber,
		AccountStatus: string(id.AccountStatus),
		ProfilePhoto:  id.ProfilePhoto,
	}
	if !id.JoinDate.IsZero() {
		claims.JoinDate = id.JoinDate.UTC().Format(time.RFC3339)
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(s.secret)
}

// VerifyToken returns domain.ErrInvalidToken for every failure: bad signature,
// unexpected algorithm, malformed input or expiry.
func (s *CredentialService) VerifyToken(token string) (*domain.Identity, error) {
	if token == "" {
		return nil, domain.ErrInvalidToken
	}

	claims := &sessionClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || !parsed.Valid || claims.UserID == "" {
		return nil, domain.ErrInvalidToken
	}

	id := &domain.Identity{
		RecordID:      claims.RecordID,
		UserID:        claims.UserID,
		Email:         claims.Email,
		FullName:      claims.FullName,
		UserType:      domain.UserType(claims.UserType),
		PhoneNumber:   claims.PhoneNumber,
		AccountStatus: domain.AccountStatus(claims.AccountStatus),
		ProfilePhoto:  claims.ProfilePhoto,
		TokenID:       claims.ID,
	}
	if claims.ExpiresAt != nil {
		id.ExpiresAt = claims.ExpiresAt.Time
	}
	if claims.JoinDate != "" {
		if jd, err := time.Parse(time.RFC3339, claims.JoinDate); err == nil {
			id.JoinDate = jd
		}
	}
	return id, nil
}
