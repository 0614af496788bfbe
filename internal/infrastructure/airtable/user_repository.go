package airtable

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/tourhub/marketplace/internal/core/domain"
)

// Column names of the Users table.
const (
	colUserID        = "User ID"
	colEmail         = "Email"
	colPassword      = "Password"
	colFullName      = "Full Name"
	colUserType      = "User Type"
	colPhoneNumber   = "Phone Number"
	colAccountStatus = "Account Status"
	colJoinDate      = "Join Date"
	colProfilePhoto  = "Profile Photo"
)

// userRecord is the typed view of a Users row. Unknown columns are ignored.
type userRecord struct {
	UserID        string      `json:"User ID"`
	Email         string      `json:"Email"`
	Password      string      `json:"Password"`
	FullName      string      `json:"Full Name"`
	UserType      string      `json:"User Type"`
	PhoneNumber   string      `json:"Phone Number"`
	AccountStatus string      `json:"Account Status"`
	JoinDate      string      `json:"Join Date"`
	ProfilePhoto  attachments `json:"Profile Photo"`
}

func (r userRecord) toDomain(recordID string) *domain.User {
	userType, ok := domain.ParseUserType(r.UserType)
	if !ok {
		userType = domain.UserType(r.UserType)
	}
	return &domain.User{
		RecordID:      recordID,
		UserID:        r.UserID,
		Email:         r.Email,
		PasswordHash:  r.Password,
		FullName:      r.FullName,
		UserType:      userType,
		PhoneNumber:   r.PhoneNumber,
		AccountStatus: domain.AccountStatus(r.AccountStatus),
		JoinDate:      parseDate(r.JoinDate),
		ProfilePhoto:  r.ProfilePhoto.first(),
	}
}

// UserRepository implements ports.UserRepository on the Users table.
type UserRepository struct {
	client *Client
	table  string
	log    zerolog.Logger
}

func NewUserRepository(client *Client, table string, log zerolog.Logger) *UserRepository {
	return &UserRepository{client: client, table: table, log: log}
}

// FindByEmail matches the email exactly. When several rows share it the first
// one wins and the duplicate is logged.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	records, err := r.client.List(ctx, r.table, ListParams{Formula: Eq(colEmail, email), MaxRecords: 2})
	if err != nil {
		return nil, fmt.Errorf("find user by email: %w", err)
	}
	if len(records) == 0 {
		return nil, domain.ErrUserNotFound
	}
	if len(records) > 1 {
		r.log.Warn().
			Str("record_id", records[0].ID).
			Str("duplicate_record_id", records[1].ID).
			Msg("multiple user records share an email, using the first")
	}
	return decodeUser(records[0])
}

func (r *UserRepository) FindByUserID(ctx context.Context, userID string) (*domain.User, error) {
	records, err := r.client.List(ctx, r.table, ListParams{Formula: Eq(colUserID, userID), MaxRecords: 1})
	if err != nil {
		return nil, fmt.Errorf("find user by id: %w", err)
	}
	if len(records) == 0 {
		return nil, domain.ErrUserNotFound
	}
	return decodeUser(records[0])
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	fields := map[string]any{
		colUserID:        user.UserID,
		colEmail:         user.Email,
		colPassword:      user.PasswordHash,
		colFullName:      user.FullName,
		colUserType:      string(user.UserType),
		colAccountStatus: string(user.AccountStatus),
		colJoinDate:      user.JoinDate.UTC().Format(dateLayout),
	}
	if user.PhoneNumber != "" {
		fields[colPhoneNumber] = user.PhoneNumber
	}

	rec, err := r.client.Create(ctx, r.table, fields)
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return decodeUser(*rec)
}

// Update writes only the profile whitelist. Any other column is left as is.
func (r *UserRepository) Update(ctx context.Context, recordID string, update domain.ProfileUpdate) (*domain.User, error) {
	fields := map[string]any{}
	if update.FullName != nil {
		fields[colFullName] = *update.FullName
	}
	if update.PhoneNumber != nil {
		fields[colPhoneNumber] = *update.PhoneNumber
	}
	if len(fields) == 0 {
		return nil, domain.ErrNoProfileFields
	}

	rec, err := r.client.Update(ctx, r.table, recordID, fields)
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("update user: %w", err)
	}
	return decodeUser(*rec)
}

func decodeUser(rec Record) (*domain.User, error) {
	var r userRecord
	if err := decodeFields(rec, &r); err != nil {
		return nil, err
	}
	return r.toDomain(rec.ID), nil
}
