package domain

import (
	"strings"
	"time"
)

// UserType is the role tag chosen at registration.
type UserType string

const (
	UserTypeTraveler        UserType = "Traveler"
	UserTypeServiceProvider UserType = "Service Provider"
)

// ParseUserType accepts the canonical spelling, ignoring case and surrounding space.
func ParseUserType(s string) (UserType, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "traveler":
		return UserTypeTraveler, true
	case "service provider":
		return UserTypeServiceProvider, true
	}
	return "", false
}

// AccountStatus is managed outside the application; only Active may sign in.
type AccountStatus string

const (
	AccountActive    AccountStatus = "Active"
	AccountInactive  AccountStatus = "Inactive"
	AccountSuspended AccountStatus = "Suspended"
)

func (s AccountStatus) IsActive() bool { return s == AccountActive }

// User is an account record as stored in the Users table.
type User struct {
	RecordID      string        `json:"id"`
	UserID        string        `json:"userId"`
	Email         string        `json:"email"`
	PasswordHash  string        `json:"-"`
	FullName      string        `json:"fullName"`
	UserType      UserType      `json:"userType"`
	PhoneNumber   string        `json:"phoneNumber,omitempty"`
	AccountStatus AccountStatus `json:"accountStatus"`
	JoinDate      time.Time     `json:"joinDate"`
	ProfilePhoto  string        `json:"profilePhoto,omitempty"`
}

// Identity is the snapshot of a User embedded in a session token. Protected
// routes replace the claimed fields with the live User before use.
type Identity struct {
	RecordID      string
	UserID        string
	Email         string
	FullName      string
	UserType      UserType
	PhoneNumber   string
	AccountStatus AccountStatus
	JoinDate      time.Time
	ProfilePhoto  string

	TokenID   string
	ExpiresAt time.Time
}

// IdentityOf copies the claimable fields of u.
func IdentityOf(u *User) Identity {
	return Identity{
		RecordID:      u.RecordID,
		UserID:        u.UserID,
		Email:         u.Email,
		FullName:      u.FullName,
		UserType:      u.UserType,
		PhoneNumber:   u.PhoneNumber,
		AccountStatus: u.AccountStatus,
		JoinDate:      u.JoinDate,
		ProfilePhoto:  u.ProfilePhoto,
	}
}

// ProfileUpdate lists the only attributes a user may change on their own
// record. Nil fields are left untouched.
type ProfileUpdate struct {
	FullName    *string
	PhoneNumber *string
}

func (p ProfileUpdate) IsEmpty() bool {
	return p.FullName == nil && p.PhoneNumber == nil
}
