package ports

import (
	"context"
	"time"
)

const (
	AuditRegister      = "register"
	AuditLogin         = "login"
	AuditLoginFailed   = "login_failed"
	AuditLogout        = "logout"
	AuditProfileUpdate = "profile_update"
)

// AuditEvent is one entry in the authentication audit trail.
type AuditEvent struct {
	Type      string
	UserID    string
	Email     string
	IP        string
	UserAgent string
	Reason    string
	At        time.Time
}

// AuditRepository persists audit events. Callers treat failures as non-fatal.
type AuditRepository interface {
	InsertEvent(ctx context.Context, event *AuditEvent) error
}
