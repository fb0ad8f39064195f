package types

import "time"

// Audit actions recorded by the API.
const (
	AuditActionLogin       = "LOGIN"
	AuditActionLoginFailed = "LOGIN_FAILED"
	AuditActionCreate      = "CREATE"
	AuditActionUpdate      = "UPDATE"
	AuditActionDelete      = "DELETE"
)

// Audit resource types.
const (
	ResourceUser      = "user"
	ResourcePersonnel = "personnel"
	ResourceVendor    = "vendor"
)

// AuditEntry is one immutable row of the audit trail.
type AuditEntry struct {
	ID int `json:"id" db:"id"`

	// UserID is nil for actions not tied to an authenticated user.
	UserID *int `json:"user_id" db:"user_id"`

	// Username names the actor at the time of the action.
	Username string `json:"username" db:"username"`

	// Action is the verb, e.g. AuditActionCreate.
	Action string `json:"action" db:"action"`

	// ResourceType and ResourceID identify what the action touched.
	ResourceType string `json:"resource_type" db:"resource_type"`
	ResourceID   *int   `json:"resource_id" db:"resource_id"`

	Details   *string `json:"details" db:"details"`
	IPAddress *string `json:"ip_address" db:"ip_address"`
	UserAgent *string `json:"user_agent" db:"user_agent"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// AuditEntryInput carries everything needed to append an audit entry.
type AuditEntryInput struct {
	UserID       *int
	Username     string
	Action       string
	ResourceType string
	ResourceID   *int
	Details      *string
	IPAddress    *string
	UserAgent    *string
}

// AuditFilter selects audit entries by exact match. Empty fields match everything.
type AuditFilter struct {
	Username     string
	Action       string
	ResourceType string
}
