package types

import (
	"strings"
	"time"
)

// Personnel is a staff member record carrying clearance metadata.
type Personnel struct {
	// ID is the unique identifier of the record.
	ID int `json:"id" db:"id"`

	// FirstName and LastName identify the person; LastName is the list sort key.
	FirstName string `json:"first_name" db:"first_name"`
	LastName  string `json:"last_name" db:"last_name"`

	// Email is the person's contact address.
	Email string `json:"email" db:"email"`

	// Phone is optional.
	Phone *string `json:"phone" db:"phone"`

	// ClearanceLevel is one of the Clearance* constants.
	ClearanceLevel string `json:"clearance_level" db:"clearance_level"`

	// Department and Position describe where the person works.
	Department string `json:"department" db:"department"`
	Position   string `json:"position" db:"position"`

	// DeletedAt is set when the record is soft deleted. Soft-deleted
	// records are never returned by the API, so this is always empty in responses.
	DeletedAt *time.Time `json:"deleted_at,omitempty" db:"deleted_at"`

	// CreatedAt is the timestamp at which the record was created.
	CreatedAt time.Time `json:"created_at" db:"created_at"`

	// UpdatedAt is refreshed by every update.
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// PersonnelInput is the payload accepted when creating a personnel record.
type PersonnelInput struct {
	FirstName      string  `json:"first_name" validate:"required,min=1,max=100"`
	LastName       string  `json:"last_name" validate:"required,min=1,max=100"`
	Email          string  `json:"email" validate:"required,email,max=255"`
	Phone          *string `json:"phone" validate:"omitempty,max=20"`
	ClearanceLevel string  `json:"clearance_level" validate:"required,oneof=NONE CONFIDENTIAL SECRET TOP_SECRET"`
	Department     string  `json:"department" validate:"required,min=1,max=100"`
	Position       string  `json:"position" validate:"required,min=1,max=100"`
}

// Normalize trims surrounding whitespace and drops a blank phone.
func (in *PersonnelInput) Normalize() {
	in.FirstName = strings.TrimSpace(in.FirstName)
	in.LastName = strings.TrimSpace(in.LastName)
	in.Email = strings.TrimSpace(in.Email)
	in.Phone = blankToNil(trimOptional(in.Phone))
	in.ClearanceLevel = strings.TrimSpace(in.ClearanceLevel)
	in.Department = strings.TrimSpace(in.Department)
	in.Position = strings.TrimSpace(in.Position)
}

// PersonnelUpdate is a partial update; nil fields are left unchanged.
type PersonnelUpdate struct {
	FirstName      *string `json:"first_name" validate:"omitempty,min=1,max=100"`
	LastName       *string `json:"last_name" validate:"omitempty,min=1,max=100"`
	Email          *string `json:"email" validate:"omitempty,email,max=255"`
	Phone          *string `json:"phone" validate:"omitempty,max=20"`
	ClearanceLevel *string `json:"clearance_level" validate:"omitempty,oneof=NONE CONFIDENTIAL SECRET TOP_SECRET"`
	Department     *string `json:"department" validate:"omitempty,min=1,max=100"`
	Position       *string `json:"position" validate:"omitempty,min=1,max=100"`
}

// Normalize trims surrounding whitespace on every present field. A blank
// phone is treated as absent, so it cannot be used to clear the column.
func (u *PersonnelUpdate) Normalize() {
	u.FirstName = trimOptional(u.FirstName)
	u.LastName = trimOptional(u.LastName)
	u.Email = trimOptional(u.Email)
	u.Phone = blankToNil(trimOptional(u.Phone))
	u.ClearanceLevel = trimOptional(u.ClearanceLevel)
	u.Department = trimOptional(u.Department)
	u.Position = trimOptional(u.Position)
}

// Fields returns the column names of the present fields in declaration order.
func (u PersonnelUpdate) Fields() []string {
	return presentFields(
		field{"first_name", u.FirstName},
		field{"last_name", u.LastName},
		field{"email", u.Email},
		field{"phone", u.Phone},
		field{"clearance_level", u.ClearanceLevel},
		field{"department", u.Department},
		field{"position", u.Position},
	)
}
