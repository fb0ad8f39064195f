package types

import (
	"strings"
	"time"
)

// Vendor is an external company under contract, with clearance metadata.
type Vendor struct {
	ID             int        `json:"id" db:"id"`
	CompanyName    string     `json:"company_name" db:"company_name"`
	ContactName    string     `json:"contact_name" db:"contact_name"`
	ContactEmail   string     `json:"contact_email" db:"contact_email"`
	ContactPhone   *string    `json:"contact_phone" db:"contact_phone"`
	ClearanceLevel string     `json:"clearance_level" db:"clearance_level"`
	ContractNumber string     `json:"contract_number" db:"contract_number"`
	DeletedAt      *time.Time `json:"deleted_at,omitempty" db:"deleted_at"`
	CreatedAt      time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at" db:"updated_at"`
}

// VendorInput is the payload accepted when creating a vendor.
type VendorInput struct {
	CompanyName    string  `json:"company_name" validate:"required,min=1,max=200"`
	ContactName    string  `json:"contact_name" validate:"required,min=1,max=100"`
	ContactEmail   string  `json:"contact_email" validate:"required,email,max=255"`
	ContactPhone   *string `json:"contact_phone" validate:"omitempty,max=20"`
	ClearanceLevel string  `json:"clearance_level" validate:"required,oneof=NONE CONFIDENTIAL SECRET TOP_SECRET"`
	ContractNumber string  `json:"contract_number" validate:"required,min=1,max=100"`
}

// Normalize trims surrounding whitespace and drops a blank contact phone.
func (in *VendorInput) Normalize() {
	in.CompanyName = strings.TrimSpace(in.CompanyName)
	in.ContactName = strings.TrimSpace(in.ContactName)
	in.ContactEmail = strings.TrimSpace(in.ContactEmail)
	in.ContactPhone = blankToNil(trimOptional(in.ContactPhone))
	in.ClearanceLevel = strings.TrimSpace(in.ClearanceLevel)
	in.ContractNumber = strings.TrimSpace(in.ContractNumber)
}

// VendorUpdate is a partial update; nil fields are left unchanged.
type VendorUpdate struct {
	CompanyName    *string `json:"company_name" validate:"omitempty,min=1,max=200"`
	ContactName    *string `json:"contact_name" validate:"omitempty,min=1,max=100"`
	ContactEmail   *string `json:"contact_email" validate:"omitempty,email,max=255"`
	ContactPhone   *string `json:"contact_phone" validate:"omitempty,max=20"`
	ClearanceLevel *string `json:"clearance_level" validate:"omitempty,oneof=NONE CONFIDENTIAL SECRET TOP_SECRET"`
	ContractNumber *string `json:"contract_number" validate:"omitempty,min=1,max=100"`
}

func (u *VendorUpdate) Normalize() {
	u.CompanyName = trimOptional(u.CompanyName)
	u.ContactName = trimOptional(u.ContactName)
	u.ContactEmail = trimOptional(u.ContactEmail)
	u.ContactPhone = blankToNil(trimOptional(u.ContactPhone))
	u.ClearanceLevel = trimOptional(u.ClearanceLevel)
	u.ContractNumber = trimOptional(u.ContractNumber)
}

// Fields returns the column names of the present fields in declaration order.
func (u VendorUpdate) Fields() []string {
	return presentFields(
		field{"company_name", u.CompanyName},
		field{"contact_name", u.ContactName},
		field{"contact_email", u.ContactEmail},
		field{"contact_phone", u.ContactPhone},
		field{"clearance_level", u.ClearanceLevel},
		field{"contract_number", u.ContractNumber},
	)
}
