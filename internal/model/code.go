// internal/model/code.go
package model

import (
	"time"

	"github.com/google/uuid"
)

type CodeStatus string

const (
	CodeStatusActive    CodeStatus = "active"
	CodeStatusRevoked   CodeStatus = "revoked"
	CodeStatusExhausted CodeStatus = "exhausted"
)

// OrganizationCode is a shareable registration code that lets a user
// self-join an organization with a default role and an optional
// auto-granted license type.
type OrganizationCode struct {
	ID             uuid.UUID  `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	OrganizationID uuid.UUID  `gorm:"type:uuid;not null;index" json:"organization_id"`
	Code           string     `gorm:"type:citext;uniqueIndex;not null" json:"code"`
	Description    string     `gorm:"type:text" json:"description"`
	Status         CodeStatus `gorm:"type:text;not null;default:'active'" json:"status"`
	// MaxUses of nil means unlimited redemptions.
	MaxUses     *int       `json:"max_uses,omitempty"`
	CurrentUses int        `gorm:"not null;default:0" json:"current_uses"`
	ValidFrom   time.Time  `gorm:"not null" json:"valid_from"`
	ValidUntil  *time.Time `json:"valid_until,omitempty"`
	DefaultRole MemberRole `gorm:"type:text;not null;default:'member'" json:"default_role"`
	// AutoAssignLicenseID is a license type granted automatically on redemption.
	AutoAssignLicenseID *uuid.UUID `gorm:"type:uuid" json:"auto_assign_license_id,omitempty"`
	CreatedByID         uuid.UUID  `gorm:"type:uuid;not null" json:"created_by_id"`
	CreatedAt           time.Time  `json:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at"`

	Organization Organization `gorm:"foreignKey:OrganizationID" json:"-"`
}

// DeriveStatus recomputes the status implied by the counters. The stored
// Status column is only a cache of this function; writers must recompute it
// rather than trust a possibly stale stored value.
func (c *OrganizationCode) DeriveStatus() CodeStatus {
	if c.Status == CodeStatusRevoked {
		return CodeStatusRevoked
	}
	if c.MaxUses != nil && c.CurrentUses >= *c.MaxUses {
		return CodeStatusExhausted
	}
	return CodeStatusActive
}

// IsExpired reports whether the validity window has closed at t.
func (c *OrganizationCode) IsExpired(t time.Time) bool {
	return c.ValidUntil != nil && t.After(*c.ValidUntil)
}
