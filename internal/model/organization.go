// internal/model/organization.go
package model

import (
	"time"

	"github.com/google/uuid"
)

type OrganizationStatus string

const (
	OrgStatusActive    OrganizationStatus = "active"
	OrgStatusSuspended OrganizationStatus = "suspended"
)

type MemberRole string

const (
	RoleOwner  MemberRole = "owner"
	RoleAdmin  MemberRole = "admin"
	RoleMember MemberRole = "member"
)

type Organization struct {
	ID           uuid.UUID          `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Name         string             `gorm:"type:text;not null" json:"name"`
	Slug         string             `gorm:"type:citext;uniqueIndex;not null" json:"slug"`
	Domain       *string            `gorm:"type:citext;uniqueIndex" json:"domain,omitempty"`
	Status       OrganizationStatus `gorm:"type:text;not null;default:'active'" json:"status"`
	ContactEmail string             `gorm:"type:text" json:"contact_email"`
	// MaxMembers of zero means unlimited.
	MaxMembers  int       `gorm:"not null;default:0" json:"max_members"`
	CreatedByID uuid.UUID `gorm:"type:uuid;not null" json:"created_by_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	Members []OrganizationMember `gorm:"foreignKey:OrganizationID" json:"-"`
}

// OrganizationMember is the (organization, user) pairing. Rows are soft-deleted
// by flipping IsActive so a re-join reactivates the historical row instead of
// inserting a duplicate.
type OrganizationMember struct {
	ID             uuid.UUID  `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	OrganizationID uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_org_member" json:"organization_id"`
	UserID         uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_org_member" json:"user_id"`
	Role           MemberRole `gorm:"type:text;not null;default:'member'" json:"role"`
	IsActive       bool       `gorm:"not null;default:true" json:"is_active"`
	JoinedAt       time.Time  `gorm:"not null" json:"joined_at"`
	// RegistrationCodeID records which code, if any, was redeemed to join.
	RegistrationCodeID *uuid.UUID `gorm:"type:uuid" json:"registration_code_id,omitempty"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`

	Organization Organization `gorm:"foreignKey:OrganizationID" json:"-"`
	User         User         `gorm:"foreignKey:UserID" json:"-"`
}
