// internal/model/license.go
package model

import (
	"time"

	"github.com/google/uuid"
)

type LicenseStatus string

const (
	LicenseStatusActive    LicenseStatus = "active"
	LicenseStatusSuspended LicenseStatus = "suspended"
	LicenseStatusExpired   LicenseStatus = "expired"
)

type LicenseType struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Name        string    `gorm:"type:text;uniqueIndex;not null" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// OrganizationLicense is a seat pool: a fixed-capacity allocation of grants
// of one license type shared by an organization's members.
type OrganizationLicense struct {
	ID             uuid.UUID     `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	OrganizationID uuid.UUID     `gorm:"type:uuid;not null;index" json:"organization_id"`
	LicenseTypeID  uuid.UUID     `gorm:"type:uuid;not null" json:"license_type_id"`
	Status         LicenseStatus `gorm:"type:text;not null;default:'active'" json:"status"`
	TotalSeats     int           `gorm:"not null" json:"total_seats"`
	UsedSeats      int           `gorm:"not null;default:0" json:"used_seats"`
	EndDate        *time.Time    `json:"end_date,omitempty"`
	LicenseKey     string        `gorm:"type:text;not null" json:"license_key"`
	CreatedAt      time.Time     `json:"created_at"`
	UpdatedAt      time.Time     `json:"updated_at"`

	Organization Organization `gorm:"foreignKey:OrganizationID" json:"-"`
	LicenseType  LicenseType  `gorm:"foreignKey:LicenseTypeID" json:"-"`
}

// AvailableSeats returns the remaining pool capacity.
func (l *OrganizationLicense) AvailableSeats() int {
	return l.TotalSeats - l.UsedSeats
}

// UserLicense is an individual grant. OrganizationID is non-nil exactly when
// the grant was allocated from an organization pool rather than personally
// owned; Notes records suspension/restoration provenance.
type UserLicense struct {
	ID             uuid.UUID     `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	UserID         uuid.UUID     `gorm:"type:uuid;not null;index" json:"user_id"`
	LicenseTypeID  uuid.UUID     `gorm:"type:uuid;not null" json:"license_type_id"`
	OrganizationID *uuid.UUID    `gorm:"type:uuid;index" json:"organization_id,omitempty"`
	Status         LicenseStatus `gorm:"type:text;not null;default:'active'" json:"status"`
	EndDate        *time.Time    `json:"end_date,omitempty"`
	Notes          string        `gorm:"type:text" json:"notes"`
	CreatedAt      time.Time     `json:"created_at"`
	UpdatedAt      time.Time     `json:"updated_at"`

	User        User        `gorm:"foreignKey:UserID" json:"-"`
	LicenseType LicenseType `gorm:"foreignKey:LicenseTypeID" json:"-"`
}

// IsExpired reports whether the grant's own term has elapsed at t.
func (l *UserLicense) IsExpired(t time.Time) bool {
	return l.EndDate != nil && t.After(*l.EndDate)
}
