// internal/domain/errors.go
package domain

import "errors"

var (
	// General errors
	ErrNotFound     = errors.New("not found")
	ErrInvalidInput = errors.New("invalid input")

	// Organization-related errors
	ErrOrganizationNotFound   = errors.New("organization not found")
	ErrOrganizationInactive   = errors.New("organization is not active")
	ErrOrganizationHasMembers = errors.New("organization still has active members")
	ErrSlugAlreadyExists      = errors.New("slug already exists")
	ErrDomainAlreadyExists    = errors.New("domain already exists")

	// Membership-related errors
	ErrUserNotFound       = errors.New("user not found")
	ErrMemberNotFound     = errors.New("member not found")
	ErrAlreadyMember      = errors.New("user is already an active member")
	ErrNotActiveMember    = errors.New("user is not an active member of the organization")
	ErrMemberLimitReached = errors.New("member limit reached")
	ErrLastOwner          = errors.New("cannot remove or demote the last owner")

	// Code-related errors
	ErrCodeNotFound       = errors.New("organization code not found")
	ErrCodeAlreadyExists  = errors.New("code already exists")
	ErrCodeRevoked        = errors.New("code is revoked")
	ErrCodeAlreadyRevoked = errors.New("code is already revoked")
	ErrCodeNotRevoked     = errors.New("code is not revoked")
	ErrCodeNotYetValid    = errors.New("code is not yet valid")
	ErrCodeExpired        = errors.New("code has expired")
	ErrCodeMaxUsesReached = errors.New("code has reached maximum uses")

	// License-related errors
	ErrLicenseNotFound     = errors.New("license not found")
	ErrLicensePoolNotFound = errors.New("license pool not found")
	ErrLicensePoolInactive = errors.New("license pool is not active")
	ErrNoSeatsAvailable    = errors.New("no seats available")
	ErrLicenseAlreadyHeld  = errors.New("user already holds an active license of this type")
	ErrNotPoolLicense      = errors.New("license is not sourced from an organization pool")
	ErrSeatsBelowUsage     = errors.New("cannot reduce seats below current usage")
)
