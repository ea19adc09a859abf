// internal/service/license.go
package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/dangerclosesec/orgaccess/internal/audit"
	"github.com/dangerclosesec/orgaccess/internal/domain"
	"github.com/dangerclosesec/orgaccess/internal/model"
	"github.com/dangerclosesec/orgaccess/internal/repository"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

type LicenseService struct {
	licenseRepo repository.LicenseRepositoryIface
	memberRepo  repository.MemberRepositoryIface
	orgRepo     repository.OrganizationRepositoryIface
	auditLog    audit.Logger
	validate    *validator.Validate
}

func NewLicenseService(
	licenseRepo repository.LicenseRepositoryIface,
	memberRepo repository.MemberRepositoryIface,
	orgRepo repository.OrganizationRepositoryIface,
	auditLog audit.Logger,
) *LicenseService {
	return &LicenseService{
		licenseRepo: licenseRepo,
		memberRepo:  memberRepo,
		orgRepo:     orgRepo,
		auditLog:    auditLog,
		validate:    validator.New(),
	}
}

type CreatePoolInput struct {
	OrganizationID uuid.UUID  `json:"organization_id" validate:"required"`
	LicenseTypeID  uuid.UUID  `json:"license_type_id" validate:"required"`
	TotalSeats     int        `json:"total_seats" validate:"gt=0"`
	EndDate        *time.Time `json:"end_date,omitempty"`
}

func (s *LicenseService) CreatePool(ctx context.Context, input CreatePoolInput, actorID uuid.UUID) (*model.OrganizationLicense, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, err)
	}

	if _, err := s.orgRepo.FindByID(ctx, input.OrganizationID); err != nil {
		return nil, err
	}
	if _, err := s.licenseRepo.FindTypeByID(ctx, input.LicenseTypeID); err != nil {
		return nil, err
	}

	pool := &model.OrganizationLicense{
		OrganizationID: input.OrganizationID,
		LicenseTypeID:  input.LicenseTypeID,
		Status:         model.LicenseStatusActive,
		TotalSeats:     input.TotalSeats,
		UsedSeats:      0,
		EndDate:        input.EndDate,
		LicenseKey:     generateLicenseKey(),
	}

	if err := s.licenseRepo.CreatePool(ctx, pool); err != nil {
		return nil, err
	}

	s.auditLog.LogAction(ctx, actorID, "license.create_pool", "organization_license", pool.ID.String(), map[string]interface{}{
		"organization_id": pool.OrganizationID.String(),
		"total_seats":     pool.TotalSeats,
	})

	return pool, nil
}

// AllocateSeat grants one seat of the pool to an active member of the
// pool's organization. The seat check is repeated under a row lock inside
// the repository, so the pre-checks here are advisory and the counter can
// never exceed TotalSeats.
func (s *LicenseService) AllocateSeat(ctx context.Context, poolID, userID uuid.UUID) (*model.UserLicense, error) {
	pool, err := s.licenseRepo.FindPoolByID(ctx, poolID)
	if err != nil {
		return nil, err
	}

	if pool.Status != model.LicenseStatusActive {
		return nil, domain.ErrLicensePoolInactive
	}
	if pool.UsedSeats >= pool.TotalSeats {
		return nil, domain.ErrNoSeatsAvailable
	}

	member, err := s.memberRepo.FindByOrgAndUser(ctx, pool.OrganizationID, userID)
	if err != nil {
		if errors.Is(err, domain.ErrMemberNotFound) {
			return nil, domain.ErrNotActiveMember
		}
		return nil, err
	}
	if !member.IsActive {
		return nil, domain.ErrNotActiveMember
	}

	existing, err := s.licenseRepo.FindActiveUserLicense(ctx, userID, pool.LicenseTypeID)
	if err != nil && !errors.Is(err, domain.ErrLicenseNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrLicenseAlreadyHeld
	}

	lic := &model.UserLicense{
		UserID:         userID,
		LicenseTypeID:  pool.LicenseTypeID,
		OrganizationID: &pool.OrganizationID,
		Status:         model.LicenseStatusActive,
		EndDate:        pool.EndDate,
	}

	return s.licenseRepo.AllocateSeat(ctx, poolID, lic)
}

// DeallocateSeat voids an individual pooled grant and frees its seat.
// Personally owned licenses cannot be deallocated this way.
func (s *LicenseService) DeallocateSeat(ctx context.Context, userLicenseID uuid.UUID, actorID uuid.UUID) error {
	lic, err := s.licenseRepo.FindUserLicenseByID(ctx, userLicenseID)
	if err != nil {
		return err
	}

	if lic.OrganizationID == nil {
		return domain.ErrNotPoolLicense
	}

	if err := s.licenseRepo.DeallocateSeat(ctx, lic); err != nil {
		return err
	}

	s.auditLog.LogAction(ctx, actorID, "license.deallocate_seat", "user_license", lic.ID.String(), map[string]interface{}{
		"user_id": lic.UserID.String(),
	})

	return nil
}

type UpdatePoolInput struct {
	TotalSeats *int                 `json:"total_seats,omitempty" validate:"omitempty,gte=0"`
	Status     *model.LicenseStatus `json:"status,omitempty" validate:"omitempty,oneof=active suspended expired"`
	EndDate    *time.Time           `json:"end_date,omitempty"`
}

// UpdateLicense updates a pool's fields. TotalSeats may not drop below the
// pool's current usage.
func (s *LicenseService) UpdateLicense(ctx context.Context, poolID uuid.UUID, input UpdatePoolInput, actorID uuid.UUID) (*model.OrganizationLicense, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, err)
	}

	pool, err := s.licenseRepo.UpdatePool(ctx, poolID, repository.PoolUpdate{
		TotalSeats: input.TotalSeats,
		Status:     input.Status,
		EndDate:    input.EndDate,
	})
	if err != nil {
		return nil, err
	}

	s.auditLog.LogAction(ctx, actorID, "license.update_pool", "organization_license", pool.ID.String(), nil)

	return pool, nil
}

// SeatAvailability reports one pool's capacity to a caller deciding where a
// new member can be licensed.
type SeatAvailability struct {
	LicenseTypeName string `json:"license_type_name"`
	TotalSeats      int    `json:"total_seats"`
	UsedSeats       int    `json:"used_seats"`
	AvailableSeats  int    `json:"available_seats"`
}

func (s *LicenseService) GetAvailableSeats(ctx context.Context, orgID uuid.UUID) ([]SeatAvailability, error) {
	if _, err := s.orgRepo.FindByID(ctx, orgID); err != nil {
		return nil, err
	}

	pools, err := s.licenseRepo.FindActivePoolsByOrg(ctx, orgID)
	if err != nil {
		return nil, err
	}

	out := make([]SeatAvailability, 0, len(pools))
	for _, pool := range pools {
		out = append(out, SeatAvailability{
			LicenseTypeName: pool.LicenseType.Name,
			TotalSeats:      pool.TotalSeats,
			UsedSeats:       pool.UsedSeats,
			AvailableSeats:  pool.AvailableSeats(),
		})
	}

	return out, nil
}

// generateLicenseKey creates a random license key for a new pool
func generateLicenseKey() string {
	bytes := make([]byte, 16)
	if _, err := rand.Read(bytes); err != nil {
		panic(err) // This should never happen
	}
	return hex.EncodeToString(bytes)
}
