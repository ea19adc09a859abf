// internal/repository/license.go
package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dangerclosesec/orgaccess/internal/domain"
	"github.com/dangerclosesec/orgaccess/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PoolUpdate carries the mutable fields of a seat pool. Nil fields are
// left untouched.
type PoolUpdate struct {
	TotalSeats *int
	Status     *model.LicenseStatus
	EndDate    *time.Time
}

type LicenseRepositoryIface interface {
	CreateType(ctx context.Context, lt *model.LicenseType) error
	FindTypeByID(ctx context.Context, id uuid.UUID) (*model.LicenseType, error)

	CreatePool(ctx context.Context, pool *model.OrganizationLicense) error
	FindPoolByID(ctx context.Context, id uuid.UUID) (*model.OrganizationLicense, error)
	FindPoolByOrgAndType(ctx context.Context, orgID, typeID uuid.UUID) (*model.OrganizationLicense, error)
	FindActivePoolsByOrg(ctx context.Context, orgID uuid.UUID) ([]*model.OrganizationLicense, error)
	// UpdatePool applies the update under a row lock, refusing to reduce
	// TotalSeats below the pool's current usage.
	UpdatePool(ctx context.Context, poolID uuid.UUID, update PoolUpdate) (*model.OrganizationLicense, error)

	FindUserLicenseByID(ctx context.Context, id uuid.UUID) (*model.UserLicense, error)
	FindActiveUserLicense(ctx context.Context, userID, typeID uuid.UUID) (*model.UserLicense, error)
	FindActivePooledByUserAndOrg(ctx context.Context, userID, orgID uuid.UUID) ([]*model.UserLicense, error)
	FindSuspendedPooledByUserAndOrg(ctx context.Context, userID, orgID uuid.UUID) ([]*model.UserLicense, error)

	// AllocateSeat creates the grant and increments the pool counter in one
	// transaction; the seat check is repeated under the row lock so two
	// concurrent callers cannot both take the last seat.
	AllocateSeat(ctx context.Context, poolID uuid.UUID, lic *model.UserLicense) (*model.UserLicense, error)
	// DeallocateSeat voids the grant and frees its seat, never driving the
	// counter below zero.
	DeallocateSeat(ctx context.Context, lic *model.UserLicense) error
	// SuspendPooled marks the grant suspended with the given provenance note
	// and frees its seat back to the pool.
	SuspendPooled(ctx context.Context, lic *model.UserLicense, note string) error
	// ResumePooled restores a suspended grant and retakes a seat, failing
	// with ErrNoSeatsAvailable when the pool has no headroom left.
	ResumePooled(ctx context.Context, lic *model.UserLicense, note string) error
}

type LicenseRepository struct {
	db *gorm.DB
}

func NewLicenseRepository(db *gorm.DB) *LicenseRepository {
	return &LicenseRepository{db: db}
}

func (r *LicenseRepository) CreateType(ctx context.Context, lt *model.LicenseType) error {
	if err := r.db.WithContext(ctx).Create(lt).Error; err != nil {
		return fmt.Errorf("creating license type: %w", err)
	}
	return nil
}

func (r *LicenseRepository) FindTypeByID(ctx context.Context, id uuid.UUID) (*model.LicenseType, error) {
	var lt model.LicenseType
	if err := r.db.WithContext(ctx).First(&lt, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrLicenseNotFound
		}
		return nil, fmt.Errorf("finding license type: %w", err)
	}
	return &lt, nil
}

func (r *LicenseRepository) CreatePool(ctx context.Context, pool *model.OrganizationLicense) error {
	if err := r.db.WithContext(ctx).Create(pool).Error; err != nil {
		return fmt.Errorf("creating license pool: %w", err)
	}
	return nil
}

func (r *LicenseRepository) FindPoolByID(ctx context.Context, id uuid.UUID) (*model.OrganizationLicense, error) {
	var pool model.OrganizationLicense
	if err := r.db.WithContext(ctx).Preload("LicenseType").First(&pool, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrLicensePoolNotFound
		}
		return nil, fmt.Errorf("finding license pool: %w", err)
	}
	return &pool, nil
}

func (r *LicenseRepository) FindPoolByOrgAndType(ctx context.Context, orgID, typeID uuid.UUID) (*model.OrganizationLicense, error) {
	var pool model.OrganizationLicense
	err := r.db.WithContext(ctx).
		Where("organization_id = ? AND license_type_id = ?", orgID, typeID).
		First(&pool).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrLicensePoolNotFound
		}
		return nil, fmt.Errorf("finding license pool: %w", err)
	}
	return &pool, nil
}

func (r *LicenseRepository) FindActivePoolsByOrg(ctx context.Context, orgID uuid.UUID) ([]*model.OrganizationLicense, error) {
	var pools []*model.OrganizationLicense
	err := r.db.WithContext(ctx).
		Preload("LicenseType").
		Where("organization_id = ? AND status = ?", orgID, model.LicenseStatusActive).
		Find(&pools).Error
	if err != nil {
		return nil, fmt.Errorf("finding license pools: %w", err)
	}
	return pools, nil
}

func (r *LicenseRepository) UpdatePool(ctx context.Context, poolID uuid.UUID, update PoolUpdate) (*model.OrganizationLicense, error) {
	var updated *model.OrganizationLicense
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var pool model.OrganizationLicense
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&pool, "id = ?", poolID).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrLicensePoolNotFound
			}
			return fmt.Errorf("locking license pool: %w", err)
		}

		if update.TotalSeats != nil {
			if *update.TotalSeats < pool.UsedSeats {
				return domain.ErrSeatsBelowUsage
			}
			pool.TotalSeats = *update.TotalSeats
		}
		if update.Status != nil {
			pool.Status = *update.Status
		}
		if update.EndDate != nil {
			pool.EndDate = update.EndDate
		}

		if err := tx.Save(&pool).Error; err != nil {
			return fmt.Errorf("updating license pool: %w", err)
		}

		updated = &pool
		return nil
	})

	if err != nil {
		if errors.Is(err, domain.ErrLicensePoolNotFound) || errors.Is(err, domain.ErrSeatsBelowUsage) {
			return nil, err
		}
		return nil, fmt.Errorf("transaction failed: %w", err)
	}

	return updated, nil
}

func (r *LicenseRepository) FindUserLicenseByID(ctx context.Context, id uuid.UUID) (*model.UserLicense, error) {
	var lic model.UserLicense
	if err := r.db.WithContext(ctx).First(&lic, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrLicenseNotFound
		}
		return nil, fmt.Errorf("finding user license: %w", err)
	}
	return &lic, nil
}

func (r *LicenseRepository) FindActiveUserLicense(ctx context.Context, userID, typeID uuid.UUID) (*model.UserLicense, error) {
	var lic model.UserLicense
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND license_type_id = ? AND status = ?", userID, typeID, model.LicenseStatusActive).
		First(&lic).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrLicenseNotFound
		}
		return nil, fmt.Errorf("finding active user license: %w", err)
	}
	return &lic, nil
}

func (r *LicenseRepository) FindActivePooledByUserAndOrg(ctx context.Context, userID, orgID uuid.UUID) ([]*model.UserLicense, error) {
	return r.findPooledByStatus(ctx, userID, orgID, model.LicenseStatusActive)
}

func (r *LicenseRepository) FindSuspendedPooledByUserAndOrg(ctx context.Context, userID, orgID uuid.UUID) ([]*model.UserLicense, error) {
	return r.findPooledByStatus(ctx, userID, orgID, model.LicenseStatusSuspended)
}

func (r *LicenseRepository) findPooledByStatus(ctx context.Context, userID, orgID uuid.UUID, status model.LicenseStatus) ([]*model.UserLicense, error) {
	var lics []*model.UserLicense
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND organization_id = ? AND status = ?", userID, orgID, status).
		Find(&lics).Error
	if err != nil {
		return nil, fmt.Errorf("finding pooled user licenses: %w", err)
	}
	return lics, nil
}

func (r *LicenseRepository) AllocateSeat(ctx context.Context, poolID uuid.UUID, lic *model.UserLicense) (*model.UserLicense, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var pool model.OrganizationLicense
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&pool, "id = ?", poolID).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrLicensePoolNotFound
			}
			return fmt.Errorf("locking license pool: %w", err)
		}

		if pool.Status != model.LicenseStatusActive {
			return domain.ErrLicensePoolInactive
		}
		if pool.UsedSeats >= pool.TotalSeats {
			return domain.ErrNoSeatsAvailable
		}

		if err := tx.Create(lic).Error; err != nil {
			return fmt.Errorf("creating user license: %w", err)
		}

		pool.UsedSeats++
		if err := tx.Save(&pool).Error; err != nil {
			return fmt.Errorf("incrementing used seats: %w", err)
		}

		return nil
	})

	if err != nil {
		if errors.Is(err, domain.ErrLicensePoolNotFound) ||
			errors.Is(err, domain.ErrLicensePoolInactive) ||
			errors.Is(err, domain.ErrNoSeatsAvailable) {
			return nil, err
		}
		return nil, fmt.Errorf("transaction failed: %w", err)
	}

	return lic, nil
}

func (r *LicenseRepository) DeallocateSeat(ctx context.Context, lic *model.UserLicense) error {
	if lic.OrganizationID == nil {
		return domain.ErrNotPoolLicense
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&model.UserLicense{}, "id = ?", lic.ID).Error; err != nil {
			return fmt.Errorf("deleting user license: %w", err)
		}
		return r.freeSeat(tx, *lic.OrganizationID, lic.LicenseTypeID)
	})

	if err != nil {
		return fmt.Errorf("transaction failed: %w", err)
	}

	return nil
}

func (r *LicenseRepository) SuspendPooled(ctx context.Context, lic *model.UserLicense, note string) error {
	if lic.OrganizationID == nil {
		return domain.ErrNotPoolLicense
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		lic.Status = model.LicenseStatusSuspended
		lic.Notes = note
		if err := tx.Save(lic).Error; err != nil {
			return fmt.Errorf("suspending user license: %w", err)
		}
		return r.freeSeat(tx, *lic.OrganizationID, lic.LicenseTypeID)
	})

	if err != nil {
		return fmt.Errorf("transaction failed: %w", err)
	}

	return nil
}

func (r *LicenseRepository) ResumePooled(ctx context.Context, lic *model.UserLicense, note string) error {
	if lic.OrganizationID == nil {
		return domain.ErrNotPoolLicense
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var pool model.OrganizationLicense
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("organization_id = ? AND license_type_id = ?", *lic.OrganizationID, lic.LicenseTypeID).
			First(&pool).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrLicensePoolNotFound
			}
			return fmt.Errorf("locking license pool: %w", err)
		}

		if pool.UsedSeats >= pool.TotalSeats {
			return domain.ErrNoSeatsAvailable
		}

		lic.Status = model.LicenseStatusActive
		lic.Notes = note
		if err := tx.Save(lic).Error; err != nil {
			return fmt.Errorf("resuming user license: %w", err)
		}

		pool.UsedSeats++
		if err := tx.Save(&pool).Error; err != nil {
			return fmt.Errorf("incrementing used seats: %w", err)
		}

		return nil
	})

	if err != nil {
		if errors.Is(err, domain.ErrNoSeatsAvailable) || errors.Is(err, domain.ErrLicensePoolNotFound) {
			return err
		}
		return fmt.Errorf("transaction failed: %w", err)
	}

	return nil
}

// freeSeat decrements the owning pool's counter under a row lock, flooring
// at zero.
func (r *LicenseRepository) freeSeat(tx *gorm.DB, orgID, typeID uuid.UUID) error {
	var pool model.OrganizationLicense
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("organization_id = ? AND license_type_id = ?", orgID, typeID).
		First(&pool).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrLicensePoolNotFound
		}
		return fmt.Errorf("locking license pool: %w", err)
	}

	if pool.UsedSeats > 0 {
		pool.UsedSeats--
	}
	if err := tx.Save(&pool).Error; err != nil {
		return fmt.Errorf("decrementing used seats: %w", err)
	}

	return nil
}
