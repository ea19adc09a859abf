// internal/repository/code.go
package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/dangerclosesec/orgaccess/internal/domain"
	"github.com/dangerclosesec/orgaccess/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CodeRepositoryIface interface {
	Create(ctx context.Context, code *model.OrganizationCode) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.OrganizationCode, error)
	FindByCode(ctx context.Context, code string) (*model.OrganizationCode, error)
	FindByOrgPaginated(ctx context.Context, orgID uuid.UUID, offset, limit int) ([]*model.OrganizationCode, int64, error)
	Update(ctx context.Context, code *model.OrganizationCode) error
	// IncrementUse atomically consumes one use of the code, rederiving the
	// stored status from the new counter. It fails with ErrCodeMaxUsesReached
	// when the counter is already at its cap, so concurrent redemptions can
	// never push CurrentUses past MaxUses.
	IncrementUse(ctx context.Context, code string) (*model.OrganizationCode, error)
}

type CodeRepository struct {
	db *gorm.DB
}

func NewCodeRepository(db *gorm.DB) *CodeRepository {
	return &CodeRepository{db: db}
}

func (r *CodeRepository) Create(ctx context.Context, code *model.OrganizationCode) error {
	if err := r.db.WithContext(ctx).Create(code).Error; err != nil {
		if isUniqueViolation(err) {
			return domain.ErrCodeAlreadyExists
		}
		return fmt.Errorf("creating organization code: %w", err)
	}
	return nil
}

func (r *CodeRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.OrganizationCode, error) {
	var code model.OrganizationCode
	if err := r.db.WithContext(ctx).First(&code, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrCodeNotFound
		}
		return nil, fmt.Errorf("finding code: %w", err)
	}
	return &code, nil
}

func (r *CodeRepository) FindByCode(ctx context.Context, codeStr string) (*model.OrganizationCode, error) {
	var code model.OrganizationCode
	if err := r.db.WithContext(ctx).Where("code = ?", codeStr).First(&code).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrCodeNotFound
		}
		return nil, fmt.Errorf("finding code: %w", err)
	}
	return &code, nil
}

func (r *CodeRepository) FindByOrgPaginated(ctx context.Context, orgID uuid.UUID, offset, limit int) ([]*model.OrganizationCode, int64, error) {
	var codes []*model.OrganizationCode
	var count int64

	query := r.db.WithContext(ctx).Model(&model.OrganizationCode{}).Where("organization_id = ?", orgID)

	if err := query.Count(&count).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count codes: %w", err)
	}

	if err := query.Offset(offset).Limit(limit).Order("created_at").Find(&codes).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to find paginated codes: %w", err)
	}

	return codes, count, nil
}

func (r *CodeRepository) Update(ctx context.Context, code *model.OrganizationCode) error {
	if err := r.db.WithContext(ctx).Save(code).Error; err != nil {
		return fmt.Errorf("updating organization code: %w", err)
	}
	return nil
}

func (r *CodeRepository) IncrementUse(ctx context.Context, codeStr string) (*model.OrganizationCode, error) {
	var updated *model.OrganizationCode
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var code model.OrganizationCode
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("code = ?", codeStr).
			First(&code).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrCodeNotFound
			}
			return fmt.Errorf("locking code: %w", err)
		}

		if code.MaxUses != nil && code.CurrentUses >= *code.MaxUses {
			return domain.ErrCodeMaxUsesReached
		}

		code.CurrentUses++
		code.Status = code.DeriveStatus()

		if err := tx.Save(&code).Error; err != nil {
			return fmt.Errorf("incrementing code use: %w", err)
		}

		updated = &code
		return nil
	})

	if err != nil {
		if errors.Is(err, domain.ErrCodeNotFound) || errors.Is(err, domain.ErrCodeMaxUsesReached) {
			return nil, err
		}
		return nil, fmt.Errorf("transaction failed: %w", err)
	}

	return updated, nil
}
