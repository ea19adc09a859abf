// internal/repository/member.go
package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/dangerclosesec/orgaccess/internal/domain"
	"github.com/dangerclosesec/orgaccess/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MemberRepositoryIface interface {
	Create(ctx context.Context, member *model.OrganizationMember) error
	Update(ctx context.Context, member *model.OrganizationMember) error
	// FindByOrgAndUser returns the membership row regardless of its active flag.
	FindByOrgAndUser(ctx context.Context, orgID, userID uuid.UUID) (*model.OrganizationMember, error)
	FindByOrgPaginated(ctx context.Context, orgID uuid.UUID, activeOnly bool, offset, limit int) ([]*model.OrganizationMember, int64, error)
	CountActive(ctx context.Context, orgID uuid.UUID) (int64, error)
	CountActiveOwners(ctx context.Context, orgID uuid.UUID) (int64, error)
	FindByCode(ctx context.Context, codeID uuid.UUID, active bool) ([]*model.OrganizationMember, error)
}

type MemberRepository struct {
	db *gorm.DB
}

func NewMemberRepository(db *gorm.DB) *MemberRepository {
	return &MemberRepository{db: db}
}

func (r *MemberRepository) Create(ctx context.Context, member *model.OrganizationMember) error {
	if err := r.db.WithContext(ctx).Create(member).Error; err != nil {
		if isUniqueViolation(err) {
			return domain.ErrAlreadyMember
		}
		return fmt.Errorf("creating organization member: %w", err)
	}
	return nil
}

func (r *MemberRepository) Update(ctx context.Context, member *model.OrganizationMember) error {
	if err := r.db.WithContext(ctx).Save(member).Error; err != nil {
		return fmt.Errorf("updating organization member: %w", err)
	}
	return nil
}

func (r *MemberRepository) FindByOrgAndUser(ctx context.Context, orgID, userID uuid.UUID) (*model.OrganizationMember, error) {
	var member model.OrganizationMember
	err := r.db.WithContext(ctx).
		Where("organization_id = ? AND user_id = ?", orgID, userID).
		First(&member).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrMemberNotFound
		}
		return nil, fmt.Errorf("finding organization member: %w", err)
	}
	return &member, nil
}

func (r *MemberRepository) FindByOrgPaginated(ctx context.Context, orgID uuid.UUID, activeOnly bool, offset, limit int) ([]*model.OrganizationMember, int64, error) {
	var members []*model.OrganizationMember
	var count int64

	query := r.db.WithContext(ctx).Model(&model.OrganizationMember{}).Where("organization_id = ?", orgID)
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}

	if err := query.Count(&count).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count organization members: %w", err)
	}

	if err := query.Offset(offset).Limit(limit).Order("joined_at").Find(&members).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to find paginated members: %w", err)
	}

	return members, count, nil
}

func (r *MemberRepository) CountActive(ctx context.Context, orgID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.OrganizationMember{}).
		Where("organization_id = ? AND is_active = ?", orgID, true).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("counting active members: %w", err)
	}
	return count, nil
}

func (r *MemberRepository) CountActiveOwners(ctx context.Context, orgID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.OrganizationMember{}).
		Where("organization_id = ? AND role = ? AND is_active = ?", orgID, model.RoleOwner, true).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("counting active owners: %w", err)
	}
	return count, nil
}

// FindByCode returns members whose membership was established through the
// given registration code, filtered by the active flag.
func (r *MemberRepository) FindByCode(ctx context.Context, codeID uuid.UUID, active bool) ([]*model.OrganizationMember, error) {
	var members []*model.OrganizationMember
	err := r.db.WithContext(ctx).
		Where("registration_code_id = ? AND is_active = ?", codeID, active).
		Find(&members).Error
	if err != nil {
		return nil, fmt.Errorf("finding members by code: %w", err)
	}
	return members, nil
}
