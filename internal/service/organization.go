// internal/service/organization.go
package service

import (
	"context"
	"fmt"
	"time"

	"github.com/dangerclosesec/orgaccess/internal/audit"
	"github.com/dangerclosesec/orgaccess/internal/domain"
	"github.com/dangerclosesec/orgaccess/internal/model"
	"github.com/dangerclosesec/orgaccess/internal/repository"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

type OrganizationService struct {
	orgRepo    repository.OrganizationRepositoryIface
	memberRepo repository.MemberRepositoryIface
	auditLog   audit.Logger
	validate   *validator.Validate
}

func NewOrganizationService(
	orgRepo repository.OrganizationRepositoryIface,
	memberRepo repository.MemberRepositoryIface,
	auditLog audit.Logger,
) *OrganizationService {
	return &OrganizationService{
		orgRepo:    orgRepo,
		memberRepo: memberRepo,
		auditLog:   auditLog,
		validate:   validator.New(),
	}
}

type CreateOrganizationInput struct {
	Name         string  `json:"name" validate:"required"`
	Slug         string  `json:"slug" validate:"required,min=2,max=64,lowercase,excludesall= "`
	Domain       *string `json:"domain,omitempty" validate:"omitempty,fqdn"`
	ContactEmail string  `json:"contact_email" validate:"omitempty,email"`
	MaxMembers   int     `json:"max_members" validate:"gte=0"`
}

// Create creates an organization and makes the acting administrator its
// first owner, so the last-owner invariant holds from the first member on.
func (s *OrganizationService) Create(ctx context.Context, input CreateOrganizationInput, actorID uuid.UUID) (*model.Organization, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, err)
	}

	org := &model.Organization{
		Name:         input.Name,
		Slug:         input.Slug,
		Domain:       input.Domain,
		ContactEmail: input.ContactEmail,
		MaxMembers:   input.MaxMembers,
		Status:       model.OrgStatusActive,
		CreatedByID:  actorID,
	}

	if err := s.orgRepo.Create(ctx, org); err != nil {
		return nil, err
	}

	owner := &model.OrganizationMember{
		OrganizationID: org.ID,
		UserID:         actorID,
		Role:           model.RoleOwner,
		IsActive:       true,
		JoinedAt:       time.Now(),
	}

	if err := s.memberRepo.Create(ctx, owner); err != nil {
		return nil, fmt.Errorf("creating owner membership: %w", err)
	}

	s.auditLog.LogAction(ctx, actorID, "organization.create", "organization", org.ID.String(), map[string]interface{}{
		"slug": org.Slug,
	})

	return org, nil
}

func (s *OrganizationService) Get(ctx context.Context, id uuid.UUID) (*model.Organization, error) {
	return s.orgRepo.FindByID(ctx, id)
}

func (s *OrganizationService) GetBySlug(ctx context.Context, slug string) (*model.Organization, error) {
	return s.orgRepo.FindBySlug(ctx, slug)
}

func (s *OrganizationService) List(ctx context.Context, page, perPage int) ([]*model.Organization, int64, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 25
	}
	return s.orgRepo.FindAllPaginated(ctx, (page-1)*perPage, perPage)
}

type UpdateOrganizationInput struct {
	Name         *string                   `json:"name,omitempty" validate:"omitempty,min=1"`
	Domain       *string                   `json:"domain,omitempty" validate:"omitempty,fqdn"`
	ContactEmail *string                   `json:"contact_email,omitempty" validate:"omitempty,email"`
	MaxMembers   *int                      `json:"max_members,omitempty" validate:"omitempty,gte=0"`
	Status       *model.OrganizationStatus `json:"status,omitempty" validate:"omitempty,oneof=active suspended"`
}

func (s *OrganizationService) Update(ctx context.Context, id uuid.UUID, input UpdateOrganizationInput, actorID uuid.UUID) (*model.Organization, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, err)
	}

	org, err := s.orgRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		org.Name = *input.Name
	}
	if input.Domain != nil {
		org.Domain = input.Domain
	}
	if input.ContactEmail != nil {
		org.ContactEmail = *input.ContactEmail
	}
	if input.MaxMembers != nil {
		org.MaxMembers = *input.MaxMembers
	}
	if input.Status != nil {
		org.Status = *input.Status
	}

	if err := s.orgRepo.Update(ctx, org); err != nil {
		return nil, err
	}

	s.auditLog.LogAction(ctx, actorID, "organization.update", "organization", org.ID.String(), nil)

	return org, nil
}

// Delete removes an organization. Unless force is set, the delete is
// refused while active members remain.
func (s *OrganizationService) Delete(ctx context.Context, id uuid.UUID, force bool, actorID uuid.UUID) error {
	if _, err := s.orgRepo.FindByID(ctx, id); err != nil {
		return err
	}

	if !force {
		count, err := s.memberRepo.CountActive(ctx, id)
		if err != nil {
			return fmt.Errorf("counting active members: %w", err)
		}
		if count > 0 {
			return domain.ErrOrganizationHasMembers
		}
	}

	if err := s.orgRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.auditLog.LogAction(ctx, actorID, "organization.delete", "organization", id.String(), map[string]interface{}{
		"force": force,
	})

	return nil
}
