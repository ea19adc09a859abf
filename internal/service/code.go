// internal/service/code.go
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/dangerclosesec/orgaccess/internal/audit"
	"github.com/dangerclosesec/orgaccess/internal/domain"
	"github.com/dangerclosesec/orgaccess/internal/model"
	"github.com/dangerclosesec/orgaccess/internal/repository"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

type CodeService struct {
	codeRepo repository.CodeRepositoryIface
	orgRepo  repository.OrganizationRepositoryIface
	cascade  *CascadeService
	auditLog audit.Logger
	validate *validator.Validate
}

func NewCodeService(
	codeRepo repository.CodeRepositoryIface,
	orgRepo repository.OrganizationRepositoryIface,
	cascade *CascadeService,
	auditLog audit.Logger,
) *CodeService {
	return &CodeService{
		codeRepo: codeRepo,
		orgRepo:  orgRepo,
		cascade:  cascade,
		auditLog: auditLog,
		validate: validator.New(),
	}
}

type CreateCodeInput struct {
	OrganizationID      uuid.UUID        `json:"organization_id" validate:"required"`
	Code                string           `json:"code" validate:"required,min=4,max=64"`
	Description         string           `json:"description"`
	MaxUses             *int             `json:"max_uses,omitempty" validate:"omitempty,gt=0"`
	ValidFrom           *time.Time       `json:"valid_from,omitempty"`
	ValidUntil          *time.Time       `json:"valid_until,omitempty"`
	DefaultRole         model.MemberRole `json:"default_role" validate:"omitempty,oneof=owner admin member"`
	AutoAssignLicenseID *uuid.UUID       `json:"auto_assign_license_id,omitempty"`
}

func (s *CodeService) Create(ctx context.Context, input CreateCodeInput, actorID uuid.UUID) (*model.OrganizationCode, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, err)
	}

	if _, err := s.orgRepo.FindByID(ctx, input.OrganizationID); err != nil {
		return nil, err
	}

	code := &model.OrganizationCode{
		OrganizationID:      input.OrganizationID,
		Code:                input.Code,
		Description:         input.Description,
		Status:              model.CodeStatusActive,
		MaxUses:             input.MaxUses,
		ValidFrom:           time.Now(),
		ValidUntil:          input.ValidUntil,
		DefaultRole:         model.RoleMember,
		AutoAssignLicenseID: input.AutoAssignLicenseID,
		CreatedByID:         actorID,
	}
	if input.ValidFrom != nil {
		code.ValidFrom = *input.ValidFrom
	}
	if input.DefaultRole != "" {
		code.DefaultRole = input.DefaultRole
	}

	if err := s.codeRepo.Create(ctx, code); err != nil {
		return nil, err
	}

	s.auditLog.LogAction(ctx, actorID, "code.create", "organization_code", code.ID.String(), map[string]interface{}{
		"organization_id": code.OrganizationID.String(),
	})

	return code, nil
}

func (s *CodeService) Get(ctx context.Context, id uuid.UUID) (*model.OrganizationCode, error) {
	return s.codeRepo.FindByID(ctx, id)
}

func (s *CodeService) List(ctx context.Context, orgID uuid.UUID, page, perPage int) ([]*model.OrganizationCode, int64, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 25
	}
	return s.codeRepo.FindByOrgPaginated(ctx, orgID, (page-1)*perPage, perPage)
}

// OrganizationDescriptor is the minimal organization view a join caller needs.
type OrganizationDescriptor struct {
	ID     uuid.UUID                `json:"id"`
	Name   string                   `json:"name"`
	Slug   string                   `json:"slug"`
	Status model.OrganizationStatus `json:"status"`
}

// ValidationResult is the structured outcome of a code validation. Business
// failures are carried in Reason rather than surfaced as errors.
type ValidationResult struct {
	Valid        bool                    `json:"valid"`
	Reason       string                  `json:"reason,omitempty"`
	Organization *OrganizationDescriptor `json:"organization,omitempty"`
}

// check runs the ordered redemption checks and returns domain errors. The
// only write is the lazy status flip when the validity window has closed.
func (s *CodeService) check(ctx context.Context, codeStr string) (*model.OrganizationCode, *model.Organization, error) {
	code, err := s.codeRepo.FindByCode(ctx, codeStr)
	if err != nil {
		return nil, nil, err
	}

	if code.Status == model.CodeStatusRevoked {
		return nil, nil, domain.ErrCodeRevoked
	}

	org, err := s.orgRepo.FindByID(ctx, code.OrganizationID)
	if err != nil {
		return nil, nil, err
	}
	if org.Status != model.OrgStatusActive {
		return nil, nil, domain.ErrOrganizationInactive
	}

	now := time.Now()
	if now.Before(code.ValidFrom) {
		return nil, nil, domain.ErrCodeNotYetValid
	}

	if code.IsExpired(now) {
		code.Status = model.CodeStatusExhausted
		if err := s.codeRepo.Update(ctx, code); err != nil {
			slog.WarnContext(ctx, "failed to mark expired code", "code_id", code.ID, "error", err)
		}
		return nil, nil, domain.ErrCodeExpired
	}

	// Derive exhaustion from the counters rather than trusting the stored
	// status, which may be stale under concurrent writers.
	if code.DeriveStatus() == model.CodeStatusExhausted {
		return nil, nil, domain.ErrCodeMaxUsesReached
	}

	return code, org, nil
}

// Validate evaluates whether a registration code may be redeemed right now,
// short-circuiting on the first failed check.
func (s *CodeService) Validate(ctx context.Context, codeStr string) (*ValidationResult, error) {
	_, org, err := s.check(ctx, codeStr)
	if err != nil {
		reason, ok := validationReason(err)
		if !ok {
			return nil, err
		}
		return &ValidationResult{Valid: false, Reason: reason}, nil
	}

	return &ValidationResult{
		Valid: true,
		Organization: &OrganizationDescriptor{
			ID:     org.ID,
			Name:   org.Name,
			Slug:   org.Slug,
			Status: org.Status,
		},
	}, nil
}

// validationReason maps redemption failures onto the caller-facing reason
// strings. Infrastructure errors are not validation outcomes.
func validationReason(err error) (string, bool) {
	switch {
	case errors.Is(err, domain.ErrCodeNotFound):
		return "Invalid organization code", true
	case errors.Is(err, domain.ErrCodeRevoked):
		return "Code is revoked", true
	case errors.Is(err, domain.ErrOrganizationNotFound), errors.Is(err, domain.ErrOrganizationInactive):
		return "Organization is not active", true
	case errors.Is(err, domain.ErrCodeNotYetValid):
		return "Code is not yet valid", true
	case errors.Is(err, domain.ErrCodeExpired):
		return "Code has expired", true
	case errors.Is(err, domain.ErrCodeMaxUsesReached):
		return "Code has reached maximum uses", true
	}
	return "", false
}

// Use consumes one redemption of the code. Exhaustion is rederived from the
// incremented counter inside the same transaction, so a retry after a
// transient failure converges instead of double-counting.
func (s *CodeService) Use(ctx context.Context, codeStr string) (*model.OrganizationCode, error) {
	return s.codeRepo.IncrementUse(ctx, codeStr)
}

type RevokeOutput struct {
	AffectedUsers int `json:"affected_users"`
}

// Revoke marks the code revoked and cascades the suspension to every member
// who joined through it. The status flips before the cascade runs so no new
// redemption can slip in behind the member snapshot; if the cascade then
// stops part-way, a retry finds the code already revoked but with members
// still active on it, and re-drives the idempotent cascade over exactly
// those members until none remain. Only a fully revoked code rejects a
// second Revoke.
func (s *CodeService) Revoke(ctx context.Context, codeID, actorID uuid.UUID) (*RevokeOutput, error) {
	code, err := s.codeRepo.FindByID(ctx, codeID)
	if err != nil {
		return nil, err
	}

	if code.Status == model.CodeStatusRevoked {
		pending, err := s.cascade.PendingRevocation(ctx, code)
		if err != nil {
			return nil, err
		}
		if !pending {
			return nil, domain.ErrCodeAlreadyRevoked
		}
	} else {
		code.Status = model.CodeStatusRevoked
		if err := s.codeRepo.Update(ctx, code); err != nil {
			return nil, err
		}
	}

	org, err := s.orgRepo.FindByID(ctx, code.OrganizationID)
	if err != nil {
		return nil, err
	}

	affected, err := s.cascade.Revoke(ctx, org, code)
	if err != nil {
		return nil, fmt.Errorf("revocation cascade: %w", err)
	}

	s.auditLog.LogAction(ctx, actorID, "code.revoke", "organization_code", code.ID.String(), map[string]interface{}{
		"affected_users": affected,
	})

	return &RevokeOutput{AffectedUsers: affected}, nil
}

type ReactivateOutput struct {
	AffectedUsers   int `json:"affected_users"`
	ResumedLicenses int `json:"resumed_licenses"`
}

// Reactivate restores a revoked code and the memberships and licenses its
// revocation suspended. Grants whose own term elapsed while suspended stay
// suspended.
func (s *CodeService) Reactivate(ctx context.Context, codeID, actorID uuid.UUID) (*ReactivateOutput, error) {
	code, err := s.codeRepo.FindByID(ctx, codeID)
	if err != nil {
		return nil, err
	}

	if code.Status != model.CodeStatusRevoked {
		return nil, domain.ErrCodeNotRevoked
	}

	code.Status = model.CodeStatusActive
	code.Status = code.DeriveStatus()
	if err := s.codeRepo.Update(ctx, code); err != nil {
		return nil, err
	}

	org, err := s.orgRepo.FindByID(ctx, code.OrganizationID)
	if err != nil {
		return nil, err
	}

	affected, resumed, err := s.cascade.Reactivate(ctx, org, code)
	if err != nil {
		return nil, fmt.Errorf("reactivation cascade: %w", err)
	}

	s.auditLog.LogAction(ctx, actorID, "code.reactivate", "organization_code", code.ID.String(), map[string]interface{}{
		"affected_users":   affected,
		"resumed_licenses": resumed,
	})

	return &ReactivateOutput{AffectedUsers: affected, ResumedLicenses: resumed}, nil
}
