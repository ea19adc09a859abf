// internal/service/membership.go
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/dangerclosesec/orgaccess/internal/audit"
	"github.com/dangerclosesec/orgaccess/internal/domain"
	"github.com/dangerclosesec/orgaccess/internal/email"
	"github.com/dangerclosesec/orgaccess/internal/email/mailer"
	"github.com/dangerclosesec/orgaccess/internal/model"
	"github.com/dangerclosesec/orgaccess/internal/repository"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

type MembershipService struct {
	orgRepo        repository.OrganizationRepositoryIface
	userRepo       repository.UserRepositoryIface
	memberRepo     repository.MemberRepositoryIface
	codeService    *CodeService
	licenseService *LicenseService
	emailService   *email.Service
	auditLog       audit.Logger
	validate       *validator.Validate
}

func NewMembershipService(
	orgRepo repository.OrganizationRepositoryIface,
	userRepo repository.UserRepositoryIface,
	memberRepo repository.MemberRepositoryIface,
	codeService *CodeService,
	licenseService *LicenseService,
	emailService *email.Service,
	auditLog audit.Logger,
) *MembershipService {
	return &MembershipService{
		orgRepo:        orgRepo,
		userRepo:       userRepo,
		memberRepo:     memberRepo,
		codeService:    codeService,
		licenseService: licenseService,
		emailService:   emailService,
		auditLog:       auditLog,
		validate:       validator.New(),
	}
}

// AddMember adds the user to the organization with the given role. A
// previously deactivated membership is reactivated in place; reactivation
// restores an already-counted historical slot and deliberately does not
// re-check the member cap.
func (s *MembershipService) AddMember(ctx context.Context, orgID, userID uuid.UUID, role model.MemberRole, codeID *uuid.UUID) (*model.OrganizationMember, error) {
	org, err := s.orgRepo.FindByID(ctx, orgID)
	if err != nil {
		return nil, err
	}
	if org.Status != model.OrgStatusActive {
		return nil, domain.ErrOrganizationInactive
	}

	if _, err := s.userRepo.FindByID(ctx, userID); err != nil {
		return nil, err
	}

	existing, err := s.memberRepo.FindByOrgAndUser(ctx, orgID, userID)
	if err != nil && !errors.Is(err, domain.ErrMemberNotFound) {
		return nil, err
	}

	if existing != nil {
		if existing.IsActive {
			return nil, domain.ErrAlreadyMember
		}

		existing.IsActive = true
		existing.Role = role
		existing.JoinedAt = time.Now()
		existing.RegistrationCodeID = codeID
		if err := s.memberRepo.Update(ctx, existing); err != nil {
			return nil, err
		}
		return existing, nil
	}

	if org.MaxMembers > 0 {
		count, err := s.memberRepo.CountActive(ctx, orgID)
		if err != nil {
			return nil, fmt.Errorf("counting active members: %w", err)
		}
		if count >= int64(org.MaxMembers) {
			return nil, domain.ErrMemberLimitReached
		}
	}

	member := &model.OrganizationMember{
		OrganizationID:     orgID,
		UserID:             userID,
		Role:               role,
		IsActive:           true,
		JoinedAt:           time.Now(),
		RegistrationCodeID: codeID,
	}

	if err := s.memberRepo.Create(ctx, member); err != nil {
		return nil, err
	}

	return member, nil
}

type UpdateMemberInput struct {
	Role *model.MemberRole `json:"role,omitempty" validate:"omitempty,oneof=owner admin member"`
}

// UpdateMember changes a member's role. Demoting an owner requires at least
// one other active owner to remain.
func (s *MembershipService) UpdateMember(ctx context.Context, orgID, userID uuid.UUID, input UpdateMemberInput, actorID uuid.UUID) (*model.OrganizationMember, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, err)
	}

	member, err := s.memberRepo.FindByOrgAndUser(ctx, orgID, userID)
	if err != nil {
		return nil, err
	}

	if input.Role != nil && *input.Role != member.Role {
		if member.Role == model.RoleOwner && member.IsActive {
			owners, err := s.memberRepo.CountActiveOwners(ctx, orgID)
			if err != nil {
				return nil, fmt.Errorf("counting active owners: %w", err)
			}
			if owners < 2 {
				return nil, domain.ErrLastOwner
			}
		}
		member.Role = *input.Role
	}

	if err := s.memberRepo.Update(ctx, member); err != nil {
		return nil, err
	}

	s.auditLog.LogAction(ctx, actorID, "member.update", "organization_member", member.ID.String(), map[string]interface{}{
		"organization_id": orgID.String(),
		"user_id":         userID.String(),
	})

	return member, nil
}

// RemoveMember soft-deletes the membership: the row is kept with
// IsActive=false for audit and potential reactivation. Seat deallocation
// for licenses tied to this membership is the caller's responsibility.
func (s *MembershipService) RemoveMember(ctx context.Context, orgID, userID uuid.UUID, actorID uuid.UUID) error {
	member, err := s.memberRepo.FindByOrgAndUser(ctx, orgID, userID)
	if err != nil {
		return err
	}
	if !member.IsActive {
		return domain.ErrMemberNotFound
	}

	if member.Role == model.RoleOwner {
		owners, err := s.memberRepo.CountActiveOwners(ctx, orgID)
		if err != nil {
			return fmt.Errorf("counting active owners: %w", err)
		}
		if owners < 2 {
			return domain.ErrLastOwner
		}
	}

	member.IsActive = false
	if err := s.memberRepo.Update(ctx, member); err != nil {
		return err
	}

	s.auditLog.LogAction(ctx, actorID, "member.remove", "organization_member", member.ID.String(), map[string]interface{}{
		"organization_id": orgID.String(),
		"user_id":         userID.String(),
	})

	return nil
}

func (s *MembershipService) ListMembers(ctx context.Context, orgID uuid.UUID, activeOnly bool, page, perPage int) ([]*model.OrganizationMember, int64, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 25
	}
	return s.memberRepo.FindByOrgPaginated(ctx, orgID, activeOnly, (page-1)*perPage, perPage)
}

type JoinOutput struct {
	Member       *model.OrganizationMember `json:"member"`
	Organization *OrganizationDescriptor   `json:"organization"`
	License      *model.UserLicense        `json:"license,omitempty"`
	// LicenseWarning is set when the code's auto-assign license could not be
	// allocated; the join itself still succeeds.
	LicenseWarning string `json:"license_warning,omitempty"`
}

// JoinWithCode redeems a registration code: the code is validated, the user
// becomes a member with the code's default role, one use is consumed, and
// the code's auto-assign license, if any, is allocated from the matching
// pool.
func (s *MembershipService) JoinWithCode(ctx context.Context, codeStr string, userID uuid.UUID) (*JoinOutput, error) {
	code, org, err := s.codeService.check(ctx, codeStr)
	if err != nil {
		return nil, err
	}

	member, err := s.AddMember(ctx, org.ID, userID, code.DefaultRole, &code.ID)
	if err != nil {
		return nil, err
	}

	if _, err := s.codeService.Use(ctx, codeStr); err != nil {
		// The join lost a race for the last use; undo the membership so the
		// counter and the member set stay consistent. The code link is
		// cleared too, otherwise a later revoke/reactivate of the code would
		// resurrect a membership whose join never completed.
		member.IsActive = false
		member.RegistrationCodeID = nil
		if uerr := s.memberRepo.Update(ctx, member); uerr != nil {
			slog.ErrorContext(ctx, "failed to roll back membership after use-count failure",
				"member_id", member.ID, "error", uerr)
		}
		return nil, err
	}

	out := &JoinOutput{
		Member: member,
		Organization: &OrganizationDescriptor{
			ID:     org.ID,
			Name:   org.Name,
			Slug:   org.Slug,
			Status: org.Status,
		},
	}

	if code.AutoAssignLicenseID != nil {
		lic, err := s.autoAssignLicense(ctx, org.ID, *code.AutoAssignLicenseID, userID)
		if err != nil {
			slog.WarnContext(ctx, "auto-assign license failed", "user_id", userID, "error", err)
			out.LicenseWarning = err.Error()
		} else {
			out.License = lic
		}
	}

	s.notifyJoined(ctx, org, userID)

	return out, nil
}

func (s *MembershipService) autoAssignLicense(ctx context.Context, orgID, licenseTypeID, userID uuid.UUID) (*model.UserLicense, error) {
	pool, err := s.licenseService.licenseRepo.FindPoolByOrgAndType(ctx, orgID, licenseTypeID)
	if err != nil {
		return nil, err
	}
	return s.licenseService.AllocateSeat(ctx, pool.ID, userID)
}

// notifyJoined sends the welcome email; failures are logged, never surfaced.
func (s *MembershipService) notifyJoined(ctx context.Context, org *model.Organization, userID uuid.UUID) {
	if s.emailService == nil {
		return
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		slog.WarnContext(ctx, "skipping welcome email, user lookup failed", "user_id", userID, "error", err)
		return
	}

	if err := mailer.SendMemberWelcome(s.emailService, user.Email, user.FirstName, org.Name); err != nil {
		slog.WarnContext(ctx, "failed to send welcome email", "user_id", userID, "error", err)
	}
}
