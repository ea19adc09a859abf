// internal/service/cascade.go
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/dangerclosesec/orgaccess/internal/domain"
	"github.com/dangerclosesec/orgaccess/internal/email"
	"github.com/dangerclosesec/orgaccess/internal/email/mailer"
	"github.com/dangerclosesec/orgaccess/internal/model"
	"github.com/dangerclosesec/orgaccess/internal/repository"
	"github.com/google/uuid"
)

const suspendNotePrefix = "suspended by code revocation "

// suspensionNote records which code's revocation suspended a grant and what
// state it held before, so reactivation can restore it verbatim.
func suspensionNote(codeID uuid.UUID, prior model.LicenseStatus) string {
	return fmt.Sprintf("%s%s; prior status %s", suspendNotePrefix, codeID, prior)
}

func restorationNote(codeID uuid.UUID) string {
	return fmt.Sprintf("restored after reactivation of code %s", codeID)
}

// CascadeService propagates a code's revoke/reactivate transition to every
// membership and pooled license that depended on it. Members are processed
// independently and every sub-operation is idempotent, so a retry after a
// partial failure converges to the same end state.
type CascadeService struct {
	memberRepo   repository.MemberRepositoryIface
	licenseRepo  repository.LicenseRepositoryIface
	userRepo     repository.UserRepositoryIface
	emailService *email.Service
}

func NewCascadeService(
	memberRepo repository.MemberRepositoryIface,
	licenseRepo repository.LicenseRepositoryIface,
	userRepo repository.UserRepositoryIface,
	emailService *email.Service,
) *CascadeService {
	return &CascadeService{
		memberRepo:   memberRepo,
		licenseRepo:  licenseRepo,
		userRepo:     userRepo,
		emailService: emailService,
	}
}

// PendingRevocation reports whether members who joined via the code are
// still active. On a code already marked revoked that means an earlier
// cascade stopped part-way and Revoke has work left to re-drive.
func (s *CascadeService) PendingRevocation(ctx context.Context, code *model.OrganizationCode) (bool, error) {
	members, err := s.memberRepo.FindByCode(ctx, code.ID, true)
	if err != nil {
		return false, fmt.Errorf("finding members by code: %w", err)
	}
	return len(members) > 0, nil
}

// Revoke suspends every active member who joined via the code: their pooled
// licenses are suspended with provenance notes, the freed seats return to
// their pools, and the membership rows are deactivated. Returns the number
// of affected users.
func (s *CascadeService) Revoke(ctx context.Context, org *model.Organization, code *model.OrganizationCode) (int, error) {
	members, err := s.memberRepo.FindByCode(ctx, code.ID, true)
	if err != nil {
		return 0, fmt.Errorf("finding members by code: %w", err)
	}

	affected := 0
	for _, member := range members {
		lics, err := s.licenseRepo.FindActivePooledByUserAndOrg(ctx, member.UserID, member.OrganizationID)
		if err != nil {
			return affected, fmt.Errorf("finding pooled licenses: %w", err)
		}

		for _, lic := range lics {
			note := suspensionNote(code.ID, lic.Status)
			if err := s.licenseRepo.SuspendPooled(ctx, lic, note); err != nil {
				return affected, fmt.Errorf("suspending license %s: %w", lic.ID, err)
			}
		}

		member.IsActive = false
		if err := s.memberRepo.Update(ctx, member); err != nil {
			return affected, fmt.Errorf("deactivating member %s: %w", member.ID, err)
		}
		affected++

		s.notifyRevoked(ctx, org, member.UserID)
	}

	return affected, nil
}

// Reactivate is the mirror image of Revoke: membership rows deactivated by
// this code's revocation come back, and suspended grants carrying this
// code's provenance note are resumed, unless their own term has elapsed or
// the pool has no seat left for them.
func (s *CascadeService) Reactivate(ctx context.Context, org *model.Organization, code *model.OrganizationCode) (affected, resumed int, err error) {
	members, err := s.memberRepo.FindByCode(ctx, code.ID, false)
	if err != nil {
		return 0, 0, fmt.Errorf("finding members by code: %w", err)
	}

	now := time.Now()
	for _, member := range members {
		member.IsActive = true
		if err := s.memberRepo.Update(ctx, member); err != nil {
			return affected, resumed, fmt.Errorf("reactivating member %s: %w", member.ID, err)
		}
		affected++

		lics, err := s.licenseRepo.FindSuspendedPooledByUserAndOrg(ctx, member.UserID, member.OrganizationID)
		if err != nil {
			return affected, resumed, fmt.Errorf("finding suspended licenses: %w", err)
		}

		for _, lic := range lics {
			if !strings.HasPrefix(lic.Notes, suspendNotePrefix+code.ID.String()) {
				continue
			}
			// A grant whose term expired while suspended is not resurrected.
			if lic.IsExpired(now) {
				continue
			}

			err := s.licenseRepo.ResumePooled(ctx, lic, restorationNote(code.ID))
			if err != nil {
				if errors.Is(err, domain.ErrNoSeatsAvailable) {
					slog.WarnContext(ctx, "skipping license resume, pool is full",
						"license_id", lic.ID, "user_id", member.UserID)
					continue
				}
				return affected, resumed, fmt.Errorf("resuming license %s: %w", lic.ID, err)
			}
			resumed++
		}
	}

	return affected, resumed, nil
}

// notifyRevoked sends the revocation email. Notification is fire-and-forget:
// failures are logged and never fail the cascade.
func (s *CascadeService) notifyRevoked(ctx context.Context, org *model.Organization, userID uuid.UUID) {
	if s.emailService == nil {
		return
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		slog.WarnContext(ctx, "skipping revocation email, user lookup failed", "user_id", userID, "error", err)
		return
	}

	if err := mailer.SendAccessRevoked(s.emailService, user.Email, user.FirstName, org.Name); err != nil {
		slog.WarnContext(ctx, "failed to send revocation email", "user_id", userID, "error", err)
	}
}
