package service_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/dangerclosesec/orgaccess/internal/domain"
	"github.com/dangerclosesec/orgaccess/internal/mocks"
	"github.com/dangerclosesec/orgaccess/internal/model"
	"github.com/dangerclosesec/orgaccess/internal/service"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestRevokeCascade(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	orgID := uuid.New()
	codeID := uuid.New()
	org := &model.Organization{ID: orgID, Name: "Acme Corp", Status: model.OrgStatusActive}
	code := &model.OrganizationCode{ID: codeID, OrganizationID: orgID, Status: model.CodeStatusRevoked}

	t.Run("suspends licenses with provenance and deactivates members", func(t *testing.T) {
		memberRepo := mocks.NewMockMemberRepositoryIface(ctrl)
		licenseRepo := mocks.NewMockLicenseRepositoryIface(ctrl)
		userRepo := mocks.NewMockUserRepositoryIface(ctrl)

		memberA := &model.OrganizationMember{ID: uuid.New(), OrganizationID: orgID, UserID: uuid.New(), IsActive: true, RegistrationCodeID: &codeID}
		memberB := &model.OrganizationMember{ID: uuid.New(), OrganizationID: orgID, UserID: uuid.New(), IsActive: true, RegistrationCodeID: &codeID}

		licA := &model.UserLicense{
			ID:             uuid.New(),
			UserID:         memberA.UserID,
			OrganizationID: &orgID,
			Status:         model.LicenseStatusActive,
		}

		memberRepo.EXPECT().
			FindByCode(gomock.Any(), codeID, true).
			Return([]*model.OrganizationMember{memberA, memberB}, nil)

		licenseRepo.EXPECT().
			FindActivePooledByUserAndOrg(gomock.Any(), memberA.UserID, orgID).
			Return([]*model.UserLicense{licA}, nil)
		licenseRepo.EXPECT().
			SuspendPooled(gomock.Any(), licA, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ *model.UserLicense, note string) error {
				assert.Contains(t, note, codeID.String())
				assert.Contains(t, note, "prior status active")
				return nil
			})

		licenseRepo.EXPECT().
			FindActivePooledByUserAndOrg(gomock.Any(), memberB.UserID, orgID).
			Return(nil, nil)

		memberRepo.EXPECT().
			Update(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, member *model.OrganizationMember) error {
				assert.False(t, member.IsActive)
				return nil
			}).
			Times(2)

		cascade := service.NewCascadeService(memberRepo, licenseRepo, userRepo, nil)
		affected, err := cascade.Revoke(context.Background(), org, code)

		require.NoError(t, err)
		assert.Equal(t, 2, affected)
	})

	t.Run("members who joined by other means are untouched", func(t *testing.T) {
		memberRepo := mocks.NewMockMemberRepositoryIface(ctrl)
		licenseRepo := mocks.NewMockLicenseRepositoryIface(ctrl)
		userRepo := mocks.NewMockUserRepositoryIface(ctrl)

		memberRepo.EXPECT().
			FindByCode(gomock.Any(), codeID, true).
			Return(nil, nil)

		cascade := service.NewCascadeService(memberRepo, licenseRepo, userRepo, nil)
		affected, err := cascade.Revoke(context.Background(), org, code)

		require.NoError(t, err)
		assert.Zero(t, affected)
	})
}

func TestReactivateCascade(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	orgID := uuid.New()
	codeID := uuid.New()
	org := &model.Organization{ID: orgID, Name: "Acme Corp", Status: model.OrgStatusActive}
	code := &model.OrganizationCode{ID: codeID, OrganizationID: orgID, Status: model.CodeStatusActive}

	suspendedNote := func(id uuid.UUID) string {
		return "suspended by code revocation " + id.String() + "; prior status active"
	}

	t.Run("restores members and their suspended grants", func(t *testing.T) {
		memberRepo := mocks.NewMockMemberRepositoryIface(ctrl)
		licenseRepo := mocks.NewMockLicenseRepositoryIface(ctrl)
		userRepo := mocks.NewMockUserRepositoryIface(ctrl)

		member := &model.OrganizationMember{ID: uuid.New(), OrganizationID: orgID, UserID: uuid.New(), IsActive: false, RegistrationCodeID: &codeID}
		lic := &model.UserLicense{
			ID:             uuid.New(),
			UserID:         member.UserID,
			OrganizationID: &orgID,
			Status:         model.LicenseStatusSuspended,
			Notes:          suspendedNote(codeID),
		}

		memberRepo.EXPECT().
			FindByCode(gomock.Any(), codeID, false).
			Return([]*model.OrganizationMember{member}, nil)
		memberRepo.EXPECT().
			Update(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, m *model.OrganizationMember) error {
				assert.True(t, m.IsActive)
				return nil
			})
		licenseRepo.EXPECT().
			FindSuspendedPooledByUserAndOrg(gomock.Any(), member.UserID, orgID).
			Return([]*model.UserLicense{lic}, nil)
		licenseRepo.EXPECT().
			ResumePooled(gomock.Any(), lic, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ *model.UserLicense, note string) error {
				assert.True(t, strings.Contains(note, codeID.String()))
				return nil
			})

		cascade := service.NewCascadeService(memberRepo, licenseRepo, userRepo, nil)
		affected, resumed, err := cascade.Reactivate(context.Background(), org, code)

		require.NoError(t, err)
		assert.Equal(t, 1, affected)
		assert.Equal(t, 1, resumed)
	})

	t.Run("grants suspended by a different code stay suspended", func(t *testing.T) {
		memberRepo := mocks.NewMockMemberRepositoryIface(ctrl)
		licenseRepo := mocks.NewMockLicenseRepositoryIface(ctrl)
		userRepo := mocks.NewMockUserRepositoryIface(ctrl)

		member := &model.OrganizationMember{ID: uuid.New(), OrganizationID: orgID, UserID: uuid.New(), IsActive: false, RegistrationCodeID: &codeID}
		foreign := &model.UserLicense{
			ID:             uuid.New(),
			UserID:         member.UserID,
			OrganizationID: &orgID,
			Status:         model.LicenseStatusSuspended,
			Notes:          suspendedNote(uuid.New()),
		}

		memberRepo.EXPECT().FindByCode(gomock.Any(), codeID, false).Return([]*model.OrganizationMember{member}, nil)
		memberRepo.EXPECT().Update(gomock.Any(), gomock.Any()).Return(nil)
		licenseRepo.EXPECT().
			FindSuspendedPooledByUserAndOrg(gomock.Any(), member.UserID, orgID).
			Return([]*model.UserLicense{foreign}, nil)
		// No ResumePooled expected.

		cascade := service.NewCascadeService(memberRepo, licenseRepo, userRepo, nil)
		affected, resumed, err := cascade.Reactivate(context.Background(), org, code)

		require.NoError(t, err)
		assert.Equal(t, 1, affected)
		assert.Zero(t, resumed)
	})

	t.Run("grant expired during suspension is not resurrected", func(t *testing.T) {
		memberRepo := mocks.NewMockMemberRepositoryIface(ctrl)
		licenseRepo := mocks.NewMockLicenseRepositoryIface(ctrl)
		userRepo := mocks.NewMockUserRepositoryIface(ctrl)

		member := &model.OrganizationMember{ID: uuid.New(), OrganizationID: orgID, UserID: uuid.New(), IsActive: false, RegistrationCodeID: &codeID}
		expired := &model.UserLicense{
			ID:             uuid.New(),
			UserID:         member.UserID,
			OrganizationID: &orgID,
			Status:         model.LicenseStatusSuspended,
			Notes:          suspendedNote(codeID),
			EndDate:        timePtr(time.Now().Add(-time.Hour)),
		}

		memberRepo.EXPECT().FindByCode(gomock.Any(), codeID, false).Return([]*model.OrganizationMember{member}, nil)
		memberRepo.EXPECT().Update(gomock.Any(), gomock.Any()).Return(nil)
		licenseRepo.EXPECT().
			FindSuspendedPooledByUserAndOrg(gomock.Any(), member.UserID, orgID).
			Return([]*model.UserLicense{expired}, nil)

		cascade := service.NewCascadeService(memberRepo, licenseRepo, userRepo, nil)
		affected, resumed, err := cascade.Reactivate(context.Background(), org, code)

		require.NoError(t, err)
		assert.Equal(t, 1, affected)
		assert.Zero(t, resumed)
	})

	t.Run("a full pool skips the resume instead of failing the cascade", func(t *testing.T) {
		memberRepo := mocks.NewMockMemberRepositoryIface(ctrl)
		licenseRepo := mocks.NewMockLicenseRepositoryIface(ctrl)
		userRepo := mocks.NewMockUserRepositoryIface(ctrl)

		member := &model.OrganizationMember{ID: uuid.New(), OrganizationID: orgID, UserID: uuid.New(), IsActive: false, RegistrationCodeID: &codeID}
		lic := &model.UserLicense{
			ID:             uuid.New(),
			UserID:         member.UserID,
			OrganizationID: &orgID,
			Status:         model.LicenseStatusSuspended,
			Notes:          suspendedNote(codeID),
		}

		memberRepo.EXPECT().FindByCode(gomock.Any(), codeID, false).Return([]*model.OrganizationMember{member}, nil)
		memberRepo.EXPECT().Update(gomock.Any(), gomock.Any()).Return(nil)
		licenseRepo.EXPECT().
			FindSuspendedPooledByUserAndOrg(gomock.Any(), member.UserID, orgID).
			Return([]*model.UserLicense{lic}, nil)
		licenseRepo.EXPECT().
			ResumePooled(gomock.Any(), lic, gomock.Any()).
			Return(domain.ErrNoSeatsAvailable)

		cascade := service.NewCascadeService(memberRepo, licenseRepo, userRepo, nil)
		affected, resumed, err := cascade.Reactivate(context.Background(), org, code)

		require.NoError(t, err)
		assert.Equal(t, 1, affected)
		assert.Zero(t, resumed)
	})
}
