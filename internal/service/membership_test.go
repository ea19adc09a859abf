package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/dangerclosesec/orgaccess/internal/audit"
	"github.com/dangerclosesec/orgaccess/internal/domain"
	"github.com/dangerclosesec/orgaccess/internal/mocks"
	"github.com/dangerclosesec/orgaccess/internal/model"
	"github.com/dangerclosesec/orgaccess/internal/service"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type membershipMocks struct {
	orgRepo     *mocks.MockOrganizationRepositoryIface
	userRepo    *mocks.MockUserRepositoryIface
	memberRepo  *mocks.MockMemberRepositoryIface
	codeRepo    *mocks.MockCodeRepositoryIface
	licenseRepo *mocks.MockLicenseRepositoryIface
}

func newMembershipService(ctrl *gomock.Controller) (*service.MembershipService, membershipMocks) {
	m := membershipMocks{
		orgRepo:     mocks.NewMockOrganizationRepositoryIface(ctrl),
		userRepo:    mocks.NewMockUserRepositoryIface(ctrl),
		memberRepo:  mocks.NewMockMemberRepositoryIface(ctrl),
		codeRepo:    mocks.NewMockCodeRepositoryIface(ctrl),
		licenseRepo: mocks.NewMockLicenseRepositoryIface(ctrl),
	}

	codeService := service.NewCodeService(m.codeRepo, m.orgRepo, nil, &audit.NoOpLogger{})
	licenseService := service.NewLicenseService(m.licenseRepo, m.memberRepo, m.orgRepo, &audit.NoOpLogger{})

	svc := service.NewMembershipService(
		m.orgRepo,
		m.userRepo,
		m.memberRepo,
		codeService,
		licenseService,
		nil,
		&audit.NoOpLogger{},
	)
	return svc, m
}

func TestAddMember(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	orgID := uuid.New()
	userID := uuid.New()

	activeOrg := func(maxMembers int) *model.Organization {
		return &model.Organization{ID: orgID, Status: model.OrgStatusActive, MaxMembers: maxMembers}
	}
	testUser := &model.User{ID: userID, Email: "test@example.com", Status: model.UserStatusActive}

	t.Run("adds a new member", func(t *testing.T) {
		svc, m := newMembershipService(ctrl)

		m.orgRepo.EXPECT().FindByID(gomock.Any(), orgID).Return(activeOrg(0), nil)
		m.userRepo.EXPECT().FindByID(gomock.Any(), userID).Return(testUser, nil)
		m.memberRepo.EXPECT().FindByOrgAndUser(gomock.Any(), orgID, userID).Return(nil, domain.ErrMemberNotFound)
		m.memberRepo.EXPECT().
			Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, member *model.OrganizationMember) error {
				assert.True(t, member.IsActive)
				assert.Equal(t, model.RoleAdmin, member.Role)
				return nil
			})

		member, err := svc.AddMember(context.Background(), orgID, userID, model.RoleAdmin, nil)

		require.NoError(t, err)
		assert.Equal(t, userID, member.UserID)
	})

	t.Run("suspended organization accepts nobody", func(t *testing.T) {
		svc, m := newMembershipService(ctrl)

		m.orgRepo.EXPECT().FindByID(gomock.Any(), orgID).Return(&model.Organization{
			ID:     orgID,
			Status: model.OrgStatusSuspended,
		}, nil)

		_, err := svc.AddMember(context.Background(), orgID, userID, model.RoleMember, nil)

		assert.ErrorIs(t, err, domain.ErrOrganizationInactive)
	})

	t.Run("active membership cannot be added twice", func(t *testing.T) {
		svc, m := newMembershipService(ctrl)

		m.orgRepo.EXPECT().FindByID(gomock.Any(), orgID).Return(activeOrg(0), nil)
		m.userRepo.EXPECT().FindByID(gomock.Any(), userID).Return(testUser, nil)
		m.memberRepo.EXPECT().FindByOrgAndUser(gomock.Any(), orgID, userID).Return(&model.OrganizationMember{
			OrganizationID: orgID,
			UserID:         userID,
			IsActive:       true,
		}, nil)

		_, err := svc.AddMember(context.Background(), orgID, userID, model.RoleMember, nil)

		assert.ErrorIs(t, err, domain.ErrAlreadyMember)
	})

	t.Run("deactivated membership is reactivated without a cap check", func(t *testing.T) {
		svc, m := newMembershipService(ctrl)

		// MaxMembers is 1 and the org is notionally full; reactivation must
		// still succeed because the historical row already holds the slot.
		m.orgRepo.EXPECT().FindByID(gomock.Any(), orgID).Return(activeOrg(1), nil)
		m.userRepo.EXPECT().FindByID(gomock.Any(), userID).Return(testUser, nil)
		m.memberRepo.EXPECT().FindByOrgAndUser(gomock.Any(), orgID, userID).Return(&model.OrganizationMember{
			OrganizationID: orgID,
			UserID:         userID,
			Role:           model.RoleMember,
			IsActive:       false,
		}, nil)
		m.memberRepo.EXPECT().
			Update(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, member *model.OrganizationMember) error {
				assert.True(t, member.IsActive)
				assert.Equal(t, model.RoleAdmin, member.Role)
				return nil
			})

		member, err := svc.AddMember(context.Background(), orgID, userID, model.RoleAdmin, nil)

		require.NoError(t, err)
		assert.True(t, member.IsActive)
	})

	t.Run("member cap refuses a fifth member", func(t *testing.T) {
		svc, m := newMembershipService(ctrl)

		m.orgRepo.EXPECT().FindByID(gomock.Any(), orgID).Return(activeOrg(4), nil)
		m.userRepo.EXPECT().FindByID(gomock.Any(), userID).Return(testUser, nil)
		m.memberRepo.EXPECT().FindByOrgAndUser(gomock.Any(), orgID, userID).Return(nil, domain.ErrMemberNotFound)
		m.memberRepo.EXPECT().CountActive(gomock.Any(), orgID).Return(int64(4), nil)

		_, err := svc.AddMember(context.Background(), orgID, userID, model.RoleMember, nil)

		assert.ErrorIs(t, err, domain.ErrMemberLimitReached)
	})
}

func TestRemoveMember(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	orgID := uuid.New()
	userID := uuid.New()
	actorID := uuid.New()

	t.Run("sole owner cannot leave", func(t *testing.T) {
		svc, m := newMembershipService(ctrl)

		// Four active members, exactly one owner.
		m.memberRepo.EXPECT().FindByOrgAndUser(gomock.Any(), orgID, userID).Return(&model.OrganizationMember{
			OrganizationID: orgID,
			UserID:         userID,
			Role:           model.RoleOwner,
			IsActive:       true,
		}, nil)
		m.memberRepo.EXPECT().CountActiveOwners(gomock.Any(), orgID).Return(int64(1), nil)

		err := svc.RemoveMember(context.Background(), orgID, userID, actorID)

		assert.ErrorIs(t, err, domain.ErrLastOwner)
	})

	t.Run("owner can leave when another owner remains", func(t *testing.T) {
		svc, m := newMembershipService(ctrl)

		m.memberRepo.EXPECT().FindByOrgAndUser(gomock.Any(), orgID, userID).Return(&model.OrganizationMember{
			OrganizationID: orgID,
			UserID:         userID,
			Role:           model.RoleOwner,
			IsActive:       true,
		}, nil)
		m.memberRepo.EXPECT().CountActiveOwners(gomock.Any(), orgID).Return(int64(2), nil)
		m.memberRepo.EXPECT().
			Update(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, member *model.OrganizationMember) error {
				assert.False(t, member.IsActive)
				return nil
			})

		err := svc.RemoveMember(context.Background(), orgID, userID, actorID)

		assert.NoError(t, err)
	})

	t.Run("already removed member is not found", func(t *testing.T) {
		svc, m := newMembershipService(ctrl)

		m.memberRepo.EXPECT().FindByOrgAndUser(gomock.Any(), orgID, userID).Return(&model.OrganizationMember{
			OrganizationID: orgID,
			UserID:         userID,
			Role:           model.RoleMember,
			IsActive:       false,
		}, nil)

		err := svc.RemoveMember(context.Background(), orgID, userID, actorID)

		assert.ErrorIs(t, err, domain.ErrMemberNotFound)
	})
}

func TestUpdateMember(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	orgID := uuid.New()
	userID := uuid.New()
	actorID := uuid.New()

	t.Run("sole owner cannot be demoted", func(t *testing.T) {
		svc, m := newMembershipService(ctrl)

		m.memberRepo.EXPECT().FindByOrgAndUser(gomock.Any(), orgID, userID).Return(&model.OrganizationMember{
			OrganizationID: orgID,
			UserID:         userID,
			Role:           model.RoleOwner,
			IsActive:       true,
		}, nil)
		m.memberRepo.EXPECT().CountActiveOwners(gomock.Any(), orgID).Return(int64(1), nil)

		role := model.RoleMember
		_, err := svc.UpdateMember(context.Background(), orgID, userID, service.UpdateMemberInput{Role: &role}, actorID)

		assert.ErrorIs(t, err, domain.ErrLastOwner)
	})

	t.Run("promotion to owner needs no owner count", func(t *testing.T) {
		svc, m := newMembershipService(ctrl)

		m.memberRepo.EXPECT().FindByOrgAndUser(gomock.Any(), orgID, userID).Return(&model.OrganizationMember{
			OrganizationID: orgID,
			UserID:         userID,
			Role:           model.RoleMember,
			IsActive:       true,
		}, nil)
		m.memberRepo.EXPECT().Update(gomock.Any(), gomock.Any()).Return(nil)

		role := model.RoleOwner
		member, err := svc.UpdateMember(context.Background(), orgID, userID, service.UpdateMemberInput{Role: &role}, actorID)

		require.NoError(t, err)
		assert.Equal(t, model.RoleOwner, member.Role)
	})
}

func TestJoinWithCode(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	orgID := uuid.New()
	codeID := uuid.New()
	userID := uuid.New()

	activeOrg := &model.Organization{
		ID:     orgID,
		Name:   "Acme Corp",
		Slug:   "acme",
		Status: model.OrgStatusActive,
	}
	testUser := &model.User{ID: userID, Email: "test@example.com", Status: model.UserStatusActive}

	joinableCode := func() *model.OrganizationCode {
		return &model.OrganizationCode{
			ID:             codeID,
			OrganizationID: orgID,
			Code:           "ACME-2025-ABCD1234",
			Status:         model.CodeStatusActive,
			MaxUses:        intPtr(50),
			CurrentUses:    49,
			ValidFrom:      time.Now().Add(-time.Hour),
			DefaultRole:    model.RoleMember,
		}
	}

	t.Run("join consumes one use and grants the default role", func(t *testing.T) {
		svc, m := newMembershipService(ctrl)

		m.codeRepo.EXPECT().FindByCode(gomock.Any(), "ACME-2025-ABCD1234").Return(joinableCode(), nil)
		m.orgRepo.EXPECT().FindByID(gomock.Any(), orgID).Return(activeOrg, nil).Times(2)
		m.userRepo.EXPECT().FindByID(gomock.Any(), userID).Return(testUser, nil)
		m.memberRepo.EXPECT().FindByOrgAndUser(gomock.Any(), orgID, userID).Return(nil, domain.ErrMemberNotFound)
		m.memberRepo.EXPECT().
			Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, member *model.OrganizationMember) error {
				assert.Equal(t, model.RoleMember, member.Role)
				require.NotNil(t, member.RegistrationCodeID)
				assert.Equal(t, codeID, *member.RegistrationCodeID)
				return nil
			})

		used := joinableCode()
		used.CurrentUses = 50
		used.Status = model.CodeStatusExhausted
		m.codeRepo.EXPECT().IncrementUse(gomock.Any(), "ACME-2025-ABCD1234").Return(used, nil)

		out, err := svc.JoinWithCode(context.Background(), "ACME-2025-ABCD1234", userID)

		require.NoError(t, err)
		assert.Equal(t, "acme", out.Organization.Slug)
		assert.Nil(t, out.License)
		assert.Empty(t, out.LicenseWarning)
	})

	t.Run("losing the race for the last use rolls the membership back", func(t *testing.T) {
		svc, m := newMembershipService(ctrl)

		m.codeRepo.EXPECT().FindByCode(gomock.Any(), "ACME-2025-ABCD1234").Return(joinableCode(), nil)
		m.orgRepo.EXPECT().FindByID(gomock.Any(), orgID).Return(activeOrg, nil).Times(2)
		m.userRepo.EXPECT().FindByID(gomock.Any(), userID).Return(testUser, nil)
		m.memberRepo.EXPECT().FindByOrgAndUser(gomock.Any(), orgID, userID).Return(nil, domain.ErrMemberNotFound)
		m.memberRepo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)

		m.codeRepo.EXPECT().IncrementUse(gomock.Any(), "ACME-2025-ABCD1234").Return(nil, domain.ErrCodeMaxUsesReached)
		m.memberRepo.EXPECT().
			Update(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, member *model.OrganizationMember) error {
				assert.False(t, member.IsActive)
				// The unlink keeps the rolled-back row out of any later
				// reactivation cascade of this code.
				assert.Nil(t, member.RegistrationCodeID)
				return nil
			})

		_, err := svc.JoinWithCode(context.Background(), "ACME-2025-ABCD1234", userID)

		assert.ErrorIs(t, err, domain.ErrCodeMaxUsesReached)
	})

	t.Run("failed auto-assign downgrades to a warning", func(t *testing.T) {
		svc, m := newMembershipService(ctrl)

		typeID := uuid.New()
		code := joinableCode()
		code.AutoAssignLicenseID = &typeID

		m.codeRepo.EXPECT().FindByCode(gomock.Any(), "ACME-2025-ABCD1234").Return(code, nil)
		m.orgRepo.EXPECT().FindByID(gomock.Any(), orgID).Return(activeOrg, nil).Times(2)
		m.userRepo.EXPECT().FindByID(gomock.Any(), userID).Return(testUser, nil)
		m.memberRepo.EXPECT().FindByOrgAndUser(gomock.Any(), orgID, userID).Return(nil, domain.ErrMemberNotFound)
		m.memberRepo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
		m.codeRepo.EXPECT().IncrementUse(gomock.Any(), "ACME-2025-ABCD1234").Return(code, nil)

		m.licenseRepo.EXPECT().
			FindPoolByOrgAndType(gomock.Any(), orgID, typeID).
			Return(nil, domain.ErrLicensePoolNotFound)

		out, err := svc.JoinWithCode(context.Background(), "ACME-2025-ABCD1234", userID)

		require.NoError(t, err)
		assert.Nil(t, out.License)
		assert.NotEmpty(t, out.LicenseWarning)
	})

	t.Run("auto-assign grants the seat on join", func(t *testing.T) {
		svc, m := newMembershipService(ctrl)

		typeID := uuid.New()
		poolID := uuid.New()
		code := joinableCode()
		code.AutoAssignLicenseID = &typeID

		m.codeRepo.EXPECT().FindByCode(gomock.Any(), "ACME-2025-ABCD1234").Return(code, nil)
		m.orgRepo.EXPECT().FindByID(gomock.Any(), orgID).Return(activeOrg, nil).Times(2)
		m.userRepo.EXPECT().FindByID(gomock.Any(), userID).Return(testUser, nil)
		m.memberRepo.EXPECT().FindByOrgAndUser(gomock.Any(), orgID, userID).Return(nil, domain.ErrMemberNotFound)
		m.memberRepo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
		m.codeRepo.EXPECT().IncrementUse(gomock.Any(), "ACME-2025-ABCD1234").Return(code, nil)

		pool := &model.OrganizationLicense{
			ID:             poolID,
			OrganizationID: orgID,
			LicenseTypeID:  typeID,
			Status:         model.LicenseStatusActive,
			TotalSeats:     10,
			UsedSeats:      3,
		}
		m.licenseRepo.EXPECT().FindPoolByOrgAndType(gomock.Any(), orgID, typeID).Return(pool, nil)
		m.licenseRepo.EXPECT().FindPoolByID(gomock.Any(), poolID).Return(pool, nil)
		m.memberRepo.EXPECT().FindByOrgAndUser(gomock.Any(), orgID, userID).Return(&model.OrganizationMember{
			OrganizationID: orgID,
			UserID:         userID,
			IsActive:       true,
		}, nil)
		m.licenseRepo.EXPECT().FindActiveUserLicense(gomock.Any(), userID, typeID).Return(nil, domain.ErrLicenseNotFound)
		m.licenseRepo.EXPECT().
			AllocateSeat(gomock.Any(), poolID, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ uuid.UUID, lic *model.UserLicense) (*model.UserLicense, error) {
				return lic, nil
			})

		out, err := svc.JoinWithCode(context.Background(), "ACME-2025-ABCD1234", userID)

		require.NoError(t, err)
		require.NotNil(t, out.License)
		assert.Equal(t, userID, out.License.UserID)
		assert.Empty(t, out.LicenseWarning)
	})
}
