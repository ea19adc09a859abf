package service_test

import (
	"context"
	"math/rand"
	"sync"
	"testing"

	"github.com/dangerclosesec/orgaccess/internal/audit"
	"github.com/dangerclosesec/orgaccess/internal/domain"
	"github.com/dangerclosesec/orgaccess/internal/model"
	"github.com/dangerclosesec/orgaccess/internal/service"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// memberStore is an in-memory MemberRepositoryIface used to drive long
// randomized operation sequences, which would be unwieldy with per-call
// mock expectations.
type memberStore struct {
	mu      sync.Mutex
	members map[uuid.UUID]model.OrganizationMember
}

func newMemberStore() *memberStore {
	return &memberStore{members: make(map[uuid.UUID]model.OrganizationMember)}
}

func (s *memberStore) Create(_ context.Context, member *model.OrganizationMember) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if member.ID == uuid.Nil {
		member.ID = uuid.New()
	}
	s.members[member.ID] = *member
	return nil
}

func (s *memberStore) Update(_ context.Context, member *model.OrganizationMember) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.members[member.ID] = *member
	return nil
}

func (s *memberStore) FindByOrgAndUser(_ context.Context, orgID, userID uuid.UUID) (*model.OrganizationMember, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, m := range s.members {
		if m.OrganizationID == orgID && m.UserID == userID {
			found := m
			return &found, nil
		}
	}
	return nil, domain.ErrMemberNotFound
}

func (s *memberStore) FindByOrgPaginated(_ context.Context, orgID uuid.UUID, activeOnly bool, offset, limit int) ([]*model.OrganizationMember, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*model.OrganizationMember
	for _, m := range s.members {
		if m.OrganizationID == orgID && (!activeOnly || m.IsActive) {
			found := m
			out = append(out, &found)
		}
	}
	return out, int64(len(out)), nil
}

func (s *memberStore) CountActive(_ context.Context, orgID uuid.UUID) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int64
	for _, m := range s.members {
		if m.OrganizationID == orgID && m.IsActive {
			n++
		}
	}
	return n, nil
}

func (s *memberStore) CountActiveOwners(_ context.Context, orgID uuid.UUID) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int64
	for _, m := range s.members {
		if m.OrganizationID == orgID && m.Role == model.RoleOwner && m.IsActive {
			n++
		}
	}
	return n, nil
}

func (s *memberStore) FindByCode(_ context.Context, codeID uuid.UUID, active bool) ([]*model.OrganizationMember, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*model.OrganizationMember
	for _, m := range s.members {
		if m.RegistrationCodeID != nil && *m.RegistrationCodeID == codeID && m.IsActive == active {
			found := m
			out = append(out, &found)
		}
	}
	return out, nil
}

// TestOwnerInvariantUnderRandomSequences hammers UpdateMember and
// RemoveMember with random role changes and removals: as long as the
// organization retains any active member, at least one of them must be an
// active owner.
func TestOwnerInvariantUnderRandomSequences(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	roles := []model.MemberRole{model.RoleOwner, model.RoleAdmin, model.RoleMember}

	for trial := 0; trial < 20; trial++ {
		store := newMemberStore()
		orgID := uuid.New()
		actorID := uuid.New()

		userIDs := make([]uuid.UUID, 8)
		for i := range userIDs {
			userIDs[i] = uuid.New()
			role := model.RoleMember
			switch {
			case i < 2:
				role = model.RoleOwner
			case i < 4:
				role = model.RoleAdmin
			}
			require.NoError(t, store.Create(context.Background(), &model.OrganizationMember{
				OrganizationID: orgID,
				UserID:         userIDs[i],
				Role:           role,
				IsActive:       true,
			}))
		}

		svc := service.NewMembershipService(nil, nil, store, nil, nil, nil, &audit.NoOpLogger{})

		for step := 0; step < 200; step++ {
			userID := userIDs[rng.Intn(len(userIDs))]

			if rng.Intn(2) == 0 {
				role := roles[rng.Intn(len(roles))]
				// Rejections are part of the property: the guard refuses
				// exactly the transitions that would break the invariant.
				_, _ = svc.UpdateMember(context.Background(), orgID, userID, service.UpdateMemberInput{Role: &role}, actorID)
			} else {
				_ = svc.RemoveMember(context.Background(), orgID, userID, actorID)
			}

			active, err := store.CountActive(context.Background(), orgID)
			require.NoError(t, err)
			owners, err := store.CountActiveOwners(context.Background(), orgID)
			require.NoError(t, err)

			if active > 0 {
				require.GreaterOrEqual(t, owners, int64(1),
					"trial %d step %d left %d active members with no owner", trial, step, active)
			}
		}
	}
}
