package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDeriveStatus(t *testing.T) {
	maxUses := 50

	t.Run("hitting the cap derives exhausted", func(t *testing.T) {
		code := OrganizationCode{Status: CodeStatusActive, MaxUses: &maxUses, CurrentUses: 49}
		assert.Equal(t, CodeStatusActive, code.DeriveStatus())

		code.CurrentUses = 50
		assert.Equal(t, CodeStatusExhausted, code.DeriveStatus())
	})

	t.Run("revoked wins over the counters", func(t *testing.T) {
		code := OrganizationCode{Status: CodeStatusRevoked, MaxUses: &maxUses, CurrentUses: 50}
		assert.Equal(t, CodeStatusRevoked, code.DeriveStatus())
	})

	t.Run("unlimited codes never exhaust", func(t *testing.T) {
		code := OrganizationCode{Status: CodeStatusActive, CurrentUses: 1 << 20}
		assert.Equal(t, CodeStatusActive, code.DeriveStatus())
	})

	t.Run("a stale exhausted status heals after the cap is raised", func(t *testing.T) {
		raised := 100
		code := OrganizationCode{Status: CodeStatusExhausted, MaxUses: &raised, CurrentUses: 50}
		assert.Equal(t, CodeStatusActive, code.DeriveStatus())
	})
}

func TestCodeIsExpired(t *testing.T) {
	now := time.Now()

	t.Run("no window end means no expiry", func(t *testing.T) {
		code := OrganizationCode{ValidFrom: now.Add(-time.Hour)}
		assert.False(t, code.IsExpired(now))
	})

	t.Run("past the window end", func(t *testing.T) {
		until := now.Add(-time.Minute)
		code := OrganizationCode{ValidUntil: &until}
		assert.True(t, code.IsExpired(now))
	})
}
