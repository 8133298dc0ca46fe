// AngelaMos | 2026
// policy_test.go

package policy

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rentloop/rentloop-api/internal/core"
)

func TestRequireAuthenticated(t *testing.T) {
	assert.NoError(t, RequireAuthenticated(Actor{ID: "u1", Role: RoleTenant}))

	err := RequireAuthenticated(Actor{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, core.ErrUnauthorized))
}

func TestRequireOwnerRole(t *testing.T) {
	tests := []struct {
		name    string
		actor   Actor
		wantErr error
	}{
		{"owner passes", Actor{ID: "u1", Role: RoleOwner}, nil},
		{"admin passes", Actor{ID: "u1", Role: RoleAdmin}, nil},
		{"tenant forbidden", Actor{ID: "u1", Role: RoleTenant}, core.ErrForbidden},
		{"anonymous unauthorized", Actor{}, core.ErrUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := RequireOwnerRole(tt.actor)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.wantErr))
		})
	}
}

func TestCanMutate(t *testing.T) {
	owner := Actor{ID: "owner-1", Role: RoleOwner}

	assert.NoError(t, CanMutate(owner, "owner-1"))

	err := CanMutate(owner, "owner-2")
	require.Error(t, err)
	assert.True(t, errors.Is(err, core.ErrForbidden))

	admin := Actor{ID: "admin-1", Role: RoleAdmin}
	assert.NoError(t, CanMutate(admin, "owner-2"))

	err = CanMutate(Actor{}, "owner-1")
	require.Error(t, err)
	assert.True(t, errors.Is(err, core.ErrUnauthorized))
}

func TestRequireNoSelfDealing(t *testing.T) {
	tenant := Actor{ID: "u1", Role: RoleTenant}

	assert.NoError(t, RequireNoSelfDealing(tenant, "someone-else"))

	err := RequireNoSelfDealing(tenant, "u1")
	require.Error(t, err)
	assert.True(t, errors.Is(err, core.ErrInvalidInput))
}
