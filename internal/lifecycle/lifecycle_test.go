// AngelaMos | 2026
// lifecycle_test.go

package lifecycle

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rentloop/rentloop-api/internal/core"
)

func newTestMachine() *Machine {
	return New("application", map[string][]string{
		"pending":     {"shortlisted", "rejected", "accepted", "cancelled"},
		"shortlisted": {"accepted", "rejected", "cancelled"},
	})
}

func TestMachineCanTransition(t *testing.T) {
	m := newTestMachine()

	assert.True(t, m.CanTransition("pending", "shortlisted"))
	assert.True(t, m.CanTransition("pending", "cancelled"))
	assert.True(t, m.CanTransition("shortlisted", "accepted"))

	assert.False(t, m.CanTransition("shortlisted", "pending"))
	assert.False(t, m.CanTransition("accepted", "rejected"))
	assert.False(t, m.CanTransition("cancelled", "pending"))
}

func TestMachineTerminalStates(t *testing.T) {
	m := newTestMachine()

	assert.True(t, m.IsTerminal("accepted"))
	assert.True(t, m.IsTerminal("rejected"))
	assert.True(t, m.IsTerminal("cancelled"))
	assert.False(t, m.IsTerminal("pending"))
	assert.False(t, m.IsTerminal("shortlisted"))
}

func TestMachineTransitionErrors(t *testing.T) {
	m := newTestMachine()

	assert.NoError(t, m.Transition("pending", "accepted"))

	err := m.Transition("pending", "bogus")
	require.Error(t, err)
	assert.True(t, errors.Is(err, core.ErrInvalidInput))

	err = m.Transition("accepted", "rejected")
	require.Error(t, err)
	assert.True(t, errors.Is(err, core.ErrConflict))

	err = m.Transition("shortlisted", "pending")
	require.Error(t, err)
	assert.True(t, errors.Is(err, core.ErrConflict))
}

func TestMachineValidState(t *testing.T) {
	m := newTestMachine()

	for _, s := range []string{
		"pending", "shortlisted", "accepted", "rejected", "cancelled",
	} {
		assert.True(t, m.IsValidState(s), s)
	}
	assert.False(t, m.IsValidState("draft"))
}

func TestMachineTargetsFrom(t *testing.T) {
	m := newTestMachine()

	assert.Equal(
		t,
		[]string{"accepted", "cancelled", "rejected", "shortlisted"},
		m.TargetsFrom("pending"),
	)
	assert.Nil(t, m.TargetsFrom("accepted"))
}

func TestMachineFreeAssignment(t *testing.T) {
	m := New("property", map[string][]string{
		"active":     {"paused", "rented_out"},
		"paused":     {"active", "rented_out"},
		"rented_out": {"active", "paused"},
	})

	states := []string{"active", "paused", "rented_out"}
	for _, from := range states {
		for _, to := range states {
			if from == to {
				continue
			}
			assert.NoError(t, m.Transition(from, to))
		}
		assert.False(t, m.IsTerminal(from))
	}
}
