// AngelaMos | 2026
// lifecycle.go

// Package lifecycle provides a transition-table state machine. Each
// domain package declares its legal transitions up front instead of
// scattering status checks through service code.
package lifecycle

import (
	"fmt"
	"sort"

	"github.com/rentloop/rentloop-api/internal/core"
)

type Machine struct {
	name        string
	transitions map[string]map[string]struct{}
	states      map[string]struct{}
}

// New builds a machine from a from-state to allowed-targets table.
// States that appear only as targets are terminal.
func New(name string, table map[string][]string) *Machine {
	m := &Machine{
		name:        name,
		transitions: make(map[string]map[string]struct{}, len(table)),
		states:      make(map[string]struct{}),
	}

	for from, targets := range table {
		m.states[from] = struct{}{}
		set := make(map[string]struct{}, len(targets))
		for _, to := range targets {
			set[to] = struct{}{}
			m.states[to] = struct{}{}
		}
		m.transitions[from] = set
	}

	return m
}

func (m *Machine) IsValidState(state string) bool {
	_, ok := m.states[state]
	return ok
}

// IsTerminal reports whether no transition leaves the state.
func (m *Machine) IsTerminal(state string) bool {
	targets, ok := m.transitions[state]
	return !ok || len(targets) == 0
}

func (m *Machine) CanTransition(from, to string) bool {
	targets, ok := m.transitions[from]
	if !ok {
		return false
	}
	_, ok = targets[to]
	return ok
}

// Transition validates a status change. Unknown target states map to
// BadRequest; legal states reached via an illegal edge map to Conflict,
// including any attempt to leave a terminal state.
func (m *Machine) Transition(from, to string) error {
	if !m.IsValidState(to) {
		return core.BadRequestError(
			fmt.Sprintf("invalid %s status %q", m.name, to),
		)
	}

	if !m.CanTransition(from, to) {
		return core.ConflictError(
			fmt.Sprintf("cannot move %s from %q to %q", m.name, from, to),
		)
	}

	return nil
}

// TargetsFrom returns the allowed targets for a state, sorted for
// stable error messages and API output.
func (m *Machine) TargetsFrom(state string) []string {
	targets, ok := m.transitions[state]
	if !ok {
		return nil
	}

	out := make([]string, 0, len(targets))
	for to := range targets {
		out = append(out, to)
	}
	sort.Strings(out)
	return out
}
