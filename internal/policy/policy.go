// AngelaMos | 2026
// policy.go

// Package policy holds the capability checks shared by every service.
// Checks run in a fixed order: authentication, role gate, ownership
// gate, self-dealing guard. Handlers never duplicate these rules.
package policy

import (
	"github.com/rentloop/rentloop-api/internal/core"
)

const (
	RoleTenant = "tenant"
	RoleOwner  = "owner"
	RoleAdmin  = "admin"
)

// Actor is the authenticated principal derived from JWT claims.
type Actor struct {
	ID   string
	Role string
}

func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}

func RequireAuthenticated(actor Actor) error {
	if actor.ID == "" {
		return core.UnauthorizedError("authentication required")
	}
	return nil
}

// RequireOwnerRole gates listing-management actions. Admins pass.
func RequireOwnerRole(actor Actor) error {
	if err := RequireAuthenticated(actor); err != nil {
		return err
	}
	if actor.Role != RoleOwner && actor.Role != RoleAdmin {
		return core.ForbiddenError("owner role required")
	}
	return nil
}

// CanMutate checks that the actor owns the resource. Admins bypass
// the ownership gate but still need to be authenticated.
func CanMutate(actor Actor, resourceOwnerID string) error {
	if err := RequireAuthenticated(actor); err != nil {
		return err
	}
	if actor.IsAdmin() {
		return nil
	}
	if actor.ID != resourceOwnerID {
		return core.ForbiddenError("not the resource owner")
	}
	return nil
}

// RequireNoSelfDealing rejects acting on one's own resource, e.g. an
// owner favoriting or applying to their own listing.
func RequireNoSelfDealing(actor Actor, resourceOwnerID string) error {
	if actor.ID == resourceOwnerID {
		return core.BadRequestError("cannot perform this action on your own resource")
	}
	return nil
}
