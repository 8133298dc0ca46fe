// AngelaMos | 2026
// service.go

package favorite

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/rentloop/rentloop-api/internal/core"
	"github.com/rentloop/rentloop-api/internal/policy"
	"github.com/rentloop/rentloop-api/internal/property"
)

// PropertyProvider resolves listings for saving and display.
type PropertyProvider interface {
	Get(ctx context.Context, id string) (*property.Property, error)
	GetByIDs(ctx context.Context, ids []string) ([]property.Property, error)
}

type Service struct {
	repo  Repository
	props PropertyProvider
}

func NewService(repo Repository, props PropertyProvider) *Service {
	return &Service{repo: repo, props: props}
}

// Add saves a listing for the actor. Owners cannot favorite their own
// listing, and saving twice is a conflict.
func (s *Service) Add(
	ctx context.Context,
	actor policy.Actor,
	propertyID string,
) (*Favorite, error) {
	if err := policy.RequireAuthenticated(actor); err != nil {
		return nil, err
	}

	p, err := s.props.Get(ctx, propertyID)
	if err != nil {
		return nil, err
	}

	if err := policy.RequireNoSelfDealing(actor, p.OwnerID); err != nil {
		return nil, err
	}

	fav := &Favorite{
		ID:         uuid.New().String(),
		TenantID:   actor.ID,
		PropertyID: propertyID,
	}

	if err := s.repo.Create(ctx, fav); err != nil {
		if errors.Is(err, core.ErrDuplicateKey) {
			return nil, core.ConflictError("property already in favorites")
		}
		return nil, err
	}

	return fav, nil
}

func (s *Service) Remove(
	ctx context.Context,
	actor policy.Actor,
	propertyID string,
) error {
	if err := policy.RequireAuthenticated(actor); err != nil {
		return err
	}

	return s.repo.Delete(ctx, actor.ID, propertyID)
}

// ListMine returns the actor's saved listings, most recent first.
func (s *Service) ListMine(
	ctx context.Context,
	actor policy.Actor,
	page, pageSize int,
) ([]property.Property, int, error) {
	if err := policy.RequireAuthenticated(actor); err != nil {
		return nil, 0, err
	}

	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	ids, total, err := s.repo.ListPropertyIDsByTenant(
		ctx,
		actor.ID,
		pageSize,
		(page-1)*pageSize,
	)
	if err != nil {
		return nil, 0, err
	}

	properties, err := s.props.GetByIDs(ctx, ids)
	if err != nil {
		return nil, 0, err
	}

	return properties, total, nil
}
