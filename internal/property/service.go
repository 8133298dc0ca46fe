// AngelaMos | 2026
// service.go

package property

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/rentloop/rentloop-api/internal/policy"
	"github.com/rentloop/rentloop-api/internal/search"
)

// Indexer is the slice of the search layer used for listing sync and
// free-text queries. Nil when search is disabled.
type Indexer interface {
	IndexListing(doc search.ListingDocument) error
	DeleteListing(id string) error
	SearchIDs(q search.Query) ([]string, int64, error)
}

type Service struct {
	repo    Repository
	indexer Indexer
}

func NewService(repo Repository, indexer Indexer) *Service {
	return &Service{repo: repo, indexer: indexer}
}

func (s *Service) Create(
	ctx context.Context,
	actor policy.Actor,
	req CreatePropertyRequest,
) (*Property, error) {
	if err := policy.RequireOwnerRole(actor); err != nil {
		return nil, err
	}

	p := &Property{
		ID:              uuid.New().String(),
		OwnerID:         actor.ID,
		Title:           req.Title,
		Description:     req.Description,
		PropertyType:    req.PropertyType,
		BHK:             req.BHK,
		Furnishing:      req.Furnishing,
		Rent:            req.Rent,
		SecurityDeposit: req.SecurityDeposit,
		Maintenance: Maintenance{
			Amount:   req.Maintenance.Amount,
			Included: req.Maintenance.Included,
		},
		BuiltUpArea:     req.BuiltUpArea,
		AvailableFrom:   req.AvailableFrom,
		MinLockInMonths: req.MinLockInMonths,
		AllowedTenants:  req.AllowedTenants,
		PetsAllowed:     req.PetsAllowed,
		SmokingAllowed:  req.SmokingAllowed,
		Location: Location{
			City:     req.Location.City,
			Area:     req.Location.Area,
			Landmark: req.Location.Landmark,
			Pincode:  req.Location.Pincode,
			Lat:      req.Location.Lat,
			Lng:      req.Location.Lng,
		},
		Amenities: req.Amenities,
		Images:    req.Images,
		Status:    StatusActive,
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}

	s.syncIndex(p)

	return p, nil
}

func (s *Service) Get(ctx context.Context, id string) (*Property, error) {
	return s.repo.GetByID(ctx, id)
}

//nolint:funlen // field-by-field patch application
func (s *Service) Update(
	ctx context.Context,
	actor policy.Actor,
	id string,
	req UpdatePropertyRequest,
) (*Property, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := policy.CanMutate(actor, p.OwnerID); err != nil {
		return nil, err
	}

	if req.Title != nil {
		p.Title = *req.Title
	}
	if req.Description != nil {
		p.Description = *req.Description
	}
	if req.PropertyType != nil {
		p.PropertyType = *req.PropertyType
	}
	if req.BHK != nil {
		p.BHK = *req.BHK
	}
	if req.Furnishing != nil {
		p.Furnishing = *req.Furnishing
	}
	if req.Rent != nil {
		p.Rent = *req.Rent
	}
	if req.SecurityDeposit != nil {
		p.SecurityDeposit = *req.SecurityDeposit
	}
	if req.Maintenance != nil {
		p.Maintenance = Maintenance{
			Amount:   req.Maintenance.Amount,
			Included: req.Maintenance.Included,
		}
	}
	if req.BuiltUpArea != nil {
		p.BuiltUpArea = *req.BuiltUpArea
	}
	if req.AvailableFrom != nil {
		p.AvailableFrom = *req.AvailableFrom
	}
	if req.MinLockInMonths != nil {
		p.MinLockInMonths = *req.MinLockInMonths
	}
	if req.AllowedTenants != nil {
		p.AllowedTenants = *req.AllowedTenants
	}
	if req.PetsAllowed != nil {
		p.PetsAllowed = *req.PetsAllowed
	}
	if req.SmokingAllowed != nil {
		p.SmokingAllowed = *req.SmokingAllowed
	}
	if req.Location != nil {
		p.Location = Location{
			City:     req.Location.City,
			Area:     req.Location.Area,
			Landmark: req.Location.Landmark,
			Pincode:  req.Location.Pincode,
			Lat:      req.Location.Lat,
			Lng:      req.Location.Lng,
		}
	}
	if req.Amenities != nil {
		p.Amenities = *req.Amenities
	}
	if req.Images != nil {
		p.Images = *req.Images
	}

	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}

	s.syncIndex(p)

	return p, nil
}

func (s *Service) UpdateStatus(
	ctx context.Context,
	actor policy.Actor,
	id, status string,
) (*Property, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := policy.CanMutate(actor, p.OwnerID); err != nil {
		return nil, err
	}

	if status == p.Status {
		return p, nil
	}

	if err := StatusMachine.Transition(p.Status, status); err != nil {
		return nil, err
	}

	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}

	p.Status = status
	s.syncIndex(p)

	return p, nil
}

// Delete pauses the listing. Nothing is removed from the database so
// existing applications and conversations keep their references.
func (s *Service) Delete(
	ctx context.Context,
	actor policy.Actor,
	id string,
) error {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := policy.CanMutate(actor, p.OwnerID); err != nil {
		return err
	}

	if p.Status == StatusPaused {
		return nil
	}

	if err := s.repo.UpdateStatus(ctx, id, StatusPaused); err != nil {
		return err
	}

	p.Status = StatusPaused
	s.syncIndex(p)

	return nil
}

func (s *Service) SetVerified(
	ctx context.Context,
	id string,
	verified bool,
) (*Property, error) {
	if err := s.repo.SetVerified(ctx, id, verified); err != nil {
		return nil, err
	}

	return s.repo.GetByID(ctx, id)
}

// List serves the public catalog. Only active listings are returned;
// free-text queries go through the search index when available.
func (s *Service) List(
	ctx context.Context,
	params ListPropertiesParams,
) ([]Property, int, error) {
	params.Status = StatusActive
	params.Normalize()

	if params.Query != "" && s.indexer != nil {
		return s.listViaSearch(ctx, params)
	}

	return s.repo.List(ctx, params)
}

func (s *Service) ListMine(
	ctx context.Context,
	actor policy.Actor,
	params ListPropertiesParams,
) ([]Property, int, error) {
	if err := policy.RequireAuthenticated(actor); err != nil {
		return nil, 0, err
	}

	params.OwnerID = actor.ID
	params.Query = ""
	return s.repo.List(ctx, params)
}

func (s *Service) listViaSearch(
	ctx context.Context,
	params ListPropertiesParams,
) ([]Property, int, error) {
	ids, total, err := s.indexer.SearchIDs(search.Query{
		Text:   params.Query,
		City:   params.City,
		Limit:  int64(params.PageSize),
		Offset: int64(params.Offset()),
	})
	if err != nil {
		return nil, 0, fmt.Errorf("search listings: %w", err)
	}

	properties, err := s.repo.ListByIDs(ctx, ids)
	if err != nil {
		return nil, 0, err
	}

	return properties, int(total), nil
}

// syncIndex mirrors the listing into the search index. Active listings
// are upserted, everything else is removed. Failures are logged only.
func (s *Service) syncIndex(p *Property) {
	if s.indexer == nil {
		return
	}

	var err error
	if p.Status == StatusActive {
		err = s.indexer.IndexListing(toListingDocument(p))
	} else {
		err = s.indexer.DeleteListing(p.ID)
	}

	if err != nil {
		slog.Warn("search index sync failed",
			"property_id", p.ID,
			"status", p.Status,
			"error", err,
		)
	}
}

func toListingDocument(p *Property) search.ListingDocument {
	return search.ListingDocument{
		ID:           p.ID,
		Title:        p.Title,
		Description:  p.Description,
		PropertyType: p.PropertyType,
		BHK:          p.BHK,
		Furnishing:   p.Furnishing,
		Rent:         p.Rent,
		City:         p.Location.City,
		Area:         p.Location.Area,
		Landmark:     p.Location.Landmark,
		Pincode:      p.Location.Pincode,
		Amenities:    p.Amenities,
		Status:       p.Status,
		CreatedAt:    p.CreatedAt.Unix(),
	}
}

// GetByIDs resolves listings in the given order. Used by favorites and
// other features that hold property references.
func (s *Service) GetByIDs(
	ctx context.Context,
	ids []string,
) ([]Property, error) {
	return s.repo.ListByIDs(ctx, ids)
}
