// AngelaMos | 2026
// service.go

package review

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/rentloop/rentloop-api/internal/core"
	"github.com/rentloop/rentloop-api/internal/policy"
	"github.com/rentloop/rentloop-api/internal/property"
)

type PropertyProvider interface {
	Get(ctx context.Context, id string) (*property.Property, error)
}

type UserChecker interface {
	Exists(ctx context.Context, id string) (bool, error)
}

type Service struct {
	repo  Repository
	props PropertyProvider
	users UserChecker
}

func NewService(
	repo Repository,
	props PropertyProvider,
	users UserChecker,
) *Service {
	return &Service{repo: repo, props: props, users: users}
}

// Create records a review against exactly one target. One review per
// author per target; the database enforces the uniqueness.
func (s *Service) Create(
	ctx context.Context,
	actor policy.Actor,
	req CreateReviewRequest,
) (*Review, error) {
	if err := policy.RequireAuthenticated(actor); err != nil {
		return nil, err
	}

	hasProperty := req.TargetPropertyID != nil && *req.TargetPropertyID != ""
	hasUser := req.TargetUserID != nil && *req.TargetUserID != ""

	if hasProperty == hasUser {
		return nil, core.BadRequestError(
			"review must target exactly one of a property or a user",
		)
	}

	if hasProperty {
		p, err := s.props.Get(ctx, *req.TargetPropertyID)
		if err != nil {
			return nil, err
		}

		if err := policy.RequireNoSelfDealing(actor, p.OwnerID); err != nil {
			return nil, core.BadRequestError("cannot review your own listing")
		}
	}

	if hasUser {
		if err := policy.RequireNoSelfDealing(
			actor, *req.TargetUserID,
		); err != nil {
			return nil, core.BadRequestError("cannot review yourself")
		}

		exists, err := s.users.Exists(ctx, *req.TargetUserID)
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, core.NotFoundError("user not found")
		}
	}

	rev := &Review{
		ID:               uuid.New().String(),
		AuthorID:         actor.ID,
		TargetPropertyID: req.TargetPropertyID,
		TargetUserID:     req.TargetUserID,
		Rating:           req.Rating,
		Comment:          req.Comment,
	}

	err := s.repo.Create(ctx, rev)
	if errors.Is(err, core.ErrDuplicateKey) {
		return nil, core.ConflictError("you already reviewed this target")
	}
	if err != nil {
		return nil, err
	}

	return rev, nil
}

// Delete removes a review. The author or an admin may delete.
func (s *Service) Delete(
	ctx context.Context,
	actor policy.Actor,
	id string,
) error {
	rev, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := policy.CanMutate(actor, rev.AuthorID); err != nil {
		return err
	}

	return s.repo.Delete(ctx, id)
}

func (s *Service) ListForProperty(
	ctx context.Context,
	propertyID string,
	params ListParams,
) ([]Review, int, error) {
	if _, err := s.props.Get(ctx, propertyID); err != nil {
		return nil, 0, err
	}

	return s.repo.ListByProperty(ctx, propertyID, params)
}

func (s *Service) ListForUser(
	ctx context.Context,
	userID string,
	params ListParams,
) ([]Review, int, error) {
	exists, err := s.users.Exists(ctx, userID)
	if err != nil {
		return nil, 0, err
	}
	if !exists {
		return nil, 0, core.NotFoundError("user not found")
	}

	return s.repo.ListByUser(ctx, userID, params)
}

func (s *Service) PropertySummary(
	ctx context.Context,
	propertyID string,
) (*RatingSummary, error) {
	return s.repo.SummaryForProperty(ctx, propertyID)
}

func (s *Service) UserSummary(
	ctx context.Context,
	userID string,
) (*RatingSummary, error) {
	return s.repo.SummaryForUser(ctx, userID)
}
