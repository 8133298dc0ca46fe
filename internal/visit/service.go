// AngelaMos | 2026
// service.go

package visit

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/rentloop/rentloop-api/internal/core"
	"github.com/rentloop/rentloop-api/internal/notify"
	"github.com/rentloop/rentloop-api/internal/policy"
	"github.com/rentloop/rentloop-api/internal/property"
)

type PropertyProvider interface {
	Get(ctx context.Context, id string) (*property.Property, error)
}

type ContactDirectory interface {
	GetContact(ctx context.Context, id string) (email, name string, err error)
}

type Service struct {
	repo     Repository
	props    PropertyProvider
	contacts ContactDirectory
	mailer   notify.Mailer
}

func NewService(
	repo Repository,
	props PropertyProvider,
	contacts ContactDirectory,
	mailer notify.Mailer,
) *Service {
	return &Service{
		repo:     repo,
		props:    props,
		contacts: contacts,
		mailer:   mailer,
	}
}

// Create schedules a visit request. The preferred time must be in the
// future at request time; the owner snapshot mirrors applications.
func (s *Service) Create(
	ctx context.Context,
	actor policy.Actor,
	propertyID string,
	req CreateVisitRequest,
) (*Visit, error) {
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

	if !p.IsActive() {
		return nil, core.ConflictError("listing is not accepting visits")
	}

	if !req.PreferredAt.After(time.Now()) {
		return nil, core.BadRequestError("preferred time must be in the future")
	}

	v := &Visit{
		ID:          uuid.New().String(),
		PropertyID:  propertyID,
		TenantID:    actor.ID,
		OwnerID:     p.OwnerID,
		PreferredAt: req.PreferredAt,
		Notes:       req.Notes,
		Status:      StatusPending,
	}

	if err := s.repo.Create(ctx, v); err != nil {
		return nil, err
	}

	s.notifyOwner(ctx, v, p.Title)

	return v, nil
}

func (s *Service) Get(
	ctx context.Context,
	actor policy.Actor,
	id string,
) (*Visit, error) {
	v, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if actor.ID != v.TenantID && actor.ID != v.OwnerID && !actor.IsAdmin() {
		return nil, core.ForbiddenError("not a party to this visit request")
	}

	return v, nil
}

// UpdateStatus moves a visit through its lifecycle. The owner drives
// every status; the requesting tenant may additionally cancel.
func (s *Service) UpdateStatus(
	ctx context.Context,
	actor policy.Actor,
	id, status string,
) (*Visit, error) {
	v, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := policy.CanMutate(actor, v.OwnerID); err != nil {
		if status != StatusCancelled || actor.ID != v.TenantID {
			return nil, err
		}
	}

	if err := StatusMachine.Transition(v.Status, status); err != nil {
		return nil, err
	}

	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}

	v.Status = status
	s.notifyTenant(ctx, v)

	return v, nil
}

func (s *Service) ListMine(
	ctx context.Context,
	actor policy.Actor,
	params ListParams,
) ([]Visit, int, error) {
	if err := policy.RequireAuthenticated(actor); err != nil {
		return nil, 0, err
	}

	return s.repo.ListByTenant(ctx, actor.ID, params)
}

func (s *Service) ListReceived(
	ctx context.Context,
	actor policy.Actor,
	params ListParams,
) ([]Visit, int, error) {
	if err := policy.RequireOwnerRole(actor); err != nil {
		return nil, 0, err
	}

	return s.repo.ListByOwner(ctx, actor.ID, params)
}

func (s *Service) notifyTenant(ctx context.Context, v *Visit) {
	if s.mailer == nil {
		return
	}

	email, name, err := s.contacts.GetContact(ctx, v.TenantID)
	if err != nil {
		slog.Warn("visit status notification skipped",
			"visit_id", v.ID,
			"error", err,
		)
		return
	}

	title := v.PropertyID
	if p, perr := s.props.Get(ctx, v.PropertyID); perr == nil {
		title = p.Title
	}

	if err := s.mailer.SendVisitStatusChanged(
		ctx, email, name, title, v.Status,
	); err != nil {
		slog.Warn("visit status notification failed",
			"visit_id", v.ID,
			"error", err,
		)
	}
}

func (s *Service) notifyOwner(
	ctx context.Context,
	v *Visit,
	propertyTitle string,
) {
	if s.mailer == nil {
		return
	}

	email, name, err := s.contacts.GetContact(ctx, v.OwnerID)
	if err != nil {
		slog.Warn("visit notification skipped",
			"visit_id", v.ID,
			"error", err,
		)
		return
	}

	if err := s.mailer.SendVisitRequested(
		ctx, email, name, propertyTitle, v.PreferredAt,
	); err != nil {
		slog.Warn("visit notification failed",
			"visit_id", v.ID,
			"error", err,
		)
	}
}
