// AngelaMos | 2026
// service.go

package agreement

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"github.com/rentloop/rentloop-api/internal/application"
	"github.com/rentloop/rentloop-api/internal/core"
	"github.com/rentloop/rentloop-api/internal/notify"
	"github.com/rentloop/rentloop-api/internal/policy"
	"github.com/rentloop/rentloop-api/internal/property"
)

type ApplicationProvider interface {
	GetAccepted(ctx context.Context, id string) (*application.Application, error)
}

type PropertyProvider interface {
	Get(ctx context.Context, id string) (*property.Property, error)
}

type ContactDirectory interface {
	GetContact(ctx context.Context, id string) (email, name string, err error)
}

type Service struct {
	repo     Repository
	apps     ApplicationProvider
	props    PropertyProvider
	contacts ContactDirectory
	mailer   notify.Mailer
}

func NewService(
	repo Repository,
	apps ApplicationProvider,
	props PropertyProvider,
	contacts ContactDirectory,
	mailer notify.Mailer,
) *Service {
	return &Service{
		repo:     repo,
		apps:     apps,
		props:    props,
		contacts: contacts,
		mailer:   mailer,
	}
}

// Create drafts an agreement from an accepted application. Only the
// property owner can draft, and one agreement exists per application.
func (s *Service) Create(
	ctx context.Context,
	actor policy.Actor,
	req CreateAgreementRequest,
) (*Agreement, error) {
	if err := policy.RequireOwnerRole(actor); err != nil {
		return nil, err
	}

	app, err := s.apps.GetAccepted(ctx, req.ApplicationID)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return nil, core.ConflictError(
				"agreement requires an accepted application",
			)
		}
		return nil, err
	}

	if err := policy.CanMutate(actor, app.OwnerID); err != nil {
		return nil, err
	}

	if !req.EndDate.After(req.StartDate) {
		return nil, core.BadRequestError("end date must be after start date")
	}

	a := &Agreement{
		ID:              uuid.New().String(),
		ApplicationID:   app.ID,
		PropertyID:      app.PropertyID,
		TenantID:        app.TenantID,
		OwnerID:         app.OwnerID,
		StartDate:       req.StartDate,
		EndDate:         req.EndDate,
		MonthlyRent:     req.MonthlyRent,
		SecurityDeposit: req.SecurityDeposit,
		LockInMonths:    req.LockInMonths,
		Terms:           req.Terms,
		Status:          StatusDraft,
	}

	err = s.repo.Create(ctx, a)
	if errors.Is(err, core.ErrDuplicateKey) {
		return nil, core.ConflictError(
			"an agreement already exists for this application",
		)
	}
	if err != nil {
		return nil, err
	}

	s.notifyTenant(ctx, a)

	return a, nil
}

func (s *Service) Get(
	ctx context.Context,
	actor policy.Actor,
	id string,
) (*Agreement, error) {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !a.IsParty(actor.ID) && !actor.IsAdmin() {
		return nil, core.ForbiddenError("not a party to this agreement")
	}

	return a, nil
}

// Sign records the actor's signature. Drafts activate once both parties
// have signed. A fully signed draft means a previous activation write
// failed partway, so a repeat sign retries the activation rather than
// reporting a duplicate signature.
func (s *Service) Sign(
	ctx context.Context,
	actor policy.Actor,
	id string,
) (*Agreement, error) {
	a, err := s.Get(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	if a.Status != StatusDraft {
		return nil, core.ConflictError("only a draft agreement can be signed")
	}

	var column string
	switch actor.ID {
	case a.TenantID:
		if a.SignedByTenant {
			return s.resumeActivation(ctx, a)
		}
		column = "signed_by_tenant"
		a.SignedByTenant = true
	case a.OwnerID:
		if a.SignedByOwner {
			return s.resumeActivation(ctx, a)
		}
		column = "signed_by_owner"
		a.SignedByOwner = true
	default:
		return nil, core.ForbiddenError("only a party can sign")
	}

	if err := s.repo.SetSigned(ctx, id, column); err != nil {
		return nil, err
	}

	if a.FullySigned() {
		return s.activate(ctx, a)
	}

	return a, nil
}

func (s *Service) resumeActivation(
	ctx context.Context,
	a *Agreement,
) (*Agreement, error) {
	if !a.FullySigned() {
		return nil, core.ConflictError("you already signed this agreement")
	}
	return s.activate(ctx, a)
}

func (s *Service) activate(
	ctx context.Context,
	a *Agreement,
) (*Agreement, error) {
	if err := StatusMachine.Transition(a.Status, StatusActive); err != nil {
		return nil, err
	}

	if err := s.repo.UpdateStatus(ctx, a.ID, StatusActive); err != nil {
		return nil, err
	}

	a.Status = StatusActive
	return a, nil
}

// UpdateStatus closes out an agreement. Termination is open to either
// party; completion is owner-side.
func (s *Service) UpdateStatus(
	ctx context.Context,
	actor policy.Actor,
	id, status string,
) (*Agreement, error) {
	a, err := s.Get(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	if status == StatusCompleted {
		if err := policy.CanMutate(actor, a.OwnerID); err != nil {
			return nil, err
		}
	}

	if err := StatusMachine.Transition(a.Status, status); err != nil {
		return nil, err
	}

	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}

	a.Status = status
	return a, nil
}

func (s *Service) ListMine(
	ctx context.Context,
	actor policy.Actor,
	params ListParams,
) ([]Agreement, int, error) {
	if err := policy.RequireAuthenticated(actor); err != nil {
		return nil, 0, err
	}

	return s.repo.ListByParty(ctx, actor.ID, params)
}

func (s *Service) notifyTenant(ctx context.Context, a *Agreement) {
	if s.mailer == nil {
		return
	}

	title := a.PropertyID
	if p, err := s.props.Get(ctx, a.PropertyID); err == nil {
		title = p.Title
	}

	email, name, err := s.contacts.GetContact(ctx, a.TenantID)
	if err != nil {
		slog.Warn("agreement notification skipped",
			"agreement_id", a.ID,
			"error", err,
		)
		return
	}

	if err := s.mailer.SendAgreementReady(ctx, email, name, title); err != nil {
		slog.Warn("agreement notification failed",
			"agreement_id", a.ID,
			"error", err,
		)
	}
}
