// AngelaMos | 2026
// service.go

package application

import (
	"context"
	"errors"
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

// ContactDirectory resolves notification recipients.
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

// Create submits an application. The owner field snapshots the listing
// owner at submission time so later ownership changes don't reroute
// in-flight applications.
func (s *Service) Create(
	ctx context.Context,
	actor policy.Actor,
	propertyID string,
	req CreateApplicationRequest,
) (*Application, error) {
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
		return nil, core.ConflictError("listing is not accepting applications")
	}

	if beforeToday(req.MoveInDate) {
		return nil, core.BadRequestError("move-in date cannot be in the past")
	}

	app := &Application{
		ID:                 uuid.New().String(),
		PropertyID:         propertyID,
		TenantID:           actor.ID,
		OwnerID:            p.OwnerID,
		Message:            req.Message,
		MonthlyRentOffered: req.MonthlyRentOffered,
		MoveInDate:         req.MoveInDate,
		Status:             StatusPending,
	}

	if err := s.repo.Create(ctx, app); err != nil {
		if errors.Is(err, core.ErrDuplicateKey) {
			return nil, core.ConflictError(
				"you already have an open application for this listing",
			)
		}
		return nil, err
	}

	s.notifyOwner(ctx, app, p.Title)

	return app, nil
}

func (s *Service) Get(
	ctx context.Context,
	actor policy.Actor,
	id string,
) (*Application, error) {
	app, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if actor.ID != app.TenantID && actor.ID != app.OwnerID && !actor.IsAdmin() {
		return nil, core.ForbiddenError("not a party to this application")
	}

	return app, nil
}

// GetAccepted loads an application only if it has been accepted.
func (s *Service) GetAccepted(
	ctx context.Context,
	id string,
) (*Application, error) {
	return s.repo.GetAcceptedByID(ctx, id)
}

// UpdateStatus moves an application through its lifecycle. The listing
// owner drives every status; the applicant may additionally cancel.
func (s *Service) UpdateStatus(
	ctx context.Context,
	actor policy.Actor,
	id, status string,
) (*Application, error) {
	app, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := policy.CanMutate(actor, app.OwnerID); err != nil {
		if status != StatusCancelled || actor.ID != app.TenantID {
			return nil, err
		}
	}

	if err := StatusMachine.Transition(app.Status, status); err != nil {
		return nil, err
	}

	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}

	app.Status = status
	s.notifyTenant(ctx, app)

	return app, nil
}

func (s *Service) ListMine(
	ctx context.Context,
	actor policy.Actor,
	params ListParams,
) ([]Application, int, error) {
	if err := policy.RequireAuthenticated(actor); err != nil {
		return nil, 0, err
	}

	return s.repo.ListByTenant(ctx, actor.ID, params)
}

func (s *Service) ListReceived(
	ctx context.Context,
	actor policy.Actor,
	params ListParams,
) ([]Application, int, error) {
	if err := policy.RequireOwnerRole(actor); err != nil {
		return nil, 0, err
	}

	return s.repo.ListByOwner(ctx, actor.ID, params)
}

func (s *Service) notifyOwner(
	ctx context.Context,
	app *Application,
	propertyTitle string,
) {
	if s.mailer == nil {
		return
	}

	email, name, err := s.contacts.GetContact(ctx, app.OwnerID)
	if err != nil {
		slog.Warn("application notification skipped",
			"application_id", app.ID,
			"error", err,
		)
		return
	}

	_, tenantName, err := s.contacts.GetContact(ctx, app.TenantID)
	if err != nil {
		tenantName = "A tenant"
	}

	if err := s.mailer.SendApplicationReceived(
		ctx, email, name, propertyTitle, tenantName,
	); err != nil {
		slog.Warn("application notification failed",
			"application_id", app.ID,
			"error", err,
		)
	}
}

func (s *Service) notifyTenant(ctx context.Context, app *Application) {
	if s.mailer == nil {
		return
	}

	email, name, err := s.contacts.GetContact(ctx, app.TenantID)
	if err != nil {
		slog.Warn("application status notification skipped",
			"application_id", app.ID,
			"error", err,
		)
		return
	}

	title := app.PropertyID
	if p, perr := s.props.Get(ctx, app.PropertyID); perr == nil {
		title = p.Title
	}

	if err := s.mailer.SendApplicationStatusChanged(
		ctx, email, name, title, app.Status,
	); err != nil {
		slog.Warn("application status notification failed",
			"application_id", app.ID,
			"error", err,
		)
	}
}

// beforeToday compares at day granularity in UTC.
func beforeToday(t time.Time) bool {
	now := time.Now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	moveIn := t.UTC()
	moveInDay := time.Date(
		moveIn.Year(), moveIn.Month(), moveIn.Day(), 0, 0, 0, 0, time.UTC,
	)
	return moveInDay.Before(today)
}
