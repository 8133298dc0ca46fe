// AngelaMos | 2026
// service_test.go

package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rentloop/rentloop-api/internal/core"
	"github.com/rentloop/rentloop-api/internal/notify"
	"github.com/rentloop/rentloop-api/internal/policy"
	"github.com/rentloop/rentloop-api/internal/property"
)

type fakeRepo struct {
	byID      map[string]*Application
	created   []*Application
	createErr error
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{byID: make(map[string]*Application)}
}

func (f *fakeRepo) Create(_ context.Context, a *Application) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, a)
	f.byID[a.ID] = a
	return nil
}

func (f *fakeRepo) GetByID(_ context.Context, id string) (*Application, error) {
	a, ok := f.byID[id]
	if !ok {
		return nil, core.ErrNotFound
	}
	cp := *a
	return &cp, nil
}

func (f *fakeRepo) GetAcceptedByID(
	_ context.Context,
	id string,
) (*Application, error) {
	a, ok := f.byID[id]
	if !ok || a.Status != StatusAccepted {
		return nil, core.ErrNotFound
	}
	cp := *a
	return &cp, nil
}

func (f *fakeRepo) UpdateStatus(_ context.Context, id, status string) error {
	a, ok := f.byID[id]
	if !ok {
		return core.ErrNotFound
	}
	a.Status = status
	return nil
}

func (f *fakeRepo) ListByTenant(
	_ context.Context, tenantID string, _ ListParams,
) ([]Application, int, error) {
	var out []Application
	for _, a := range f.byID {
		if a.TenantID == tenantID {
			out = append(out, *a)
		}
	}
	return out, len(out), nil
}

func (f *fakeRepo) ListByOwner(
	_ context.Context, ownerID string, _ ListParams,
) ([]Application, int, error) {
	var out []Application
	for _, a := range f.byID {
		if a.OwnerID == ownerID {
			out = append(out, *a)
		}
	}
	return out, len(out), nil
}

func (f *fakeRepo) CountByStatus(
	_ context.Context,
) (map[string]int, error) {
	counts := make(map[string]int)
	for _, a := range f.byID {
		counts[a.Status]++
	}
	return counts, nil
}

type fakeProps struct {
	listings map[string]*property.Property
}

func (f *fakeProps) Get(
	_ context.Context,
	id string,
) (*property.Property, error) {
	p, ok := f.listings[id]
	if !ok {
		return nil, core.ErrNotFound
	}
	return p, nil
}

type fakeContacts struct{}

func (fakeContacts) GetContact(
	_ context.Context,
	_ string,
) (string, string, error) {
	return "owner@example.com", "Owner", nil
}

func newTestService(repo *fakeRepo, props *fakeProps) *Service {
	return NewService(repo, props, fakeContacts{}, notify.NoopMailer{})
}

func activeListing(id, ownerID string) *property.Property {
	return &property.Property{
		ID:      id,
		OwnerID: ownerID,
		Title:   "2BHK near the lake",
		Status:  property.StatusActive,
	}
}

func TestCreateApplication(t *testing.T) {
	repo := newFakeRepo()
	props := &fakeProps{listings: map[string]*property.Property{
		"prop-1": activeListing("prop-1", "owner-1"),
	}}
	svc := newTestService(repo, props)

	tenant := policy.Actor{ID: "tenant-1", Role: policy.RoleTenant}
	app, err := svc.Create(context.Background(), tenant, "prop-1",
		CreateApplicationRequest{
			Message:    "Looking to move in next month with my family.",
			MoveInDate: time.Now().AddDate(0, 1, 0),
		})

	require.NoError(t, err)
	assert.Equal(t, StatusPending, app.Status)
	assert.Equal(t, "owner-1", app.OwnerID)
	assert.Equal(t, "tenant-1", app.TenantID)
	require.Len(t, repo.created, 1)
}

func TestCreateApplicationOwnListing(t *testing.T) {
	repo := newFakeRepo()
	props := &fakeProps{listings: map[string]*property.Property{
		"prop-1": activeListing("prop-1", "owner-1"),
	}}
	svc := newTestService(repo, props)

	owner := policy.Actor{ID: "owner-1", Role: policy.RoleOwner}
	_, err := svc.Create(context.Background(), owner, "prop-1",
		CreateApplicationRequest{
			Message:    "Applying to my own place for some reason.",
			MoveInDate: time.Now().AddDate(0, 1, 0),
		})

	assert.ErrorIs(t, err, core.ErrInvalidInput)
	assert.Empty(t, repo.created)
}

func TestCreateApplicationInactiveListing(t *testing.T) {
	listing := activeListing("prop-1", "owner-1")
	listing.Status = property.StatusPaused

	repo := newFakeRepo()
	props := &fakeProps{listings: map[string]*property.Property{
		"prop-1": listing,
	}}
	svc := newTestService(repo, props)

	tenant := policy.Actor{ID: "tenant-1", Role: policy.RoleTenant}
	_, err := svc.Create(context.Background(), tenant, "prop-1",
		CreateApplicationRequest{
			Message:    "Is this listing still available by any chance?",
			MoveInDate: time.Now().AddDate(0, 1, 0),
		})

	assert.ErrorIs(t, err, core.ErrConflict)
}

func TestCreateApplicationPastMoveIn(t *testing.T) {
	repo := newFakeRepo()
	props := &fakeProps{listings: map[string]*property.Property{
		"prop-1": activeListing("prop-1", "owner-1"),
	}}
	svc := newTestService(repo, props)

	tenant := policy.Actor{ID: "tenant-1", Role: policy.RoleTenant}
	_, err := svc.Create(context.Background(), tenant, "prop-1",
		CreateApplicationRequest{
			Message:    "I would like to have moved in last week.",
			MoveInDate: time.Now().AddDate(0, 0, -7),
		})

	assert.ErrorIs(t, err, core.ErrInvalidInput)
}

func TestCreateApplicationDuplicate(t *testing.T) {
	repo := newFakeRepo()
	repo.createErr = core.ErrDuplicateKey
	props := &fakeProps{listings: map[string]*property.Property{
		"prop-1": activeListing("prop-1", "owner-1"),
	}}
	svc := newTestService(repo, props)

	tenant := policy.Actor{ID: "tenant-1", Role: policy.RoleTenant}
	_, err := svc.Create(context.Background(), tenant, "prop-1",
		CreateApplicationRequest{
			Message:    "Second application for the same listing here.",
			MoveInDate: time.Now().AddDate(0, 1, 0),
		})

	assert.ErrorIs(t, err, core.ErrConflict)
}

func seedApplication(repo *fakeRepo, status string) *Application {
	app := &Application{
		ID:         "app-1",
		PropertyID: "prop-1",
		TenantID:   "tenant-1",
		OwnerID:    "owner-1",
		Status:     status,
	}
	repo.byID[app.ID] = app
	return app
}

func TestUpdateStatusOwnerAccepts(t *testing.T) {
	repo := newFakeRepo()
	seedApplication(repo, StatusPending)
	svc := newTestService(repo, &fakeProps{})

	owner := policy.Actor{ID: "owner-1", Role: policy.RoleOwner}
	app, err := svc.UpdateStatus(
		context.Background(), owner, "app-1", StatusAccepted)

	require.NoError(t, err)
	assert.Equal(t, StatusAccepted, app.Status)
	assert.Equal(t, StatusAccepted, repo.byID["app-1"].Status)
}

func TestUpdateStatusTenantCancels(t *testing.T) {
	repo := newFakeRepo()
	seedApplication(repo, StatusShortlisted)
	svc := newTestService(repo, &fakeProps{})

	tenant := policy.Actor{ID: "tenant-1", Role: policy.RoleTenant}
	app, err := svc.UpdateStatus(
		context.Background(), tenant, "app-1", StatusCancelled)

	require.NoError(t, err)
	assert.Equal(t, StatusCancelled, app.Status)
}

func TestUpdateStatusOwnerCancels(t *testing.T) {
	repo := newFakeRepo()
	seedApplication(repo, StatusPending)
	svc := newTestService(repo, &fakeProps{})

	owner := policy.Actor{ID: "owner-1", Role: policy.RoleOwner}
	app, err := svc.UpdateStatus(
		context.Background(), owner, "app-1", StatusCancelled)

	require.NoError(t, err)
	assert.Equal(t, StatusCancelled, app.Status)
	assert.Equal(t, StatusCancelled, repo.byID["app-1"].Status)
}

func TestUpdateStatusTenantCannotAccept(t *testing.T) {
	repo := newFakeRepo()
	seedApplication(repo, StatusPending)
	svc := newTestService(repo, &fakeProps{})

	tenant := policy.Actor{ID: "tenant-1", Role: policy.RoleTenant}
	_, err := svc.UpdateStatus(
		context.Background(), tenant, "app-1", StatusAccepted)

	assert.ErrorIs(t, err, core.ErrForbidden)
}

func TestUpdateStatusOtherTenantCannotCancel(t *testing.T) {
	repo := newFakeRepo()
	seedApplication(repo, StatusPending)
	svc := newTestService(repo, &fakeProps{})

	stranger := policy.Actor{ID: "tenant-2", Role: policy.RoleTenant}
	_, err := svc.UpdateStatus(
		context.Background(), stranger, "app-1", StatusCancelled)

	assert.ErrorIs(t, err, core.ErrForbidden)
}

func TestUpdateStatusTerminalIsFinal(t *testing.T) {
	repo := newFakeRepo()
	seedApplication(repo, StatusRejected)
	svc := newTestService(repo, &fakeProps{})

	owner := policy.Actor{ID: "owner-1", Role: policy.RoleOwner}
	_, err := svc.UpdateStatus(
		context.Background(), owner, "app-1", StatusAccepted)

	assert.ErrorIs(t, err, core.ErrConflict)

	var appErr *core.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "CONFLICT", appErr.Code)
}

func TestGetRestrictedToParties(t *testing.T) {
	repo := newFakeRepo()
	seedApplication(repo, StatusPending)
	svc := newTestService(repo, &fakeProps{})

	stranger := policy.Actor{ID: "someone-else", Role: policy.RoleTenant}
	_, err := svc.Get(context.Background(), stranger, "app-1")
	assert.ErrorIs(t, err, core.ErrForbidden)

	admin := policy.Actor{ID: "admin-1", Role: policy.RoleAdmin}
	app, err := svc.Get(context.Background(), admin, "app-1")
	require.NoError(t, err)
	assert.Equal(t, "app-1", app.ID)
}
