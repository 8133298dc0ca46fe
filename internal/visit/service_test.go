// AngelaMos | 2026
// service_test.go

package visit

import (
	"context"
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
	byID map[string]*Visit
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{byID: make(map[string]*Visit)}
}

func (f *fakeRepo) Create(_ context.Context, v *Visit) error {
	f.byID[v.ID] = v
	return nil
}

func (f *fakeRepo) GetByID(_ context.Context, id string) (*Visit, error) {
	v, ok := f.byID[id]
	if !ok {
		return nil, core.ErrNotFound
	}
	cp := *v
	return &cp, nil
}

func (f *fakeRepo) UpdateStatus(_ context.Context, id, status string) error {
	v, ok := f.byID[id]
	if !ok {
		return core.ErrNotFound
	}
	v.Status = status
	return nil
}

func (f *fakeRepo) ListByTenant(
	_ context.Context, tenantID string, _ ListParams,
) ([]Visit, int, error) {
	var out []Visit
	for _, v := range f.byID {
		if v.TenantID == tenantID {
			out = append(out, *v)
		}
	}
	return out, len(out), nil
}

func (f *fakeRepo) ListByOwner(
	_ context.Context, ownerID string, _ ListParams,
) ([]Visit, int, error) {
	var out []Visit
	for _, v := range f.byID {
		if v.OwnerID == ownerID {
			out = append(out, *v)
		}
	}
	return out, len(out), nil
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

type recordingMailer struct {
	notify.NoopMailer
	visitStatuses []string
}

func (m *recordingMailer) SendVisitStatusChanged(
	_ context.Context,
	_, _, _, status string,
) error {
	m.visitStatuses = append(m.visitStatuses, status)
	return nil
}

func newTestService(repo *fakeRepo, props *fakeProps) *Service {
	return NewService(repo, props, fakeContacts{}, notify.NoopMailer{})
}

func activeListing(id, ownerID string) *property.Property {
	return &property.Property{
		ID:      id,
		OwnerID: ownerID,
		Title:   "Studio in the old town",
		Status:  property.StatusActive,
	}
}

func TestCreateVisit(t *testing.T) {
	repo := newFakeRepo()
	props := &fakeProps{listings: map[string]*property.Property{
		"prop-1": activeListing("prop-1", "owner-1"),
	}}
	svc := newTestService(repo, props)

	tenant := policy.Actor{ID: "tenant-1", Role: policy.RoleTenant}
	v, err := svc.Create(context.Background(), tenant, "prop-1",
		CreateVisitRequest{
			PreferredAt: time.Now().Add(48 * time.Hour),
			Notes:       "Weekend afternoon works best.",
		})

	require.NoError(t, err)
	assert.Equal(t, StatusPending, v.Status)
	assert.Equal(t, "owner-1", v.OwnerID)
}

func TestCreateVisitPastPreferredTime(t *testing.T) {
	repo := newFakeRepo()
	props := &fakeProps{listings: map[string]*property.Property{
		"prop-1": activeListing("prop-1", "owner-1"),
	}}
	svc := newTestService(repo, props)

	tenant := policy.Actor{ID: "tenant-1", Role: policy.RoleTenant}
	_, err := svc.Create(context.Background(), tenant, "prop-1",
		CreateVisitRequest{
			PreferredAt: time.Now().Add(-time.Hour),
		})

	assert.ErrorIs(t, err, core.ErrInvalidInput)
}

func TestCreateVisitOwnListing(t *testing.T) {
	repo := newFakeRepo()
	props := &fakeProps{listings: map[string]*property.Property{
		"prop-1": activeListing("prop-1", "owner-1"),
	}}
	svc := newTestService(repo, props)

	owner := policy.Actor{ID: "owner-1", Role: policy.RoleOwner}
	_, err := svc.Create(context.Background(), owner, "prop-1",
		CreateVisitRequest{
			PreferredAt: time.Now().Add(48 * time.Hour),
		})

	assert.ErrorIs(t, err, core.ErrInvalidInput)
}

func seedVisit(repo *fakeRepo, status string) *Visit {
	v := &Visit{
		ID:          "visit-1",
		PropertyID:  "prop-1",
		TenantID:    "tenant-1",
		OwnerID:     "owner-1",
		PreferredAt: time.Now().Add(24 * time.Hour),
		Status:      status,
	}
	repo.byID[v.ID] = v
	return v
}

func TestVisitAcceptThenComplete(t *testing.T) {
	repo := newFakeRepo()
	seedVisit(repo, StatusPending)
	svc := newTestService(repo, &fakeProps{})

	owner := policy.Actor{ID: "owner-1", Role: policy.RoleOwner}

	v, err := svc.UpdateStatus(
		context.Background(), owner, "visit-1", StatusAccepted)
	require.NoError(t, err)
	assert.Equal(t, StatusAccepted, v.Status)

	v, err = svc.UpdateStatus(
		context.Background(), owner, "visit-1", StatusCompleted)
	require.NoError(t, err)
	assert.Equal(t, StatusCompleted, v.Status)
}

func TestVisitCannotCompleteFromPending(t *testing.T) {
	repo := newFakeRepo()
	seedVisit(repo, StatusPending)
	svc := newTestService(repo, &fakeProps{})

	owner := policy.Actor{ID: "owner-1", Role: policy.RoleOwner}
	_, err := svc.UpdateStatus(
		context.Background(), owner, "visit-1", StatusCompleted)

	assert.ErrorIs(t, err, core.ErrConflict)
}

func TestVisitTenantCancelsAccepted(t *testing.T) {
	repo := newFakeRepo()
	seedVisit(repo, StatusAccepted)
	svc := newTestService(repo, &fakeProps{})

	tenant := policy.Actor{ID: "tenant-1", Role: policy.RoleTenant}
	v, err := svc.UpdateStatus(
		context.Background(), tenant, "visit-1", StatusCancelled)

	require.NoError(t, err)
	assert.Equal(t, StatusCancelled, v.Status)
}

func TestVisitOwnerCancels(t *testing.T) {
	repo := newFakeRepo()
	seedVisit(repo, StatusPending)
	svc := newTestService(repo, &fakeProps{})

	owner := policy.Actor{ID: "owner-1", Role: policy.RoleOwner}
	v, err := svc.UpdateStatus(
		context.Background(), owner, "visit-1", StatusCancelled)

	require.NoError(t, err)
	assert.Equal(t, StatusCancelled, v.Status)
}

func TestVisitStrangerCannotCancel(t *testing.T) {
	repo := newFakeRepo()
	seedVisit(repo, StatusPending)
	svc := newTestService(repo, &fakeProps{})

	stranger := policy.Actor{ID: "tenant-2", Role: policy.RoleTenant}
	_, err := svc.UpdateStatus(
		context.Background(), stranger, "visit-1", StatusCancelled)

	assert.ErrorIs(t, err, core.ErrForbidden)
}

func TestVisitStatusChangeNotifiesTenant(t *testing.T) {
	repo := newFakeRepo()
	seedVisit(repo, StatusPending)
	mailer := &recordingMailer{}
	svc := NewService(repo, &fakeProps{}, fakeContacts{}, mailer)

	owner := policy.Actor{ID: "owner-1", Role: policy.RoleOwner}
	_, err := svc.UpdateStatus(
		context.Background(), owner, "visit-1", StatusAccepted)

	require.NoError(t, err)
	assert.Equal(t, []string{StatusAccepted}, mailer.visitStatuses)
}
