// AngelaMos | 2026
// service_test.go

package agreement

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rentloop/rentloop-api/internal/application"
	"github.com/rentloop/rentloop-api/internal/core"
	"github.com/rentloop/rentloop-api/internal/notify"
	"github.com/rentloop/rentloop-api/internal/policy"
	"github.com/rentloop/rentloop-api/internal/property"
)

type fakeRepo struct {
	byID map[string]*Agreement

	failStatusUpdates int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{byID: make(map[string]*Agreement)}
}

func (f *fakeRepo) Create(_ context.Context, a *Agreement) error {
	for _, existing := range f.byID {
		if existing.ApplicationID == a.ApplicationID {
			return core.ErrDuplicateKey
		}
	}
	f.byID[a.ID] = a
	return nil
}

func (f *fakeRepo) GetByID(_ context.Context, id string) (*Agreement, error) {
	a, ok := f.byID[id]
	if !ok {
		return nil, core.ErrNotFound
	}
	cp := *a
	return &cp, nil
}

func (f *fakeRepo) SetSigned(_ context.Context, id, column string) error {
	a, ok := f.byID[id]
	if !ok {
		return core.ErrNotFound
	}
	switch column {
	case "signed_by_tenant":
		a.SignedByTenant = true
	case "signed_by_owner":
		a.SignedByOwner = true
	}
	return nil
}

func (f *fakeRepo) UpdateStatus(_ context.Context, id, status string) error {
	if f.failStatusUpdates > 0 {
		f.failStatusUpdates--
		return errors.New("connection reset")
	}
	a, ok := f.byID[id]
	if !ok {
		return core.ErrNotFound
	}
	a.Status = status
	return nil
}

func (f *fakeRepo) ListByParty(
	_ context.Context,
	userID string,
	_ ListParams,
) ([]Agreement, int, error) {
	var out []Agreement
	for _, a := range f.byID {
		if a.IsParty(userID) {
			out = append(out, *a)
		}
	}
	return out, len(out), nil
}

type fakeApps struct {
	accepted map[string]*application.Application
}

func (f *fakeApps) GetAccepted(
	_ context.Context,
	id string,
) (*application.Application, error) {
	a, ok := f.accepted[id]
	if !ok {
		return nil, core.ErrNotFound
	}
	return a, nil
}

type fakeProps struct{}

func (fakeProps) Get(
	_ context.Context,
	id string,
) (*property.Property, error) {
	return &property.Property{ID: id, Title: "Garden flat"}, nil
}

type fakeContacts struct{}

func (fakeContacts) GetContact(
	_ context.Context,
	_ string,
) (string, string, error) {
	return "tenant@example.com", "Tenant", nil
}

func newTestService(repo *fakeRepo, apps *fakeApps) *Service {
	return NewService(repo, apps, fakeProps{}, fakeContacts{}, notify.NoopMailer{})
}

func acceptedApplication(id string) *application.Application {
	return &application.Application{
		ID:         id,
		PropertyID: "prop-1",
		TenantID:   "tenant-1",
		OwnerID:    "owner-1",
		Status:     application.StatusAccepted,
	}
}

func validRequest(applicationID string) CreateAgreementRequest {
	start := time.Now().AddDate(0, 1, 0)
	return CreateAgreementRequest{
		ApplicationID:   applicationID,
		StartDate:       start,
		EndDate:         start.AddDate(1, 0, 0),
		MonthlyRent:     25000,
		SecurityDeposit: 50000,
		LockInMonths:    6,
	}
}

func TestCreateAgreement(t *testing.T) {
	repo := newFakeRepo()
	apps := &fakeApps{accepted: map[string]*application.Application{
		"app-1": acceptedApplication("app-1"),
	}}
	svc := newTestService(repo, apps)

	owner := policy.Actor{ID: "owner-1", Role: policy.RoleOwner}
	a, err := svc.Create(context.Background(), owner, validRequest("app-1"))

	require.NoError(t, err)
	assert.Equal(t, StatusDraft, a.Status)
	assert.Equal(t, "tenant-1", a.TenantID)
	assert.Equal(t, "prop-1", a.PropertyID)
	assert.False(t, a.FullySigned())
}

func TestCreateAgreementRequiresAcceptedApplication(t *testing.T) {
	svc := newTestService(newFakeRepo(), &fakeApps{})

	owner := policy.Actor{ID: "owner-1", Role: policy.RoleOwner}
	_, err := svc.Create(context.Background(), owner, validRequest("app-1"))

	assert.ErrorIs(t, err, core.ErrConflict)
}

func TestCreateAgreementWrongOwner(t *testing.T) {
	apps := &fakeApps{accepted: map[string]*application.Application{
		"app-1": acceptedApplication("app-1"),
	}}
	svc := newTestService(newFakeRepo(), apps)

	other := policy.Actor{ID: "owner-2", Role: policy.RoleOwner}
	_, err := svc.Create(context.Background(), other, validRequest("app-1"))

	assert.ErrorIs(t, err, core.ErrForbidden)
}

func TestCreateAgreementEndBeforeStart(t *testing.T) {
	apps := &fakeApps{accepted: map[string]*application.Application{
		"app-1": acceptedApplication("app-1"),
	}}
	svc := newTestService(newFakeRepo(), apps)

	req := validRequest("app-1")
	req.EndDate = req.StartDate.AddDate(0, 0, -1)

	owner := policy.Actor{ID: "owner-1", Role: policy.RoleOwner}
	_, err := svc.Create(context.Background(), owner, req)

	assert.ErrorIs(t, err, core.ErrInvalidInput)
}

func TestCreateAgreementOnePerApplication(t *testing.T) {
	apps := &fakeApps{accepted: map[string]*application.Application{
		"app-1": acceptedApplication("app-1"),
	}}
	svc := newTestService(newFakeRepo(), apps)

	owner := policy.Actor{ID: "owner-1", Role: policy.RoleOwner}
	_, err := svc.Create(context.Background(), owner, validRequest("app-1"))
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), owner, validRequest("app-1"))
	assert.ErrorIs(t, err, core.ErrConflict)
}

func TestSigningActivatesWhenBothSign(t *testing.T) {
	repo := newFakeRepo()
	apps := &fakeApps{accepted: map[string]*application.Application{
		"app-1": acceptedApplication("app-1"),
	}}
	svc := newTestService(repo, apps)

	owner := policy.Actor{ID: "owner-1", Role: policy.RoleOwner}
	tenant := policy.Actor{ID: "tenant-1", Role: policy.RoleTenant}

	a, err := svc.Create(context.Background(), owner, validRequest("app-1"))
	require.NoError(t, err)

	a, err = svc.Sign(context.Background(), owner, a.ID)
	require.NoError(t, err)
	assert.True(t, a.SignedByOwner)
	assert.Equal(t, StatusDraft, a.Status)

	a, err = svc.Sign(context.Background(), tenant, a.ID)
	require.NoError(t, err)
	assert.True(t, a.FullySigned())
	assert.Equal(t, StatusActive, a.Status)
}

func TestSignTwiceConflicts(t *testing.T) {
	repo := newFakeRepo()
	apps := &fakeApps{accepted: map[string]*application.Application{
		"app-1": acceptedApplication("app-1"),
	}}
	svc := newTestService(repo, apps)

	owner := policy.Actor{ID: "owner-1", Role: policy.RoleOwner}
	a, err := svc.Create(context.Background(), owner, validRequest("app-1"))
	require.NoError(t, err)

	_, err = svc.Sign(context.Background(), owner, a.ID)
	require.NoError(t, err)

	_, err = svc.Sign(context.Background(), owner, a.ID)
	assert.ErrorIs(t, err, core.ErrConflict)
}

func TestResignRetriesActivationAfterFailedStatusWrite(t *testing.T) {
	repo := newFakeRepo()
	apps := &fakeApps{accepted: map[string]*application.Application{
		"app-1": acceptedApplication("app-1"),
	}}
	svc := newTestService(repo, apps)

	owner := policy.Actor{ID: "owner-1", Role: policy.RoleOwner}
	tenant := policy.Actor{ID: "tenant-1", Role: policy.RoleTenant}

	a, err := svc.Create(context.Background(), owner, validRequest("app-1"))
	require.NoError(t, err)

	_, err = svc.Sign(context.Background(), tenant, a.ID)
	require.NoError(t, err)

	repo.failStatusUpdates = 1
	_, err = svc.Sign(context.Background(), owner, a.ID)
	require.Error(t, err)

	stored, err := repo.GetByID(context.Background(), a.ID)
	require.NoError(t, err)
	assert.True(t, stored.FullySigned())
	assert.Equal(t, StatusDraft, stored.Status)

	a, err = svc.Sign(context.Background(), owner, a.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusActive, a.Status)

	a, err = svc.Sign(context.Background(), tenant, a.ID)
	assert.ErrorIs(t, err, core.ErrConflict)
	assert.Nil(t, a)
}

func TestSignByStrangerForbidden(t *testing.T) {
	repo := newFakeRepo()
	apps := &fakeApps{accepted: map[string]*application.Application{
		"app-1": acceptedApplication("app-1"),
	}}
	svc := newTestService(repo, apps)

	owner := policy.Actor{ID: "owner-1", Role: policy.RoleOwner}
	a, err := svc.Create(context.Background(), owner, validRequest("app-1"))
	require.NoError(t, err)

	stranger := policy.Actor{ID: "someone", Role: policy.RoleTenant}
	_, err = svc.Sign(context.Background(), stranger, a.ID)
	assert.ErrorIs(t, err, core.ErrForbidden)
}

func TestTenantCannotComplete(t *testing.T) {
	repo := newFakeRepo()
	repo.byID["agr-1"] = &Agreement{
		ID:       "agr-1",
		TenantID: "tenant-1",
		OwnerID:  "owner-1",
		Status:   StatusActive,
	}
	svc := newTestService(repo, &fakeApps{})

	tenant := policy.Actor{ID: "tenant-1", Role: policy.RoleTenant}
	_, err := svc.UpdateStatus(
		context.Background(), tenant, "agr-1", StatusCompleted)
	assert.ErrorIs(t, err, core.ErrForbidden)

	a, err := svc.UpdateStatus(
		context.Background(), tenant, "agr-1", StatusTerminated)
	require.NoError(t, err)
	assert.Equal(t, StatusTerminated, a.Status)
}

func TestTerminatedIsFinal(t *testing.T) {
	repo := newFakeRepo()
	repo.byID["agr-1"] = &Agreement{
		ID:       "agr-1",
		TenantID: "tenant-1",
		OwnerID:  "owner-1",
		Status:   StatusTerminated,
	}
	svc := newTestService(repo, &fakeApps{})

	owner := policy.Actor{ID: "owner-1", Role: policy.RoleOwner}
	_, err := svc.UpdateStatus(
		context.Background(), owner, "agr-1", StatusActive)
	assert.ErrorIs(t, err, core.ErrConflict)
}
