// AngelaMos | 2026
// service_test.go

package property

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rentloop/rentloop-api/internal/core"
	"github.com/rentloop/rentloop-api/internal/policy"
	"github.com/rentloop/rentloop-api/internal/search"
)

type fakeRepo struct {
	byID map[string]*Property
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{byID: make(map[string]*Property)}
}

func (f *fakeRepo) Create(_ context.Context, p *Property) error {
	f.byID[p.ID] = p
	return nil
}

func (f *fakeRepo) GetByID(_ context.Context, id string) (*Property, error) {
	p, ok := f.byID[id]
	if !ok {
		return nil, core.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *fakeRepo) Update(_ context.Context, p *Property) error {
	if _, ok := f.byID[p.ID]; !ok {
		return core.ErrNotFound
	}
	cp := *p
	f.byID[p.ID] = &cp
	return nil
}

func (f *fakeRepo) UpdateStatus(_ context.Context, id, status string) error {
	p, ok := f.byID[id]
	if !ok {
		return core.ErrNotFound
	}
	p.Status = status
	return nil
}

func (f *fakeRepo) SetVerified(_ context.Context, id string, v bool) error {
	p, ok := f.byID[id]
	if !ok {
		return core.ErrNotFound
	}
	p.IsVerified = v
	return nil
}

func (f *fakeRepo) List(
	_ context.Context,
	params ListPropertiesParams,
) ([]Property, int, error) {
	var out []Property
	for _, p := range f.byID {
		if params.Status != "" && p.Status != params.Status {
			continue
		}
		if params.OwnerID != "" && p.OwnerID != params.OwnerID {
			continue
		}
		out = append(out, *p)
	}
	return out, len(out), nil
}

func (f *fakeRepo) ListByIDs(
	_ context.Context,
	ids []string,
) ([]Property, error) {
	var out []Property
	for _, id := range ids {
		if p, ok := f.byID[id]; ok {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (f *fakeRepo) CountByStatus(
	_ context.Context,
) (map[string]int, error) {
	counts := make(map[string]int)
	for _, p := range f.byID {
		counts[p.Status]++
	}
	return counts, nil
}

type fakeIndexer struct {
	indexed   map[string]search.ListingDocument
	deleted   []string
	searchIDs []string
}

func newFakeIndexer() *fakeIndexer {
	return &fakeIndexer{indexed: make(map[string]search.ListingDocument)}
}

func (f *fakeIndexer) IndexListing(doc search.ListingDocument) error {
	f.indexed[doc.ID] = doc
	return nil
}

func (f *fakeIndexer) DeleteListing(id string) error {
	delete(f.indexed, id)
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeIndexer) SearchIDs(_ search.Query) ([]string, int64, error) {
	return f.searchIDs, int64(len(f.searchIDs)), nil
}

func seedListing(repo *fakeRepo, id, ownerID, status string) *Property {
	p := &Property{
		ID:      id,
		OwnerID: ownerID,
		Title:   "Sunny 1BHK",
		Status:  status,
	}
	repo.byID[id] = p
	return p
}

func TestCreateRequiresOwnerRole(t *testing.T) {
	svc := NewService(newFakeRepo(), nil)

	tenant := policy.Actor{ID: "tenant-1", Role: policy.RoleTenant}
	_, err := svc.Create(context.Background(), tenant, CreatePropertyRequest{})

	assert.ErrorIs(t, err, core.ErrForbidden)
}

func TestCreateIndexesActiveListing(t *testing.T) {
	repo := newFakeRepo()
	indexer := newFakeIndexer()
	svc := NewService(repo, indexer)

	owner := policy.Actor{ID: "owner-1", Role: policy.RoleOwner}
	p, err := svc.Create(context.Background(), owner, CreatePropertyRequest{
		Title: "Sunny 1BHK near the park",
	})

	require.NoError(t, err)
	assert.Equal(t, StatusActive, p.Status)
	assert.Contains(t, indexer.indexed, p.ID)
}

func TestUpdateStatusRemovesFromIndex(t *testing.T) {
	repo := newFakeRepo()
	indexer := newFakeIndexer()
	seedListing(repo, "prop-1", "owner-1", StatusActive)
	svc := NewService(repo, indexer)

	owner := policy.Actor{ID: "owner-1", Role: policy.RoleOwner}
	p, err := svc.UpdateStatus(
		context.Background(), owner, "prop-1", StatusRentedOut)

	require.NoError(t, err)
	assert.Equal(t, StatusRentedOut, p.Status)
	assert.Contains(t, indexer.deleted, "prop-1")
}

func TestUpdateStatusWrongOwner(t *testing.T) {
	repo := newFakeRepo()
	seedListing(repo, "prop-1", "owner-1", StatusActive)
	svc := NewService(repo, nil)

	other := policy.Actor{ID: "owner-2", Role: policy.RoleOwner}
	_, err := svc.UpdateStatus(
		context.Background(), other, "prop-1", StatusPaused)

	assert.ErrorIs(t, err, core.ErrForbidden)
}

func TestUpdateStatusAdminBypass(t *testing.T) {
	repo := newFakeRepo()
	seedListing(repo, "prop-1", "owner-1", StatusActive)
	svc := NewService(repo, nil)

	admin := policy.Actor{ID: "admin-1", Role: policy.RoleAdmin}
	p, err := svc.UpdateStatus(
		context.Background(), admin, "prop-1", StatusPaused)

	require.NoError(t, err)
	assert.Equal(t, StatusPaused, p.Status)
}

func TestDeletePausesListing(t *testing.T) {
	repo := newFakeRepo()
	seedListing(repo, "prop-1", "owner-1", StatusActive)
	svc := NewService(repo, nil)

	owner := policy.Actor{ID: "owner-1", Role: policy.RoleOwner}
	err := svc.Delete(context.Background(), owner, "prop-1")

	require.NoError(t, err)
	assert.Equal(t, StatusPaused, repo.byID["prop-1"].Status)

	// Deleting again is a no-op.
	err = svc.Delete(context.Background(), owner, "prop-1")
	assert.NoError(t, err)
}

func TestListOnlyActive(t *testing.T) {
	repo := newFakeRepo()
	seedListing(repo, "prop-1", "owner-1", StatusActive)
	seedListing(repo, "prop-2", "owner-1", StatusPaused)
	svc := NewService(repo, nil)

	listings, total, err := svc.List(
		context.Background(), ListPropertiesParams{})

	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, listings, 1)
	assert.Equal(t, "prop-1", listings[0].ID)
}

func TestListQueryGoesThroughSearch(t *testing.T) {
	repo := newFakeRepo()
	seedListing(repo, "prop-1", "owner-1", StatusActive)
	seedListing(repo, "prop-2", "owner-2", StatusActive)

	indexer := newFakeIndexer()
	indexer.searchIDs = []string{"prop-2", "prop-1"}
	svc := NewService(repo, indexer)

	listings, total, err := svc.List(context.Background(),
		ListPropertiesParams{Query: "sunny"})

	require.NoError(t, err)
	assert.Equal(t, 2, total)
	require.Len(t, listings, 2)
	// Relevance order from the index is preserved.
	assert.Equal(t, "prop-2", listings[0].ID)
	assert.Equal(t, "prop-1", listings[1].ID)
}
