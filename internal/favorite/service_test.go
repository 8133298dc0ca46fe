// AngelaMos | 2026
// service_test.go

package favorite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rentloop/rentloop-api/internal/core"
	"github.com/rentloop/rentloop-api/internal/policy"
	"github.com/rentloop/rentloop-api/internal/property"
)

type fakeRepo struct {
	saved []Favorite
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{}
}

func (f *fakeRepo) Create(_ context.Context, fav *Favorite) error {
	for _, existing := range f.saved {
		if existing.TenantID == fav.TenantID &&
			existing.PropertyID == fav.PropertyID {
			return core.ErrDuplicateKey
		}
	}
	f.saved = append(f.saved, *fav)
	return nil
}

func (f *fakeRepo) Delete(_ context.Context, tenantID, propertyID string) error {
	for i, existing := range f.saved {
		if existing.TenantID == tenantID && existing.PropertyID == propertyID {
			f.saved = append(f.saved[:i], f.saved[i+1:]...)
			return nil
		}
	}
	return core.ErrNotFound
}

func (f *fakeRepo) ListPropertyIDsByTenant(
	_ context.Context,
	tenantID string,
	_, _ int,
) ([]string, int, error) {
	var ids []string
	for _, existing := range f.saved {
		if existing.TenantID == tenantID {
			ids = append(ids, existing.PropertyID)
		}
	}
	return ids, len(ids), nil
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

func (f *fakeProps) GetByIDs(
	_ context.Context,
	ids []string,
) ([]property.Property, error) {
	var out []property.Property
	for _, id := range ids {
		if p, ok := f.listings[id]; ok {
			out = append(out, *p)
		}
	}
	return out, nil
}

func TestAddFavorite(t *testing.T) {
	repo := newFakeRepo()
	props := &fakeProps{listings: map[string]*property.Property{
		"prop-1": {ID: "prop-1", OwnerID: "owner-1"},
	}}
	svc := NewService(repo, props)

	tenant := policy.Actor{ID: "tenant-1", Role: policy.RoleTenant}
	fav, err := svc.Add(context.Background(), tenant, "prop-1")

	require.NoError(t, err)
	assert.Equal(t, "tenant-1", fav.TenantID)
	assert.Equal(t, "prop-1", fav.PropertyID)
}

func TestAddFavoriteTwiceConflicts(t *testing.T) {
	repo := newFakeRepo()
	props := &fakeProps{listings: map[string]*property.Property{
		"prop-1": {ID: "prop-1", OwnerID: "owner-1"},
	}}
	svc := NewService(repo, props)

	tenant := policy.Actor{ID: "tenant-1", Role: policy.RoleTenant}
	_, err := svc.Add(context.Background(), tenant, "prop-1")
	require.NoError(t, err)

	_, err = svc.Add(context.Background(), tenant, "prop-1")
	assert.ErrorIs(t, err, core.ErrConflict)
}

func TestAddFavoriteOwnListing(t *testing.T) {
	repo := newFakeRepo()
	props := &fakeProps{listings: map[string]*property.Property{
		"prop-1": {ID: "prop-1", OwnerID: "owner-1"},
	}}
	svc := NewService(repo, props)

	owner := policy.Actor{ID: "owner-1", Role: policy.RoleOwner}
	_, err := svc.Add(context.Background(), owner, "prop-1")

	assert.ErrorIs(t, err, core.ErrInvalidInput)
}

func TestAddFavoriteMissingListing(t *testing.T) {
	svc := NewService(newFakeRepo(), &fakeProps{})

	tenant := policy.Actor{ID: "tenant-1", Role: policy.RoleTenant}
	_, err := svc.Add(context.Background(), tenant, "nope")

	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestRemoveFavoriteAbsent(t *testing.T) {
	svc := NewService(newFakeRepo(), &fakeProps{})

	tenant := policy.Actor{ID: "tenant-1", Role: policy.RoleTenant}
	err := svc.Remove(context.Background(), tenant, "prop-1")

	assert.ErrorIs(t, err, core.ErrNotFound)
}
