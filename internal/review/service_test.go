// AngelaMos | 2026
// service_test.go

package review

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
	reviews []Review
}

func (f *fakeRepo) Create(_ context.Context, rev *Review) error {
	for _, existing := range f.reviews {
		if existing.AuthorID != rev.AuthorID {
			continue
		}
		if rev.TargetPropertyID != nil &&
			existing.TargetPropertyID != nil &&
			*existing.TargetPropertyID == *rev.TargetPropertyID {
			return core.ErrDuplicateKey
		}
		if rev.TargetUserID != nil &&
			existing.TargetUserID != nil &&
			*existing.TargetUserID == *rev.TargetUserID {
			return core.ErrDuplicateKey
		}
	}
	f.reviews = append(f.reviews, *rev)
	return nil
}

func (f *fakeRepo) GetByID(_ context.Context, id string) (*Review, error) {
	for _, existing := range f.reviews {
		if existing.ID == id {
			cp := existing
			return &cp, nil
		}
	}
	return nil, core.ErrNotFound
}

func (f *fakeRepo) Delete(_ context.Context, id string) error {
	for i, existing := range f.reviews {
		if existing.ID == id {
			f.reviews = append(f.reviews[:i], f.reviews[i+1:]...)
			return nil
		}
	}
	return core.ErrNotFound
}

func (f *fakeRepo) ListByProperty(
	_ context.Context, propertyID string, _ ListParams,
) ([]Review, int, error) {
	var out []Review
	for _, r := range f.reviews {
		if r.TargetPropertyID != nil && *r.TargetPropertyID == propertyID {
			out = append(out, r)
		}
	}
	return out, len(out), nil
}

func (f *fakeRepo) ListByUser(
	_ context.Context, userID string, _ ListParams,
) ([]Review, int, error) {
	var out []Review
	for _, r := range f.reviews {
		if r.TargetUserID != nil && *r.TargetUserID == userID {
			out = append(out, r)
		}
	}
	return out, len(out), nil
}

func (f *fakeRepo) SummaryForProperty(
	_ context.Context, _ string,
) (*RatingSummary, error) {
	return &RatingSummary{}, nil
}

func (f *fakeRepo) SummaryForUser(
	_ context.Context, _ string,
) (*RatingSummary, error) {
	return &RatingSummary{}, nil
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

type fakeUsers struct {
	ids map[string]bool
}

func (f *fakeUsers) Exists(_ context.Context, id string) (bool, error) {
	return f.ids[id], nil
}

func strPtr(s string) *string { return &s }

func newTestService(repo *fakeRepo) *Service {
	props := &fakeProps{listings: map[string]*property.Property{
		"prop-1": {ID: "prop-1", OwnerID: "owner-1"},
	}}
	users := &fakeUsers{ids: map[string]bool{
		"owner-1":  true,
		"tenant-1": true,
	}}
	return NewService(repo, props, users)
}

func TestCreatePropertyReview(t *testing.T) {
	repo := &fakeRepo{}
	svc := newTestService(repo)

	tenant := policy.Actor{ID: "tenant-1", Role: policy.RoleTenant}
	rev, err := svc.Create(context.Background(), tenant, CreateReviewRequest{
		TargetPropertyID: strPtr("prop-1"),
		Rating:           4,
		Comment:          "Good light, noisy street.",
	})

	require.NoError(t, err)
	assert.Equal(t, "tenant-1", rev.AuthorID)
	require.NotNil(t, rev.TargetPropertyID)
	assert.Nil(t, rev.TargetUserID)
}

func TestCreateReviewRequiresExactlyOneTarget(t *testing.T) {
	svc := newTestService(&fakeRepo{})
	tenant := policy.Actor{ID: "tenant-1", Role: policy.RoleTenant}

	_, err := svc.Create(context.Background(), tenant, CreateReviewRequest{
		Rating: 3,
	})
	assert.ErrorIs(t, err, core.ErrInvalidInput)

	_, err = svc.Create(context.Background(), tenant, CreateReviewRequest{
		TargetPropertyID: strPtr("prop-1"),
		TargetUserID:     strPtr("owner-1"),
		Rating:           3,
	})
	assert.ErrorIs(t, err, core.ErrInvalidInput)
}

func TestCreateReviewSelfReviewRejected(t *testing.T) {
	svc := newTestService(&fakeRepo{})

	tenant := policy.Actor{ID: "tenant-1", Role: policy.RoleTenant}
	_, err := svc.Create(context.Background(), tenant, CreateReviewRequest{
		TargetUserID: strPtr("tenant-1"),
		Rating:       5,
	})

	assert.ErrorIs(t, err, core.ErrInvalidInput)
}

func TestCreateReviewOwnListingRejected(t *testing.T) {
	repo := &fakeRepo{}
	svc := newTestService(repo)

	owner := policy.Actor{ID: "owner-1", Role: policy.RoleOwner}
	_, err := svc.Create(context.Background(), owner, CreateReviewRequest{
		TargetPropertyID: strPtr("prop-1"),
		Rating:           5,
	})

	assert.ErrorIs(t, err, core.ErrInvalidInput)
	assert.Empty(t, repo.reviews)
}

func TestCreateReviewDuplicatePairConflicts(t *testing.T) {
	repo := &fakeRepo{}
	svc := newTestService(repo)

	tenant := policy.Actor{ID: "tenant-1", Role: policy.RoleTenant}
	req := CreateReviewRequest{
		TargetUserID: strPtr("owner-1"),
		Rating:       2,
	}

	_, err := svc.Create(context.Background(), tenant, req)
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), tenant, req)
	assert.ErrorIs(t, err, core.ErrConflict)
}

func TestCreateReviewUnknownTargets(t *testing.T) {
	svc := newTestService(&fakeRepo{})
	tenant := policy.Actor{ID: "tenant-1", Role: policy.RoleTenant}

	_, err := svc.Create(context.Background(), tenant, CreateReviewRequest{
		TargetPropertyID: strPtr("prop-404"),
		Rating:           1,
	})
	assert.ErrorIs(t, err, core.ErrNotFound)

	_, err = svc.Create(context.Background(), tenant, CreateReviewRequest{
		TargetUserID: strPtr("user-404"),
		Rating:       1,
	})
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestDeleteReviewAuthorOnly(t *testing.T) {
	repo := &fakeRepo{}
	svc := newTestService(repo)

	tenant := policy.Actor{ID: "tenant-1", Role: policy.RoleTenant}
	rev, err := svc.Create(context.Background(), tenant, CreateReviewRequest{
		TargetPropertyID: strPtr("prop-1"),
		Rating:           4,
	})
	require.NoError(t, err)

	stranger := policy.Actor{ID: "tenant-2", Role: policy.RoleTenant}
	err = svc.Delete(context.Background(), stranger, rev.ID)
	assert.ErrorIs(t, err, core.ErrForbidden)

	err = svc.Delete(context.Background(), tenant, rev.ID)
	assert.NoError(t, err)
}
