package review

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stayloft/lodge-booking-backend/internal/lodge"
)

type fakeRepo struct {
	reviews map[string]*Review
	nextID  int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{reviews: map[string]*Review{}}
}

func (f *fakeRepo) Create(ctx context.Context, rv *Review) error {
	for _, existing := range f.reviews {
		if existing.LodgeID == rv.LodgeID && existing.UserID == rv.UserID {
			return ErrAlreadyReviewed
		}
	}
	f.nextID++
	rv.ID = fmt.Sprintf("rev-%d", f.nextID)
	rv.CreatedAt = time.Now()
	rv.UpdatedAt = rv.CreatedAt
	clone := *rv
	f.reviews[rv.ID] = &clone
	return nil
}

func (f *fakeRepo) GetByID(ctx context.Context, id string) (*Review, error) {
	rv, ok := f.reviews[id]
	if !ok {
		return nil, ErrNotFound
	}
	clone := *rv
	return &clone, nil
}

func (f *fakeRepo) ListByLodge(ctx context.Context, lodgeID string, page, pageSize int) ([]*Review, int, error) {
	var out []*Review
	for _, rv := range f.reviews {
		if rv.LodgeID == lodgeID {
			clone := *rv
			out = append(out, &clone)
		}
	}
	return out, len(out), nil
}

func (f *fakeRepo) Delete(ctx context.Context, id string) error {
	if _, ok := f.reviews[id]; !ok {
		return ErrNotFound
	}
	delete(f.reviews, id)
	return nil
}

type fakeLodgeService struct {
	known     map[string]bool
	refreshed []string
}

func (f *fakeLodgeService) Create(ctx context.Context, req lodge.CreateRequest) (*lodge.Lodge, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeLodgeService) GetByID(ctx context.Context, id string) (*lodge.Lodge, error) {
	if !f.known[id] {
		return nil, lodge.ErrNotFound
	}
	return &lodge.Lodge{ID: id}, nil
}

func (f *fakeLodgeService) GetBySlug(ctx context.Context, slug string) (*lodge.Lodge, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeLodgeService) List(ctx context.Context, filter lodge.Filter) ([]*lodge.Lodge, int, error) {
	return nil, 0, errors.New("not implemented")
}

func (f *fakeLodgeService) Update(ctx context.Context, id string, req lodge.UpdateRequest) (*lodge.Lodge, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeLodgeService) RefreshRating(ctx context.Context, id string) error {
	f.refreshed = append(f.refreshed, id)
	return nil
}

func TestCreateReview(t *testing.T) {
	lodges := &fakeLodgeService{known: map[string]bool{"lodge-1": true}}
	svc := NewService(newFakeRepo(), lodges)
	ctx := context.Background()

	t.Run("success refreshes the lodge rating", func(t *testing.T) {
		rv, err := svc.Create(ctx, CreateRequest{LodgeID: "lodge-1", UserID: "user-1", Rating: 4, Comment: "Cozy"})
		require.NoError(t, err)
		assert.Equal(t, 4, rv.Rating)
		assert.Equal(t, []string{"lodge-1"}, lodges.refreshed)
	})

	t.Run("one review per user per lodge", func(t *testing.T) {
		_, err := svc.Create(ctx, CreateRequest{LodgeID: "lodge-1", UserID: "user-1", Rating: 5})
		assert.ErrorIs(t, err, ErrAlreadyReviewed)
	})

	t.Run("rating bounds", func(t *testing.T) {
		_, err := svc.Create(ctx, CreateRequest{LodgeID: "lodge-1", UserID: "user-2", Rating: 0})
		assert.ErrorIs(t, err, ErrInvalidRating)
		_, err = svc.Create(ctx, CreateRequest{LodgeID: "lodge-1", UserID: "user-2", Rating: 6})
		assert.ErrorIs(t, err, ErrInvalidRating)
	})

	t.Run("unknown lodge", func(t *testing.T) {
		_, err := svc.Create(ctx, CreateRequest{LodgeID: "lodge-missing", UserID: "user-2", Rating: 3})
		assert.ErrorIs(t, err, ErrInvalidLodge)
	})
}

func TestDeleteReview(t *testing.T) {
	lodges := &fakeLodgeService{known: map[string]bool{"lodge-1": true}}
	svc := NewService(newFakeRepo(), lodges)
	ctx := context.Background()

	rv, err := svc.Create(ctx, CreateRequest{LodgeID: "lodge-1", UserID: "user-1", Rating: 2})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, rv.ID))
	assert.Equal(t, []string{"lodge-1", "lodge-1"}, lodges.refreshed, "delete refreshes the rating again")

	assert.ErrorIs(t, svc.Delete(ctx, rv.ID), ErrNotFound)
}
