package room

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
	rooms  map[string]*Room
	nextID int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{rooms: map[string]*Room{}}
}

func (f *fakeRepo) Create(ctx context.Context, r *Room) error {
	f.nextID++
	r.ID = fmt.Sprintf("room-%d", f.nextID)
	r.CreatedAt = time.Now()
	r.UpdatedAt = r.CreatedAt
	clone := *r
	f.rooms[r.ID] = &clone
	return nil
}

func (f *fakeRepo) GetByID(ctx context.Context, id string) (*Room, error) {
	r, ok := f.rooms[id]
	if !ok {
		return nil, ErrNotFound
	}
	clone := *r
	return &clone, nil
}

func (f *fakeRepo) ListByLodge(ctx context.Context, lodgeID string) ([]*Room, error) {
	var out []*Room
	for _, r := range f.rooms {
		if r.LodgeID == lodgeID {
			clone := *r
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (f *fakeRepo) Update(ctx context.Context, r *Room) error {
	if _, ok := f.rooms[r.ID]; !ok {
		return ErrNotFound
	}
	clone := *r
	f.rooms[r.ID] = &clone
	return nil
}

type fakeLodgeService struct {
	known map[string]bool
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
	return nil
}

func TestCreateRoom(t *testing.T) {
	svc := NewService(newFakeRepo(), &fakeLodgeService{known: map[string]bool{"lodge-1": true}})
	ctx := context.Background()

	valid := CreateRequest{
		LodgeID:        "lodge-1",
		Name:           "Forest Suite",
		RoomType:       "suite",
		Capacity:       2,
		BasePriceCents: 12500,
		TotalRooms:     3,
	}

	t.Run("success with currency default", func(t *testing.T) {
		r, err := svc.Create(ctx, valid)
		require.NoError(t, err)
		assert.Equal(t, TypeSuite, r.RoomType)
		assert.Equal(t, "USD", r.Currency)
	})

	t.Run("currency is normalized", func(t *testing.T) {
		req := valid
		req.Currency = " eur "
		r, err := svc.Create(ctx, req)
		require.NoError(t, err)
		assert.Equal(t, "EUR", r.Currency)
	})

	t.Run("validation", func(t *testing.T) {
		cases := []struct {
			name    string
			mutate  func(*CreateRequest)
			wantErr error
		}{
			{"empty name", func(r *CreateRequest) { r.Name = "  " }, ErrEmptyName},
			{"unknown lodge", func(r *CreateRequest) { r.LodgeID = "lodge-missing" }, ErrInvalidLodge},
			{"bad room type", func(r *CreateRequest) { r.RoomType = "penthouse" }, ErrInvalidRoomType},
			{"zero capacity", func(r *CreateRequest) { r.Capacity = 0 }, ErrInvalidCapacity},
			{"negative price", func(r *CreateRequest) { r.BasePriceCents = -1 }, ErrInvalidPrice},
			{"zero units", func(r *CreateRequest) { r.TotalRooms = 0 }, ErrInvalidUnits},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				req := valid
				tc.mutate(&req)
				_, err := svc.Create(ctx, req)
				assert.ErrorIs(t, err, tc.wantErr)
			})
		}
	})
}
