package lodge

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepo struct {
	lodges    map[string]*Lodge
	nextID    int
	listCalls int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{lodges: map[string]*Lodge{}}
}

func (f *fakeRepo) Create(ctx context.Context, l *Lodge) error {
	for _, existing := range f.lodges {
		if existing.Slug == l.Slug {
			return ErrSlugAlreadyUsed
		}
	}
	f.nextID++
	l.ID = fmt.Sprintf("lodge-%d", f.nextID)
	l.CreatedAt = time.Now()
	l.UpdatedAt = l.CreatedAt
	clone := *l
	f.lodges[l.ID] = &clone
	return nil
}

func (f *fakeRepo) GetByID(ctx context.Context, id string) (*Lodge, error) {
	l, ok := f.lodges[id]
	if !ok {
		return nil, ErrNotFound
	}
	clone := *l
	return &clone, nil
}

func (f *fakeRepo) GetBySlug(ctx context.Context, slug string) (*Lodge, error) {
	for _, l := range f.lodges {
		if l.Slug == slug {
			clone := *l
			return &clone, nil
		}
	}
	return nil, ErrNotFound
}

func (f *fakeRepo) List(ctx context.Context, filter Filter) ([]*Lodge, int, error) {
	f.listCalls++
	var out []*Lodge
	for _, l := range f.lodges {
		if filter.City != "" && l.City != filter.City {
			continue
		}
		if filter.IsActive != nil && l.IsActive != *filter.IsActive {
			continue
		}
		clone := *l
		out = append(out, &clone)
	}
	return out, len(out), nil
}

func (f *fakeRepo) Update(ctx context.Context, l *Lodge) error {
	if _, ok := f.lodges[l.ID]; !ok {
		return ErrNotFound
	}
	clone := *l
	f.lodges[l.ID] = &clone
	return nil
}

func (f *fakeRepo) RefreshRating(ctx context.Context, id string) error {
	return nil
}

// mapCache is an in-memory cache.Cache for tests.
type mapCache struct {
	entries map[string][]byte
}

func newMapCache() *mapCache {
	return &mapCache{entries: map[string][]byte{}}
}

func (c *mapCache) GetJSON(ctx context.Context, key string, dest any) (bool, error) {
	data, ok := c.entries[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(data, dest)
}

func (c *mapCache) SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.entries[key] = data
	return nil
}

func TestSlugify(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Mountain View Lodge", "mountain-view-lodge"},
		{"  Lakeside   Retreat  ", "lakeside-retreat"},
		{"Chalet #42 (Deluxe)", "chalet-42-deluxe"},
		{"ALL CAPS", "all-caps"},
		{"trailing-dash!", "trailing-dash"},
		{"---", ""},
		{"", ""},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Slugify(tc.in), "Slugify(%q)", tc.in)
	}
}

func TestCreateLodge(t *testing.T) {
	svc := NewService(newFakeRepo(), nil, 0)
	ctx := context.Background()

	t.Run("derives slug from name", func(t *testing.T) {
		l, err := svc.Create(ctx, CreateRequest{Name: "Mountain View Lodge", City: "Aspen"})
		require.NoError(t, err)
		assert.Equal(t, "mountain-view-lodge", l.Slug)
		assert.True(t, l.IsActive)
	})

	t.Run("duplicate slug", func(t *testing.T) {
		_, err := svc.Create(ctx, CreateRequest{Name: "Mountain View Lodge"})
		assert.ErrorIs(t, err, ErrSlugAlreadyUsed)
	})

	t.Run("empty name", func(t *testing.T) {
		_, err := svc.Create(ctx, CreateRequest{Name: "   "})
		assert.ErrorIs(t, err, ErrEmptyName)
	})

	t.Run("name with no usable characters", func(t *testing.T) {
		_, err := svc.Create(ctx, CreateRequest{Name: "!!!"})
		assert.ErrorIs(t, err, ErrInvalidSlug)
	})
}

func TestGetBySlug(t *testing.T) {
	svc := NewService(newFakeRepo(), nil, 0)
	ctx := context.Background()

	created, err := svc.Create(ctx, CreateRequest{Name: "Lakeside Retreat"})
	require.NoError(t, err)

	for _, slug := range []string{"lakeside-retreat", "Lakeside-Retreat", "  LAKESIDE-RETREAT  "} {
		got, err := svc.GetBySlug(ctx, slug)
		require.NoError(t, err, "slug %q", slug)
		assert.Equal(t, created.ID, got.ID)
	}

	_, err = svc.GetBySlug(ctx, "nowhere")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListCaching(t *testing.T) {
	repo := newFakeRepo()
	cache := newMapCache()
	svc := NewService(repo, cache, time.Minute)
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateRequest{Name: "Mountain View Lodge", City: "Aspen"})
	require.NoError(t, err)

	filter := Filter{City: "Aspen", Page: 1, PageSize: 20}

	lodges, total, err := svc.List(ctx, filter)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, lodges, 1)
	assert.Equal(t, 1, repo.listCalls)

	// Second identical query is served from the cache.
	cached, total, err := svc.List(ctx, filter)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Equal(t, lodges[0].ID, cached[0].ID)
	assert.Equal(t, 1, repo.listCalls, "repository must not be hit again")

	// A different page misses the cache.
	_, _, err = svc.List(ctx, Filter{City: "Aspen", Page: 2, PageSize: 20})
	require.NoError(t, err)
	assert.Equal(t, 2, repo.listCalls)
}

func TestListWithoutCache(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, nil, 0)
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateRequest{Name: "Lakeside Retreat", City: "Tahoe"})
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		_, total, err := svc.List(ctx, Filter{City: "Tahoe", Page: 1, PageSize: 20})
		require.NoError(t, err)
		assert.Equal(t, 1, total)
	}
	assert.Equal(t, 2, repo.listCalls, "every query hits the repository when caching is off")
}
