package user

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepo struct {
	users  map[string]*User
	nextID int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{users: map[string]*User{}}
}

func (f *fakeRepo) Create(ctx context.Context, u *User) error {
	for _, existing := range f.users {
		if existing.Email == u.Email {
			return ErrEmailAlreadyUsed
		}
	}
	f.nextID++
	u.ID = fmt.Sprintf("user-%d", f.nextID)
	u.CreatedAt = time.Now()
	clone := *u
	f.users[u.ID] = &clone
	return nil
}

func (f *fakeRepo) GetByID(ctx context.Context, id string) (*User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	clone := *u
	return &clone, nil
}

func (f *fakeRepo) GetByEmail(ctx context.Context, email string) (*User, error) {
	for _, u := range f.users {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, ErrNotFound
}

func (f *fakeRepo) List(ctx context.Context, filter Filter) ([]*User, int, error) {
	var out []*User
	for _, u := range f.users {
		clone := *u
		out = append(out, &clone)
	}
	return out, len(out), nil
}

func (f *fakeRepo) Update(ctx context.Context, u *User) error {
	if _, ok := f.users[u.ID]; !ok {
		return ErrNotFound
	}
	clone := *u
	f.users[u.ID] = &clone
	return nil
}

func (f *fakeRepo) UpdateLastLogin(ctx context.Context, id string, at time.Time) error {
	u, ok := f.users[id]
	if !ok {
		return ErrNotFound
	}
	u.LastLoginAt = &at
	return nil
}

// plainHasher avoids bcrypt cost in unit tests.
type plainHasher struct{}

func (plainHasher) Hash(password string) (string, error) {
	return "hashed:" + password, nil
}

func (plainHasher) Compare(hash, password string) error {
	if hash != "hashed:"+password {
		return errors.New("mismatch")
	}
	return nil
}

func newTestService() (Service, *fakeRepo) {
	repo := newFakeRepo()
	return NewService(repo, plainHasher{}), repo
}

func TestRegister(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		u, err := svc.Register(ctx, "  Guest@Example.COM ", "password123", " Guest ")
		require.NoError(t, err)
		assert.Equal(t, "guest@example.com", u.Email, "email is normalized")
		assert.Equal(t, "Guest", u.DisplayName)
		assert.Equal(t, RoleCustomer, u.Role)
		assert.True(t, u.IsActive)
		assert.NotEqual(t, "password123", u.PasswordHash)
	})

	t.Run("duplicate email", func(t *testing.T) {
		_, err := svc.Register(ctx, "guest@example.com", "password123", "Other")
		assert.ErrorIs(t, err, ErrEmailAlreadyUsed)
	})

	t.Run("short password", func(t *testing.T) {
		_, err := svc.Register(ctx, "short@example.com", "1234567", "")
		assert.ErrorIs(t, err, ErrPasswordTooShort)
	})

	t.Run("empty email", func(t *testing.T) {
		_, err := svc.Register(ctx, "   ", "password123", "")
		assert.ErrorIs(t, err, ErrEmailRequired)
	})
}

func TestLogin(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()

	registered, err := svc.Register(ctx, "guest@example.com", "password123", "Guest")
	require.NoError(t, err)

	t.Run("success sets last login", func(t *testing.T) {
		u, err := svc.Login(ctx, "Guest@Example.com", "password123")
		require.NoError(t, err)
		assert.Equal(t, registered.ID, u.ID)
		assert.NotNil(t, u.LastLoginAt)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Login(ctx, "guest@example.com", "wrong")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := svc.Login(ctx, "nobody@example.com", "password123")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("deactivated account", func(t *testing.T) {
		repo.users[registered.ID].IsActive = false
		_, err := svc.Login(ctx, "guest@example.com", "password123")
		assert.ErrorIs(t, err, ErrInactiveUser)
		repo.users[registered.ID].IsActive = true
	})
}

func TestAdminUpdate(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	u, err := svc.Register(ctx, "manager@example.com", "password123", "Manager")
	require.NoError(t, err)

	t.Run("manager role requires a lodge", func(t *testing.T) {
		role := string(RoleLodgeManager)
		_, err := svc.AdminUpdate(ctx, u.ID, AdminUpdateRequest{Role: &role})
		assert.ErrorIs(t, err, ErrLodgeRequired)
	})

	t.Run("manager role with lodge", func(t *testing.T) {
		role := string(RoleLodgeManager)
		lodgeID := "lodge-1"
		updated, err := svc.AdminUpdate(ctx, u.ID, AdminUpdateRequest{Role: &role, LodgeID: &lodgeID})
		require.NoError(t, err)
		assert.Equal(t, RoleLodgeManager, updated.Role)
		require.NotNil(t, updated.LodgeID)
		assert.Equal(t, "lodge-1", *updated.LodgeID)
	})

	t.Run("invalid role", func(t *testing.T) {
		role := "superuser"
		_, err := svc.AdminUpdate(ctx, u.ID, AdminUpdateRequest{Role: &role})
		assert.ErrorIs(t, err, ErrInvalidRole)
	})
}
