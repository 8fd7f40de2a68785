package user

import (
	"context"
	"strings"
	"time"

	"github.com/stayloft/lodge-booking-backend/internal/auth"
)

// UpdateProfileRequest carries the self-service profile fields.
// Nil fields are left unchanged.
type UpdateProfileRequest struct {
	DisplayName *string
	PhotoURL    *string
	PhoneNumber *string
	Address     *string
	City        *string
	Country     *string
	ZipCode     *string
}

// AdminUpdateRequest carries the admin-only account fields.
type AdminUpdateRequest struct {
	Role     *string
	LodgeID  *string
	IsActive *bool
}

type Service interface {
	Register(ctx context.Context, email, password, displayName string) (*User, error)
	Login(ctx context.Context, email, password string) (*User, error)
	GetByID(ctx context.Context, id string) (*User, error)
	List(ctx context.Context, filter Filter) ([]*User, int, error)
	UpdateProfile(ctx context.Context, id string, req UpdateProfileRequest) (*User, error)
	AdminUpdate(ctx context.Context, id string, req AdminUpdateRequest) (*User, error)
}

type service struct {
	repo   Repository
	hasher auth.PasswordHasher
}

func NewService(repo Repository, hasher auth.PasswordHasher) Service {
	return &service{
		repo:   repo,
		hasher: hasher,
	}
}

func (s *service) Register(ctx context.Context, email, password, displayName string) (*User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, ErrEmailRequired
	}
	if len(password) < 8 {
		return nil, ErrPasswordTooShort
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, err
	}

	u := &User{
		Email:        email,
		PasswordHash: hash,
		DisplayName:  strings.TrimSpace(displayName),
		Role:         RoleCustomer,
		IsActive:     true,
	}

	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *service) Login(ctx context.Context, email, password string) (*User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	u, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	if !u.IsActive {
		return nil, ErrInactiveUser
	}

	if err := s.hasher.Compare(u.PasswordHash, password); err != nil {
		return nil, ErrInvalidCredentials
	}

	now := time.Now().UTC()
	if err := s.repo.UpdateLastLogin(ctx, u.ID, now); err != nil {
		// Login still succeeds; the timestamp is informational.
		return u, nil
	}
	u.LastLoginAt = &now

	return u, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*User, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, filter Filter) ([]*User, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) UpdateProfile(ctx context.Context, id string, req UpdateProfileRequest) (*User, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.DisplayName != nil {
		u.DisplayName = strings.TrimSpace(*req.DisplayName)
	}
	if req.PhotoURL != nil {
		u.PhotoURL = req.PhotoURL
	}
	if req.PhoneNumber != nil {
		u.PhoneNumber = req.PhoneNumber
	}
	if req.Address != nil {
		u.Address = req.Address
	}
	if req.City != nil {
		u.City = req.City
	}
	if req.Country != nil {
		u.Country = req.Country
	}
	if req.ZipCode != nil {
		u.ZipCode = req.ZipCode
	}

	if err := s.repo.Update(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *service) AdminUpdate(ctx context.Context, id string, req AdminUpdateRequest) (*User, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Role != nil {
		role := Role(*req.Role)
		valid := false
		for _, r := range ValidRoles {
			if role == r {
				valid = true
				break
			}
		}
		if !valid {
			return nil, ErrInvalidRole
		}
		u.Role = role
	}
	if req.LodgeID != nil {
		if *req.LodgeID == "" {
			u.LodgeID = nil
		} else {
			u.LodgeID = req.LodgeID
		}
	}
	if req.IsActive != nil {
		u.IsActive = *req.IsActive
	}

	// A manager without an assigned lodge cannot authorize anything.
	if u.Role == RoleLodgeManager && u.LodgeID == nil {
		return nil, ErrLodgeRequired
	}

	if err := s.repo.Update(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}
