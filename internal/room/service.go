package room

import (
	"context"
	"errors"
	"strings"

	"github.com/stayloft/lodge-booking-backend/internal/lodge"
)

type CreateRequest struct {
	LodgeID        string
	Name           string
	Description    string
	RoomType       string
	Capacity       int
	BasePriceCents int64
	Currency       string
	Amenities      []string
	ImageURLs      []string
	TotalRooms     int
}

type UpdateRequest struct {
	Name           *string
	Description    *string
	Capacity       *int
	BasePriceCents *int64
	Amenities      []string
	ImageURLs      []string
	TotalRooms     *int
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Room, error)
	GetByID(ctx context.Context, id string) (*Room, error)
	ListByLodge(ctx context.Context, lodgeID string) ([]*Room, error)
	Update(ctx context.Context, id string, req UpdateRequest) (*Room, error)
}

type service struct {
	repo         Repository
	lodgeService lodge.Service
}

func NewService(repo Repository, lodgeService lodge.Service) Service {
	return &service{
		repo:         repo,
		lodgeService: lodgeService,
	}
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Room, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, ErrEmptyName
	}
	if req.LodgeID == "" {
		return nil, ErrInvalidLodge
	}

	roomType := Type(req.RoomType)
	validType := false
	for _, t := range ValidTypes {
		if roomType == t {
			validType = true
			break
		}
	}
	if !validType {
		return nil, ErrInvalidRoomType
	}

	if req.Capacity < 1 {
		return nil, ErrInvalidCapacity
	}
	if req.BasePriceCents < 0 {
		return nil, ErrInvalidPrice
	}
	if req.TotalRooms < 1 {
		return nil, ErrInvalidUnits
	}

	// A room's lodge reference must always resolve.
	if _, err := s.lodgeService.GetByID(ctx, req.LodgeID); err != nil {
		if errors.Is(err, lodge.ErrNotFound) {
			return nil, ErrInvalidLodge
		}
		return nil, err
	}

	currency := strings.ToUpper(strings.TrimSpace(req.Currency))
	if currency == "" {
		currency = "USD"
	}

	r := &Room{
		LodgeID:        req.LodgeID,
		Name:           strings.TrimSpace(req.Name),
		Description:    req.Description,
		RoomType:       roomType,
		Capacity:       req.Capacity,
		BasePriceCents: req.BasePriceCents,
		Currency:       currency,
		Amenities:      req.Amenities,
		ImageURLs:      req.ImageURLs,
		TotalRooms:     req.TotalRooms,
	}

	if err := s.repo.Create(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Room, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) ListByLodge(ctx context.Context, lodgeID string) ([]*Room, error) {
	return s.repo.ListByLodge(ctx, lodgeID)
}

func (s *service) Update(ctx context.Context, id string, req UpdateRequest) (*Room, error) {
	r, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, ErrEmptyName
		}
		r.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		r.Description = *req.Description
	}
	if req.Capacity != nil {
		if *req.Capacity < 1 {
			return nil, ErrInvalidCapacity
		}
		r.Capacity = *req.Capacity
	}
	if req.BasePriceCents != nil {
		if *req.BasePriceCents < 0 {
			return nil, ErrInvalidPrice
		}
		r.BasePriceCents = *req.BasePriceCents
	}
	if req.Amenities != nil {
		r.Amenities = req.Amenities
	}
	if req.ImageURLs != nil {
		r.ImageURLs = req.ImageURLs
	}
	if req.TotalRooms != nil {
		if *req.TotalRooms < 1 {
			return nil, ErrInvalidUnits
		}
		r.TotalRooms = *req.TotalRooms
	}

	if err := s.repo.Update(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}
