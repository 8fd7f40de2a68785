package review

import (
	"context"
	"errors"
	"log"

	"github.com/stayloft/lodge-booking-backend/internal/lodge"
)

// CreateRequest defines the data needed to create a review.
type CreateRequest struct {
	LodgeID string
	UserID  string
	Rating  int
	Comment string
}

// Service defines the business logic for lodge reviews.
type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Review, error)
	GetByID(ctx context.Context, id string) (*Review, error)
	ListByLodge(ctx context.Context, lodgeID string, page, pageSize int) ([]*Review, int, error)
	Delete(ctx context.Context, id string) error
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

func (s *service) Create(ctx context.Context, req CreateRequest) (*Review, error) {
	if req.Rating < 1 || req.Rating > 5 {
		return nil, ErrInvalidRating
	}

	if _, err := s.lodgeService.GetByID(ctx, req.LodgeID); err != nil {
		if errors.Is(err, lodge.ErrNotFound) {
			return nil, ErrInvalidLodge
		}
		return nil, err
	}

	rv := &Review{
		LodgeID: req.LodgeID,
		UserID:  req.UserID,
		Rating:  req.Rating,
		Comment: req.Comment,
	}
	if err := s.repo.Create(ctx, rv); err != nil {
		return nil, err
	}

	s.refreshRating(ctx, req.LodgeID)
	return rv, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Review, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) ListByLodge(ctx context.Context, lodgeID string, page, pageSize int) ([]*Review, int, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return s.repo.ListByLodge(ctx, lodgeID, page, pageSize)
}

func (s *service) Delete(ctx context.Context, id string) error {
	rv, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.refreshRating(ctx, rv.LodgeID)
	return nil
}

// refreshRating recomputes the lodge's aggregate rating. The aggregate is
// derived data, so a failed refresh is logged rather than failing the write.
func (s *service) refreshRating(ctx context.Context, lodgeID string) {
	if err := s.lodgeService.RefreshRating(ctx, lodgeID); err != nil {
		log.Printf("failed to refresh rating for lodge %s: %v", lodgeID, err)
	}
}
