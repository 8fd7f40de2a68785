package lodge

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"
	"unicode"

	"github.com/stayloft/lodge-booking-backend/internal/cache"
)

type CreateRequest struct {
	Name         string
	Slug         string // optional; derived from Name when empty
	Description  string
	Address      string
	City         string
	Country      string
	ZipCode      string
	Latitude     float64
	Longitude    float64
	ImageURL     string
	Amenities    []string
	OwnerID      string
	ContactEmail string
	ContactPhone string
}

type UpdateRequest struct {
	Name         *string
	Description  *string
	Address      *string
	City         *string
	Country      *string
	ZipCode      *string
	Latitude     *float64
	Longitude    *float64
	ImageURL     *string
	Amenities    []string
	IsActive     *bool
	ContactEmail *string
	ContactPhone *string
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Lodge, error)
	GetByID(ctx context.Context, id string) (*Lodge, error)
	GetBySlug(ctx context.Context, slug string) (*Lodge, error)
	List(ctx context.Context, filter Filter) ([]*Lodge, int, error)
	Update(ctx context.Context, id string, req UpdateRequest) (*Lodge, error)
	// RefreshRating recomputes the denormalized rating aggregate from reviews.
	RefreshRating(ctx context.Context, id string) error
}

type service struct {
	repo     Repository
	cache    cache.Cache // nil disables caching
	cacheTTL time.Duration
}

func NewService(repo Repository, listCache cache.Cache, cacheTTL time.Duration) Service {
	return &service{
		repo:     repo,
		cache:    listCache,
		cacheTTL: cacheTTL,
	}
}

// Slugify normalizes a name into a lowercase URL-friendly slug.
func Slugify(name string) string {
	var b strings.Builder
	prevDash := true // avoid leading dash
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			prevDash = false
		case !prevDash:
			b.WriteByte('-')
			prevDash = true
		}
	}
	return strings.TrimRight(b.String(), "-")
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Lodge, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, ErrEmptyName
	}

	slug := req.Slug
	if slug == "" {
		slug = req.Name
	}
	slug = Slugify(slug)
	if slug == "" {
		return nil, ErrInvalidSlug
	}

	l := &Lodge{
		Name:         strings.TrimSpace(req.Name),
		Slug:         slug,
		Description:  req.Description,
		Address:      req.Address,
		City:         req.City,
		Country:      req.Country,
		ZipCode:      req.ZipCode,
		Latitude:     req.Latitude,
		Longitude:    req.Longitude,
		ImageURL:     req.ImageURL,
		Amenities:    req.Amenities,
		OwnerID:      req.OwnerID,
		IsActive:     true,
		ContactEmail: req.ContactEmail,
		ContactPhone: req.ContactPhone,
	}

	if err := s.repo.Create(ctx, l); err != nil {
		return nil, err
	}
	return l, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Lodge, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) GetBySlug(ctx context.Context, slug string) (*Lodge, error) {
	// Slugs are stored lowercase; compare case-insensitively.
	return s.repo.GetBySlug(ctx, strings.ToLower(strings.TrimSpace(slug)))
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Lodge, int, error) {
	type cachedPage struct {
		Lodges []*Lodge `json:"lodges"`
		Total  int      `json:"total"`
	}

	key := listCacheKey(filter)
	if s.cache != nil {
		var page cachedPage
		hit, err := s.cache.GetJSON(ctx, key, &page)
		if err != nil {
			log.Printf("lodge list cache read failed: %v", err)
		} else if hit {
			return page.Lodges, page.Total, nil
		}
	}

	lodges, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	if s.cache != nil {
		if err := s.cache.SetJSON(ctx, key, cachedPage{Lodges: lodges, Total: total}, s.cacheTTL); err != nil {
			log.Printf("lodge list cache write failed: %v", err)
		}
	}

	return lodges, total, nil
}

func listCacheKey(filter Filter) string {
	active := "any"
	if filter.IsActive != nil {
		active = fmt.Sprintf("%t", *filter.IsActive)
	}
	return fmt.Sprintf("cache:lodges:%s:%s:%d:%d", strings.ToLower(filter.City), active, filter.Page, filter.PageSize)
}

func (s *service) Update(ctx context.Context, id string, req UpdateRequest) (*Lodge, error) {
	l, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, ErrEmptyName
		}
		// The slug is deliberately not re-derived; bookings and URLs keep working.
		l.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		l.Description = *req.Description
	}
	if req.Address != nil {
		l.Address = *req.Address
	}
	if req.City != nil {
		l.City = *req.City
	}
	if req.Country != nil {
		l.Country = *req.Country
	}
	if req.ZipCode != nil {
		l.ZipCode = *req.ZipCode
	}
	if req.Latitude != nil {
		l.Latitude = *req.Latitude
	}
	if req.Longitude != nil {
		l.Longitude = *req.Longitude
	}
	if req.ImageURL != nil {
		l.ImageURL = *req.ImageURL
	}
	if req.Amenities != nil {
		l.Amenities = req.Amenities
	}
	if req.IsActive != nil {
		l.IsActive = *req.IsActive
	}
	if req.ContactEmail != nil {
		l.ContactEmail = *req.ContactEmail
	}
	if req.ContactPhone != nil {
		l.ContactPhone = *req.ContactPhone
	}

	if err := s.repo.Update(ctx, l); err != nil {
		return nil, err
	}
	return l, nil
}

func (s *service) RefreshRating(ctx context.Context, id string) error {
	return s.repo.RefreshRating(ctx, id)
}
