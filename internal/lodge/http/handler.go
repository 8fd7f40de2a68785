package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stayloft/lodge-booking-backend/internal/auth"
	"github.com/stayloft/lodge-booking-backend/internal/lodge"
	"github.com/stayloft/lodge-booking-backend/internal/pkg/response"
)

type Handler struct {
	service lodge.Service
}

func NewHandler(service lodge.Service) *Handler {
	return &Handler{service: service}
}

// List returns lodges matching optional city and is_active filters.
// Unauthenticated callers only ever see active lodges.
func (h *Handler) List(c *gin.Context) {
	var req ListLodgesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters", "details": err.Error()})
		return
	}

	filter := lodge.Filter{
		City:     req.City,
		IsActive: req.IsActive,
		Page:     req.Page,
		PageSize: req.PageSize,
	}

	// Only admins may list inactive lodges.
	if !auth.IsAdmin(c) {
		active := true
		filter.IsActive = &active
	}

	lodges, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list lodges"})
		return
	}

	items := make([]LodgeResponse, len(lodges))
	for i, l := range lodges {
		items[i] = NewLodgeResponse(l)
	}

	c.JSON(http.StatusOK, response.NewPageResponse(items, req.Page, req.PageSize, total))
}

// Get returns a single lodge by ID.
func (h *Handler) Get(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	l, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, lodge.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "lodge not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get lodge"})
		return
	}

	c.JSON(http.StatusOK, NewLodgeResponse(l))
}

// GetBySlug returns a single lodge by its URL slug (case-insensitive).
func (h *Handler) GetBySlug(c *gin.Context) {
	slug := c.Param("slug")
	if slug == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing slug"})
		return
	}

	l, err := h.service.GetBySlug(c.Request.Context(), slug)
	if err != nil {
		if errors.Is(err, lodge.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "lodge not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get lodge"})
		return
	}

	c.JSON(http.StatusOK, NewLodgeResponse(l))
}

// Create creates a lodge. Admin only (enforced by route middleware).
func (h *Handler) Create(c *gin.Context) {
	var body CreateLodgeBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	l, err := h.service.Create(c.Request.Context(), lodge.CreateRequest{
		Name:         body.Name,
		Slug:         body.Slug,
		Description:  body.Description,
		Address:      body.Address,
		City:         body.City,
		Country:      body.Country,
		ZipCode:      body.ZipCode,
		Latitude:     body.Latitude,
		Longitude:    body.Longitude,
		ImageURL:     body.ImageURL,
		Amenities:    body.Amenities,
		OwnerID:      body.OwnerID,
		ContactEmail: body.ContactEmail,
		ContactPhone: body.ContactPhone,
	})
	if err != nil {
		switch {
		case errors.Is(err, lodge.ErrEmptyName), errors.Is(err, lodge.ErrInvalidSlug):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, lodge.ErrSlugAlreadyUsed):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create lodge"})
		}
		return
	}

	c.JSON(http.StatusCreated, NewLodgeResponse(l))
}

// Update modifies lodge fields. Admin or the lodge's manager.
func (h *Handler) Update(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	if !auth.IsAdmin(c) && !auth.ManagesLodge(c, id) {
		c.JSON(http.StatusForbidden, gin.H{"error": "permission denied"})
		return
	}

	var body UpdateLodgeBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	l, err := h.service.Update(c.Request.Context(), id, lodge.UpdateRequest{
		Name:         body.Name,
		Description:  body.Description,
		Address:      body.Address,
		City:         body.City,
		Country:      body.Country,
		ZipCode:      body.ZipCode,
		Latitude:     body.Latitude,
		Longitude:    body.Longitude,
		ImageURL:     body.ImageURL,
		Amenities:    body.Amenities,
		IsActive:     body.IsActive,
		ContactEmail: body.ContactEmail,
		ContactPhone: body.ContactPhone,
	})
	if err != nil {
		switch {
		case errors.Is(err, lodge.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "lodge not found"})
		case errors.Is(err, lodge.ErrEmptyName):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update lodge"})
		}
		return
	}

	c.JSON(http.StatusOK, NewLodgeResponse(l))
}
