package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stayloft/lodge-booking-backend/internal/auth"
	"github.com/stayloft/lodge-booking-backend/internal/pkg/request"
	"github.com/stayloft/lodge-booking-backend/internal/pkg/response"
	"github.com/stayloft/lodge-booking-backend/internal/review"
)

type Handler struct {
	service review.Service
}

func NewHandler(service review.Service) *Handler {
	return &Handler{service: service}
}

// Create posts a review for a lodge on behalf of the authenticated user.
func (h *Handler) Create(c *gin.Context) {
	lodgeID := c.Param("id")
	if _, err := uuid.Parse(lodgeID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	var body CreateReviewBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	rv, err := h.service.Create(c.Request.Context(), review.CreateRequest{
		LodgeID: lodgeID,
		UserID:  auth.GetUserID(c),
		Rating:  body.Rating,
		Comment: body.Comment,
	})
	if err != nil {
		switch {
		case errors.Is(err, review.ErrInvalidLodge):
			c.JSON(http.StatusNotFound, gin.H{"error": "lodge not found"})
		case errors.Is(err, review.ErrInvalidRating):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, review.ErrAlreadyReviewed):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create review"})
		}
		return
	}

	c.JSON(http.StatusCreated, NewReviewResponse(rv))
}

// ListByLodge returns a lodge's reviews, newest first.
func (h *Handler) ListByLodge(c *gin.Context) {
	lodgeID := c.Param("id")
	if _, err := uuid.Parse(lodgeID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	var params request.ListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters", "details": err.Error()})
		return
	}

	reviews, total, err := h.service.ListByLodge(c.Request.Context(), lodgeID, params.Page, params.PageSize)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list reviews"})
		return
	}

	items := make([]ReviewResponse, len(reviews))
	for i, rv := range reviews {
		items[i] = NewReviewResponse(rv)
	}

	c.JSON(http.StatusOK, response.NewPageResponse(items, params.Page, params.PageSize, total))
}

// Delete removes a review. Author or admin.
func (h *Handler) Delete(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	rv, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, review.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "review not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get review"})
		return
	}

	if rv.UserID != auth.GetUserID(c) && !auth.IsAdmin(c) {
		c.JSON(http.StatusForbidden, gin.H{"error": "permission denied"})
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, review.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "review not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete review"})
		return
	}

	c.Status(http.StatusNoContent)
}
