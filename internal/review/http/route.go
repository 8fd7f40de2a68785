package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers review routes. Listing is public.
func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware gin.HandlerFunc) {
	g.GET("/lodges/:id/reviews", h.ListByLodge)
	g.POST("/lodges/:id/reviews", authMiddleware, h.Create)
	g.DELETE("/reviews/:id", authMiddleware, h.Delete)
}
