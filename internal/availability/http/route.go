package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers availability routes. Calendar reads are public.
func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware gin.HandlerFunc) {
	g.GET("/rooms/:id/availability", h.QueryCapacity)
	g.PUT("/rooms/:id/availability", authMiddleware, h.SetDay)
}
