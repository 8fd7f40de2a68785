package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers lodge routes.
// Reads are public; writes require auth (admin checked per-handler or by middleware).
func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware, adminMiddleware gin.HandlerFunc) {
	lodges := g.Group("/lodges")
	{
		lodges.GET("", h.List)
		lodges.GET("/:id", h.Get)
		lodges.POST("", authMiddleware, adminMiddleware, h.Create)
		lodges.PATCH("/:id", authMiddleware, h.Update)
	}

	// Slug-based lookup used by public lodge pages.
	g.GET("/stay/:slug", h.GetBySlug)
}
