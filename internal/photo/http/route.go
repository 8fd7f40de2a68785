package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers photo routes. Reads are public.
func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware gin.HandlerFunc) {
	g.GET("/lodges/:id/photos", h.ListByLodge)
	g.POST("/lodges/:id/photos", authMiddleware, h.Upload)

	photos := g.Group("/photos")
	{
		photos.GET("/:id/content", h.Download)
		photos.GET("/:id/thumbnail", h.DownloadThumbnail)
		photos.DELETE("/:id", authMiddleware, h.Delete)
	}
}
