package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers room routes. Reads are public.
func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware gin.HandlerFunc) {
	rooms := g.Group("/rooms")
	{
		rooms.GET("/:id", h.Get)
		rooms.POST("", authMiddleware, h.Create)
		rooms.PATCH("/:id", authMiddleware, h.Update)
	}

	g.GET("/lodges/:id/rooms", h.ListByLodge)
}
