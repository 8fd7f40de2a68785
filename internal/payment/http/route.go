package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers payment routes. The webhook is called by the
// payment provider and carries its own correlation via the reference.
func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware gin.HandlerFunc) {
	payments := g.Group("/payments")
	{
		payments.POST("/intent", authMiddleware, h.CreateIntent)
		payments.POST("/webhook", h.Webhook)
	}
}
