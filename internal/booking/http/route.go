package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers booking routes. Bookings are never deleted; their
// lifecycle ends in a terminal status instead.
func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware gin.HandlerFunc) {
	group := g.Group("/bookings")

	group.Use(authMiddleware)
	{
		group.GET("", h.List)
		group.GET("/verdict", h.Verdict)
		group.GET("/:id", h.Get)
		group.POST("", h.Create)
		group.PATCH("/:id/status", h.UpdateStatus)
	}
}
