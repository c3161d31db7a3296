package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers amenity routes. Reading is open to any resident;
// editing the catalogue and its operating hours is an administrator task.
func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware, adminMiddleware gin.HandlerFunc) {
	group := g.Group("/amenities")
	group.Use(authMiddleware)
	{
		group.GET("", h.List)
		group.GET("/:id", h.Get)
	}

	admin := group.Group("")
	admin.Use(adminMiddleware)
	{
		admin.POST("", h.Create)
		admin.PATCH("/:id", h.Update)
		admin.PUT("/:id/availability", h.SetAvailability)
		admin.DELETE("/:id", h.Delete)
	}
}
