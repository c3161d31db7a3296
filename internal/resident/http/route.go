package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers resident and authentication routes.
func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware, adminMiddleware gin.HandlerFunc) {
	authGroup := g.Group("/auth")
	{
		authGroup.POST("/register", h.Register)
		authGroup.POST("/login", h.Login)
	}

	group := g.Group("/residents")
	group.Use(authMiddleware)
	{
		group.GET("/:id", h.Get)
	}

	admin := group.Group("")
	admin.Use(adminMiddleware)
	{
		admin.GET("", h.List)
	}
}
