package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware, adminMiddleware gin.HandlerFunc) {
	group := g.Group("/operators")

	group.GET("", h.List)
	group.GET("/:id", h.Get)

	// Mutations are restricted to admins.
	group.Use(authMiddleware, adminMiddleware)
	{
		group.POST("", h.Create)
		group.PATCH("/:id", h.Update)
		group.DELETE("/:id", h.Delete)
	}
}
