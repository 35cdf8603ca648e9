package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware, adminMiddleware gin.HandlerFunc) {
	group := g.Group("/search")

	group.GET("/schedules", h.Search)

	// Index maintenance is restricted to admins.
	group.Use(authMiddleware, adminMiddleware)
	{
		group.POST("/sync", h.Sync)
		group.POST("/schedules/:id/reindex", h.Reindex)
		group.GET("/documents/count", h.Count)
	}
}
