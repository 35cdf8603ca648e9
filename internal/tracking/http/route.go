package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware gin.HandlerFunc) {
	group := g.Group("/tracking")

	// Riders follow their bus and shared tracking links without logging in.
	group.GET("/bus/:id/latest", h.Latest)
	group.GET("/bus/:id/history", h.History)
	group.GET("/booking/:reference", h.LatestForBooking)

	// Position reports come from operator devices.
	group.POST("/bus/:id/locations", authMiddleware, h.Record)
}
