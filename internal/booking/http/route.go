package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware, adminMiddleware gin.HandlerFunc) {
	group := g.Group("/bookings")

	// Seat maps are needed before login, during seat selection.
	group.GET("/schedule/:id/booked-seats", h.BookedSeats)

	authed := group.Group("")
	authed.Use(authMiddleware)
	{
		authed.POST("", h.Create)
		authed.GET("", h.List)
		authed.GET("/:id", h.Get)
		authed.GET("/reference/:reference", h.GetByReference)
		authed.POST("/:id/cancel", h.Cancel)
	}

	admin := group.Group("")
	admin.Use(authMiddleware, adminMiddleware)
	{
		admin.POST("/:id/confirm", h.Confirm)
	}
}
