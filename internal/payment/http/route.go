package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware, adminMiddleware gin.HandlerFunc) {
	group := g.Group("/payments")
	group.Use(authMiddleware)

	group.POST("", h.Process)
	group.GET("/:id", h.Get)
	group.GET("/transaction/:transactionId", h.GetByTransaction)
	group.GET("/booking/:id", h.ListByBooking)
	group.POST("/:id/refund", h.Refund)

	// Status overrides are restricted to admins.
	group.PATCH("/:id/status", adminMiddleware, h.UpdateStatus)
}
