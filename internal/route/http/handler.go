package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/swiftroute/bus-ticketing-backend/internal/pkg/request"
	"github.com/swiftroute/bus-ticketing-backend/internal/pkg/response"
	"github.com/swiftroute/bus-ticketing-backend/internal/route"
)

type Handler struct {
	service route.Service
}

func NewHandler(service route.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Create(c *gin.Context) {
	var body CreateRouteRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	rt, err := h.service.Create(c.Request.Context(), route.CreateRequest{
		Origin:                 body.Origin,
		Destination:            body.Destination,
		DistanceKm:             body.DistanceKm,
		EstimatedDurationHours: body.EstimatedDurationHours,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewRouteResponse(rt))
}

func (h *Handler) Get(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid route id"})
		return
	}

	rt, err := h.service.GetByID(c.Request.Context(), uri.ID)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewRouteResponse(rt))
}

func (h *Handler) List(c *gin.Context) {
	var q ListRoutesRequest
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters"})
		return
	}

	routes, total, err := h.service.List(c.Request.Context(), route.Filter{
		Origin:      q.Origin,
		Destination: q.Destination,
		IsActive:    q.IsActive,
		Page:        q.Page,
		PageSize:    q.PageSize,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]RouteResponse, len(routes))
	for i, rt := range routes {
		items[i] = NewRouteResponse(rt)
	}

	c.JSON(http.StatusOK, response.NewPageResponse(items, q.Page, q.PageSize, total))
}

func (h *Handler) Update(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid route id"})
		return
	}

	var body UpdateRouteRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	rt, err := h.service.Update(c.Request.Context(), uri.ID, route.UpdateRequest{
		Origin:                 body.Origin,
		Destination:            body.Destination,
		DistanceKm:             body.DistanceKm,
		EstimatedDurationHours: body.EstimatedDurationHours,
		IsActive:               body.IsActive,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewRouteResponse(rt))
}

func (h *Handler) Delete(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid route id"})
		return
	}

	if err := h.service.Delete(c.Request.Context(), uri.ID); err != nil {
		response.Error(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
