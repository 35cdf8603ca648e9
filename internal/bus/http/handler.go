package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/swiftroute/bus-ticketing-backend/internal/bus"
	"github.com/swiftroute/bus-ticketing-backend/internal/pkg/request"
	"github.com/swiftroute/bus-ticketing-backend/internal/pkg/response"
)

type Handler struct {
	service bus.Service
}

func NewHandler(service bus.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Create(c *gin.Context) {
	var body CreateBusRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	b, err := h.service.Create(c.Request.Context(), bus.CreateRequest{
		OperatorID: body.OperatorID,
		BusNumber:  body.BusNumber,
		BusType:    bus.Type(body.BusType),
		TotalSeats: body.TotalSeats,
		Amenities:  body.Amenities,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewBusResponse(b))
}

func (h *Handler) Get(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid bus id"})
		return
	}

	b, err := h.service.GetByID(c.Request.Context(), uri.ID)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewBusResponse(b))
}

func (h *Handler) List(c *gin.Context) {
	var q ListBusesRequest
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters"})
		return
	}

	buses, total, err := h.service.List(c.Request.Context(), bus.Filter{
		OperatorID: q.OperatorID,
		BusType:    q.BusType,
		IsActive:   q.IsActive,
		Page:       q.Page,
		PageSize:   q.PageSize,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]BusResponse, len(buses))
	for i, b := range buses {
		items[i] = NewBusResponse(b)
	}

	c.JSON(http.StatusOK, response.NewPageResponse(items, q.Page, q.PageSize, total))
}

func (h *Handler) Update(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid bus id"})
		return
	}

	var body UpdateBusRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	req := bus.UpdateRequest{
		BusNumber:  body.BusNumber,
		TotalSeats: body.TotalSeats,
		Amenities:  body.Amenities,
		IsActive:   body.IsActive,
	}
	if body.BusType != nil {
		t := bus.Type(*body.BusType)
		req.BusType = &t
	}

	b, err := h.service.Update(c.Request.Context(), uri.ID, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewBusResponse(b))
}

func (h *Handler) Delete(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid bus id"})
		return
	}

	if err := h.service.Delete(c.Request.Context(), uri.ID); err != nil {
		response.Error(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
