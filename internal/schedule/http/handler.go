package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/swiftroute/bus-ticketing-backend/internal/pkg/request"
	"github.com/swiftroute/bus-ticketing-backend/internal/pkg/response"
	"github.com/swiftroute/bus-ticketing-backend/internal/schedule"
)

type Handler struct {
	service schedule.Service
}

func NewHandler(service schedule.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Create(c *gin.Context) {
	var body CreateScheduleRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	s, err := h.service.Create(c.Request.Context(), schedule.CreateRequest{
		BusID:         body.BusID,
		RouteID:       body.RouteID,
		DepartureTime: body.DepartureTime,
		ArrivalTime:   body.ArrivalTime,
		Price:         body.Price,
		IsRecurring:   body.IsRecurring,
		DaysOfWeek:    body.DaysOfWeek,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewScheduleResponse(s))
}

func (h *Handler) Get(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid schedule id"})
		return
	}

	s, err := h.service.GetByID(c.Request.Context(), uri.ID)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewScheduleResponse(s))
}

func (h *Handler) List(c *gin.Context) {
	var q ListSchedulesRequest
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters"})
		return
	}

	schedules, total, err := h.service.List(c.Request.Context(), schedule.Filter{
		BusID:    q.BusID,
		RouteID:  q.RouteID,
		IsActive: q.IsActive,
		Page:     q.Page,
		PageSize: q.PageSize,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]ScheduleResponse, len(schedules))
	for i, s := range schedules {
		items[i] = NewScheduleResponse(s)
	}

	c.JSON(http.StatusOK, response.NewPageResponse(items, q.Page, q.PageSize, total))
}

func (h *Handler) Update(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid schedule id"})
		return
	}

	var body UpdateScheduleRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	s, err := h.service.Update(c.Request.Context(), uri.ID, schedule.UpdateRequest{
		DepartureTime: body.DepartureTime,
		ArrivalTime:   body.ArrivalTime,
		Price:         body.Price,
		IsRecurring:   body.IsRecurring,
		DaysOfWeek:    body.DaysOfWeek,
		IsActive:      body.IsActive,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewScheduleResponse(s))
}

func (h *Handler) Delete(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid schedule id"})
		return
	}

	if err := h.service.Delete(c.Request.Context(), uri.ID); err != nil {
		response.Error(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
