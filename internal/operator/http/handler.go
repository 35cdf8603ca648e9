package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/swiftroute/bus-ticketing-backend/internal/operator"
	"github.com/swiftroute/bus-ticketing-backend/internal/pkg/request"
	"github.com/swiftroute/bus-ticketing-backend/internal/pkg/response"
)

type Handler struct {
	service operator.Service
}

func NewHandler(service operator.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Create(c *gin.Context) {
	var body CreateOperatorRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	o, err := h.service.Create(c.Request.Context(), operator.CreateRequest{
		Name:          body.Name,
		ContactEmail:  body.ContactEmail,
		ContactPhone:  body.ContactPhone,
		LicenseNumber: body.LicenseNumber,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewOperatorResponse(o))
}

func (h *Handler) Get(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid operator id"})
		return
	}

	o, err := h.service.GetByID(c.Request.Context(), uri.ID)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewOperatorResponse(o))
}

func (h *Handler) List(c *gin.Context) {
	var q ListOperatorsRequest
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters"})
		return
	}

	operators, total, err := h.service.List(c.Request.Context(), operator.Filter{
		Name:     q.Name,
		IsActive: q.IsActive,
		Page:     q.Page,
		PageSize: q.PageSize,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]OperatorResponse, len(operators))
	for i, o := range operators {
		items[i] = NewOperatorResponse(o)
	}

	c.JSON(http.StatusOK, response.NewPageResponse(items, q.Page, q.PageSize, total))
}

func (h *Handler) Update(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid operator id"})
		return
	}

	var body UpdateOperatorRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	o, err := h.service.Update(c.Request.Context(), uri.ID, operator.UpdateRequest{
		Name:          body.Name,
		ContactEmail:  body.ContactEmail,
		ContactPhone:  body.ContactPhone,
		LicenseNumber: body.LicenseNumber,
		IsActive:      body.IsActive,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewOperatorResponse(o))
}

func (h *Handler) Delete(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid operator id"})
		return
	}

	if err := h.service.Delete(c.Request.Context(), uri.ID); err != nil {
		response.Error(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
