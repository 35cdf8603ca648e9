package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/swiftroute/bus-ticketing-backend/internal/auth"
	"github.com/swiftroute/bus-ticketing-backend/internal/payment"
	"github.com/swiftroute/bus-ticketing-backend/internal/pkg/request"
	"github.com/swiftroute/bus-ticketing-backend/internal/pkg/response"
)

type Handler struct {
	service payment.Service
}

func NewHandler(service payment.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Process(c *gin.Context) {
	var body ProcessPaymentRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	p, err := h.service.Process(c.Request.Context(), auth.GetUserID(c), payment.ProcessInput{
		BookingID: body.BookingID,
		Amount:    body.Amount,
		Method:    payment.Method(body.Method),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewPaymentResponse(p))
}

func (h *Handler) Get(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payment id"})
		return
	}

	p, err := h.service.GetByID(c.Request.Context(), uri.ID, auth.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewPaymentResponse(p))
}

func (h *Handler) GetByTransaction(c *gin.Context) {
	var uri ByTransactionRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid transaction id"})
		return
	}

	p, err := h.service.GetByTransactionID(c.Request.Context(), uri.TransactionID, auth.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewPaymentResponse(p))
}

func (h *Handler) ListByBooking(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid booking id"})
		return
	}

	payments, err := h.service.ListByBooking(c.Request.Context(), uri.ID, auth.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]PaymentResponse, len(payments))
	for i, p := range payments {
		items[i] = NewPaymentResponse(p)
	}

	c.JSON(http.StatusOK, items)
}

func (h *Handler) Refund(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payment id"})
		return
	}

	p, err := h.service.Refund(c.Request.Context(), uri.ID, auth.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewPaymentResponse(p))
}

func (h *Handler) UpdateStatus(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payment id"})
		return
	}

	var body UpdatePaymentStatusRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	p, err := h.service.UpdateStatus(c.Request.Context(), uri.ID, payment.Status(body.Status))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewPaymentResponse(p))
}
