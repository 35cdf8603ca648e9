package http

import (
	"time"

	"github.com/swiftroute/bus-ticketing-backend/internal/payment"
)

type ProcessPaymentRequest struct {
	BookingID string `json:"booking_id" binding:"required,uuid"`
	Amount    int64  `json:"amount" binding:"required,min=1"`
	Method    string `json:"method" binding:"required,oneof=CASH CARD UPI WALLET"`
}

type ByTransactionRequest struct {
	TransactionID string `uri:"transactionId" binding:"required,len=15,alphanum"`
}

type UpdatePaymentStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=PENDING SUCCESS FAILED REFUNDED"`
}

type PaymentResponse struct {
	ID             string    `json:"id"`
	BookingID      string    `json:"booking_id"`
	TransactionID  string    `json:"transaction_id"`
	Amount         int64     `json:"amount"`
	Method         string    `json:"method"`
	Status         string    `json:"status"`
	GatewayMessage string    `json:"gateway_message"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func NewPaymentResponse(p *payment.Payment) PaymentResponse {
	return PaymentResponse{
		ID:             p.ID,
		BookingID:      p.BookingID,
		TransactionID:  p.TransactionID,
		Amount:         p.Amount,
		Method:         string(p.Method),
		Status:         string(p.Status),
		GatewayMessage: p.GatewayMessage,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}
