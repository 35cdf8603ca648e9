package payment

import (
	"net/http"
	"time"

	"github.com/swiftroute/bus-ticketing-backend/internal/pkg/apperror"
)

var (
	ErrNotFound       = apperror.New(http.StatusNotFound, "payment not found")
	ErrForbidden      = apperror.New(http.StatusForbidden, "you can only manage payments for your own bookings")
	ErrAmountMismatch = apperror.New(http.StatusBadRequest, "payment amount does not match the booking total")
	ErrNotPayable     = apperror.New(http.StatusBadRequest, "booking status does not allow payment")
	ErrAlreadyPaid    = apperror.New(http.StatusConflict, "booking already has a successful payment")
	ErrNotRefundable  = apperror.New(http.StatusBadRequest, "only successful payments can be refunded")
	ErrInvalidStatus  = apperror.New(http.StatusBadRequest, "invalid payment status")
)

type Status string

const (
	StatusPending  Status = "PENDING"
	StatusSuccess  Status = "SUCCESS"
	StatusFailed   Status = "FAILED"
	StatusRefunded Status = "REFUNDED"
)

func ValidStatus(s Status) bool {
	switch s {
	case StatusPending, StatusSuccess, StatusFailed, StatusRefunded:
		return true
	}
	return false
}

type Method string

const (
	MethodCash   Method = "CASH"
	MethodCard   Method = "CARD"
	MethodUPI    Method = "UPI"
	MethodWallet Method = "WALLET"
)

// Payment records one settlement attempt against a booking. Amount is in
// minor currency units. GatewayMessage carries the gateway's last word on
// the attempt, including decline and timeout reasons.
type Payment struct {
	ID             string
	BookingID      string
	TransactionID  string
	Amount         int64
	Method         Method
	Status         Status
	GatewayMessage string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
