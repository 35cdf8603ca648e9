package payment

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/swiftroute/bus-ticketing-backend/internal/booking"
)

// Bookings is the slice of the booking API the settlement flow needs.
// booking.Service satisfies it.
type Bookings interface {
	GetByID(ctx context.Context, id string) (*booking.Detail, error)
	Confirm(ctx context.Context, id string) error
	Cancel(ctx context.Context, id string, userID string) error
}

type ProcessInput struct {
	BookingID string
	Amount    int64
	Method    Method
}

type Service interface {
	// Process charges the gateway for a pending booking and confirms the
	// booking when the charge succeeds. A declined or timed-out charge is
	// recorded as FAILED and returned, not surfaced as an error.
	Process(ctx context.Context, userID string, in ProcessInput) (*Payment, error)
	GetByID(ctx context.Context, id string, userID string) (*Payment, error)
	GetByTransactionID(ctx context.Context, transactionID string, userID string) (*Payment, error)
	ListByBooking(ctx context.Context, bookingID string, userID string) ([]*Payment, error)
	// UpdateStatus is an administrative override. Setting SUCCESS also
	// confirms the booking.
	UpdateStatus(ctx context.Context, id string, status Status) (*Payment, error)
	// Refund reverses a successful payment and cancels its booking.
	Refund(ctx context.Context, id string, userID string) (*Payment, error)
}

type service struct {
	repo           Repository
	bookings       Bookings
	gateway        Gateway
	gatewayTimeout time.Duration
}

func NewService(repo Repository, bookings Bookings, gateway Gateway, gatewayTimeout time.Duration) Service {
	return &service{
		repo:           repo,
		bookings:       bookings,
		gateway:        gateway,
		gatewayTimeout: gatewayTimeout,
	}
}

func (s *service) Process(ctx context.Context, userID string, in ProcessInput) (*Payment, error) {
	detail, err := s.bookings.GetByID(ctx, in.BookingID)
	if err != nil {
		return nil, err
	}
	b := detail.Booking

	if b.UserID != userID {
		return nil, ErrForbidden
	}
	if b.Status != booking.StatusPending {
		return nil, ErrNotPayable
	}
	if paid, err := s.repo.ExistsSuccessful(ctx, b.ID); err != nil {
		return nil, err
	} else if paid {
		return nil, ErrAlreadyPaid
	}
	if in.Amount != b.TotalAmount {
		return nil, ErrAmountMismatch
	}

	txnID, err := NewTransactionID()
	if err != nil {
		return nil, fmt.Errorf("generate transaction id failed: %w", err)
	}

	p := &Payment{
		BookingID:     b.ID,
		TransactionID: txnID,
		Amount:        in.Amount,
		Method:        in.Method,
		Status:        StatusPending,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}

	chargeCtx, cancel := context.WithTimeout(ctx, s.gatewayTimeout)
	defer cancel()

	result, err := s.gateway.Charge(chargeCtx, ChargeRequest{
		TransactionID: txnID,
		Amount:        in.Amount,
		Method:        in.Method,
	})
	if err != nil {
		// The gateway never answered. The charge is treated as failed;
		// reconciliation against the provider happens out of band.
		return s.finalize(ctx, p, StatusFailed, "gateway timeout: "+err.Error())
	}
	if !result.Succeeded {
		return s.finalize(ctx, p, StatusFailed, result.Message)
	}

	p, err = s.finalize(ctx, p, StatusSuccess, result.Message)
	if err != nil {
		return nil, err
	}

	if err := s.bookings.Confirm(ctx, b.ID); err != nil {
		// The payment settled; leave the booking for the manual confirm
		// path rather than failing the request.
		log.Printf("[payment] confirm booking %s after payment %s failed: %v", b.ID, p.ID, err)
	}
	return p, nil
}

func (s *service) finalize(ctx context.Context, p *Payment, status Status, message string) (*Payment, error) {
	if err := s.repo.UpdateStatus(ctx, p.ID, status, message); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, p.ID)
}

func (s *service) GetByID(ctx context.Context, id string, userID string) (*Payment, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.checkOwner(ctx, p.BookingID, userID); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *service) GetByTransactionID(ctx context.Context, transactionID string, userID string) (*Payment, error) {
	p, err := s.repo.GetByTransactionID(ctx, transactionID)
	if err != nil {
		return nil, err
	}
	if err := s.checkOwner(ctx, p.BookingID, userID); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *service) ListByBooking(ctx context.Context, bookingID string, userID string) ([]*Payment, error) {
	if err := s.checkOwner(ctx, bookingID, userID); err != nil {
		return nil, err
	}
	return s.repo.ListByBooking(ctx, bookingID)
}

func (s *service) UpdateStatus(ctx context.Context, id string, status Status) (*Payment, error) {
	if !ValidStatus(status) {
		return nil, ErrInvalidStatus
	}

	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.repo.UpdateStatus(ctx, id, status, ""); err != nil {
		return nil, err
	}

	if status == StatusSuccess {
		if err := s.bookings.Confirm(ctx, p.BookingID); err != nil {
			log.Printf("[payment] confirm booking %s after status override failed: %v", p.BookingID, err)
		}
	}
	return s.repo.GetByID(ctx, id)
}

func (s *service) Refund(ctx context.Context, id string, userID string) (*Payment, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	detail, err := s.bookings.GetByID(ctx, p.BookingID)
	if err != nil {
		return nil, err
	}
	if detail.Booking.UserID != userID {
		return nil, ErrForbidden
	}
	if p.Status != StatusSuccess {
		return nil, ErrNotRefundable
	}

	if err := s.repo.UpdateStatus(ctx, id, StatusRefunded, "payment refunded"); err != nil {
		return nil, err
	}

	if err := s.bookings.Cancel(ctx, p.BookingID, userID); err != nil && !errors.Is(err, booking.ErrInvalidState) {
		return nil, err
	}

	return s.repo.GetByID(ctx, id)
}

func (s *service) checkOwner(ctx context.Context, bookingID string, userID string) error {
	detail, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return err
	}
	if detail.Booking.UserID != userID {
		return ErrForbidden
	}
	return nil
}
