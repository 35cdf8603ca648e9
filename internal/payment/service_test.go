package payment

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/swiftroute/bus-ticketing-backend/internal/booking"
)

type fakePaymentRepo struct {
	payments map[string]*Payment
	nextID   int
}

func newFakePaymentRepo() *fakePaymentRepo {
	return &fakePaymentRepo{payments: make(map[string]*Payment)}
}

func (r *fakePaymentRepo) Create(ctx context.Context, p *Payment) error {
	r.nextID++
	p.ID = fmt.Sprintf("pay-%d", r.nextID)
	p.CreatedAt = time.Now()
	p.UpdatedAt = p.CreatedAt
	copied := *p
	r.payments[p.ID] = &copied
	return nil
}

func (r *fakePaymentRepo) GetByID(ctx context.Context, id string) (*Payment, error) {
	p, ok := r.payments[id]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *p
	return &copied, nil
}

func (r *fakePaymentRepo) GetByTransactionID(ctx context.Context, transactionID string) (*Payment, error) {
	for _, p := range r.payments {
		if p.TransactionID == transactionID {
			copied := *p
			return &copied, nil
		}
	}
	return nil, ErrNotFound
}

func (r *fakePaymentRepo) ListByBooking(ctx context.Context, bookingID string) ([]*Payment, error) {
	var out []*Payment
	for _, p := range r.payments {
		if p.BookingID == bookingID {
			copied := *p
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *fakePaymentRepo) UpdateStatus(ctx context.Context, id string, status Status, gatewayMessage string) error {
	p, ok := r.payments[id]
	if !ok {
		return ErrNotFound
	}
	p.Status = status
	if gatewayMessage != "" {
		p.GatewayMessage = gatewayMessage
	}
	p.UpdatedAt = time.Now()
	return nil
}

func (r *fakePaymentRepo) ExistsSuccessful(ctx context.Context, bookingID string) (bool, error) {
	for _, p := range r.payments {
		if p.BookingID == bookingID && p.Status == StatusSuccess {
			return true, nil
		}
	}
	return false, nil
}

type fakeBookings struct {
	bookings  map[string]*booking.Booking
	confirmed []string
	cancelled []string
}

func (f *fakeBookings) GetByID(ctx context.Context, id string) (*booking.Detail, error) {
	b, ok := f.bookings[id]
	if !ok {
		return nil, booking.ErrNotFound
	}
	copied := *b
	return &booking.Detail{Booking: &copied}, nil
}

func (f *fakeBookings) Confirm(ctx context.Context, id string) error {
	b, ok := f.bookings[id]
	if !ok {
		return booking.ErrNotFound
	}
	b.Status = booking.StatusConfirmed
	f.confirmed = append(f.confirmed, id)
	return nil
}

func (f *fakeBookings) Cancel(ctx context.Context, id string, userID string) error {
	b, ok := f.bookings[id]
	if !ok {
		return booking.ErrNotFound
	}
	if b.Status != booking.StatusPending && b.Status != booking.StatusConfirmed {
		return booking.ErrInvalidState
	}
	b.Status = booking.StatusCancelled
	f.cancelled = append(f.cancelled, id)
	return nil
}

func newTestService(gateway Gateway) (Service, *fakePaymentRepo, *fakeBookings) {
	repo := newFakePaymentRepo()
	bookings := &fakeBookings{bookings: map[string]*booking.Booking{
		"booking-1": {
			ID: "booking-1", UserID: "user-1", ScheduleID: "sched-1",
			Reference: "BTAAAA1111", TotalSeats: 2, TotalAmount: 100000,
			Status: booking.StatusPending,
		},
	}}
	svc := NewService(repo, bookings, gateway, 200*time.Millisecond)
	return svc, repo, bookings
}

func approvingGateway() Gateway {
	return NewSimulatedGateway(time.Millisecond).WithRand(func() float64 { return 0.0 })
}

func decliningGateway() Gateway {
	return NewSimulatedGateway(time.Millisecond).WithRand(func() float64 { return 0.99 })
}

func TestService_Process(t *testing.T) {
	t.Run("successful charge confirms the booking", func(t *testing.T) {
		svc, _, bookings := newTestService(approvingGateway())

		p, err := svc.Process(context.Background(), "user-1", ProcessInput{
			BookingID: "booking-1", Amount: 100000, Method: MethodCash,
		})
		require.NoError(t, err)

		assert.Equal(t, MethodCash, p.Method)
		assert.Equal(t, StatusSuccess, p.Status)
		assert.True(t, strings.HasPrefix(p.TransactionID, "TXN"))
		assert.Len(t, p.TransactionID, 15)
		assert.Equal(t, []string{"booking-1"}, bookings.confirmed)
		assert.Equal(t, booking.StatusConfirmed, bookings.bookings["booking-1"].Status)
	})

	t.Run("declined charge records failure and leaves booking pending", func(t *testing.T) {
		svc, _, bookings := newTestService(decliningGateway())

		p, err := svc.Process(context.Background(), "user-1", ProcessInput{
			BookingID: "booking-1", Amount: 100000, Method: MethodCard,
		})
		require.NoError(t, err)

		assert.Equal(t, StatusFailed, p.Status)
		assert.Equal(t, "payment declined by gateway", p.GatewayMessage)
		assert.Empty(t, bookings.confirmed)
		assert.Equal(t, booking.StatusPending, bookings.bookings["booking-1"].Status)
	})

	t.Run("gateway timeout records failure", func(t *testing.T) {
		slow := NewSimulatedGateway(5 * time.Second).WithRand(func() float64 { return 0.0 })
		repo := newFakePaymentRepo()
		bookings := &fakeBookings{bookings: map[string]*booking.Booking{
			"booking-1": {ID: "booking-1", UserID: "user-1", TotalAmount: 100000, Status: booking.StatusPending},
		}}
		svc := NewService(repo, bookings, slow, 10*time.Millisecond)

		p, err := svc.Process(context.Background(), "user-1", ProcessInput{
			BookingID: "booking-1", Amount: 100000, Method: MethodWallet,
		})
		require.NoError(t, err)

		assert.Equal(t, StatusFailed, p.Status)
		assert.Contains(t, p.GatewayMessage, "gateway timeout")
		assert.Empty(t, bookings.confirmed)
	})

	t.Run("rejects amount mismatch before charging", func(t *testing.T) {
		svc, repo, _ := newTestService(approvingGateway())

		_, err := svc.Process(context.Background(), "user-1", ProcessInput{
			BookingID: "booking-1", Amount: 99999, Method: MethodUPI,
		})
		assert.ErrorIs(t, err, ErrAmountMismatch)
		assert.Empty(t, repo.payments)
	})

	t.Run("rejects payment for someone else's booking", func(t *testing.T) {
		svc, _, _ := newTestService(approvingGateway())

		_, err := svc.Process(context.Background(), "user-2", ProcessInput{
			BookingID: "booking-1", Amount: 100000, Method: MethodUPI,
		})
		assert.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("rejects double payment", func(t *testing.T) {
		svc, _, bookings := newTestService(approvingGateway())

		_, err := svc.Process(context.Background(), "user-1", ProcessInput{
			BookingID: "booking-1", Amount: 100000, Method: MethodUPI,
		})
		require.NoError(t, err)

		// Reset status to exercise the duplicate-payment guard alone.
		bookings.bookings["booking-1"].Status = booking.StatusPending

		_, err = svc.Process(context.Background(), "user-1", ProcessInput{
			BookingID: "booking-1", Amount: 100000, Method: MethodUPI,
		})
		assert.ErrorIs(t, err, ErrAlreadyPaid)
	})

	t.Run("rejects non-pending booking", func(t *testing.T) {
		svc, _, bookings := newTestService(approvingGateway())
		bookings.bookings["booking-1"].Status = booking.StatusCancelled

		_, err := svc.Process(context.Background(), "user-1", ProcessInput{
			BookingID: "booking-1", Amount: 100000, Method: MethodUPI,
		})
		assert.ErrorIs(t, err, ErrNotPayable)
	})
}

func TestService_GetByTransactionID(t *testing.T) {
	svc, _, _ := newTestService(approvingGateway())

	p, err := svc.Process(context.Background(), "user-1", ProcessInput{
		BookingID: "booking-1", Amount: 100000, Method: MethodUPI,
	})
	require.NoError(t, err)

	t.Run("owner can look up by transaction id", func(t *testing.T) {
		found, err := svc.GetByTransactionID(context.Background(), p.TransactionID, "user-1")
		require.NoError(t, err)
		assert.Equal(t, p.ID, found.ID)
		assert.Equal(t, p.TransactionID, found.TransactionID)
	})

	t.Run("other users are forbidden", func(t *testing.T) {
		_, err := svc.GetByTransactionID(context.Background(), p.TransactionID, "user-2")
		assert.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("unknown transaction id is not found", func(t *testing.T) {
		_, err := svc.GetByTransactionID(context.Background(), "TXNDOESNOTEXIST", "user-1")
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestService_Refund(t *testing.T) {
	t.Run("refund reverses payment and cancels booking", func(t *testing.T) {
		svc, _, bookings := newTestService(approvingGateway())

		p, err := svc.Process(context.Background(), "user-1", ProcessInput{
			BookingID: "booking-1", Amount: 100000, Method: MethodUPI,
		})
		require.NoError(t, err)

		refunded, err := svc.Refund(context.Background(), p.ID, "user-1")
		require.NoError(t, err)

		assert.Equal(t, StatusRefunded, refunded.Status)
		assert.Equal(t, []string{"booking-1"}, bookings.cancelled)
		assert.Equal(t, booking.StatusCancelled, bookings.bookings["booking-1"].Status)
	})

	t.Run("only successful payments can be refunded", func(t *testing.T) {
		svc, _, _ := newTestService(decliningGateway())

		p, err := svc.Process(context.Background(), "user-1", ProcessInput{
			BookingID: "booking-1", Amount: 100000, Method: MethodUPI,
		})
		require.NoError(t, err)
		require.Equal(t, StatusFailed, p.Status)

		_, err = svc.Refund(context.Background(), p.ID, "user-1")
		assert.ErrorIs(t, err, ErrNotRefundable)
	})

	t.Run("only the owner can refund", func(t *testing.T) {
		svc, _, _ := newTestService(approvingGateway())

		p, err := svc.Process(context.Background(), "user-1", ProcessInput{
			BookingID: "booking-1", Amount: 100000, Method: MethodUPI,
		})
		require.NoError(t, err)

		_, err = svc.Refund(context.Background(), p.ID, "user-2")
		assert.ErrorIs(t, err, ErrForbidden)
	})
}

func TestService_UpdateStatus(t *testing.T) {
	t.Run("setting success confirms the booking", func(t *testing.T) {
		svc, repo, bookings := newTestService(decliningGateway())

		p, err := svc.Process(context.Background(), "user-1", ProcessInput{
			BookingID: "booking-1", Amount: 100000, Method: MethodUPI,
		})
		require.NoError(t, err)
		require.Equal(t, StatusFailed, p.Status)

		updated, err := svc.UpdateStatus(context.Background(), p.ID, StatusSuccess)
		require.NoError(t, err)

		assert.Equal(t, StatusSuccess, updated.Status)
		assert.Equal(t, []string{"booking-1"}, bookings.confirmed)

		stored, err := repo.GetByID(context.Background(), p.ID)
		require.NoError(t, err)
		assert.Equal(t, StatusSuccess, stored.Status)
	})

	t.Run("rejects unknown status", func(t *testing.T) {
		svc, _, _ := newTestService(approvingGateway())

		_, err := svc.UpdateStatus(context.Background(), "pay-1", Status("PAUSED"))
		assert.ErrorIs(t, err, ErrInvalidStatus)
	})
}

func TestNewTransactionID(t *testing.T) {
	seen := make(map[string]bool, 1000)
	for i := 0; i < 1000; i++ {
		id, err := NewTransactionID()
		require.NoError(t, err)
		require.Len(t, id, 15)
		require.True(t, strings.HasPrefix(id, "TXN"))
		for _, r := range id[3:] {
			require.True(t, (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9'), "unexpected character %q in %s", r, id)
		}
		require.False(t, seen[id])
		seen[id] = true
	}
}
