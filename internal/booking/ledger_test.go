package booking

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRepo is an in-memory Repository. CreateSeatHolds enforces the
// live-hold uniqueness rule the same way the partial unique index does,
// so races resolve to exactly one winner.
type fakeRepo struct {
	mu       sync.Mutex
	bookings map[string]*Booking
	holds    []*SeatHold
	nextID   int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{bookings: make(map[string]*Booking)}
}

func (r *fakeRepo) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	r.mu.Lock()
	snapBookings := make(map[string]*Booking, len(r.bookings))
	for k, v := range r.bookings {
		b := *v
		snapBookings[k] = &b
	}
	snapHolds := make([]*SeatHold, len(r.holds))
	for i, h := range r.holds {
		c := *h
		snapHolds[i] = &c
	}
	r.mu.Unlock()

	if err := fn(ctx); err != nil {
		r.mu.Lock()
		r.bookings = snapBookings
		r.holds = snapHolds
		r.mu.Unlock()
		return err
	}
	return nil
}

func (r *fakeRepo) CreateBooking(ctx context.Context, b *Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.bookings {
		if existing.Reference == b.Reference {
			return ErrReferenceTaken
		}
	}

	r.nextID++
	b.ID = fmt.Sprintf("booking-%d", r.nextID)
	b.CreatedAt = time.Now()
	b.UpdatedAt = b.CreatedAt
	copied := *b
	r.bookings[b.ID] = &copied
	return nil
}

func (r *fakeRepo) CreateSeatHolds(ctx context.Context, holds []*SeatHold) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, h := range holds {
		for _, existing := range r.holds {
			if existing.ScheduleID == h.ScheduleID &&
				existing.TravelDate.Equal(h.TravelDate) &&
				existing.SeatNumber == h.SeatNumber &&
				existing.ReleasedAt == nil {
				return ErrSeatUnavailable
			}
		}
	}

	for _, h := range holds {
		r.nextID++
		h.ID = fmt.Sprintf("hold-%d", r.nextID)
		h.CreatedAt = time.Now()
		copied := *h
		r.holds = append(r.holds, &copied)
	}
	return nil
}

func (r *fakeRepo) GetByID(ctx context.Context, id string) (*Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.bookings[id]
	if !ok {
		return nil, ErrNotFound
	}
	return r.withSeats(b), nil
}

func (r *fakeRepo) GetByReference(ctx context.Context, reference string) (*Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, b := range r.bookings {
		if b.Reference == reference {
			return r.withSeats(b), nil
		}
	}
	return nil, ErrNotFound
}

func (r *fakeRepo) withSeats(b *Booking) *Booking {
	copied := *b
	copied.Seats = nil
	for _, h := range r.holds {
		if h.BookingID == b.ID {
			copied.Seats = append(copied.Seats, *h)
		}
	}
	return &copied
}

func (r *fakeRepo) ListByUser(ctx context.Context, userID string, page, pageSize int) ([]*Booking, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []*Booking
	for _, b := range r.bookings {
		if b.UserID == userID {
			copied := *b
			out = append(out, &copied)
		}
	}
	return out, len(out), nil
}

func (r *fakeRepo) UpdateStatus(ctx context.Context, id string, status Status) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.bookings[id]
	if !ok {
		return ErrNotFound
	}
	b.Status = status
	b.UpdatedAt = time.Now()
	return nil
}

func (r *fakeRepo) ReleaseSeats(ctx context.Context, bookingID string, releasedAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, h := range r.holds {
		if h.BookingID == bookingID && h.ReleasedAt == nil {
			at := releasedAt
			h.ReleasedAt = &at
		}
	}
	return nil
}

func (r *fakeRepo) LiveSeatNumbers(ctx context.Context, scheduleID string, travelDate time.Time) ([]int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var seats []int
	for _, h := range r.holds {
		if h.ScheduleID == scheduleID && h.TravelDate.Equal(travelDate) && h.ReleasedAt == nil {
			seats = append(seats, h.SeatNumber)
		}
	}
	for i := 1; i < len(seats); i++ {
		for j := i; j > 0 && seats[j] < seats[j-1]; j-- {
			seats[j], seats[j-1] = seats[j-1], seats[j]
		}
	}
	return seats, nil
}

func makeHolds(scheduleID string, travelDate time.Time, seats ...int) []*SeatHold {
	holds := make([]*SeatHold, len(seats))
	for i, n := range seats {
		holds[i] = &SeatHold{
			BookingID:       "booking-x",
			ScheduleID:      scheduleID,
			TravelDate:      travelDate,
			SeatNumber:      n,
			PassengerName:   fmt.Sprintf("Passenger %d", n),
			PassengerAge:    30,
			PassengerGender: GenderOther,
		}
	}
	return holds
}

func TestSeatLedger_Reserve(t *testing.T) {
	travelDate := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	t.Run("reserves free seats", func(t *testing.T) {
		repo := newFakeRepo()
		ledger := NewSeatLedger(repo)

		err := ledger.Reserve(context.Background(), "sched-1", travelDate, makeHolds("sched-1", travelDate, 3, 1, 2))
		require.NoError(t, err)

		seats, err := ledger.BookedSeats(context.Background(), "sched-1", travelDate)
		require.NoError(t, err)
		assert.Equal(t, []int{1, 2, 3}, seats)
	})

	t.Run("rejects all seats when one is taken", func(t *testing.T) {
		repo := newFakeRepo()
		ledger := NewSeatLedger(repo)
		require.NoError(t, ledger.Reserve(context.Background(), "sched-1", travelDate, makeHolds("sched-1", travelDate, 4)))

		err := ledger.Reserve(context.Background(), "sched-1", travelDate, makeHolds("sched-1", travelDate, 3, 4, 5))
		require.Error(t, err)

		var conflict *SeatConflictError
		require.ErrorAs(t, err, &conflict)
		assert.Equal(t, 4, conflict.SeatNumber)

		// Nothing from the failed request may be written.
		seats, err := ledger.BookedSeats(context.Background(), "sched-1", travelDate)
		require.NoError(t, err)
		assert.Equal(t, []int{4}, seats)
	})

	t.Run("reports lowest conflicting seat", func(t *testing.T) {
		repo := newFakeRepo()
		ledger := NewSeatLedger(repo)
		require.NoError(t, ledger.Reserve(context.Background(), "sched-1", travelDate, makeHolds("sched-1", travelDate, 2, 7)))

		err := ledger.Reserve(context.Background(), "sched-1", travelDate, makeHolds("sched-1", travelDate, 7, 2, 5))
		var conflict *SeatConflictError
		require.ErrorAs(t, err, &conflict)
		assert.Equal(t, 2, conflict.SeatNumber)
	})

	t.Run("same seat on another travel date is free", func(t *testing.T) {
		repo := newFakeRepo()
		ledger := NewSeatLedger(repo)
		require.NoError(t, ledger.Reserve(context.Background(), "sched-1", travelDate, makeHolds("sched-1", travelDate, 1)))

		otherDate := travelDate.AddDate(0, 0, 1)
		err := ledger.Reserve(context.Background(), "sched-1", otherDate, makeHolds("sched-1", otherDate, 1))
		assert.NoError(t, err)
	})

	t.Run("released seats can be reserved again", func(t *testing.T) {
		repo := newFakeRepo()
		ledger := NewSeatLedger(repo)

		holds := makeHolds("sched-1", travelDate, 6)
		require.NoError(t, ledger.Reserve(context.Background(), "sched-1", travelDate, holds))
		require.NoError(t, repo.ReleaseSeats(context.Background(), "booking-x", time.Now()))

		err := ledger.Reserve(context.Background(), "sched-1", travelDate, makeHolds("sched-1", travelDate, 6))
		assert.NoError(t, err)
	})

	t.Run("concurrent requests for one seat have one winner", func(t *testing.T) {
		repo := newFakeRepo()
		ledger := NewSeatLedger(repo)

		const attempts = 16
		errs := make(chan error, attempts)
		var wg sync.WaitGroup
		for i := 0; i < attempts; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				errs <- ledger.Reserve(context.Background(), "sched-1", travelDate, makeHolds("sched-1", travelDate, 12))
			}()
		}
		wg.Wait()
		close(errs)

		var won, lost int
		for err := range errs {
			if err == nil {
				won++
				continue
			}
			lost++
			var conflict *SeatConflictError
			if !errors.As(err, &conflict) {
				assert.ErrorIs(t, err, ErrSeatUnavailable)
			}
		}
		assert.Equal(t, 1, won)
		assert.Equal(t, attempts-1, lost)

		seats, err := ledger.BookedSeats(context.Background(), "sched-1", travelDate)
		require.NoError(t, err)
		assert.Equal(t, []int{12}, seats)
	})
}
