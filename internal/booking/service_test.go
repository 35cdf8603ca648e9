package booking

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/swiftroute/bus-ticketing-backend/internal/bus"
	"github.com/swiftroute/bus-ticketing-backend/internal/clock"
	"github.com/swiftroute/bus-ticketing-backend/internal/operator"
	"github.com/swiftroute/bus-ticketing-backend/internal/route"
	"github.com/swiftroute/bus-ticketing-backend/internal/schedule"
	"github.com/swiftroute/bus-ticketing-backend/internal/user"
)

type fakeCatalog struct {
	schedules map[string]*schedule.Schedule
	buses     map[string]*bus.Bus
	routes    map[string]*route.Route
	operators map[string]*operator.Operator
}

func (c *fakeCatalog) GetSchedule(ctx context.Context, id string) (*schedule.Schedule, error) {
	if s, ok := c.schedules[id]; ok {
		return s, nil
	}
	return nil, schedule.ErrNotFound
}

func (c *fakeCatalog) GetBus(ctx context.Context, id string) (*bus.Bus, error) {
	if b, ok := c.buses[id]; ok {
		return b, nil
	}
	return nil, bus.ErrNotFound
}

func (c *fakeCatalog) GetRoute(ctx context.Context, id string) (*route.Route, error) {
	if r, ok := c.routes[id]; ok {
		return r, nil
	}
	return nil, route.ErrNotFound
}

func (c *fakeCatalog) GetOperator(ctx context.Context, id string) (*operator.Operator, error) {
	if o, ok := c.operators[id]; ok {
		return o, nil
	}
	return nil, operator.ErrNotFound
}

type fakeUsers struct {
	users map[string]*user.User
}

func (f *fakeUsers) GetByID(ctx context.Context, id string) (*user.User, error) {
	if u, ok := f.users[id]; ok {
		return u, nil
	}
	return nil, user.ErrNotFound
}

type fakeAvailability struct {
	mu     sync.Mutex
	pushes map[string]int
}

func (f *fakeAvailability) UpdateAvailableSeats(ctx context.Context, scheduleID string, availableSeats int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.pushes == nil {
		f.pushes = make(map[string]int)
	}
	f.pushes[scheduleID] = availableSeats
	return nil
}

func (f *fakeAvailability) last(scheduleID string) (int, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	n, ok := f.pushes[scheduleID]
	return n, ok
}

var testNow = time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC)

func newTestService(t *testing.T) (Service, *fakeRepo, *fakeAvailability) {
	t.Helper()

	repo := newFakeRepo()
	catalog := &fakeCatalog{
		schedules: map[string]*schedule.Schedule{
			"sched-1": {
				ID: "sched-1", BusID: "bus-1", RouteID: "route-1",
				DepartureTime: "08:30", ArrivalTime: "14:00",
				Price: 50000, IsActive: true, UpdatedAt: testNow,
			},
			"sched-idle": {
				ID: "sched-idle", BusID: "bus-1", RouteID: "route-1",
				DepartureTime: "09:00", ArrivalTime: "12:00",
				Price: 30000, IsActive: false, UpdatedAt: testNow,
			},
		},
		buses: map[string]*bus.Bus{
			"bus-1": {ID: "bus-1", OperatorID: "op-1", BusNumber: "KA-01-2345", BusType: bus.TypeAC, TotalSeats: 40},
		},
		routes: map[string]*route.Route{
			"route-1": {ID: "route-1", Origin: "Bengaluru", Destination: "Chennai"},
		},
		operators: map[string]*operator.Operator{
			"op-1": {ID: "op-1", Name: "SwiftRoute Express"},
		},
	}
	users := &fakeUsers{users: map[string]*user.User{
		"user-1": {ID: "user-1", Email: "rider@example.com", IsActive: true},
		"user-2": {ID: "user-2", Email: "other@example.com", IsActive: true},
	}}
	availability := &fakeAvailability{}

	svc := NewService(repo, NewSeatLedger(repo), catalog, users, availability,
		clock.NewFixed(testNow), "https://api.swiftroute.example")
	return svc, repo, availability
}

func passengers(seats ...int) []Passenger {
	out := make([]Passenger, len(seats))
	for i, n := range seats {
		out[i] = Passenger{SeatNumber: n, Name: "Passenger", Age: 28, Gender: GenderFemale}
	}
	return out
}

func TestService_Create(t *testing.T) {
	travelDate := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	t.Run("creates pending booking with reference and tracking link", func(t *testing.T) {
		svc, _, availability := newTestService(t)

		detail, err := svc.Create(context.Background(), "user-1", CreateInput{
			ScheduleID: "sched-1",
			TravelDate: travelDate,
			Passengers: passengers(7, 8),
		})
		require.NoError(t, err)

		b := detail.Booking
		assert.Equal(t, StatusPending, b.Status)
		assert.Equal(t, 2, b.TotalSeats)
		assert.Equal(t, int64(100000), b.TotalAmount)
		assert.True(t, strings.HasPrefix(b.Reference, "BT"))
		assert.Len(t, b.Reference, 10)
		assert.Len(t, b.Seats, 2)

		assert.Equal(t, "Bengaluru", detail.Origin)
		assert.Equal(t, "Chennai", detail.Destination)
		assert.Equal(t, "SwiftRoute Express", detail.OperatorName)
		assert.Equal(t, "https://api.swiftroute.example/v1/tracking/booking/"+b.Reference, detail.TrackingLink)

		pushed, ok := availability.last("sched-1")
		require.True(t, ok)
		assert.Equal(t, 38, pushed)
	})

	t.Run("rejects double booking of a seat", func(t *testing.T) {
		svc, repo, _ := newTestService(t)

		_, err := svc.Create(context.Background(), "user-1", CreateInput{
			ScheduleID: "sched-1", TravelDate: travelDate, Passengers: passengers(4),
		})
		require.NoError(t, err)

		_, err = svc.Create(context.Background(), "user-2", CreateInput{
			ScheduleID: "sched-1", TravelDate: travelDate, Passengers: passengers(4),
		})
		var conflict *SeatConflictError
		require.ErrorAs(t, err, &conflict)
		assert.Equal(t, 4, conflict.SeatNumber)

		// The losing request must leave no booking behind.
		assert.Len(t, repo.bookings, 1)
	})

	t.Run("conflict names the first taken seat in request order", func(t *testing.T) {
		svc, _, _ := newTestService(t)

		_, err := svc.Create(context.Background(), "user-1", CreateInput{
			ScheduleID: "sched-1", TravelDate: travelDate, Passengers: passengers(2, 7),
		})
		require.NoError(t, err)

		// Seats 7 and 2 are both taken; 7 comes first in the request.
		_, err = svc.Create(context.Background(), "user-2", CreateInput{
			ScheduleID: "sched-1", TravelDate: travelDate, Passengers: passengers(7, 5, 2),
		})
		var conflict *SeatConflictError
		require.ErrorAs(t, err, &conflict)
		assert.Equal(t, 7, conflict.SeatNumber)
	})

	t.Run("multi-seat request is all or nothing", func(t *testing.T) {
		svc, _, _ := newTestService(t)

		_, err := svc.Create(context.Background(), "user-1", CreateInput{
			ScheduleID: "sched-1", TravelDate: travelDate, Passengers: passengers(4),
		})
		require.NoError(t, err)

		_, err = svc.Create(context.Background(), "user-2", CreateInput{
			ScheduleID: "sched-1", TravelDate: travelDate, Passengers: passengers(3, 4, 5),
		})
		require.Error(t, err)

		seats, err := svc.BookedSeats(context.Background(), "sched-1", travelDate)
		require.NoError(t, err)
		assert.Equal(t, []int{4}, seats)
	})

	t.Run("same seat on another date succeeds", func(t *testing.T) {
		svc, _, _ := newTestService(t)

		_, err := svc.Create(context.Background(), "user-1", CreateInput{
			ScheduleID: "sched-1", TravelDate: travelDate, Passengers: passengers(4),
		})
		require.NoError(t, err)

		_, err = svc.Create(context.Background(), "user-2", CreateInput{
			ScheduleID: "sched-1", TravelDate: travelDate.AddDate(0, 0, 1), Passengers: passengers(4),
		})
		assert.NoError(t, err)
	})

	t.Run("rejects seat beyond bus capacity", func(t *testing.T) {
		svc, _, _ := newTestService(t)

		_, err := svc.Create(context.Background(), "user-1", CreateInput{
			ScheduleID: "sched-1", TravelDate: travelDate, Passengers: passengers(41),
		})
		var outOfRange *SeatOutOfRangeError
		require.ErrorAs(t, err, &outOfRange)
		assert.Equal(t, 41, outOfRange.SeatNumber)
		assert.Equal(t, 40, outOfRange.TotalSeats)
	})

	t.Run("rejects duplicate seats in one request", func(t *testing.T) {
		svc, _, _ := newTestService(t)

		_, err := svc.Create(context.Background(), "user-1", CreateInput{
			ScheduleID: "sched-1", TravelDate: travelDate, Passengers: passengers(4, 4),
		})
		assert.ErrorIs(t, err, ErrDuplicateSeats)
	})

	t.Run("rejects empty passenger list", func(t *testing.T) {
		svc, _, _ := newTestService(t)

		_, err := svc.Create(context.Background(), "user-1", CreateInput{
			ScheduleID: "sched-1", TravelDate: travelDate,
		})
		assert.ErrorIs(t, err, ErrNoPassengers)
	})

	t.Run("rejects unknown schedule, inactive schedule and unknown user", func(t *testing.T) {
		svc, _, _ := newTestService(t)

		_, err := svc.Create(context.Background(), "user-1", CreateInput{
			ScheduleID: "sched-missing", TravelDate: travelDate, Passengers: passengers(1),
		})
		assert.ErrorIs(t, err, ErrScheduleNotFound)

		_, err = svc.Create(context.Background(), "user-1", CreateInput{
			ScheduleID: "sched-idle", TravelDate: travelDate, Passengers: passengers(1),
		})
		assert.ErrorIs(t, err, ErrScheduleInactive)

		_, err = svc.Create(context.Background(), "user-missing", CreateInput{
			ScheduleID: "sched-1", TravelDate: travelDate, Passengers: passengers(1),
		})
		assert.ErrorIs(t, err, ErrUserNotFound)

		// The schedule is resolved before the user, so when both are
		// missing the schedule error wins.
		_, err = svc.Create(context.Background(), "user-missing", CreateInput{
			ScheduleID: "sched-missing", TravelDate: travelDate, Passengers: passengers(1),
		})
		assert.ErrorIs(t, err, ErrScheduleNotFound)
	})
}

func TestService_Cancel(t *testing.T) {
	travelDate := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	create := func(t *testing.T, svc Service, userID string, seats ...int) *Detail {
		t.Helper()
		detail, err := svc.Create(context.Background(), userID, CreateInput{
			ScheduleID: "sched-1", TravelDate: travelDate, Passengers: passengers(seats...),
		})
		require.NoError(t, err)
		return detail
	}

	t.Run("cancellation frees the seats", func(t *testing.T) {
		svc, _, availability := newTestService(t)
		detail := create(t, svc, "user-1", 10, 11)

		require.NoError(t, svc.Cancel(context.Background(), detail.Booking.ID, "user-1"))

		got, err := svc.GetByID(context.Background(), detail.Booking.ID)
		require.NoError(t, err)
		assert.Equal(t, StatusCancelled, got.Booking.Status)

		seats, err := svc.BookedSeats(context.Background(), "sched-1", travelDate)
		require.NoError(t, err)
		assert.Empty(t, seats)

		pushed, ok := availability.last("sched-1")
		require.True(t, ok)
		assert.Equal(t, 40, pushed)

		// The freed seat is bookable again.
		_, err = svc.Create(context.Background(), "user-2", CreateInput{
			ScheduleID: "sched-1", TravelDate: travelDate, Passengers: passengers(10),
		})
		assert.NoError(t, err)
	})

	t.Run("only the owner can cancel", func(t *testing.T) {
		svc, _, _ := newTestService(t)
		detail := create(t, svc, "user-1", 10)

		err := svc.Cancel(context.Background(), detail.Booking.ID, "user-2")
		assert.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("cancelling twice fails", func(t *testing.T) {
		svc, _, _ := newTestService(t)
		detail := create(t, svc, "user-1", 10)

		require.NoError(t, svc.Cancel(context.Background(), detail.Booking.ID, "user-1"))
		err := svc.Cancel(context.Background(), detail.Booking.ID, "user-1")
		assert.ErrorIs(t, err, ErrInvalidState)
	})
}

func TestService_Confirm(t *testing.T) {
	travelDate := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	svc, _, _ := newTestService(t)
	detail, err := svc.Create(context.Background(), "user-1", CreateInput{
		ScheduleID: "sched-1", TravelDate: travelDate, Passengers: passengers(1),
	})
	require.NoError(t, err)
	id := detail.Booking.ID

	require.NoError(t, svc.Confirm(context.Background(), id))

	got, err := svc.GetByID(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, StatusConfirmed, got.Booking.Status)

	// Confirming a confirmed booking is a no-op.
	require.NoError(t, svc.Confirm(context.Background(), id))

	require.NoError(t, svc.Cancel(context.Background(), id, "user-1"))
	err = svc.Confirm(context.Background(), id)
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestService_BookedSeats_UnknownSchedule(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.BookedSeats(context.Background(), "sched-missing", time.Now())
	assert.ErrorIs(t, err, ErrScheduleNotFound)
}
