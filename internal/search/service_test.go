package search

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/swiftroute/bus-ticketing-backend/internal/bus"
	"github.com/swiftroute/bus-ticketing-backend/internal/operator"
	"github.com/swiftroute/bus-ticketing-backend/internal/route"
	"github.com/swiftroute/bus-ticketing-backend/internal/schedule"
)

type fakeStore struct {
	docs map[string]*Document
	puts int
}

func newFakeStore() *fakeStore {
	return &fakeStore{docs: make(map[string]*Document)}
}

func (s *fakeStore) Get(ctx context.Context, scheduleID string) (*Document, error) {
	d, ok := s.docs[scheduleID]
	if !ok {
		return nil, ErrDocumentNotFound
	}
	copied := *d
	return &copied, nil
}

func (s *fakeStore) Put(ctx context.Context, doc *Document) error {
	copied := *doc
	s.docs[doc.ScheduleID] = &copied
	s.puts++
	return nil
}

func (s *fakeStore) UpdateAvailableSeats(ctx context.Context, scheduleID string, availableSeats int) error {
	d, ok := s.docs[scheduleID]
	if !ok {
		return ErrDocumentNotFound
	}
	d.AvailableSeats = availableSeats
	return nil
}

func (s *fakeStore) Delete(ctx context.Context, scheduleID string) error {
	delete(s.docs, scheduleID)
	return nil
}

func (s *fakeStore) Search(ctx context.Context, q Query) ([]*Document, int, error) {
	var out []*Document
	for _, d := range s.docs {
		copied := *d
		out = append(out, &copied)
	}
	return out, len(out), nil
}

func (s *fakeStore) Count(ctx context.Context) (int, error) {
	return len(s.docs), nil
}

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

var indexedAt = time.Date(2025, 4, 1, 9, 0, 0, 0, time.UTC)

func newTestCatalog() *fakeCatalog {
	return &fakeCatalog{
		schedules: map[string]*schedule.Schedule{
			"sched-1": {
				ID: "sched-1", BusID: "bus-1", RouteID: "route-1",
				DepartureTime: "21:30", ArrivalTime: "05:45",
				Price: 75000, DaysOfWeek: []int{5, 6}, IsActive: true,
				UpdatedAt: indexedAt,
			},
			"sched-orphan": {
				ID: "sched-orphan", BusID: "bus-1", RouteID: "route-missing",
				DepartureTime: "10:00", ArrivalTime: "12:00",
				Price: 20000, IsActive: true, UpdatedAt: indexedAt,
			},
		},
		buses: map[string]*bus.Bus{
			"bus-1": {
				ID: "bus-1", OperatorID: "op-1", BusNumber: "TN-07-9921",
				BusType: bus.TypeSleeper, TotalSeats: 36, Amenities: []string{"wifi", "blanket"},
			},
		},
		routes: map[string]*route.Route{
			"route-1": {ID: "route-1", Origin: "Chennai", Destination: "Coimbatore"},
		},
		operators: map[string]*operator.Operator{
			"op-1": {ID: "op-1", Name: "Night Rider Travels"},
		},
	}
}

func TestService_IndexSchedule(t *testing.T) {
	t.Run("indexes a schedule and is idempotent", func(t *testing.T) {
		store := newFakeStore()
		catalog := newTestCatalog()
		svc := NewService(store, catalog)

		updated, err := svc.IndexSchedule(context.Background(), "sched-1")
		require.NoError(t, err)
		assert.True(t, updated)

		doc, err := store.Get(context.Background(), "sched-1")
		require.NoError(t, err)
		assert.Equal(t, "Chennai", doc.Origin)
		assert.Equal(t, "Coimbatore", doc.Destination)
		assert.Equal(t, "Night Rider Travels", doc.OperatorName)
		assert.Equal(t, string(bus.TypeSleeper), doc.BusType)
		assert.Equal(t, 36, doc.AvailableSeats)
		assert.Equal(t, 495, doc.DurationMinutes)

		// Second pass sees the watermark and writes nothing.
		updated, err = svc.IndexSchedule(context.Background(), "sched-1")
		require.NoError(t, err)
		assert.False(t, updated)
		assert.Equal(t, 1, store.puts)
	})

	t.Run("reindexes after the schedule changes", func(t *testing.T) {
		store := newFakeStore()
		catalog := newTestCatalog()
		svc := NewService(store, catalog)

		_, err := svc.IndexSchedule(context.Background(), "sched-1")
		require.NoError(t, err)

		catalog.schedules["sched-1"].Price = 80000
		catalog.schedules["sched-1"].UpdatedAt = indexedAt.Add(time.Hour)

		updated, err := svc.IndexSchedule(context.Background(), "sched-1")
		require.NoError(t, err)
		assert.True(t, updated)

		doc, err := store.Get(context.Background(), "sched-1")
		require.NoError(t, err)
		assert.Equal(t, int64(80000), doc.Price)
	})

	t.Run("reindex keeps the pushed seat count", func(t *testing.T) {
		store := newFakeStore()
		catalog := newTestCatalog()
		svc := NewService(store, catalog)

		_, err := svc.IndexSchedule(context.Background(), "sched-1")
		require.NoError(t, err)
		require.NoError(t, svc.UpdateAvailableSeats(context.Background(), "sched-1", 20))

		catalog.schedules["sched-1"].UpdatedAt = indexedAt.Add(time.Hour)
		updated, err := svc.IndexSchedule(context.Background(), "sched-1")
		require.NoError(t, err)
		require.True(t, updated)

		doc, err := store.Get(context.Background(), "sched-1")
		require.NoError(t, err)
		assert.Equal(t, 20, doc.AvailableSeats)
	})

	t.Run("missing catalog references fail the schedule", func(t *testing.T) {
		store := newFakeStore()
		svc := NewService(store, newTestCatalog())

		_, err := svc.IndexSchedule(context.Background(), "sched-orphan")
		assert.ErrorIs(t, err, route.ErrNotFound)

		_, err = svc.IndexSchedule(context.Background(), "sched-missing")
		assert.ErrorIs(t, err, ErrScheduleNotFound)
	})
}

func TestService_DeleteSchedule(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store, newTestCatalog())

	_, err := svc.IndexSchedule(context.Background(), "sched-1")
	require.NoError(t, err)

	require.NoError(t, svc.DeleteSchedule(context.Background(), "sched-1"))
	_, err = store.Get(context.Background(), "sched-1")
	assert.ErrorIs(t, err, ErrDocumentNotFound)

	// Deleting an absent document is fine.
	assert.NoError(t, svc.DeleteSchedule(context.Background(), "sched-1"))
}
