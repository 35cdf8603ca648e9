package search

import (
	"context"
	"errors"

	"github.com/swiftroute/bus-ticketing-backend/internal/bus"
	"github.com/swiftroute/bus-ticketing-backend/internal/operator"
	"github.com/swiftroute/bus-ticketing-backend/internal/route"
	"github.com/swiftroute/bus-ticketing-backend/internal/schedule"
)

// Catalog resolves the records a search document is denormalized from.
type Catalog interface {
	GetSchedule(ctx context.Context, id string) (*schedule.Schedule, error)
	GetBus(ctx context.Context, id string) (*bus.Bus, error)
	GetRoute(ctx context.Context, id string) (*route.Route, error)
	GetOperator(ctx context.Context, id string) (*operator.Operator, error)
}

type Service interface {
	// IndexSchedule writes the document for a schedule. It reports true
	// when the document was written and false when the index already
	// holds the schedule's current version.
	IndexSchedule(ctx context.Context, scheduleID string) (bool, error)
	UpdateAvailableSeats(ctx context.Context, scheduleID string, availableSeats int) error
	DeleteSchedule(ctx context.Context, scheduleID string) error
	Search(ctx context.Context, q Query) ([]*Document, int, error)
	DocumentCount(ctx context.Context) (int, error)
}

type service struct {
	store   Store
	catalog Catalog
}

func NewService(store Store, catalog Catalog) Service {
	return &service{store: store, catalog: catalog}
}

func (s *service) IndexSchedule(ctx context.Context, scheduleID string) (bool, error) {
	sched, err := s.catalog.GetSchedule(ctx, scheduleID)
	if err != nil {
		if errors.Is(err, schedule.ErrNotFound) {
			return false, ErrScheduleNotFound
		}
		return false, err
	}

	existing, err := s.store.Get(ctx, scheduleID)
	if err != nil && !errors.Is(err, ErrDocumentNotFound) {
		return false, err
	}
	if existing != nil && existing.ScheduleUpdatedAt.Equal(sched.UpdatedAt) {
		return false, nil
	}

	vehicle, err := s.catalog.GetBus(ctx, sched.BusID)
	if err != nil {
		return false, err
	}
	rt, err := s.catalog.GetRoute(ctx, sched.RouteID)
	if err != nil {
		return false, err
	}
	op, err := s.catalog.GetOperator(ctx, vehicle.OperatorID)
	if err != nil {
		return false, err
	}

	// A re-index must not clobber the live seat count pushed by the
	// booking flow, so carry it over from the previous version.
	availableSeats := vehicle.TotalSeats
	if existing != nil {
		availableSeats = existing.AvailableSeats
	}

	doc := &Document{
		ScheduleID:        sched.ID,
		Origin:            rt.Origin,
		Destination:       rt.Destination,
		OperatorName:      op.Name,
		BusNumber:         vehicle.BusNumber,
		BusType:           string(vehicle.BusType),
		TotalSeats:        vehicle.TotalSeats,
		AvailableSeats:    availableSeats,
		Amenities:         vehicle.Amenities,
		DepartureTime:     sched.DepartureTime,
		ArrivalTime:       sched.ArrivalTime,
		DurationMinutes:   sched.DurationMinutes(),
		DistanceKm:        rt.DistanceKm,
		Price:             sched.Price,
		IsRecurring:       sched.IsRecurring,
		DaysOfWeek:        sched.DaysOfWeek,
		IsActive:          sched.IsActive,
		ScheduleUpdatedAt: sched.UpdatedAt,
	}

	if err := s.store.Put(ctx, doc); err != nil {
		return false, err
	}
	return true, nil
}

func (s *service) UpdateAvailableSeats(ctx context.Context, scheduleID string, availableSeats int) error {
	return s.store.UpdateAvailableSeats(ctx, scheduleID, availableSeats)
}

func (s *service) DeleteSchedule(ctx context.Context, scheduleID string) error {
	return s.store.Delete(ctx, scheduleID)
}

func (s *service) Search(ctx context.Context, q Query) ([]*Document, int, error) {
	return s.store.Search(ctx, q)
}

func (s *service) DocumentCount(ctx context.Context) (int, error) {
	return s.store.Count(ctx)
}
