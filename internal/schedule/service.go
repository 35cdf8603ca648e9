package schedule

import (
	"context"
	"errors"
	"log"

	"github.com/swiftroute/bus-ticketing-backend/internal/bus"
	"github.com/swiftroute/bus-ticketing-backend/internal/route"
)

type CreateRequest struct {
	BusID         string
	RouteID       string
	DepartureTime string
	ArrivalTime   string
	Price         int64
	IsRecurring   bool
	DaysOfWeek    []int
}

type UpdateRequest struct {
	DepartureTime *string
	ArrivalTime   *string
	Price         *int64
	IsRecurring   *bool
	DaysOfWeek    []int
	IsActive      *bool
}

// IndexDeleter removes a schedule's document from the search index.
// Implemented by the search indexer; deletion is best-effort.
type IndexDeleter interface {
	DeleteSchedule(ctx context.Context, scheduleID string) error
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Schedule, error)
	GetByID(ctx context.Context, id string) (*Schedule, error)
	List(ctx context.Context, filter Filter) ([]*Schedule, int, error)
	ListAll(ctx context.Context) ([]*Schedule, error)
	Update(ctx context.Context, id string, req UpdateRequest) (*Schedule, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	repo         Repository
	busService   bus.Service
	routeService route.Service
	indexDeleter IndexDeleter
}

func NewService(repo Repository, busService bus.Service, routeService route.Service, indexDeleter IndexDeleter) Service {
	return &service{
		repo:         repo,
		busService:   busService,
		routeService: routeService,
		indexDeleter: indexDeleter,
	}
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Schedule, error) {
	if !ValidClock(req.DepartureTime) || !ValidClock(req.ArrivalTime) {
		return nil, ErrInvalidTime
	}
	if req.Price <= 0 {
		return nil, ErrInvalidPrice
	}
	if err := validateWeekdays(req.DaysOfWeek); err != nil {
		return nil, err
	}

	if _, err := s.busService.GetByID(ctx, req.BusID); err != nil {
		if errors.Is(err, bus.ErrNotFound) {
			return nil, ErrBusNotFound
		}
		return nil, err
	}
	if _, err := s.routeService.GetByID(ctx, req.RouteID); err != nil {
		if errors.Is(err, route.ErrNotFound) {
			return nil, ErrRouteNotFound
		}
		return nil, err
	}

	sch := &Schedule{
		BusID:         req.BusID,
		RouteID:       req.RouteID,
		DepartureTime: req.DepartureTime,
		ArrivalTime:   req.ArrivalTime,
		Price:         req.Price,
		IsRecurring:   req.IsRecurring,
		DaysOfWeek:    req.DaysOfWeek,
		IsActive:      true,
	}

	if err := s.repo.Create(ctx, sch); err != nil {
		return nil, err
	}
	return sch, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Schedule, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Schedule, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) ListAll(ctx context.Context) ([]*Schedule, error) {
	return s.repo.ListAll(ctx)
}

// Update edits price/time/recurrence. Existing bookings keep the amounts
// they were created with; only the schedule row and its updated_at
// watermark change, which the search synchronizer picks up on its next pass.
func (s *service) Update(ctx context.Context, id string, req UpdateRequest) (*Schedule, error) {
	sch, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.DepartureTime != nil {
		if !ValidClock(*req.DepartureTime) {
			return nil, ErrInvalidTime
		}
		sch.DepartureTime = *req.DepartureTime
	}
	if req.ArrivalTime != nil {
		if !ValidClock(*req.ArrivalTime) {
			return nil, ErrInvalidTime
		}
		sch.ArrivalTime = *req.ArrivalTime
	}
	if req.Price != nil {
		if *req.Price <= 0 {
			return nil, ErrInvalidPrice
		}
		sch.Price = *req.Price
	}
	if req.IsRecurring != nil {
		sch.IsRecurring = *req.IsRecurring
	}
	if req.DaysOfWeek != nil {
		if err := validateWeekdays(req.DaysOfWeek); err != nil {
			return nil, err
		}
		sch.DaysOfWeek = req.DaysOfWeek
	}
	if req.IsActive != nil {
		sch.IsActive = *req.IsActive
	}

	if err := s.repo.Update(ctx, sch); err != nil {
		return nil, err
	}
	return sch, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	// Best-effort index cleanup; the reconciliation sweep cannot remove
	// documents for schedules it no longer sees.
	if s.indexDeleter != nil {
		if err := s.indexDeleter.DeleteSchedule(ctx, id); err != nil {
			log.Printf("[schedule] failed to delete search document for %s: %v", id, err)
		}
	}
	return nil
}

func validateWeekdays(days []int) error {
	for _, d := range days {
		if d < 0 || d > 6 {
			return ErrInvalidWeekdays
		}
	}
	return nil
}
