package booking

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/swiftroute/bus-ticketing-backend/internal/bus"
	"github.com/swiftroute/bus-ticketing-backend/internal/clock"
	"github.com/swiftroute/bus-ticketing-backend/internal/operator"
	"github.com/swiftroute/bus-ticketing-backend/internal/route"
	"github.com/swiftroute/bus-ticketing-backend/internal/schedule"
	"github.com/swiftroute/bus-ticketing-backend/internal/user"
)

// createAttempts bounds retries when a generated booking reference
// collides with an existing one.
const createAttempts = 3

// Catalog resolves the schedule, bus, route and operator records a
// booking refers to.
type Catalog interface {
	GetSchedule(ctx context.Context, id string) (*schedule.Schedule, error)
	GetBus(ctx context.Context, id string) (*bus.Bus, error)
	GetRoute(ctx context.Context, id string) (*route.Route, error)
	GetOperator(ctx context.Context, id string) (*operator.Operator, error)
}

// UserDirectory resolves the account a booking belongs to.
type UserDirectory interface {
	GetByID(ctx context.Context, id string) (*user.User, error)
}

// AvailabilityUpdater receives the live seat count after a booking or
// cancellation changes it. Pushes are best-effort.
type AvailabilityUpdater interface {
	UpdateAvailableSeats(ctx context.Context, scheduleID string, availableSeats int) error
}

type CreateInput struct {
	ScheduleID string
	TravelDate time.Time
	Passengers []Passenger
}

// Detail is a booking joined with the catalog records needed to render
// a ticket.
type Detail struct {
	Booking       *Booking
	BusID         string
	BusNumber     string
	BusType       bus.Type
	OperatorName  string
	Origin        string
	Destination   string
	DepartureTime string
	ArrivalTime   string
	TrackingLink  string
}

type Service interface {
	Create(ctx context.Context, userID string, in CreateInput) (*Detail, error)
	GetByID(ctx context.Context, id string) (*Detail, error)
	GetByReference(ctx context.Context, reference string) (*Detail, error)
	ListByUser(ctx context.Context, userID string, page, pageSize int) ([]*Booking, int, error)
	Cancel(ctx context.Context, id string, userID string) error
	Confirm(ctx context.Context, id string) error
	BookedSeats(ctx context.Context, scheduleID string, travelDate time.Time) ([]int, error)
}

type service struct {
	repo            Repository
	ledger          *SeatLedger
	catalog         Catalog
	users           UserDirectory
	availability    AvailabilityUpdater
	clock           clock.Clock
	trackingBaseURL string
}

func NewService(
	repo Repository,
	ledger *SeatLedger,
	catalog Catalog,
	users UserDirectory,
	availability AvailabilityUpdater,
	clk clock.Clock,
	trackingBaseURL string,
) Service {
	return &service{
		repo:            repo,
		ledger:          ledger,
		catalog:         catalog,
		users:           users,
		availability:    availability,
		clock:           clk,
		trackingBaseURL: trackingBaseURL,
	}
}

func (s *service) Create(ctx context.Context, userID string, in CreateInput) (*Detail, error) {
	if len(in.Passengers) == 0 {
		return nil, ErrNoPassengers
	}

	seen := make(map[int]bool, len(in.Passengers))
	for _, p := range in.Passengers {
		if seen[p.SeatNumber] {
			return nil, ErrDuplicateSeats
		}
		seen[p.SeatNumber] = true
	}

	sched, err := s.catalog.GetSchedule(ctx, in.ScheduleID)
	if err != nil {
		if errors.Is(err, schedule.ErrNotFound) {
			return nil, ErrScheduleNotFound
		}
		return nil, err
	}
	if !sched.IsActive {
		return nil, ErrScheduleInactive
	}

	vehicle, err := s.catalog.GetBus(ctx, sched.BusID)
	if err != nil {
		return nil, err
	}

	for _, p := range in.Passengers {
		if p.SeatNumber < 1 || p.SeatNumber > vehicle.TotalSeats {
			return nil, NewSeatOutOfRange(p.SeatNumber, vehicle.TotalSeats)
		}
	}

	// Name the first conflicting seat in the order the passengers were
	// given. The ledger re-checks inside the transaction, so a seat taken
	// between here and commit still fails.
	booked, err := s.ledger.BookedSeats(ctx, in.ScheduleID, in.TravelDate)
	if err != nil {
		return nil, err
	}
	taken := make(map[int]bool, len(booked))
	for _, n := range booked {
		taken[n] = true
	}
	for _, p := range in.Passengers {
		if taken[p.SeatNumber] {
			return nil, NewSeatConflict(p.SeatNumber)
		}
	}

	if _, err := s.users.GetByID(ctx, userID); err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	b := &Booking{
		UserID:      userID,
		ScheduleID:  in.ScheduleID,
		TravelDate:  in.TravelDate,
		TotalSeats:  len(in.Passengers),
		TotalAmount: sched.Price * int64(len(in.Passengers)),
		Status:      StatusPending,
	}

	for attempt := 0; attempt < createAttempts; attempt++ {
		ref, err := NewReference()
		if err != nil {
			return nil, fmt.Errorf("generate booking reference failed: %w", err)
		}
		b.Reference = ref

		err = s.repo.WithTx(ctx, func(txCtx context.Context) error {
			if err := s.repo.CreateBooking(txCtx, b); err != nil {
				return err
			}
			holds := make([]*SeatHold, 0, len(in.Passengers))
			for _, p := range in.Passengers {
				holds = append(holds, &SeatHold{
					BookingID:       b.ID,
					ScheduleID:      in.ScheduleID,
					TravelDate:      in.TravelDate,
					SeatNumber:      p.SeatNumber,
					PassengerName:   p.Name,
					PassengerAge:    p.Age,
					PassengerGender: p.Gender,
				})
			}
			return s.ledger.Reserve(txCtx, in.ScheduleID, in.TravelDate, holds)
		})
		if errors.Is(err, ErrReferenceTaken) {
			continue
		}
		if err != nil {
			return nil, err
		}

		s.pushAvailability(ctx, in.ScheduleID, in.TravelDate, vehicle.TotalSeats)

		// Reload to pick up the seat hold rows written in the
		// transaction; fall back to the in-memory copy if that fails.
		loaded, err := s.repo.GetByID(ctx, b.ID)
		if err != nil {
			loaded = b
		}
		return s.detail(ctx, loaded)
	}

	return nil, ErrReferenceTaken
}

func (s *service) GetByID(ctx context.Context, id string) (*Detail, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.detail(ctx, b)
}

func (s *service) GetByReference(ctx context.Context, reference string) (*Detail, error) {
	b, err := s.repo.GetByReference(ctx, reference)
	if err != nil {
		return nil, err
	}
	return s.detail(ctx, b)
}

func (s *service) ListByUser(ctx context.Context, userID string, page, pageSize int) ([]*Booking, int, error) {
	return s.repo.ListByUser(ctx, userID, page, pageSize)
}

func (s *service) Cancel(ctx context.Context, id string, userID string) error {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if b.UserID != userID {
		return ErrForbidden
	}
	if b.Status != StatusPending && b.Status != StatusConfirmed {
		return ErrInvalidState
	}

	err = s.repo.WithTx(ctx, func(txCtx context.Context) error {
		if err := s.repo.UpdateStatus(txCtx, id, StatusCancelled); err != nil {
			return err
		}
		return s.repo.ReleaseSeats(txCtx, id, s.clock.Now())
	})
	if err != nil {
		return err
	}

	if sched, err := s.catalog.GetSchedule(ctx, b.ScheduleID); err == nil {
		if vehicle, err := s.catalog.GetBus(ctx, sched.BusID); err == nil {
			s.pushAvailability(ctx, b.ScheduleID, b.TravelDate, vehicle.TotalSeats)
		}
	}
	return nil
}

func (s *service) Confirm(ctx context.Context, id string) error {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if b.Status == StatusConfirmed {
		return nil
	}
	if b.Status != StatusPending {
		return ErrInvalidState
	}
	return s.repo.UpdateStatus(ctx, id, StatusConfirmed)
}

func (s *service) BookedSeats(ctx context.Context, scheduleID string, travelDate time.Time) ([]int, error) {
	if _, err := s.catalog.GetSchedule(ctx, scheduleID); err != nil {
		if errors.Is(err, schedule.ErrNotFound) {
			return nil, ErrScheduleNotFound
		}
		return nil, err
	}
	return s.ledger.BookedSeats(ctx, scheduleID, travelDate)
}

// pushAvailability recomputes the live seat count for a travel date and
// forwards it to the search index. Failures are logged, never surfaced:
// the booking already committed.
func (s *service) pushAvailability(ctx context.Context, scheduleID string, travelDate time.Time, totalSeats int) {
	if s.availability == nil {
		return
	}
	booked, err := s.repo.LiveSeatNumbers(ctx, scheduleID, travelDate)
	if err != nil {
		log.Printf("[booking] recompute availability for schedule %s failed: %v", scheduleID, err)
		return
	}
	available := totalSeats - len(booked)
	if available < 0 {
		available = 0
	}
	if err := s.availability.UpdateAvailableSeats(ctx, scheduleID, available); err != nil {
		log.Printf("[booking] push availability for schedule %s failed: %v", scheduleID, err)
	}
}

func (s *service) detail(ctx context.Context, b *Booking) (*Detail, error) {
	sched, err := s.catalog.GetSchedule(ctx, b.ScheduleID)
	if err != nil {
		return nil, err
	}
	vehicle, err := s.catalog.GetBus(ctx, sched.BusID)
	if err != nil {
		return nil, err
	}
	rt, err := s.catalog.GetRoute(ctx, sched.RouteID)
	if err != nil {
		return nil, err
	}
	op, err := s.catalog.GetOperator(ctx, vehicle.OperatorID)
	if err != nil {
		return nil, err
	}

	return &Detail{
		Booking:       b,
		BusID:         vehicle.ID,
		BusNumber:     vehicle.BusNumber,
		BusType:       vehicle.BusType,
		OperatorName:  op.Name,
		Origin:        rt.Origin,
		Destination:   rt.Destination,
		DepartureTime: sched.DepartureTime,
		ArrivalTime:   sched.ArrivalTime,
		TrackingLink:  fmt.Sprintf("%s/v1/tracking/booking/%s", s.trackingBaseURL, b.Reference),
	}, nil
}
