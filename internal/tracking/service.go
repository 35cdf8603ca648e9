package tracking

import (
	"context"
	"errors"
	"time"

	"github.com/swiftroute/bus-ticketing-backend/internal/booking"
	"github.com/swiftroute/bus-ticketing-backend/internal/bus"
	"github.com/swiftroute/bus-ticketing-backend/internal/clock"
)

// defaultHistoryWindow is how far back History reaches when the caller
// does not give a start time.
const defaultHistoryWindow = 24 * time.Hour

// Buses verifies that reported positions belong to a known bus.
type Buses interface {
	GetByID(ctx context.Context, id string) (*bus.Bus, error)
}

// Bookings resolves a booking reference to the bus serving it, for the
// tracking link printed on tickets.
type Bookings interface {
	GetByReference(ctx context.Context, reference string) (*booking.Detail, error)
}

type RecordInput struct {
	BusID      string
	Latitude   float64
	Longitude  float64
	SpeedKmh   float64
	HeadingDeg float64
	RecordedAt time.Time // zero means "now"
}

type Service interface {
	Record(ctx context.Context, in RecordInput) (*Point, error)
	Latest(ctx context.Context, busID string) (*Point, error)
	// History returns points within [from, to]. A zero to means "now"; a
	// zero from means 24 hours before to.
	History(ctx context.Context, busID string, from, to time.Time) ([]*Point, error)
	LatestForBooking(ctx context.Context, reference string) (*Point, error)
}

type service struct {
	repo     Repository
	buses    Buses
	bookings Bookings
	clock    clock.Clock
}

func NewService(repo Repository, buses Buses, bookings Bookings, clk clock.Clock) Service {
	return &service{
		repo:     repo,
		buses:    buses,
		bookings: bookings,
		clock:    clk,
	}
}

func (s *service) Record(ctx context.Context, in RecordInput) (*Point, error) {
	if in.Latitude < -90 || in.Latitude > 90 || in.Longitude < -180 || in.Longitude > 180 {
		return nil, ErrInvalidCoordinates
	}
	if in.SpeedKmh < 0 {
		return nil, ErrInvalidSpeed
	}
	if in.HeadingDeg < 0 || in.HeadingDeg >= 360 {
		return nil, ErrInvalidHeading
	}

	if _, err := s.buses.GetByID(ctx, in.BusID); err != nil {
		if errors.Is(err, bus.ErrNotFound) {
			return nil, ErrBusNotFound
		}
		return nil, err
	}

	recordedAt := in.RecordedAt
	if recordedAt.IsZero() {
		recordedAt = s.clock.Now()
	}

	p := &Point{
		BusID:      in.BusID,
		Latitude:   in.Latitude,
		Longitude:  in.Longitude,
		SpeedKmh:   in.SpeedKmh,
		HeadingDeg: in.HeadingDeg,
		RecordedAt: recordedAt,
	}
	if err := s.repo.Insert(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *service) Latest(ctx context.Context, busID string) (*Point, error) {
	if _, err := s.buses.GetByID(ctx, busID); err != nil {
		if errors.Is(err, bus.ErrNotFound) {
			return nil, ErrBusNotFound
		}
		return nil, err
	}
	return s.repo.Latest(ctx, busID)
}

func (s *service) History(ctx context.Context, busID string, from, to time.Time) ([]*Point, error) {
	if _, err := s.buses.GetByID(ctx, busID); err != nil {
		if errors.Is(err, bus.ErrNotFound) {
			return nil, ErrBusNotFound
		}
		return nil, err
	}

	if to.IsZero() {
		to = s.clock.Now()
	}
	if from.IsZero() {
		from = to.Add(-defaultHistoryWindow)
	}
	if !from.Before(to) {
		return nil, ErrInvalidWindow
	}

	return s.repo.History(ctx, busID, from, to)
}

func (s *service) LatestForBooking(ctx context.Context, reference string) (*Point, error) {
	detail, err := s.bookings.GetByReference(ctx, reference)
	if err != nil {
		return nil, err
	}
	return s.repo.Latest(ctx, detail.BusID)
}
