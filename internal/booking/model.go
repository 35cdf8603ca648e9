package booking

import (
	"fmt"
	"net/http"
	"time"

	"github.com/swiftroute/bus-ticketing-backend/internal/pkg/apperror"
)

var (
	ErrNotFound         = apperror.New(http.StatusNotFound, "booking not found")
	ErrScheduleNotFound = apperror.New(http.StatusNotFound, "schedule not found")
	ErrScheduleInactive = apperror.New(http.StatusBadRequest, "schedule is not active")
	ErrUserNotFound     = apperror.New(http.StatusNotFound, "user not found")
	ErrForbidden        = apperror.New(http.StatusForbidden, "you can only manage your own bookings")
	ErrInvalidState     = apperror.New(http.StatusBadRequest, "booking status does not allow this operation")
	ErrNoPassengers     = apperror.New(http.StatusBadRequest, "at least one passenger is required")
	ErrDuplicateSeats   = apperror.New(http.StatusBadRequest, "duplicate seat numbers in request")
	ErrReferenceTaken   = apperror.New(http.StatusConflict, "could not allocate a unique booking reference")

	// ErrSeatUnavailable is returned when a concurrent booking claimed a
	// requested seat between our availability check and commit. The seat
	// hold unique index is the authority; callers may retry.
	ErrSeatUnavailable = apperror.New(http.StatusConflict, "a requested seat was just booked, please retry")
)

// SeatConflictError names the first requested seat that is already held.
type SeatConflictError struct {
	SeatNumber int
}

func (e *SeatConflictError) Error() string {
	return fmt.Sprintf("seat %d is already booked", e.SeatNumber)
}

// NewSeatConflict wraps a SeatConflictError so the HTTP boundary maps it
// to 409 while callers can still extract the seat number via errors.As.
func NewSeatConflict(seatNumber int) error {
	return apperror.Wrap(
		&SeatConflictError{SeatNumber: seatNumber},
		http.StatusConflict,
		fmt.Sprintf("seat %d is already booked", seatNumber),
	)
}

// SeatOutOfRangeError names a seat number outside the bus capacity.
type SeatOutOfRangeError struct {
	SeatNumber int
	TotalSeats int
}

func (e *SeatOutOfRangeError) Error() string {
	return fmt.Sprintf("seat %d is out of range, bus has %d seats", e.SeatNumber, e.TotalSeats)
}

// NewSeatOutOfRange wraps a SeatOutOfRangeError as a 400 response.
func NewSeatOutOfRange(seatNumber, totalSeats int) error {
	return apperror.Wrap(
		&SeatOutOfRangeError{SeatNumber: seatNumber, TotalSeats: totalSeats},
		http.StatusBadRequest,
		fmt.Sprintf("seat %d is out of range, bus has %d seats", seatNumber, totalSeats),
	)
}

type Status string

const (
	StatusPending   Status = "PENDING"
	StatusConfirmed Status = "CONFIRMED"
	StatusCancelled Status = "CANCELLED"
	StatusCompleted Status = "COMPLETED"
)

type Gender string

const (
	GenderMale   Gender = "MALE"
	GenderFemale Gender = "FEMALE"
	GenderOther  Gender = "OTHER"
)

// Passenger is one traveller in a booking request, bound to a seat.
type Passenger struct {
	SeatNumber int
	Name       string
	Age        int
	Gender     Gender
}

// SeatHold is a claim on one seat for one schedule and travel date. Rows
// are never deleted; cancellation sets ReleasedAt, which removes the hold
// from availability and frees its slot in the live-hold unique index.
type SeatHold struct {
	ID              string
	BookingID       string
	ScheduleID      string
	TravelDate      time.Time
	SeatNumber      int
	PassengerName   string
	PassengerAge    int
	PassengerGender Gender
	ReleasedAt      *time.Time
	CreatedAt       time.Time
}

// Booking is the aggregate root of a reservation. TotalAmount is in minor
// currency units and is fixed at creation time from the schedule price.
type Booking struct {
	ID          string
	UserID      string
	ScheduleID  string
	Reference   string
	TravelDate  time.Time
	TotalSeats  int
	TotalAmount int64
	Status      Status
	CreatedAt   time.Time
	UpdatedAt   time.Time
	Seats       []SeatHold
}
