package schedule

import (
	"net/http"
	"time"

	"github.com/swiftroute/bus-ticketing-backend/internal/pkg/apperror"
)

var (
	ErrNotFound        = apperror.New(http.StatusNotFound, "schedule not found")
	ErrBusNotFound     = apperror.New(http.StatusNotFound, "bus not found")
	ErrRouteNotFound   = apperror.New(http.StatusNotFound, "route not found")
	ErrInvalidTime     = apperror.New(http.StatusBadRequest, "departure and arrival must be HH:MM wall-clock times")
	ErrInvalidPrice    = apperror.New(http.StatusBadRequest, "price must be positive")
	ErrInvalidWeekdays = apperror.New(http.StatusBadRequest, "days of week must be within 0 (Sunday) to 6 (Saturday)")
)

// timeLayout is the wall-clock format for departure and arrival times.
const timeLayout = "15:04"

// Schedule defines a recurring or dated trip of a bus over a route.
// Price is in minor currency units. UpdatedAt doubles as the staleness
// watermark for the search index synchronizer.
type Schedule struct {
	ID            string
	BusID         string
	RouteID       string
	DepartureTime string // "HH:MM"
	ArrivalTime   string // "HH:MM"
	Price         int64
	IsRecurring   bool
	DaysOfWeek    []int
	IsActive      bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// DurationMinutes computes trip duration from the wall-clock times,
// rolling over midnight when the arrival is before the departure.
func (s *Schedule) DurationMinutes() int {
	dep, err1 := time.Parse(timeLayout, s.DepartureTime)
	arr, err2 := time.Parse(timeLayout, s.ArrivalTime)
	if err1 != nil || err2 != nil {
		return 0
	}

	depMin := dep.Hour()*60 + dep.Minute()
	arrMin := arr.Hour()*60 + arr.Minute()
	if arrMin < depMin {
		arrMin += 24 * 60
	}
	return arrMin - depMin
}

// ValidClock reports whether v parses as an "HH:MM" wall-clock time.
func ValidClock(v string) bool {
	_, err := time.Parse(timeLayout, v)
	return err == nil
}

// Filter defines parameters for listing schedules.
type Filter struct {
	BusID    string
	RouteID  string
	IsActive *bool
	Page     int
	PageSize int
}
