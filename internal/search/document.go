package search

import (
	"net/http"
	"time"

	"github.com/swiftroute/bus-ticketing-backend/internal/pkg/apperror"
)

var (
	ErrDocumentNotFound = apperror.New(http.StatusNotFound, "schedule not indexed")
	ErrScheduleNotFound = apperror.New(http.StatusNotFound, "schedule not found")
)

// Document is the denormalized view of a schedule served to trip search.
// ScheduleUpdatedAt mirrors the schedule's updated_at and is the staleness
// watermark: a document is fresh iff it equals the schedule's current one.
type Document struct {
	ScheduleID        string    `json:"schedule_id"`
	Origin            string    `json:"origin"`
	Destination       string    `json:"destination"`
	OperatorName      string    `json:"operator_name"`
	BusNumber         string    `json:"bus_number"`
	BusType           string    `json:"bus_type"`
	TotalSeats        int       `json:"total_seats"`
	AvailableSeats    int       `json:"available_seats"`
	Amenities         []string  `json:"amenities"`
	DepartureTime     string    `json:"departure_time"`
	ArrivalTime       string    `json:"arrival_time"`
	DurationMinutes   int       `json:"duration_minutes"`
	DistanceKm        float64   `json:"distance_km"`
	Price             int64     `json:"price"`
	IsRecurring       bool      `json:"is_recurring"`
	DaysOfWeek        []int     `json:"days_of_week"`
	IsActive          bool      `json:"is_active"`
	ScheduleUpdatedAt time.Time `json:"schedule_updated_at"`
}

// Query filters indexed schedules. Origin and Destination match
// case-insensitively; zero values mean "any".
type Query struct {
	Origin      string
	Destination string
	BusType     string
	MinPrice    int64
	MaxPrice    int64
	Page        int
	PageSize    int
}
