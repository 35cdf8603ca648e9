package http

import (
	"github.com/swiftroute/bus-ticketing-backend/internal/pkg/request"
	"github.com/swiftroute/bus-ticketing-backend/internal/search"
)

type SearchSchedulesRequest struct {
	request.ListParams
	Origin      string `form:"origin"`
	Destination string `form:"destination"`
	BusType     string `form:"bus_type" binding:"omitempty,oneof=AC NON_AC SLEEPER SEMI_SLEEPER LUXURY"`
	MinPrice    int64  `form:"min_price" binding:"omitempty,min=0"`
	MaxPrice    int64  `form:"max_price" binding:"omitempty,min=0"`
}

type ScheduleDocumentResponse struct {
	ScheduleID      string   `json:"schedule_id"`
	Origin          string   `json:"origin"`
	Destination     string   `json:"destination"`
	OperatorName    string   `json:"operator_name"`
	BusNumber       string   `json:"bus_number"`
	BusType         string   `json:"bus_type"`
	TotalSeats      int      `json:"total_seats"`
	AvailableSeats  int      `json:"available_seats"`
	Amenities       []string `json:"amenities"`
	DepartureTime   string   `json:"departure_time"`
	ArrivalTime     string   `json:"arrival_time"`
	DurationMinutes int      `json:"duration_minutes"`
	DistanceKm      float64  `json:"distance_km"`
	Price           int64    `json:"price"`
	DaysOfWeek      []int    `json:"days_of_week"`
}

func NewScheduleDocumentResponse(d *search.Document) ScheduleDocumentResponse {
	return ScheduleDocumentResponse{
		ScheduleID:      d.ScheduleID,
		Origin:          d.Origin,
		Destination:     d.Destination,
		OperatorName:    d.OperatorName,
		BusNumber:       d.BusNumber,
		BusType:         d.BusType,
		TotalSeats:      d.TotalSeats,
		AvailableSeats:  d.AvailableSeats,
		Amenities:       d.Amenities,
		DepartureTime:   d.DepartureTime,
		ArrivalTime:     d.ArrivalTime,
		DurationMinutes: d.DurationMinutes,
		DistanceKm:      d.DistanceKm,
		Price:           d.Price,
		DaysOfWeek:      d.DaysOfWeek,
	}
}
