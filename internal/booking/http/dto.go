package http

import (
	"time"

	"github.com/swiftroute/bus-ticketing-backend/internal/booking"
	"github.com/swiftroute/bus-ticketing-backend/internal/pkg/request"
)

const travelDateLayout = "2006-01-02"

type PassengerRequest struct {
	SeatNumber int    `json:"seat_number" binding:"required,min=1"`
	Name       string `json:"name" binding:"required"`
	Age        int    `json:"age" binding:"required,min=1,max=120"`
	Gender     string `json:"gender" binding:"required,oneof=MALE FEMALE OTHER"`
}

type CreateBookingRequest struct {
	ScheduleID string             `json:"schedule_id" binding:"required,uuid"`
	TravelDate string             `json:"travel_date" binding:"required,datetime=2006-01-02"`
	Passengers []PassengerRequest `json:"passengers" binding:"required,min=1,dive"`
}

type ByReferenceRequest struct {
	Reference string `uri:"reference" binding:"required,len=10,alphanum"`
}

type BookedSeatsRequest struct {
	TravelDate string `form:"travel_date" binding:"required,datetime=2006-01-02"`
}

type ListBookingsRequest struct {
	request.ListParams
}

type SeatResponse struct {
	SeatNumber      int    `json:"seat_number"`
	PassengerName   string `json:"passenger_name"`
	PassengerAge    int    `json:"passenger_age"`
	PassengerGender string `json:"passenger_gender"`
	Released        bool   `json:"released"`
}

type BookingResponse struct {
	ID          string    `json:"id"`
	Reference   string    `json:"booking_reference"`
	ScheduleID  string    `json:"schedule_id"`
	TravelDate  string    `json:"travel_date"`
	TotalSeats  int       `json:"total_seats"`
	TotalAmount int64     `json:"total_amount"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

type BookingDetailResponse struct {
	BookingResponse
	BusNumber     string         `json:"bus_number"`
	BusType       string         `json:"bus_type"`
	OperatorName  string         `json:"operator_name"`
	Origin        string         `json:"origin"`
	Destination   string         `json:"destination"`
	DepartureTime string         `json:"departure_time"`
	ArrivalTime   string         `json:"arrival_time"`
	TrackingLink  string         `json:"tracking_link"`
	Seats         []SeatResponse `json:"seats"`
}

type BookedSeatsResponse struct {
	ScheduleID  string `json:"schedule_id"`
	TravelDate  string `json:"travel_date"`
	BookedSeats []int  `json:"booked_seats"`
}

func NewBookingResponse(b *booking.Booking) BookingResponse {
	return BookingResponse{
		ID:          b.ID,
		Reference:   b.Reference,
		ScheduleID:  b.ScheduleID,
		TravelDate:  b.TravelDate.Format(travelDateLayout),
		TotalSeats:  b.TotalSeats,
		TotalAmount: b.TotalAmount,
		Status:      string(b.Status),
		CreatedAt:   b.CreatedAt,
	}
}

func NewBookingDetailResponse(d *booking.Detail) BookingDetailResponse {
	seats := make([]SeatResponse, len(d.Booking.Seats))
	for i, h := range d.Booking.Seats {
		seats[i] = SeatResponse{
			SeatNumber:      h.SeatNumber,
			PassengerName:   h.PassengerName,
			PassengerAge:    h.PassengerAge,
			PassengerGender: string(h.PassengerGender),
			Released:        h.ReleasedAt != nil,
		}
	}

	return BookingDetailResponse{
		BookingResponse: NewBookingResponse(d.Booking),
		BusNumber:       d.BusNumber,
		BusType:         string(d.BusType),
		OperatorName:    d.OperatorName,
		Origin:          d.Origin,
		Destination:     d.Destination,
		DepartureTime:   d.DepartureTime,
		ArrivalTime:     d.ArrivalTime,
		TrackingLink:    d.TrackingLink,
		Seats:           seats,
	}
}
