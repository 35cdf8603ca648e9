package http

import (
	"time"

	"github.com/swiftroute/bus-ticketing-backend/internal/pkg/request"
	"github.com/swiftroute/bus-ticketing-backend/internal/schedule"
)

type CreateScheduleRequest struct {
	BusID         string `json:"bus_id" binding:"required,uuid"`
	RouteID       string `json:"route_id" binding:"required,uuid"`
	DepartureTime string `json:"departure_time" binding:"required"`
	ArrivalTime   string `json:"arrival_time" binding:"required"`
	Price         int64  `json:"price" binding:"required,min=1"`
	IsRecurring   bool   `json:"is_recurring"`
	DaysOfWeek    []int  `json:"days_of_week" binding:"omitempty,dive,min=0,max=6"`
}

type UpdateScheduleRequest struct {
	DepartureTime *string `json:"departure_time"`
	ArrivalTime   *string `json:"arrival_time"`
	Price         *int64  `json:"price" binding:"omitempty,min=1"`
	IsRecurring   *bool   `json:"is_recurring"`
	DaysOfWeek    []int   `json:"days_of_week" binding:"omitempty,dive,min=0,max=6"`
	IsActive      *bool   `json:"is_active"`
}

type ListSchedulesRequest struct {
	request.ListParams
	BusID    string `form:"bus_id" binding:"omitempty,uuid"`
	RouteID  string `form:"route_id" binding:"omitempty,uuid"`
	IsActive *bool  `form:"is_active"`
}

type ScheduleResponse struct {
	ID            string    `json:"id"`
	BusID         string    `json:"bus_id"`
	RouteID       string    `json:"route_id"`
	DepartureTime string    `json:"departure_time"`
	ArrivalTime   string    `json:"arrival_time"`
	Price         int64     `json:"price"`
	IsRecurring   bool      `json:"is_recurring"`
	DaysOfWeek    []int     `json:"days_of_week"`
	IsActive      bool      `json:"is_active"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func NewScheduleResponse(s *schedule.Schedule) ScheduleResponse {
	days := s.DaysOfWeek
	if days == nil {
		days = []int{}
	}
	return ScheduleResponse{
		ID:            s.ID,
		BusID:         s.BusID,
		RouteID:       s.RouteID,
		DepartureTime: s.DepartureTime,
		ArrivalTime:   s.ArrivalTime,
		Price:         s.Price,
		IsRecurring:   s.IsRecurring,
		DaysOfWeek:    days,
		IsActive:      s.IsActive,
		CreatedAt:     s.CreatedAt,
		UpdatedAt:     s.UpdatedAt,
	}
}
