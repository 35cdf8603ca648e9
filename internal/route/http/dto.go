package http

import (
	"time"

	"github.com/swiftroute/bus-ticketing-backend/internal/pkg/request"
	"github.com/swiftroute/bus-ticketing-backend/internal/route"
)

type CreateRouteRequest struct {
	Origin                 string  `json:"origin" binding:"required"`
	Destination            string  `json:"destination" binding:"required"`
	DistanceKm             float64 `json:"distance_km" binding:"omitempty,min=0"`
	EstimatedDurationHours float64 `json:"estimated_duration_hours" binding:"omitempty,min=0"`
}

type UpdateRouteRequest struct {
	Origin                 *string  `json:"origin"`
	Destination            *string  `json:"destination"`
	DistanceKm             *float64 `json:"distance_km" binding:"omitempty,min=0"`
	EstimatedDurationHours *float64 `json:"estimated_duration_hours" binding:"omitempty,min=0"`
	IsActive               *bool    `json:"is_active"`
}

type ListRoutesRequest struct {
	request.ListParams
	Origin      string `form:"origin"`
	Destination string `form:"destination"`
	IsActive    *bool  `form:"is_active"`
}

type RouteResponse struct {
	ID                     string    `json:"id"`
	Origin                 string    `json:"origin"`
	Destination            string    `json:"destination"`
	DistanceKm             float64   `json:"distance_km"`
	EstimatedDurationHours float64   `json:"estimated_duration_hours"`
	IsActive               bool      `json:"is_active"`
	CreatedAt              time.Time `json:"created_at"`
	UpdatedAt              time.Time `json:"updated_at"`
}

func NewRouteResponse(rt *route.Route) RouteResponse {
	return RouteResponse{
		ID:                     rt.ID,
		Origin:                 rt.Origin,
		Destination:            rt.Destination,
		DistanceKm:             rt.DistanceKm,
		EstimatedDurationHours: rt.EstimatedDurationHours,
		IsActive:               rt.IsActive,
		CreatedAt:              rt.CreatedAt,
		UpdatedAt:              rt.UpdatedAt,
	}
}
