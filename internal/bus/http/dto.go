package http

import (
	"time"

	"github.com/swiftroute/bus-ticketing-backend/internal/bus"
	"github.com/swiftroute/bus-ticketing-backend/internal/pkg/request"
)

type CreateBusRequest struct {
	OperatorID string   `json:"operator_id" binding:"required,uuid"`
	BusNumber  string   `json:"bus_number" binding:"required"`
	BusType    string   `json:"bus_type" binding:"required,oneof=AC NON_AC SLEEPER SEMI_SLEEPER LUXURY"`
	TotalSeats int      `json:"total_seats" binding:"required,min=1"`
	Amenities  []string `json:"amenities"`
}

type UpdateBusRequest struct {
	BusNumber  *string  `json:"bus_number"`
	BusType    *string  `json:"bus_type" binding:"omitempty,oneof=AC NON_AC SLEEPER SEMI_SLEEPER LUXURY"`
	TotalSeats *int     `json:"total_seats" binding:"omitempty,min=1"`
	Amenities  []string `json:"amenities"`
	IsActive   *bool    `json:"is_active"`
}

type ListBusesRequest struct {
	request.ListParams
	OperatorID string `form:"operator_id" binding:"omitempty,uuid"`
	BusType    string `form:"bus_type" binding:"omitempty,oneof=AC NON_AC SLEEPER SEMI_SLEEPER LUXURY"`
	IsActive   *bool  `form:"is_active"`
}

type BusResponse struct {
	ID         string    `json:"id"`
	OperatorID string    `json:"operator_id"`
	BusNumber  string    `json:"bus_number"`
	BusType    string    `json:"bus_type"`
	TotalSeats int       `json:"total_seats"`
	Amenities  []string  `json:"amenities"`
	IsActive   bool      `json:"is_active"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// BusTag is a minimal bus reference embedded in other responses.
type BusTag struct {
	ID        string `json:"id"`
	BusNumber string `json:"bus_number"`
}

func NewBusResponse(b *bus.Bus) BusResponse {
	amenities := b.Amenities
	if amenities == nil {
		amenities = []string{}
	}
	return BusResponse{
		ID:         b.ID,
		OperatorID: b.OperatorID,
		BusNumber:  b.BusNumber,
		BusType:    string(b.BusType),
		TotalSeats: b.TotalSeats,
		Amenities:  amenities,
		IsActive:   b.IsActive,
		CreatedAt:  b.CreatedAt,
		UpdatedAt:  b.UpdatedAt,
	}
}
