package http

import (
	"time"

	"github.com/swiftroute/bus-ticketing-backend/internal/tracking"
)

type RecordLocationRequest struct {
	Latitude   *float64 `json:"latitude" binding:"required"`
	Longitude  *float64 `json:"longitude" binding:"required"`
	SpeedKmh   float64  `json:"speed_kmh" binding:"omitempty,min=0"`
	HeadingDeg float64  `json:"heading_deg" binding:"omitempty,gte=0,lt=360"`
	RecordedAt string   `json:"recorded_at" binding:"omitempty"`
}

type HistoryRequest struct {
	From string `form:"from"`
	To   string `form:"to"`
}

type ByReferenceRequest struct {
	Reference string `uri:"reference" binding:"required,len=10,alphanum"`
}

type PointResponse struct {
	BusID      string    `json:"bus_id"`
	Latitude   float64   `json:"latitude"`
	Longitude  float64   `json:"longitude"`
	SpeedKmh   float64   `json:"speed_kmh"`
	HeadingDeg float64   `json:"heading_deg"`
	RecordedAt time.Time `json:"recorded_at"`
}

func NewPointResponse(p *tracking.Point) PointResponse {
	return PointResponse{
		BusID:      p.BusID,
		Latitude:   p.Latitude,
		Longitude:  p.Longitude,
		SpeedKmh:   p.SpeedKmh,
		HeadingDeg: p.HeadingDeg,
		RecordedAt: p.RecordedAt,
	}
}
