package tracking

import (
	"net/http"
	"time"

	"github.com/swiftroute/bus-ticketing-backend/internal/pkg/apperror"
)

var (
	ErrNotFound           = apperror.New(http.StatusNotFound, "no tracking data for this bus")
	ErrBusNotFound        = apperror.New(http.StatusNotFound, "bus not found")
	ErrInvalidCoordinates = apperror.New(http.StatusBadRequest, "latitude must be within [-90, 90] and longitude within [-180, 180]")
	ErrInvalidSpeed       = apperror.New(http.StatusBadRequest, "speed must not be negative")
	ErrInvalidHeading     = apperror.New(http.StatusBadRequest, "heading must be within [0, 360)")
	ErrInvalidWindow      = apperror.New(http.StatusBadRequest, "history window start must be before its end")
)

// Point is one GPS sample reported by a bus. RecordedAt is when the
// device took the sample; CreatedAt is when we stored it.
type Point struct {
	ID         string
	BusID      string
	Latitude   float64
	Longitude  float64
	SpeedKmh   float64
	HeadingDeg float64
	RecordedAt time.Time
	CreatedAt  time.Time
}
