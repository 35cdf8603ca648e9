package route

import (
	"net/http"
	"time"

	"github.com/swiftroute/bus-ticketing-backend/internal/pkg/apperror"
)

var (
	ErrNotFound         = apperror.New(http.StatusNotFound, "route not found")
	ErrDuplicateRoute   = apperror.New(http.StatusConflict, "route with this origin and destination already exists")
	ErrEndpointRequired = apperror.New(http.StatusBadRequest, "origin and destination are required")
)

// Route represents a travel corridor between two cities.
type Route struct {
	ID                     string
	Origin                 string
	Destination            string
	DistanceKm             float64
	EstimatedDurationHours float64
	IsActive               bool
	CreatedAt              time.Time
	UpdatedAt              time.Time
}

// Filter defines parameters for listing routes.
type Filter struct {
	Origin      string
	Destination string
	IsActive    *bool
	Page        int
	PageSize    int
}
