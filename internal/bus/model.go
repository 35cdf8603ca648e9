package bus

import (
	"net/http"
	"time"

	"github.com/swiftroute/bus-ticketing-backend/internal/pkg/apperror"
)

var (
	ErrNotFound           = apperror.New(http.StatusNotFound, "bus not found")
	ErrDuplicateBusNumber = apperror.New(http.StatusConflict, "bus number already registered")
	ErrOperatorNotFound   = apperror.New(http.StatusNotFound, "operator not found")
	ErrInvalidSeatCount   = apperror.New(http.StatusBadRequest, "total seats must be positive")
	ErrInvalidBusType     = apperror.New(http.StatusBadRequest, "invalid bus type")
)

type Type string

const (
	TypeAC          Type = "AC"
	TypeNonAC       Type = "NON_AC"
	TypeSleeper     Type = "SLEEPER"
	TypeSemiSleeper Type = "SEMI_SLEEPER"
	TypeLuxury      Type = "LUXURY"
)

// ValidType reports whether t is a known bus type.
func ValidType(t Type) bool {
	switch t {
	case TypeAC, TypeNonAC, TypeSleeper, TypeSemiSleeper, TypeLuxury:
		return true
	}
	return false
}

// Bus represents a vehicle owned by an operator.
type Bus struct {
	ID         string
	OperatorID string
	BusNumber  string
	BusType    Type
	TotalSeats int
	Amenities  []string
	IsActive   bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Filter defines parameters for listing buses.
type Filter struct {
	OperatorID string
	BusType    string
	IsActive   *bool
	Page       int
	PageSize   int
}
