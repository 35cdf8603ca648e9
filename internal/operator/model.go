package operator

import (
	"net/http"
	"time"

	"github.com/swiftroute/bus-ticketing-backend/internal/pkg/apperror"
)

var (
	ErrNotFound         = apperror.New(http.StatusNotFound, "operator not found")
	ErrDuplicateLicense = apperror.New(http.StatusConflict, "license number already registered")
	ErrNameRequired     = apperror.New(http.StatusBadRequest, "operator name is required")
)

// Operator represents a bus operator company.
type Operator struct {
	ID            string
	Name          string
	ContactEmail  string
	ContactPhone  string
	LicenseNumber string
	IsActive      bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Filter defines parameters for listing operators.
type Filter struct {
	Name     string
	IsActive *bool
	Page     int
	PageSize int
}
