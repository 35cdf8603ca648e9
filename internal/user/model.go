package user

import (
	"net/http"
	"time"

	"github.com/swiftroute/bus-ticketing-backend/internal/pkg/apperror"
)

var (
	ErrNotFound           = apperror.New(http.StatusNotFound, "user not found")
	ErrEmailAlreadyUsed   = apperror.New(http.StatusConflict, "email already used")
	ErrInvalidCredentials = apperror.New(http.StatusUnauthorized, "invalid email or password")
	ErrInactiveUser       = apperror.New(http.StatusForbidden, "user is inactive")
	ErrEmailRequired      = apperror.New(http.StatusBadRequest, "email is required")
	ErrPasswordTooShort   = apperror.New(http.StatusBadRequest, "password is too short")
)

// User represents an account that can create bookings and payments.
type User struct {
	ID           string // UUID
	Email        string
	PasswordHash string
	FullName     *string
	Phone        *string
	IsActive     bool
	IsAdmin      bool
	CreatedAt    time.Time
	LastLoginAt  *time.Time
}
