package http

import (
	"time"

	"github.com/swiftroute/bus-ticketing-backend/internal/operator"
	"github.com/swiftroute/bus-ticketing-backend/internal/pkg/request"
)

type CreateOperatorRequest struct {
	Name          string `json:"name" binding:"required"`
	ContactEmail  string `json:"contact_email" binding:"omitempty,email"`
	ContactPhone  string `json:"contact_phone"`
	LicenseNumber string `json:"license_number" binding:"required"`
}

type UpdateOperatorRequest struct {
	Name          *string `json:"name"`
	ContactEmail  *string `json:"contact_email" binding:"omitempty,email"`
	ContactPhone  *string `json:"contact_phone"`
	LicenseNumber *string `json:"license_number"`
	IsActive      *bool   `json:"is_active"`
}

type ListOperatorsRequest struct {
	request.ListParams
	Name     string `form:"name"`
	IsActive *bool  `form:"is_active"`
}

type OperatorResponse struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	ContactEmail  string    `json:"contact_email"`
	ContactPhone  string    `json:"contact_phone"`
	LicenseNumber string    `json:"license_number"`
	IsActive      bool      `json:"is_active"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// OperatorTag is a minimal operator reference embedded in other responses.
type OperatorTag struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func NewOperatorResponse(o *operator.Operator) OperatorResponse {
	return OperatorResponse{
		ID:            o.ID,
		Name:          o.Name,
		ContactEmail:  o.ContactEmail,
		ContactPhone:  o.ContactPhone,
		LicenseNumber: o.LicenseNumber,
		IsActive:      o.IsActive,
		CreatedAt:     o.CreatedAt,
		UpdatedAt:     o.UpdatedAt,
	}
}
