package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/swiftroute/bus-ticketing-backend/internal/auth"
	"github.com/swiftroute/bus-ticketing-backend/internal/booking"
	"github.com/swiftroute/bus-ticketing-backend/internal/pkg/request"
	"github.com/swiftroute/bus-ticketing-backend/internal/pkg/response"
	"github.com/swiftroute/bus-ticketing-backend/internal/user"
)

// UserDirectory answers whether the caller may read bookings they do
// not own. user.Service satisfies it.
type UserDirectory interface {
	GetByID(ctx context.Context, id string) (*user.User, error)
}

type Handler struct {
	service booking.Service
	users   UserDirectory
}

func NewHandler(service booking.Service, users UserDirectory) *Handler {
	return &Handler{service: service, users: users}
}

// canAccess reports whether the caller owns the booking or is an admin.
func (h *Handler) canAccess(c *gin.Context, ownerID string) bool {
	callerID := auth.GetUserID(c)
	if callerID == ownerID {
		return true
	}
	u, err := h.users.GetByID(c.Request.Context(), callerID)
	return err == nil && u.IsAdmin
}

func (h *Handler) Create(c *gin.Context) {
	var body CreateBookingRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	travelDate, err := time.Parse(travelDateLayout, body.TravelDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid travel date"})
		return
	}

	passengers := make([]booking.Passenger, len(body.Passengers))
	for i, p := range body.Passengers {
		passengers[i] = booking.Passenger{
			SeatNumber: p.SeatNumber,
			Name:       p.Name,
			Age:        p.Age,
			Gender:     booking.Gender(p.Gender),
		}
	}

	detail, err := h.service.Create(c.Request.Context(), auth.GetUserID(c), booking.CreateInput{
		ScheduleID: body.ScheduleID,
		TravelDate: travelDate,
		Passengers: passengers,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewBookingDetailResponse(detail))
}

func (h *Handler) Get(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid booking id"})
		return
	}

	detail, err := h.service.GetByID(c.Request.Context(), uri.ID)
	if err != nil {
		response.Error(c, err)
		return
	}
	if !h.canAccess(c, detail.Booking.UserID) {
		response.Error(c, booking.ErrForbidden)
		return
	}

	c.JSON(http.StatusOK, NewBookingDetailResponse(detail))
}

func (h *Handler) GetByReference(c *gin.Context) {
	var uri ByReferenceRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid booking reference"})
		return
	}

	detail, err := h.service.GetByReference(c.Request.Context(), uri.Reference)
	if err != nil {
		response.Error(c, err)
		return
	}
	if !h.canAccess(c, detail.Booking.UserID) {
		response.Error(c, booking.ErrForbidden)
		return
	}

	c.JSON(http.StatusOK, NewBookingDetailResponse(detail))
}

func (h *Handler) List(c *gin.Context) {
	var q ListBookingsRequest
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters"})
		return
	}

	bookings, total, err := h.service.ListByUser(c.Request.Context(), auth.GetUserID(c), q.Page, q.PageSize)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]BookingResponse, len(bookings))
	for i, b := range bookings {
		items[i] = NewBookingResponse(b)
	}

	c.JSON(http.StatusOK, response.NewPageResponse(items, q.Page, q.PageSize, total))
}

func (h *Handler) Cancel(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid booking id"})
		return
	}

	if err := h.service.Cancel(c.Request.Context(), uri.ID, auth.GetUserID(c)); err != nil {
		response.Error(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *Handler) Confirm(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid booking id"})
		return
	}

	if err := h.service.Confirm(c.Request.Context(), uri.ID); err != nil {
		response.Error(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *Handler) BookedSeats(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid schedule id"})
		return
	}

	var q BookedSeatsRequest
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid travel date"})
		return
	}

	travelDate, err := time.Parse(travelDateLayout, q.TravelDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid travel date"})
		return
	}

	seats, err := h.service.BookedSeats(c.Request.Context(), uri.ID, travelDate)
	if err != nil {
		response.Error(c, err)
		return
	}
	if seats == nil {
		seats = []int{}
	}

	c.JSON(http.StatusOK, BookedSeatsResponse{
		ScheduleID:  uri.ID,
		TravelDate:  q.TravelDate,
		BookedSeats: seats,
	})
}
