package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/swiftroute/bus-ticketing-backend/internal/auth"
	"github.com/swiftroute/bus-ticketing-backend/internal/booking"
	"github.com/swiftroute/bus-ticketing-backend/internal/user"
)

// stubBookingService serves a single canned detail for read endpoints.
type stubBookingService struct {
	booking.Service
	detail *booking.Detail
}

func (s *stubBookingService) GetByID(ctx context.Context, id string) (*booking.Detail, error) {
	return s.detail, nil
}

func (s *stubBookingService) GetByReference(ctx context.Context, reference string) (*booking.Detail, error) {
	return s.detail, nil
}

type stubUsers struct {
	users map[string]*user.User
}

func (s *stubUsers) GetByID(ctx context.Context, id string) (*user.User, error) {
	if u, ok := s.users[id]; ok {
		return u, nil
	}
	return nil, user.ErrNotFound
}

func newReadRouter(t *testing.T, callerID string) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	svc := &stubBookingService{detail: &booking.Detail{
		Booking: &booking.Booking{
			ID:         "7b1e4b8c-0b3e-4d0a-9c5d-5b3f6a2f9e01",
			Reference:  "BTAAAA1111",
			UserID:     "user-1",
			TravelDate: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
			Status:     booking.StatusPending,
		},
	}}
	users := &stubUsers{users: map[string]*user.User{
		"user-1":  {ID: "user-1"},
		"user-2":  {ID: "user-2"},
		"admin-1": {ID: "admin-1", IsAdmin: true},
	}}

	h := NewHandler(svc, users)

	r := gin.New()
	r.Use(func(c *gin.Context) { auth.SetIdentity(c, callerID, "caller@example.com") })
	r.GET("/bookings/:id", h.Get)
	r.GET("/bookings/reference/:reference", h.GetByReference)
	return r
}

func TestHandler_Get_Access(t *testing.T) {
	const bookingPath = "/bookings/7b1e4b8c-0b3e-4d0a-9c5d-5b3f6a2f9e01"

	t.Run("owner can read their booking", func(t *testing.T) {
		w := httptest.NewRecorder()
		req, err := http.NewRequest(http.MethodGet, bookingPath, nil)
		require.NoError(t, err)

		newReadRouter(t, "user-1").ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("admin can read another user's booking", func(t *testing.T) {
		w := httptest.NewRecorder()
		req, err := http.NewRequest(http.MethodGet, bookingPath, nil)
		require.NoError(t, err)

		newReadRouter(t, "admin-1").ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("other users are forbidden", func(t *testing.T) {
		w := httptest.NewRecorder()
		req, err := http.NewRequest(http.MethodGet, bookingPath, nil)
		require.NoError(t, err)

		newReadRouter(t, "user-2").ServeHTTP(w, req)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("reference lookup follows the same rule", func(t *testing.T) {
		w := httptest.NewRecorder()
		req, err := http.NewRequest(http.MethodGet, "/bookings/reference/BTAAAA1111", nil)
		require.NoError(t, err)

		newReadRouter(t, "admin-1").ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
	})
}
