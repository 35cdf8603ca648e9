package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/swiftroute/bus-ticketing-backend/internal/pkg/request"
	"github.com/swiftroute/bus-ticketing-backend/internal/pkg/response"
	"github.com/swiftroute/bus-ticketing-backend/internal/tracking"
)

type Handler struct {
	service tracking.Service
	worker  *tracking.Worker
}

func NewHandler(service tracking.Service, worker *tracking.Worker) *Handler {
	return &Handler{service: service, worker: worker}
}

// Record accepts a position update and queues it for the background
// writer. The device gets its acknowledgment before the write happens.
func (h *Handler) Record(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid bus id"})
		return
	}

	var body RecordLocationRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	var recordedAt time.Time
	if body.RecordedAt != "" {
		t, err := time.Parse(time.RFC3339, body.RecordedAt)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "recorded_at must be RFC 3339"})
			return
		}
		recordedAt = t
	}

	queued := h.worker.Enqueue(tracking.RecordInput{
		BusID:      uri.ID,
		Latitude:   *body.Latitude,
		Longitude:  *body.Longitude,
		SpeedKmh:   body.SpeedKmh,
		HeadingDeg: body.HeadingDeg,
		RecordedAt: recordedAt,
	})

	c.JSON(http.StatusAccepted, gin.H{"queued": queued})
}

func (h *Handler) Latest(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid bus id"})
		return
	}

	p, err := h.service.Latest(c.Request.Context(), uri.ID)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewPointResponse(p))
}

func (h *Handler) History(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid bus id"})
		return
	}

	var q HistoryRequest
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters"})
		return
	}

	var from, to time.Time
	var err error
	if q.From != "" {
		if from, err = time.Parse(time.RFC3339, q.From); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "from must be RFC 3339"})
			return
		}
	}
	if q.To != "" {
		if to, err = time.Parse(time.RFC3339, q.To); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "to must be RFC 3339"})
			return
		}
	}

	points, err := h.service.History(c.Request.Context(), uri.ID, from, to)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]PointResponse, len(points))
	for i, p := range points {
		items[i] = NewPointResponse(p)
	}

	c.JSON(http.StatusOK, items)
}

// LatestForBooking serves the tracking link printed on tickets.
func (h *Handler) LatestForBooking(c *gin.Context) {
	var uri ByReferenceRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid booking reference"})
		return
	}

	p, err := h.service.LatestForBooking(c.Request.Context(), uri.Reference)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewPointResponse(p))
}
