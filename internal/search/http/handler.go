package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/swiftroute/bus-ticketing-backend/internal/pkg/request"
	"github.com/swiftroute/bus-ticketing-backend/internal/pkg/response"
	"github.com/swiftroute/bus-ticketing-backend/internal/search"
)

type Handler struct {
	service      search.Service
	synchronizer *search.Synchronizer
}

func NewHandler(service search.Service, synchronizer *search.Synchronizer) *Handler {
	return &Handler{service: service, synchronizer: synchronizer}
}

func (h *Handler) Search(c *gin.Context) {
	var q SearchSchedulesRequest
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters"})
		return
	}

	docs, total, err := h.service.Search(c.Request.Context(), search.Query{
		Origin:      q.Origin,
		Destination: q.Destination,
		BusType:     q.BusType,
		MinPrice:    q.MinPrice,
		MaxPrice:    q.MaxPrice,
		Page:        q.Page,
		PageSize:    q.PageSize,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]ScheduleDocumentResponse, len(docs))
	for i, d := range docs {
		items[i] = NewScheduleDocumentResponse(d)
	}

	c.JSON(http.StatusOK, response.NewPageResponse(items, q.Page, q.PageSize, total))
}

// Reindex forces a document refresh for one schedule.
func (h *Handler) Reindex(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid schedule id"})
		return
	}

	updated, err := h.service.IndexSchedule(c.Request.Context(), uri.ID)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"schedule_id": uri.ID, "updated": updated})
}

// Count reports how many schedule documents the index holds.
func (h *Handler) Count(c *gin.Context) {
	count, err := h.service.DocumentCount(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"count": count})
}

// Sync runs a full reconciliation sweep and returns its report.
func (h *Handler) Sync(c *gin.Context) {
	report, err := h.synchronizer.Sweep(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}
