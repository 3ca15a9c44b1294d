package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"webstats/api/models"
	"webstats/api/store"
	"webstats/api/utils"
)

type EventHandlers struct {
	Events *store.EventStore
	Log    *zap.Logger
}

func NewEventHandlers(events *store.EventStore, log *zap.Logger) *EventHandlers {
	return &EventHandlers{Events: events, Log: log}
}

// Insert handles POST /event with a JSON body.
func (h *EventHandlers) Insert(c *gin.Context) {
	var req models.EventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	h.record(c, req.URL, req.Referrer, req.Name, req.CollectorID)
}

// Collect handles GET /collect, the query-parameter beacon the tracking
// snippet fires. It shares the validation and normalization path with
// Insert.
func (h *EventHandlers) Collect(c *gin.Context) {
	collectorID := c.Query("collector_id")
	name := c.Query("name")
	rawURL := c.Query("url")
	if collectorID == "" || name == "" || rawURL == "" {
		utils.Error(c, http.StatusBadRequest, "collector_id, name and url are required")
		return
	}

	var referrer *string
	if r := c.Query("referrer"); r != "" {
		referrer = &r
	}

	h.record(c, rawURL, referrer, name, collectorID)
}

func (h *EventHandlers) record(c *gin.Context, rawURL string, referrer *string, name, collectorID string) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	id, err := h.Events.Insert(ctx, rawURL, referrer, name, collectorID)
	if err != nil {
		if errors.Is(err, store.ErrValidation) {
			utils.Error(c, http.StatusBadRequest, "Local URLs are not allowed in production")
			return
		}
		h.Log.Error("failed to record event", zap.Error(err))
		utils.Error(c, http.StatusInternalServerError, "Failed to record event")
		return
	}

	utils.Created(c, gin.H{
		"id":      id,
		"message": fmt.Sprintf("Event #%s recorded successfully", id),
	})
}

// List handles GET /event with page/per_page query params.
func (h *EventHandlers) List(c *gin.Context) {
	page, perPage := pageParams(c)

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	events, err := h.Events.List(ctx, page, perPage)
	if err != nil {
		h.Log.Error("failed to retrieve events", zap.Error(err))
		utils.Error(c, http.StatusInternalServerError, "Error retrieving events")
		return
	}

	utils.Success(c, gin.H{"events": events})
}
