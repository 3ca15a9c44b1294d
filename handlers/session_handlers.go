package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"webstats/api/store"
	"webstats/api/utils"
)

type SessionHandlers struct {
	Sessions *store.SessionStore
	Log      *zap.Logger
}

func NewSessionHandlers(sessions *store.SessionStore, log *zap.Logger) *SessionHandlers {
	return &SessionHandlers{Sessions: sessions, Log: log}
}

// Recent handles GET /session: the last 30 sessions with their events.
func (h *SessionHandlers) Recent(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	sessions, err := h.Sessions.Recent(ctx)
	if err != nil {
		h.Log.Error("failed to retrieve sessions", zap.Error(err))
		utils.Error(c, http.StatusInternalServerError, "Failed to retrieve sessions")
		return
	}

	utils.Success(c, gin.H{"sessions": sessions})
}

// MapData handles GET /session/map: the per-city session counts feeding the
// visitor map.
func (h *SessionHandlers) MapData(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	cities, err := h.Sessions.MapData(ctx)
	if err != nil {
		h.Log.Error("failed to retrieve map data", zap.Error(err))
		utils.Error(c, http.StatusInternalServerError, "Failed to retrieve map data")
		return
	}

	utils.Success(c, gin.H{"cities": cities})
}
