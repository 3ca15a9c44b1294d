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

type SummaryHandlers struct {
	Summaries *store.SummaryStore
	Log       *zap.Logger
}

func NewSummaryHandlers(summaries *store.SummaryStore, log *zap.Logger) *SummaryHandlers {
	return &SummaryHandlers{Summaries: summaries, Log: log}
}

// respond runs one aggregation and wraps its result under the "summary" key,
// which every summary endpoint shares.
func (h *SummaryHandlers) respond(c *gin.Context, name string, query func(context.Context) (any, error)) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	summary, err := query(ctx)
	if err != nil {
		h.Log.Error("failed to load summary", zap.String("summary", name), zap.Error(err))
		utils.Error(c, http.StatusInternalServerError, "Failed to retrieve "+name+" summary")
		return
	}

	utils.Success(c, gin.H{"summary": summary})
}

func (h *SummaryHandlers) FiveMinutes(c *gin.Context) {
	h.respond(c, "five-minute", func(ctx context.Context) (any, error) { return h.Summaries.FiveMinutes(ctx) })
}

func (h *SummaryHandlers) Hourly(c *gin.Context) {
	h.respond(c, "hourly", func(ctx context.Context) (any, error) { return h.Summaries.Hourly(ctx) })
}

func (h *SummaryHandlers) Weekly(c *gin.Context) {
	h.respond(c, "weekly", func(ctx context.Context) (any, error) { return h.Summaries.Weekly(ctx) })
}

func (h *SummaryHandlers) URLs(c *gin.Context) {
	h.respond(c, "url", func(ctx context.Context) (any, error) { return h.Summaries.URLs(ctx) })
}

func (h *SummaryHandlers) Browsers(c *gin.Context) {
	h.respond(c, "browser", func(ctx context.Context) (any, error) { return h.Summaries.Browsers(ctx) })
}

func (h *SummaryHandlers) OSBrowsers(c *gin.Context) {
	h.respond(c, "os/browser", func(ctx context.Context) (any, error) { return h.Summaries.OSBrowsers(ctx) })
}

func (h *SummaryHandlers) Referrers(c *gin.Context) {
	h.respond(c, "referrer", func(ctx context.Context) (any, error) { return h.Summaries.Referrers(ctx) })
}

func (h *SummaryHandlers) Events(c *gin.Context) {
	h.respond(c, "event", func(ctx context.Context) (any, error) { return h.Summaries.Events(ctx) })
}

func (h *SummaryHandlers) Percentages(c *gin.Context) {
	h.respond(c, "percentage", func(ctx context.Context) (any, error) { return h.Summaries.Percentages(ctx) })
}
