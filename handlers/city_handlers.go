package handlers

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"webstats/api/models"
	"webstats/api/store"
	"webstats/api/utils"
)

type CityHandlers struct {
	Cities *store.CityStore
	Log    *zap.Logger
}

func NewCityHandlers(cities *store.CityStore, log *zap.Logger) *CityHandlers {
	return &CityHandlers{Cities: cities, Log: log}
}

// Insert handles POST /city: find-or-create on the (name, country) pair,
// enriching missing coordinates from the client IP.
func (h *CityHandlers) Insert(c *gin.Context) {
	var req models.CityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	id, err := h.Cities.FindOrCreate(ctx, models.City{
		Name:      req.Name,
		Country:   req.Country,
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
	}, c.ClientIP())
	if err != nil {
		h.Log.Error("failed to record city", zap.Error(err))
		utils.Error(c, http.StatusInternalServerError, "Failed to record city")
		return
	}

	utils.Created(c, gin.H{
		"id":      id,
		"message": fmt.Sprintf("City #%d recorded successfully", id),
	})
}

// List handles GET /city with page/per_page query params.
func (h *CityHandlers) List(c *gin.Context) {
	page, perPage := pageParams(c)

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	cities, err := h.Cities.List(ctx, page, perPage)
	if err != nil {
		h.Log.Error("failed to retrieve cities", zap.Error(err))
		utils.Error(c, http.StatusInternalServerError, "Failed to retrieve cities")
		return
	}

	utils.Success(c, gin.H{"cities": cities})
}
