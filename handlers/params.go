package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"webstats/api/store"
)

// pageParams reads ?page and ?per_page, treating anything unparseable as
// absent. Clamping happens in the pagination engine.
func pageParams(c *gin.Context) (int64, int64) {
	var page, perPage *int64

	if raw := c.Query("page"); raw != "" {
		if n, err := strconv.ParseInt(raw, 10, 64); err == nil {
			page = &n
		}
	}
	if raw := c.Query("per_page"); raw != "" {
		if n, err := strconv.ParseInt(raw, 10, 64); err == nil {
			perPage = &n
		}
	}

	return store.PaginationDefaults(page, perPage)
}
