package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"webstats/api/models"
)

func TestGroupEventsBySession(t *testing.T) {
	sessions := []models.Session{
		{ID: "01A", Origin: "1.2.3.4", CityID: 1},
		{ID: "01B", Origin: "5.6.7.8", CityID: 1},
		{ID: "01C", Origin: "9.9.9.9", CityID: 2},
	}
	events := []models.Event{
		{ID: "e3", URL: "https://example.com/b", Name: "visit", CollectorID: "01A"},
		{ID: "e2", URL: "https://example.com/a", Name: "enter", CollectorID: "01C"},
		{ID: "e1", URL: "https://example.com", Name: "enter", CollectorID: "01A"},
	}

	grouped := GroupEventsBySession(sessions, events)

	require.Len(t, grouped, 2, "session without events must be dropped")
	assert.Equal(t, "01A", grouped[0].Session.ID)
	assert.Len(t, grouped[0].Events, 2)
	assert.Equal(t, "01C", grouped[1].Session.ID)
	assert.Len(t, grouped[1].Events, 1)
}

func TestGroupEventsBySessionAllEmpty(t *testing.T) {
	sessions := []models.Session{{ID: "01A"}, {ID: "01B"}}
	assert.Empty(t, GroupEventsBySession(sessions, nil))
}

func TestBuildMapFeed(t *testing.T) {
	counts := []CityCount{
		{Name: "austin", Latitude: 30.26, Longitude: -97.74, Count: 10},
		{Name: "berlin", Latitude: 52.52, Longitude: 13.40, Count: 5},
		{Name: "oslo", Latitude: 59.91, Longitude: 10.75, Count: 1},
	}

	points := BuildMapFeed(counts)
	require.Len(t, points, 3)

	assert.Equal(t, float32(1.0), points[0].Size, "busiest city has full size")
	assert.Equal(t, float32(0.5), points[1].Size)
	assert.Greater(t, points[1].Size, points[2].Size, "size must follow relative count")
	assert.Equal(t, "#fa4f33", points[0].Color, "max count gets the saturated end")
	assert.NotEqual(t, points[0].Color, points[2].Color, "counts apart must look distinct")
}

func TestBuildMapFeedEmpty(t *testing.T) {
	assert.Empty(t, BuildMapFeed(nil))
}

func TestHeatColorBounds(t *testing.T) {
	assert.Equal(t, "#ffc9b9", heatColor(0))
	assert.Equal(t, "#fa4f33", heatColor(1))
	assert.Equal(t, "#fa4f33", heatColor(2), "ratio clamped to 1")
	assert.Equal(t, "#ffc9b9", heatColor(-1), "ratio clamped to 0")
}
