package models

import "time"

// City is one geographic location visitors resolve to. The pair
// (lower(name), lower(country)) is unique at the application level; rows are
// never updated or deleted after insertion.
type City struct {
	ID        int        `json:"id"`
	Name      string     `json:"name"`
	Country   string     `json:"country"`
	Latitude  *float32   `json:"latitude,omitempty"`
	Longitude *float32   `json:"longitude,omitempty"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
}

// CityRequest is the POST /city payload.
type CityRequest struct {
	Name      string   `json:"name" binding:"required"`
	Country   string   `json:"country" binding:"required"`
	Latitude  *float32 `json:"latitude"`
	Longitude *float32 `json:"longitude"`
}

// CityPoint is one entry of the map feed: a city with its session count
// scaled relative to the busiest city in the window.
type CityPoint struct {
	City  string  `json:"city"`
	Lat   float32 `json:"lat"`
	Lng   float32 `json:"lng"`
	Size  float32 `json:"size"`
	Color string  `json:"color"`
}
