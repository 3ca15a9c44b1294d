package models

import "time"

// Event is one recorded visitor action (pageview, visit, leave, exit). The
// event log is append-only and is the source of truth for every aggregate.
type Event struct {
	ID          string     `json:"id"`
	URL         string     `json:"url"`
	Referrer    *string    `json:"referrer,omitempty"`
	Name        string     `json:"name"`
	CollectorID string     `json:"collector_id"`
	CreatedAt   *time.Time `json:"created_at,omitempty"`
}

// EventRequest is the POST /event payload.
type EventRequest struct {
	URL         string  `json:"url" binding:"required"`
	Referrer    *string `json:"referrer"`
	Name        string  `json:"name" binding:"required"`
	CollectorID string  `json:"collector_id" binding:"required"`
}
