package models

import "time"

// Session identifies one visitor's browsing instance, created when the
// tracking script is served. The id is a ULID, so sessions sort by creation
// time. Immutable after insertion.
type Session struct {
	ID        string     `json:"id"`
	Origin    string     `json:"origin"`
	CityID    int        `json:"city_id"`
	OS        *string    `json:"os,omitempty"`
	Browser   *string    `json:"browser,omitempty"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
}

// SessionWithEvents pairs a session with its most recent events for the
// recent-activity view.
type SessionWithEvents struct {
	Session Session `json:"session"`
	Events  []Event `json:"events"`
}
