package models

import (
	"math"
	"strconv"
	"time"
)

// MinuteCount is one per-minute bucket of the five-minute summary. Interval
// is the bucket start truncated to the minute ("2006-01-02 15:04:00").
type MinuteCount struct {
	Interval string `json:"interval"`
	Count    int64  `json:"count"`
}

// HourCount is one per-hour bucket of the hourly summary.
type HourCount struct {
	Hour  time.Time `json:"hour"`
	Count int64     `json:"count"`
}

// WeekdayHourCount is one cell of the weekly heatmap. Day is 0-6 with 0
// meaning Sunday; Hour is 0-23.
type WeekdayHourCount struct {
	Day   int   `json:"day"`
	Hour  int   `json:"hour"`
	Count int64 `json:"count"`
}

// URLCount ranks a normalized URL by event count.
type URLCount struct {
	URL   string `json:"url"`
	Count int64  `json:"count"`
}

// BrowserCount ranks a browser by session count.
type BrowserCount struct {
	Browser string `json:"browser"`
	Count   int64  `json:"count"`
}

// OSBrowserCount ranks an (os, browser) pair by session count.
type OSBrowserCount struct {
	OS      string `json:"os"`
	Browser string `json:"browser"`
	Count   int64  `json:"count"`
}

// ReferrerCount ranks a referrer domain by event count. Empty and missing
// referrers are collapsed into the "direct" label.
type ReferrerCount struct {
	Domain string `json:"domain"`
	Count  int64  `json:"count"`
}

// EventCounts is a point-in-time snapshot of recent activity volume.
type EventCounts struct {
	SessionsInLastTwentyFourHours int64 `json:"sessions_in_last_twenty_four_hours"`
	EventsInLastTwentyFourHours   int64 `json:"events_in_last_twenty_four_hours"`
	EventsInLastHour              int64 `json:"events_in_last_hour"`
	EventsInLastFiveMinutes       int64 `json:"events_in_last_five_minutes"`
}

// Percentage is a percent-change value that may be +Inf (traffic grew from a
// zero baseline). encoding/json refuses IEEE infinities, so +Inf marshals as
// the string "+Inf" and every finite value as a plain number.
type Percentage float64

func (p Percentage) MarshalJSON() ([]byte, error) {
	if math.IsInf(float64(p), 1) {
		return []byte(`"+Inf"`), nil
	}
	return []byte(strconv.FormatFloat(float64(p), 'f', -1, 64)), nil
}

// PercentChange applies the traffic-delta convention: a zero previous period
// yields 0 when the current period is also zero, otherwise +Inf.
func PercentChange(current, previous int64) Percentage {
	if previous == 0 {
		if current == 0 {
			return 0
		}
		return Percentage(math.Inf(1))
	}
	return Percentage((float64(current) - float64(previous)) / float64(previous) * 100.0)
}
