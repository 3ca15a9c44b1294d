package store

import (
	"context"
	"database/sql"

	"go.uber.org/zap"

	"webstats/api/models"
)

// SummaryStore runs the read-only aggregation queries behind the reporting
// endpoints. Every window is anchored at the database's NOW() when the query
// executes, not at request arrival.
type SummaryStore struct {
	db  *sql.DB
	log *zap.Logger
}

func NewSummaryStore(db *sql.DB, log *zap.Logger) *SummaryStore {
	return &SummaryStore{db: db, log: log}
}

// FiveMinutes buckets events per minute over the trailing 24 hours, oldest
// bucket first.
func (s *SummaryStore) FiveMinutes(ctx context.Context) ([]models.MinuteCount, error) {
	const query = `
		SELECT to_char(date_trunc('minute', created_at), 'YYYY-MM-DD HH24:MI') || ':00' AS interval,
		       COUNT(*) AS count
		FROM event
		WHERE created_at > NOW() - INTERVAL '24 hours'
		GROUP BY 1
		ORDER BY 1`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, storageError("five-minute summary", err)
	}
	defer rows.Close()

	var results []models.MinuteCount
	for rows.Next() {
		var mc models.MinuteCount
		if err := rows.Scan(&mc.Interval, &mc.Count); err != nil {
			return nil, storageError("five-minute summary scan", err)
		}
		results = append(results, mc)
	}
	return results, rows.Err()
}

// Hourly buckets events per hour over the trailing 24 hours, oldest first.
func (s *SummaryStore) Hourly(ctx context.Context) ([]models.HourCount, error) {
	const query = `
		SELECT date_trunc('hour', created_at) AS hour, COUNT(*) AS count
		FROM event
		WHERE created_at > NOW() - INTERVAL '24 hours'
		GROUP BY 1
		ORDER BY 1`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, storageError("hourly summary", err)
	}
	defer rows.Close()

	var results []models.HourCount
	for rows.Next() {
		var hc models.HourCount
		if err := rows.Scan(&hc.Hour, &hc.Count); err != nil {
			return nil, storageError("hourly summary scan", err)
		}
		results = append(results, hc)
	}
	return results, rows.Err()
}

// Weekly counts events per (day-of-week, hour-of-day) cell over the trailing
// 7 days. Day 0 is Sunday, matching EXTRACT(DOW).
func (s *SummaryStore) Weekly(ctx context.Context) ([]models.WeekdayHourCount, error) {
	const query = `
		SELECT CAST(EXTRACT(DOW FROM created_at) AS INTEGER)  AS day,
		       CAST(EXTRACT(HOUR FROM created_at) AS INTEGER) AS hour,
		       COUNT(*)                                       AS count
		FROM event
		WHERE created_at >= NOW() - INTERVAL '7 days'
		GROUP BY day, hour`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, storageError("weekly summary", err)
	}
	defer rows.Close()

	var results []models.WeekdayHourCount
	for rows.Next() {
		var whc models.WeekdayHourCount
		if err := rows.Scan(&whc.Day, &whc.Hour, &whc.Count); err != nil {
			return nil, storageError("weekly summary scan", err)
		}
		results = append(results, whc)
	}
	return results, rows.Err()
}

// URLs ranks the 25 most visited URLs over the trailing 7 days.
func (s *SummaryStore) URLs(ctx context.Context) ([]models.URLCount, error) {
	const query = `
		SELECT url, COUNT(*) AS count
		FROM event
		WHERE created_at > NOW() - INTERVAL '7 days'
		GROUP BY url
		ORDER BY count DESC
		LIMIT 25`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, storageError("top urls", err)
	}
	defer rows.Close()

	var results []models.URLCount
	for rows.Next() {
		var uc models.URLCount
		if err := rows.Scan(&uc.URL, &uc.Count); err != nil {
			return nil, storageError("top urls scan", err)
		}
		results = append(results, uc)
	}
	return results, rows.Err()
}

// Browsers ranks the 25 most common browsers among sessions created over
// the trailing 7 days.
func (s *SummaryStore) Browsers(ctx context.Context) ([]models.BrowserCount, error) {
	const query = `
		SELECT browser, COUNT(*) AS count
		FROM collector
		WHERE created_at > NOW() - INTERVAL '7 days'
		  AND browser IS NOT NULL
		GROUP BY browser
		ORDER BY count DESC
		LIMIT 25`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, storageError("top browsers", err)
	}
	defer rows.Close()

	var results []models.BrowserCount
	for rows.Next() {
		var bc models.BrowserCount
		if err := rows.Scan(&bc.Browser, &bc.Count); err != nil {
			return nil, storageError("top browsers scan", err)
		}
		results = append(results, bc)
	}
	return results, rows.Err()
}

// OSBrowsers ranks the 25 most common (os, browser) pairs among sessions
// created over the trailing 7 days.
func (s *SummaryStore) OSBrowsers(ctx context.Context) ([]models.OSBrowserCount, error) {
	const query = `
		SELECT os, browser, COUNT(*) AS count
		FROM collector
		WHERE created_at > NOW() - INTERVAL '7 days'
		  AND os IS NOT NULL
		  AND browser IS NOT NULL
		GROUP BY os, browser
		ORDER BY count DESC
		LIMIT 25`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, storageError("top os/browsers", err)
	}
	defer rows.Close()

	var results []models.OSBrowserCount
	for rows.Next() {
		var oc models.OSBrowserCount
		if err := rows.Scan(&oc.OS, &oc.Browser, &oc.Count); err != nil {
			return nil, storageError("top os/browsers scan", err)
		}
		results = append(results, oc)
	}
	return results, rows.Err()
}

// Referrers ranks the 25 most common referrer domains over the trailing 7
// days. Missing and empty referrers collapse into "direct"; otherwise the
// scheme is stripped through "//", keeping the raw value when that marker is
// absent or stripping would leave nothing.
func (s *SummaryStore) Referrers(ctx context.Context) ([]models.ReferrerCount, error) {
	const query = `
		SELECT
			CASE
				WHEN referrer IS NULL OR referrer = '' THEN 'direct'
				WHEN POSITION('//' IN referrer) = 0 THEN referrer
				ELSE COALESCE(NULLIF(SUBSTRING(referrer FROM POSITION('//' IN referrer) + 2), ''), referrer)
			END AS domain,
			COUNT(*) AS count
		FROM event
		WHERE created_at > NOW() - INTERVAL '7 days'
		GROUP BY domain
		ORDER BY count DESC
		LIMIT 25`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, storageError("top referrers", err)
	}
	defer rows.Close()

	var results []models.ReferrerCount
	for rows.Next() {
		var rc models.ReferrerCount
		if err := rows.Scan(&rc.Domain, &rc.Count); err != nil {
			return nil, storageError("top referrers scan", err)
		}
		results = append(results, rc)
	}
	return results, rows.Err()
}

// Events takes the activity snapshot: sessions in the last 24 hours plus
// event counts over 24 hours, 1 hour and 5 minutes, each as an independent
// subcount against NOW().
func (s *SummaryStore) Events(ctx context.Context) (*models.EventCounts, error) {
	const query = `
		SELECT
			(SELECT COUNT(*) FROM collector WHERE created_at >= NOW() - INTERVAL '24 hours') AS sessions_in_last_twenty_four_hours,
			(SELECT COUNT(*) FROM event WHERE created_at >= NOW() - INTERVAL '24 hours')     AS events_in_last_twenty_four_hours,
			(SELECT COUNT(*) FROM event WHERE created_at >= NOW() - INTERVAL '1 hour')       AS events_in_last_hour,
			(SELECT COUNT(*) FROM event WHERE created_at >= NOW() - INTERVAL '5 minutes')    AS events_in_last_five_minutes`

	var counts models.EventCounts
	err := s.db.QueryRowContext(ctx, query).Scan(
		&counts.SessionsInLastTwentyFourHours,
		&counts.EventsInLastTwentyFourHours,
		&counts.EventsInLastHour,
		&counts.EventsInLastFiveMinutes,
	)
	if err != nil {
		return nil, storageError("event counts", err)
	}
	return &counts, nil
}

// Percentages computes the percent change in event volume between each
// period and the one immediately before it, for day, week and month.
func (s *SummaryStore) Percentages(ctx context.Context) (map[string]models.Percentage, error) {
	periods := []struct {
		label    string
		current  string
		previous string
	}{
		{"day", "1 day", "2 days"},
		{"week", "7 days", "14 days"},
		{"month", "1 month", "2 months"},
	}

	const query = `
		SELECT
			(SELECT COUNT(*) FROM event WHERE created_at >= NOW() - $1::interval) AS current_count,
			(SELECT COUNT(*) FROM event
			 WHERE created_at BETWEEN NOW() - $2::interval AND NOW() - $1::interval) AS previous_count`

	changes := make(map[string]models.Percentage, len(periods))
	for _, period := range periods {
		var current, previous int64
		if err := s.db.QueryRowContext(ctx, query, period.current, period.previous).Scan(&current, &previous); err != nil {
			return nil, storageError("traffic percentages", err)
		}
		changes[period.label] = models.PercentChange(current, previous)
	}
	return changes, nil
}
