package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"
	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"

	"webstats/api/models"
)

const (
	recentSessionLimit     = 30
	recentEventsPerSession = 30
)

type SessionStore struct {
	db  *sql.DB
	log *zap.Logger
}

func NewSessionStore(db *sql.DB, log *zap.Logger) *SessionStore {
	return &SessionStore{db: db, log: log}
}

// Create persists a new session for the given city and returns its id, a
// fresh ULID generated here rather than supplied by the caller.
func (s *SessionStore) Create(ctx context.Context, origin string, cityID int, os, browser *string) (string, error) {
	id := ulid.Make().String()
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO collector (id, origin, city_id, os, browser)
		 VALUES ($1, $2, $3, $4, $5)`,
		id, origin, cityID, os, browser,
	)
	if err != nil {
		return "", storageError("session insert", err)
	}
	return id, nil
}

// Recent returns the last 30 sessions by creation time, each carrying up to
// 30 of its latest events. Sessions with no events at all are dropped; this
// is a recent-activity view, not a full history.
func (s *SessionStore) Recent(ctx context.Context) ([]models.SessionWithEvents, error) {
	rows, err := s.db.QueryContext(ctx, fmt.Sprintf(
		`SELECT id, origin, city_id, os, browser, created_at
		 FROM collector
		 ORDER BY created_at DESC
		 LIMIT %d`, recentSessionLimit))
	if err != nil {
		return nil, storageError("recent sessions query", err)
	}
	defer rows.Close()

	var sessions []models.Session
	var ids []string
	for rows.Next() {
		session, err := scanSession(rows)
		if err != nil {
			return nil, storageError("recent sessions scan", err)
		}
		sessions = append(sessions, session)
		ids = append(ids, session.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, storageError("recent sessions rows", err)
	}
	if len(sessions) == 0 {
		return []models.SessionWithEvents{}, nil
	}

	eventRows, err := s.db.QueryContext(ctx, fmt.Sprintf(
		`SELECT id, url, referrer, name, collector_id, created_at
		 FROM (
			SELECT e.*, ROW_NUMBER() OVER (PARTITION BY collector_id ORDER BY created_at DESC) AS rn
			FROM event e
			WHERE collector_id = ANY($1)
		 ) t
		 WHERE rn <= %d
		 ORDER BY created_at DESC`, recentEventsPerSession),
		pq.Array(ids))
	if err != nil {
		return nil, storageError("recent session events query", err)
	}
	defer eventRows.Close()

	var events []models.Event
	for eventRows.Next() {
		event, err := scanEvent(eventRows)
		if err != nil {
			return nil, storageError("recent session events scan", err)
		}
		events = append(events, event)
	}
	if err := eventRows.Err(); err != nil {
		return nil, storageError("recent session events rows", err)
	}

	return GroupEventsBySession(sessions, events), nil
}

// GroupEventsBySession attaches each event to its session, keeps the session
// ordering of the input, and drops sessions that end up with no events.
func GroupEventsBySession(sessions []models.Session, events []models.Event) []models.SessionWithEvents {
	byCollector := make(map[string][]models.Event, len(sessions))
	for _, event := range events {
		byCollector[event.CollectorID] = append(byCollector[event.CollectorID], event)
	}

	result := make([]models.SessionWithEvents, 0, len(sessions))
	for _, session := range sessions {
		sessionEvents := byCollector[session.ID]
		if len(sessionEvents) == 0 {
			continue
		}
		result = append(result, models.SessionWithEvents{Session: session, Events: sessionEvents})
	}
	return result
}

// CityCount is the raw sessions-per-city count backing the map feed.
type CityCount struct {
	Name      string
	Latitude  float32
	Longitude float32
	Count     int64
}

// MapData counts sessions per city over the trailing 7 days and normalizes
// the result for display. Cities without coordinates cannot be plotted and
// are excluded.
func (s *SessionStore) MapData(ctx context.Context) ([]models.CityPoint, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT ci.name, ci.latitude, ci.longitude, COUNT(*) AS count
		 FROM collector co
		 JOIN city ci ON ci.id = co.city_id
		 WHERE co.created_at >= NOW() - INTERVAL '7 days'
		   AND ci.latitude IS NOT NULL
		   AND ci.longitude IS NOT NULL
		 GROUP BY ci.name, ci.latitude, ci.longitude`)
	if err != nil {
		return nil, storageError("map data query", err)
	}
	defer rows.Close()

	var counts []CityCount
	for rows.Next() {
		var c CityCount
		if err := rows.Scan(&c.Name, &c.Latitude, &c.Longitude, &c.Count); err != nil {
			return nil, storageError("map data scan", err)
		}
		counts = append(counts, c)
	}
	if err := rows.Err(); err != nil {
		return nil, storageError("map data rows", err)
	}

	return BuildMapFeed(counts), nil
}

// BuildMapFeed scales each city against the busiest one: size is the plain
// count ratio and color runs from a pale to a saturated red along the same
// ratio, so busier cities stay visually distinct from quieter ones.
func BuildMapFeed(counts []CityCount) []models.CityPoint {
	var maxCount int64 = 1
	for _, c := range counts {
		if c.Count > maxCount {
			maxCount = c.Count
		}
	}

	points := make([]models.CityPoint, 0, len(counts))
	for _, c := range counts {
		ratio := float32(c.Count) / float32(maxCount)
		points = append(points, models.CityPoint{
			City:  c.Name,
			Lat:   c.Latitude,
			Lng:   c.Longitude,
			Size:  ratio,
			Color: heatColor(ratio),
		})
	}
	return points
}

// heatColor interpolates between #ffc9b9 (ratio 0) and #fa4f33 (ratio 1).
func heatColor(ratio float32) string {
	if ratio < 0 {
		ratio = 0
	}
	if ratio > 1 {
		ratio = 1
	}
	lerp := func(from, to int) int {
		return from + int(ratio*float32(to-from))
	}
	return fmt.Sprintf("#%02x%02x%02x", lerp(0xff, 0xfa), lerp(0xc9, 0x4f), lerp(0xb9, 0x33))
}

func scanSession(rows *sql.Rows) (models.Session, error) {
	var (
		session     models.Session
		os, browser sql.NullString
		createdAt   sql.NullTime
	)
	if err := rows.Scan(&session.ID, &session.Origin, &session.CityID, &os, &browser, &createdAt); err != nil {
		return models.Session{}, err
	}
	if os.Valid {
		session.OS = &os.String
	}
	if browser.Valid {
		session.Browser = &browser.String
	}
	if createdAt.Valid {
		session.CreatedAt = &createdAt.Time
	}
	return session, nil
}
