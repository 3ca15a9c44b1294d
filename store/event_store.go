package store

import (
	"context"
	"database/sql"

	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"

	"webstats/api/models"
	"webstats/api/utils"
)

type EventStore struct {
	db  *sql.DB
	log *zap.Logger
}

func NewEventStore(db *sql.DB, log *zap.Logger) *EventStore {
	return &EventStore{db: db, log: log}
}

// Insert validates and normalizes the URL, then appends the event. Loopback
// URLs are rejected outright so local traffic never pollutes the log.
func (s *EventStore) Insert(ctx context.Context, rawURL string, referrer *string, name, collectorID string) (string, error) {
	if utils.IsLoopbackURL(rawURL) {
		return "", validationError("local URLs are not allowed")
	}

	id := ulid.Make().String()
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO event (id, url, referrer, name, collector_id)
		 VALUES ($1, $2, $3, $4, $5)`,
		id, utils.NormalizeURL(rawURL), referrer, name, collectorID,
	)
	if err != nil {
		return "", storageError("event insert", err)
	}
	return id, nil
}

// List returns one page of events ordered by id; ULIDs sort by creation
// time, so this is chronological.
func (s *EventStore) List(ctx context.Context, page, perPage int64) (*PaginationResult[models.Event], error) {
	query := `SELECT id, url, referrer, name, collector_id, created_at FROM event ORDER BY id`
	return loadAndCountPages(ctx, s.db, query, nil, page, perPage, scanEventWithTotal)
}

func scanEvent(rows *sql.Rows) (models.Event, error) {
	var (
		event     models.Event
		referrer  sql.NullString
		createdAt sql.NullTime
	)
	if err := rows.Scan(&event.ID, &event.URL, &referrer, &event.Name, &event.CollectorID, &createdAt); err != nil {
		return models.Event{}, err
	}
	if referrer.Valid {
		event.Referrer = &referrer.String
	}
	if createdAt.Valid {
		event.CreatedAt = &createdAt.Time
	}
	return event, nil
}

func scanEventWithTotal(rows *sql.Rows) (models.Event, int64, error) {
	var (
		event     models.Event
		referrer  sql.NullString
		createdAt sql.NullTime
		total     int64
	)
	if err := rows.Scan(&event.ID, &event.URL, &referrer, &event.Name, &event.CollectorID, &createdAt, &total); err != nil {
		return models.Event{}, 0, err
	}
	if referrer.Valid {
		event.Referrer = &referrer.String
	}
	if createdAt.Valid {
		event.CreatedAt = &createdAt.Time
	}
	return event, total, nil
}
