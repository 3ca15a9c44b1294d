package store

import (
	"context"
	"database/sql"
)

// Schema is the minimum DDL the service needs. Applied with IF NOT EXISTS at
// startup; there is no migration tooling here.
//
// City uniqueness on (lower(name), lower(country)) is enforced by
// find-before-insert in CityStore, not by a constraint. An operator wanting
// the stronger guarantee can add:
//
//	CREATE UNIQUE INDEX city_name_country_key ON city (lower(name), lower(country));
const Schema = `
CREATE TABLE IF NOT EXISTS city (
	id         SERIAL PRIMARY KEY,
	name       TEXT NOT NULL,
	country    TEXT NOT NULL,
	latitude   REAL,
	longitude  REAL,
	created_at TIMESTAMPTZ DEFAULT now()
);

CREATE TABLE IF NOT EXISTS collector (
	id         TEXT PRIMARY KEY,
	origin     TEXT NOT NULL,
	city_id    INTEGER NOT NULL REFERENCES city (id),
	os         TEXT,
	browser    TEXT,
	created_at TIMESTAMPTZ DEFAULT now()
);

CREATE TABLE IF NOT EXISTS event (
	id           TEXT PRIMARY KEY,
	url          TEXT NOT NULL,
	referrer     TEXT,
	name         TEXT NOT NULL,
	collector_id TEXT NOT NULL REFERENCES collector (id),
	created_at   TIMESTAMPTZ DEFAULT now()
);

CREATE INDEX IF NOT EXISTS event_created_at_idx ON event (created_at);
CREATE INDEX IF NOT EXISTS event_collector_id_idx ON event (collector_id);
CREATE INDEX IF NOT EXISTS collector_created_at_idx ON collector (created_at);
`

// EnsureSchema applies the DDL above.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, Schema); err != nil {
		return storageError("ensure schema", err)
	}
	return nil
}
