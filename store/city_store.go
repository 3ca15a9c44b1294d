package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"webstats/api/models"
)

// GeoResolver is the slice of the geolocation service the city registry
// needs for enriching new rows.
type GeoResolver interface {
	Resolve(ip string) (models.City, error)
}

type CityStore struct {
	db  *sql.DB
	geo GeoResolver
	log *zap.Logger
}

func NewCityStore(db *sql.DB, geo GeoResolver, log *zap.Logger) *CityStore {
	return &CityStore{db: db, geo: geo, log: log}
}

// FindOrCreate returns the id of the city matching the candidate's
// lowercased (name, country) pair, inserting it first when no row exists.
// Coordinates missing from the candidate are filled from the resolver keyed
// on ip; a failed lookup leaves them empty rather than failing the call.
//
// Two concurrent calls for the same new pair can both miss the lookup and
// both insert. That race is accepted; see the unique-index note in Schema.
func (s *CityStore) FindOrCreate(ctx context.Context, city models.City, ip string) (int, error) {
	name := strings.ToLower(city.Name)
	country := strings.ToLower(city.Country)

	id, err := s.find(ctx, name, country)
	if err == nil {
		return id, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return 0, err
	}

	if (city.Latitude == nil || city.Longitude == nil) && ip != "" && s.geo != nil {
		resolved, err := s.geo.Resolve(ip)
		if err != nil {
			s.log.Warn("city enrichment degraded", zap.String("ip", ip), zap.Error(err))
		} else {
			if city.Latitude == nil {
				city.Latitude = resolved.Latitude
			}
			if city.Longitude == nil {
				city.Longitude = resolved.Longitude
			}
		}
	}

	err = s.db.QueryRowContext(ctx,
		`INSERT INTO city (name, country, latitude, longitude)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id`,
		name, country, city.Latitude, city.Longitude,
	).Scan(&id)
	if err != nil {
		return 0, storageError("city insert", err)
	}

	return id, nil
}

// find looks a city up by its already-lowercased natural key. Absence is
// meaningful to the caller, so it maps onto ErrNotFound rather than a
// storage failure.
func (s *CityStore) find(ctx context.Context, name, country string) (int, error) {
	var id int
	err := s.db.QueryRowContext(ctx,
		`SELECT id FROM city WHERE name = $1 AND country = $2`,
		name, country,
	).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("%w: city %q, %q", ErrNotFound, name, country)
	}
	if err != nil {
		return 0, storageError("city lookup", err)
	}
	return id, nil
}

// List returns one page of cities ordered by id.
func (s *CityStore) List(ctx context.Context, page, perPage int64) (*PaginationResult[models.City], error) {
	query := `SELECT id, name, country, latitude, longitude, created_at FROM city ORDER BY id`
	return loadAndCountPages(ctx, s.db, query, nil, page, perPage, scanCityWithTotal)
}

func scanCityWithTotal(rows *sql.Rows) (models.City, int64, error) {
	var (
		city      models.City
		lat, lng  sql.NullFloat64
		createdAt sql.NullTime
		total     int64
	)
	if err := rows.Scan(&city.ID, &city.Name, &city.Country, &lat, &lng, &createdAt, &total); err != nil {
		return models.City{}, 0, err
	}
	if lat.Valid {
		v := float32(lat.Float64)
		city.Latitude = &v
	}
	if lng.Valid {
		v := float32(lng.Float64)
		city.Longitude = &v
	}
	if createdAt.Valid {
		city.CreatedAt = &createdAt.Time
	}
	return city, total, nil
}
