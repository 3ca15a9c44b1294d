package database

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"

	"webstats/api/config"
)

type DBClient struct {
	DB *sql.DB
}

// NewPostgresDB opens the connection pool described by the config and
// verifies it with a ping before handing it out.
func NewPostgresDB(cfg *config.Config) (*DBClient, error) {
	db, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("error opening database connection: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err = db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("error connecting to the database (ping failed): %w", err)
	}

	return &DBClient{DB: db}, nil
}

func (c *DBClient) Close() error {
	if c.DB != nil {
		return c.DB.Close()
	}
	return nil
}
