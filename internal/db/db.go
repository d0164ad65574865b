package db

import (
	"context"
	"database/sql"
	"time"

	_ "github.com/lib/pq"
)

const schema = `
CREATE TABLE IF NOT EXISTS analytics_events (
	id               BIGSERIAL PRIMARY KEY,
	event_name       TEXT        NOT NULL,
	event_time       TIMESTAMPTZ NOT NULL,
	session_id       TEXT,
	platform         TEXT        NOT NULL DEFAULT 'unknown',
	app_version      TEXT        NOT NULL DEFAULT '',
	device_locale    TEXT,
	request_id       TEXT,
	source_event_key TEXT UNIQUE,
	properties       JSONB       NOT NULL DEFAULT '{}'::jsonb
)`

func Connect(ctx context.Context, connString string) (*sql.DB, error) {
	db, err := sql.Open("postgres", connString)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(5)
	db.SetConnMaxIdleTime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	return db, nil
}

// EnsureSchema creates the analytics table if it is missing.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, schema)
	return err
}
