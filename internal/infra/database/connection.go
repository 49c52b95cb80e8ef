package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
)

// NewDBConnection opens the pool and pings it once.
func NewDBConnection(connString string, maxOpen, maxIdle int) (*sql.DB, error) {
	db, err := sql.Open("postgres", connString)
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres: %w", err)
	}

	db.SetMaxOpenConns(maxOpen)
	db.SetMaxIdleConns(maxIdle)
	db.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("postgres ping failed: %w", err)
	}

	return db, nil
}

const schemaSQL = `
CREATE TABLE IF NOT EXISTS csr_leads (
	id                 UUID PRIMARY KEY,
	lead_name          TEXT NOT NULL,
	contact_number     TEXT NOT NULL,
	company_name       TEXT NOT NULL,
	service_interested TEXT NOT NULL,
	status             TEXT NOT NULL,
	date_of_contact    DATE,
	assigned_csr       TEXT NOT NULL DEFAULT '',
	callback_time      TIMESTAMPTZ,
	notes              TEXT NOT NULL DEFAULT '',
	email_sent_date    DATE,
	email_confirmed    TEXT NOT NULL DEFAULT '',
	created_at         TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	created_by         TEXT NOT NULL DEFAULT '',
	follow_up_schedule JSONB NOT NULL DEFAULT '[]'::jsonb
);
CREATE INDEX IF NOT EXISTS idx_csr_leads_created_at ON csr_leads (created_at DESC);
`

func EnsureSchema(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	return nil
}
