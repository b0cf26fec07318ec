package persistence

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"tiktok-planner/domain/repository"
)

// EnsureQueueBlobSchema creates the slot table for the queue if not exists
func EnsureQueueBlobSchema(db *sql.DB) error {
	ddl := `CREATE TABLE IF NOT EXISTS queue_blob (
        slot_key TEXT PRIMARY KEY,
        data JSONB NOT NULL,
        updated_at TIMESTAMPTZ NOT NULL
    )`
	if _, err := db.Exec(ddl); err != nil {
		return fmt.Errorf("create queue_blob table: %w", err)
	}
	return nil
}

// PostgresBlobStore keeps each slot as one JSONB row
type PostgresBlobStore struct{ db *sql.DB }

func NewPostgresBlobStore(db *sql.DB) repository.IBlobStore {
	return &PostgresBlobStore{db: db}
}

func (r *PostgresBlobStore) Get(ctx context.Context, key string) ([]byte, error) {
	row := r.db.QueryRowContext(ctx, `SELECT data FROM queue_blob WHERE slot_key=$1`, key)
	var raw []byte
	if err := row.Scan(&raw); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrBlobNotFound
		}
		return nil, err
	}
	return raw, nil
}

// Set upserts the slot. The value must be valid JSON.
func (r *PostgresBlobStore) Set(ctx context.Context, key string, value []byte) error {
	if !json.Valid(value) {
		return fmt.Errorf("queue_blob %q: value is not valid JSON", key)
	}
	q := `INSERT INTO queue_blob(slot_key, data, updated_at)
          VALUES ($1,$2,$3)
          ON CONFLICT (slot_key) DO UPDATE SET data=EXCLUDED.data, updated_at=EXCLUDED.updated_at`
	_, err := r.db.ExecContext(ctx, q, key, value, time.Now().UTC())
	return err
}
