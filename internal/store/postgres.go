package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const uniqueViolationCode = "23505"

// PostgresStore keeps records in a single table keyed by (collection, key)
// with the document held in a jsonb column.
type PostgresStore struct {
	db *pgxpool.Pool
}

// NewPostgresStore builds a Postgres-backed record store.
func NewPostgresStore(db *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{db: db}
}

// Create inserts a new record. The table's composite primary key makes the
// fail-if-exists check atomic.
func (s *PostgresStore) Create(ctx context.Context, collection, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode record: %w", err)
	}
	_, err = s.db.Exec(ctx, `INSERT INTO records (collection, key, value)
        VALUES ($1, $2, $3)`, collection, key, data)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return ErrExists
		}
		return fmt.Errorf("insert record: %w", err)
	}
	return nil
}

// Read fetches a record and decodes it into out.
func (s *PostgresStore) Read(ctx context.Context, collection, key string, out any) error {
	var data []byte
	row := s.db.QueryRow(ctx, `SELECT value FROM records WHERE collection = $1 AND key = $2`, collection, key)
	if err := row.Scan(&data); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("select record: %w", err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode record: %w", err)
	}
	return nil
}

// Update replaces an existing record.
func (s *PostgresStore) Update(ctx context.Context, collection, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode record: %w", err)
	}
	cmd, err := s.db.Exec(ctx, `UPDATE records SET value = $3 WHERE collection = $1 AND key = $2`, collection, key, data)
	if err != nil {
		return fmt.Errorf("update record: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a record.
func (s *PostgresStore) Delete(ctx context.Context, collection, key string) error {
	cmd, err := s.db.Exec(ctx, `DELETE FROM records WHERE collection = $1 AND key = $2`, collection, key)
	if err != nil {
		return fmt.Errorf("delete record: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
