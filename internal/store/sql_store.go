package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/lib/pq"  // PostgreSQL driver
	_ "modernc.org/sqlite" // SQLite driver
)

// SQL drivers supported by SQLStore.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

const createBlobsTable = `CREATE TABLE IF NOT EXISTS kv_blobs (
	blob_key   TEXT PRIMARY KEY,
	blob_value TEXT NOT NULL,
	updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
)`

// SQLStore keeps blobs in a single kv_blobs table on Postgres or SQLite.
type SQLStore struct {
	db     *sql.DB
	driver string
}

// NewSQLStore opens dsn with driver, pings and creates the table if needed.
func NewSQLStore(ctx context.Context, driver, dsn string) (*SQLStore, error) {
	if driver != DriverPostgres && driver != DriverSQLite {
		return nil, fmt.Errorf("sql store: unsupported driver %q", driver)
	}
	if dsn == "" {
		return nil, fmt.Errorf("sql store: %s dsn required", driver)
	}
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if driver == DriverSQLite {
		// One writer at a time avoids SQLITE_BUSY under concurrent requests.
		db.SetMaxOpenConns(1)
	} else {
		db.SetMaxOpenConns(20)
		db.SetMaxIdleConns(5)
		db.SetConnMaxLifetime(time.Hour)
		db.SetConnMaxIdleTime(10 * time.Minute)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	if _, err := db.ExecContext(ctx, createBlobsTable); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create kv_blobs: %w", err)
	}
	return &SQLStore{db: db, driver: driver}, nil
}

func (s *SQLStore) placeholder(n int) string {
	if s.driver == DriverPostgres {
		return fmt.Sprintf("$%d", n)
	}
	return "?"
}

// Get returns the value for key.
func (s *SQLStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	query := "SELECT blob_value FROM kv_blobs WHERE blob_key = " + s.placeholder(1)
	var value string
	err := s.db.QueryRowContext(ctx, query, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return []byte(value), true, nil
}

// Put upserts value under key.
func (s *SQLStore) Put(ctx context.Context, key string, value []byte) error {
	query := fmt.Sprintf(`INSERT INTO kv_blobs (blob_key, blob_value, updated_at)
VALUES (%s, %s, CURRENT_TIMESTAMP)
ON CONFLICT (blob_key) DO UPDATE SET blob_value = excluded.blob_value, updated_at = CURRENT_TIMESTAMP`,
		s.placeholder(1), s.placeholder(2))
	_, err := s.db.ExecContext(ctx, query, key, string(value))
	return err
}

// Delete removes key.
func (s *SQLStore) Delete(ctx context.Context, key string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM kv_blobs WHERE blob_key = "+s.placeholder(1), key)
	return err
}

// Ping checks the connection.
func (s *SQLStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close closes the pool.
func (s *SQLStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}
