package blob

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"time"

	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"
)

//go:embed migrations/*.sql
var migrations embed.FS

// SQLiteStorage keeps namespaces as rows of the blobs table.
type SQLiteStorage struct {
	db  *sql.DB
	now func() time.Time
}

// OpenSQLite opens the database at path and applies pending migrations.
func OpenSQLite(ctx context.Context, path string) (*SQLiteStorage, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	// A single connection keeps in-memory databases shared and serializes writers.
	db.SetMaxOpenConns(1)

	if err := migrate(ctx, db); err != nil {
		db.Close()
		return nil, err
	}
	return &SQLiteStorage{db: db, now: time.Now}, nil
}

func migrate(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations)
	goose.SetLogger(goose.NopLogger())
	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("goose dialect: %w", err)
	}
	if err := goose.UpContext(ctx, db, "migrations"); err != nil {
		return fmt.Errorf("migrate blobs schema: %w", err)
	}
	return nil
}

func (s *SQLiteStorage) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *SQLiteStorage) ReadBlob(ns string) (string, bool, error) {
	if err := ValidateNamespace(ns); err != nil {
		return "", false, err
	}
	var data string
	err := s.db.QueryRow(`SELECT data FROM blobs WHERE namespace = ?`, ns).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("query blob %s: %w", ns, err)
	}
	return data, true, nil
}

func (s *SQLiteStorage) WriteBlob(ns, data string) error {
	if err := ValidateNamespace(ns); err != nil {
		return err
	}
	_, err := s.db.Exec(`
INSERT INTO blobs (namespace, data, updated_at)
VALUES (?, ?, ?)
ON CONFLICT(namespace) DO UPDATE SET
  data=excluded.data,
  updated_at=excluded.updated_at
`, ns, data, s.now().UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("upsert blob %s: %w", ns, err)
	}
	return nil
}
