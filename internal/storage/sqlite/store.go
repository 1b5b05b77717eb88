// Package sqlite provides a SQLite-backed run archive.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	msqlite "modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"

	"github.com/boyter/titfortat/internal/storage"
	"github.com/boyter/titfortat/internal/storage/sqlite/migrations"
)

// DefaultListLimit caps ListRuns when no limit is given.
const DefaultListLimit = 20

// Store persists archived runs in SQLite.
type Store struct {
	sqlDB *sql.DB
}

var _ storage.RunStore = (*Store)(nil)

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

func fromMillis(value int64) time.Time {
	return time.UnixMilli(value).UTC()
}

// Open opens a SQLite archive and applies embedded migrations.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	dsn := filepath.Clean(path) + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := applyMigrations(sqlDB, migrations.FS); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{sqlDB: sqlDB}, nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// SaveRun inserts run, filling in a fresh ID and creation time when unset.
func (s *Store) SaveRun(ctx context.Context, run storage.Run) (storage.Run, error) {
	if err := ctx.Err(); err != nil {
		return storage.Run{}, err
	}
	if s == nil || s.sqlDB == nil {
		return storage.Run{}, fmt.Errorf("storage is not configured")
	}
	run.Kind = strings.TrimSpace(run.Kind)
	if run.Kind == "" {
		return storage.Run{}, fmt.Errorf("run kind is required")
	}
	if len(run.Document) == 0 {
		return storage.Run{}, fmt.Errorf("run document is required")
	}
	if strings.TrimSpace(run.ID) == "" {
		run.ID = uuid.NewString()
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now()
	}
	run.CreatedAt = fromMillis(toMillis(run.CreatedAt))

	_, err := s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO runs (id, kind, scenario, rounds, seed, created_at, document)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		run.ID,
		run.Kind,
		run.Scenario,
		run.Rounds,
		int64(run.Seed),
		toMillis(run.CreatedAt),
		string(run.Document),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return storage.Run{}, storage.ErrAlreadyExists
		}
		return storage.Run{}, fmt.Errorf("save run: %w", err)
	}
	return run, nil
}

// GetRun returns one run by ID.
func (s *Store) GetRun(ctx context.Context, id string) (storage.Run, error) {
	if err := ctx.Err(); err != nil {
		return storage.Run{}, err
	}
	if s == nil || s.sqlDB == nil {
		return storage.Run{}, fmt.Errorf("storage is not configured")
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return storage.Run{}, fmt.Errorf("run id is required")
	}

	row := s.sqlDB.QueryRowContext(
		ctx,
		`SELECT id, kind, scenario, rounds, seed, created_at, document
		   FROM runs
		  WHERE id = ?`,
		id,
	)
	run, err := scanRun(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return storage.Run{}, storage.ErrNotFound
		}
		return storage.Run{}, fmt.Errorf("get run: %w", err)
	}
	return run, nil
}

// ListRuns returns the most recent runs, newest first.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]storage.Run, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}
	if limit <= 0 {
		limit = DefaultListLimit
	}

	rows, err := s.sqlDB.QueryContext(
		ctx,
		`SELECT id, kind, scenario, rounds, seed, created_at, document
		   FROM runs
		  ORDER BY created_at DESC, id
		  LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var runs []storage.Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return runs, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(row scanner) (storage.Run, error) {
	var run storage.Run
	var seed int64
	var createdAt int64
	var document string
	if err := row.Scan(
		&run.ID,
		&run.Kind,
		&run.Scenario,
		&run.Rounds,
		&seed,
		&createdAt,
		&document,
	); err != nil {
		return storage.Run{}, err
	}
	run.Seed = uint64(seed)
	run.CreatedAt = fromMillis(createdAt)
	run.Document = []byte(document)
	return run, nil
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	var sqliteErr *msqlite.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.Code() {
		case sqlite3lib.SQLITE_CONSTRAINT_PRIMARYKEY, sqlite3lib.SQLITE_CONSTRAINT_UNIQUE:
			return true
		}
	}
	return strings.Contains(strings.ToLower(err.Error()), "unique constraint failed")
}
