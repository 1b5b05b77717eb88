// Package storage defines persistence contracts for archived runs.
package storage

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrNotFound indicates a requested run is missing.
	ErrNotFound = errors.New("record not found")
	// ErrAlreadyExists indicates a run with the same ID was already stored.
	ErrAlreadyExists = errors.New("record already exists")
)

// Run is one archived game or tournament. Document holds the exported
// JSON exactly as written.
type Run struct {
	ID        string
	Kind      string
	Scenario  string
	Rounds    int
	Seed      uint64
	CreatedAt time.Time
	Document  []byte
}

// RunStore persists archived runs.
type RunStore interface {
	SaveRun(ctx context.Context, run Run) (Run, error)
	GetRun(ctx context.Context, id string) (Run, error)
	ListRuns(ctx context.Context, limit int) ([]Run, error)
}
