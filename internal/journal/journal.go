// Package journal persists the change records emitted by poll cycles so
// cycle history survives restarts and can be inspected after the fact.
package journal

import (
	"context"
	"time"

	"git.home.luguber.info/inful/pollwatch/internal/watcher"
)

// Record is one persisted change, annotated with the cycle that produced it.
type Record struct {
	ID        int64
	CycleID   string
	Type      watcher.ChangeType
	Directory string
	File      string
	Timestamp time.Time
}

// Store defines the interface for persisting and retrieving change records.
type Store interface {
	// AppendCycle persists every change of one completed cycle.
	AppendCycle(ctx context.Context, cycleID string, at time.Time, changes watcher.ChangeList) error

	// GetByCycleID retrieves all records for a specific cycle.
	GetByCycleID(ctx context.Context, cycleID string) ([]Record, error)

	// GetRange retrieves records within a time range.
	GetRange(ctx context.Context, start, end time.Time) ([]Record, error)

	// Close closes the store and releases resources.
	Close() error
}
