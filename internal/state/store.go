// Package state persists storable variable values per template in SQLite.
//
// Every save creates an immutable snapshot, so the history of values kept
// for a template can be listed and any earlier snapshot re-rendered.
package state

import (
	"context"
	"time"
)

// Snapshot is one saved set of storable values for a template.
type Snapshot struct {
	ID        string         `json:"id"`
	Template  string         `json:"template"`
	Values    map[string]any `json:"values"`
	CreatedAt time.Time      `json:"created_at"`
}

// Store persists snapshots.
type Store interface {
	Save(ctx context.Context, template string, values map[string]any) (*Snapshot, error)
	Get(ctx context.Context, id string) (*Snapshot, error)
	Latest(ctx context.Context, template string) (*Snapshot, error)
	List(ctx context.Context, template string) ([]*Snapshot, error)
	Close() error
}

// NotFoundError is returned when no snapshot matches.
type NotFoundError struct {
	ID       string
	Template string
}

func (e *NotFoundError) Error() string {
	if e.ID != "" {
		return "snapshot not found: " + e.ID
	}
	return "no snapshot for template: " + e.Template
}
