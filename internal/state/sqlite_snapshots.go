package state

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

const selectSnapshot = `SELECT id, template, vals, created_at FROM snapshots`

// Save stores values as a new snapshot of template.
func (s *SQLiteStore) Save(ctx context.Context, template string, values map[string]any) (*Snapshot, error) {
	if s.db == nil {
		return nil, fmt.Errorf("database not opened")
	}
	if values == nil {
		values = map[string]any{}
	}

	raw, err := json.Marshal(values)
	if err != nil {
		return nil, fmt.Errorf("encode values: %w", err)
	}

	snap := &Snapshot{
		ID:        generateID(),
		Template:  template,
		Values:    values,
		CreatedAt: s.now().UTC(),
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO snapshots (id, template, vals, created_at) VALUES (?, ?, ?, ?)`,
		snap.ID, snap.Template, string(raw), snap.CreatedAt.Format(timeLayout),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to save snapshot: %w", err)
	}

	s.logger.Debug("snapshot saved", "id", snap.ID, "template", template, "values", len(values))
	return snap, nil
}

// Get retrieves a snapshot by ID.
func (s *SQLiteStore) Get(ctx context.Context, id string) (*Snapshot, error) {
	if s.db == nil {
		return nil, fmt.Errorf("database not opened")
	}

	snap, err := scanSnapshot(s.db.QueryRowContext(ctx, selectSnapshot+` WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &NotFoundError{ID: id}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get snapshot: %w", err)
	}
	return snap, nil
}

// Latest returns the most recent snapshot of template.
func (s *SQLiteStore) Latest(ctx context.Context, template string) (*Snapshot, error) {
	if s.db == nil {
		return nil, fmt.Errorf("database not opened")
	}

	snap, err := scanSnapshot(s.db.QueryRowContext(ctx,
		selectSnapshot+` WHERE template = ? ORDER BY created_at DESC, rowid DESC LIMIT 1`, template))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &NotFoundError{Template: template}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get latest snapshot: %w", err)
	}
	return snap, nil
}

// List returns every snapshot of template, newest first. An empty template
// lists all snapshots.
func (s *SQLiteStore) List(ctx context.Context, template string) ([]*Snapshot, error) {
	if s.db == nil {
		return nil, fmt.Errorf("database not opened")
	}

	var (
		rows *sql.Rows
		err  error
	)
	if template == "" {
		rows, err = s.db.QueryContext(ctx, selectSnapshot+` ORDER BY created_at DESC, rowid DESC`)
	} else {
		rows, err = s.db.QueryContext(ctx,
			selectSnapshot+` WHERE template = ? ORDER BY created_at DESC, rowid DESC`, template)
	}
	if err != nil {
		return nil, fmt.Errorf("query snapshots: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var snaps []*Snapshot
	for rows.Next() {
		snap, err := scanSnapshot(rows)
		if err != nil {
			return nil, fmt.Errorf("scan snapshot: %w", err)
		}
		snaps = append(snaps, snap)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return snaps, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanSnapshot(row scanner) (*Snapshot, error) {
	var (
		snap      Snapshot
		raw       string
		createdAt string
	)
	if err := row.Scan(&snap.ID, &snap.Template, &raw, &createdAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(raw), &snap.Values); err != nil {
		return nil, fmt.Errorf("decode values of %s: %w", snap.ID, err)
	}
	t, err := time.Parse(timeLayout, createdAt)
	if err != nil {
		return nil, fmt.Errorf("decode created_at of %s: %w", snap.ID, err)
	}
	snap.CreatedAt = t
	return &snap, nil
}
