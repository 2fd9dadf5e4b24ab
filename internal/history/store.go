// Package history records stream events to a local SQLite file for later
// inspection. Recording is opt-in from the CLI; the stream client itself
// keeps no state on disk.
package history

import (
	"context"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/PavanAnganna90/OpsSight-DevOpsVisibilityPlatform-sub003/internal/models"
	"github.com/PavanAnganna90/OpsSight-DevOpsVisibilityPlatform-sub003/migrations"
)

// Store persists stream events in SQLite.
type Store struct {
	db *sqlx.DB
}

// record is the row shape of event_history.
type record struct {
	ID         string    `db:"id"`
	Type       string    `db:"type"`
	Action     string    `db:"action"`
	Timestamp  time.Time `db:"timestamp"`
	ClusterID  string    `db:"cluster_id"`
	Severity   string    `db:"severity"`
	Payload    string    `db:"payload"`
	RecordedAt time.Time `db:"recorded_at"`
}

// Open creates or opens the store at path (":memory:" for tests), applies
// the embedded schema, and enables WAL so a concurrent reader does not
// block the recorder.
func Open(path string) (*Store, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
			return nil, fmt.Errorf("history: create dir: %w", err)
		}
	}
	db, err := sqlx.Connect("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("history: open %s: %w", path, err)
	}
	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("history: enable WAL: %w", err)
	}
	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) migrate() error {
	names, err := fs.Glob(migrations.FS, "*.sql")
	if err != nil {
		return fmt.Errorf("history: list migrations: %w", err)
	}
	sort.Strings(names)
	for _, name := range names {
		sqlBytes, err := migrations.FS.ReadFile(name)
		if err != nil {
			return fmt.Errorf("history: read migration %s: %w", name, err)
		}
		if _, err := s.db.Exec(string(sqlBytes)); err != nil {
			return fmt.Errorf("history: apply migration %s: %w", name, err)
		}
	}
	return nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Record inserts one event. The typed payload is stored JSON-encoded.
func (s *Store) Record(ctx context.Context, ev *models.StreamEvent) error {
	var payload []byte
	if ev.Payload != nil {
		var err error
		payload, err = json.Marshal(ev.Payload)
		if err != nil {
			return fmt.Errorf("history: encode payload: %w", err)
		}
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO event_history (id, type, action, timestamp, cluster_id, severity, payload)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, ev.ID, string(ev.Type), string(ev.Action), ev.Timestamp.UTC(), ev.ClusterID, string(ev.Severity), string(payload))
	if err != nil {
		return fmt.Errorf("history: insert event %s: %w", ev.ID, err)
	}
	return nil
}

// ListFilter narrows List. Zero values mean no constraint.
type ListFilter struct {
	Type      models.EventType
	ClusterID string
	Since     time.Time
	Limit     int
}

// Entry is one recorded event as returned by List. Payload is the raw JSON
// body; the caller decodes it if needed.
type Entry struct {
	ID         string
	Type       models.EventType
	Action     models.EventAction
	Timestamp  time.Time
	ClusterID  string
	Severity   models.Severity
	Payload    json.RawMessage
	RecordedAt time.Time
}

// List returns recorded events newest-first.
func (s *Store) List(ctx context.Context, f ListFilter) ([]Entry, error) {
	query := `SELECT id, type, action, timestamp, cluster_id, severity, payload, recorded_at
		FROM event_history WHERE 1=1`
	var args []any
	if f.Type != "" {
		query += " AND type = ?"
		args = append(args, string(f.Type))
	}
	if f.ClusterID != "" {
		query += " AND cluster_id = ?"
		args = append(args, f.ClusterID)
	}
	if !f.Since.IsZero() {
		query += " AND timestamp >= ?"
		args = append(args, f.Since.UTC())
	}
	query += " ORDER BY timestamp DESC"
	if f.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, f.Limit)
	}

	var rows []record
	if err := s.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("history: list events: %w", err)
	}
	out := make([]Entry, 0, len(rows))
	for _, r := range rows {
		e := Entry{
			ID:         r.ID,
			Type:       models.EventType(r.Type),
			Action:     models.EventAction(r.Action),
			Timestamp:  r.Timestamp,
			ClusterID:  r.ClusterID,
			Severity:   models.Severity(r.Severity),
			RecordedAt: r.RecordedAt,
		}
		if r.Payload != "" {
			e.Payload = json.RawMessage(r.Payload)
		}
		out = append(out, e)
	}
	return out, nil
}

// Count returns the number of recorded events.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.GetContext(ctx, &n, "SELECT COUNT(*) FROM event_history"); err != nil {
		return 0, fmt.Errorf("history: count events: %w", err)
	}
	return n, nil
}

// Prune deletes events with a timestamp before cutoff and returns how many
// rows were removed.
func (s *Store) Prune(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx, "DELETE FROM event_history WHERE timestamp < ?", cutoff.UTC())
	if err != nil {
		return 0, fmt.Errorf("history: prune: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("history: prune rows affected: %w", err)
	}
	return n, nil
}
