package alarms

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteStore keeps alarms in a local sqlite database. The demo app
// uses it in place of the platform's alarms service.
type SQLiteStore struct {
	db *sql.DB
}

func OpenSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	s := &SQLiteStore{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *SQLiteStore) migrate() error {
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS alarms (
		id TEXT PRIMARY KEY,
		site_id TEXT NOT NULL,
		device_id TEXT NOT NULL DEFAULT '',
		severity TEXT NOT NULL,
		message TEXT NOT NULL DEFAULT '',
		resolved INTEGER NOT NULL DEFAULT 0,
		raised_at INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_alarms_site_raised ON alarms(site_id, raised_at DESC);`)
	if err != nil {
		return fmt.Errorf("migrate alarms: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Close() error { return s.db.Close() }

func (s *SQLiteStore) Add(ctx context.Context, a Alarm) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO alarms (id, site_id, device_id, severity, message, resolved, raised_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		a.ID, a.SiteID, a.DeviceID, string(a.Severity), a.Message, boolToInt(a.Resolved), a.RaisedAt.UnixMilli())
	if err != nil {
		return fmt.Errorf("insert alarm: %w", err)
	}
	return nil
}

// Resolve marks an alarm resolved.
func (s *SQLiteStore) Resolve(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, `UPDATE alarms SET resolved = 1 WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("resolve alarm: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Query(ctx context.Context, f Filter) ([]Alarm, error) {
	var (
		where []string
		args  []any
	)
	if f.SiteID != "" {
		where = append(where, "site_id = ?")
		args = append(args, f.SiteID)
	}
	if !f.ShowResolved {
		where = append(where, "resolved = 0")
	}
	if len(f.Severities) > 0 {
		ph := make([]string, len(f.Severities))
		for i, sev := range f.Severities {
			ph[i] = "?"
			args = append(args, string(sev))
		}
		where = append(where, "severity IN ("+strings.Join(ph, ",")+")")
	}
	query := "SELECT id, site_id, device_id, severity, message, resolved, raised_at FROM alarms"
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY raised_at DESC"
	if f.MaxItems > 0 {
		query += fmt.Sprintf(" LIMIT %d", f.MaxItems)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query alarms: %w", err)
	}
	defer rows.Close()

	var out []Alarm
	for rows.Next() {
		var (
			a        Alarm
			sev      string
			resolved int
			raisedAt int64
		)
		if err := rows.Scan(&a.ID, &a.SiteID, &a.DeviceID, &sev, &a.Message, &resolved, &raisedAt); err != nil {
			return nil, fmt.Errorf("scan alarm: %w", err)
		}
		a.Severity = Severity(sev)
		a.Resolved = resolved != 0
		a.RaisedAt = time.UnixMilli(raisedAt)
		out = append(out, a)
	}
	return out, rows.Err()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
