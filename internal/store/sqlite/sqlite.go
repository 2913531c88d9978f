// Package sqlite persists the seen-alert set in a local SQLite database.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"github.com/dlawton/chimeclock/internal/weather"
)

const schema = `
CREATE TABLE IF NOT EXISTS seen_alerts (
	id           TEXT NOT NULL,
	status       TEXT NOT NULL,
	severity     TEXT NOT NULL,
	message_type TEXT NOT NULL,
	onset        TEXT NOT NULL,
	expires      TEXT NOT NULL,
	event        TEXT NOT NULL,
	headline     TEXT NOT NULL
);
`

var _ weather.AlertStore = (*Store)(nil)

// Store keeps the set in a single table that is rewritten whole on Save.
// SQLite allows one writer; a single connection plus a write mutex keeps
// transactions from interleaving.
type Store struct {
	db      *sql.DB
	writeMu sync.Mutex
}

func Open(path string) (*Store, error) {
	dsn := path + "?_journal=WAL&_busy_timeout=5000"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping %s: %w", path, err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("schema: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) Load(ctx context.Context) ([]weather.Alert, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, status, severity, message_type, onset, expires, event, headline
		FROM seen_alerts`)
	if err != nil {
		return nil, fmt.Errorf("select seen_alerts: %w", err)
	}
	defer rows.Close()

	var alerts []weather.Alert
	for rows.Next() {
		var a weather.Alert
		var onset, expires string
		if err := rows.Scan(&a.ID, &a.Status, &a.Severity, &a.MessageType,
			&onset, &expires, &a.Event, &a.Headline); err != nil {
			return nil, fmt.Errorf("scan seen_alerts: %w", err)
		}
		if a.Onset, err = time.Parse(time.RFC3339, onset); err != nil {
			return nil, fmt.Errorf("parse onset %q: %w", onset, err)
		}
		if a.Expires, err = time.Parse(time.RFC3339, expires); err != nil {
			return nil, fmt.Errorf("parse expires %q: %w", expires, err)
		}
		alerts = append(alerts, a)
	}
	return alerts, rows.Err()
}

func (s *Store) Save(ctx context.Context, alerts []weather.Alert) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM seen_alerts`); err != nil {
		return fmt.Errorf("clear seen_alerts: %w", err)
	}
	for _, a := range alerts {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO seen_alerts (id, status, severity, message_type, onset, expires, event, headline)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			a.ID, a.Status, a.Severity, a.MessageType,
			a.Onset.Format(time.RFC3339), a.Expires.Format(time.RFC3339),
			a.Event, a.Headline)
		if err != nil {
			return fmt.Errorf("insert %s: %w", a.ID, err)
		}
	}
	return tx.Commit()
}
