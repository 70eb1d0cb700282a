// Package decisionlog persists every DecisionRecord ORACLE's strategy
// pipeline emits, in an append-only SQLite ledger, adapted from the
// teacher's database package (profile-driven PRAGMAs, WAL mode, pooled
// connections).
package decisionlog

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

// Profile selects the PRAGMA set a database opens with. The decision log
// is always opened with ProfileLedger: it is an audit trail of real-money
// decisions and must never silently lose a write.
type Profile string

const (
	ProfileLedger   Profile = "ledger"
	ProfileStandard Profile = "standard"
)

// Config configures the underlying SQLite file.
type Config struct {
	Path    string
	Profile Profile
}

// DB wraps a single SQLite connection pool with the decision log's
// production PRAGMAs.
type DB struct {
	conn    *sql.DB
	path    string
	profile Profile
}

// Open creates (or reopens) the decision log database at cfg.Path and
// applies its schema.
func Open(cfg Config) (*DB, error) {
	if !strings.HasPrefix(cfg.Path, "file:") {
		absPath, err := filepath.Abs(cfg.Path)
		if err != nil {
			return nil, fmt.Errorf("decisionlog: resolve path: %w", err)
		}
		if err := os.MkdirAll(filepath.Dir(absPath), 0o755); err != nil {
			return nil, fmt.Errorf("decisionlog: create directory: %w", err)
		}
		cfg.Path = absPath
	}

	if cfg.Profile == "" {
		cfg.Profile = ProfileLedger
	}

	conn, err := sql.Open("sqlite", connectionString(cfg.Path, cfg.Profile))
	if err != nil {
		return nil, fmt.Errorf("decisionlog: open: %w", err)
	}

	conn.SetMaxOpenConns(1) // sqlite-over-WAL: single writer is simplest and safest
	conn.SetMaxIdleConns(1)
	conn.SetConnMaxLifetime(24 * time.Hour)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := conn.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("decisionlog: ping: %w", err)
	}

	db := &DB{conn: conn, path: cfg.Path, profile: cfg.Profile}
	if err := db.migrate(); err != nil {
		return nil, fmt.Errorf("decisionlog: migrate: %w", err)
	}
	return db, nil
}

func connectionString(path string, profile Profile) string {
	connStr := path + "?_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)&_pragma=cache_size(-32000)"
	switch profile {
	case ProfileLedger:
		connStr += "&_pragma=synchronous(FULL)&_pragma=auto_vacuum(NONE)"
	default:
		connStr += "&_pragma=synchronous(NORMAL)&_pragma=auto_vacuum(INCREMENTAL)"
	}
	return connStr
}

const schema = `
CREATE TABLE IF NOT EXISTS decisions (
	id               INTEGER PRIMARY KEY AUTOINCREMENT,
	cycle_id         TEXT NOT NULL,
	recorded_at      TEXT NOT NULL,
	kind             TEXT NOT NULL,
	market_id        TEXT NOT NULL,
	category         TEXT NOT NULL,
	side             TEXT NOT NULL,
	abs_edge         TEXT NOT NULL,
	bet_amount       TEXT NOT NULL,
	adjusted_amount  TEXT NOT NULL,
	expected_value   TEXT NOT NULL,
	rejection_kind   TEXT NOT NULL DEFAULT '',
	rejection_detail TEXT NOT NULL DEFAULT ''
);
CREATE INDEX IF NOT EXISTS idx_decisions_cycle ON decisions(cycle_id);
CREATE INDEX IF NOT EXISTS idx_decisions_market ON decisions(market_id);

CREATE TABLE IF NOT EXISTS cycle_reports (
	cycle_id        TEXT PRIMARY KEY,
	recorded_at     TEXT NOT NULL,
	bankroll        TEXT NOT NULL,
	peak_bankroll   TEXT NOT NULL,
	trades_executed INTEGER NOT NULL,
	total_costs     TEXT NOT NULL
);
`

func (db *DB) migrate() error {
	_, err := db.conn.Exec(schema)
	return err
}

// Close releases the underlying connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

// HealthCheck verifies the connection and runs a SQLite integrity check.
func (db *DB) HealthCheck(ctx context.Context) error {
	if err := db.conn.PingContext(ctx); err != nil {
		return fmt.Errorf("decisionlog: ping failed: %w", err)
	}
	var result string
	if err := db.conn.QueryRowContext(ctx, "PRAGMA integrity_check").Scan(&result); err != nil {
		return fmt.Errorf("decisionlog: integrity check query failed: %w", err)
	}
	if result != "ok" {
		return fmt.Errorf("decisionlog: integrity check failed: %s", result)
	}
	return nil
}

// Path returns the database file path.
func (db *DB) Path() string {
	return db.path
}
