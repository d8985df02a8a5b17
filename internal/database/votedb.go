package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	// Pure Go SQLite driver, registered as "sqlite".
	_ "modernc.org/sqlite"

	"github.com/mmotop-tools/mmotopvote/internal/model"
)

// DBFileName is the history database file name inside the data directory.
const DBFileName = "history.db"

// ErrDatabaseNotFound is returned when opening without create and the
// database file does not exist.
var ErrDatabaseNotFound = errors.New("history database not found")

// Options configures how the database is opened.
type Options struct {
	// CreateIfNotExists creates the data directory and database file when
	// they do not exist. The vote command sets this; the history command
	// does not, so reading history never creates an empty database.
	CreateIfNotExists bool

	// EnableWAL enables write-ahead logging.
	EnableWAL bool
}

// VoteDB stores voting run records.
type VoteDB struct {
	db   *sql.DB
	path string
}

// Open opens the history database under dataDir.
func Open(dataDir string, opts Options) (*VoteDB, error) {
	dbPath := filepath.Join(dataDir, DBFileName)

	if _, err := os.Stat(dbPath); err != nil {
		if !opts.CreateIfNotExists {
			return nil, fmt.Errorf("%w: %s", ErrDatabaseNotFound, dbPath)
		}
		if err := os.MkdirAll(dataDir, 0750); err != nil {
			return nil, fmt.Errorf("create data directory: %w", err)
		}
	}

	dsn := dbPath + "?mode=rw"
	if opts.CreateIfNotExists {
		dsn = dbPath + "?mode=rwc"
	}
	if opts.EnableWAL {
		dsn += "&_pragma=journal_mode(WAL)"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open history database: %w", err)
	}
	// The driver serializes writes itself, but a single connection avoids
	// SQLITE_BUSY on concurrent statements.
	db.SetMaxOpenConns(1)

	v := &VoteDB{db: db, path: dbPath}
	if opts.CreateIfNotExists {
		if err := v.createSchema(); err != nil {
			_ = db.Close()
			return nil, err
		}
	}
	return v, nil
}

// Path returns the database file path.
func (v *VoteDB) Path() string {
	return v.path
}

// Close closes the database.
func (v *VoteDB) Close() error {
	return v.db.Close()
}

// createSchema creates the runs table if it does not exist.
func (v *VoteDB) createSchema() error {
	const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id            TEXT PRIMARY KEY,
	started_at    TEXT NOT NULL,
	finished_at   TEXT NOT NULL,
	outcome       TEXT NOT NULL,
	vote_url      TEXT NOT NULL,
	server_rate   TEXT NOT NULL,
	account_name  TEXT NOT NULL DEFAULT '',
	countdown     TEXT NOT NULL DEFAULT '',
	error_message TEXT NOT NULL DEFAULT ''
);
CREATE INDEX IF NOT EXISTS idx_runs_started_at ON runs(started_at);
`
	if _, err := v.db.Exec(schema); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

// SaveRun inserts a run record.
func (v *VoteDB) SaveRun(ctx context.Context, rec *model.RunRecord) error {
	const query = `
INSERT INTO runs (id, started_at, finished_at, outcome, vote_url, server_rate, account_name, countdown, error_message)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
`
	_, err := v.db.ExecContext(ctx, query,
		rec.ID,
		rec.StartedAt.UTC().Format(time.RFC3339),
		rec.FinishedAt.UTC().Format(time.RFC3339),
		rec.Outcome.String(),
		rec.VoteURL,
		rec.ServerRate,
		rec.AccountName,
		rec.Countdown,
		rec.ErrorMessage,
	)
	if err != nil {
		return fmt.Errorf("save run %s: %w", rec.ID, err)
	}
	return nil
}

// ListRuns returns run records newest first. A limit of 0 or less returns
// all records.
func (v *VoteDB) ListRuns(ctx context.Context, limit int) ([]model.RunRecord, error) {
	query := `
SELECT id, started_at, finished_at, outcome, vote_url, server_rate, account_name, countdown, error_message
FROM runs
ORDER BY started_at DESC
`
	args := []any{}
	if limit > 0 {
		query += "LIMIT ?"
		args = append(args, limit)
	}

	rows, err := v.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var records []model.RunRecord
	for rows.Next() {
		var rec model.RunRecord
		var started, finished, outcome string
		if err := rows.Scan(
			&rec.ID, &started, &finished, &outcome,
			&rec.VoteURL, &rec.ServerRate, &rec.AccountName,
			&rec.Countdown, &rec.ErrorMessage,
		); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		rec.StartedAt, err = time.Parse(time.RFC3339, started)
		if err != nil {
			return nil, fmt.Errorf("parse started_at for run %s: %w", rec.ID, err)
		}
		rec.FinishedAt, err = time.Parse(time.RFC3339, finished)
		if err != nil {
			return nil, fmt.Errorf("parse finished_at for run %s: %w", rec.ID, err)
		}
		rec.Outcome = model.ParseOutcome(outcome)
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	return records, nil
}
