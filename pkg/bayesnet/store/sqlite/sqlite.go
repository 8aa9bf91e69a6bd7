package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/cognicore/bayesnet/pkg/bayesnet/internalerr"
	"github.com/cognicore/bayesnet/pkg/bayesnet/store"
)

// sqliteStore implements the Store interface using SQLite
type sqliteStore struct {
	db *sql.DB
}

// OpenSQLite opens a SQLite database with WAL mode enabled
func OpenSQLite(ctx context.Context, path string) (store.Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	// Enable WAL mode for better concurrency
	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, err
	}

	// Enable foreign keys
	if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, err
	}

	// Initialize schema
	if err := initSchema(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	return &sqliteStore{db: db}, nil
}

// Close closes the database connection
func (s *sqliteStore) Close() error {
	return s.db.Close()
}

// initSchema creates tables if they don't exist
func initSchema(ctx context.Context, db *sql.DB) error {
	schema := `
CREATE TABLE IF NOT EXISTS runs (
	id TEXT PRIMARY KEY,
	network TEXT NOT NULL,
	source TEXT,
	queries INTEGER NOT NULL DEFAULT 0,
	answered INTEGER NOT NULL DEFAULT 0,
	failed INTEGER NOT NULL DEFAULT 0,
	started_at TEXT NOT NULL,
	finished_at TEXT
);

CREATE TABLE IF NOT EXISTS results (
	run_id TEXT NOT NULL,
	seq INTEGER NOT NULL,
	query TEXT NOT NULL,
	algorithm INTEGER NOT NULL,
	probability REAL,
	additions INTEGER,
	multiplications INTEGER,
	error TEXT,
	PRIMARY KEY(run_id, seq),
	FOREIGN KEY(run_id) REFERENCES runs(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_runs_started ON runs(started_at);
`
	_, err := db.ExecContext(ctx, schema)
	return err
}

func (s *sqliteStore) CreateRun(ctx context.Context, r store.Run) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO runs (id, network, source, queries, answered, failed, started_at, finished_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.Network, r.Source, r.Queries, r.Answered, r.Failed,
		formatTime(r.StartedAt), nullTime(r.FinishedAt),
	)
	if err != nil {
		return fmt.Errorf("create run %s: %w", r.ID, err)
	}
	return nil
}

func (s *sqliteStore) FinishRun(ctx context.Context, id string, finishedAt time.Time, answered, failed int) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE runs SET finished_at = ?, answered = ?, failed = ? WHERE id = ?`,
		formatTime(finishedAt), answered, failed, id,
	)
	if err != nil {
		return fmt.Errorf("finish run %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: run %s", internalerr.ErrNotFound, id)
	}
	return nil
}

func (s *sqliteStore) GetRun(ctx context.Context, id string) (store.Run, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, network, source, queries, answered, failed, started_at, finished_at
		FROM runs WHERE id = ?`, id)
	r, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return store.Run{}, fmt.Errorf("%w: run %s", internalerr.ErrNotFound, id)
	}
	return r, err
}

func (s *sqliteStore) ListRuns(ctx context.Context, limit int) ([]store.Run, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, network, source, queries, answered, failed, started_at, finished_at
		FROM runs ORDER BY started_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []store.Run
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *sqliteStore) AppendResults(ctx context.Context, runID string, results []store.Result) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var exists int
	if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM runs WHERE id = ?`, runID).Scan(&exists); err != nil {
		return err
	}
	if exists == 0 {
		return fmt.Errorf("%w: run %s", internalerr.ErrNotFound, runID)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO results (run_id, seq, query, algorithm, probability, additions, multiplications, error)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, r := range results {
		var errText any
		if r.Error != "" {
			errText = r.Error
		}
		if _, err := stmt.ExecContext(ctx, runID, r.Seq, r.Query, r.Algorithm,
			r.Probability, r.Additions, r.Multiplications, errText); err != nil {
			return fmt.Errorf("append result %d: %w", r.Seq, err)
		}
	}

	return tx.Commit()
}

func (s *sqliteStore) Results(ctx context.Context, runID string) ([]store.Result, error) {
	if _, err := s.GetRun(ctx, runID); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT seq, query, algorithm, probability, additions, multiplications, error
		FROM results WHERE run_id = ? ORDER BY seq`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []store.Result
	for rows.Next() {
		var r store.Result
		var errText sql.NullString
		if err := rows.Scan(&r.Seq, &r.Query, &r.Algorithm, &r.Probability,
			&r.Additions, &r.Multiplications, &errText); err != nil {
			return nil, err
		}
		r.Error = errText.String
		out = append(out, r)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(sc scanner) (store.Run, error) {
	var r store.Run
	var source, finished sql.NullString
	var started string
	if err := sc.Scan(&r.ID, &r.Network, &source, &r.Queries, &r.Answered, &r.Failed, &started, &finished); err != nil {
		return store.Run{}, err
	}
	r.Source = source.String

	var err error
	if r.StartedAt, err = time.Parse(timeLayout, started); err != nil {
		return store.Run{}, fmt.Errorf("run %s: started_at: %w", r.ID, err)
	}
	if finished.Valid {
		if r.FinishedAt, err = time.Parse(timeLayout, finished.String); err != nil {
			return store.Run{}, fmt.Errorf("run %s: finished_at: %w", r.ID, err)
		}
	}
	return r, nil
}

// timeLayout is fixed width so that text order matches time order
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func nullTime(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return formatTime(t)
}
