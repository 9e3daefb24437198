// Package store keeps sweep results in SQLite.
package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"window-frost/internal/sweep"
)

// Store wraps a SQLite connection holding sweep runs.
type Store struct {
	conn *sqlx.DB
}

// Open opens or creates a SQLite database at the given path.
func Open(path string) (*Store, error) {
	conn, err := sqlx.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	s := &Store{conn: conn}
	if err := s.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.conn.Close()
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS sweeps (
		id TEXT PRIMARY KEY,
		started_at INTEGER NOT NULL,
		steps INTEGER NOT NULL,
		dt REAL NOT NULL,
		workers INTEGER NOT NULL,
		width INTEGER NOT NULL,
		height INTEGER NOT NULL,
		seed INTEGER NOT NULL,
		elapsed_ms INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS scenarios (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		sweep_id TEXT NOT NULL REFERENCES sweeps(id),
		rank INTEGER NOT NULL,
		grow_speed REAL NOT NULL,
		frost_increase_speed REAL NOT NULL,
		frost_count INTEGER NOT NULL,
		final_coverage REAL NOT NULL,
		frozen_step INTEGER NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_scenarios_sweep ON scenarios(sweep_id);
	`
	_, err := s.conn.Exec(schema)
	return err
}

// Sweep is one recorded sweep run.
type Sweep struct {
	ID        string        `db:"id"`
	StartedAt time.Time     `db:"-"`
	Steps     int           `db:"steps"`
	DT        float64       `db:"dt"`
	Workers   int           `db:"workers"`
	Width     int           `db:"width"`
	Height    int           `db:"height"`
	Seed      int64         `db:"seed"`
	Elapsed   time.Duration `db:"-"`
}

type sweepRow struct {
	Sweep
	StartedAtUnix int64 `db:"started_at"`
	ElapsedMS     int64 `db:"elapsed_ms"`
}

func (r sweepRow) sweep() Sweep {
	sw := r.Sweep
	sw.StartedAt = time.UnixMilli(r.StartedAtUnix).UTC()
	sw.Elapsed = time.Duration(r.ElapsedMS) * time.Millisecond
	return sw
}

// Scenario is one stored scenario result.
type Scenario struct {
	SweepID            string  `db:"sweep_id"`
	Rank               int     `db:"rank"`
	GrowSpeed          float64 `db:"grow_speed"`
	FrostIncreaseSpeed float64 `db:"frost_increase_speed"`
	FrostCount         int     `db:"frost_count"`
	FinalCoverage      float64 `db:"final_coverage"`
	FrozenStep         int     `db:"frozen_step"`
}

// Params returns the parameter set the scenario ran with.
func (s Scenario) Params() sweep.ParamSet {
	return sweep.ParamSet{GrowSpeed: s.GrowSpeed, FrostIncreaseSpeed: s.FrostIncreaseSpeed, FrostCount: s.FrostCount}
}

// SaveSweep records a sweep and its ranked results in one transaction. An
// empty ID is replaced with a fresh UUID; the ID used is returned.
func (s *Store) SaveSweep(ctx context.Context, sw Sweep, results []sweep.Result) (string, error) {
	if sw.ID == "" {
		sw.ID = uuid.NewString()
	}
	tx, err := s.conn.BeginTxx(ctx, nil)
	if err != nil {
		return "", err
	}
	defer tx.Rollback()

	row := sweepRow{Sweep: sw, StartedAtUnix: sw.StartedAt.UnixMilli(), ElapsedMS: sw.Elapsed.Milliseconds()}
	if _, err := tx.NamedExecContext(ctx, `INSERT INTO sweeps
		(id, started_at, steps, dt, workers, width, height, seed, elapsed_ms)
		VALUES (:id, :started_at, :steps, :dt, :workers, :width, :height, :seed, :elapsed_ms)`, row); err != nil {
		return "", fmt.Errorf("insert sweep: %w", err)
	}

	stmt, err := tx.PreparexContext(ctx, `INSERT INTO scenarios
		(sweep_id, rank, grow_speed, frost_increase_speed, frost_count, final_coverage, frozen_step)
		VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return "", err
	}
	defer stmt.Close()

	for i, r := range results {
		if _, err := stmt.ExecContext(ctx, sw.ID, i+1, r.Params.GrowSpeed, r.Params.FrostIncreaseSpeed,
			r.Params.FrostCount, r.FinalCoverage, r.FrozenStep); err != nil {
			return "", fmt.Errorf("insert scenario %d: %w", i+1, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return "", err
	}
	return sw.ID, nil
}

// Sweeps lists recorded sweeps, newest first.
func (s *Store) Sweeps(ctx context.Context) ([]Sweep, error) {
	var rows []sweepRow
	if err := s.conn.SelectContext(ctx, &rows, `SELECT id, started_at, steps, dt, workers, width, height, seed, elapsed_ms
		FROM sweeps ORDER BY started_at DESC, id`); err != nil {
		return nil, fmt.Errorf("load sweeps: %w", err)
	}
	out := make([]Sweep, len(rows))
	for i, r := range rows {
		out[i] = r.sweep()
	}
	return out, nil
}

// Scenarios returns the ranked results of one sweep.
func (s *Store) Scenarios(ctx context.Context, sweepID string) ([]Scenario, error) {
	var out []Scenario
	if err := s.conn.SelectContext(ctx, &out, `SELECT sweep_id, rank, grow_speed, frost_increase_speed, frost_count, final_coverage, frozen_step
		FROM scenarios WHERE sweep_id = ? ORDER BY rank`, sweepID); err != nil {
		return nil, fmt.Errorf("load scenarios: %w", err)
	}
	return out, nil
}

// Best returns the fastest-freezing scenario recorded across all sweeps.
func (s *Store) Best(ctx context.Context) (Scenario, bool, error) {
	var out []Scenario
	if err := s.conn.SelectContext(ctx, &out, `SELECT sweep_id, rank, grow_speed, frost_increase_speed, frost_count, final_coverage, frozen_step
		FROM scenarios WHERE frozen_step > 0 ORDER BY frozen_step, final_coverage DESC LIMIT 1`); err != nil {
		return Scenario{}, false, fmt.Errorf("load best scenario: %w", err)
	}
	if len(out) == 0 {
		return Scenario{}, false, nil
	}
	return out[0], true, nil
}
