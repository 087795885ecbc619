// Package results persists finished runs and search trials to SQLite and
// renders run series as CSV tables and PNG charts.
package results

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
	_ "modernc.org/sqlite" // SQLite driver

	"wolfsheep/internal/sims/wolfsheep"
)

// ErrNotFound is returned when a run does not exist.
var ErrNotFound = errors.New("run not found")

// Store keeps runs and trials in a SQLite database.
type Store struct {
	db *sql.DB
}

// Run is a stored simulation run.
type Run struct {
	ID        uuid.UUID
	CreatedAt time.Time
	Config    wolfsheep.Config
	Samples   []wolfsheep.Sample
}

// Trial is a stored search trial.
type Trial struct {
	Study  string
	Number int
	Params map[string]string
	Score  float64
}

// Open opens or creates the database at path. ":memory:" gives a private
// in-memory store.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path+"?_pragma=foreign_keys(1)")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(1) // SQLite works best with single writer

	if err := InitSchema(context.Background(), db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveRun stores cfg and its samples under a fresh ID.
func (s *Store) SaveRun(ctx context.Context, cfg wolfsheep.Config, samples []wolfsheep.Sample) (uuid.UUID, error) {
	id := uuid.New()
	cfgYAML, err := yaml.Marshal(cfg)
	if err != nil {
		return uuid.Nil, fmt.Errorf("marshal config: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO runs (id, created_at, config, steps) VALUES (?, ?, ?, ?)`,
		id.String(), time.Now().UTC().Format(time.RFC3339Nano), string(cfgYAML), len(samples)); err != nil {
		return uuid.Nil, fmt.Errorf("failed to insert run: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO samples (run_id, step, sheep, wolves, grass) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to prepare sample insert: %w", err)
	}
	defer stmt.Close()
	for _, smp := range samples {
		if _, err := stmt.ExecContext(ctx, id.String(), smp.Step, smp.Sheep, smp.Wolves, smp.Grass); err != nil {
			return uuid.Nil, fmt.Errorf("failed to insert sample %d: %w", smp.Step, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return uuid.Nil, fmt.Errorf("failed to commit run: %w", err)
	}
	return id, nil
}

// LoadRun returns a stored run with its samples.
func (s *Store) LoadRun(ctx context.Context, id uuid.UUID) (Run, error) {
	var created, cfgYAML string
	err := s.db.QueryRowContext(ctx,
		`SELECT created_at, config FROM runs WHERE id = ?`, id.String()).Scan(&created, &cfgYAML)
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return Run{}, fmt.Errorf("failed to query run: %w", err)
	}

	run := Run{ID: id}
	if run.CreatedAt, err = time.Parse(time.RFC3339Nano, created); err != nil {
		return Run{}, fmt.Errorf("parse created_at: %w", err)
	}
	if err := yaml.Unmarshal([]byte(cfgYAML), &run.Config); err != nil {
		return Run{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if run.Samples, err = s.LoadSeries(ctx, id); err != nil {
		return Run{}, err
	}
	return run, nil
}

// LoadSeries returns the samples of a run in step order.
func (s *Store) LoadSeries(ctx context.Context, id uuid.UUID) ([]wolfsheep.Sample, error) {
	var exists int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM runs WHERE id = ?`, id.String()).Scan(&exists); err != nil {
		return nil, fmt.Errorf("failed to query run: %w", err)
	}
	if exists == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT step, sheep, wolves, grass FROM samples WHERE run_id = ? ORDER BY step`, id.String())
	if err != nil {
		return nil, fmt.Errorf("failed to query samples: %w", err)
	}
	defer rows.Close()

	var out []wolfsheep.Sample
	for rows.Next() {
		var smp wolfsheep.Sample
		if err := rows.Scan(&smp.Step, &smp.Sheep, &smp.Wolves, &smp.Grass); err != nil {
			return nil, fmt.Errorf("failed to scan sample: %w", err)
		}
		out = append(out, smp)
	}
	return out, rows.Err()
}

// SaveTrial records one search trial. Saving the same study and number twice
// replaces the earlier row.
func (s *Store) SaveTrial(ctx context.Context, t Trial) error {
	params, err := json.Marshal(t.Params)
	if err != nil {
		return fmt.Errorf("marshal params: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO trials (study, number, params, score, created_at) VALUES (?, ?, ?, ?, ?)`,
		t.Study, t.Number, string(params), t.Score, time.Now().UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("failed to insert trial: %w", err)
	}
	return nil
}

// BestTrials returns up to n trials of study, highest score first.
func (s *Store) BestTrials(ctx context.Context, study string, n int) ([]Trial, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT number, params, score FROM trials WHERE study = ? ORDER BY score DESC, number ASC LIMIT ?`,
		study, n)
	if err != nil {
		return nil, fmt.Errorf("failed to query trials: %w", err)
	}
	defer rows.Close()

	var out []Trial
	for rows.Next() {
		t := Trial{Study: study}
		var params string
		if err := rows.Scan(&t.Number, &params, &t.Score); err != nil {
			return nil, fmt.Errorf("failed to scan trial: %w", err)
		}
		if err := json.Unmarshal([]byte(params), &t.Params); err != nil {
			return nil, fmt.Errorf("unmarshal params: %w", err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}
