package sqlite

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/banshee-data/shmoo.report/internal/shmoo"
)

// Store manages persistence for sweep runs and samples.
type Store struct {
	db *sql.DB
}

// Run describes one stored parameter sweep.
type Run struct {
	RunID     string    `json:"run_id"`
	Name      string    `json:"name"`
	XName     string    `json:"x_name"`
	YName     string    `json:"y_name"`
	ZName     string    `json:"z_name"`
	CreatedAt time.Time `json:"created_at"`
	Samples   int       `json:"samples"`
}

// Open opens (creating if needed) the sweep database at path and applies
// the connection pragmas. Use ":memory:" for an ephemeral database in
// tests. Schema setup is a separate step; see MigrateUp.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sweep db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA foreign_keys=ON",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("apply %q: %w", pragma, err)
		}
	}

	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error { return s.db.Close() }

// CreateRun inserts a new sweep run and returns its generated ID. The
// column names record the parameter naming of the originating sweep so a
// stored run renders with meaningful axis labels.
func (s *Store) CreateRun(name, xName, yName, zName string) (string, error) {
	runID := uuid.NewString()
	_, err := s.db.Exec(
		`INSERT INTO sweep_runs (run_id, name, x_name, y_name, z_name) VALUES (?, ?, ?, ?, ?)`,
		runID, name, xName, yName, zName,
	)
	if err != nil {
		return "", fmt.Errorf("insert sweep run: %w", err)
	}
	return runID, nil
}

// AddSamples appends raw samples to a run in one transaction.
func (s *Store) AddSamples(runID string, samples []shmoo.Sample) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`INSERT INTO sweep_samples (run_id, x, y, z) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare: %w", err)
	}
	defer stmt.Close()

	for _, smp := range samples {
		if _, err := stmt.Exec(runID, smp.X, smp.Y, smp.Z); err != nil {
			return fmt.Errorf("insert sample: %w", err)
		}
	}
	return tx.Commit()
}

// Runs lists stored runs, newest first, with their sample counts.
func (s *Store) Runs() ([]Run, error) {
	rows, err := s.db.Query(`
		SELECT r.run_id, r.name, r.x_name, r.y_name, r.z_name, r.created_at,
		       COUNT(sm.sample_id)
		FROM sweep_runs r
		LEFT JOIN sweep_samples sm ON sm.run_id = r.run_id
		GROUP BY r.run_id
		ORDER BY r.created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		if err := rows.Scan(&r.RunID, &r.Name, &r.XName, &r.YName, &r.ZName, &r.CreatedAt, &r.Samples); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// Run fetches a single run by ID. Returns sql.ErrNoRows when absent.
func (s *Store) Run(runID string) (*Run, error) {
	var r Run
	err := s.db.QueryRow(`
		SELECT r.run_id, r.name, r.x_name, r.y_name, r.z_name, r.created_at,
		       COUNT(sm.sample_id)
		FROM sweep_runs r
		LEFT JOIN sweep_samples sm ON sm.run_id = r.run_id
		WHERE r.run_id = ?
		GROUP BY r.run_id`, runID).
		Scan(&r.RunID, &r.Name, &r.XName, &r.YName, &r.ZName, &r.CreatedAt, &r.Samples)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// Samples returns the raw samples of a run in insertion order. Order
// matters: both the grid's last-write-wins and the annotator's
// first-occurrence-wins duplicate policies depend on it.
func (s *Store) Samples(runID string) ([]shmoo.Sample, error) {
	rows, err := s.db.Query(
		`SELECT x, y, z FROM sweep_samples WHERE run_id = ? ORDER BY sample_id`, runID)
	if err != nil {
		return nil, fmt.Errorf("query samples: %w", err)
	}
	defer rows.Close()

	var samples []shmoo.Sample
	for rows.Next() {
		var smp shmoo.Sample
		if err := rows.Scan(&smp.X, &smp.Y, &smp.Z); err != nil {
			return nil, fmt.Errorf("scan sample: %w", err)
		}
		samples = append(samples, smp)
	}
	return samples, rows.Err()
}

// DataSource loads a run as an in-memory tabular snapshot implementing
// shmoo.DataSource, with the run's recorded column names.
func (s *Store) DataSource(runID string) (shmoo.DataSource, error) {
	run, err := s.Run(runID)
	if err != nil {
		return nil, fmt.Errorf("load run %s: %w", runID, err)
	}
	samples, err := s.Samples(runID)
	if err != nil {
		return nil, err
	}

	xs := make([]float64, len(samples))
	ys := make([]float64, len(samples))
	zs := make([]float64, len(samples))
	for i, smp := range samples {
		xs[i], ys[i], zs[i] = smp.X, smp.Y, smp.Z
	}
	return shmoo.NewMemorySource(
		[]string{run.XName, run.YName, run.ZName},
		map[string][]float64{run.XName: xs, run.YName: ys, run.ZName: zs},
	), nil
}
