package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/maelh/robogrid/core/model"
)

// SQLiteStore persists runs to a SQLite database.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens or creates the database at path and ensures schema.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	schema := `CREATE TABLE IF NOT EXISTS runs (
        run_id TEXT PRIMARY KEY,
        scenario TEXT,
        created_at INTEGER,
        summary TEXT
    );
    CREATE TABLE IF NOT EXISTS timeseries (
        run_id TEXT,
        strategy TEXT,
        step INTEGER,
        record TEXT,
        PRIMARY KEY (run_id, strategy, step)
    );`
	if _, err := db.Exec(schema); err != nil {
		if cerr := db.Close(); cerr != nil {
			return nil, fmt.Errorf("close db: %v (schema err: %w)", cerr, err)
		}
		return nil, err
	}
	return &SQLiteStore{db: db}, nil
}

// SaveRun writes the summary row and both strategies' time series.
func (s *SQLiteStore) SaveRun(ctx context.Context, run SavedRun) error {
	sum, err := json.Marshal(NewSummary(run))
	if err != nil {
		return err
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT OR REPLACE INTO runs (run_id, scenario, created_at, summary) VALUES (?, ?, ?, ?)`,
		run.ID, run.Result.Scenario.Name, run.CreatedAt.Unix(), string(sum)); err != nil {
		_ = tx.Rollback()
		return err
	}
	for _, sr := range []model.StrategyResult{run.Result.Baseline, run.Result.EnergyAware} {
		for i, rec := range sr.Records {
			b, err := json.Marshal(rec)
			if err != nil {
				_ = tx.Rollback()
				return err
			}
			if _, err := tx.ExecContext(ctx,
				`INSERT OR REPLACE INTO timeseries (run_id, strategy, step, record) VALUES (?, ?, ?, ?)`,
				run.ID, sr.Strategy, i, string(b)); err != nil {
				_ = tx.Rollback()
				return err
			}
		}
	}
	return tx.Commit()
}

// LoadSummary returns the persisted summary for a run ID.
func (s *SQLiteStore) LoadSummary(ctx context.Context, runID string) (Summary, error) {
	var raw string
	err := s.db.QueryRowContext(ctx, `SELECT summary FROM runs WHERE run_id = ?`, runID).Scan(&raw)
	if err != nil {
		return Summary{}, err
	}
	var sum Summary
	if err := json.Unmarshal([]byte(raw), &sum); err != nil {
		return Summary{}, fmt.Errorf("parse summary: %w", err)
	}
	return sum, nil
}

// Timeseries returns the stored dispatch records for one strategy of a run.
func (s *SQLiteStore) Timeseries(ctx context.Context, runID, strategy string) ([]model.DispatchRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT record FROM timeseries WHERE run_id = ? AND strategy = ? ORDER BY step`, runID, strategy)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	var out []model.DispatchRecord
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, err
		}
		var rec model.DispatchRecord
		if err := json.Unmarshal([]byte(raw), &rec); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// Close releases the database handle.
func (s *SQLiteStore) Close() error { return s.db.Close() }
