// Package store persists simulation runs. Two backends exist: a filesystem
// store writing per-run CSV time series plus a JSON summary, and a SQLite
// store keeping every run in a single database file.
package store

import (
	"context"
	"time"

	"github.com/maelh/robogrid/core/model"
	"github.com/maelh/robogrid/core/sim"
)

// SavedRun is a completed simulation run ready for persistence.
type SavedRun struct {
	ID        string
	CreatedAt time.Time
	Result    sim.RunResult
}

// Summary is the serialized aggregate view of a run, mirroring the JSON
// summary file layout.
type Summary struct {
	RunID       string                `json:"run_id"`
	Scenario    string                `json:"scenario"`
	Seed        int64                 `json:"seed"`
	CreatedAt   time.Time             `json:"created_at"`
	Microgrid   model.MicrogridParams `json:"microgrid_params"`
	Robot       model.RobotParams     `json:"robot_params"`
	Baseline    model.RunSummary      `json:"baseline"`
	EnergyAware model.RunSummary      `json:"energy_aware"`
	Comparison  model.Comparison      `json:"comparison"`
}

// NewSummary flattens a run into its persisted summary form.
func NewSummary(run SavedRun) Summary {
	return Summary{
		RunID:       run.ID,
		Scenario:    run.Result.Scenario.Name,
		Seed:        run.Result.Scenario.Seed,
		CreatedAt:   run.CreatedAt,
		Microgrid:   run.Result.Scenario.Microgrid,
		Robot:       run.Result.Scenario.Robot,
		Baseline:    run.Result.Baseline.Summary,
		EnergyAware: run.Result.EnergyAware.Summary,
		Comparison:  run.Result.Comparison,
	}
}

// ResultStore persists completed runs.
type ResultStore interface {
	SaveRun(ctx context.Context, run SavedRun) error
}
