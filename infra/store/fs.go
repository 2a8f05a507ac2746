package store

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/maelh/robogrid/core/model"
)

// FSStore writes each run into its own directory: one CSV time series per
// strategy plus a summary.json.
type FSStore struct {
	Dir string
}

// NewFSStore creates a store rooted at dir.
func NewFSStore(dir string) *FSStore { return &FSStore{Dir: dir} }

// SaveRun writes timeseries_baseline.csv, timeseries_energy_aware.csv and
// summary.json under the store directory.
func (s *FSStore) SaveRun(ctx context.Context, run SavedRun) error {
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return fmt.Errorf("create run dir: %w", err)
	}
	if err := writeTimeseries(filepath.Join(s.Dir, "timeseries_baseline.csv"), run.Result.Baseline.Records); err != nil {
		return err
	}
	if err := writeTimeseries(filepath.Join(s.Dir, "timeseries_energy_aware.csv"), run.Result.EnergyAware.Records); err != nil {
		return err
	}
	return writeSummary(filepath.Join(s.Dir, "summary.json"), NewSummary(run))
}

// LoadSummary reads a previously saved summary.json from dir.
func LoadSummary(dir string) (Summary, error) {
	data, err := os.ReadFile(filepath.Join(dir, "summary.json"))
	if err != nil {
		return Summary{}, err
	}
	var sum Summary
	if err := json.Unmarshal(data, &sum); err != nil {
		return Summary{}, fmt.Errorf("parse summary: %w", err)
	}
	return sum, nil
}

func writeSummary(path string, sum Summary) error {
	data, err := json.MarshalIndent(sum, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}

func writeTimeseries(path string, records []model.DispatchRecord) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	cw := csv.NewWriter(f)
	header := []string{"t_h", "pv_kw", "robot_kw", "batt_kw", "grid_kw", "price_per_kwh", "soc_microgrid", "robot_soc"}
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, r := range records {
		row := []string{
			fmtF(r.TimeH), fmtF(r.PVKW), fmtF(r.RobotKW), fmtF(r.BattKW),
			fmtF(r.GridKW), fmtF(r.PricePerKWh), fmtF(r.MicrogridSoC), fmtF(r.RobotSoC),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func fmtF(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
