// Package report renders a short markdown report for a stored run
// directory. Plot rendering is left to external tooling; the report links
// the raw CSV series instead.
package report

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/stat"

	"github.com/maelh/robogrid/infra/store"
)

// Make reads summary.json and the strategy time series from runDir and
// writes REPORT.md next to them, returning the report path.
func Make(runDir string) (string, error) {
	sum, err := store.LoadSummary(runDir)
	if err != nil {
		return "", fmt.Errorf("load summary: %w", err)
	}

	baseStats, err := seriesStats(filepath.Join(runDir, "timeseries_baseline.csv"))
	if err != nil {
		return "", err
	}
	eaStats, err := seriesStats(filepath.Join(runDir, "timeseries_energy_aware.csv"))
	if err != nil {
		return "", err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# Run report\n\n")
	fmt.Fprintf(&b, "Run `%s`, scenario `%s`.\n\n", sum.RunID, sum.Scenario)
	fmt.Fprintf(&b, "## Key results\n")
	fmt.Fprintf(&b, "**Cost baseline:** $%.2f  \n", sum.Baseline.CostUSD)
	fmt.Fprintf(&b, "**Cost energy-aware:** $%.2f  \n", sum.EnergyAware.CostUSD)
	fmt.Fprintf(&b, "**Cost saved:** $%.2f  \n\n", sum.Comparison.DeltaCostUSD)
	fmt.Fprintf(&b, "**Grid kWh baseline:** %.2f  \n", sum.Baseline.GridKWh)
	fmt.Fprintf(&b, "**Grid kWh energy-aware:** %.2f  \n", sum.EnergyAware.GridKWh)
	fmt.Fprintf(&b, "**Grid kWh saved:** %.2f  \n\n", sum.Comparison.DeltaGridKWh)
	if len(sum.EnergyAware.AtRiskTasks) > 0 {
		fmt.Fprintf(&b, "**Deadline at-risk tasks (energy-aware):** %s\n\n", strings.Join(sum.EnergyAware.AtRiskTasks, ", "))
	}
	fmt.Fprintf(&b, "## Series\n")
	fmt.Fprintf(&b, "| strategy | mean grid kW | peak grid kW | mean microgrid SoC |\n")
	fmt.Fprintf(&b, "|---|---|---|---|\n")
	fmt.Fprintf(&b, "| baseline | %.3f | %.3f | %.3f |\n", baseStats.meanGrid, baseStats.peakGrid, baseStats.meanSoC)
	fmt.Fprintf(&b, "| energy-aware | %.3f | %.3f | %.3f |\n\n", eaStats.meanGrid, eaStats.peakGrid, eaStats.meanSoC)
	fmt.Fprintf(&b, "Raw series: `timeseries_baseline.csv`, `timeseries_energy_aware.csv`.\n")

	path := filepath.Join(runDir, "REPORT.md")
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return "", err
	}
	return path, nil
}

type stats struct {
	meanGrid float64
	peakGrid float64
	meanSoC  float64
}

// seriesStats extracts per-strategy aggregates from a stored CSV series.
func seriesStats(path string) (stats, error) {
	f, err := os.Open(path)
	if err != nil {
		return stats{}, err
	}
	defer func() { _ = f.Close() }()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return stats{}, fmt.Errorf("read %s: %w", filepath.Base(path), err)
	}
	if len(rows) < 2 {
		return stats{}, fmt.Errorf("%s: empty series", filepath.Base(path))
	}

	col := func(name string) int {
		for i, h := range rows[0] {
			if h == name {
				return i
			}
		}
		return -1
	}
	gi, si := col("grid_kw"), col("soc_microgrid")
	if gi < 0 || si < 0 {
		return stats{}, fmt.Errorf("%s: missing columns", filepath.Base(path))
	}

	grid := make([]float64, 0, len(rows)-1)
	soc := make([]float64, 0, len(rows)-1)
	peak := 0.0
	for _, row := range rows[1:] {
		g, err := strconv.ParseFloat(row[gi], 64)
		if err != nil {
			return stats{}, err
		}
		s, err := strconv.ParseFloat(row[si], 64)
		if err != nil {
			return stats{}, err
		}
		grid = append(grid, g)
		soc = append(soc, s)
		if g > peak {
			peak = g
		}
	}
	return stats{
		meanGrid: stat.Mean(grid, nil),
		peakGrid: peak,
		meanSoC:  stat.Mean(soc, nil),
	}, nil
}
