package metrics

import (
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	coremetrics "github.com/maelh/robogrid/core/metrics"
	"github.com/maelh/robogrid/core/model"
)

func TestPromSinkRecordRun(t *testing.T) {
	reg := prometheus.NewRegistry()
	sink, err := NewPromSink(reg)
	require.NoError(t, err)

	require.NoError(t, sink.RecordRun(coremetrics.RunEvent{
		Scenario: "peak_mission",
		Strategy: "energy_aware",
		Summary: model.RunSummary{
			GridKWh:     4.5,
			CostUSD:     1.25,
			AtRiskTasks: []string{"inspect_B"},
		},
	}))

	expected := `
# HELP robogrid_grid_energy_kwh Grid energy imported over the last run
# TYPE robogrid_grid_energy_kwh gauge
robogrid_grid_energy_kwh{scenario="peak_mission",strategy="energy_aware"} 4.5
# HELP robogrid_grid_cost_usd Grid energy cost over the last run
# TYPE robogrid_grid_cost_usd gauge
robogrid_grid_cost_usd{scenario="peak_mission",strategy="energy_aware"} 1.25
# HELP robogrid_at_risk_tasks Number of tasks flagged as deadline at-risk in the last run
# TYPE robogrid_at_risk_tasks gauge
robogrid_at_risk_tasks{scenario="peak_mission",strategy="energy_aware"} 1
`
	require.NoError(t, testutil.CollectAndCompare(reg, strings.NewReader(expected),
		"robogrid_grid_energy_kwh", "robogrid_grid_cost_usd", "robogrid_at_risk_tasks"))
}

func TestPromSinkRecordComparison(t *testing.T) {
	reg := prometheus.NewRegistry()
	sink, err := NewPromSink(reg)
	require.NoError(t, err)

	require.NoError(t, sink.RecordComparison(coremetrics.ComparisonEvent{
		Scenario:   "demo",
		Comparison: model.Comparison{DeltaCostUSD: 0.42},
	}))
	assert.Equal(t, 0.42, testutil.ToFloat64(sink.savings.WithLabelValues("demo")))
}

func TestPromSinkDoubleRegister(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := NewPromSink(reg)
	require.NoError(t, err)
	// A second sink on the same registry reuses the collectors.
	_, err = NewPromSink(reg)
	assert.NoError(t, err)
}
