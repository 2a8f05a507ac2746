// Package metrics defines the observability contract for simulation runs.
// Concrete sinks (Prometheus, InfluxDB) live under infra/metrics; the core
// only depends on the interfaces here.
package metrics

import (
	"time"

	"github.com/maelh/robogrid/core/model"
)

// RunEvent describes one completed strategy simulation.
type RunEvent struct {
	RunID    string
	Scenario string
	Strategy string
	Summary  model.RunSummary
	Time     time.Time
}

// MetricsSink records run summaries for observability purposes.
type MetricsSink interface {
	RecordRun(ev RunEvent) error
}

// TimeseriesRecorder is implemented by sinks able to store the full
// per-step dispatch series, not just the aggregate summary.
type TimeseriesRecorder interface {
	RecordTimeseries(ev RunEvent, records []model.DispatchRecord) error
}

// ComparisonEvent captures the baseline versus energy-aware deltas of a run.
type ComparisonEvent struct {
	RunID      string
	Scenario   string
	Comparison model.Comparison
	Time       time.Time
}

// ComparisonRecorder records strategy comparisons.
type ComparisonRecorder interface {
	RecordComparison(ev ComparisonEvent) error
}

// NopSink implements every recorder interface with no-op methods.
type NopSink struct{}

func (NopSink) RecordRun(RunEvent) error { return nil }

func (NopSink) RecordTimeseries(RunEvent, []model.DispatchRecord) error { return nil }

func (NopSink) RecordComparison(ComparisonEvent) error { return nil }

// Config defines settings for metrics sinks.
type Config struct {
	PrometheusEnabled bool   `json:"prometheus_enabled"`
	PrometheusAddr    string `json:"prometheus_addr"`
	InfluxEnabled     bool   `json:"influx_enabled"`
	InfluxURL         string `json:"influx_url"`
	InfluxToken       string `json:"influx_token"`
	InfluxOrg         string `json:"influx_org"`
	InfluxBucket      string `json:"influx_bucket"`
}

// SetDefaults applies sane defaults.
func (c *Config) SetDefaults() {
	if c.PrometheusAddr == "" {
		c.PrometheusAddr = ":2112"
	}
}
