package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	coremetrics "github.com/maelh/robogrid/core/metrics"
)

// PromSink exposes run summaries as Prometheus gauges.
type PromSink struct {
	runs       *prometheus.CounterVec
	gridKWh    *prometheus.GaugeVec
	costUSD    *prometheus.GaugeVec
	throughput *prometheus.GaugeVec
	atRisk     *prometheus.GaugeVec
	savings    *prometheus.GaugeVec
}

// NewPromSink registers simulation metrics on the provided registerer. If
// reg is nil, the default registerer is used. Already registered collectors
// are reused.
func NewPromSink(reg prometheus.Registerer) (*PromSink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	s := &PromSink{
		runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "robogrid_runs_total",
			Help: "Total number of simulated strategy runs",
		}, []string{"scenario", "strategy"}),
		gridKWh: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "robogrid_grid_energy_kwh",
			Help: "Grid energy imported over the last run",
		}, []string{"scenario", "strategy"}),
		costUSD: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "robogrid_grid_cost_usd",
			Help: "Grid energy cost over the last run",
		}, []string{"scenario", "strategy"}),
		throughput: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "robogrid_battery_throughput_kwh",
			Help: "Microgrid battery throughput over the last run",
		}, []string{"scenario", "strategy"}),
		atRisk: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "robogrid_at_risk_tasks",
			Help: "Number of tasks flagged as deadline at-risk in the last run",
		}, []string{"scenario", "strategy"}),
		savings: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "robogrid_savings_usd",
			Help: "Baseline minus energy-aware cost for the last run",
		}, []string{"scenario"}),
	}
	for _, c := range []prometheus.Collector{s.runs, s.gridKWh, s.costUSD, s.throughput, s.atRisk, s.savings} {
		if err := register(reg, c); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func register(reg prometheus.Registerer, c prometheus.Collector) error {
	if err := reg.Register(c); err != nil {
		if _, ok := err.(prometheus.AlreadyRegisteredError); !ok {
			return err
		}
	}
	return nil
}

// RecordRun updates the per-strategy gauges.
func (s *PromSink) RecordRun(ev coremetrics.RunEvent) error {
	labels := prometheus.Labels{"scenario": ev.Scenario, "strategy": ev.Strategy}
	s.runs.With(labels).Inc()
	s.gridKWh.With(labels).Set(ev.Summary.GridKWh)
	s.costUSD.With(labels).Set(ev.Summary.CostUSD)
	s.throughput.With(labels).Set(ev.Summary.BattThroughputKWh)
	s.atRisk.With(labels).Set(float64(len(ev.Summary.AtRiskTasks)))
	return nil
}

// RecordComparison updates the savings gauge.
func (s *PromSink) RecordComparison(ev coremetrics.ComparisonEvent) error {
	s.savings.WithLabelValues(ev.Scenario).Set(ev.Comparison.DeltaCostUSD)
	return nil
}
