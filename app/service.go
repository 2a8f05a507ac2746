// Package app wires the configuration into a runnable simulation service:
// scenario resolution, the planning/dispatch pipeline, result persistence
// and the observability sinks.
package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/maelh/robogrid/config"
	coremetrics "github.com/maelh/robogrid/core/metrics"
	"github.com/maelh/robogrid/core/model"
	"github.com/maelh/robogrid/core/scenario"
	"github.com/maelh/robogrid/core/sim"
	"github.com/maelh/robogrid/infra/logger"
	"github.com/maelh/robogrid/infra/metrics"
	"github.com/maelh/robogrid/infra/mqtt"
	"github.com/maelh/robogrid/infra/store"
	"github.com/maelh/robogrid/internal/eventbus"
)

// Service orchestrates one simulation run end to end.
type Service struct {
	cfg    *config.Config
	log    logger.Logger
	sink   coremetrics.MetricsSink
	store  store.ResultStore
	pub    mqtt.Publisher
	bus    *eventbus.Bus
	RunDir string // populated for the fs backend
}

// New creates a Service from the configuration.
func New(cfg *config.Config) (*Service, error) {
	if err := logger.SetLevel(cfg.Logging.Level); err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}
	logg := logger.New("service")

	var sinks []coremetrics.MetricsSink
	if cfg.Metrics.PrometheusEnabled {
		sink, err := metrics.NewPromSink(nil)
		if err != nil {
			return nil, fmt.Errorf("prom sink: %w", err)
		}
		sinks = append(sinks, sink)
	}
	if cfg.Metrics.InfluxEnabled {
		sinks = append(sinks, metrics.NewInfluxSinkWithFallback(cfg.Metrics))
	}
	var sink coremetrics.MetricsSink = coremetrics.NopSink{}
	if len(sinks) == 1 {
		sink = sinks[0]
	} else if len(sinks) > 1 {
		sink = metrics.NewMultiSink(sinks...)
	}

	st, runDir, err := newStore(cfg.Results)
	if err != nil {
		return nil, err
	}

	var pub mqtt.Publisher
	if cfg.MQTT.Enabled {
		pub, err = mqtt.NewPahoPublisher(cfg.MQTT)
		if err != nil {
			return nil, fmt.Errorf("mqtt publisher: %w", err)
		}
	}

	bus := eventbus.New()
	go watchBus(bus.Subscribe(), logg)

	return &Service{
		cfg:    cfg,
		log:    logg,
		sink:   sink,
		store:  st,
		pub:    pub,
		bus:    bus,
		RunDir: runDir,
	}, nil
}

// watchBus logs run lifecycle events until the bus closes.
func watchBus(events <-chan eventbus.Event, log logger.Logger) {
	for ev := range events {
		switch e := ev.(type) {
		case eventbus.RunStarted:
			log.Debugw("run started", map[string]any{"run_id": e.RunID, "scenario": e.Scenario})
		case eventbus.StrategyCompleted:
			log.Debugw("strategy completed", map[string]any{"run_id": e.RunID, "strategy": e.Strategy})
		case eventbus.RunCompleted:
			log.Debugw("run completed", map[string]any{"run_id": e.RunID, "scenario": e.Scenario})
		}
	}
}

// newStore builds the configured result store. For the fs backend each run
// gets a timestamped directory and an "outputs/latest" pointer file, so the
// report command can find the most recent run.
func newStore(cfg config.ResultsConfig) (store.ResultStore, string, error) {
	switch cfg.Backend {
	case "sqlite":
		st, err := store.NewSQLiteStore(cfg.Path)
		if err != nil {
			return nil, "", fmt.Errorf("sqlite store: %w", err)
		}
		return st, "", nil
	default:
		runDir := filepath.Join(cfg.Dir, time.Now().Format("20060102_150405"))
		if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
			return nil, "", fmt.Errorf("create output dir: %w", err)
		}
		if err := os.WriteFile(filepath.Join(cfg.Dir, "latest"), []byte(runDir), 0o644); err != nil {
			return nil, "", fmt.Errorf("write latest pointer: %w", err)
		}
		return store.NewFSStore(runDir), runDir, nil
	}
}

// Bus exposes the run lifecycle bus for additional subscribers.
func (s *Service) Bus() *eventbus.Bus { return s.bus }

// Simulate resolves the configured scenario, runs both strategies and
// persists and publishes the results.
func (s *Service) Simulate(ctx context.Context) (store.SavedRun, error) {
	sc, err := scenario.Resolve(s.cfg.Sim.Scenario)
	if err != nil {
		return store.SavedRun{}, err
	}
	sc.Seed = s.cfg.Sim.Seed

	runID := uuid.NewString()
	now := time.Now()
	s.bus.Publish(eventbus.RunStarted{RunID: runID, Scenario: sc.Name})
	s.log.Infof("run %s: scenario %s, %d tasks over %.0fh", runID, sc.Name, len(sc.Tasks), sc.HorizonH)

	result, err := sim.Run(sc)
	if err != nil {
		return store.SavedRun{}, fmt.Errorf("simulate: %w", err)
	}

	for _, sr := range []model.StrategyResult{result.Baseline, result.EnergyAware} {
		ev := coremetrics.RunEvent{
			RunID:    runID,
			Scenario: sc.Name,
			Strategy: sr.Strategy,
			Summary:  sr.Summary,
			Time:     now,
		}
		if err := s.sink.RecordRun(ev); err != nil {
			s.log.Errorf("record run: %v", err)
		}
		if rec, ok := s.sink.(coremetrics.TimeseriesRecorder); ok {
			if err := rec.RecordTimeseries(ev, sr.Records); err != nil {
				s.log.Errorf("record timeseries: %v", err)
			}
		}
		s.bus.Publish(eventbus.StrategyCompleted{RunID: runID, Scenario: sc.Name, Strategy: sr.Strategy})
	}
	if rec, ok := s.sink.(coremetrics.ComparisonRecorder); ok {
		if err := rec.RecordComparison(coremetrics.ComparisonEvent{
			RunID:      runID,
			Scenario:   sc.Name,
			Comparison: result.Comparison,
			Time:       now,
		}); err != nil {
			s.log.Errorf("record comparison: %v", err)
		}
	}

	run := store.SavedRun{ID: runID, CreatedAt: now, Result: result}
	if err := s.store.SaveRun(ctx, run); err != nil {
		return store.SavedRun{}, fmt.Errorf("save run: %w", err)
	}

	if s.pub != nil {
		if err := s.pub.Publish(s.cfg.MQTT.Topic, store.NewSummary(run)); err != nil {
			s.log.Errorf("publish summary: %v", err)
		}
	}

	s.bus.Publish(eventbus.RunCompleted{RunID: runID, Scenario: sc.Name})
	s.log.Infof("run %s: cost saved $%.2f, grid saved %.2f kWh",
		runID, result.Comparison.DeltaCostUSD, result.Comparison.DeltaGridKWh)
	return run, nil
}

// Close releases resources held by the service.
func (s *Service) Close() error {
	s.bus.Close()
	if s.pub != nil {
		s.pub.Close()
	}
	if c, ok := s.store.(interface{ Close() error }); ok {
		return c.Close()
	}
	return nil
}
