package app

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maelh/robogrid/config"
	"github.com/maelh/robogrid/infra/mqtt"
	"github.com/maelh/robogrid/infra/store"
	"github.com/maelh/robogrid/internal/eventbus"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.Results.Dir = filepath.Join(t.TempDir(), "outputs")
	return cfg
}

func TestSimulateFSBackend(t *testing.T) {
	cfg := testConfig(t)
	cfg.Sim.Scenario = "peak_mission"
	svc, err := New(cfg)
	require.NoError(t, err)
	defer func() { assert.NoError(t, svc.Close()) }()

	run, err := svc.Simulate(context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, run.ID)
	assert.Equal(t, "peak_mission", run.Result.Scenario.Name)
	assert.Equal(t, int64(7), run.Result.Scenario.Seed)

	for _, name := range []string{"timeseries_baseline.csv", "timeseries_energy_aware.csv", "summary.json"} {
		_, err := os.Stat(filepath.Join(svc.RunDir, name))
		assert.NoError(t, err, name)
	}

	// The latest pointer names the run directory.
	data, err := os.ReadFile(filepath.Join(cfg.Results.Dir, "latest"))
	require.NoError(t, err)
	assert.Equal(t, svc.RunDir, string(data))

	sum, err := store.LoadSummary(svc.RunDir)
	require.NoError(t, err)
	assert.Equal(t, run.ID, sum.RunID)
}

func TestSimulateSQLiteBackend(t *testing.T) {
	cfg := testConfig(t)
	cfg.Results.Backend = "sqlite"
	cfg.Results.Path = filepath.Join(t.TempDir(), "runs.db")
	svc, err := New(cfg)
	require.NoError(t, err)
	defer func() { assert.NoError(t, svc.Close()) }()

	run, err := svc.Simulate(context.Background())
	require.NoError(t, err)

	st, err := store.NewSQLiteStore(cfg.Results.Path)
	require.NoError(t, err)
	defer func() { assert.NoError(t, st.Close()) }()
	sum, err := st.LoadSummary(context.Background(), run.ID)
	require.NoError(t, err)
	assert.Equal(t, "demo", sum.Scenario)
}

func TestSimulatePublishesLifecycleEvents(t *testing.T) {
	svc, err := New(testConfig(t))
	require.NoError(t, err)
	defer func() { assert.NoError(t, svc.Close()) }()

	sub := svc.Bus().Subscribe()
	_, err = svc.Simulate(context.Background())
	require.NoError(t, err)

	var started, completed int
	var strategies []string
	for len(sub) > 0 {
		switch ev := (<-sub).(type) {
		case eventbus.RunStarted:
			started++
		case eventbus.StrategyCompleted:
			strategies = append(strategies, ev.Strategy)
		case eventbus.RunCompleted:
			completed++
		}
	}
	assert.Equal(t, 1, started)
	assert.Equal(t, 1, completed)
	assert.Equal(t, []string{"baseline", "energy_aware"}, strategies)
}

func TestSimulatePublishesSummaryToMQTT(t *testing.T) {
	svc, err := New(testConfig(t))
	require.NoError(t, err)
	defer func() { assert.NoError(t, svc.Close()) }()

	pub := mqtt.NewMockPublisher()
	svc.pub = pub

	run, err := svc.Simulate(context.Background())
	require.NoError(t, err)

	msgs := pub.Messages[svc.cfg.MQTT.Topic]
	require.Len(t, msgs, 1)
	var sum store.Summary
	require.NoError(t, json.Unmarshal(msgs[0], &sum))
	assert.Equal(t, run.ID, sum.RunID)
	assert.Equal(t, "demo", sum.Scenario)
}

type captureLogger struct {
	msgs []string
}

func (c *captureLogger) Debugf(string, ...any) {}

func (c *captureLogger) Debugw(msg string, fields map[string]any) {
	c.msgs = append(c.msgs, msg)
}

func (c *captureLogger) Infof(string, ...any) {}

func (c *captureLogger) Warnf(string, ...any) {}

func (c *captureLogger) Errorf(string, ...any) {}

func TestWatchBusLogsLifecycle(t *testing.T) {
	bus := eventbus.New()
	logg := &captureLogger{}
	sub := bus.Subscribe()
	done := make(chan struct{})
	go func() {
		watchBus(sub, logg)
		close(done)
	}()

	bus.Publish(eventbus.RunStarted{RunID: "r1", Scenario: "demo"})
	bus.Publish(eventbus.StrategyCompleted{RunID: "r1", Strategy: "baseline"})
	bus.Publish(eventbus.RunCompleted{RunID: "r1", Scenario: "demo"})
	bus.Close()
	<-done

	assert.Equal(t, []string{"run started", "strategy completed", "run completed"}, logg.msgs)
}

func TestSimulateUnknownScenario(t *testing.T) {
	cfg := testConfig(t)
	cfg.Sim.Scenario = "nope"
	svc, err := New(cfg)
	require.NoError(t, err)
	defer func() { assert.NoError(t, svc.Close()) }()

	_, err = svc.Simulate(context.Background())
	assert.Error(t, err)
}
