package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/influxdata/influxdb-client-go/v2/api/write"

	coremetrics "github.com/maelh/robogrid/core/metrics"
	"github.com/maelh/robogrid/core/model"
)

func captureServer(t *testing.T, bodies *[]string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, _ := io.ReadAll(r.Body)
		*bodies = append(*bodies, strings.TrimSpace(string(data)))
		w.WriteHeader(http.StatusNoContent)
	}))
}

func TestInfluxSinkRecordRun(t *testing.T) {
	var bodies []string
	srv := captureServer(t, &bodies)
	defer srv.Close()

	sink := NewInfluxSink(srv.URL, "token", "org", "bucket")
	now := time.Now()
	ev := coremetrics.RunEvent{
		RunID:    "run1",
		Scenario: "peak_mission",
		Strategy: "energy_aware",
		Summary: model.RunSummary{
			GridKWh:           4.5004,
			CostUSD:           1.25,
			BattThroughputKWh: 2.3339,
			AtRiskTasks:       []string{"inspect_B"},
		},
		Time: now,
	}
	if err := sink.RecordRun(ev); err != nil {
		t.Fatalf("record error: %v", err)
	}

	p := write.NewPointWithMeasurement("run_summary").
		AddTag("run_id", "run1").
		AddTag("scenario", "peak_mission").
		AddTag("strategy", "energy_aware").
		AddField("grid_kwh", 4.5).
		AddField("cost_usd", 1.25).
		AddField("batt_throughput_kwh", 2.334).
		AddField("at_risk_tasks", 1).
		SetTime(now)
	expected := strings.TrimSpace(write.PointToLineProtocol(p, time.Nanosecond))
	if len(bodies) != 1 || bodies[0] != expected {
		t.Errorf("unexpected bodies: %#v, want %q", bodies, expected)
	}
}

func TestInfluxSinkRecordTimeseries(t *testing.T) {
	var bodies []string
	srv := captureServer(t, &bodies)
	defer srv.Close()

	sink := NewInfluxSink(srv.URL, "token", "org", "bucket")
	now := time.Now()
	ev := coremetrics.RunEvent{RunID: "run1", Scenario: "demo", Strategy: "baseline", Time: now}
	records := []model.DispatchRecord{
		{TimeH: 0, PVKW: 0, RobotKW: 0.6, BattKW: 0.6, GridKW: 0, PricePerKWh: 0.14, MicrogridSoC: 0.497, RobotSoC: 0.8},
		{TimeH: 0.25, PVKW: 1.2, RobotKW: 0.6, BattKW: 0, GridKW: 0, PricePerKWh: 0.14, MicrogridSoC: 0.5, RobotSoC: 0.85},
	}
	if err := sink.RecordTimeseries(ev, records); err != nil {
		t.Fatalf("record error: %v", err)
	}

	if len(bodies) != 2 {
		t.Fatalf("expected one write per record, got %d", len(bodies))
	}
	for i, r := range records {
		p := write.NewPointWithMeasurement("dispatch_step").
			AddTag("run_id", "run1").
			AddTag("scenario", "demo").
			AddTag("strategy", "baseline").
			AddField("pv_kw", r.PVKW).
			AddField("robot_kw", r.RobotKW).
			AddField("batt_kw", r.BattKW).
			AddField("grid_kw", r.GridKW).
			AddField("price_per_kwh", r.PricePerKWh).
			AddField("soc_microgrid", r.MicrogridSoC).
			AddField("robot_soc", r.RobotSoC).
			SetTime(now.Add(time.Duration(r.TimeH * float64(time.Hour))))
		expected := strings.TrimSpace(write.PointToLineProtocol(p, time.Nanosecond))
		if bodies[i] != expected {
			t.Errorf("record %d: unexpected body %q, want %q", i, bodies[i], expected)
		}
	}
}

func TestInfluxSinkRecordComparison(t *testing.T) {
	var bodies []string
	srv := captureServer(t, &bodies)
	defer srv.Close()

	sink := NewInfluxSink(srv.URL, "token", "org", "bucket")
	now := time.Now()
	ev := coremetrics.ComparisonEvent{
		RunID:      "run1",
		Scenario:   "peak_mission",
		Comparison: model.Comparison{DeltaCostUSD: 0.4217, DeltaGridKWh: 1.37},
		Time:       now,
	}
	if err := sink.RecordComparison(ev); err != nil {
		t.Fatalf("record error: %v", err)
	}

	p := write.NewPointWithMeasurement("run_comparison").
		AddTag("run_id", "run1").
		AddTag("scenario", "peak_mission").
		AddField("delta_cost_usd", 0.422).
		AddField("delta_grid_kwh", 1.37).
		SetTime(now)
	expected := strings.TrimSpace(write.PointToLineProtocol(p, time.Nanosecond))
	if len(bodies) != 1 || bodies[0] != expected {
		t.Errorf("unexpected bodies: %#v, want %q", bodies, expected)
	}
}

func TestNewInfluxSinkWithFallback(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/health" {
			called = true
			w.WriteHeader(http.StatusInternalServerError)
		}
	}))
	defer srv.Close()

	cfg := coremetrics.Config{
		InfluxURL:    srv.URL + "/api/v2/write",
		InfluxToken:  "tok",
		InfluxOrg:    "org",
		InfluxBucket: "bucket",
	}
	sink := NewInfluxSinkWithFallback(cfg)
	if _, ok := sink.(*InfluxSink); ok {
		t.Fatalf("expected NopSink on failing health check")
	}
	if !called {
		t.Fatalf("health endpoint not called")
	}
}

func TestNewInfluxSinkWithFallbackHealthy(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/health" {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"name":"influxdb","status":"pass"}`))
		}
	}))
	defer srv.Close()

	cfg := coremetrics.Config{
		InfluxURL:    srv.URL + "/api/v2/write",
		InfluxToken:  "tok",
		InfluxOrg:    "org",
		InfluxBucket: "bucket",
	}
	sink := NewInfluxSinkWithFallback(cfg)
	if _, ok := sink.(*InfluxSink); !ok {
		t.Fatalf("expected live sink on passing health check, got %T", sink)
	}
}
