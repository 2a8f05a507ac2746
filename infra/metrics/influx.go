package metrics

import (
	"context"
	"math"
	"net/http"
	"strings"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"
	"github.com/influxdata/influxdb-client-go/v2/api/write"

	coremetrics "github.com/maelh/robogrid/core/metrics"
	"github.com/maelh/robogrid/core/model"
	"github.com/maelh/robogrid/infra/logger"
)

// InfluxSink writes run summaries and dispatch time series to an InfluxDB
// instance using the official client.
type InfluxSink struct {
	client   influxdb2.Client
	writeAPI api.WriteAPIBlocking
	log      logger.Logger
}

// NewInfluxSink creates a new sink configured for the given InfluxDB endpoint.
func NewInfluxSink(url, token, org, bucket string) *InfluxSink {
	base := strings.TrimSuffix(url, "/api/v2/write")
	client := influxdb2.NewClientWithOptions(base, token,
		influxdb2.DefaultOptions().SetHTTPClient(&http.Client{Timeout: 5 * time.Second}))
	return &InfluxSink{
		client:   client,
		writeAPI: client.WriteAPIBlocking(org, bucket),
		log:      logger.New("influx-sink"),
	}
}

// NewInfluxSinkWithFallback tries to ping the InfluxDB instance and returns
// a NopSink if the health check fails.
func NewInfluxSinkWithFallback(cfg coremetrics.Config) coremetrics.MetricsSink {
	sink := NewInfluxSink(cfg.InfluxURL, cfg.InfluxToken, cfg.InfluxOrg, cfg.InfluxBucket)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	health, err := sink.client.Health(ctx)
	if err != nil || health.Status != "pass" {
		if err != nil {
			sink.log.Errorf("influx health check error: %v", err)
		} else {
			sink.log.Errorf("influx health status: %s", health.Status)
		}
		sink.client.Close()
		return coremetrics.NopSink{}
	}
	return sink
}

// RecordRun writes the strategy summary as a single point.
func (s *InfluxSink) RecordRun(ev coremetrics.RunEvent) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	p := write.NewPointWithMeasurement("run_summary").
		AddTag("run_id", ev.RunID).
		AddTag("scenario", ev.Scenario).
		AddTag("strategy", ev.Strategy).
		AddField("grid_kwh", round3(ev.Summary.GridKWh)).
		AddField("cost_usd", round3(ev.Summary.CostUSD)).
		AddField("batt_throughput_kwh", round3(ev.Summary.BattThroughputKWh)).
		AddField("at_risk_tasks", len(ev.Summary.AtRiskTasks)).
		SetTime(ev.Time)
	return s.writeAPI.WritePoint(ctx, p)
}

// RecordTimeseries writes every dispatch record as a point, timestamped by
// its hour offset from the run time.
func (s *InfluxSink) RecordTimeseries(ev coremetrics.RunEvent, records []model.DispatchRecord) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	for _, r := range records {
		p := write.NewPointWithMeasurement("dispatch_step").
			AddTag("run_id", ev.RunID).
			AddTag("scenario", ev.Scenario).
			AddTag("strategy", ev.Strategy).
			AddField("pv_kw", round3(r.PVKW)).
			AddField("robot_kw", round3(r.RobotKW)).
			AddField("batt_kw", round3(r.BattKW)).
			AddField("grid_kw", round3(r.GridKW)).
			AddField("price_per_kwh", round3(r.PricePerKWh)).
			AddField("soc_microgrid", round3(r.MicrogridSoC)).
			AddField("robot_soc", round3(r.RobotSoC)).
			SetTime(ev.Time.Add(time.Duration(r.TimeH * float64(time.Hour))))
		if err := s.writeAPI.WritePoint(ctx, p); err != nil {
			return err
		}
	}
	return nil
}

// RecordComparison writes the baseline versus energy-aware deltas.
func (s *InfluxSink) RecordComparison(ev coremetrics.ComparisonEvent) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	p := write.NewPointWithMeasurement("run_comparison").
		AddTag("run_id", ev.RunID).
		AddTag("scenario", ev.Scenario).
		AddField("delta_cost_usd", round3(ev.Comparison.DeltaCostUSD)).
		AddField("delta_grid_kwh", round3(ev.Comparison.DeltaGridKWh)).
		SetTime(ev.Time)
	return s.writeAPI.WritePoint(ctx, p)
}

// Close releases the underlying client.
func (s *InfluxSink) Close() { s.client.Close() }

func round3(f float64) float64 {
	return math.Round(f*1000) / 1000
}
