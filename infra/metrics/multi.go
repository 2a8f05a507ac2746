package metrics

import (
	coremetrics "github.com/maelh/robogrid/core/metrics"
	"github.com/maelh/robogrid/core/model"
)

// MultiSink fans run events out to multiple sinks.
type MultiSink struct {
	Sinks []coremetrics.MetricsSink
}

// NewMultiSink creates a MultiSink with the provided sinks.
func NewMultiSink(sinks ...coremetrics.MetricsSink) *MultiSink {
	return &MultiSink{Sinks: sinks}
}

// RecordRun forwards the event to all sinks, returning the first error
// encountered.
func (m *MultiSink) RecordRun(ev coremetrics.RunEvent) error {
	for _, s := range m.Sinks {
		if err := s.RecordRun(ev); err != nil {
			return err
		}
	}
	return nil
}

// RecordTimeseries forwards the series to sinks that can store it.
func (m *MultiSink) RecordTimeseries(ev coremetrics.RunEvent, records []model.DispatchRecord) error {
	for _, s := range m.Sinks {
		if rec, ok := s.(coremetrics.TimeseriesRecorder); ok {
			if err := rec.RecordTimeseries(ev, records); err != nil {
				return err
			}
		}
	}
	return nil
}

// RecordComparison forwards comparison events.
func (m *MultiSink) RecordComparison(ev coremetrics.ComparisonEvent) error {
	for _, s := range m.Sinks {
		if rec, ok := s.(coremetrics.ComparisonRecorder); ok {
			if err := rec.RecordComparison(ev); err != nil {
				return err
			}
		}
	}
	return nil
}
