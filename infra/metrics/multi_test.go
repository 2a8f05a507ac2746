package metrics

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	coremetrics "github.com/maelh/robogrid/core/metrics"
	"github.com/maelh/robogrid/core/model"
)

type recordingSink struct {
	runs        int
	timeseries  int
	comparisons int
	err         error
}

func (r *recordingSink) RecordRun(coremetrics.RunEvent) error {
	r.runs++
	return r.err
}

func (r *recordingSink) RecordTimeseries(coremetrics.RunEvent, []model.DispatchRecord) error {
	r.timeseries++
	return r.err
}

func (r *recordingSink) RecordComparison(coremetrics.ComparisonEvent) error {
	r.comparisons++
	return r.err
}

func TestMultiSinkFanOut(t *testing.T) {
	a := &recordingSink{}
	b := &recordingSink{}
	// A plain sink without the optional recorder interfaces.
	nop := coremetrics.NopSink{}
	multi := NewMultiSink(a, b, nop)

	ev := coremetrics.RunEvent{RunID: "r1", Scenario: "demo", Strategy: "baseline"}
	require.NoError(t, multi.RecordRun(ev))
	require.NoError(t, multi.RecordTimeseries(ev, nil))
	require.NoError(t, multi.RecordComparison(coremetrics.ComparisonEvent{RunID: "r1"}))

	for _, s := range []*recordingSink{a, b} {
		assert.Equal(t, 1, s.runs)
		assert.Equal(t, 1, s.timeseries)
		assert.Equal(t, 1, s.comparisons)
	}
}

func TestMultiSinkStopsOnError(t *testing.T) {
	boom := errors.New("boom")
	a := &recordingSink{err: boom}
	b := &recordingSink{}
	multi := NewMultiSink(a, b)

	err := multi.RecordRun(coremetrics.RunEvent{})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 0, b.runs)
}
