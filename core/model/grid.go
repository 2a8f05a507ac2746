package model

import "math"

// TimeGrid is a uniform discretization of the planning horizon into N steps
// of DTHours width. Step i covers [i*DTHours, (i+1)*DTHours). A TimeGrid is
// immutable once constructed.
type TimeGrid struct {
	N       int
	DTHours float64
}

// NewTimeGrid builds a grid covering horizonH hours with dtHours steps.
func NewTimeGrid(horizonH, dtHours float64) TimeGrid {
	n := int(horizonH / dtHours)
	return TimeGrid{N: n, DTHours: dtHours}
}

// HorizonH returns the total horizon length in hours.
func (g TimeGrid) HorizonH() float64 { return float64(g.N) * g.DTHours }

// Times returns the start time of every step.
func (g TimeGrid) Times() []float64 {
	t := make([]float64, g.N)
	for i := range t {
		t[i] = float64(i) * g.DTHours
	}
	return t
}

// Index maps an hour offset to the covering step index, clamped to the grid.
// A small epsilon absorbs floating-point jitter at step boundaries.
func (g TimeGrid) Index(h float64) int {
	i := int(math.Floor(h/g.DTHours + 1e-9))
	if i < 0 {
		return 0
	}
	if i > g.N-1 {
		return g.N - 1
	}
	return i
}

// Signal is a per-step series aligned to a TimeGrid. Concrete signals are the
// electricity price (strictly positive) and the PV generation power
// (non-negative); both are read-only inputs to planning and dispatch.
type Signal []float64
