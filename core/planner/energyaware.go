package planner

import (
	"math"

	"github.com/maelh/robogrid/core/model"
	"github.com/maelh/robogrid/core/profile"
)

// EnergyAwarePlanner times charge intervals using the price and PV signals.
// It prefers charging when the grid price is low and PV generation is high,
// pre-charges opportunistically during idle gaps before task releases, and
// tops up with a capacity buffer before each task, searching the feasible
// window up to the task's latest start.
type EnergyAwarePlanner struct {
	// AlphaPV weights the PV term of the desirability score; higher values
	// push charging toward strong-PV steps.
	AlphaPV float64
	// PreChargeTarget is the state of charge fraction targeted during
	// opportunistic pre-charge.
	PreChargeTarget float64
	// BufferFrac is the capacity fraction kept in reserve on top of each
	// task's energy need.
	BufferFrac float64
}

// NewEnergyAwarePlanner returns a planner with the default weights.
func NewEnergyAwarePlanner() EnergyAwarePlanner {
	return EnergyAwarePlanner{
		AlphaPV:         0.7,
		PreChargeTarget: 0.85,
		BufferFrac:      0.15,
	}
}

// Name implements Planner.
func (EnergyAwarePlanner) Name() string { return "energy_aware" }

// scoreFn is the per-step charge desirability; lower is better. It combines
// the grid price with a PV offset scaled to the price span so both terms are
// commensurable.
type scoreFn func(i int) float64

func (p EnergyAwarePlanner) scorer(price, pvKW model.Signal) scoreFn {
	pvNorm := profile.Normalize(pvKW)
	span := profile.Span(price)
	return func(i int) float64 {
		return price[i] - p.AlphaPV*span*pvNorm[i]
	}
}

// bestIndex returns the argmin of score over [i0, i1]. Ties resolve to the
// lowest index, so equal scores charge at the earliest time.
func bestIndex(score scoreFn, i0, i1 int) int {
	best := i0
	for i := i0 + 1; i <= i1; i++ {
		if score(i) < score(best) {
			best = i
		}
	}
	return best
}

// Plan implements Planner.
func (p EnergyAwarePlanner) Plan(tasks []model.Task, rp model.RobotParams, price, pvKW model.Signal, dtHours float64) model.Plan {
	st := newState(rp)
	grid := model.TimeGrid{N: len(price), DTHours: dtHours}
	score := p.scorer(price, pvKW)

	scheduleCharge := func(bestH, addKWh float64) {
		st.idleUntil(bestH)
		st.charge(addKWh, rp)
	}

	for _, task := range tasks {
		// Opportunistic pre-charge in the idle gap before release.
		if st.clockH < task.ReleaseH {
			gap := task.ReleaseH - st.clockH
			target := p.PreChargeTarget * rp.BatteryKWh
			if st.socKWh < target {
				i0 := grid.Index(st.clockH)
				i1 := grid.Index(task.ReleaseH)
				if i1 > i0 {
					best := bestIndex(score, i0, i1-1)
					maxAdd := rp.ChargePowerKW * rp.ChargeEff * gap
					scheduleCharge(float64(best)*dtHours, math.Min(target-st.socKWh, maxAdd))
				}
			}
			st.idleUntil(task.ReleaseH)
		}

		// Deadline-aware top-up: guarantee the task's energy plus a buffer.
		need := task.EnergyKWh(rp)
		required := math.Max(need+p.BufferFrac*rp.BatteryKWh, rp.SoCMin*rp.BatteryKWh)
		if st.socKWh < required {
			best := grid.Index(st.clockH)
			if task.LatestStartH() < st.clockH {
				// Degenerate window: the deadline no longer allows searching
				// ahead. Charge immediately and surface the task as at risk.
				st.atRisk = append(st.atRisk, task.Name)
			} else {
				latest := math.Max(task.LatestStartH(), st.clockH)
				best = bestIndex(score, best, grid.Index(latest))
			}
			scheduleCharge(float64(best)*dtHours, required-st.socKWh)
		}

		st.execute(task, need)
	}
	return st.plan()
}
