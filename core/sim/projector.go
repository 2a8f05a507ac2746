// Package sim resamples robot plans onto the simulation grid and resolves
// the per-step microgrid dispatch. It carries no decision logic of its own:
// all anticipation of price and PV lives in the planner, the dispatcher is
// purely reactive.
package sim

import (
	"math"

	"github.com/maelh/robogrid/core/model"
)

// ProjectLoad converts a plan into a per-step robot charging load and a
// per-step robot state of charge trajectory (as a fraction of capacity).
//
// Each grid step accumulates the time-overlap-weighted share of every plan
// step's energy. Net charging becomes microgrid load, clipped to the robot's
// rated charge power regardless of how many charge intervals overlap the
// step. The running state of charge discharges by the negative share
// unscaled and charges by the positive share times the charge efficiency,
// clipped to [0, capacity] every step.
func ProjectLoad(plan model.Plan, grid model.TimeGrid, rp model.RobotParams) (loadKW, socHist []float64) {
	loadKW = make([]float64, grid.N)
	socHist = make([]float64, grid.N)
	socKWh := rp.SoCInit * rp.BatteryKWh

	for i := 0; i < grid.N; i++ {
		h0 := float64(i) * grid.DTHours
		h1 := float64(i+1) * grid.DTHours

		eKWh := 0.0
		for _, s := range plan.Steps {
			overlap := math.Min(h1, s.EndH) - math.Max(h0, s.StartH)
			if overlap > 0 {
				frac := overlap / math.Max(s.DurationH(), 1e-9)
				eKWh += s.EnergyKWh * frac
			}
		}

		if eKWh > 0 {
			loadKW[i] = math.Min(rp.ChargePowerKW, eKWh/grid.DTHours)
		}

		socKWh += math.Min(eKWh, 0) + math.Max(eKWh, 0)*rp.ChargeEff
		socKWh = math.Min(math.Max(socKWh, 0), rp.BatteryKWh)
		socHist[i] = socKWh / rp.BatteryKWh
	}
	return loadKW, socHist
}
