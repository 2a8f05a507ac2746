package sim

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/maelh/robogrid/core/model"
)

// Dispatch simulates the microgrid serving the robot charging load for every
// step. Priority is fixed: PV serves load first, the stationary battery
// second, grid import last. PV surplus charges the battery; whatever the
// battery cannot absorb is curtailed. Grid export is not modeled.
//
// The only state carried across steps is the battery state of charge, which
// is clipped to [SoCMin, SoCMax] of capacity after every step.
func Dispatch(robotKW, pvKW, price model.Signal, mg model.MicrogridParams) ([]model.DispatchRecord, model.RunSummary) {
	n := len(robotKW)
	records := make([]model.DispatchRecord, 0, n)
	socKWh := mg.SoCInit * mg.BattCapacityKWh

	var gridKWh, cost, throughputKWh float64

	for i := 0; i < n; i++ {
		load := robotKW[i]
		pv := pvKW[i]
		net := load - pv // positive means deficit, negative means surplus

		var battKW, gridKW float64
		if net > 1e-9 {
			maxDisKW := math.Min(mg.BattPMaxKW, (socKWh-mg.SoCMin*mg.BattCapacityKWh)/mg.DTHours)
			battKW = math.Min(net, math.Max(0, maxDisKW)) * mg.BattEff
			gridKW = math.Max(0, net-battKW)
			// Efficiency loss is charged against the battery, not against
			// what it delivers.
			socKWh -= battKW / mg.BattEff * mg.DTHours
		} else {
			surplus := -net
			maxChKW := math.Min(mg.BattPMaxKW, (mg.SoCMax*mg.BattCapacityKWh-socKWh)/mg.DTHours)
			battKW = -math.Min(surplus, math.Max(0, maxChKW)) * mg.BattEff
			socKWh += -battKW / mg.BattEff * mg.DTHours
		}

		// Defend against floating-point drift at the soc boundaries.
		socKWh = math.Min(math.Max(socKWh, mg.SoCMin*mg.BattCapacityKWh), mg.SoCMax*mg.BattCapacityKWh)

		stepKWh := gridKW * mg.DTHours
		gridKWh += stepKWh
		cost += stepKWh * price[i]
		throughputKWh += math.Abs(battKW) * mg.DTHours

		records = append(records, model.DispatchRecord{
			TimeH:        float64(i) * mg.DTHours,
			PVKW:         pv,
			RobotKW:      load,
			BattKW:       battKW,
			GridKW:       gridKW,
			PricePerKWh:  price[i],
			MicrogridSoC: socKWh / mg.BattCapacityKWh,
		})
	}

	summary := model.RunSummary{
		GridKWh:           gridKWh,
		CostUSD:           cost,
		BattThroughputKWh: throughputKWh,
		MeanPriceUSD:      cost / math.Max(gridKWh, 1e-9),
		PeakGridKW:        peakGrid(records),
	}
	return records, summary
}

func peakGrid(records []model.DispatchRecord) float64 {
	if len(records) == 0 {
		return 0
	}
	grid := make([]float64, len(records))
	for i, r := range records {
		grid[i] = r.GridKW
	}
	return floats.Max(grid)
}
