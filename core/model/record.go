package model

// DispatchRecord is the resolved power split for one time step of the
// microgrid simulation. BattKW is signed: positive while the battery serves
// load, negative while it absorbs PV surplus.
type DispatchRecord struct {
	TimeH        float64 `json:"t_h"`
	PVKW         float64 `json:"pv_kw"`
	RobotKW      float64 `json:"robot_kw"`
	BattKW       float64 `json:"batt_kw"`
	GridKW       float64 `json:"grid_kw"`
	PricePerKWh  float64 `json:"price_per_kwh"`
	MicrogridSoC float64 `json:"soc_microgrid"`
	RobotSoC     float64 `json:"robot_soc"`
}

// RunSummary aggregates a single strategy's simulation outcome.
type RunSummary struct {
	GridKWh           float64  `json:"grid_kwh"`
	CostUSD           float64  `json:"cost_usd"`
	BattThroughputKWh float64  `json:"batt_throughput_kwh"`
	MeanPriceUSD      float64  `json:"mean_price_usd"` // mean $/kWh actually paid for grid energy
	PeakGridKW        float64  `json:"peak_grid_kw"`
	AtRiskTasks       []string `json:"at_risk_tasks,omitempty"`
}

// StrategyResult bundles everything produced for one planning strategy.
type StrategyResult struct {
	Strategy string           `json:"strategy"`
	Plan     Plan             `json:"-"`
	Records  []DispatchRecord `json:"-"`
	Summary  RunSummary       `json:"summary"`
}

// Comparison holds the baseline-minus-energy-aware deltas. Positive values
// mean the energy-aware strategy saved cost or grid energy.
type Comparison struct {
	DeltaCostUSD float64 `json:"delta_cost_usd"`
	DeltaGridKWh float64 `json:"delta_grid_kwh"`
}

// Compare computes deltas between a baseline and an energy-aware summary.
func Compare(baseline, energyAware RunSummary) Comparison {
	return Comparison{
		DeltaCostUSD: baseline.CostUSD - energyAware.CostUSD,
		DeltaGridKWh: baseline.GridKWh - energyAware.GridKWh,
	}
}
