package sim

import (
	"github.com/maelh/robogrid/core/model"
	"github.com/maelh/robogrid/core/planner"
	"github.com/maelh/robogrid/core/profile"
	"github.com/maelh/robogrid/core/scenario"
)

// RunResult is the outcome of simulating one scenario under both planning
// strategies.
type RunResult struct {
	Scenario    scenario.Scenario    `json:"-"`
	Baseline    model.StrategyResult `json:"baseline"`
	EnergyAware model.StrategyResult `json:"energy_aware"`
	Comparison  model.Comparison     `json:"comparison"`
}

// Run executes the full pipeline for a scenario: build the exogenous
// signals, plan with both strategies, project each plan onto the grid and
// dispatch it through the microgrid. The computation is deterministic for a
// fixed scenario.
func Run(sc scenario.Scenario) (RunResult, error) {
	if err := sc.Validate(); err != nil {
		return RunResult{}, err
	}

	grid := sc.Grid()
	pvKW := profile.PVPower(profile.Solar(grid, sc.SunriseH, sc.SunsetH), sc.Microgrid)
	price := profile.PriceTOU(grid)

	baseline := runStrategy(planner.BaselinePlanner{}, sc, grid, price, pvKW)
	energyAware := runStrategy(planner.NewEnergyAwarePlanner(), sc, grid, price, pvKW)

	return RunResult{
		Scenario:    sc,
		Baseline:    baseline,
		EnergyAware: energyAware,
		Comparison:  model.Compare(baseline.Summary, energyAware.Summary),
	}, nil
}

func runStrategy(p planner.Planner, sc scenario.Scenario, grid model.TimeGrid, price, pvKW model.Signal) model.StrategyResult {
	plan := p.Plan(sc.Tasks, sc.Robot, price, pvKW, grid.DTHours)
	loadKW, socHist := ProjectLoad(plan, grid, sc.Robot)
	records, summary := Dispatch(loadKW, pvKW, price, sc.Microgrid)
	for i := range records {
		records[i].RobotSoC = socHist[i]
	}
	summary.AtRiskTasks = plan.AtRisk
	return model.StrategyResult{
		Strategy: p.Name(),
		Plan:     plan,
		Records:  records,
		Summary:  summary,
	}
}
