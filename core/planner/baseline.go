package planner

import "github.com/maelh/robogrid/core/model"

// baselineChargeTarget is the state of charge fraction the naive strategy
// tops up to whenever a refill is needed.
const baselineChargeTarget = 0.80

// BaselinePlanner is the naive reference strategy: wait for each task's
// release time, charge to 80% only when the task would drain the battery
// below its minimum, then execute. It never looks at price or PV signals.
type BaselinePlanner struct{}

// Name implements Planner.
func (BaselinePlanner) Name() string { return "baseline" }

// Plan implements Planner. The price, pvKW and dtHours arguments are
// ignored.
func (BaselinePlanner) Plan(tasks []model.Task, rp model.RobotParams, _, _ model.Signal, _ float64) model.Plan {
	st := newState(rp)
	for _, task := range tasks {
		st.idleUntil(task.ReleaseH)

		need := task.EnergyKWh(rp)
		if st.socKWh-need < rp.SoCMin*rp.BatteryKWh {
			target := baselineChargeTarget * rp.BatteryKWh
			st.charge(target-st.socKWh, rp)
		}

		st.execute(task, need)
	}
	return st.plan()
}
