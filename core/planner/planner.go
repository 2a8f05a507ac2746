// Package planner implements the task/charge scheduling strategies. A
// planner walks the ordered task list, maintaining the robot clock and state
// of charge, and emits a contiguous plan of task, charge and idle intervals.
//
// Two strategies are provided:
//   - BaselinePlanner: waits for release times and charges only when the
//     next task would push the battery below its minimum.
//   - EnergyAwarePlanner: additionally times charge intervals using the
//     electricity price and PV availability signals.
//
// Both are myopic greedy heuristics: each charge window is decided
// independently per task from local information, with no global optimality
// guarantee.
package planner

import (
	"math"

	"github.com/maelh/robogrid/core/model"
)

// Planner produces a robot schedule for an ordered task list. Strategies
// that ignore the exogenous signals simply receive them and discard them.
type Planner interface {
	Name() string
	Plan(tasks []model.Task, rp model.RobotParams, price, pvKW model.Signal, dtHours float64) model.Plan
}

// state threads the robot clock and battery through a planning run.
type state struct {
	socKWh float64
	clockH float64
	steps  []model.PlanStep
	atRisk []string
}

func newState(rp model.RobotParams) *state {
	return &state{socKWh: rp.SoCInit * rp.BatteryKWh}
}

// idleUntil emits an idle step up to h if the clock is behind it.
func (st *state) idleUntil(h float64) {
	if h > st.clockH {
		st.steps = append(st.steps, model.PlanStep{Kind: model.StepIdle, Label: "wait", StartH: st.clockH, EndH: h})
		st.clockH = h
	}
}

// charge docks the robot at the current clock and adds addKWh to the
// battery, capped at remaining capacity. Charge duration follows from the
// rated dock power; only the stored fraction counts toward state of charge.
func (st *state) charge(addKWh float64, rp model.RobotParams) {
	addKWh = math.Max(0, math.Min(addKWh, rp.BatteryKWh-st.socKWh))
	if addKWh <= 1e-9 {
		return
	}
	dur := addKWh / math.Max(rp.ChargePowerKW*rp.ChargeEff, 1e-9)
	st.steps = append(st.steps, model.PlanStep{Kind: model.StepCharge, Label: "dock", StartH: st.clockH, EndH: st.clockH + dur, EnergyKWh: addKWh})
	st.socKWh = math.Min(st.socKWh+addKWh*rp.ChargeEff, rp.BatteryKWh)
	st.clockH += dur
}

// execute runs the task at the current clock, consuming needKWh.
func (st *state) execute(task model.Task, needKWh float64) {
	st.steps = append(st.steps, model.PlanStep{Kind: model.StepTask, Label: task.Name, StartH: st.clockH, EndH: st.clockH + task.DurationH, EnergyKWh: -needKWh})
	st.socKWh = math.Max(st.socKWh-needKWh, 0)
	st.clockH += task.DurationH
}

func (st *state) plan() model.Plan {
	return model.Plan{Steps: st.steps, AtRisk: st.atRisk}
}
