package model

import (
	"fmt"
	"math"
)

// StepKind classifies a plan interval.
type StepKind int

const (
	StepTask StepKind = iota
	StepCharge
	StepIdle
)

// String returns a human-readable representation of the step kind.
func (k StepKind) String() string {
	switch k {
	case StepTask:
		return "task"
	case StepCharge:
		return "charge"
	case StepIdle:
		return "idle"
	default:
		return "unknown"
	}
}

// PlanStep is one committed interval of the robot schedule. EnergyKWh is
// signed: negative for robot energy consumed by a task, positive for energy
// added to the robot battery while docked, zero while idle.
type PlanStep struct {
	Kind      StepKind
	Label     string
	StartH    float64
	EndH      float64
	EnergyKWh float64
}

// DurationH returns the step length in hours.
func (s PlanStep) DurationH() float64 { return s.EndH - s.StartH }

// Plan is the ordered, contiguous sequence of intervals produced by a
// planning strategy, spanning from 0 to the completion of the last task.
// AtRisk lists tasks whose required top-up charge could not be placed before
// the latest feasible start; such tasks may miss their deadline.
type Plan struct {
	Steps  []PlanStep
	AtRisk []string
}

// EndH returns the end time of the final step, or 0 for an empty plan.
func (p Plan) EndH() float64 {
	if len(p.Steps) == 0 {
		return 0
	}
	return p.Steps[len(p.Steps)-1].EndH
}

// Validate checks the plan timeline: non-negative durations, contiguous
// steps, and a replayed robot state of charge that stays within
// [0, BatteryKWh] at every step boundary.
func (p Plan) Validate(rp RobotParams) error {
	prevEnd := 0.0
	soc := rp.SoCInit * rp.BatteryKWh
	for i, s := range p.Steps {
		if s.EndH < s.StartH {
			return fmt.Errorf("step %d (%s): negative duration", i, s.Label)
		}
		if math.Abs(s.StartH-prevEnd) > 1e-6 {
			return fmt.Errorf("step %d (%s): starts at %.4fh, previous ended at %.4fh", i, s.Label, s.StartH, prevEnd)
		}
		prevEnd = s.EndH
		switch s.Kind {
		case StepCharge:
			soc = math.Min(soc+s.EnergyKWh*rp.ChargeEff, rp.BatteryKWh)
		case StepTask:
			soc += s.EnergyKWh
		}
		if soc < -1e-9 || soc > rp.BatteryKWh+1e-9 {
			return fmt.Errorf("step %d (%s): soc %.4f kWh out of [0, %.4f]", i, s.Label, soc, rp.BatteryKWh)
		}
	}
	return nil
}
