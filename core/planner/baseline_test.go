package planner

import (
	"math"
	"reflect"
	"testing"

	"github.com/maelh/robogrid/core/model"
)

func TestBaselineNoChargeWhenEnergySufficient(t *testing.T) {
	rp := model.DefaultRobotParams()
	tasks := []model.Task{
		{Name: "inspect_A", DistanceM: 220, DeadlineH: 6.0, DurationH: 0.25},
		{Name: "inspect_B", DistanceM: 480, DeadlineH: 10.0, DurationH: 0.35},
	}
	plan := BaselinePlanner{}.Plan(tasks, rp, nil, nil, 0.25)
	if err := plan.Validate(rp); err != nil {
		t.Fatalf("invalid plan: %v", err)
	}
	for _, s := range plan.Steps {
		if s.Kind == model.StepCharge {
			t.Fatalf("unexpected charge step %q", s.Label)
		}
	}
	// Tasks run back to back from 0 with no releases set.
	if plan.Steps[0].StartH != 0 || plan.Steps[0].Kind != model.StepTask {
		t.Fatalf("first step should be a task at 0, got %+v", plan.Steps[0])
	}
	if got := plan.EndH(); math.Abs(got-0.6) > 1e-9 {
		t.Fatalf("expected plan end 0.6h, got %v", got)
	}
}

func TestBaselineWaitsForRelease(t *testing.T) {
	rp := model.DefaultRobotParams()
	tasks := []model.Task{{Name: "late", DistanceM: 100, ReleaseH: 2.0, DeadlineH: 5.0, DurationH: 0.5}}
	plan := BaselinePlanner{}.Plan(tasks, rp, nil, nil, 0.25)
	if len(plan.Steps) != 2 {
		t.Fatalf("expected idle+task, got %d steps", len(plan.Steps))
	}
	idle := plan.Steps[0]
	if idle.Kind != model.StepIdle || idle.StartH != 0 || idle.EndH != 2.0 {
		t.Fatalf("bad idle step %+v", idle)
	}
	if plan.Steps[1].StartH != 2.0 {
		t.Fatalf("task should start at release, got %v", plan.Steps[1].StartH)
	}
}

func TestBaselineChargesBeforeDepletingTask(t *testing.T) {
	rp := model.RobotParams{
		BatteryKWh:    1.0,
		SoCInit:       0.5,
		SoCMin:        0.2,
		ChargePowerKW: 0.6,
		ChargeEff:     0.9,
		WhPerMeter:    0.5,
	}
	tasks := []model.Task{{Name: "haul", DistanceM: 1000, DeadlineH: 8.0, DurationH: 0.5}}
	plan := BaselinePlanner{}.Plan(tasks, rp, nil, nil, 0.25)

	if len(plan.Steps) != 2 {
		t.Fatalf("expected charge+task, got %d steps", len(plan.Steps))
	}
	charge := plan.Steps[0]
	if charge.Kind != model.StepCharge {
		t.Fatalf("expected charge first, got %v", charge.Kind)
	}
	// Top up to 80% of capacity: 0.8 - 0.5 = 0.3 kWh drawn.
	if math.Abs(charge.EnergyKWh-0.3) > 1e-9 {
		t.Fatalf("expected 0.3 kWh charge, got %v", charge.EnergyKWh)
	}
	wantDur := 0.3 / (0.6 * 0.9)
	if math.Abs(charge.DurationH()-wantDur) > 1e-9 {
		t.Fatalf("expected charge duration %v, got %v", wantDur, charge.DurationH())
	}
	if err := plan.Validate(rp); err != nil {
		t.Fatalf("invalid plan: %v", err)
	}
}

func TestBaselineDeterministic(t *testing.T) {
	rp := model.DefaultRobotParams()
	tasks := []model.Task{
		{Name: "a", DistanceM: 400, ReleaseH: 1, DeadlineH: 4, DurationH: 0.5},
		{Name: "b", DistanceM: 900, ReleaseH: 3, DeadlineH: 8, DurationH: 0.4},
	}
	p1 := BaselinePlanner{}.Plan(tasks, rp, nil, nil, 0.25)
	p2 := BaselinePlanner{}.Plan(tasks, rp, nil, nil, 0.25)
	if !reflect.DeepEqual(p1, p2) {
		t.Fatalf("plans differ across runs")
	}
}
