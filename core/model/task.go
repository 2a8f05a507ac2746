package model

// taskOverheadKWh is a fixed per-task energy overhead covering sensing and
// actuation on site, independent of travel distance.
const taskOverheadKWh = 0.02

// Task is a single deadline-bound mission task. ReleaseH is the earliest
// start time in hours from mission start; it is always set, defaulting to 0.
type Task struct {
	Name      string  `json:"name" yaml:"name"`
	DistanceM float64 `json:"distance_m" yaml:"distance_m"`
	ReleaseH  float64 `json:"release_h" yaml:"release_h"`
	DeadlineH float64 `json:"deadline_h" yaml:"deadline_h"`
	DurationH float64 `json:"duration_h" yaml:"duration_h"`
}

// EnergyKWh returns the robot energy required to complete the task: travel
// energy from the distance model plus the fixed overhead. The value is fully
// determined by the task and robot parameters.
func (t Task) EnergyKWh(rp RobotParams) float64 {
	return t.DistanceM*rp.WhPerMeter/1000.0 + taskOverheadKWh
}

// LatestStartH returns the latest start time that still meets the deadline.
func (t Task) LatestStartH() float64 {
	return t.DeadlineH - t.DurationH
}
