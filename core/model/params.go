package model

import "fmt"

// RobotParams describes the mobile robot's battery and drivetrain energy model.
type RobotParams struct {
	BatteryKWh    float64 `json:"battery_kwh" yaml:"battery_kwh"`         // total battery capacity
	SoCInit       float64 `json:"soc_init" yaml:"soc_init"`               // initial state of charge [0,1]
	SoCMin        float64 `json:"soc_min" yaml:"soc_min"`                 // minimum allowed state of charge [0,1]
	ChargePowerKW float64 `json:"charge_power_kw" yaml:"charge_power_kw"` // rated dock charging power
	ChargeEff     float64 `json:"charge_eff" yaml:"charge_eff"`           // fraction of drawn energy actually stored
	WhPerMeter    float64 `json:"wh_per_meter" yaml:"wh_per_meter"`       // travel energy model
}

// DefaultRobotParams returns the reference robot configuration.
func DefaultRobotParams() RobotParams {
	return RobotParams{
		BatteryKWh:    2.0,
		SoCInit:       0.8,
		SoCMin:        0.15,
		ChargePowerKW: 0.6,
		ChargeEff:     0.9,
		WhPerMeter:    0.5,
	}
}

// Validate checks that the robot configuration is sound.
func (p RobotParams) Validate() error {
	if p.BatteryKWh <= 0 {
		return fmt.Errorf("battery capacity must be positive")
	}
	if p.ChargeEff <= 0 || p.ChargeEff > 1 {
		return fmt.Errorf("charge efficiency must be in (0,1]")
	}
	if p.SoCMin < 0 || p.SoCInit < p.SoCMin || p.SoCInit > 1 {
		return fmt.Errorf("soc bounds must satisfy 0 <= soc_min <= soc_init <= 1")
	}
	if p.ChargePowerKW < 0 {
		return fmt.Errorf("charge power must be non-negative")
	}
	return nil
}

// MicrogridParams describes the microgrid's PV array, stationary battery and
// simulation time step.
type MicrogridParams struct {
	DTHours         float64 `json:"dt_hours" yaml:"dt_hours"` // simulation step width
	PVRatedKW       float64 `json:"pv_rated_kw" yaml:"pv_rated_kw"`
	PVEff           float64 `json:"pv_eff" yaml:"pv_eff"` // simple derate applied to the PV profile
	BattCapacityKWh float64 `json:"batt_capacity_kwh" yaml:"batt_capacity_kwh"`
	BattPMaxKW      float64 `json:"batt_pmax_kw" yaml:"batt_pmax_kw"` // charge/discharge power limit
	BattEff         float64 `json:"batt_eff" yaml:"batt_eff"`
	SoCInit         float64 `json:"soc_init" yaml:"soc_init"`
	SoCMin          float64 `json:"soc_min" yaml:"soc_min"`
	SoCMax          float64 `json:"soc_max" yaml:"soc_max"`
}

// DefaultMicrogridParams returns the reference microgrid configuration
// (15 minute steps).
func DefaultMicrogridParams() MicrogridParams {
	return MicrogridParams{
		DTHours:         0.25,
		PVRatedKW:       30.0,
		PVEff:           0.95,
		BattCapacityKWh: 60.0,
		BattPMaxKW:      25.0,
		BattEff:         0.95,
		SoCInit:         0.5,
		SoCMin:          0.1,
		SoCMax:          0.95,
	}
}

// Validate checks that the microgrid configuration is sound.
func (p MicrogridParams) Validate() error {
	if p.DTHours <= 0 {
		return fmt.Errorf("dt_hours must be positive")
	}
	if p.BattCapacityKWh <= 0 {
		return fmt.Errorf("battery capacity must be positive")
	}
	if p.BattEff <= 0 || p.BattEff > 1 {
		return fmt.Errorf("battery efficiency must be in (0,1]")
	}
	if p.SoCMin < 0 || p.SoCInit < p.SoCMin || p.SoCMax < p.SoCInit || p.SoCMax > 1 {
		return fmt.Errorf("soc bounds must satisfy 0 <= soc_min <= soc_init <= soc_max <= 1")
	}
	if p.BattPMaxKW < 0 || p.PVRatedKW < 0 {
		return fmt.Errorf("power ratings must be non-negative")
	}
	return nil
}
