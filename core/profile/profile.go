// Package profile produces the exogenous time series consumed by planning
// and dispatch: a synthetic PV generation profile and a time-of-use
// electricity price profile. Both are aligned to a model.TimeGrid and are
// deterministic placeholders until real irradiance and tariff feeds are
// plugged in.
package profile

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/maelh/robogrid/core/model"
)

// Time-of-use tariff tiers in $/kWh.
const (
	PriceOffPeak = 0.14
	PriceMid     = 0.20
	PricePeak    = 0.30
)

// Solar returns a normalized PV profile in [0,1] with a smooth bell shape
// between sunrise and sunset, zero otherwise. A degenerate daylight window
// yields an all-zero profile rather than a division fault.
func Solar(grid model.TimeGrid, sunriseH, sunsetH float64) model.Signal {
	prof := make(model.Signal, grid.N)
	span := math.Max(sunsetH-sunriseH, 1e-6)
	for i := range prof {
		t := float64(i) * grid.DTHours
		if t < sunriseH || t > sunsetH {
			continue
		}
		x := (t - sunriseH) / span * math.Pi
		prof[i] = math.Pow(math.Sin(x), 1.5)
	}
	return prof
}

// PVPower scales a normalized solar profile by the microgrid's rated PV
// power and derate factor.
func PVPower(norm model.Signal, mg model.MicrogridParams) model.Signal {
	out := make(model.Signal, len(norm))
	for i, v := range norm {
		out[i] = v * mg.PVRatedKW * mg.PVEff
	}
	return out
}

// PriceTOU returns a three-tier time-of-use price profile: mid-day rate
// from 7h to 16h, peak rate from 16h to 21h, off-peak otherwise.
func PriceTOU(grid model.TimeGrid) model.Signal {
	p := make(model.Signal, grid.N)
	for i := range p {
		t := float64(i) * grid.DTHours
		switch {
		case t >= 16 && t < 21:
			p[i] = PricePeak
		case t >= 7 && t < 16:
			p[i] = PriceMid
		default:
			p[i] = PriceOffPeak
		}
	}
	return p
}

// Normalize scales s to [0,1] by its maximum. An all-zero signal stays
// all-zero.
func Normalize(s model.Signal) model.Signal {
	out := make(model.Signal, len(s))
	if len(s) == 0 {
		return out
	}
	max := floats.Max(s)
	denom := max + 1e-9
	for i, v := range s {
		out[i] = v / denom
	}
	return out
}

// Span returns max(s) - min(s), floored to a small positive epsilon so
// callers can divide by it safely.
func Span(s model.Signal) float64 {
	if len(s) == 0 {
		return 1e-9
	}
	return math.Max(floats.Max(s)-floats.Min(s), 1e-9)
}
