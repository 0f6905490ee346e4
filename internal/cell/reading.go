package cell

import "math"

// Reading is a single synthetic measurement of one cell. Readings are
// immutable once created; a refresh pass builds a fresh set and the old one is
// discarded wholesale.
type Reading struct {
	Voltage      float64 `json:"voltage"`
	Current      float64 `json:"current"`
	TemperatureC float64 `json:"temp"`
	// Capacity is a power-like proxy (|V*I|), not true amp-hour capacity.
	Capacity   float64 `json:"capacity"`
	MinVoltage float64 `json:"min_voltage"`
	MaxVoltage float64 `json:"max_voltage"`
	Color      string  `json:"color"`
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
