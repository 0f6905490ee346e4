package cell

import (
	crand "crypto/rand"
	"encoding/binary"
	"math/rand/v2"

	"cellmon/internal/chemistry"
)

// Sampling ranges for synthetic readings.
const (
	voltageJitter = 0.1  // volts, +/- around nominal
	currentLimit  = 5.0  // amps, +/- full range
	tempMin       = 25.0 // celsius
	tempMax       = 45.0
)

// Rand is the entropy source a Generator draws from. *rand.Rand from
// math/rand/v2 satisfies it; tests inject fixed-seed sources.
type Rand interface {
	Float64() float64
}

// Generator produces synthetic cell readings. Not safe for concurrent use:
// the underlying source is consumed sequentially by a single refresh pass.
type Generator struct {
	rng Rand
}

// NewGenerator builds a generator around an explicit random source.
func NewGenerator(rng Rand) *Generator {
	return &Generator{rng: rng}
}

// NewSeededGenerator builds a generator with a PCG source seeded from
// crypto-quality entropy.
func NewSeededGenerator() *Generator {
	var seed [16]byte
	_, _ = crand.Read(seed[:])
	s1 := binary.LittleEndian.Uint64(seed[:8])
	s2 := binary.LittleEndian.Uint64(seed[8:])
	return NewGenerator(rand.New(rand.NewPCG(s1, s2)))
}

// Generate produces one reading for the given chemistry code. Unknown codes
// resolve to the default profile, so generation never fails.
func (g *Generator) Generate(code string) Reading {
	profile := chemistry.Lookup(code)

	voltage := profile.NominalVoltage + g.uniform(-voltageJitter, voltageJitter)
	voltage = clamp(voltage, profile.MinVoltage, profile.MaxVoltage)

	current := round2(g.uniform(-currentLimit, currentLimit))
	temp := round1(g.uniform(tempMin, tempMax))
	voltage = round2(voltage)

	return Reading{
		Voltage:      voltage,
		Current:      current,
		TemperatureC: temp,
		Capacity:     round2(abs(voltage * current)),
		MinVoltage:   profile.MinVoltage,
		MaxVoltage:   profile.MaxVoltage,
		Color:        profile.DisplayColor,
	}
}

func (g *Generator) uniform(lo, hi float64) float64 {
	return lo + (hi-lo)*g.rng.Float64()
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
