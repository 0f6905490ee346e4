package cell

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"

	"cellmon/internal/chemistry"
)

func newTestGenerator(seed uint64) *Generator {
	return NewGenerator(rand.New(rand.NewPCG(seed, seed)))
}

func TestGenerateStaysWithinBounds(t *testing.T) {
	gen := newTestGenerator(1)

	for _, code := range []string{"lfp", "nmc", "lco", "lmo"} {
		profile := chemistry.Lookup(code)
		for i := 0; i < 500; i++ {
			r := gen.Generate(code)
			assert.GreaterOrEqual(t, r.Voltage, profile.MinVoltage, "code %s", code)
			assert.LessOrEqual(t, r.Voltage, profile.MaxVoltage, "code %s", code)
			assert.GreaterOrEqual(t, r.Current, -5.0)
			assert.LessOrEqual(t, r.Current, 5.0)
			assert.GreaterOrEqual(t, r.TemperatureC, 25.0)
			assert.LessOrEqual(t, r.TemperatureC, 45.0)
		}
	}
}

func TestGenerateDerivesCapacity(t *testing.T) {
	gen := newTestGenerator(2)

	for i := 0; i < 500; i++ {
		r := gen.Generate("lco")
		assert.GreaterOrEqual(t, r.Capacity, 0.0)
		assert.InDelta(t, round2(math.Abs(r.Voltage*r.Current)), r.Capacity, 1e-9)
	}
}

func TestGenerateRounding(t *testing.T) {
	gen := newTestGenerator(3)

	r := gen.Generate("nmc")
	assert.Equal(t, round2(r.Voltage), r.Voltage)
	assert.Equal(t, round2(r.Current), r.Current)
	assert.Equal(t, round1(r.TemperatureC), r.TemperatureC)
}

func TestGenerateCopiesProfileBounds(t *testing.T) {
	gen := newTestGenerator(4)

	r := gen.Generate("lfp")
	assert.Equal(t, 2.8, r.MinVoltage)
	assert.Equal(t, 3.6, r.MaxVoltage)
	assert.Equal(t, "#2E8B57", r.Color)
}

func TestGenerateUnknownCodeUsesDefaultProfile(t *testing.T) {
	gen := newTestGenerator(5)

	r := gen.Generate("xyz")
	assert.Equal(t, 3.2, r.MinVoltage)
	assert.Equal(t, 4.0, r.MaxVoltage)
}

func TestGenerateIsDeterministicPerSeed(t *testing.T) {
	a := newTestGenerator(42).Generate("nmc")
	b := newTestGenerator(42).Generate("nmc")
	assert.Equal(t, a, b)
}
