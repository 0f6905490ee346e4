package chemistry

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLookupOrdering(t *testing.T) {
	for _, code := range Codes() {
		p := Lookup(string(code))
		assert.Less(t, p.MinVoltage, p.NominalVoltage, "code %s", code)
		assert.Less(t, p.NominalVoltage, p.MaxVoltage, "code %s", code)
	}
}

func TestLookupCaseInsensitive(t *testing.T) {
	assert.Equal(t, Lookup("lfp"), Lookup("LFP"))
	assert.Equal(t, Lookup("lfp"), Lookup("  Lfp "))
}

func TestLookupUnknownFallsBackToNMC(t *testing.T) {
	p := Lookup("xyz")
	assert.Equal(t, NMC, p.Code)
	assert.Equal(t, 3.6, p.NominalVoltage)
	assert.Equal(t, 3.2, p.MinVoltage)
	assert.Equal(t, 4.0, p.MaxVoltage)

	assert.Equal(t, Lookup("nmc"), Lookup(""))
}

func TestKnown(t *testing.T) {
	assert.True(t, Known("LCO"))
	assert.True(t, Known("lmo"))
	assert.False(t, Known("xyz"))
	assert.False(t, Known(""))
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, LFP, Normalize(" LFP "))
	assert.Equal(t, NMC, Normalize("bogus"))
}
