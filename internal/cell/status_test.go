package cell

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func lfpReading(voltage, temp float64) Reading {
	return Reading{Voltage: voltage, TemperatureC: temp, MinVoltage: 2.8, MaxVoltage: 3.6}
}

func TestClassify(t *testing.T) {
	cases := []struct {
		name    string
		reading Reading
		want    Status
	}{
		{"midband is normal", Reading{Voltage: 3.6, TemperatureC: 30, MinVoltage: 3.2, MaxVoltage: 4.0}, StatusNormal},
		{"low voltage inside warning band", lfpReading(3.00, 30), StatusWarning},
		{"temperature overrides voltage warning", lfpReading(3.00, 41), StatusCritical},
		{"voltage under critical floor", lfpReading(2.90, 30), StatusCritical},
		{"voltage well under critical floor", lfpReading(2.85, 30), StatusCritical},
		{"voltage over critical ceiling", lfpReading(3.55, 30), StatusCritical},
		{"voltage over warning ceiling only", lfpReading(3.30, 30), StatusWarning},
		{"warm cell is warning", lfpReading(3.20, 36), StatusWarning},
		{"hot cell is critical", lfpReading(3.20, 40.1), StatusCritical},
		{"boundary temp 35 still normal", lfpReading(3.20, 35), StatusNormal},
		{"boundary temp 40 still warning", lfpReading(3.20, 40), StatusWarning},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Classify(tc.reading))
		})
	}
}

// The warning band is wider than the critical band, so both conditions can
// hold at once; critical must win.
func TestClassifyCriticalTakesPrecedence(t *testing.T) {
	r := lfpReading(2.85, 30) // 2.85 < 2.8*1.05=2.94 and 2.85 < 2.8*1.10=3.08
	assert.Equal(t, StatusCritical, Classify(r))

	r = lfpReading(3.20, 41) // temp critical and temp warning both hold
	assert.Equal(t, StatusCritical, Classify(r))
}
