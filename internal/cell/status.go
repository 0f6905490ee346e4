package cell

// Status classifies a reading against its chemistry bounds.
type Status string

const (
	StatusNormal   Status = "normal"
	StatusWarning  Status = "warning"
	StatusCritical Status = "critical"
)

// Threshold multipliers. The critical band sits closer to the raw bounds than
// the warning band (1.05/0.95 vs 1.10/0.90), so the two bands overlap;
// evaluation order below resolves the overlap and must stay critical-first.
const (
	criticalLowFactor  = 1.05
	criticalHighFactor = 0.95
	warningLowFactor   = 1.10
	warningHighFactor  = 0.90

	criticalTempC = 40.0
	warningTempC  = 35.0
)

// Classify maps a reading to its status. Pure and memoryless: the result is a
// function of the current reading alone.
func Classify(r Reading) Status {
	switch {
	case r.Voltage < r.MinVoltage*criticalLowFactor,
		r.Voltage > r.MaxVoltage*criticalHighFactor,
		r.TemperatureC > criticalTempC:
		return StatusCritical
	case r.Voltage < r.MinVoltage*warningLowFactor,
		r.Voltage > r.MaxVoltage*warningHighFactor,
		r.TemperatureC > warningTempC:
		return StatusWarning
	default:
		return StatusNormal
	}
}
