package fleet

import (
	"fmt"
	"strings"
	"time"

	"cellmon/internal/cell"
	"cellmon/internal/chemistry"
)

// CellState pairs one cell's reading with its identity and derived status.
type CellState struct {
	ID        string         `json:"id"`
	Chemistry chemistry.Code `json:"chemistry"`
	Reading   cell.Reading   `json:"reading"`
	Status    cell.Status    `json:"status"`
}

// Label renders the cell id for display, e.g. "Cell 3 LCO".
func (c CellState) Label() string {
	parts := strings.Split(c.ID, "_")
	if len(parts) != 3 {
		return c.ID
	}
	return fmt.Sprintf("Cell %s %s", parts[1], strings.ToUpper(parts[2]))
}

// Snapshot is one immutable view of the whole fleet. A refresh builds a new
// Snapshot and swaps it in; snapshots are never mutated after publication.
type Snapshot struct {
	Cells    []CellState `json:"cells"`
	TakenAt  time.Time   `json:"taken_at"`
	Sequence uint64      `json:"sequence"`
}

// Aggregates are the fleet-wide sums and averages shown on the overview.
type Aggregates struct {
	TotalVoltage        float64 `json:"total_voltage"`
	TotalCurrent        float64 `json:"total_current"`
	TotalCapacity       float64 `json:"total_capacity"`
	AverageTemperatureC float64 `json:"average_temp"`
	NormalCount         int     `json:"normal_count"`
	WarningCount        int     `json:"warning_count"`
	CriticalCount       int     `json:"critical_count"`
}

// Aggregates computes overview values for the snapshot.
func (s *Snapshot) Aggregates() Aggregates {
	var agg Aggregates
	for _, c := range s.Cells {
		agg.TotalVoltage += c.Reading.Voltage
		agg.TotalCurrent += c.Reading.Current
		agg.TotalCapacity += c.Reading.Capacity
		agg.AverageTemperatureC += c.Reading.TemperatureC

		switch c.Status {
		case cell.StatusNormal:
			agg.NormalCount++
		case cell.StatusWarning:
			agg.WarningCount++
		case cell.StatusCritical:
			agg.CriticalCount++
		}
	}
	if n := len(s.Cells); n > 0 {
		agg.AverageTemperatureC /= float64(n)
	}
	return agg
}

// CellID builds the canonical id for the cell at 1-based ordinal position.
func CellID(ordinal int, code chemistry.Code) string {
	return fmt.Sprintf("cell_%d_%s", ordinal, code)
}
