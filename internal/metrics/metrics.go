package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"cellmon/internal/cell"
	"cellmon/internal/fleet"
)

var (
	cellVoltage = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "cellmon_cell_voltage_volts",
			Help: "Last sampled voltage per cell.",
		},
		[]string{"cell", "chemistry"},
	)
	cellCurrent = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "cellmon_cell_current_amps",
			Help: "Last sampled current per cell. Negative values indicate charging.",
		},
		[]string{"cell", "chemistry"},
	)
	cellTemperature = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "cellmon_cell_temperature_celsius",
			Help: "Last sampled temperature per cell.",
		},
		[]string{"cell", "chemistry"},
	)
	cellCapacity = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "cellmon_cell_capacity_watts",
			Help: "Power-like capacity proxy (|V*I|) per cell.",
		},
		[]string{"cell", "chemistry"},
	)
	cellStatusLevel = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "cellmon_cell_status_level",
			Help: "Status per cell: 0 normal, 1 warning, 2 critical.",
		},
		[]string{"cell", "chemistry"},
	)
	refreshesTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "cellmon_refreshes_total",
			Help: "Number of completed refresh passes.",
		},
	)
)

// Register installs collectors on the default registry. Call once at startup.
func Register() {
	prometheus.MustRegister(cellVoltage, cellCurrent, cellTemperature, cellCapacity, cellStatusLevel, refreshesTotal)
}

// Handler exposes the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}

// Observe records one published snapshot. Gauges are reset first so cells
// removed by a roster change stop being exported.
func Observe(snap *fleet.Snapshot) {
	cellVoltage.Reset()
	cellCurrent.Reset()
	cellTemperature.Reset()
	cellCapacity.Reset()
	cellStatusLevel.Reset()

	for _, c := range snap.Cells {
		labels := prometheus.Labels{"cell": c.ID, "chemistry": string(c.Chemistry)}
		cellVoltage.With(labels).Set(c.Reading.Voltage)
		cellCurrent.With(labels).Set(c.Reading.Current)
		cellTemperature.With(labels).Set(c.Reading.TemperatureC)
		cellCapacity.With(labels).Set(c.Reading.Capacity)
		cellStatusLevel.With(labels).Set(statusLevel(c.Status))
	}
	refreshesTotal.Inc()
}

func statusLevel(s cell.Status) float64 {
	switch s {
	case cell.StatusWarning:
		return 1
	case cell.StatusCritical:
		return 2
	default:
		return 0
	}
}
