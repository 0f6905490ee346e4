// Package export flattens a fleet snapshot into the row shape offered for
// download: cell label, chemistry type, voltage, current, temperature,
// capacity, status.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"cellmon/internal/fleet"
)

// Row is one flattened cell record.
type Row struct {
	Cell        string  `json:"Cell"`
	Type        string  `json:"Type"`
	Voltage     float64 `json:"Voltage"`
	Current     float64 `json:"Current"`
	Temperature float64 `json:"Temperature"`
	Capacity    float64 `json:"Capacity"`
	Status      string  `json:"Status"`
}

// Rows flattens the snapshot preserving cell order.
func Rows(snap *fleet.Snapshot) []Row {
	rows := make([]Row, 0, len(snap.Cells))
	for _, c := range snap.Cells {
		rows = append(rows, Row{
			Cell:        c.Label(),
			Type:        strings.ToUpper(string(c.Chemistry)),
			Voltage:     c.Reading.Voltage,
			Current:     c.Reading.Current,
			Temperature: c.Reading.TemperatureC,
			Capacity:    c.Reading.Capacity,
			Status:      string(c.Status),
		})
	}
	return rows
}

// WriteCSV writes rows with a header line.
func WriteCSV(w io.Writer, rows []Row) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"Cell", "Type", "Voltage", "Current", "Temperature", "Capacity", "Status"}); err != nil {
		return fmt.Errorf("export: write csv header: %w", err)
	}
	for _, r := range rows {
		record := []string{
			r.Cell,
			r.Type,
			formatFloat(r.Voltage),
			formatFloat(r.Current),
			formatFloat(r.Temperature),
			formatFloat(r.Capacity),
			r.Status,
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("export: write csv row: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("export: flush csv: %w", err)
	}
	return nil
}

// WriteJSON writes rows as an indented JSON array.
func WriteJSON(w io.Writer, rows []Row) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(rows); err != nil {
		return fmt.Errorf("export: encode json: %w", err)
	}
	return nil
}

// Filename builds the timestamped download name, e.g.
// battery_data_20240101_120000.csv.
func Filename(ext string, now time.Time) string {
	return fmt.Sprintf("battery_data_%s.%s", now.Format("20060102_150405"), strings.TrimPrefix(ext, "."))
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
