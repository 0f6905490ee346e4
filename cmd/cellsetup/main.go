package main

import (
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strings"

	"github.com/alexflint/go-arg"
	"github.com/chzyer/readline"
	"go.uber.org/zap"

	"cellmon/internal/cell"
	"cellmon/internal/export"
	"cellmon/internal/fleet"
)

type args struct {
	Count  int    `arg:"-c,--count" default:"8" help:"number of cells to configure (1-12)"`
	Output string `arg:"-o,--output" help:"write the generated readings to a .csv or .json file"`
	Seed   uint64 `arg:"--seed" help:"fixed random seed for reproducible readings"`
}

func (args) Description() string {
	return "cellsetup prompts for a battery cell roster and generates one reading per cell"
}

func main() {
	var a args
	arg.MustParse(&a)

	if a.Count < fleet.MinCells || a.Count > fleet.MaxCells {
		fmt.Fprintf(os.Stderr, "cell count must be between %d and %d\n", fleet.MinCells, fleet.MaxCells)
		os.Exit(1)
	}

	roster, err := promptRoster(a.Count)
	if err != nil {
		if isCleanExit(err) {
			return
		}
		fmt.Fprintf(os.Stderr, "setup failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("\nList of entered cell types: %s\n\n", strings.Join(roster, ", "))

	svc, err := fleet.New(newGenerator(a.Seed), roster, zap.NewNop())
	if err != nil {
		fmt.Fprintf(os.Stderr, "setup failed: %v\n", err)
		os.Exit(1)
	}
	snap := svc.Refresh()

	printTable(snap)

	if a.Output != "" {
		if err := writeOutput(a.Output, snap); err != nil {
			fmt.Fprintf(os.Stderr, "export failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("\nWrote %s\n", a.Output)
	}
}

func newGenerator(seed uint64) *cell.Generator {
	if seed == 0 {
		return cell.NewSeededGenerator()
	}
	return cell.NewGenerator(rand.New(rand.NewPCG(seed, seed)))
}

// isCleanExit reports whether the prompt loop ended by Ctrl+C or Ctrl+D
// rather than failing.
func isCleanExit(err error) bool {
	return errors.Is(err, readline.ErrInterrupt) || errors.Is(err, io.EOF)
}

// promptRoster collects one chemistry code per cell. Unknown codes are kept
// as entered; generation substitutes the default profile for them.
func promptRoster(count int) ([]string, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:      "> ",
		HistoryFile: historyFilePath(),
	})
	if err != nil {
		return nil, fmt.Errorf("readline init: %w", err)
	}
	defer rl.Close()

	roster := make([]string, 0, count)
	for i := 0; i < count; i++ {
		rl.SetPrompt(fmt.Sprintf("Enter your cell type #%d (e.g., lfp/nmc): ", i+1))
		line, err := rl.Readline()
		if err != nil {
			return nil, err
		}
		roster = append(roster, strings.ToLower(strings.TrimSpace(line)))
	}
	return roster, nil
}

func historyFilePath() string {
	cacheDir := os.Getenv("XDG_CACHE_HOME")
	if cacheDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		cacheDir = filepath.Join(home, ".cache")
	}
	dir := filepath.Join(cacheDir, "cellmon")
	_ = os.MkdirAll(dir, 0o750)
	return filepath.Join(dir, "cellsetup_history")
}

func printTable(snap *fleet.Snapshot) {
	fmt.Printf("%-14s %-6s %9s %9s %7s %9s %-9s\n", "CELL", "TYPE", "VOLTAGE", "CURRENT", "TEMP", "CAPACITY", "STATUS")
	for _, row := range export.Rows(snap) {
		fmt.Printf("%-14s %-6s %8.2fV %8.2fA %5.1fC %8.2fW %-9s\n",
			row.Cell, row.Type, row.Voltage, row.Current, row.Temperature, row.Capacity, row.Status)
	}

	agg := snap.Aggregates()
	fmt.Printf("\nTotal voltage %.2fV, total current %.2fA, total capacity %.2fW, average temp %.1fC\n",
		agg.TotalVoltage, agg.TotalCurrent, agg.TotalCapacity, agg.AverageTemperatureC)
	fmt.Printf("Status: %d normal, %d warning, %d critical\n",
		agg.NormalCount, agg.WarningCount, agg.CriticalCount)
}

func writeOutput(path string, snap *fleet.Snapshot) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	rows := export.Rows(snap)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return export.WriteCSV(f, rows)
	case ".json":
		return export.WriteJSON(f, rows)
	default:
		return fmt.Errorf("unsupported export extension %q (use .csv or .json)", filepath.Ext(path))
	}
}
