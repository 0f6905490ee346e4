package fleet

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"cellmon/internal/cell"
	"cellmon/internal/chemistry"
)

// Roster size limits enforced at the service boundary; the core generator
// stays total regardless.
const (
	MinCells = 1
	MaxCells = 12
)

// Auto-refresh interval limits.
const (
	MinInterval = 1 * time.Second
	MaxInterval = 10 * time.Second
)

var (
	ErrRosterSize = fmt.Errorf("fleet: roster size must be between %d and %d cells", MinCells, MaxCells)
	ErrInterval   = fmt.Errorf("fleet: refresh interval must be between %s and %s", MinInterval, MaxInterval)
)

// Generator produces one reading per chemistry code.
type Generator interface {
	Generate(code string) cell.Reading
}

// Service owns the cell roster and the single snapshot slot. All state is one
// immutable Snapshot replaced wholesale under the writer lock; readers get
// whatever snapshot was last published.
type Service struct {
	gen    Generator
	logger *zap.Logger

	mu       sync.RWMutex
	roster   []chemistry.Code
	snapshot *Snapshot
	sequence uint64

	autoEnabled bool
	interval    time.Duration
	ticks       chan struct{} // wakes the Run loop after interval changes

	onPublish func(*Snapshot)
}

// New builds the service with the given roster. The roster is normalized the
// same way the generator would normalize it: unknown codes become NMC.
func New(gen Generator, roster []string, logger *zap.Logger) (*Service, error) {
	s := &Service{
		gen:      gen,
		logger:   logger,
		interval: 3 * time.Second,
		ticks:    make(chan struct{}, 1),
	}
	if err := s.setRoster(roster); err != nil {
		return nil, err
	}
	return s, nil
}

// OnPublish registers a callback invoked with every published snapshot.
// Must be set before Run.
func (s *Service) OnPublish(fn func(*Snapshot)) {
	s.onPublish = fn
}

// Refresh regenerates every reading in one ordered pass and swaps the
// snapshot. Generation cannot fail, so neither can a refresh. The publish
// callback runs under the writer lock so subscribers observe snapshots in
// sequence order; it must not call back into the service.
func (s *Service) Refresh() *Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sequence++
	snap := &Snapshot{
		Cells:    make([]CellState, 0, len(s.roster)),
		TakenAt:  time.Now().UTC(),
		Sequence: s.sequence,
	}
	for i, code := range s.roster {
		reading := s.gen.Generate(string(code))
		snap.Cells = append(snap.Cells, CellState{
			ID:        CellID(i+1, code),
			Chemistry: code,
			Reading:   reading,
			Status:    cell.Classify(reading),
		})
	}
	s.snapshot = snap

	if s.onPublish != nil {
		s.onPublish(snap)
	}
	return snap
}

// Snapshot returns the last published snapshot, refreshing first if none has
// been taken yet.
func (s *Service) Snapshot() *Snapshot {
	s.mu.RLock()
	snap := s.snapshot
	s.mu.RUnlock()
	if snap == nil {
		return s.Refresh()
	}
	return snap
}

// Roster returns the configured chemistry codes in order.
func (s *Service) Roster() []chemistry.Code {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]chemistry.Code, len(s.roster))
	copy(out, s.roster)
	return out
}

// SetRoster replaces the cell roster and publishes a fresh snapshot.
func (s *Service) SetRoster(codes []string) (*Snapshot, error) {
	if err := s.setRoster(codes); err != nil {
		return nil, err
	}
	return s.Refresh(), nil
}

func (s *Service) setRoster(codes []string) error {
	if len(codes) < MinCells || len(codes) > MaxCells {
		return ErrRosterSize
	}

	normalized := make([]chemistry.Code, 0, len(codes))
	for _, raw := range codes {
		if !chemistry.Known(raw) && s.logger != nil {
			s.logger.Warn("unknown chemistry code, substituting default",
				zap.String("code", raw),
				zap.String("default", string(chemistry.DefaultCode)))
		}
		normalized = append(normalized, chemistry.Normalize(raw))
	}

	s.mu.Lock()
	s.roster = normalized
	s.mu.Unlock()
	return nil
}

// SetAutoRefresh reconfigures the periodic refresh loop.
func (s *Service) SetAutoRefresh(enabled bool, interval time.Duration) error {
	if interval < MinInterval || interval > MaxInterval {
		return ErrInterval
	}
	s.mu.Lock()
	s.autoEnabled = enabled
	s.interval = interval
	s.mu.Unlock()

	select {
	case s.ticks <- struct{}{}:
	default:
	}
	return nil
}

// AutoRefresh reports the current loop configuration.
func (s *Service) AutoRefresh() (bool, time.Duration) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.autoEnabled, s.interval
}

// Run drives the periodic refresh loop until ctx is cancelled.
func (s *Service) Run(ctx context.Context) {
	for {
		_, interval := s.AutoRefresh()
		timer := time.NewTimer(interval)
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-s.ticks:
			timer.Stop()
			continue
		case <-timer.C:
		}

		enabled, _ := s.AutoRefresh()
		if !enabled {
			continue
		}
		snap := s.Refresh()
		s.logger.Debug("auto refresh pass complete",
			zap.Uint64("sequence", snap.Sequence),
			zap.Int("cells", len(snap.Cells)))
	}
}
