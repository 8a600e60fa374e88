// Package state provides thread-safe state management for the application.
package state

import (
	"sync"
	"time"

	"github.com/litescript/ls-almanac/astro"
	"github.com/litescript/ls-almanac/internal/almanac"
)

// HistoryEntry is one computed report kept in the history buffer.
type HistoryEntry struct {
	Timestamp time.Time
	Report    *almanac.DayReport
}

// Config holds configuration for the state manager.
type Config struct {
	MaxHistoryLen     int
	RefreshInterval   time.Duration
	IncludeDeprecated bool
	InUTC             bool
}

// DefaultConfig returns sensible default configuration.
func DefaultConfig() Config {
	return Config{
		MaxHistoryLen:   120, // 2 hours at 1 recompute/min
		RefreshInterval: time.Minute,
	}
}

// Manager handles all shared application state with thread-safe access.
// Unlike a network-backed feed the almanac data never fails to arrive;
// recomputation only tracks the advancing clock and observer changes.
type Manager struct {
	mu sync.RWMutex

	observer astro.Observer

	// anchorDate pins the report to a fixed calendar day; zero means
	// follow the clock.
	anchorDate time.Time

	current         *almanac.DayReport
	lastCompute     time.Time
	lastError       error
	computeDuration time.Duration

	history       []HistoryEntry
	maxHistoryLen int

	refreshInterval   time.Duration
	includeDeprecated bool
	inUTC             bool
}

// NewManager creates a new state manager for the given observer.
func NewManager(cfg Config, obs astro.Observer) *Manager {
	maxHist := cfg.MaxHistoryLen
	if maxHist <= 0 {
		maxHist = 120
	}
	refresh := cfg.RefreshInterval
	if refresh <= 0 {
		refresh = time.Minute
	}
	return &Manager{
		observer:          obs,
		maxHistoryLen:     maxHist,
		refreshInterval:   refresh,
		includeDeprecated: cfg.IncludeDeprecated,
		inUTC:             cfg.InUTC,
	}
}

// SetObserver replaces the observer. The next recompute picks it up.
func (m *Manager) SetObserver(obs astro.Observer) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.observer = obs
}

// Observer returns the current observer.
func (m *Manager) Observer() astro.Observer {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.observer
}

// SetAnchorDate pins reports to a fixed day. A zero time unpins.
func (m *Manager) SetAnchorDate(t time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.anchorDate = t
}

// Recompute builds a fresh report for the current observer and updates
// the state. now selects the report day unless an anchor date is set.
func (m *Manager) Recompute(now time.Time) error {
	m.mu.Lock()
	obs := m.observer
	date := m.anchorDate
	opts := almanac.Options{IncludeDeprecated: m.includeDeprecated, InUTC: m.inUTC}
	m.mu.Unlock()

	if date.IsZero() {
		date = now
	}

	start := time.Now()
	report, err := almanac.BuildDayReport(obs, date, opts)
	elapsed := time.Since(start)

	m.mu.Lock()
	defer m.mu.Unlock()

	m.lastCompute = time.Now()
	m.lastError = err
	m.computeDuration = elapsed
	if err != nil {
		return err
	}

	m.current = report
	m.history = append(m.history, HistoryEntry{Timestamp: m.lastCompute, Report: report})
	if len(m.history) > m.maxHistoryLen {
		m.history = m.history[1:]
	}
	return nil
}

// Snapshot is an immutable view of the current state.
type Snapshot struct {
	Report          *almanac.DayReport
	Observer        astro.Observer
	LastCompute     time.Time
	LastError       error
	ComputeDuration time.Duration
	NextRefresh     time.Time
}

// Snapshot returns a consistent snapshot of current state.
func (m *Manager) Snapshot() Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return Snapshot{
		Report:          m.current,
		Observer:        m.observer,
		LastCompute:     m.lastCompute,
		LastError:       m.lastError,
		ComputeDuration: m.computeDuration,
		NextRefresh:     m.lastCompute.Add(m.refreshInterval),
	}
}

// History returns a copy of the report history, oldest first.
func (m *Manager) History() []HistoryEntry {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]HistoryEntry, len(m.history))
	copy(out, m.history)
	return out
}

// RefreshInterval returns the configured refresh interval.
func (m *Manager) RefreshInterval() time.Duration {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.refreshInterval
}

// SetRefreshInterval updates the refresh interval.
func (m *Manager) SetRefreshInterval(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.refreshInterval = d
}

// HasData reports whether at least one report has been computed.
func (m *Manager) HasData() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current != nil
}
