package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// DefaultThreshold is the alert threshold applied when a watch entry
// doesn't specify one.
const DefaultThreshold = 5.0

// Manager owns the session state file. All reads return copies; all
// writes go through explicit update operations and persist immediately.
type Manager struct {
	mu        sync.Mutex
	state     State
	stateFile string
	log       *logrus.Entry
}

// NewManager loads the session state from stateFile, creating a fresh
// default session when the file doesn't exist.
func NewManager(stateFile string) (*Manager, error) {
	m := &Manager{
		stateFile: stateFile,
		log:       logrus.WithField("component", "session"),
	}

	data, err := os.ReadFile(stateFile)
	switch {
	case err == nil:
		if err := json.Unmarshal(data, &m.state); err != nil {
			return nil, fmt.Errorf("parse session state: %w", err)
		}
	case os.IsNotExist(err):
		m.state = defaultState()
		if err := m.save(); err != nil {
			return nil, err
		}
		m.log.WithField("id", m.state.ID).Info("created new session")
	default:
		return nil, fmt.Errorf("read session state: %w", err)
	}

	if m.state.Watchlist == nil {
		m.state.Watchlist = make(map[string]float64)
	}
	return m, nil
}

func defaultState() State {
	return State{
		ID:         uuid.NewString(),
		Watchlist:  make(map[string]float64),
		Category:   "All",
		Comparison: []string{"BTC", "ETH", "SOL"},
		Globe: GlobeParams{
			AutoRotate:     true,
			RotateSpeed:    1.0,
			CameraDistance: 420,
			ExtraPoints:    150,
		},
		RefreshSec: 60,
		UpdatedAt:  time.Now(),
	}
}

// Snapshot returns an immutable copy of the current state.
func (m *Manager) Snapshot() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state.clone()
}

// AddWatch adds or updates a watchlist entry. A non-positive threshold
// falls back to DefaultThreshold.
func (m *Manager) AddWatch(symbol string, threshold float64) error {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if symbol == "" {
		return fmt.Errorf("empty watchlist symbol")
	}
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state.Watchlist[symbol] = threshold
	return m.save()
}

// RemoveWatch deletes a watchlist entry; removing an absent symbol is
// a no-op.
func (m *Manager) RemoveWatch(symbol string) error {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.state.Watchlist, symbol)
	return m.save()
}

// ClearWatchlist drops all watchlist entries.
func (m *Manager) ClearWatchlist() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state.Watchlist = make(map[string]float64)
	return m.save()
}

// SetCategory sets the asset category filter.
func (m *Manager) SetCategory(category string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state.Category = category
	return m.save()
}

// SetComparison sets the comparison symbol set.
func (m *Manager) SetComparison(symbols []string) error {
	cleaned := make([]string, 0, len(symbols))
	for _, s := range symbols {
		s = strings.ToUpper(strings.TrimSpace(s))
		if s != "" {
			cleaned = append(cleaned, s)
		}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state.Comparison = cleaned
	return m.save()
}

// SetGlobe sets the visualization parameters.
func (m *Manager) SetGlobe(p GlobeParams) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state.Globe = p
	return m.save()
}

// SetRefresh sets the refresh interval in seconds; non-positive values
// are rejected.
func (m *Manager) SetRefresh(sec int) error {
	if sec <= 0 {
		return fmt.Errorf("refresh interval must be positive")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state.RefreshSec = sec
	return m.save()
}

// save persists the state; callers hold the lock.
func (m *Manager) save() error {
	m.state.UpdatedAt = time.Now()
	data, err := json.MarshalIndent(m.state, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal session state: %w", err)
	}
	if dir := filepath.Dir(m.stateFile); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create state dir: %w", err)
		}
	}
	if err := os.WriteFile(m.stateFile, data, 0o644); err != nil {
		return fmt.Errorf("write session state: %w", err)
	}
	return nil
}
