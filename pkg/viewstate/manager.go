package viewstate

import (
	"errors"
	"log/slog"
	"sync"

	"github.com/getmockd/roster/pkg/grid"
	"github.com/getmockd/roster/pkg/persist"
)

// Manager owns the live AppState and writes it through to a persist.Cell on
// every change. It is safe for concurrent use.
type Manager struct {
	mu     sync.RWMutex
	cell   *persist.Cell[AppState]
	state  AppState
	logger *slog.Logger
}

// NewManager reads the saved state once. Missing or unreadable state starts
// from Defaults; unreadable state is logged.
func NewManager(store persist.Store, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	cell := persist.NewCell[AppState](store, Key)
	state, err := cell.Get()
	if err != nil {
		if !errors.Is(err, persist.ErrNotFound) {
			logger.Warn("ignoring unreadable view state", "key", Key, "error", err)
		}
		state = Defaults()
	}
	return &Manager{
		cell:   cell,
		state:  state.normalized(),
		logger: logger,
	}
}

// State returns the current state.
func (m *Manager) State() AppState {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state
}

// Filters returns the current filters of v.
func (m *Manager) Filters(v View) ViewFilters {
	return m.State().Get(v)
}

// TopPerDepartment reports whether the honor grid shows one student per
// department.
func (m *Manager) TopPerDepartment() bool {
	return m.State().Honor.TopPerDepartment
}

// Sort sets the sort of v.
func (m *Manager) Sort(v View, key string, dir grid.Direction) error {
	return m.update(func(s AppState) AppState {
		return s.With(v, s.Get(v).WithSort(key, dir))
	})
}

// ClearSort returns the sort of v to its default.
func (m *Manager) ClearSort(v View) error {
	return m.update(func(s AppState) AppState {
		return s.WithClearedSort(v)
	})
}

// SetFilter sets or, for an empty value, removes one filter of v.
func (m *Manager) SetFilter(v View, key, value string) error {
	return m.update(func(s AppState) AppState {
		return s.With(v, s.Get(v).WithFilter(key, value))
	})
}

// ClearFilters removes every filter of v.
func (m *Manager) ClearFilters(v View) error {
	return m.update(func(s AppState) AppState {
		return s.With(v, s.Get(v).WithoutFilters())
	})
}

// ToggleTopPerDepartment flips the honor data source and returns the new
// setting.
func (m *Manager) ToggleTopPerDepartment() (bool, error) {
	err := m.update(func(s AppState) AppState {
		return s.ToggleTopPerDepartment()
	})
	return m.TopPerDepartment(), err
}

// SetTopPerDepartment sets the honor data source.
func (m *Manager) SetTopPerDepartment(on bool) error {
	return m.update(func(s AppState) AppState {
		s.Honor.TopPerDepartment = on
		return s
	})
}

// Reset restores v to its default filters and sort.
func (m *Manager) Reset(v View) error {
	return m.update(func(s AppState) AppState {
		return s.With(v, DefaultFor(v))
	})
}

// ResetAll restores every view to Defaults.
func (m *Manager) ResetAll() error {
	return m.update(func(AppState) AppState {
		return Defaults()
	})
}

// Intents adapts the manager to the intents a grid emits for v. Write
// failures are logged; the in-memory state is updated regardless.
func (m *Manager) Intents(v View) grid.Intents {
	return grid.Intents{
		OnSort: func(key string, dir grid.Direction) {
			m.logFailure(m.Sort(v, key, dir), v)
		},
		OnClearSort: func() {
			m.logFailure(m.ClearSort(v), v)
		},
		OnFilterChange: func(key, value string) {
			m.logFailure(m.SetFilter(v, key, value), v)
		},
	}
}

// update applies fn and writes the result through. The new state is kept
// even when the write fails so the session stays consistent.
func (m *Manager) update(fn func(AppState) AppState) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = fn(m.state)
	return m.cell.Set(m.state)
}

func (m *Manager) logFailure(err error, v View) {
	if err != nil {
		m.logger.Warn("failed to save view state", "view", string(v), "error", err)
	}
}
