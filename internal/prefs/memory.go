package prefs

import (
	"context"
	"sync"
)

// Memory is an in-process Repository.
type Memory struct {
	mu    sync.Mutex
	prefs Preferences
	saves int
}

// NewMemory returns a Memory holding Defaults.
func NewMemory() *Memory {
	return &Memory{prefs: Defaults()}
}

// Load returns the stored preferences.
func (m *Memory) Load(context.Context) (Preferences, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.prefs, nil
}

// Save applies patch.
func (m *Memory) Save(_ context.Context, patch Patch) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.prefs = patch.Apply(m.prefs)
	m.saves++
	return nil
}

// Saves returns how many patches were applied.
func (m *Memory) Saves() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saves
}
