package store

import (
	"context"
	"sync"

	"github.com/daniel-clain/Auto-Debater/internal/debate"
)

// Memory is an in-memory Store used by tests and as a stand-in when no
// database path is configured.
type Memory struct {
	mu        sync.RWMutex
	arguments map[string]debate.ArgumentRecord
	profiles  map[string]debate.RivalProfile
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		arguments: make(map[string]debate.ArgumentRecord),
		profiles:  make(map[string]debate.RivalProfile),
	}
}

// SaveArgument implements Store.
func (m *Memory) SaveArgument(_ context.Context, record debate.ArgumentRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.arguments[record.ID] = record
	return nil
}

// SaveRivalProfile implements Store.
func (m *Memory) SaveRivalProfile(_ context.Context, profile debate.RivalProfile) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.profiles[profile.Identifier] = profile
	return nil
}

// GetRivalProfile implements Store.
func (m *Memory) GetRivalProfile(_ context.Context, identifier string) (*debate.RivalProfile, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	profile, ok := m.profiles[identifier]
	if !ok {
		return nil, nil
	}
	copied := profile
	return &copied, nil
}

// Arguments returns all saved records, for test inspection.
func (m *Memory) Arguments() []debate.ArgumentRecord {
	m.mu.RLock()
	defer m.mu.RUnlock()
	records := make([]debate.ArgumentRecord, 0, len(m.arguments))
	for _, r := range m.arguments {
		records = append(records, r)
	}
	return records
}

// Close implements Store.
func (m *Memory) Close() error { return nil }
