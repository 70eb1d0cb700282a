// Package storage persists the one object that must survive a restart:
// AgentState. Every write goes to a temp file in the same
// directory, fsynced, then renamed over the real path, so a crash mid-write
// never leaves a truncated or partially-written state file behind.
package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/oracle-trading/oracle/internal/domain"
)

// StateStore owns the on-disk AgentState file and the in-memory copy the
// rest of the agent reads through Current.
type StateStore struct {
	path  string
	mu    sync.RWMutex
	state domain.AgentState
}

// LoadOrCreate reads the AgentState at path, or seeds a fresh one (from
// initialBankroll) if the file does not yet exist.
func LoadOrCreate(path string, initialBankroll func() domain.AgentState) (*StateStore, error) {
	s := &StateStore{path: path}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		s.state = initialBankroll()
		if err := s.save(); err != nil {
			return nil, fmt.Errorf("storage: seed initial state: %w", err)
		}
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: read state file: %w", err)
	}

	var state domain.AgentState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("storage: parse state file: %w", err)
	}
	s.state = state
	return s, nil
}

// Current returns a copy of the currently held AgentState.
func (s *StateStore) Current() domain.AgentState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Save replaces the held state and persists it atomically.
func (s *StateStore) Save(state domain.AgentState) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = state
	return s.save()
}

// save writes s.state to s.path via a staged temp file, fsync, then
// rename. Caller must hold s.mu.
func (s *StateStore) save() error {
	data, err := json.MarshalIndent(s.state, "", "  ")
	if err != nil {
		return fmt.Errorf("storage: marshal state: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("storage: create state directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".agent_state-*.tmp")
	if err != nil {
		return fmt.Errorf("storage: create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath) // no-op once the rename below succeeds

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("storage: write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("storage: sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("storage: close temp file: %w", err)
	}

	if err := os.Rename(tmpPath, s.path); err != nil {
		return fmt.Errorf("storage: rename temp file into place: %w", err)
	}
	return nil
}
