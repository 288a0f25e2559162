// Package persistence stores the game: a save slot holding the whole state
// as one versioned JSON blob, and a table of month-end indicators.
package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/talgya/mayor-sim/internal/city"
)

// SaveKey is the fixed key the game is saved under.
const SaveKey = "mayor-sim-save"

// SaveVersion tags every save. Loads of any other version are refused.
const SaveVersion = "1.0"

var (
	// ErrNoSave means the store holds nothing under the key.
	ErrNoSave = errors.New("no saved game")
	// ErrVersionMismatch means the save was written by another version.
	ErrVersionMismatch = errors.New("save version mismatch")
)

// SaveStore is a key-value store for save blobs. Get returns ErrNoSave for
// a missing key.
type SaveStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Clear(ctx context.Context, key string) error
}

// Envelope is the serialised save.
type Envelope struct {
	State    *city.GameState `json:"state"`
	SaveDate string          `json:"saveDate"`
	Version  string          `json:"version"`
}

// SaveGame writes g under SaveKey stamped with now.
func SaveGame(ctx context.Context, s SaveStore, g *city.GameState, now time.Time) error {
	raw, err := json.Marshal(Envelope{
		State:    g,
		SaveDate: now.UTC().Format(time.RFC3339),
		Version:  SaveVersion,
	})
	if err != nil {
		return fmt.Errorf("encode save: %w", err)
	}
	if err := s.Set(ctx, SaveKey, raw); err != nil {
		return fmt.Errorf("write save: %w", err)
	}
	return nil
}

// LoadGame reads the save. It fails with ErrNoSave, ErrVersionMismatch or a
// decode error; there is no migration between versions.
func LoadGame(ctx context.Context, s SaveStore) (*city.GameState, error) {
	raw, err := s.Get(ctx, SaveKey)
	if err != nil {
		return nil, err
	}
	var env Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("decode save: %w", err)
	}
	if env.Version != SaveVersion {
		return nil, fmt.Errorf("%w: got %q, want %q", ErrVersionMismatch, env.Version, SaveVersion)
	}
	if env.State == nil {
		return nil, fmt.Errorf("decode save: %w", errors.New("empty state"))
	}
	env.State.Normalize()
	return env.State, nil
}

// ClearGame deletes the save.
func ClearGame(ctx context.Context, s SaveStore) error {
	if err := s.Clear(ctx, SaveKey); err != nil {
		return fmt.Errorf("clear save: %w", err)
	}
	return nil
}

// MemoryStore keeps saves in process memory.
type MemoryStore struct {
	mu   sync.Mutex
	data map[string][]byte
}

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string][]byte)}
}

func (m *MemoryStore) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	if !ok {
		return nil, ErrNoSave
	}
	return append([]byte(nil), v...), nil
}

func (m *MemoryStore) Set(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = append([]byte(nil), value...)
	return nil
}

func (m *MemoryStore) Clear(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}
