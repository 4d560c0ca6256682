package store

import (
	"errors"
	"sync"

	"github.com/i474232898/weather-now/internal/presentation"
)

var (
	// ErrNotFound is returned before any screen has been published.
	ErrNotFound = errors.New("no screen published yet")
)

// MemoryStore is a concurrency-safe in-memory holder for the latest screen.
// Each Save replaces the previous screen; nothing is persisted.
type MemoryStore struct {
	mu     sync.RWMutex
	screen presentation.Screen
	saved  bool
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Save replaces the current screen.
func (s *MemoryStore) Save(screen presentation.Screen) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.screen = screen
	s.saved = true
}

// Latest returns the most recently saved screen.
func (s *MemoryStore) Latest() (presentation.Screen, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.saved {
		return presentation.Screen{}, ErrNotFound
	}
	return s.screen, nil
}
