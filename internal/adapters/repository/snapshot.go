package repository

import (
	"context"
	"sync"

	"github.com/placarvendas/placar/internal/domain/model"
)

// SnapshotStore implements Store with an RWMutex-guarded in-memory
// snapshot. The ranking is recomputed wholesale each cycle, so state is a
// plain replace-on-write holder rather than an incremental structure.
type SnapshotStore struct {
	mu           sync.RWMutex
	activeWindow string
	brokers      []model.Broker
	sales        []model.Sale
	entries      []model.Entry
}

// NewSnapshotStore creates an empty SnapshotStore.
func NewSnapshotStore() *SnapshotStore {
	return &SnapshotStore{}
}

// SetActiveWindow records the consumer's current window selection.
func (s *SnapshotStore) SetActiveWindow(_ context.Context, key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.activeWindow = key
}

// ActiveWindow returns the current window selection.
func (s *SnapshotStore) ActiveWindow(_ context.Context) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.activeWindow
}

// ApplyBrokers replaces the roster snapshot.
func (s *SnapshotStore) ApplyBrokers(_ context.Context, brokers []model.Broker) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.brokers = cloneSlice(brokers)
}

// ApplySales replaces the sale snapshot when windowKey is still the active
// selection; a result for a superseded window is dropped.
func (s *SnapshotStore) ApplySales(_ context.Context, windowKey string, sales []model.Sale) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if windowKey != s.activeWindow {
		return false
	}
	s.sales = cloneSlice(sales)
	return true
}

// ApplyEntries replaces the ranking snapshot when windowKey is still active.
func (s *SnapshotStore) ApplyEntries(_ context.Context, windowKey string, entries []model.Entry) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if windowKey != s.activeWindow {
		return false
	}
	s.entries = cloneSlice(entries)
	return true
}

// Brokers returns a copy of the roster snapshot.
func (s *SnapshotStore) Brokers(_ context.Context) []model.Broker {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneSlice(s.brokers)
}

// Sales returns a copy of the sale snapshot.
func (s *SnapshotStore) Sales(_ context.Context) []model.Sale {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneSlice(s.sales)
}

// Entries returns a copy of the ranking snapshot.
func (s *SnapshotStore) Entries(_ context.Context) []model.Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneSlice(s.entries)
}

func cloneSlice[T any](in []T) []T {
	if in == nil {
		return nil
	}
	out := make([]T, len(in))
	copy(out, in)
	return out
}
