package store

import (
	"sync"

	"github.com/katpercent/BlacKipher/internal/domain"
)

// MemoryHistoryStore keeps histories in memory. Used by tests and the
// in-process demo, where nothing should touch disk.
type MemoryHistoryStore struct {
	mu      sync.RWMutex
	entries map[string][]domain.HistoryEntry
}

// NewMemoryHistory returns an empty in-memory history store.
func NewMemoryHistory() *MemoryHistoryStore {
	return &MemoryHistoryStore{entries: make(map[string][]domain.HistoryEntry)}
}

func (s *MemoryHistoryStore) Append(self, peer string, entry domain.HistoryEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	k := self + "\x00" + peer
	s.entries[k] = append(s.entries[k], entry)
	return nil
}

func (s *MemoryHistoryStore) List(self, peer string) ([]domain.HistoryEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.HistoryEntry(nil), s.entries[self+"\x00"+peer]...), nil
}

func (s *MemoryHistoryStore) Clear(self, peer string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, self+"\x00"+peer)
	return nil
}

var _ domain.HistoryStore = (*MemoryHistoryStore)(nil)
