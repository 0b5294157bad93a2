package contacts

import (
	"sort"
	"sync"

	"github.com/katpercent/BlacKipher/internal/domain"
)

// Book is an in-memory contact book. All methods are safe for concurrent use;
// readers see either the fully old or fully new record, never a partial
// write.
type Book struct {
	mu      sync.RWMutex
	records map[string]domain.ContactRecord
}

// NewBook returns an empty contact book.
func NewBook() *Book {
	return &Book{records: make(map[string]domain.ContactRecord)}
}

// NewBookFrom seeds a book with previously stored records.
func NewBookFrom(records map[string]domain.ContactRecord) *Book {
	b := NewBook()
	for peer, rec := range records {
		b.records[peer] = cloneRecord(rec)
	}
	return b
}

// LearnBundle stores or overwrites the record for peer from an advertised
// bundle. A fresher bundle fully replaces the old record, including the
// available one-time pre-key set.
func (b *Book) LearnBundle(peer string, bundle domain.Bundle) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.records[peer] = domain.RecordFromBundle(peer, bundle)
}

// Get returns a copy of the record for peer.
func (b *Book) Get(peer string) (domain.ContactRecord, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	rec, ok := b.records[peer]
	if !ok {
		return domain.ContactRecord{}, false
	}
	return cloneRecord(rec), true
}

// TakeOneTimePreKey pops the next advertised one-time pre-key public for
// peer, so a sender never targets the same one twice. An empty pool is the
// designed fallback to signed-pre-key-only agreement, not an error.
func (b *Book) TakeOneTimePreKey(peer string) (domain.OneTimePreKeyPublic, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	rec, ok := b.records[peer]
	if !ok || len(rec.OneTime) == 0 {
		return domain.OneTimePreKeyPublic{}, false
	}
	k := rec.OneTime[0]
	rec.OneTime = append([]domain.OneTimePreKeyPublic(nil), rec.OneTime[1:]...)
	b.records[peer] = rec
	return k, true
}

// Peers lists known peer identifiers, sorted.
func (b *Book) Peers() []string {
	b.mu.RLock()
	defer b.mu.RUnlock()

	out := make([]string, 0, len(b.records))
	for peer := range b.records {
		out = append(out, peer)
	}
	sort.Strings(out)
	return out
}

// Remove deletes the record for peer.
func (b *Book) Remove(peer string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.records, peer)
}

// Records returns a deep copy of every record, for persistence.
func (b *Book) Records() map[string]domain.ContactRecord {
	b.mu.RLock()
	defer b.mu.RUnlock()

	out := make(map[string]domain.ContactRecord, len(b.records))
	for peer, rec := range b.records {
		out[peer] = cloneRecord(rec)
	}
	return out
}

func cloneRecord(rec domain.ContactRecord) domain.ContactRecord {
	rec.SignedPreKey.Sig = append([]byte(nil), rec.SignedPreKey.Sig...)
	rec.OneTime = append([]domain.OneTimePreKeyPublic(nil), rec.OneTime...)
	return rec
}
