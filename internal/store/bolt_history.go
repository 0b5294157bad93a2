package store

import (
	"encoding/binary"
	"fmt"

	"github.com/fxamacker/cbor/v2"
	bolt "go.etcd.io/bbolt"

	"github.com/katpercent/BlacKipher/internal/domain"
)

// BoltHistoryStore persists exchange history in a single-file bbolt database.
// One bucket per (self, peer) pair; entries are CBOR-encoded and keyed by a
// big-endian append sequence, so bucket iteration yields insertion order.
type BoltHistoryStore struct {
	db *bolt.DB
}

// OpenBoltHistory opens (or creates) the history database at path.
func OpenBoltHistory(path string) (*BoltHistoryStore, error) {
	db, err := bolt.Open(path, 0o600, nil)
	if err != nil {
		return nil, fmt.Errorf("open history db: %w", err)
	}
	return &BoltHistoryStore{db: db}, nil
}

// Close releases the underlying database file.
func (s *BoltHistoryStore) Close() error { return s.db.Close() }

// Append records entry at the end of the (self, peer) history.
func (s *BoltHistoryStore) Append(self, peer string, entry domain.HistoryEntry) error {
	raw, err := cbor.Marshal(entry)
	if err != nil {
		return fmt.Errorf("encode history entry: %w", err)
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists(bucketName(self, peer))
		if err != nil {
			return err
		}
		seq, err := b.NextSequence()
		if err != nil {
			return err
		}
		var key [8]byte
		binary.BigEndian.PutUint64(key[:], seq)
		return b.Put(key[:], raw)
	})
}

// List returns the (self, peer) history in insertion order.
func (s *BoltHistoryStore) List(self, peer string) ([]domain.HistoryEntry, error) {
	var out []domain.HistoryEntry
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketName(self, peer))
		if b == nil {
			return nil
		}
		return b.ForEach(func(_, v []byte) error {
			var entry domain.HistoryEntry
			if err := cbor.Unmarshal(v, &entry); err != nil {
				return fmt.Errorf("decode history entry: %w", err)
			}
			out = append(out, entry)
			return nil
		})
	})
	return out, err
}

// Clear drops the (self, peer) history.
func (s *BoltHistoryStore) Clear(self, peer string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		err := tx.DeleteBucket(bucketName(self, peer))
		if err == bolt.ErrBucketNotFound {
			return nil
		}
		return err
	})
}

// bucketName joins the pair with a NUL so the mapping is unambiguous.
func bucketName(self, peer string) []byte {
	name := make([]byte, 0, len(self)+1+len(peer))
	name = append(name, self...)
	name = append(name, 0)
	name = append(name, peer...)
	return name
}

var _ domain.HistoryStore = (*BoltHistoryStore)(nil)
