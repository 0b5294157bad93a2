package store_test

import (
	"fmt"
	"path/filepath"
	"testing"

	"github.com/katpercent/BlacKipher/internal/domain"
	"github.com/katpercent/BlacKipher/internal/store"
)

func openHistory(t *testing.T) *store.BoltHistoryStore {
	t.Helper()
	s, err := store.OpenBoltHistory(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("open history: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func entry(text string) domain.HistoryEntry {
	return domain.HistoryEntry{
		Message:   domain.EncryptedMessage{ID: text, From: "bob", To: "alice", Ciphertext: []byte(text)},
		Direction: domain.DirectionReceived,
		Plaintext: text,
		Trace:     "== log ==\n",
	}
}

func TestBoltHistory_AppendList_Order(t *testing.T) {
	s := openHistory(t)

	for i := 0; i < 20; i++ {
		if err := s.Append("alice", "bob", entry(fmt.Sprintf("m%02d", i))); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	got, err := s.List("alice", "bob")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 20 {
		t.Fatalf("want 20 entries, got %d", len(got))
	}
	for i, e := range got {
		if want := fmt.Sprintf("m%02d", i); e.Plaintext != want {
			t.Fatalf("entry %d out of order: got %q want %q", i, e.Plaintext, want)
		}
	}
}

func TestBoltHistory_PairsAreIsolated(t *testing.T) {
	s := openHistory(t)

	if err := s.Append("alice", "bob", entry("to bob")); err != nil {
		t.Fatalf("append: %v", err)
	}
	if err := s.Append("bob", "alice", entry("to alice")); err != nil {
		t.Fatalf("append: %v", err)
	}

	got, err := s.List("alice", "bob")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 1 || got[0].Plaintext != "to bob" {
		t.Fatal("pair histories bleed into each other")
	}
}

func TestBoltHistory_Clear(t *testing.T) {
	s := openHistory(t)

	if err := s.Append("alice", "bob", entry("m")); err != nil {
		t.Fatalf("append: %v", err)
	}
	if err := s.Clear("alice", "bob"); err != nil {
		t.Fatalf("clear: %v", err)
	}
	got, err := s.List("alice", "bob")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 0 {
		t.Fatal("history not cleared")
	}

	// Clearing an unknown pair is a no-op.
	if err := s.Clear("alice", "nobody"); err != nil {
		t.Fatalf("clear unknown pair: %v", err)
	}
}
