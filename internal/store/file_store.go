package store

import (
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/scrypt"

	"github.com/katpercent/BlacKipher/internal/domain"
	"github.com/katpercent/BlacKipher/internal/util/memzero"
)

const (
	identityFile = "identity.enc"
	contactsFile = "contacts.json"

	saltBytes = 16
)

// ErrNoIdentity is returned when no identity has been created yet.
var ErrNoIdentity = errors.New("no identity stored; run init first")

// FileStore keeps the local identity (encrypted) and the contact book
// (plain JSON, public material) under one directory.
type FileStore struct {
	dir string
	mu  sync.Mutex
}

// NewFileStore returns a FileStore rooted at dir.
func NewFileStore(dir string) *FileStore { return &FileStore{dir: dir} }

// SaveIdentity serialises state and writes it encrypted under a key derived
// from the passphrase with scrypt. Blob layout: salt(16) || nonce(24) || ct.
func (s *FileStore) SaveIdentity(passphrase string, state domain.IdentityState) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := json.Marshal(state)
	if err != nil {
		return err
	}
	defer memzero.Zero(raw)

	salt := make([]byte, saltBytes)
	if _, err := rand.Read(salt); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrKeyGeneration, err)
	}
	kek, err := deriveKEK(passphrase, salt)
	if err != nil {
		return err
	}
	defer memzero.Zero(kek)

	aead, err := chacha20poly1305.NewX(kek)
	if err != nil {
		return err
	}
	nonce := make([]byte, chacha20poly1305.NonceSizeX)
	if _, err := rand.Read(nonce); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrKeyGeneration, err)
	}

	blob := make([]byte, 0, saltBytes+len(nonce)+len(raw)+aead.Overhead())
	blob = append(blob, salt...)
	blob = append(blob, nonce...)
	blob = aead.Seal(blob, nonce, raw, nil)

	return writeFile(filepath.Join(s.dir, identityFile), blob, 0o600)
}

// LoadIdentity decrypts and returns the stored identity state.
func (s *FileStore) LoadIdentity(passphrase string) (domain.IdentityState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	blob, err := os.ReadFile(filepath.Join(s.dir, identityFile))
	if errors.Is(err, os.ErrNotExist) {
		return domain.IdentityState{}, ErrNoIdentity
	}
	if err != nil {
		return domain.IdentityState{}, err
	}
	if len(blob) < saltBytes+chacha20poly1305.NonceSizeX {
		return domain.IdentityState{}, errors.New("identity file truncated")
	}

	salt := blob[:saltBytes]
	nonce := blob[saltBytes : saltBytes+chacha20poly1305.NonceSizeX]
	ct := blob[saltBytes+chacha20poly1305.NonceSizeX:]

	kek, err := deriveKEK(passphrase, salt)
	if err != nil {
		return domain.IdentityState{}, err
	}
	defer memzero.Zero(kek)

	aead, err := chacha20poly1305.NewX(kek)
	if err != nil {
		return domain.IdentityState{}, err
	}
	raw, err := aead.Open(nil, nonce, ct, nil)
	if err != nil {
		return domain.IdentityState{}, fmt.Errorf("open identity file: %w", err)
	}
	defer memzero.Zero(raw)

	var state domain.IdentityState
	if err := json.Unmarshal(raw, &state); err != nil {
		return domain.IdentityState{}, err
	}
	return state, nil
}

// SaveContacts writes the contact records as plain JSON.
func (s *FileStore) SaveContacts(records map[string]domain.ContactRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return writeJSON(filepath.Join(s.dir, contactsFile), records, 0o600)
}

// LoadContacts reads the stored contact records; a missing file yields an
// empty map.
func (s *FileStore) LoadContacts() (map[string]domain.ContactRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	records := map[string]domain.ContactRecord{}
	if err := readJSON(filepath.Join(s.dir, contactsFile), &records); err != nil {
		return nil, err
	}
	return records, nil
}

func deriveKEK(passphrase string, salt []byte) ([]byte, error) {
	return scrypt.Key([]byte(passphrase), salt, 1<<15, 8, 1, chacha20poly1305.KeySize)
}

var (
	_ domain.IdentityStore = (*FileStore)(nil)
	_ domain.ContactStore  = (*FileStore)(nil)
)
