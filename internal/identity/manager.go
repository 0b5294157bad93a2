package identity

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/katpercent/BlacKipher/internal/crypto"
	"github.com/katpercent/BlacKipher/internal/domain"
	"github.com/katpercent/BlacKipher/internal/util/memzero"
)

const (
	// DefaultOneTimeKeys is the size of the initial one-time pre-key batch.
	DefaultOneTimeKeys = 4

	// spkRetain caps how many rotated-out signed pre-keys are kept so that
	// in-flight messages addressed to them can still be decrypted.
	spkRetain = 3
)

// Manager holds one local identity and its pre-key material.
type Manager struct {
	mu sync.Mutex

	id      domain.Identity
	spks    []domain.SignedPreKeyPair // oldest first; last is current
	nextSPK uint32

	opks     map[string]domain.OneTimePreKey
	opkOrder []string // generation order, for stable advertisement
}

// Option configures New.
type Option func(*options)

type options struct{ oneTimeKeys int }

// WithOneTimeKeys sets the size of the initial one-time pre-key batch.
func WithOneTimeKeys(n int) Option {
	return func(o *options) { o.oneTimeKeys = n }
}

// New creates an identity for username: a fresh X25519/Ed25519 identity pair,
// one signed pre-key (signed immediately), and a batch of one-time pre-keys.
// Entropy failure surfaces as domain.ErrKeyGeneration and is fatal for the
// caller: nothing can proceed without key material.
func New(username string, opts ...Option) (*Manager, error) {
	o := options{oneTimeKeys: DefaultOneTimeKeys}
	for _, opt := range opts {
		opt(&o)
	}

	xPriv, xPub, err := crypto.GenerateX25519()
	if err != nil {
		return nil, err
	}
	edPriv, edPub, err := crypto.GenerateEd25519()
	if err != nil {
		return nil, err
	}

	m := &Manager{
		id: domain.Identity{
			Username: username,
			XPriv:    xPriv,
			XPub:     xPub,
			EdPriv:   edPriv,
			EdPub:    edPub,
		},
		nextSPK: 1,
		opks:    make(map[string]domain.OneTimePreKey, o.oneTimeKeys),
	}

	if _, err := m.rotateLocked(); err != nil {
		return nil, err
	}
	for i := 0; i < o.oneTimeKeys; i++ {
		if err := m.addOneTimeLocked(); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Restore rebuilds a Manager from a stored snapshot.
func Restore(st domain.IdentityState) *Manager {
	m := &Manager{
		id:      st.Identity,
		spks:    append([]domain.SignedPreKeyPair(nil), st.SignedPreKeys...),
		nextSPK: st.NextSPKID,
		opks:    make(map[string]domain.OneTimePreKey, len(st.OneTime)),
	}
	for _, k := range st.OneTime {
		m.opks[k.ID] = k
		m.opkOrder = append(m.opkOrder, k.ID)
	}
	return m
}

// Username returns the identity's user name.
func (m *Manager) Username() string { return m.id.Username }

// Fingerprint returns a short fingerprint of the identity exchange public.
func (m *Manager) Fingerprint() string { return crypto.Fingerprint(m.id.XPub.Slice()) }

// RotateSignedPreKey generates and signs a replacement signed pre-key and
// makes it the advertised one. The previous pre-keys stay available for
// in-flight messages until evicted from the retention ring.
func (m *Manager) RotateSignedPreKey() (domain.SignedPreKey, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.rotateLocked()
}

func (m *Manager) rotateLocked() (domain.SignedPreKey, error) {
	priv, pub, err := crypto.GenerateX25519()
	if err != nil {
		return domain.SignedPreKey{}, err
	}
	spk := domain.SignedPreKey{
		ID:        m.nextSPK,
		Key:       pub,
		Sig:       crypto.SignEd25519(m.id.EdPriv, pub.Slice()),
		CreatedAt: time.Now().Unix(),
	}
	m.nextSPK++
	m.spks = append(m.spks, domain.SignedPreKeyPair{SignedPreKey: spk, Priv: priv})

	// Evict beyond current + spkRetain predecessors.
	for len(m.spks) > spkRetain+1 {
		memzero.Zero(m.spks[0].Priv[:])
		m.spks = m.spks[1:]
	}
	return spk, nil
}

func (m *Manager) addOneTimeLocked() error {
	priv, pub, err := crypto.GenerateX25519()
	if err != nil {
		return err
	}
	k := domain.OneTimePreKey{ID: uuid.NewString(), Pub: pub, Priv: priv}
	m.opks[k.ID] = k
	m.opkOrder = append(m.opkOrder, k.ID)
	return nil
}

// ReplenishOneTimePreKeys generates n fresh one-time pre-keys.
func (m *Manager) ReplenishOneTimePreKeys(n int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := 0; i < n; i++ {
		if err := m.addOneTimeLocked(); err != nil {
			return err
		}
	}
	return nil
}

// TakeOneTimePreKey removes and returns the pre-key with the given ID. The
// removal is atomic: two concurrent agreements can never draw the same key.
// Absence is not an error; callers fall back to signed-pre-key-only
// agreement. The caller owns the returned private scalar and must wipe it
// after its single Diffie-Hellman use.
func (m *Manager) TakeOneTimePreKey(id string) (domain.OneTimePreKey, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	k, ok := m.opks[id]
	if !ok {
		return domain.OneTimePreKey{}, false
	}
	delete(m.opks, id)
	for i, oid := range m.opkOrder {
		if oid == id {
			m.opkOrder = append(m.opkOrder[:i], m.opkOrder[i+1:]...)
			break
		}
	}
	return k, true
}

// SignedPreKeyPair returns the pre-key pair with the given ID for the respond
// path. A rotated-out ID yields domain.ErrStalePreKey.
func (m *Manager) SignedPreKeyPair(id uint32) (domain.SignedPreKeyPair, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, p := range m.spks {
		if p.ID == id {
			return p, nil
		}
	}
	return domain.SignedPreKeyPair{}, fmt.Errorf("%w: signed pre-key %d", domain.ErrStalePreKey, id)
}

// PublicBundle assembles the material advertised to peers: identity publics,
// the current signed pre-key with signature, and the remaining one-time
// pre-key publics in generation order.
func (m *Manager) PublicBundle() domain.Bundle {
	m.mu.Lock()
	defer m.mu.Unlock()

	cur := m.spks[len(m.spks)-1]
	b := domain.Bundle{
		Username:    m.id.Username,
		IdentityKey: m.id.XPub,
		SigningKey:  m.id.EdPub,
		SignedPreKey: domain.SignedPreKey{
			ID:        cur.ID,
			Key:       cur.Key,
			Sig:       append([]byte(nil), cur.Sig...),
			CreatedAt: cur.CreatedAt,
		},
	}
	for _, id := range m.opkOrder {
		k := m.opks[id]
		b.OneTime = append(b.OneTime, domain.OneTimePreKeyPublic{ID: k.ID, Pub: k.Pub})
	}
	return b
}

// Snapshot captures the full state for persistence through an encrypted
// store. The snapshot contains private scalars; treat it accordingly.
func (m *Manager) Snapshot() domain.IdentityState {
	m.mu.Lock()
	defer m.mu.Unlock()

	st := domain.IdentityState{
		Identity:      m.id,
		SignedPreKeys: append([]domain.SignedPreKeyPair(nil), m.spks...),
		CurrentSPKID:  m.spks[len(m.spks)-1].ID,
		NextSPKID:     m.nextSPK,
	}
	for _, id := range m.opkOrder {
		st.OneTime = append(st.OneTime, m.opks[id])
	}
	return st
}

// Destroy irrecoverably wipes every private scalar held by the manager.
func (m *Manager) Destroy() {
	m.mu.Lock()
	defer m.mu.Unlock()

	memzero.Zero(m.id.XPriv[:])
	memzero.Zero(m.id.EdPriv[:])
	for i := range m.spks {
		memzero.Zero(m.spks[i].Priv[:])
	}
	m.spks = nil
	for id, k := range m.opks {
		memzero.Zero(k.Priv[:])
		delete(m.opks, id)
	}
	m.opkOrder = nil
}
