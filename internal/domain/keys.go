package domain

// ------------- X25519 -------------

type X25519Private [32]byte
type X25519Public [32]byte

func (k X25519Private) Slice() []byte { return k[:] }
func (k X25519Public) Slice() []byte  { return k[:] }

// ------------- Ed25519 -------------

type Ed25519Private [64]byte
type Ed25519Public [32]byte

func (k Ed25519Private) Slice() []byte { return k[:] }
func (k Ed25519Public) Slice() []byte  { return k[:] }

// ------------- Ephemeral -------------

// EphemeralKeyPair is a single-use exchange key pair generated fresh for each
// outgoing message. The private scalar must be wiped as soon as the
// Diffie-Hellman computation that consumes it has run.
type EphemeralKeyPair struct {
	Priv X25519Private
	Pub  X25519Public
}
