package domain

// SignedPreKey is the public half of a medium-term exchange key, signed with
// the owner's Ed25519 identity key so peers can check ownership before use.
type SignedPreKey struct {
	ID        uint32
	Key       X25519Public
	Sig       []byte
	CreatedAt int64
}

// SignedPreKeyPair adds the private scalar. It never leaves the owning
// identity manager or its encrypted store.
type SignedPreKeyPair struct {
	SignedPreKey
	Priv X25519Private
}

// OneTimePreKey is a single-use exchange pair. Once selected for an agreement
// it is removed from the pool and its private scalar is wiped.
type OneTimePreKey struct {
	ID   string
	Pub  X25519Public
	Priv X25519Private
}

// OneTimePreKeyPublic is the advertised half of a one-time pre-key.
type OneTimePreKeyPublic struct {
	ID  string
	Pub X25519Public
}

// Bundle is the public material an identity advertises to peers: identity
// publics, the current signed pre-key with its signature, and the remaining
// one-time pre-key publics in generation order.
type Bundle struct {
	Username     string
	IdentityKey  X25519Public
	SigningKey   Ed25519Public
	SignedPreKey SignedPreKey
	OneTime      []OneTimePreKeyPublic
}
