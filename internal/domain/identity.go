package domain

// Identity carries a user's long-term key material: an X25519 pair for
// Diffie-Hellman and an Ed25519 pair for signing pre-keys.
type Identity struct {
	Username string

	XPriv X25519Private
	XPub  X25519Public

	EdPriv Ed25519Private
	EdPub  Ed25519Public
}

// IdentityState is the serialisable snapshot of one local identity: the
// long-term keys plus every pre-key pair the identity still holds. It exists
// only to move an identity.Manager through an IdentityStore.
type IdentityState struct {
	Identity      Identity
	SignedPreKeys []SignedPreKeyPair
	CurrentSPKID  uint32
	NextSPKID     uint32
	OneTime       []OneTimePreKey
}
