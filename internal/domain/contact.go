package domain

// ContactRecord is everything we currently know about a peer: their public
// identity keys, their advertised signed pre-key with its signature, and the
// one-time pre-key publics still available for sends to them.
//
// The record holds public material only. Whether the signed pre-key signature
// is valid is checked at agreement time, not at storage time, so a stale or
// forged bundle can be stored but never used.
type ContactRecord struct {
	Peer         string
	IdentityKey  X25519Public
	SigningKey   Ed25519Public
	SignedPreKey SignedPreKey
	OneTime      []OneTimePreKeyPublic
}

// RecordFromBundle builds a contact record from an advertised bundle.
func RecordFromBundle(peer string, b Bundle) ContactRecord {
	return ContactRecord{
		Peer:         peer,
		IdentityKey:  b.IdentityKey,
		SigningKey:   b.SigningKey,
		SignedPreKey: b.SignedPreKey,
		OneTime:      append([]OneTimePreKeyPublic(nil), b.OneTime...),
	}
}
