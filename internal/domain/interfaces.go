package domain

// IdentityStore persists one local identity's full state, encrypted under a
// passphrase.
type IdentityStore interface {
	SaveIdentity(passphrase string, state IdentityState) error
	LoadIdentity(passphrase string) (IdentityState, error)
}

// ContactStore persists the learned contact records. Contact records carry
// public material only, so implementations need not encrypt.
type ContactStore interface {
	SaveContacts(records map[string]ContactRecord) error
	LoadContacts() (map[string]ContactRecord, error)
}

// HistoryStore keeps the ordered exchange history per (self, peer) pair.
// Appends for the same pair are serialised by the implementation; List may be
// called concurrently with Append.
type HistoryStore interface {
	Append(self, peer string, entry HistoryEntry) error
	List(self, peer string) ([]HistoryEntry, error)
	Clear(self, peer string) error
}
