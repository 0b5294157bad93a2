package domain

// NonceSize is the AEAD nonce length in bytes (XChaCha20-Poly1305).
const NonceSize = 24

// EncryptedMessage is one sealed payload in flight between two identities.
// It carries only public values; it is immutable once created.
type EncryptedMessage struct {
	ID   string
	From string
	To   string

	// EphemeralKey is the sender's single-use exchange public.
	EphemeralKey X25519Public

	// SignedPreKeyID names which of the receiver's signed pre-keys the
	// agreement targeted; OneTimePreKeyID is empty when none was consumed.
	SignedPreKeyID  uint32
	OneTimePreKeyID string

	Nonce      [NonceSize]byte
	Ciphertext []byte

	SentAt int64
}

// Direction records which side of an exchange a history entry came from.
type Direction string

const (
	DirectionSent     Direction = "sent"
	DirectionReceived Direction = "received"
)

// HistoryEntry is one recorded exchange with a contact: the message itself,
// the locally known plaintext, and the rendered trace of the values involved.
type HistoryEntry struct {
	Message   EncryptedMessage
	Direction Direction
	Plaintext string
	Trace     string
}
