// Package seal turns an agreed shared secret into an authenticated message
// envelope.
//
// A fixed-length symmetric key is derived from the secret with HKDF-SHA256,
// then XChaCha20-Poly1305 seals the plaintext under a fresh random 24-byte
// nonce. The sender and receiver identifiers are bound as associated data, so
// an envelope replayed between a different pair fails authentication.
//
// Decrypt failures surface as domain.ErrDecryption and are never retried:
// the same inputs cannot suddenly authenticate.
package seal
