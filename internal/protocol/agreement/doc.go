// Package agreement produces the shared secret for one direction of one
// message.
//
// # Overview
//
// The initiator verifies the peer's signed pre-key signature, then computes
// X25519 Diffie–Hellman between a fresh ephemeral private and the peer's
// signed pre-key public. When a one-time pre-key was selected, a second DH
// against its public is mixed in. The DH outputs are concatenated and run
// through HKDF-SHA256 to produce the 32-byte secret.
//
// The responder mirrors the computation with its own private scalars and the
// sender's ephemeral public, deriving a byte-identical secret.
//
// This mirrors X3DH's multi-DH combination but deliberately omits the
// long-term-identity cross terms: every message stands on an independent,
// fresh agreement.
//
// # Errors
//
// ErrSignatureVerification (from internal/domain) is returned when the signed
// pre-key does not verify; the caller aborts the send and never retries.
package agreement
