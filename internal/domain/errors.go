package domain

import "errors"

var (
	// ErrKeyGeneration wraps a failure of the entropy source. There is no
	// degraded mode without fresh randomness, so callers abort the operation.
	ErrKeyGeneration = errors.New("key generation failed")

	// ErrSignatureVerification means a peer's signed pre-key did not verify
	// against their claimed identity key. The send is aborted, never retried.
	ErrSignatureVerification = errors.New("signed pre-key signature verification failed")

	// ErrStalePreKey means a message references a pre-key that is no longer
	// retained (rotated out, or a one-time pre-key already consumed).
	ErrStalePreKey = errors.New("pre-key no longer available")

	// ErrDecryption is an AEAD authentication failure: tampered, mis-keyed or
	// malformed input. Retrying with the same inputs cannot succeed.
	ErrDecryption = errors.New("decryption failed")

	// ErrUnknownContact means no bundle has been learned for the peer.
	ErrUnknownContact = errors.New("unknown contact")
)
