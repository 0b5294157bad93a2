// Package store provides persistence for BlacKipher's core data.
//
// It contains concrete implementations of the domain storage interfaces:
//
//   - FileStore: identity state encrypted under a passphrase-derived key,
//     and contact records as plain JSON (public material only).
//   - BoltHistoryStore: per-contact message history in a bbolt database,
//     entries CBOR-encoded and keyed by append sequence.
//   - MemoryHistoryStore: in-memory history for tests and the in-process
//     demo.
//
// All methods are concurrency-safe via internal locking. Stored files
// typically live under the user's configured home directory.
package store
