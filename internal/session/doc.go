// Package session orchestrates the full pipeline for one local identity:
// contact lookup, ephemeral key generation, pre-key agreement, sealing, and
// history recording, with a trace event emitted for every exchange.
//
// Each Send or Receive is one synchronous unit of work. Nothing here blocks
// on network I/O; the only blocking is the in-memory locks of the identity
// manager, the contact book and the per-peer history append.
package session
