// Package identity owns one local user's long-term key material: the identity
// key pairs, the current signed pre-key (plus a short ring of rotated-out
// predecessors kept for in-flight messages), and the pool of one-time
// pre-keys.
//
// Private scalars never leave the Manager except through Snapshot, which
// exists solely to move the state through an encrypted store. Destroy wipes
// every private scalar.
package identity
