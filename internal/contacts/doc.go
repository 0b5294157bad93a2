// Package contacts stores learned peer bundles.
//
// Learning a bundle does not verify its signed pre-key signature; that check
// belongs to the agreement at use-time, so a stale or forged bundle can sit
// in the book but never produces a secret.
package contacts
