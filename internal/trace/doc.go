// Package trace carries the structured record of every public cryptographic
// value involved in a send or receive, for pedagogical inspection.
//
// The core emits events; it never logs directly. Emitters render events
// however they like — the logrus emitter prints structured fields, Render
// produces the classic human-readable block. Events only ever carry public
// values and lengths; raw secrets and private scalars are never part of an
// event.
package trace
