// Package app wires the core components for one local identity: the stores
// under the home directory, the identity manager, the contact book, and the
// session service. The CLI talks to App; it never touches key material
// directly.
package app
