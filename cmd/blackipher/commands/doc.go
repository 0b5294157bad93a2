// Package commands implements the blackipher CLI.
//
// Identity and contact state live under the home directory (default
// ~/.blackipher), the identity file encrypted under the passphrase given with
// -p. Bundles and message envelopes are exchanged as CBOR files, standing in
// for the pre-key distribution service this simulation deliberately lacks.
package commands
