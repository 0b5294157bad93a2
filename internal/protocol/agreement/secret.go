package agreement

import (
	"crypto/sha256"
	"io"

	"golang.org/x/crypto/hkdf"

	"github.com/katpercent/BlacKipher/internal/util/memzero"
)

// Size is the shared secret length in bytes.
const Size = 32

// combineInfo is the HKDF info string binding secrets to this protocol.
var combineInfo = []byte("blackipher agreement v1")

// Secret is a derived shared secret. Callers must Destroy it when the
// encryption or decryption that consumes it has finished.
type Secret struct {
	b [Size]byte
}

// Bytes exposes the raw secret for key derivation. The returned slice aliases
// the secret's storage and becomes invalid after Destroy.
func (s *Secret) Bytes() []byte { return s.b[:] }

// Len reports the secret length; safe to log, unlike the bytes themselves.
func (s *Secret) Len() int { return Size }

// Destroy wipes the secret's storage.
func (s *Secret) Destroy() { memzero.Zero(s.b[:]) }

// combine concatenates the DH outputs and stretches them with HKDF-SHA256,
// wiping the inputs and the transcript on the way out.
func combine(parts ...[32]byte) *Secret {
	ikm := make([]byte, 0, 32*len(parts))
	for i := range parts {
		ikm = append(ikm, parts[i][:]...)
	}
	s := new(Secret)
	r := hkdf.New(sha256.New, ikm, nil, combineInfo)
	if _, err := io.ReadFull(r, s.b[:]); err != nil {
		// hkdf.Reader cannot fail for a 32-byte read.
		panic(err)
	}
	memzero.Zero(ikm)
	for i := range parts {
		memzero.Zero(parts[i][:])
	}
	return s
}
