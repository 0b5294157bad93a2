package crypto

import (
	"crypto/rand"
	"fmt"
	"io"

	"github.com/katpercent/BlacKipher/internal/domain"
)

// RandomNonce fills a fresh 24-byte AEAD nonce from the secure random source.
// Nonce uniqueness per derived key rests on this length and source; there is
// no counter state.
func RandomNonce() (n [domain.NonceSize]byte, err error) {
	if _, err = io.ReadFull(rand.Reader, n[:]); err != nil {
		err = fmt.Errorf("%w: %v", domain.ErrKeyGeneration, err)
	}
	return
}
