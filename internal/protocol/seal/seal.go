package seal

import (
	"crypto/cipher"
	"crypto/sha256"
	"fmt"
	"io"

	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/hkdf"

	"github.com/katpercent/BlacKipher/internal/crypto"
	"github.com/katpercent/BlacKipher/internal/domain"
	"github.com/katpercent/BlacKipher/internal/protocol/agreement"
	"github.com/katpercent/BlacKipher/internal/util/memzero"
)

// NonceSize is the XChaCha20-Poly1305 nonce length (24 bytes).
const NonceSize = chacha20poly1305.NonceSizeX

var keyInfo = []byte("blackipher message key v1")

// Encrypt seals plaintext under a key derived from secret, binding the
// sender and receiver identifiers as associated data.
func Encrypt(
	secret *agreement.Secret,
	from, to string,
	plaintext []byte,
) (nonce [NonceSize]byte, ciphertext []byte, err error) {
	aead, err := newAEAD(secret)
	if err != nil {
		return nonce, nil, err
	}
	nonce, err = crypto.RandomNonce()
	if err != nil {
		return nonce, nil, err
	}
	ciphertext = aead.Seal(nil, nonce[:], plaintext, associatedData(from, to))
	return nonce, ciphertext, nil
}

// Decrypt opens msg with the key derived from secret. Any authentication
// failure, whatever the underlying cause, surfaces as domain.ErrDecryption.
func Decrypt(secret *agreement.Secret, msg domain.EncryptedMessage) ([]byte, error) {
	aead, err := newAEAD(secret)
	if err != nil {
		return nil, err
	}
	pt, err := aead.Open(nil, msg.Nonce[:], msg.Ciphertext, associatedData(msg.From, msg.To))
	if err != nil {
		return nil, fmt.Errorf("%w: %s -> %s", domain.ErrDecryption, msg.From, msg.To)
	}
	return pt, nil
}

func newAEAD(secret *agreement.Secret) (cipher.AEAD, error) {
	key := make([]byte, chacha20poly1305.KeySize)
	defer memzero.Zero(key)

	r := hkdf.New(sha256.New, secret.Bytes(), nil, keyInfo)
	if _, err := io.ReadFull(r, key); err != nil {
		return nil, err
	}
	return chacha20poly1305.NewX(key)
}

// associatedData binds the directed pair to the ciphertext. The NUL separator
// keeps ("ab","c") and ("a","bc") distinct.
func associatedData(from, to string) []byte {
	ad := make([]byte, 0, len(from)+1+len(to))
	ad = append(ad, from...)
	ad = append(ad, 0)
	ad = append(ad, to...)
	return ad
}
