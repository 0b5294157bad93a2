package seal_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katpercent/BlacKipher/internal/crypto"
	"github.com/katpercent/BlacKipher/internal/domain"
	"github.com/katpercent/BlacKipher/internal/protocol/agreement"
	"github.com/katpercent/BlacKipher/internal/protocol/seal"
)

// sharedSecrets derives the same secret on both sides of a plain DH pairing.
func sharedSecrets(t *testing.T) (sender, receiver *agreement.Secret) {
	t.Helper()

	aPriv, aPub, err := crypto.GenerateX25519()
	require.NoError(t, err)
	bPriv, bPub, err := crypto.GenerateX25519()
	require.NoError(t, err)

	sender, err = agreement.Respond(aPriv, nil, bPub)
	require.NoError(t, err)
	receiver, err = agreement.Respond(bPriv, nil, aPub)
	require.NoError(t, err)
	require.Equal(t, sender.Bytes(), receiver.Bytes())
	return sender, receiver
}

func sealMessage(t *testing.T, secret *agreement.Secret, from, to string, plaintext []byte) domain.EncryptedMessage {
	t.Helper()
	nonce, ct, err := seal.Encrypt(secret, from, to, plaintext)
	require.NoError(t, err)
	return domain.EncryptedMessage{From: from, To: to, Nonce: nonce, Ciphertext: ct}
}

func TestEncryptDecrypt_RoundTrip(t *testing.T) {
	sender, receiver := sharedSecrets(t)
	defer sender.Destroy()
	defer receiver.Destroy()

	for _, plaintext := range []string{"", "hey", "a longer message with spaces and ünicode ✓"} {
		msg := sealMessage(t, sender, "alice", "bob", []byte(plaintext))
		got, err := seal.Decrypt(receiver, msg)
		require.NoError(t, err)
		require.Equal(t, plaintext, string(got))
	}
}

func TestDecrypt_BitFlips(t *testing.T) {
	sender, receiver := sharedSecrets(t)
	defer sender.Destroy()
	defer receiver.Destroy()

	msg := sealMessage(t, sender, "alice", "bob", []byte("hey"))

	// Any single-bit flip in the ciphertext must fail authentication.
	for i := range msg.Ciphertext {
		for bit := 0; bit < 8; bit++ {
			tampered := msg
			tampered.Ciphertext = append([]byte(nil), msg.Ciphertext...)
			tampered.Ciphertext[i] ^= 1 << bit
			_, err := seal.Decrypt(receiver, tampered)
			require.ErrorIs(t, err, domain.ErrDecryption)
		}
	}

	// Same for the nonce.
	for i := range msg.Nonce {
		tampered := msg
		tampered.Nonce[i] ^= 0x01
		_, err := seal.Decrypt(receiver, tampered)
		require.ErrorIs(t, err, domain.ErrDecryption)
	}
}

func TestDecrypt_AssociatedDataBindsPair(t *testing.T) {
	sender, receiver := sharedSecrets(t)
	defer sender.Destroy()
	defer receiver.Destroy()

	msg := sealMessage(t, sender, "alice", "bob", []byte("hey"))

	redirected := msg
	redirected.To = "carol"
	_, err := seal.Decrypt(receiver, redirected)
	require.True(t, errors.Is(err, domain.ErrDecryption))

	impersonated := msg
	impersonated.From = "mallory"
	_, err = seal.Decrypt(receiver, impersonated)
	require.True(t, errors.Is(err, domain.ErrDecryption))
}

func TestEncrypt_FreshNonces(t *testing.T) {
	sender, receiver := sharedSecrets(t)
	defer sender.Destroy()
	defer receiver.Destroy()

	a := sealMessage(t, sender, "alice", "bob", []byte("hey"))
	b := sealMessage(t, sender, "alice", "bob", []byte("hey"))
	require.NotEqual(t, a.Nonce, b.Nonce)
	require.NotEqual(t, a.Ciphertext, b.Ciphertext)
}

func TestDecrypt_WrongKey(t *testing.T) {
	sender, _ := sharedSecrets(t)
	other, _ := sharedSecrets(t)
	defer sender.Destroy()
	defer other.Destroy()

	msg := sealMessage(t, sender, "alice", "bob", []byte("hey"))
	_, err := seal.Decrypt(other, msg)
	require.ErrorIs(t, err, domain.ErrDecryption)
}
