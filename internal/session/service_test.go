package session_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katpercent/BlacKipher/internal/contacts"
	"github.com/katpercent/BlacKipher/internal/domain"
	"github.com/katpercent/BlacKipher/internal/identity"
	"github.com/katpercent/BlacKipher/internal/session"
	"github.com/katpercent/BlacKipher/internal/store"
)

// pair builds two wired services whose identities know each other's bundles.
func pair(t *testing.T, aliceOPKs, bobOPKs int) (alice, bob *session.Service) {
	t.Helper()

	aliceMgr, err := identity.New("alice", identity.WithOneTimeKeys(aliceOPKs))
	require.NoError(t, err)
	t.Cleanup(aliceMgr.Destroy)
	bobMgr, err := identity.New("bob", identity.WithOneTimeKeys(bobOPKs))
	require.NoError(t, err)
	t.Cleanup(bobMgr.Destroy)

	aliceBook, bobBook := contacts.NewBook(), contacts.NewBook()
	aliceBook.LearnBundle("bob", bobMgr.PublicBundle())
	bobBook.LearnBundle("alice", aliceMgr.PublicBundle())

	hist := store.NewMemoryHistory()
	alice = session.New(aliceMgr, aliceBook, hist, nil)
	bob = session.New(bobMgr, bobBook, hist, nil)
	return alice, bob
}

// The end-to-end scenario: identity A advertises 1 signed pre-key and 2
// one-time pre-keys; B learns the bundle, sends "hey" consuming one one-time
// pre-key; A decrypts it; the consumed pre-key is gone on both sides.
func TestSendReceive_ConsumesOneTimePreKey(t *testing.T) {
	alice, bob := pair(t, 2, 0)

	msg, err := bob.Send("alice", []byte("hey"))
	require.NoError(t, err)
	require.NotEmpty(t, msg.OneTimePreKeyID, "first send should draw a one-time pre-key")

	plaintext, err := alice.Receive(msg)
	require.NoError(t, err)
	assert.Equal(t, "hey", string(plaintext))

	// Consumed on the receiver.
	_, ok := alice.Self().TakeOneTimePreKey(msg.OneTimePreKeyID)
	assert.False(t, ok)
	assert.Len(t, alice.Self().PublicBundle().OneTime, 1)

	// And no longer targeted by the sender.
	rec, _ := bob.Contacts().Get("alice")
	assert.Len(t, rec.OneTime, 1)
	assert.NotEqual(t, msg.OneTimePreKeyID, rec.OneTime[0].ID)
}

func TestSend_FallsBackWhenPoolExhausted(t *testing.T) {
	alice, bob := pair(t, 1, 0)

	first, err := bob.Send("alice", []byte("one"))
	require.NoError(t, err)
	require.NotEmpty(t, first.OneTimePreKeyID)

	second, err := bob.Send("alice", []byte("two"))
	require.NoError(t, err)
	assert.Empty(t, second.OneTimePreKeyID, "exhausted pool falls back to SPK-only")

	for _, msg := range []domain.EncryptedMessage{first, second} {
		_, err := alice.Receive(msg)
		require.NoError(t, err)
	}
}

func TestReceive_ReplayedOneTimePreKeyFails(t *testing.T) {
	alice, bob := pair(t, 1, 0)

	msg, err := bob.Send("alice", []byte("hey"))
	require.NoError(t, err)

	_, err = alice.Receive(msg)
	require.NoError(t, err)

	_, err = alice.Receive(msg)
	require.True(t, errors.Is(err, domain.ErrStalePreKey))
}

func TestReceive_RotatedOutPreKeyFails(t *testing.T) {
	alice, bob := pair(t, 0, 0)

	// Bob still holds Alice's original bundle while she rotates far enough to
	// evict its signed pre-key.
	for i := 0; i < 4; i++ {
		_, err := alice.Self().RotateSignedPreKey()
		require.NoError(t, err)
	}

	msg, err := bob.Send("alice", []byte("late"))
	require.NoError(t, err)

	_, err = alice.Receive(msg)
	require.True(t, errors.Is(err, domain.ErrStalePreKey))
}

func TestReceive_RetainedOldPreKeyStillDecrypts(t *testing.T) {
	alice, bob := pair(t, 0, 0)

	// One rotation: the pre-key Bob targets stays in the retention ring.
	_, err := alice.Self().RotateSignedPreKey()
	require.NoError(t, err)

	msg, err := bob.Send("alice", []byte("in flight"))
	require.NoError(t, err)

	plaintext, err := alice.Receive(msg)
	require.NoError(t, err)
	assert.Equal(t, "in flight", string(plaintext))
}

func TestSend_UnknownContact(t *testing.T) {
	alice, _ := pair(t, 0, 0)

	_, err := alice.Send("nobody", []byte("hey"))
	require.True(t, errors.Is(err, domain.ErrUnknownContact))
}

func TestReceive_TamperedMessageFails(t *testing.T) {
	alice, bob := pair(t, 0, 0)

	msg, err := bob.Send("alice", []byte("hey"))
	require.NoError(t, err)

	msg.Ciphertext[0] ^= 0x01
	_, err = alice.Receive(msg)
	require.True(t, errors.Is(err, domain.ErrDecryption))
}

func TestHistory_OrderAndDirections(t *testing.T) {
	alice, bob := pair(t, 2, 2)

	m1, err := bob.Send("alice", []byte("hey"))
	require.NoError(t, err)
	_, err = alice.Receive(m1)
	require.NoError(t, err)

	m2, err := alice.Send("bob", []byte("hi yourself"))
	require.NoError(t, err)
	_, err = bob.Receive(m2)
	require.NoError(t, err)

	got, err := alice.History("bob")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, domain.DirectionReceived, got[0].Direction)
	assert.Equal(t, "hey", got[0].Plaintext)
	assert.Equal(t, domain.DirectionSent, got[1].Direction)
	assert.Equal(t, "hi yourself", got[1].Plaintext)

	// Traces record the exchange for inspection.
	assert.Contains(t, got[1].Trace, "Verify(peer.SPK signed by peer.ID) = true")

	require.NoError(t, alice.ClearHistory("bob"))
	got, err = alice.History("bob")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestSend_EachMessageFreshEphemeral(t *testing.T) {
	_, bob := pair(t, 0, 0)

	m1, err := bob.Send("alice", []byte("one"))
	require.NoError(t, err)
	m2, err := bob.Send("alice", []byte("two"))
	require.NoError(t, err)

	assert.NotEqual(t, m1.EphemeralKey, m2.EphemeralKey)
	assert.NotEqual(t, m1.Nonce, m2.Nonce)
}
