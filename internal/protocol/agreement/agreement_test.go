package agreement_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katpercent/BlacKipher/internal/crypto"
	"github.com/katpercent/BlacKipher/internal/domain"
	"github.com/katpercent/BlacKipher/internal/protocol/agreement"
)

// peerKeys is one side of an exchange: identity signing pair plus a signed
// pre-key pair.
type peerKeys struct {
	edPriv  domain.Ed25519Private
	record  domain.ContactRecord
	spkPriv domain.X25519Private
}

func makePeer(t *testing.T, name string) peerKeys {
	t.Helper()

	_, xPub, err := crypto.GenerateX25519()
	require.NoError(t, err)
	edPriv, edPub, err := crypto.GenerateEd25519()
	require.NoError(t, err)

	spkPriv, spkPub, err := crypto.GenerateX25519()
	require.NoError(t, err)

	return peerKeys{
		edPriv: edPriv,
		record: domain.ContactRecord{
			Peer:        name,
			IdentityKey: xPub,
			SigningKey:  edPub,
			SignedPreKey: domain.SignedPreKey{
				ID:  1,
				Key: spkPub,
				Sig: crypto.SignEd25519(edPriv, spkPub.Slice()),
			},
		},
		spkPriv: spkPriv,
	}
}

func makeEphemeral(t *testing.T) domain.EphemeralKeyPair {
	t.Helper()
	priv, pub, err := crypto.GenerateX25519()
	require.NoError(t, err)
	return domain.EphemeralKeyPair{Priv: priv, Pub: pub}
}

func TestInitiateRespond_NoOneTimePreKey(t *testing.T) {
	bob := makePeer(t, "bob")
	eph := makeEphemeral(t)

	initiated, err := agreement.Initiate(bob.record, &eph, nil)
	require.NoError(t, err)
	defer initiated.Destroy()

	responded, err := agreement.Respond(bob.spkPriv, nil, eph.Pub)
	require.NoError(t, err)
	defer responded.Destroy()

	require.Equal(t, initiated.Bytes(), responded.Bytes())
	require.Len(t, initiated.Bytes(), agreement.Size)
}

func TestInitiateRespond_WithOneTimePreKey(t *testing.T) {
	bob := makePeer(t, "bob")
	eph := makeEphemeral(t)

	opkPriv, opkPub, err := crypto.GenerateX25519()
	require.NoError(t, err)
	opk := domain.OneTimePreKeyPublic{ID: "opk-1", Pub: opkPub}

	initiated, err := agreement.Initiate(bob.record, &eph, &opk)
	require.NoError(t, err)
	defer initiated.Destroy()

	responded, err := agreement.Respond(bob.spkPriv, &opkPriv, eph.Pub)
	require.NoError(t, err)
	defer responded.Destroy()

	require.Equal(t, initiated.Bytes(), responded.Bytes())
}

func TestInitiateRespond_OneTimePreKeyChangesSecret(t *testing.T) {
	bob := makePeer(t, "bob")
	eph := makeEphemeral(t)
	ephCopy := eph

	_, opkPub, err := crypto.GenerateX25519()
	require.NoError(t, err)
	opk := domain.OneTimePreKeyPublic{ID: "opk-1", Pub: opkPub}

	withOPK, err := agreement.Initiate(bob.record, &eph, &opk)
	require.NoError(t, err)
	defer withOPK.Destroy()

	without, err := agreement.Initiate(bob.record, &ephCopy, nil)
	require.NoError(t, err)
	defer without.Destroy()

	require.NotEqual(t, withOPK.Bytes(), without.Bytes())
}

func TestInitiate_BadSignature(t *testing.T) {
	bob := makePeer(t, "bob")
	mallory := makePeer(t, "mallory")

	// Bob's pre-key carrying Mallory's signature must not verify.
	forged := bob.record
	forged.SignedPreKey.Sig = crypto.SignEd25519(mallory.edPriv, forged.SignedPreKey.Key.Slice())

	eph := makeEphemeral(t)
	_, err := agreement.Initiate(forged, &eph, nil)
	require.Error(t, err)
	require.True(t, errors.Is(err, domain.ErrSignatureVerification))
}

func TestInitiate_WipesEphemeralPrivate(t *testing.T) {
	bob := makePeer(t, "bob")
	eph := makeEphemeral(t)

	secret, err := agreement.Initiate(bob.record, &eph, nil)
	require.NoError(t, err)
	secret.Destroy()

	require.Equal(t, domain.X25519Private{}, eph.Priv)
}

func TestVerifySignedPreKey(t *testing.T) {
	bob := makePeer(t, "bob")
	require.True(t, agreement.VerifySignedPreKey(bob.record.SigningKey, bob.record.SignedPreKey))

	tampered := bob.record.SignedPreKey
	tampered.Key[0] ^= 1
	require.False(t, agreement.VerifySignedPreKey(bob.record.SigningKey, tampered))
}
