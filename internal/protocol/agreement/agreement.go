package agreement

import (
	"fmt"

	"github.com/katpercent/BlacKipher/internal/crypto"
	"github.com/katpercent/BlacKipher/internal/domain"
	"github.com/katpercent/BlacKipher/internal/util/memzero"
)

// VerifySignedPreKey checks that spk was signed by the identity holding pub.
func VerifySignedPreKey(pub domain.Ed25519Public, spk domain.SignedPreKey) bool {
	return crypto.VerifyEd25519(pub, spk.Key.Slice(), spk.Sig)
}

// Initiate derives the shared secret for one outgoing message.
//
// The peer's signed pre-key signature is verified first; an invalid signature
// aborts with domain.ErrSignatureVerification. The ephemeral private scalar is
// wiped before return on every path, success or failure.
func Initiate(
	rec domain.ContactRecord,
	eph *domain.EphemeralKeyPair,
	opk *domain.OneTimePreKeyPublic,
) (*Secret, error) {
	defer memzero.Zero(eph.Priv[:])

	if !VerifySignedPreKey(rec.SigningKey, rec.SignedPreKey) {
		return nil, fmt.Errorf("%w: peer %s", domain.ErrSignatureVerification, rec.Peer)
	}

	dh1, err := crypto.DH(eph.Priv, rec.SignedPreKey.Key) // DH(EK, peer.SPK)
	if err != nil {
		return nil, err
	}
	if opk == nil {
		return combine(dh1), nil
	}

	dh2, err := crypto.DH(eph.Priv, opk.Pub) // DH(EK, peer.OPK)
	if err != nil {
		memzero.Zero(dh1[:])
		return nil, err
	}
	return combine(dh1, dh2), nil
}

// Respond mirrors Initiate on the receiving side, using the receiver's signed
// pre-key private and, when the message consumed one, the matching one-time
// pre-key private. Given the matching pairing it derives a byte-identical
// secret.
func Respond(
	spkPriv domain.X25519Private,
	opkPriv *domain.X25519Private,
	peerEph domain.X25519Public,
) (*Secret, error) {
	dh1, err := crypto.DH(spkPriv, peerEph) // DH(SPK, sender.EK)
	if err != nil {
		return nil, err
	}
	if opkPriv == nil {
		return combine(dh1), nil
	}

	dh2, err := crypto.DH(*opkPriv, peerEph) // DH(OPK, sender.EK)
	if err != nil {
		memzero.Zero(dh1[:])
		return nil, err
	}
	return combine(dh1, dh2), nil
}
