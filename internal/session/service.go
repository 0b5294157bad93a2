package session

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/katpercent/BlacKipher/internal/contacts"
	"github.com/katpercent/BlacKipher/internal/crypto"
	"github.com/katpercent/BlacKipher/internal/domain"
	"github.com/katpercent/BlacKipher/internal/identity"
	"github.com/katpercent/BlacKipher/internal/protocol/agreement"
	"github.com/katpercent/BlacKipher/internal/protocol/seal"
	"github.com/katpercent/BlacKipher/internal/trace"
	"github.com/katpercent/BlacKipher/internal/util/memzero"
)

// Service runs the send/receive pipeline for one local identity.
type Service struct {
	self    *identity.Manager
	book    *contacts.Book
	hist    domain.HistoryStore
	emitter trace.Emitter

	// appendMu serialises history appends per peer so insertion order is
	// preserved under concurrent sends.
	appendMu sync.Map // peer -> *sync.Mutex
}

// New wires a session service. A nil emitter discards traces.
func New(self *identity.Manager, book *contacts.Book, hist domain.HistoryStore, emitter trace.Emitter) *Service {
	if emitter == nil {
		emitter = trace.Nop{}
	}
	return &Service{self: self, book: book, hist: hist, emitter: emitter}
}

// Self returns the identity manager this service sends and receives as.
func (s *Service) Self() *identity.Manager { return s.self }

// Contacts returns the contact book this service reads bundles from.
func (s *Service) Contacts() *contacts.Book { return s.book }

// Send encrypts plaintext for contactID and appends the result to history.
//
// The pipeline: contact lookup, fresh ephemeral pair, optional one-time
// pre-key selection from the peer's advertised pool, signature verification
// plus Diffie-Hellman in agreement.Initiate, sealing, trace, history. The
// ephemeral private and the derived secret are wiped before return.
func (s *Service) Send(contactID string, plaintext []byte) (domain.EncryptedMessage, error) {
	rec, ok := s.book.Get(contactID)
	if !ok {
		return domain.EncryptedMessage{}, fmt.Errorf("%w: %s", domain.ErrUnknownContact, contactID)
	}

	ephPriv, ephPub, err := crypto.GenerateX25519()
	if err != nil {
		return domain.EncryptedMessage{}, err
	}
	eph := domain.EphemeralKeyPair{Priv: ephPriv, Pub: ephPub}
	memzero.Zero(ephPriv[:])

	var opk *domain.OneTimePreKeyPublic
	if k, ok := s.book.TakeOneTimePreKey(contactID); ok {
		opk = &k
	}

	secret, err := agreement.Initiate(rec, &eph, opk)
	if err != nil {
		return domain.EncryptedMessage{}, err
	}
	defer secret.Destroy()

	from, to := s.self.Username(), contactID
	nonce, ciphertext, err := seal.Encrypt(secret, from, to, plaintext)
	if err != nil {
		return domain.EncryptedMessage{}, err
	}

	msg := domain.EncryptedMessage{
		ID:             uuid.NewString(),
		From:           from,
		To:             to,
		EphemeralKey:   eph.Pub,
		SignedPreKeyID: rec.SignedPreKey.ID,
		Nonce:          nonce,
		Ciphertext:     ciphertext,
		SentAt:         time.Now().Unix(),
	}
	if opk != nil {
		msg.OneTimePreKeyID = opk.ID
	}

	ev := trace.SendEvent{
		Sender:      from,
		Receiver:    to,
		SPKVerified: true, // Initiate fails otherwise
		Ephemeral:   eph.Pub.Slice(),
		SharedLen:   secret.Len(),
		Nonce:       nonce[:],
		Ciphertext:  ciphertext,
	}
	s.emitter.Send(ev)

	entry := domain.HistoryEntry{
		Message:   msg,
		Direction: domain.DirectionSent,
		Plaintext: string(plaintext),
		Trace:     ev.Render(),
	}
	if err := s.append(contactID, entry); err != nil {
		return domain.EncryptedMessage{}, err
	}
	return msg, nil
}

// Receive decrypts msg addressed to this identity and appends it to history.
//
// The sender must be a known contact. The signed pre-key the message targets
// must still be retained (domain.ErrStalePreKey otherwise); a referenced
// one-time pre-key is consumed atomically and its private scalar wiped after
// the agreement. Authentication failure surfaces as domain.ErrDecryption.
func (s *Service) Receive(msg domain.EncryptedMessage) ([]byte, error) {
	if msg.To != s.self.Username() {
		return nil, fmt.Errorf("%w: message addressed to %s", domain.ErrDecryption, msg.To)
	}
	if _, ok := s.book.Get(msg.From); !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnknownContact, msg.From)
	}

	spk, err := s.self.SignedPreKeyPair(msg.SignedPreKeyID)
	if err != nil {
		return nil, err
	}

	var opkPriv *domain.X25519Private
	if msg.OneTimePreKeyID != "" {
		otk, ok := s.self.TakeOneTimePreKey(msg.OneTimePreKeyID)
		if !ok {
			return nil, fmt.Errorf("%w: one-time pre-key %s", domain.ErrStalePreKey, msg.OneTimePreKeyID)
		}
		opkPriv = &otk.Priv
		defer memzero.Zero(otk.Priv[:])
	}

	secret, err := agreement.Respond(spk.Priv, opkPriv, msg.EphemeralKey)
	if err != nil {
		return nil, err
	}
	defer secret.Destroy()

	plaintext, err := seal.Decrypt(secret, msg)
	if err != nil {
		return nil, err
	}

	ev := trace.ReceiveEvent{
		Receiver:   msg.To,
		Sender:     msg.From,
		SharedLen:  secret.Len(),
		Nonce:      msg.Nonce[:],
		Ciphertext: msg.Ciphertext,
		Plaintext:  string(plaintext),
	}
	s.emitter.Receive(ev)

	entry := domain.HistoryEntry{
		Message:   msg,
		Direction: domain.DirectionReceived,
		Plaintext: string(plaintext),
		Trace:     ev.Render(),
	}
	if err := s.append(msg.From, entry); err != nil {
		return nil, err
	}
	return plaintext, nil
}

// History returns the ordered exchange history with contactID.
func (s *Service) History(contactID string) ([]domain.HistoryEntry, error) {
	return s.hist.List(s.self.Username(), contactID)
}

// ClearHistory drops the recorded exchanges with contactID.
func (s *Service) ClearHistory(contactID string) error {
	return s.hist.Clear(s.self.Username(), contactID)
}

func (s *Service) append(peer string, entry domain.HistoryEntry) error {
	muAny, _ := s.appendMu.LoadOrStore(peer, &sync.Mutex{})
	mu := muAny.(*sync.Mutex)
	mu.Lock()
	defer mu.Unlock()
	return s.hist.Append(s.self.Username(), peer, entry)
}
