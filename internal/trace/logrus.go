package trace

import (
	"encoding/hex"

	"github.com/sirupsen/logrus"
)

// LogrusEmitter renders events through a logrus logger: one structured entry
// per event, fields hex-encoded lower-case.
type LogrusEmitter struct {
	log *logrus.Logger
}

// NewLogrusEmitter wraps log; a nil logger falls back to the standard one.
func NewLogrusEmitter(log *logrus.Logger) *LogrusEmitter {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &LogrusEmitter{log: log}
}

func (l *LogrusEmitter) Send(e SendEvent) {
	l.log.WithFields(logrus.Fields{
		"sender":       e.Sender,
		"receiver":     e.Receiver,
		"spk_verified": e.SPKVerified,
		"ephemeral_pk": hex.EncodeToString(e.Ephemeral),
		"dh_bytes":     e.SharedLen,
		"nonce":        hex.EncodeToString(e.Nonce),
		"ciphertext":   hex.EncodeToString(e.Ciphertext),
	}).Info("message encrypted")
}

func (l *LogrusEmitter) Receive(e ReceiveEvent) {
	l.log.WithFields(logrus.Fields{
		"receiver":   e.Receiver,
		"sender":     e.Sender,
		"dh_bytes":   e.SharedLen,
		"nonce":      hex.EncodeToString(e.Nonce),
		"ciphertext": hex.EncodeToString(e.Ciphertext),
		"plaintext":  e.Plaintext,
	}).Info("message decrypted")
}

var _ Emitter = (*LogrusEmitter)(nil)
