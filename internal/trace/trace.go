package trace

import "fmt"

// SendEvent records the values involved in encrypting one outgoing message.
// All byte fields are public material; SharedLen is the only fact exposed
// about the derived secret.
type SendEvent struct {
	Sender      string
	Receiver    string
	SPKVerified bool
	Ephemeral   []byte
	SharedLen   int
	Nonce       []byte
	Ciphertext  []byte
}

// Render produces the human-readable trace block, hex lower-case.
func (e SendEvent) Render() string {
	return fmt.Sprintf(
		"== log ==\n"+
			"Sender: %s\n"+
			"Receiver: %s\n"+
			"Verify(peer.SPK signed by peer.ID) = %t\n"+
			"Ephemeral PK: %x\n"+
			"DH(ephemeral, peer.SPK): precomputed (%d bytes)\n"+
			"Nonce: %x\n"+
			"Ciphertext: %x\n",
		e.Sender, e.Receiver, e.SPKVerified, e.Ephemeral, e.SharedLen, e.Nonce, e.Ciphertext,
	)
}

// ReceiveEvent records the values involved in decrypting one incoming
// message.
type ReceiveEvent struct {
	Receiver   string
	Sender     string
	SharedLen  int
	Nonce      []byte
	Ciphertext []byte
	Plaintext  string
}

// Render produces the human-readable trace block for the receive side.
func (e ReceiveEvent) Render() string {
	return fmt.Sprintf(
		"== log (recv) ==\n"+
			"Receiver: %s\n"+
			"Sender: %s\n"+
			"DH(sender.ephemeral, self.SPK): precomputed (%d bytes)\n"+
			"Nonce: %x\n"+
			"Ciphertext: %x\n"+
			"Plaintext: %s\n",
		e.Receiver, e.Sender, e.SharedLen, e.Nonce, e.Ciphertext, e.Plaintext,
	)
}

// Emitter consumes trace events. Implementations must not retain or derive
// key material; events already contain only public values.
type Emitter interface {
	Send(SendEvent)
	Receive(ReceiveEvent)
}

// Nop discards all events.
type Nop struct{}

func (Nop) Send(SendEvent)       {}
func (Nop) Receive(ReceiveEvent) {}
