package commands

import (
	"os"

	"github.com/fxamacker/cbor/v2"
)

// writeCBOR marshals v to a CBOR file. Bundles and envelopes travel between
// local identities as files.
func writeCBOR(path string, v any) error {
	b, err := cbor.Marshal(v)
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o600)
}

func readCBOR(path string, v any) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return cbor.Unmarshal(b, v)
}
