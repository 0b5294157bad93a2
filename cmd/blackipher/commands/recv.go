package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/katpercent/BlacKipher/internal/domain"
)

// recv <envelope-file>: decrypt an envelope addressed to this identity.
func recvCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "recv <envelope-file>",
		Short: "Decrypt a received envelope file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requirePassphrase(); err != nil {
				return err
			}
			a, err := openApp()
			if err != nil {
				return err
			}
			defer a.Close()

			var msg domain.EncryptedMessage
			if err := readCBOR(args[0], &msg); err != nil {
				return err
			}
			plaintext, err := a.Sessions.Receive(msg)
			if err != nil {
				return err
			}
			if err := a.Save(); err != nil {
				return err
			}
			fmt.Printf("[%s] %s\n", msg.From, plaintext)
			return nil
		},
	}
}
