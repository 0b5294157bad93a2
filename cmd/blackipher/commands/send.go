package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// send <peer> <message>: encrypt a message for <peer> and write the envelope
// to a file the peer can recv.
func sendCmd() *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "send <peer> <message>",
		Short: "Encrypt a message for a peer into an envelope file",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requirePassphrase(); err != nil {
				return err
			}
			a, err := openApp()
			if err != nil {
				return err
			}
			defer a.Close()

			msg, err := a.Sessions.Send(args[0], []byte(args[1]))
			if err != nil {
				return err
			}
			if err := a.Save(); err != nil {
				return err
			}
			if out == "" {
				out = fmt.Sprintf("%s.msg", msg.ID)
			}
			if err := writeCBOR(out, msg); err != nil {
				return err
			}
			fmt.Printf("Envelope written to %s.\n", out)
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "envelope file (default <message-id>.msg)")
	return cmd
}
