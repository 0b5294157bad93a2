package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// rotate: replace the advertised signed pre-key. Peers keep working from the
// old bundle until they learn the new one; messages to rotated-out pre-keys
// decrypt while those stay in the retention ring.
func rotateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rotate",
		Short: "Rotate the signed pre-key",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requirePassphrase(); err != nil {
				return err
			}
			a, err := openApp()
			if err != nil {
				return err
			}
			defer a.Close()

			spk, err := a.Self.RotateSignedPreKey()
			if err != nil {
				return err
			}
			if err := a.Save(); err != nil {
				return err
			}
			fmt.Printf("Signed pre-key rotated (id %d).\n", spk.ID)
			return nil
		},
	}
}
