package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/katpercent/BlacKipher/internal/domain"
)

// learn <bundle-file>: store or refresh a peer's pre-key bundle. The
// signature is checked at send time, not here.
func learnCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "learn <bundle-file>",
		Short: "Learn a peer's public pre-key bundle",
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

			var b domain.Bundle
			if err := readCBOR(args[0], &b); err != nil {
				return err
			}
			if b.Username == "" {
				return fmt.Errorf("bundle has no username")
			}
			a.Book.LearnBundle(b.Username, b)
			if err := a.Save(); err != nil {
				return err
			}
			fmt.Printf("Learned bundle for %s (%d one-time pre-keys).\n", b.Username, len(b.OneTime))
			return nil
		},
	}
}
