package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/katpercent/BlacKipher/internal/crypto"
)

func contactsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "contacts",
		Short: "List known contacts",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requirePassphrase(); err != nil {
				return err
			}
			a, err := openApp()
			if err != nil {
				return err
			}
			defer a.Close()

			for _, peer := range a.Book.Peers() {
				rec, _ := a.Book.Get(peer)
				fmt.Printf("- %s  id=%s  spk=%d  opks=%d\n",
					peer,
					crypto.Fingerprint(rec.IdentityKey.Slice()),
					rec.SignedPreKey.ID,
					len(rec.OneTime),
				)
			}
			return nil
		},
	}
}
