package commands

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// bundle: export the public pre-key bundle for peers to learn.
func bundleCmd() *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "bundle",
		Short: "Export the public pre-key bundle",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requirePassphrase(); err != nil {
				return err
			}
			a, err := openApp()
			if err != nil {
				return err
			}
			defer a.Close()

			b := a.Self.PublicBundle()
			if out != "" {
				if err := writeCBOR(out, b); err != nil {
					return err
				}
				fmt.Printf("Bundle written to %s (%d one-time pre-keys).\n", out, len(b.OneTime))
				return nil
			}
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(b)
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "write CBOR bundle to file instead of JSON to stdout")
	return cmd
}
