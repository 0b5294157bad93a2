package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/katpercent/BlacKipher/internal/app"
	"github.com/katpercent/BlacKipher/internal/identity"
	"github.com/katpercent/BlacKipher/internal/trace"
)

func initCmd() *cobra.Command {
	var prekeys int
	cmd := &cobra.Command{
		Use:   "init <username>",
		Short: "Generate identity and pre-keys and store them securely",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requirePassphrase(); err != nil {
				return err
			}
			a, err := app.Create(app.Config{
				Home:       home,
				Passphrase: passphrase,
				Emitter:    trace.NewLogrusEmitter(log),
			}, args[0], prekeys)
			if err != nil {
				return err
			}
			defer a.Close()

			fmt.Printf("Identity created for %s.\nFingerprint: %s\n", args[0], a.Self.Fingerprint())
			return nil
		},
	}
	cmd.Flags().IntVar(&prekeys, "prekeys", identity.DefaultOneTimeKeys, "one-time pre-key batch size")
	return cmd
}
