package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/katpercent/BlacKipher/internal/app"
	"github.com/katpercent/BlacKipher/internal/trace"
)

var (
	home       string
	passphrase string
	quiet      bool

	log = logrus.New()
)

func Execute() error {
	root := &cobra.Command{
		Use:   "blackipher",
		Short: "Signal-style pre-key agreement playground",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if home == "" {
				dir, err := os.UserHomeDir()
				if err != nil {
					return err
				}
				home = filepath.Join(dir, ".blackipher")
			}
			if quiet {
				log.SetLevel(logrus.WarnLevel)
			}
			return nil
		},
	}

	root.PersistentFlags().StringVar(&home, "home", "", "config dir (default ~/.blackipher)")
	root.PersistentFlags().StringVarP(&passphrase, "passphrase", "p", "", "passphrase to protect keys")
	root.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress trace output")

	root.AddCommand(
		initCmd(), rotateCmd(), bundleCmd(), learnCmd(), contactsCmd(),
		sendCmd(), recvCmd(), historyCmd(), demoCmd(), chatCmd(),
	)
	return root.Execute()
}

// openApp loads the stored identity with the persistent flags.
func openApp() (*app.App, error) {
	return app.Open(app.Config{
		Home:       home,
		Passphrase: passphrase,
		Emitter:    trace.NewLogrusEmitter(log),
	})
}

func requirePassphrase() error {
	if passphrase == "" {
		return fmt.Errorf("passphrase required (-p)")
	}
	return nil
}
