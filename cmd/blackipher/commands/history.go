package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/katpercent/BlacKipher/internal/domain"
)

func historyCmd() *cobra.Command {
	var showTrace bool
	var clear bool
	cmd := &cobra.Command{
		Use:   "history <peer>",
		Short: "Show the exchange history with a peer",
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

			if clear {
				if err := a.Sessions.ClearHistory(args[0]); err != nil {
					return err
				}
				fmt.Println("History cleared.")
				return nil
			}

			entries, err := a.Sessions.History(args[0])
			if err != nil {
				return err
			}
			for _, e := range entries {
				who := e.Message.From
				if e.Direction == domain.DirectionSent {
					who = "me"
				}
				fmt.Printf("[%s] %s\n", who, e.Plaintext)
				if showTrace {
					fmt.Println(e.Trace)
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&showTrace, "trace", false, "print the stored crypto trace per message")
	cmd.Flags().BoolVar(&clear, "clear", false, "clear the history instead of listing it")
	return cmd
}
