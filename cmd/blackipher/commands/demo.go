package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/katpercent/BlacKipher/internal/app"
	"github.com/katpercent/BlacKipher/internal/store"
	"github.com/katpercent/BlacKipher/internal/trace"
)

// demo: run a scripted in-process exchange between three local identities,
// printing the full crypto trace of every message. Nothing touches disk.
func demoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "Run a scripted local exchange between demo identities",
		RunE: func(cmd *cobra.Command, args []string) error {
			hist := store.NewMemoryHistory()
			emitter := trace.NewLogrusEmitter(log)

			users := make(map[string]*app.App, 3)
			for _, name := range []string{"me", "alice", "bob"} {
				a, err := app.Demo(name, hist, emitter)
				if err != nil {
					return err
				}
				defer a.Close()
				users[name] = a
			}
			// Everyone learns everyone else's bundle.
			for name, a := range users {
				for peer, p := range users {
					if peer != name {
						a.Book.LearnBundle(peer, p.Self.PublicBundle())
					}
				}
			}

			script := []struct{ from, to, text string }{
				{"me", "alice", "hey"},
				{"alice", "me", "hi! got your message"},
				{"me", "bob", "lunch?"},
			}
			for _, s := range script {
				msg, err := users[s.from].Sessions.Send(s.to, []byte(s.text))
				if err != nil {
					return err
				}
				plaintext, err := users[s.to].Sessions.Receive(msg)
				if err != nil {
					return err
				}
				fmt.Printf("%s -> %s: %s\n\n", s.from, s.to, plaintext)
			}
			return nil
		},
	}
}
