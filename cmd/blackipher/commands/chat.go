package commands

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"github.com/spf13/cobra"

	"github.com/katpercent/BlacKipher/internal/app"
	"github.com/katpercent/BlacKipher/internal/domain"
	"github.com/katpercent/BlacKipher/internal/store"
	"github.com/katpercent/BlacKipher/internal/trace"
)

// chat: interactive TUI over the same in-process identities as demo. The left
// pane is the contact list, the right pane shows each message with its full
// crypto trace, the bottom line is the input. Every message goes through the
// real send/receive pipeline between two local identities.
func chatCmd() *cobra.Command {
	var showTrace bool
	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Interactive chat between local demo identities",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runChat(showTrace)
		},
	}
	cmd.Flags().BoolVar(&showTrace, "trace", true, "show the crypto trace inline")
	return cmd
}

func runChat(showTrace bool) error {
	hist := store.NewMemoryHistory()

	users := make(map[string]*app.App, 3)
	names := []string{"me", "alice", "bob"}
	for _, name := range names {
		a, err := app.Demo(name, hist, trace.Nop{})
		if err != nil {
			return err
		}
		defer a.Close()
		users[name] = a
	}
	for name, a := range users {
		for peer, p := range users {
			if peer != name {
				a.Book.LearnBundle(peer, p.Self.PublicBundle())
			}
		}
	}

	me := users["me"]
	selected := "alice"

	tui := tview.NewApplication()

	chatView := tview.NewTextView().
		SetDynamicColors(true).
		SetChangedFunc(func() { tui.Draw() })
	chatView.SetBorder(true).SetTitle(" alice ")

	contactList := tview.NewList().ShowSecondaryText(false)
	contactList.SetBorder(true).SetTitle(" Contacts ")
	for _, peer := range me.Book.Peers() {
		contactList.AddItem(peer, "", 0, nil)
	}
	contactList.SetChangedFunc(func(_ int, peer string, _ string, _ rune) {
		selected = peer
		chatView.Clear()
		chatView.SetTitle(fmt.Sprintf(" %s ", peer))
		renderHistory(chatView, me, peer)
	})

	var input *tview.InputField
	input = tview.NewInputField().
		SetLabel("Message: ").
		SetDoneFunc(func(key tcell.Key) {
			if key != tcell.KeyEnter {
				return
			}
			text := input.GetText()
			if text == "" {
				return
			}
			input.SetText("")

			msg, err := me.Sessions.Send(selected, []byte(text))
			if err != nil {
				fmt.Fprintf(chatView, "[red]send failed: %v[-]\n", err)
				return
			}
			plaintext, err := users[selected].Sessions.Receive(msg)
			if err != nil {
				fmt.Fprintf(chatView, "[red]peer failed to decrypt: %v[-]\n", err)
				return
			}
			fmt.Fprintf(chatView, "[yellow]me:[-] %s\n", plaintext)
			if showTrace {
				entries, _ := me.Sessions.History(selected)
				if n := len(entries); n > 0 {
					fmt.Fprintf(chatView, "[gray]%s[-]\n", tview.Escape(entries[n-1].Trace))
				}
			}
		})

	layout := tview.NewFlex().
		AddItem(contactList, 24, 0, false).
		AddItem(tview.NewFlex().SetDirection(tview.FlexRow).
			AddItem(chatView, 0, 1, false).
			AddItem(input, 1, 0, true), 0, 1, true)

	return tui.SetRoot(layout, true).Run()
}

func renderHistory(chatView *tview.TextView, me *app.App, peer string) {
	entries, err := me.Sessions.History(peer)
	if err != nil {
		return
	}
	for _, e := range entries {
		who := e.Message.From
		if e.Direction == domain.DirectionSent {
			who = "me"
		}
		fmt.Fprintf(chatView, "[yellow]%s:[-] %s\n", who, e.Plaintext)
	}
}
