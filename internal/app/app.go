package app

import (
	"os"
	"path/filepath"

	"github.com/katpercent/BlacKipher/internal/contacts"
	"github.com/katpercent/BlacKipher/internal/domain"
	"github.com/katpercent/BlacKipher/internal/identity"
	"github.com/katpercent/BlacKipher/internal/session"
	"github.com/katpercent/BlacKipher/internal/store"
	"github.com/katpercent/BlacKipher/internal/trace"
)

const historyFile = "history.db"

// Config holds runtime wiring options for building the app.
type Config struct {
	Home       string // config directory, e.g. $HOME/.blackipher
	Passphrase string // protects the identity file
	Emitter    trace.Emitter
}

// App bundles the wired core for one local identity.
type App struct {
	Self     *identity.Manager
	Book     *contacts.Book
	Sessions *session.Service

	cfg     Config
	files   *store.FileStore
	history *store.BoltHistoryStore
}

// Create generates a fresh identity for username, persists it, and returns
// the wired app.
func Create(cfg Config, username string, oneTimeKeys int) (*App, error) {
	if err := os.MkdirAll(cfg.Home, 0o700); err != nil {
		return nil, err
	}
	mgr, err := identity.New(username, identity.WithOneTimeKeys(oneTimeKeys))
	if err != nil {
		return nil, err
	}
	files := store.NewFileStore(cfg.Home)
	if err := files.SaveIdentity(cfg.Passphrase, mgr.Snapshot()); err != nil {
		mgr.Destroy()
		return nil, err
	}
	return wire(cfg, mgr, contacts.NewBook(), files)
}

// Open loads the stored identity and contacts and returns the wired app.
func Open(cfg Config) (*App, error) {
	files := store.NewFileStore(cfg.Home)
	state, err := files.LoadIdentity(cfg.Passphrase)
	if err != nil {
		return nil, err
	}
	records, err := files.LoadContacts()
	if err != nil {
		return nil, err
	}
	return wire(cfg, identity.Restore(state), contacts.NewBookFrom(records), files)
}

func wire(cfg Config, mgr *identity.Manager, book *contacts.Book, files *store.FileStore) (*App, error) {
	hist, err := store.OpenBoltHistory(filepath.Join(cfg.Home, historyFile))
	if err != nil {
		mgr.Destroy()
		return nil, err
	}
	return &App{
		Self:     mgr,
		Book:     book,
		Sessions: session.New(mgr, book, hist, cfg.Emitter),
		cfg:      cfg,
		files:    files,
		history:  hist,
	}, nil
}

// Save persists the current identity state and contact records. A demo app
// has no backing store and saves nothing.
func (a *App) Save() error {
	if a.files == nil {
		return nil
	}
	if err := a.files.SaveIdentity(a.cfg.Passphrase, a.Self.Snapshot()); err != nil {
		return err
	}
	return a.files.SaveContacts(a.Book.Records())
}

// Close releases the history database and wipes in-memory key material.
func (a *App) Close() error {
	a.Self.Destroy()
	if a.history == nil {
		return nil
	}
	return a.history.Close()
}

// Demo wires a purely in-memory app for a local identity, sharing hist and
// emitter with its peers. Used by the demo and chat commands, where several
// identities live in one process and learn each other's bundles directly.
func Demo(username string, hist domain.HistoryStore, emitter trace.Emitter) (*App, error) {
	mgr, err := identity.New(username)
	if err != nil {
		return nil, err
	}
	book := contacts.NewBook()
	return &App{
		Self:     mgr,
		Book:     book,
		Sessions: session.New(mgr, book, hist, emitter),
	}, nil
}
