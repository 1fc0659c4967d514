package app

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jrcapio/lasalleboard/internal/canvas"
	"github.com/jrcapio/lasalleboard/internal/credential"
	"github.com/jrcapio/lasalleboard/internal/dashboard"
	"github.com/jrcapio/lasalleboard/internal/model"
	"github.com/jrcapio/lasalleboard/internal/prefs"
)

// refreshTimeout bounds one full dashboard refresh across every course.
const refreshTimeout = 2 * time.Minute

// prefsTimeout bounds one preference load or save against the local db.
const prefsTimeout = 5 * time.Second

// startTokenEntryMsg switches the UI into the token entry form.
type startTokenEntryMsg struct {
	reason string
}

// prefsLoadedMsg carries the stored preferences into the UI.
type prefsLoadedMsg struct {
	p model.Preferences
}

// refreshDoneMsg carries the outcome of one dashboard refresh.
type refreshDoneMsg struct {
	snap  *model.Snapshot
	err   error
	stale bool
}

// selfLoadedMsg carries the authenticated user's display name.
type selfLoadedMsg struct {
	name string
	err  error
}

// tokenVerifiedMsg carries the outcome of validating a freshly entered
// token against the Canvas profile endpoint.
type tokenVerifiedMsg struct {
	client *canvas.Client
	token  string
	name   string
	err    error
}

// prefsHolder shares the live preference value between the UI goroutine
// and the debounced save timer. All writes go through update.
type prefsHolder struct {
	mu    sync.Mutex
	p     model.Preferences
	store *prefs.SQLiteStore
}

func newPrefsHolder(store *prefs.SQLiteStore) *prefsHolder {
	return &prefsHolder{p: model.DefaultPreferences(), store: store}
}

func (h *prefsHolder) get() model.Preferences {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.p
}

func (h *prefsHolder) set(p model.Preferences) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.p = p
}

func (h *prefsHolder) update(fn func(p *model.Preferences)) {
	h.mu.Lock()
	defer h.mu.Unlock()
	fn(&h.p)
}

// save writes the current preferences to the local store. It runs on the
// debounce timer goroutine, so failures are logged rather than surfaced.
func (h *prefsHolder) save() {
	h.mu.Lock()
	defer h.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), prefsTimeout)
	defer cancel()

	if err := prefs.Save(ctx, h.store, h.p); err != nil {
		log.Printf("saving preferences: %v", err)
	}
}

// loadPrefs reads the stored preferences; a broken store degrades to
// defaults so the dashboard still comes up.
func (m Model) loadPrefs() tea.Cmd {
	store := m.store
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), prefsTimeout)
		defer cancel()

		p, err := prefs.Load(ctx, store)
		if err != nil {
			log.Printf("loading preferences: %v", err)
			p = model.DefaultPreferences()
		}
		return prefsLoadedMsg{p: p}
	}
}

// refresh runs one full dashboard rebuild. A run superseded by a newer
// one reports stale and is dropped without touching the UI.
func (m Model) refresh() tea.Cmd {
	r := m.refresher
	if r == nil {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), refreshTimeout)
		defer cancel()

		snap, err := r.Refresh(ctx)
		if errors.Is(err, dashboard.ErrStaleRefresh) {
			return refreshDoneMsg{stale: true}
		}
		return refreshDoneMsg{snap: snap, err: err}
	}
}

// fetchSelf loads the authenticated user's display name for the header.
func (m Model) fetchSelf() tea.Cmd {
	client := m.client
	if client == nil {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), prefsTimeout*6)
		defer cancel()

		self, err := client.FetchSelf(ctx)
		if err != nil {
			return selfLoadedMsg{err: err}
		}
		return selfLoadedMsg{name: self.Name}
	}
}

// verifyToken builds a client for the entered token and validates it
// against the profile endpoint before anything is persisted.
func (m Model) verifyToken(tok string) tea.Cmd {
	cfg := m.cfg
	return func() tea.Msg {
		client, err := canvas.NewClient(canvas.Session{
			Token:   tok,
			BaseURL: cfg.Canvas.BaseURL,
		}, cfg.Canvas.AllowedHost)
		if err != nil {
			return tokenVerifiedMsg{err: err}
		}

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		self, err := client.FetchSelf(ctx)
		if err != nil {
			return tokenVerifiedMsg{err: err}
		}
		return tokenVerifiedMsg{client: client, token: tok, name: self.Name}
	}
}

// tokenFailureReason maps a validation error to a line the token form
// shows above the input.
func tokenFailureReason(err error) string {
	switch {
	case canvas.IsAuthError(err):
		return "Canvas rejected that token. Check it and try again."
	case canvas.IsNetworkError(err):
		return "Could not reach Canvas: " + err.Error()
	default:
		return err.Error()
	}
}

func storeToken(tok string) error {
	return credential.SetToken(tok)
}

func clearStoredToken() {
	if err := credential.ClearToken(); err != nil {
		log.Printf("clearing stored token: %v", err)
	}
}
