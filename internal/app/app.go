package app

import (
	"fmt"
	"sort"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jrcapio/lasalleboard/internal/canvas"
	"github.com/jrcapio/lasalleboard/internal/dashboard"
	"github.com/jrcapio/lasalleboard/internal/keys"
	"github.com/jrcapio/lasalleboard/internal/model"
	"github.com/jrcapio/lasalleboard/internal/prefs"
	"github.com/jrcapio/lasalleboard/internal/ui"
	"github.com/jrcapio/lasalleboard/internal/ui/announcements"
	"github.com/jrcapio/lasalleboard/internal/ui/assignments"
	"github.com/jrcapio/lasalleboard/internal/ui/filters"
	helpview "github.com/jrcapio/lasalleboard/internal/ui/help"
	"github.com/jrcapio/lasalleboard/internal/ui/token"
)

// ViewState represents the current active view in the application.
type ViewState int

const (
	ViewAssignments ViewState = iota
	ViewAnnouncements
	ViewToken
	ViewFilters
	ViewHelp
)

// Model is the root Bubble Tea model that manages view routing, layout,
// refresh, and preference persistence.
type Model struct {
	currentView  ViewState
	previousView ViewState
	focusedPane  ViewState
	layout       ui.Layout

	cfg   *model.AppConfig
	store *prefs.SQLiteStore
	keys  *keys.KeyMap

	client    *canvas.Client
	refresher *dashboard.Refresher

	prefsH    *prefsHolder
	debouncer *prefs.Debouncer

	assignmentsPane   assignments.Model
	announcementsPane announcements.Model
	tokenView         token.Model
	filtersView       filters.Model
	helpView          helpview.Model

	userName     string
	refreshing   bool
	lastRefresh  time.Time
	errorMessage string
	ready        bool
}

// New creates the root application model. initialToken may be empty, in
// which case the token entry form is shown before any fetch happens.
func New(cfg *model.AppConfig, store *prefs.SQLiteStore, initialToken string) Model {
	k := keys.DefaultKeyMap()
	holder := newPrefsHolder(store)

	m := Model{
		currentView:       ViewAssignments,
		focusedPane:       ViewAssignments,
		cfg:               cfg,
		store:             store,
		keys:              k,
		prefsH:            holder,
		debouncer:         prefs.NewDebouncer(prefs.DefaultDebounce, holder.save),
		assignmentsPane:   assignments.New(k, cfg.Display.UpcomingTopN, 80, 24),
		announcementsPane: announcements.New(k, 80, 24),
		tokenView:         token.New(80, 24),
		filtersView:       filters.New(80, 24),
		helpView:          helpview.New(k, 80, 24),
	}

	if initialToken != "" {
		if client, err := canvas.NewClient(canvas.Session{
			Token:   initialToken,
			BaseURL: cfg.Canvas.BaseURL,
		}, cfg.Canvas.AllowedHost); err == nil {
			m.client = client
			m.refresher = dashboard.NewRefresher(
				dashboard.NewBuilder(client, cfg.Canvas.AnnouncementDays),
			)
			m.refreshing = true
		}
	}

	return m
}

// Init loads stored preferences, then either starts the first refresh or
// falls into token entry when no usable token is present.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.loadPrefs()}
	if m.client == nil {
		cmds = append(cmds, func() tea.Msg {
			return startTokenEntryMsg{}
		})
	} else {
		cmds = append(cmds, m.fetchSelf(), m.refresh())
	}
	return tea.Batch(cmds...)
}

// Update handles messages and dispatches to the active view.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.layout = ui.NewLayout(msg.Width, msg.Height)
		m.ready = true
		w := m.layout.ContentWidth()
		h := m.layout.ContentHeight()
		m.assignmentsPane.SetSize(w, h)
		m.announcementsPane.SetSize(w, h)
		m.tokenView.SetSize(w, h)
		m.filtersView.SetSize(w, h)
		m.helpView.SetSize(w, h)
		// Forward to the active view so huh forms can lay themselves out.
		return m.updateActiveView(msg)

	case startTokenEntryMsg:
		m.previousView = m.focusedPane
		m.currentView = ViewToken
		cmd := m.tokenView.Start(msg.reason)
		return m, cmd

	case prefsLoadedMsg:
		m.prefsH.set(msg.p)
		m.pushData()
		return m, nil

	case refreshDoneMsg:
		return m.handleRefreshDone(msg)

	case selfLoadedMsg:
		if msg.err == nil {
			m.userName = msg.name
		}
		return m, nil

	case token.SubmittedMsg:
		return m, m.verifyToken(msg.Token)

	case token.CancelMsg:
		// Without a token there is nothing to show; keep the form up
		// unless a working client already exists.
		if m.client == nil {
			return m, tea.Quit
		}
		m.currentView = m.previousView
		return m, nil

	case tokenVerifiedMsg:
		return m.handleTokenVerified(msg)

	case assignments.ToggleIgnoreMsg:
		m.prefsH.update(func(p *model.Preferences) {
			p.ToggleIgnoredAssignment(msg.AssignmentID)
		})
		m.debouncer.Trigger()
		m.pushData()
		return m, nil

	case announcements.ToggleIgnoreMsg:
		m.prefsH.update(func(p *model.Preferences) {
			p.ToggleIgnoredAnnouncement(msg.AnnouncementID)
		})
		m.debouncer.Trigger()
		m.pushData()
		return m, nil

	case filters.AppliedMsg:
		m.applyFilters(msg)
		m.currentView = m.focusedPane
		return m, nil

	case filters.CancelMsg:
		m.currentView = m.focusedPane
		return m, nil

	case tea.KeyMsg:
		if mm, cmd, handled := m.handleGlobalKeys(msg); handled {
			return mm, cmd
		}
	}

	return m.updateActiveView(msg)
}

// handleGlobalKeys processes keys that apply regardless of the focused
// pane. Returns handled=false when the key should reach the active view.
func (m Model) handleGlobalKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd, bool) {
	// Forms own the keyboard while open.
	formOpen := m.currentView == ViewToken || m.currentView == ViewFilters

	switch msg.String() {
	case "ctrl+c":
		m.debouncer.Flush()
		return m, tea.Quit, true

	case "q":
		if formOpen {
			return m, nil, false
		}
		m.debouncer.Flush()
		return m, tea.Quit, true

	case "?":
		if formOpen {
			return m, nil, false
		}
		if m.currentView == ViewHelp {
			m.currentView = m.previousView
			return m, nil, true
		}
		m.previousView = m.currentView
		m.currentView = ViewHelp
		return m, nil, true

	case "esc":
		if m.currentView == ViewHelp {
			m.currentView = m.previousView
			return m, nil, true
		}
		return m, nil, false

	case "tab":
		if formOpen || m.currentView == ViewHelp {
			return m, nil, false
		}
		if m.focusedPane == ViewAssignments {
			m.focusedPane = ViewAnnouncements
		} else {
			m.focusedPane = ViewAssignments
		}
		m.currentView = m.focusedPane
		return m, nil, true

	case "r":
		if formOpen || m.currentView == ViewHelp || m.refreshing {
			return m, nil, false
		}
		m.refreshing = true
		m.errorMessage = ""
		return m, m.refresh(), true

	case "f":
		if formOpen || m.currentView == ViewHelp {
			return m, nil, false
		}
		kind := filters.KindAssignments
		if m.focusedPane == ViewAnnouncements {
			kind = filters.KindAnnouncements
		}
		m.previousView = m.currentView
		m.currentView = ViewFilters
		cmd := m.filtersView.Start(kind, m.sortedCourses(), m.prefsH.get())
		return m, cmd, true
	}

	return m, nil, false
}

// handleRefreshDone folds a completed refresh back into the model.
func (m Model) handleRefreshDone(msg refreshDoneMsg) (tea.Model, tea.Cmd) {
	m.refreshing = false

	if msg.stale {
		return m, nil
	}

	if msg.err != nil {
		if canvas.IsAuthError(msg.err) {
			// The stored token no longer works; discard it and ask for
			// a fresh one.
			clearStoredToken()
			m.client = nil
			m.refresher = nil
			return m, func() tea.Msg {
				return startTokenEntryMsg{reason: "Canvas rejected the stored token. Enter a new one."}
			}
		}
		m.errorMessage = msg.err.Error()
		return m, nil
	}

	m.lastRefresh = time.Now()
	m.errorMessage = ""
	m.pushData()
	return m, nil
}

// handleTokenVerified folds a token validation result back into the model.
func (m Model) handleTokenVerified(msg tokenVerifiedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		cmd := m.tokenView.Start(tokenFailureReason(msg.err))
		return m, cmd
	}

	if err := storeToken(msg.token); err != nil {
		// Keyring trouble is not fatal; the session still works, the
		// user just re-enters the token next launch.
		m.errorMessage = "could not save token: " + err.Error()
	}

	m.client = msg.client
	m.refresher = dashboard.NewRefresher(
		dashboard.NewBuilder(msg.client, m.cfg.Canvas.AnnouncementDays),
	)
	m.userName = msg.name
	m.currentView = m.focusedPane
	m.refreshing = true
	return m, m.refresh()
}

// applyFilters writes the form selections into the preferences and
// schedules the debounced save.
func (m *Model) applyFilters(msg filters.AppliedMsg) {
	m.prefsH.update(func(p *model.Preferences) {
		switch msg.Kind {
		case filters.KindAssignments:
			p.StatusFilters = make(map[model.SubmissionStatus]bool, len(msg.Statuses))
			for _, s := range msg.Statuses {
				p.StatusFilters[s] = true
			}
			p.AssignmentCourses = make(map[int]bool, len(msg.CourseIDs))
			for _, id := range msg.CourseIDs {
				p.AssignmentCourses[id] = true
			}
			p.SelectAllAssignmentCourses = len(msg.CourseIDs) == 0

		case filters.KindAnnouncements:
			p.AnnouncementCourses = make(map[int]bool, len(msg.CourseIDs))
			for _, id := range msg.CourseIDs {
				p.AnnouncementCourses[id] = true
			}
			p.SelectAllAnnouncementCourses = len(msg.CourseIDs) == 0
		}
	})
	m.debouncer.Trigger()
	m.pushData()
}

// pushData hands the current snapshot and preferences to both panes.
func (m *Model) pushData() {
	var snap *model.Snapshot
	if m.refresher != nil {
		snap = m.refresher.Snapshot()
	}
	p := m.prefsH.get()
	m.assignmentsPane.SetData(snap, p)
	m.announcementsPane.SetData(snap, p)
}

// sortedCourses returns the snapshot's courses ordered by label for the
// filter form.
func (m Model) sortedCourses() []model.Course {
	if m.refresher == nil {
		return nil
	}
	snap := m.refresher.Snapshot()
	if snap == nil {
		return nil
	}

	courses := make([]model.Course, 0, len(snap.Courses))
	for _, c := range snap.Courses {
		courses = append(courses, c)
	}
	sort.Slice(courses, func(i, j int) bool {
		return courses[i].Label < courses[j].Label
	})
	return courses
}

// updateActiveView dispatches the message to the currently active view.
func (m Model) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch m.currentView {
	case ViewAssignments:
		m.assignmentsPane, cmd = m.assignmentsPane.Update(msg)
	case ViewAnnouncements:
		m.announcementsPane, cmd = m.announcementsPane.Update(msg)
	case ViewToken:
		m.tokenView, cmd = m.tokenView.Update(msg)
	case ViewFilters:
		m.filtersView, cmd = m.filtersView.Update(msg)
	case ViewHelp:
		m.helpView, cmd = m.helpView.Update(msg)
	}

	return m, cmd
}

// View renders the full terminal UI using the layout manager.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	title := "LaSalleBoard"
	if m.userName != "" {
		title = fmt.Sprintf("LaSalleBoard · %s", m.userName)
	}
	header := m.layout.RenderHeader(title, m.refreshStatus())
	content := m.renderContent()
	statusBar := m.layout.RenderStatusBar(m.keyHints())

	return m.layout.RenderWithFrame(header, content, statusBar)
}

// renderContent returns the rendered string for the current active view.
func (m Model) renderContent() string {
	switch m.currentView {
	case ViewAssignments:
		return m.assignmentsPane.View()
	case ViewAnnouncements:
		return m.announcementsPane.View()
	case ViewToken:
		return m.tokenView.View()
	case ViewFilters:
		return m.filtersView.View()
	case ViewHelp:
		return m.helpView.View()
	default:
		return ""
	}
}

// refreshStatus returns a short string describing the refresh state.
func (m Model) refreshStatus() string {
	switch {
	case m.refreshing:
		return "refreshing…"
	case m.errorMessage != "":
		return "⚠ refresh failed"
	case !m.lastRefresh.IsZero():
		return "updated " + m.lastRefresh.Format("15:04")
	default:
		return ""
	}
}

// keyHints returns keyboard shortcut hints for the status bar.
func (m Model) keyHints() string {
	if m.errorMessage != "" &&
		(m.currentView == ViewAssignments || m.currentView == ViewAnnouncements) {
		return m.errorMessage
	}

	switch m.currentView {
	case ViewHelp:
		return "? close help | esc back"
	case ViewToken:
		return "enter submit | esc cancel"
	case ViewFilters:
		return "space toggle | enter apply | esc cancel"
	case ViewAnnouncements:
		if s := m.announcementsPane.FilterSummary(); s != "" {
			return s + " | tab assignments"
		}
		return "q quit | ? help | r refresh | x ignore | i ignored | 3 old | tab assignments"
	default:
		if s := m.assignmentsPane.FilterSummary(); s != "" {
			return s + " | tab announcements"
		}
		return "q quit | ? help | r refresh | x ignore | f filters | i/n/o views | tab announcements"
	}
}
