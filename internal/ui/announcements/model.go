package announcements

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jrcapio/lasalleboard/internal/filter"
	"github.com/jrcapio/lasalleboard/internal/keys"
	"github.com/jrcapio/lasalleboard/internal/model"
	"github.com/jrcapio/lasalleboard/internal/theme"
)

// ToggleIgnoreMsg is sent when the user toggles ignore on an announcement.
type ToggleIgnoreMsg struct {
	AnnouncementID int
}

// Model is the announcements pane.
type Model struct {
	list  list.Model
	keys  *keys.KeyMap
	snap  *model.Snapshot
	prefs model.Preferences

	onlyIgnored bool
	includeOld  bool

	width  int
	height int
}

// New creates the announcements pane.
func New(k *keys.KeyMap, width, height int) Model {
	l := list.New([]list.Item{}, Delegate{}, width, height-2)
	l.Title = "Announcements"
	l.SetShowStatusBar(true)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)
	l.Styles.Title = theme.HeaderStyle

	return Model{
		list:   l,
		keys:   k,
		prefs:  model.DefaultPreferences(),
		width:  width,
		height: height,
	}
}

// SetData replaces the snapshot and preferences backing the pane and
// recomputes the visible rows.
func (m *Model) SetData(snap *model.Snapshot, prefs model.Preferences) {
	m.snap = snap
	m.prefs = prefs
	m.reload()
}

// Init returns the initial command.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages for the announcements pane.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(keyMsg, m.keys.ToggleIgnore):
		item, ok := m.list.SelectedItem().(Item)
		if !ok {
			return m, nil
		}
		id := item.Announcement.ID
		return m, func() tea.Msg {
			return ToggleIgnoreMsg{AnnouncementID: id}
		}

	case key.Matches(keyMsg, m.keys.OnlyIgnored):
		m.onlyIgnored = !m.onlyIgnored
		m.reload()
		return m, nil

	case key.Matches(keyMsg, m.keys.IncludeOverdue):
		m.includeOld = !m.includeOld
		m.reload()
		return m, nil
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// reload recomputes the visible rows from the snapshot.
func (m *Model) reload() {
	if m.snap == nil {
		m.list.SetItems(nil)
		return
	}

	now := time.Now()
	filtered := filter.Announcements(m.snap, filter.AnnouncementParams{
		Prefs:       m.prefs,
		OnlyIgnored: m.onlyIgnored,
		IncludeOld:  m.includeOld,
	}, now)

	items := make([]list.Item, len(filtered))
	for i, a := range filtered {
		label := ""
		if c, ok := m.snap.Courses[a.CourseID]; ok {
			label = c.Label
		}
		items[i] = Item{
			Announcement: a,
			CourseLabel:  label,
			Ignored:      m.prefs.IgnoredAnnouncements[a.ID],
		}
	}

	m.list.SetDelegate(Delegate{Now: now})
	m.list.SetItems(items)
}

// FilterSummary describes the active toggles for the status bar.
func (m Model) FilterSummary() string {
	if m.onlyIgnored {
		return "showing: ignored"
	}
	if m.includeOld {
		return "including: old announcements"
	}
	return ""
}

// View renders the announcements pane.
func (m Model) View() string {
	if len(m.list.Items()) == 0 {
		return m.renderEmptyState()
	}
	return m.list.View()
}

// renderEmptyState shows guidance text when no rows match.
func (m Model) renderEmptyState() string {
	style := lipgloss.NewStyle().
		Width(m.width).
		Height(m.height).
		Align(lipgloss.Center, lipgloss.Center).
		Foreground(theme.ColorGray)

	if m.snap == nil || len(m.snap.Announcements) == 0 {
		return style.Render("No announcements yet.\nPress r to refresh.")
	}
	return style.Render(
		"Nothing matches the current filters.\n" +
			"Press 3 to include older announcements.",
	)
}

// SetSize updates the pane dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.list.SetSize(width, height-2)
}
