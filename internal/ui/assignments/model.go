package assignments

import (
	"strings"
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

// ToggleIgnoreMsg is sent when the user toggles ignore on an assignment.
type ToggleIgnoreMsg struct {
	AssignmentID int
}

// Model is the assignments pane.
type Model struct {
	list  list.Model
	keys  *keys.KeyMap
	snap  *model.Snapshot
	prefs model.Preferences

	onlyIgnored   bool
	onlyNoDueDate bool
	onlyOverdue   bool

	includeIgnored   bool
	includeNoDueDate bool
	includeOverdue   bool

	topN   int
	width  int
	height int
}

// New creates the assignments pane. topN bounds the default upcoming
// view; exclusive filter views always show every match.
func New(k *keys.KeyMap, topN, width, height int) Model {
	l := list.New([]list.Item{}, Delegate{}, width, height-2)
	l.Title = "Assignments"
	l.SetShowStatusBar(true)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)
	l.Styles.Title = theme.HeaderStyle

	return Model{
		list:   l,
		keys:   k,
		prefs:  model.DefaultPreferences(),
		topN:   topN,
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

// Update handles messages for the assignments pane.
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
		id := item.Assignment.ID
		return m, func() tea.Msg {
			return ToggleIgnoreMsg{AssignmentID: id}
		}

	case key.Matches(keyMsg, m.keys.OnlyIgnored):
		m.onlyIgnored = !m.onlyIgnored
		m.onlyNoDueDate = false
		m.onlyOverdue = false
		m.reload()
		return m, nil

	case key.Matches(keyMsg, m.keys.OnlyNoDueDate):
		m.onlyNoDueDate = !m.onlyNoDueDate
		m.onlyIgnored = false
		m.onlyOverdue = false
		m.reload()
		return m, nil

	case key.Matches(keyMsg, m.keys.OnlyOverdue):
		m.onlyOverdue = !m.onlyOverdue
		m.onlyIgnored = false
		m.onlyNoDueDate = false
		m.reload()
		return m, nil

	case key.Matches(keyMsg, m.keys.IncludeIgnored):
		m.includeIgnored = !m.includeIgnored
		m.reload()
		return m, nil

	case key.Matches(keyMsg, m.keys.IncludeNoDueDate):
		m.includeNoDueDate = !m.includeNoDueDate
		m.reload()
		return m, nil

	case key.Matches(keyMsg, m.keys.IncludeOverdue):
		m.includeOverdue = !m.includeOverdue
		m.reload()
		return m, nil
	}

	// Navigation keys fall through to the list.
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// params assembles the filter parameters for the current toggle state.
// The default view is the bounded upcoming slice; exclusive views are
// unbounded so nothing long overdue hides behind the window.
func (m Model) params() filter.AssignmentParams {
	p := filter.AssignmentParams{
		Prefs:            m.prefs,
		OnlyIgnored:      m.onlyIgnored,
		OnlyNoDueDate:    m.onlyNoDueDate,
		OnlyOverdue:      m.onlyOverdue,
		IncludeIgnored:   m.includeIgnored,
		IncludeNoDueDate: m.includeNoDueDate,
		IncludeOverdue:   m.includeOverdue,
	}
	if !m.onlyIgnored && !m.onlyNoDueDate && !m.onlyOverdue {
		p.MaxDaysAhead = filter.UpcomingWindowDays
		p.TopN = m.topN
	}
	return p
}

// reload recomputes the visible rows from the snapshot.
func (m *Model) reload() {
	if m.snap == nil {
		m.list.SetItems(nil)
		return
	}

	now := time.Now()
	filtered := filter.Assignments(m.snap, m.params(), now)

	items := make([]list.Item, len(filtered))
	for i, a := range filtered {
		label := ""
		if c, ok := m.snap.Courses[a.CourseID]; ok {
			label = c.Label
		}
		items[i] = Item{
			Assignment:  a,
			CourseLabel: label,
			Ignored:     m.prefs.IgnoredAssignments[a.ID],
		}
	}

	m.list.SetDelegate(Delegate{Now: now})
	m.list.SetItems(items)
}

// FilterSummary describes the active toggles for the status bar. Empty
// when the pane shows the default view.
func (m Model) FilterSummary() string {
	switch {
	case m.onlyIgnored:
		return "showing: ignored"
	case m.onlyNoDueDate:
		return "showing: no due date"
	case m.onlyOverdue:
		return "showing: long overdue"
	}

	var included []string
	if m.includeIgnored {
		included = append(included, "ignored")
	}
	if m.includeNoDueDate {
		included = append(included, "no due date")
	}
	if m.includeOverdue {
		included = append(included, "long overdue")
	}
	if len(included) == 0 {
		return ""
	}
	return "including: " + strings.Join(included, ", ")
}

// View renders the assignments pane.
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

	if m.snap == nil || len(m.snap.Assignments) == 0 {
		return style.Render("No assignments yet.\nPress r to refresh.")
	}
	return style.Render(
		"Nothing matches the current filters.\n" +
			"Press 1/2/3 to widen them, or i/n/o to switch views.",
	)
}

// SetSize updates the pane dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.list.SetSize(width, height-2)
}
