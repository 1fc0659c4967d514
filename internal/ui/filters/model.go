package filters

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/jrcapio/lasalleboard/internal/model"
	"github.com/jrcapio/lasalleboard/internal/theme"
)

// Kind says which pane the filter form edits.
type Kind int

const (
	KindAssignments Kind = iota
	KindAnnouncements
)

// AppliedMsg is dispatched when the user applies status and course
// selections. An empty CourseIDs slice means every course.
type AppliedMsg struct {
	Kind      Kind
	Statuses  []model.SubmissionStatus
	CourseIDs []int
}

// CancelMsg is dispatched when the user aborts the form.
type CancelMsg struct{}

// formBindings holds form field values on the heap so that huh's Value()
// pointers remain valid across Bubble Tea model copies.
type formBindings struct {
	statuses  []model.SubmissionStatus
	courseIDs []int
}

// Model is the status/course filter form.
type Model struct {
	form    *huh.Form
	fb      *formBindings
	kind    Kind
	courses []model.Course
	width   int
	height  int
}

// New creates a new filter form model.
func New(width, height int) Model {
	return Model{
		fb:     &formBindings{},
		width:  width,
		height: height,
	}
}

// Start initializes the form for one pane, preselecting the current
// preference state.
func (m *Model) Start(kind Kind, courses []model.Course, prefs model.Preferences) tea.Cmd {
	m.kind = kind
	m.courses = courses

	m.fb.statuses = nil
	for _, s := range model.AllStatuses {
		if prefs.StatusFilters[s] {
			m.fb.statuses = append(m.fb.statuses, s)
		}
	}
	if len(m.fb.statuses) == 0 {
		m.fb.statuses = append([]model.SubmissionStatus(nil), model.AllStatuses...)
	}

	selected, selectAll := prefs.AssignmentCourses, prefs.SelectAllAssignmentCourses
	if kind == KindAnnouncements {
		selected, selectAll = prefs.AnnouncementCourses, prefs.SelectAllAnnouncementCourses
	}
	m.fb.courseIDs = nil
	for _, c := range courses {
		if selectAll || selected[c.ID] {
			m.fb.courseIDs = append(m.fb.courseIDs, c.ID)
		}
	}

	m.form = m.buildForm()
	return m.form.Init()
}

// Update handles messages for the filter form.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if m.form == nil {
		return m, nil
	}

	mdl, cmd := m.form.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		return m, m.handleSubmit()
	}
	if m.form.State == huh.StateAborted {
		return m, func() tea.Msg { return CancelMsg{} }
	}

	return m, cmd
}

// View renders the filter form.
func (m Model) View() string {
	if m.form == nil {
		return ""
	}

	title := "Assignment Filters"
	if m.kind == KindAnnouncements {
		title = "Announcement Filters"
	}

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		MarginBottom(1)

	content := titleStyle.Render(title) + "\n" + m.form.View()

	return lipgloss.NewStyle().
		Padding(1, 2).
		Render(content)
}

// SetSize updates the form dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m *Model) buildForm() *huh.Form {
	var fields []huh.Field

	if m.kind == KindAssignments {
		opts := make([]huh.Option[model.SubmissionStatus], len(model.AllStatuses))
		for i, s := range model.AllStatuses {
			opts[i] = huh.NewOption(string(s), s)
		}
		fields = append(fields,
			huh.NewMultiSelect[model.SubmissionStatus]().
				Title("Submission statuses").
				Options(opts...).
				Value(&m.fb.statuses),
		)
	}

	if len(m.courses) > 0 {
		opts := make([]huh.Option[int], len(m.courses))
		for i, c := range m.courses {
			opts[i] = huh.NewOption(c.Label, c.ID)
		}
		fields = append(fields,
			huh.NewMultiSelect[int]().
				Title("Courses").
				Options(opts...).
				Value(&m.fb.courseIDs),
		)
	}

	return huh.NewForm(
		huh.NewGroup(fields...),
	).WithWidth(m.formWidth()).WithHeight(m.formHeight())
}

func (m Model) handleSubmit() tea.Cmd {
	msg := AppliedMsg{Kind: m.kind}
	msg.Statuses = append(msg.Statuses, m.fb.statuses...)
	// Selecting every course collapses to "all" so newly favorited
	// courses are not silently excluded later.
	if len(m.fb.courseIDs) < len(m.courses) {
		msg.CourseIDs = append(msg.CourseIDs, m.fb.courseIDs...)
	}
	return func() tea.Msg { return msg }
}

func (m Model) formWidth() int {
	w := m.width - 4
	if w < 40 {
		w = 40
	}
	if w > 100 {
		w = 100
	}
	return w
}

func (m Model) formHeight() int {
	h := m.height - 4
	if h < 10 {
		h = 10
	}
	return h
}
