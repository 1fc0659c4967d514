package token

import (
	"errors"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/jrcapio/lasalleboard/internal/theme"
)

// SubmittedMsg is dispatched when the user submits an access token.
type SubmittedMsg struct {
	Token string
}

// CancelMsg is dispatched when the user aborts token entry.
type CancelMsg struct{}

// formBindings holds form field values on the heap so that huh's Value()
// pointers remain valid across Bubble Tea model copies.
type formBindings struct {
	token string
}

// Model is the access-token entry form shown on first run and after an
// authentication failure.
type Model struct {
	form     *huh.Form
	fb       *formBindings
	errorMsg string
	width    int
	height   int
}

// New creates a new token form model.
func New(width, height int) Model {
	return Model{
		fb:     &formBindings{},
		width:  width,
		height: height,
	}
}

// Start initializes the form. errorMsg, when non-empty, is shown above
// the form to explain why the previous token stopped working.
func (m *Model) Start(errorMsg string) tea.Cmd {
	m.errorMsg = errorMsg
	m.fb.token = ""
	m.form = m.buildForm()
	return m.form.Init()
}

// Update handles messages for the token form.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if m.form == nil {
		return m, nil
	}

	mdl, cmd := m.form.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		tok := strings.TrimSpace(m.fb.token)
		return m, func() tea.Msg { return SubmittedMsg{Token: tok} }
	}
	if m.form.State == huh.StateAborted {
		return m, func() tea.Msg { return CancelMsg{} }
	}

	return m, cmd
}

// View renders the token form.
func (m Model) View() string {
	if m.form == nil {
		return ""
	}

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		MarginBottom(1)

	content := titleStyle.Render("Canvas Access Token")
	if m.errorMsg != "" {
		content += "\n" + lipgloss.NewStyle().
			Foreground(theme.ColorRed).
			Render(m.errorMsg)
	}
	content += "\n" + m.form.View()

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
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Access token").
				Description("Canvas → Account → Settings → New Access Token").
				EchoMode(huh.EchoModePassword).
				Value(&m.fb.token).
				Validate(validateToken),
		),
	).WithWidth(m.formWidth()).WithHeight(m.formHeight())
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
	if h < 8 {
		h = 8
	}
	return h
}

func validateToken(s string) error {
	if strings.TrimSpace(s) == "" {
		return errors.New("token is required")
	}
	return nil
}
