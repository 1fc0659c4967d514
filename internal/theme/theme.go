package theme

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/jrcapio/lasalleboard/internal/model"
)

// Adaptive color pairs (dark terminal value, light terminal value).
var (
	ColorGreen  = lipgloss.AdaptiveColor{Dark: "#087830", Light: "#0B5D27"}
	ColorBlue   = lipgloss.AdaptiveColor{Dark: "#5B9BD5", Light: "#2B6CB0"}
	ColorLime   = lipgloss.AdaptiveColor{Dark: "#6BCB77", Light: "#2F855A"}
	ColorYellow = lipgloss.AdaptiveColor{Dark: "#FFD93D", Light: "#B7791F"}
	ColorRed    = lipgloss.AdaptiveColor{Dark: "#FF6B6B", Light: "#C53030"}
	ColorOrange = lipgloss.AdaptiveColor{Dark: "#FFA94D", Light: "#C05621"}
	ColorGray   = lipgloss.AdaptiveColor{Dark: "#868E96", Light: "#718096"}
	ColorWhite  = lipgloss.AdaptiveColor{Dark: "#F8F9FA", Light: "#1A202C"}
	ColorSubtle = lipgloss.AdaptiveColor{Dark: "#495057", Light: "#CBD5E0"}
	ColorBorder = lipgloss.AdaptiveColor{Dark: "#495057", Light: "#E2E8F0"}
)

// HeaderStyle is used for top-level section headers and the application title.
var HeaderStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(ColorWhite).
	Background(ColorGreen).
	Padding(0, 1)

// StatusBarStyle is used for the bottom status bar.
var StatusBarStyle = lipgloss.NewStyle().
	Foreground(ColorWhite).
	Background(ColorSubtle).
	Padding(0, 1)

// PanelStyle wraps a pane's content area.
var PanelStyle = lipgloss.NewStyle().
	Padding(1, 2).
	Border(lipgloss.RoundedBorder()).
	BorderForeground(ColorBorder)

// ListItemStyle is the base style for items in a list.
var ListItemStyle = lipgloss.NewStyle().
	PaddingLeft(2)

// SelectedItemStyle highlights the currently focused list item.
var SelectedItemStyle = lipgloss.NewStyle().
	PaddingLeft(1).
	Bold(true).
	Foreground(ColorBlue).
	Border(lipgloss.NormalBorder(), false, false, false, true).
	BorderForeground(ColorBlue)

// HelpStyle is used for keyboard shortcut hints and help text.
var HelpStyle = lipgloss.NewStyle().
	Foreground(ColorGray).
	Italic(true)

// DimmedStyle de-emphasizes completed or ignored rows.
var DimmedStyle = lipgloss.NewStyle().
	Foreground(ColorGray)

// CourseLabelStyle renders the canonical course label badge on a row.
var CourseLabelStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(ColorBlue)

// GradeStyle renders the score/points fragment for graded work.
var GradeStyle = lipgloss.NewStyle().
	Foreground(ColorLime)

// LockedStyle renders the lock indicator on unavailable assignments.
var LockedStyle = lipgloss.NewStyle().
	Foreground(ColorGray)

// StatusStyle returns a color-coded style for a submission status badge.
func StatusStyle(status model.SubmissionStatus) lipgloss.Style {
	base := lipgloss.NewStyle().Bold(true).Padding(0, 1)

	switch status {
	case model.StatusUnsubmitted:
		return base.Foreground(ColorRed)
	case model.StatusPendingReview:
		return base.Foreground(ColorYellow)
	case model.StatusSubmitted, model.StatusGroupSubmitted:
		return base.Foreground(ColorBlue)
	case model.StatusGraded:
		return base.Foreground(ColorLime)
	default:
		return base.Foreground(ColorGray)
	}
}

// UrgencyStyle returns a color-coded style for a due-date urgency band.
func UrgencyStyle(u model.Urgency) lipgloss.Style {
	base := lipgloss.NewStyle().Bold(true)

	switch u {
	case model.UrgencyOverdue:
		return base.Foreground(ColorRed)
	case model.UrgencyAlmostDue:
		return base.Foreground(ColorOrange)
	case model.UrgencyDueSoon:
		return base.Foreground(ColorYellow)
	case model.UrgencyLowPriority:
		return base.Foreground(ColorBlue)
	default:
		return base.Foreground(ColorGray)
	}
}
