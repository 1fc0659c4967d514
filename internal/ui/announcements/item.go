package announcements

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jrcapio/lasalleboard/internal/model"
	"github.com/jrcapio/lasalleboard/internal/theme"
	"github.com/jrcapio/lasalleboard/internal/ui"
)

// Item wraps a processed announcement so it can be used in a bubbles/list.
type Item struct {
	Announcement model.Announcement
	CourseLabel  string
	Ignored      bool
}

// FilterValue returns the string used for fuzzy filtering.
func (i Item) FilterValue() string { return i.Announcement.Title }

// Delegate implements list.ItemDelegate for announcement rows.
type Delegate struct {
	Now time.Time
}

// Height returns the number of lines each item takes.
func (d Delegate) Height() int { return 1 }

// Spacing returns the number of blank lines between items.
func (d Delegate) Spacing() int { return 0 }

// Update handles per-item messages (unused).
func (d Delegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd {
	return nil
}

// Render draws a single announcement row.
func (d Delegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, ok := item.(Item)
	if !ok {
		return
	}

	now := d.Now
	if now.IsZero() {
		now = time.Now()
	}

	courseBadge := theme.CourseLabelStyle.Render(it.CourseLabel)
	posted := theme.DimmedStyle.Render(ui.PostedLabel(it.Announcement.PostedAt, now))

	line := fmt.Sprintf("%s %s  %s", courseBadge, it.Announcement.Title, posted)
	if it.Ignored {
		line += "  " + theme.DimmedStyle.Render("ignored")
		line = theme.DimmedStyle.Render(line)
	}

	if index == m.Index() {
		line = theme.SelectedItemStyle.Render(line)
	} else {
		line = theme.ListItemStyle.Render(line)
	}

	fmt.Fprint(w, line)
}
