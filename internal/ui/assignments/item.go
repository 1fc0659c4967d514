package assignments

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jrcapio/lasalleboard/internal/model"
	"github.com/jrcapio/lasalleboard/internal/normalize"
	"github.com/jrcapio/lasalleboard/internal/theme"
	"github.com/jrcapio/lasalleboard/internal/ui"
)

// Item wraps a processed assignment so it can be used in a bubbles/list.
type Item struct {
	Assignment  model.Assignment
	CourseLabel string
	Ignored     bool
}

// FilterValue returns the string used for fuzzy filtering.
func (i Item) FilterValue() string { return i.Assignment.Name }

// Delegate implements list.ItemDelegate for assignment rows.
type Delegate struct {
	// Now anchors due-date labels and urgency bands so a full render
	// uses one consistent clock reading.
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

// Render draws a single assignment row.
func (d Delegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, ok := item.(Item)
	if !ok {
		return
	}

	a := it.Assignment
	now := d.Now
	if now.IsZero() {
		now = time.Now()
	}

	courseBadge := theme.CourseLabelStyle.Render(it.CourseLabel)
	statusBadge := theme.StatusStyle(a.Status).Render(string(a.Status))

	urgency := normalize.UrgencyOf(a.DueAt, now)
	dueBadge := theme.UrgencyStyle(urgency).Render(ui.DueLabel(a.DueAt, now))

	var extras []string
	if a.Grade != nil {
		extras = append(extras, theme.GradeStyle.Render(gradeLabel(a)))
	}
	if a.LockedForUser {
		extras = append(extras, theme.LockedStyle.Render(lockLabel(a, now)))
	}
	if it.Ignored {
		extras = append(extras, theme.DimmedStyle.Render("ignored"))
	}

	line := fmt.Sprintf("%s %s %s  %s", courseBadge, statusBadge, a.Name, dueBadge)
	if len(extras) > 0 {
		line += "  " + strings.Join(extras, " ")
	}

	if a.Status.Completed() || it.Ignored {
		line = theme.DimmedStyle.Render(line)
	}

	if index == m.Index() {
		line = theme.SelectedItemStyle.Render(line)
	} else {
		line = theme.ListItemStyle.Render(line)
	}

	fmt.Fprint(w, line)
}

// gradeLabel renders "score/points", or just the score when the
// assignment carries no points-possible value.
func gradeLabel(a model.Assignment) string {
	if a.Grade.PointsPossible != nil {
		return fmt.Sprintf("%.5g/%.5g", a.Grade.Score, *a.Grade.PointsPossible)
	}
	return fmt.Sprintf("%.5g", a.Grade.Score)
}

// lockLabel renders the lock indicator, with the unlock date when known
// and still in the future.
func lockLabel(a model.Assignment, now time.Time) string {
	if a.UnlockAt != nil && a.UnlockAt.After(now) {
		return "locked until " + a.UnlockAt.Format("Jan 02")
	}
	return "locked"
}
