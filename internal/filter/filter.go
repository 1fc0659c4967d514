// Package filter computes ordered, filtered projections of a dashboard
// snapshot. Everything here is pure: the snapshot is read, never
// mutated, and the caller supplies the clock.
package filter

import (
	"sort"
	"time"

	"github.com/jrcapio/lasalleboard/internal/model"
)

// Overdue/window cutoffs, in days. The original behavior uses different
// figures per view; they stay separate named constants because unifying
// them would change what each view shows.
const (
	// DefaultOverdueCutoffDays bounds how long an overdue assignment
	// stays in the default view.
	DefaultOverdueCutoffDays = 10.0

	// UpcomingWindowDays bounds how far ahead the upcoming pane looks.
	UpcomingWindowDays = 15.0

	// AnnouncementCutoffDays bounds how old an announcement may be and
	// still show in the default announcements view.
	AnnouncementCutoffDays = 20.0
)

// msPerDay converts a millisecond interval into fractional days.
const msPerDay = 86_400_000.0

// AssignmentParams selects and orders assignments for one view.
//
// The three Only* modes are exclusive filters: at most one applies, in
// the precedence OnlyIgnored > OnlyNoDueDate > OnlyOverdue. When none is
// active the default view applies, which drops ignored items, items
// without a due date, and items overdue past the cutoff unless the
// corresponding Include* toggle re-admits them.
type AssignmentParams struct {
	Prefs model.Preferences

	OnlyIgnored   bool
	OnlyNoDueDate bool
	OnlyOverdue   bool

	IncludeIgnored   bool
	IncludeNoDueDate bool
	IncludeOverdue   bool

	// MaxDaysAhead keeps only items due within this many days when
	// positive (inclusive at the boundary).
	MaxDaysAhead float64

	// TopN truncates the result after filtering and sorting; 0 keeps all.
	TopN int
}

// AnnouncementParams selects and orders announcements for one view.
type AnnouncementParams struct {
	Prefs model.Preferences

	OnlyIgnored bool

	// IncludeOld re-admits announcements posted before the cutoff.
	IncludeOld bool

	TopN int
}

// DayOffset is the fractional day count between now and target,
// positive when target is in the future.
func DayOffset(target, now time.Time) float64 {
	return float64(target.Sub(now).Milliseconds()) / msPerDay
}

// Assignments returns the assignments of the snapshot that pass the
// given parameters, sorted ascending by due date with dateless items
// last and due-date ties broken by status priority.
func Assignments(snap *model.Snapshot, p AssignmentParams, now time.Time) []model.Assignment {
	if snap == nil {
		return nil
	}

	out := make([]model.Assignment, 0, len(snap.Assignments))
	for _, a := range snap.Assignments {
		if !statusSelected(a.Status, p.Prefs.StatusFilters) {
			continue
		}
		if !courseSelected(a.CourseID, p.Prefs.AssignmentCourses, p.Prefs.SelectAllAssignmentCourses) {
			continue
		}
		if !passesExclusive(a, p, now) {
			continue
		}
		if p.MaxDaysAhead > 0 && a.DueAt != nil && DayOffset(*a.DueAt, now) > p.MaxDaysAhead {
			continue
		}
		out = append(out, a)
	}

	sortAssignments(out)

	return topN(out, p.TopN)
}

// Announcements returns the announcements of the snapshot that pass the
// given parameters, sorted descending by post date with dateless items
// last.
func Announcements(snap *model.Snapshot, p AnnouncementParams, now time.Time) []model.Announcement {
	if snap == nil {
		return nil
	}

	out := make([]model.Announcement, 0, len(snap.Announcements))
	for _, a := range snap.Announcements {
		if !courseSelected(a.CourseID, p.Prefs.AnnouncementCourses, p.Prefs.SelectAllAnnouncementCourses) {
			continue
		}

		ignored := p.Prefs.IgnoredAnnouncements[a.ID]
		if p.OnlyIgnored {
			if !ignored {
				continue
			}
		} else {
			if ignored {
				continue
			}
			if !p.IncludeOld && a.PostedAt != nil &&
				DayOffset(now, *a.PostedAt) > AnnouncementCutoffDays {
				continue
			}
		}

		out = append(out, a)
	}

	sort.SliceStable(out, func(i, j int) bool {
		pi, pj := out[i].PostedAt, out[j].PostedAt
		switch {
		case pi == nil:
			return false
		case pj == nil:
			return true
		default:
			return pi.After(*pj)
		}
	})

	return topN(out, p.TopN)
}

// passesExclusive applies the exclusive filter modes, or the default
// view's exclusions when no exclusive mode is active.
func passesExclusive(a model.Assignment, p AssignmentParams, now time.Time) bool {
	ignored := p.Prefs.IgnoredAssignments[a.ID]

	switch {
	case p.OnlyIgnored:
		return ignored

	case p.OnlyNoDueDate:
		return a.DueAt == nil

	case p.OnlyOverdue:
		return a.DueAt != nil && DayOffset(now, *a.DueAt) > DefaultOverdueCutoffDays

	default:
		if ignored && !p.IncludeIgnored {
			return false
		}
		if a.DueAt == nil {
			return p.IncludeNoDueDate
		}
		if !p.IncludeOverdue && DayOffset(now, *a.DueAt) > DefaultOverdueCutoffDays {
			return false
		}
		return true
	}
}

// sortAssignments orders ascending by due date, dateless items last,
// ties broken by status sort rank.
func sortAssignments(items []model.Assignment) {
	sort.SliceStable(items, func(i, j int) bool {
		di, dj := items[i].DueAt, items[j].DueAt

		switch {
		case di == nil && dj == nil:
			return items[i].Status.SortRank() < items[j].Status.SortRank()
		case di == nil:
			return false
		case dj == nil:
			return true
		}

		if di.Equal(*dj) {
			return items[i].Status.SortRank() < items[j].Status.SortRank()
		}
		return di.Before(*dj)
	})
}

// statusSelected applies the user's status filter set; an empty set
// selects everything.
func statusSelected(s model.SubmissionStatus, selected map[model.SubmissionStatus]bool) bool {
	if len(selected) == 0 {
		return true
	}
	return selected[s]
}

// courseSelected applies the user's course subset; select-all or an
// empty subset bypasses the filter.
func courseSelected(courseID int, selected map[int]bool, selectAll bool) bool {
	if selectAll || len(selected) == 0 {
		return true
	}
	return selected[courseID]
}

// topN truncates after the full filter+sort pipeline has run.
func topN[T any](items []T, n int) []T {
	if n > 0 && len(items) > n {
		return items[:n]
	}
	return items
}
