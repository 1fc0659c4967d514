package filter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jrcapio/lasalleboard/internal/model"
)

var now = time.Date(2026, 2, 10, 12, 0, 0, 0, time.UTC)

func timePtr(t time.Time) *time.Time { return &t }

// snapshotWith builds a snapshot holding the given assignments and
// announcements, keyed by ID.
func snapshotWith(assignments []model.Assignment, announcements []model.Announcement) *model.Snapshot {
	snap := model.NewSnapshot("test", now)
	for _, a := range assignments {
		snap.Assignments[a.ID] = a
	}
	for _, a := range announcements {
		snap.Announcements[a.ID] = a
	}
	return snap
}

func defaultParams() AssignmentParams {
	return AssignmentParams{Prefs: model.DefaultPreferences()}
}

func ids(assignments []model.Assignment) []int {
	out := make([]int, len(assignments))
	for i, a := range assignments {
		out[i] = a.ID
	}
	return out
}

func TestDayOffset(t *testing.T) {
	assert.InDelta(t, 1.0, DayOffset(now.Add(24*time.Hour), now), 1e-9)
	assert.InDelta(t, -11.0, DayOffset(now.AddDate(0, 0, -11), now), 1e-9)
	assert.InDelta(t, 0.5, DayOffset(now.Add(12*time.Hour), now), 1e-9)
}

func TestAssignments_DefaultViewScenario(t *testing.T) {
	// Due in 23 hours, unsubmitted: shows in the default view.
	soon := model.Assignment{
		ID: 1, CourseID: 10, Name: "quiz",
		DueAt:  timePtr(now.Add(23 * time.Hour)),
		Status: model.StatusUnsubmitted,
	}
	// Same assignment 11 days overdue: beyond the 10-day cutoff.
	longOverdue := model.Assignment{
		ID: 2, CourseID: 10, Name: "old quiz",
		DueAt:  timePtr(now.AddDate(0, 0, -11)),
		Status: model.StatusUnsubmitted,
	}

	snap := snapshotWith([]model.Assignment{soon, longOverdue}, nil)

	got := Assignments(snap, defaultParams(), now)
	assert.Equal(t, []int{1}, ids(got), "default view keeps the upcoming item only")

	onlyOverdue := defaultParams()
	onlyOverdue.OnlyOverdue = true
	got = Assignments(snap, onlyOverdue, now)
	assert.Equal(t, []int{2}, ids(got), "overdue-beyond-cutoff mode keeps the old item only")
}

func TestAssignments_OverdueCutoffBoundaryIsInclusive(t *testing.T) {
	exactly10 := model.Assignment{
		ID: 1, DueAt: timePtr(now.AddDate(0, 0, -10)),
		Status: model.StatusUnsubmitted,
	}
	snap := snapshotWith([]model.Assignment{exactly10}, nil)

	// Exactly 10.0 days overdue is not "more than" the cutoff.
	got := Assignments(snap, defaultParams(), now)
	assert.Equal(t, []int{1}, ids(got))

	onlyOverdue := defaultParams()
	onlyOverdue.OnlyOverdue = true
	assert.Empty(t, Assignments(snap, onlyOverdue, now))
}

func TestAssignments_DefaultViewExclusionsAndToggles(t *testing.T) {
	prefs := model.DefaultPreferences()
	prefs.IgnoredAssignments[3] = true

	items := []model.Assignment{
		{ID: 1, DueAt: timePtr(now.Add(time.Hour)), Status: model.StatusUnsubmitted},
		{ID: 2, DueAt: nil, Status: model.StatusUnsubmitted},
		{ID: 3, DueAt: timePtr(now.Add(2 * time.Hour)), Status: model.StatusUnsubmitted},
		{ID: 4, DueAt: timePtr(now.AddDate(0, 0, -20)), Status: model.StatusUnsubmitted},
	}
	snap := snapshotWith(items, nil)

	p := AssignmentParams{Prefs: prefs}
	assert.Equal(t, []int{1}, ids(Assignments(snap, p, now)),
		"default view drops ignored, dateless, and long-overdue items")

	p.IncludeNoDueDate = true
	p.IncludeIgnored = true
	p.IncludeOverdue = true
	assert.Equal(t, []int{4, 1, 3, 2}, ids(Assignments(snap, p, now)),
		"toggles re-admit each exclusion; dateless items sort last")
}

func TestAssignments_ExclusiveFilterPrecedence(t *testing.T) {
	prefs := model.DefaultPreferences()
	prefs.IgnoredAssignments[1] = true

	items := []model.Assignment{
		{ID: 1, DueAt: nil, Status: model.StatusUnsubmitted},
		{ID: 2, DueAt: nil, Status: model.StatusUnsubmitted},
		{ID: 3, DueAt: timePtr(now.AddDate(0, 0, -30)), Status: model.StatusUnsubmitted},
	}
	snap := snapshotWith(items, nil)

	// Only-ignored wins over only-no-due-date when both are set.
	p := AssignmentParams{Prefs: prefs, OnlyIgnored: true, OnlyNoDueDate: true, OnlyOverdue: true}
	assert.Equal(t, []int{1}, ids(Assignments(snap, p, now)))

	p = AssignmentParams{Prefs: prefs, OnlyNoDueDate: true, OnlyOverdue: true}
	assert.ElementsMatch(t, []int{1, 2}, ids(Assignments(snap, p, now)))

	p = AssignmentParams{Prefs: prefs, OnlyOverdue: true}
	assert.Equal(t, []int{3}, ids(Assignments(snap, p, now)))
}

func TestAssignments_StatusAndCourseFilters(t *testing.T) {
	prefs := model.DefaultPreferences()
	prefs.StatusFilters[model.StatusGraded] = true
	prefs.SelectAllAssignmentCourses = false
	prefs.AssignmentCourses[10] = true

	items := []model.Assignment{
		{ID: 1, CourseID: 10, DueAt: timePtr(now.Add(time.Hour)), Status: model.StatusGraded},
		{ID: 2, CourseID: 10, DueAt: timePtr(now.Add(time.Hour)), Status: model.StatusUnsubmitted},
		{ID: 3, CourseID: 20, DueAt: timePtr(now.Add(time.Hour)), Status: model.StatusGraded},
	}
	snap := snapshotWith(items, nil)

	got := Assignments(snap, AssignmentParams{Prefs: prefs}, now)
	assert.Equal(t, []int{1}, ids(got))
}

func TestAssignments_SortOrderAndTieBreak(t *testing.T) {
	due := timePtr(now.Add(48 * time.Hour))
	later := timePtr(now.Add(72 * time.Hour))

	items := []model.Assignment{
		{ID: 1, DueAt: later, Status: model.StatusUnsubmitted},
		{ID: 2, DueAt: due, Status: model.StatusGraded},
		{ID: 3, DueAt: due, Status: model.StatusUnsubmitted},
		{ID: 4, DueAt: due, Status: model.StatusPendingReview},
		{ID: 5, DueAt: nil, Status: model.StatusUnsubmitted},
		{ID: 6, DueAt: due, Status: model.StatusSubmitted},
	}
	snap := snapshotWith(items, nil)

	p := defaultParams()
	p.IncludeNoDueDate = true
	p.IncludeOverdue = true

	got := ids(Assignments(snap, p, now))
	assert.Equal(t, []int{3, 4, 6, 2, 1, 5}, got,
		"ascending by due date, ties by status priority, dateless last")
}

func TestAssignments_UpcomingWindowAndTopN(t *testing.T) {
	var items []model.Assignment
	for i := 1; i <= 8; i++ {
		items = append(items, model.Assignment{
			ID:     i,
			DueAt:  timePtr(now.AddDate(0, 0, i*3)),
			Status: model.StatusUnsubmitted,
		})
	}
	snap := snapshotWith(items, nil)

	p := defaultParams()
	p.MaxDaysAhead = UpcomingWindowDays
	got := ids(Assignments(snap, p, now))
	assert.Equal(t, []int{1, 2, 3, 4, 5}, got,
		"15-day window is inclusive: the item due in exactly 15 days stays")

	p.TopN = 3
	assert.Equal(t, []int{1, 2, 3}, ids(Assignments(snap, p, now)),
		"top-N slices after filtering and sorting")
}

func TestAnnouncements_SortAndCutoff(t *testing.T) {
	items := []model.Announcement{
		{ID: 1, CourseID: 10, PostedAt: timePtr(now.AddDate(0, 0, -1))},
		{ID: 2, CourseID: 10, PostedAt: timePtr(now.AddDate(0, 0, -5))},
		{ID: 3, CourseID: 10, PostedAt: timePtr(now.AddDate(0, 0, -25))},
		{ID: 4, CourseID: 10, PostedAt: nil},
	}
	snap := snapshotWith(nil, items)

	p := AnnouncementParams{Prefs: model.DefaultPreferences()}
	got := Announcements(snap, p, now)
	require.Len(t, got, 3)
	assert.Equal(t, 1, got[0].ID)
	assert.Equal(t, 2, got[1].ID)
	assert.Equal(t, 4, got[2].ID, "dateless announcements sort last")

	p.IncludeOld = true
	got = Announcements(snap, p, now)
	require.Len(t, got, 4)
	assert.Equal(t, 3, got[2].ID)
}

func TestAnnouncements_IgnoredAndOnlyIgnored(t *testing.T) {
	prefs := model.DefaultPreferences()
	prefs.IgnoredAnnouncements[2] = true

	items := []model.Announcement{
		{ID: 1, CourseID: 10, PostedAt: timePtr(now.AddDate(0, 0, -1))},
		{ID: 2, CourseID: 10, PostedAt: timePtr(now.AddDate(0, 0, -2))},
	}
	snap := snapshotWith(nil, items)

	got := Announcements(snap, AnnouncementParams{Prefs: prefs}, now)
	require.Len(t, got, 1)
	assert.Equal(t, 1, got[0].ID)

	got = Announcements(snap, AnnouncementParams{Prefs: prefs, OnlyIgnored: true}, now)
	require.Len(t, got, 1)
	assert.Equal(t, 2, got[0].ID)
}

func TestFilters_NilSnapshot(t *testing.T) {
	assert.Nil(t, Assignments(nil, defaultParams(), now))
	assert.Nil(t, Announcements(nil, AnnouncementParams{}, now))
}
