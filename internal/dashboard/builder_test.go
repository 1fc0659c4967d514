package dashboard

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jrcapio/lasalleboard/internal/canvas"
)

// stubFetcher is a canned-response Fetcher for builder tests.
type stubFetcher struct {
	courses    []canvas.RawCourse
	coursesErr error

	assignments    map[int][]canvas.RawAssignment
	assignmentErrs map[int]error

	announcements    []canvas.RawAnnouncement
	announcementsErr error
}

func (f *stubFetcher) FetchFavoriteCourses(ctx context.Context) ([]canvas.RawCourse, error) {
	return f.courses, f.coursesErr
}

func (f *stubFetcher) FetchAssignments(ctx context.Context, courseID int) ([]canvas.RawAssignment, error) {
	if err := f.assignmentErrs[courseID]; err != nil {
		return nil, err
	}
	return f.assignments[courseID], nil
}

func (f *stubFetcher) FetchAnnouncements(
	ctx context.Context, courseIDs []int, start, end time.Time,
) ([]canvas.RawAnnouncement, error) {
	return f.announcements, f.announcementsErr
}

func timePtr(t time.Time) *time.Time { return &t }

func TestBuild_EmptyFavoritesIsEmptySnapshotNotError(t *testing.T) {
	b := NewBuilder(&stubFetcher{}, 14)

	snap, err := b.Build(context.Background(), "gen-1")
	require.NoError(t, err)
	assert.True(t, snap.Empty())
	assert.Empty(t, snap.Assignments)
	assert.Empty(t, snap.Upcoming)
	assert.False(t, snap.GeneratedAt.IsZero())
	assert.Equal(t, "gen-1", snap.Generation)
}

func TestBuild_AuthFailureOnCoursesIsFatal(t *testing.T) {
	b := NewBuilder(&stubFetcher{
		coursesErr: &canvas.AuthError{Message: "token expired"},
	}, 14)

	_, err := b.Build(context.Background(), "gen-1")
	require.Error(t, err)
	assert.True(t, canvas.IsAuthError(err))
}

func TestBuild_PerCourseFailureIsAbsorbed(t *testing.T) {
	future := time.Now().Add(48 * time.Hour)

	f := &stubFetcher{
		courses: []canvas.RawCourse{
			{ID: 1, Name: "CSARCH2 - S11"},
			{ID: 2, Name: "STSWENG - S12"},
			{ID: 3, Name: "CSOPESY - S13"},
		},
		assignments: map[int][]canvas.RawAssignment{
			1: {{ID: 10, DueAt: timePtr(future)}},
			3: {{ID: 30, DueAt: timePtr(future)}},
		},
		assignmentErrs: map[int]error{
			2: &canvas.NetworkError{Err: context.DeadlineExceeded},
		},
	}

	snap, err := NewBuilder(f, 14).Build(context.Background(), "gen-1")
	require.NoError(t, err, "partial per-course failures must not fail the build")

	assert.Len(t, snap.Courses, 3)
	assert.Len(t, snap.Assignments, 2)
	assert.Empty(t, snap.AssignmentsByCourse[2])
	assert.Len(t, snap.AssignmentsByCourse[1], 1)
	assert.Len(t, snap.AssignmentsByCourse[3], 1)
}

func TestBuild_AnnouncementFailureDegradesToEmpty(t *testing.T) {
	f := &stubFetcher{
		courses:          []canvas.RawCourse{{ID: 1, Name: "CSARCH2 - S11"}},
		announcementsErr: &canvas.UpstreamError{StatusCode: 500, Message: "boom"},
	}

	snap, err := NewBuilder(f, 14).Build(context.Background(), "gen-1")
	require.NoError(t, err)
	assert.Empty(t, snap.Announcements)
	assert.Len(t, snap.Courses, 1)
}

func TestBuild_SkipsMalformedAnnouncements(t *testing.T) {
	posted := time.Now().Add(-24 * time.Hour)
	f := &stubFetcher{
		courses: []canvas.RawCourse{{ID: 7001, Name: "CSARCH2 - S11"}},
		announcements: []canvas.RawAnnouncement{
			{ID: 1, Title: "good", ContextCode: "course_7001", PostedAt: &posted},
			{ID: 2, Title: "bad", ContextCode: "bogus", PostedAt: &posted},
		},
	}

	snap, err := NewBuilder(f, 14).Build(context.Background(), "gen-1")
	require.NoError(t, err)
	require.Len(t, snap.Announcements, 1)
	assert.Equal(t, 7001, snap.Announcements[1].CourseID)
	assert.Equal(t, []int{1}, snap.AnnouncementsByCourse[7001])
}

func TestBuild_UpcomingUnsubmittedPartition(t *testing.T) {
	now := time.Now()
	future := now.Add(72 * time.Hour)
	past := now.Add(-72 * time.Hour)
	score := 90.0

	f := &stubFetcher{
		courses: []canvas.RawCourse{{ID: 1, Name: "CSARCH2 - S11"}},
		assignments: map[int][]canvas.RawAssignment{
			1: {
				{ID: 1, DueAt: timePtr(future)}, // upcoming
				{ID: 2, DueAt: timePtr(past)},   // unsubmitted (overdue)
				{ID: 3, DueAt: nil},             // unsubmitted (no due date)
				{ID: 4, DueAt: timePtr(future), // completed, in neither
					Submission: &canvas.RawSubmission{WorkflowState: "submitted"}},
				{ID: 5, DueAt: timePtr(past), // completed, in neither
					Submission: &canvas.RawSubmission{WorkflowState: "graded", Score: &score}},
				{ID: 6, DueAt: timePtr(past), // group submitted, in neither
					HasSubmittedSubmissions: true},
				{ID: 7, DueAt: timePtr(future), // pending review counts as open
					Submission: &canvas.RawSubmission{WorkflowState: "pending_review"}},
			},
		},
	}

	snap, err := NewBuilder(f, 14).Build(context.Background(), "gen-1")
	require.NoError(t, err)

	assert.ElementsMatch(t, []int{1, 7}, snap.Upcoming)
	assert.ElementsMatch(t, []int{2, 3}, snap.Unsubmitted)

	// The two views are disjoint and together cover exactly the
	// non-submitted-equivalent assignments.
	seen := make(map[int]bool)
	for _, id := range append(append([]int{}, snap.Upcoming...), snap.Unsubmitted...) {
		assert.False(t, seen[id], "assignment %d appears in both views", id)
		seen[id] = true
	}
	for id, a := range snap.Assignments {
		assert.Equal(t, !a.Status.Completed(), seen[id],
			"assignment %d partition membership", id)
	}
}
