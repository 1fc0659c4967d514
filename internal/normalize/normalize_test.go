package normalize

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jrcapio/lasalleboard/internal/canvas"
	"github.com/jrcapio/lasalleboard/internal/model"
)

func floatPtr(f float64) *float64 { return &f }

func timePtr(t time.Time) *time.Time { return &t }

func TestSubmissionStatusOf_CoversEveryCombination(t *testing.T) {
	tests := []struct {
		name          string
		hasGroupSub   bool
		submission    *canvas.RawSubmission
		want          model.SubmissionStatus
	}{
		{
			name:        "group submission without own submission object",
			hasGroupSub: true,
			submission:  nil,
			want:        model.StatusGroupSubmitted,
		},
		{
			name:        "no submission at all",
			hasGroupSub: false,
			submission:  nil,
			want:        model.StatusUnsubmitted,
		},
		{
			name:        "graded with score",
			submission:  &canvas.RawSubmission{WorkflowState: "graded", Score: floatPtr(87)},
			want:        model.StatusGraded,
		},
		{
			name:        "graded without score falls back to unsubmitted",
			submission:  &canvas.RawSubmission{WorkflowState: "graded", Score: nil},
			want:        model.StatusUnsubmitted,
		},
		{
			name:        "submitted",
			submission:  &canvas.RawSubmission{WorkflowState: "submitted"},
			want:        model.StatusSubmitted,
		},
		{
			name:        "pending review",
			submission:  &canvas.RawSubmission{WorkflowState: "pending_review"},
			want:        model.StatusPendingReview,
		},
		{
			name:        "unsubmitted workflow state",
			submission:  &canvas.RawSubmission{WorkflowState: "unsubmitted"},
			want:        model.StatusUnsubmitted,
		},
		{
			name:        "unknown workflow state defaults to unsubmitted",
			submission:  &canvas.RawSubmission{WorkflowState: "something_new"},
			want:        model.StatusUnsubmitted,
		},
		{
			name:        "submission object wins over group flag",
			hasGroupSub: true,
			submission:  &canvas.RawSubmission{WorkflowState: "submitted"},
			want:        model.StatusSubmitted,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := canvas.RawAssignment{
				HasSubmittedSubmissions: tt.hasGroupSub,
				Submission:              tt.submission,
			}
			assert.Equal(t, tt.want, SubmissionStatusOf(raw))
		})
	}
}

func TestUrgencyOf(t *testing.T) {
	now := time.Date(2026, 2, 10, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		dueAt *time.Time
		want  model.Urgency
	}{
		{"no due date", nil, model.UrgencyLowPriority},
		{"past due", timePtr(now.Add(-time.Hour)), model.UrgencyOverdue},
		{"due in 23h", timePtr(now.Add(23 * time.Hour)), model.UrgencyAlmostDue},
		{"due in 25h", timePtr(now.Add(25 * time.Hour)), model.UrgencyDueSoon},
		{"due in a week", timePtr(now.AddDate(0, 0, 7)), model.UrgencyDueSoon},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, UrgencyOf(tt.dueAt, now))
		})
	}
}

func TestAnnouncementCourseID(t *testing.T) {
	id, err := AnnouncementCourseID("course_12345")
	require.NoError(t, err)
	assert.Equal(t, 12345, id)

	_, err = AnnouncementCourseID("course_abc")
	var malformed *MalformedContextCodeError
	require.ErrorAs(t, err, &malformed)
	assert.Equal(t, "course_abc", malformed.ContextCode)

	_, err = AnnouncementCourseID("nounderscore")
	assert.Error(t, err)
}

func TestAssignment_DerivesCourseGradeAndLockState(t *testing.T) {
	unlock := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	raw := canvas.RawAssignment{
		ID:             42,
		Name:           "Machine Project 1",
		PointsPossible: floatPtr(100),
		LockedForUser:  true,
		LockInfo:       &canvas.RawLockInfo{UnlockAt: &unlock},
		Submission:     &canvas.RawSubmission{WorkflowState: "graded", Score: floatPtr(92)},
	}

	a := Assignment(7001, raw)

	assert.Equal(t, 7001, a.CourseID)
	assert.Equal(t, model.StatusGraded, a.Status)
	require.NotNil(t, a.Grade)
	assert.Equal(t, 92.0, a.Grade.Score)
	require.NotNil(t, a.Grade.PointsPossible)
	assert.Equal(t, 100.0, *a.Grade.PointsPossible)
	assert.True(t, a.LockedForUser)
	require.NotNil(t, a.UnlockAt)
	assert.Equal(t, unlock, *a.UnlockAt)
}

func TestAssignment_NoGradeUnlessGraded(t *testing.T) {
	raw := canvas.RawAssignment{
		ID:         43,
		Submission: &canvas.RawSubmission{WorkflowState: "submitted", Score: floatPtr(50)},
	}

	a := Assignment(7001, raw)
	assert.Equal(t, model.StatusSubmitted, a.Status)
	assert.Nil(t, a.Grade)
}

func TestAnnouncement_DropsBodyAndAuthor(t *testing.T) {
	posted := time.Date(2026, 1, 20, 8, 0, 0, 0, time.UTC)
	raw := canvas.RawAnnouncement{
		ID:          9,
		Title:       "Class suspended",
		Message:     "<p>long body</p>",
		PostedAt:    &posted,
		URL:         "https://dlsu.instructure.com/courses/7001/discussion_topics/9",
		ContextCode: "course_7001",
		Author:      canvas.RawAnnouncementAuthor{DisplayName: "Prof"},
	}

	a, err := Announcement(raw)
	require.NoError(t, err)
	assert.Equal(t, 7001, a.CourseID)
	assert.Equal(t, "Class suspended", a.Title)
	require.NotNil(t, a.PostedAt)
	assert.Equal(t, posted, *a.PostedAt)
}

func TestAnnouncement_MalformedContextCode(t *testing.T) {
	_, err := Announcement(canvas.RawAnnouncement{ID: 1, ContextCode: "garbage"})
	assert.Error(t, err)
}
