// Package normalize converts raw Canvas records into the processed
// entity shapes the dashboard works with. Every function here is pure:
// no I/O, no hidden state.
package normalize

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jrcapio/lasalleboard/internal/canvas"
	"github.com/jrcapio/lasalleboard/internal/model"
)

// almostDueWindow is how close a due date must be before an assignment
// counts as almost due.
const almostDueWindow = 24 * time.Hour

// MalformedContextCodeError indicates an announcement context code that
// does not follow the "course_<id>" form.
type MalformedContextCodeError struct {
	ContextCode string
}

func (e *MalformedContextCodeError) Error() string {
	return fmt.Sprintf("malformed context code %q", e.ContextCode)
}

// SubmissionStatusOf derives the submission status of a raw assignment.
// It is a pure function of the submission object and the group-submission
// flag; the result is stored on the processed assignment and never
// mutated separately.
func SubmissionStatusOf(a canvas.RawAssignment) model.SubmissionStatus {
	if a.Submission == nil {
		if a.HasSubmittedSubmissions {
			// A group mate submitted on the student's behalf.
			return model.StatusGroupSubmitted
		}
		return model.StatusUnsubmitted
	}

	switch a.Submission.WorkflowState {
	case "graded":
		if a.Submission.Score != nil {
			return model.StatusGraded
		}
		return model.StatusUnsubmitted
	case "submitted":
		return model.StatusSubmitted
	case "pending_review":
		return model.StatusPendingReview
	default:
		return model.StatusUnsubmitted
	}
}

// UrgencyOf classifies an assignment's due date relative to now. The
// label is for presentation only; filter decisions use raw day offsets.
func UrgencyOf(dueAt *time.Time, now time.Time) model.Urgency {
	if dueAt == nil {
		return model.UrgencyLowPriority
	}

	remaining := dueAt.Sub(now)
	switch {
	case remaining < 0:
		return model.UrgencyOverdue
	case remaining < almostDueWindow:
		return model.UrgencyAlmostDue
	default:
		return model.UrgencyDueSoon
	}
}

// AnnouncementCourseID parses the owning course ID out of a context
// code of the form "course_<id>".
func AnnouncementCourseID(contextCode string) (int, error) {
	parts := strings.Split(contextCode, "_")
	if len(parts) < 2 {
		return 0, &MalformedContextCodeError{ContextCode: contextCode}
	}

	id, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, &MalformedContextCodeError{ContextCode: contextCode}
	}

	return id, nil
}

// Course converts a raw course, attaching its canonical display label.
func Course(raw canvas.RawCourse) model.Course {
	return model.Course{
		ID:    raw.ID,
		Name:  raw.Name,
		Label: CanonicalCourseLabel(raw.Name),
	}
}

// Assignment converts a raw assignment fetched for courseID into its
// processed shape: tagged with the owning course, with the derived
// submission status and, when graded, the grade.
func Assignment(courseID int, raw canvas.RawAssignment) model.Assignment {
	status := SubmissionStatusOf(raw)

	var grade *model.Grade
	if status == model.StatusGraded {
		grade = &model.Grade{
			Score:          *raw.Submission.Score,
			PointsPossible: raw.PointsPossible,
		}
	}

	var unlockAt *time.Time
	if raw.LockInfo != nil {
		unlockAt = raw.LockInfo.UnlockAt
	}

	return model.Assignment{
		ID:              raw.ID,
		CourseID:        courseID,
		Name:            raw.Name,
		DueAt:           raw.DueAt,
		HTMLURL:         raw.HTMLURL,
		PointsPossible:  raw.PointsPossible,
		GroupID:         raw.AssignmentGroupID,
		Status:          status,
		Grade:           grade,
		LockedForUser:   raw.LockedForUser,
		UnlockAt:        unlockAt,
		CanSubmit:       raw.CanSubmit,
		SubmissionTypes: raw.SubmissionTypes,
	}
}

// Announcement converts a raw announcement, deriving the course ID from
// its context code and dropping the message body and author.
func Announcement(raw canvas.RawAnnouncement) (model.Announcement, error) {
	courseID, err := AnnouncementCourseID(raw.ContextCode)
	if err != nil {
		return model.Announcement{}, err
	}

	return model.Announcement{
		ID:       raw.ID,
		CourseID: courseID,
		Title:    raw.Title,
		PostedAt: raw.PostedAt,
		URL:      raw.URL,
	}, nil
}
