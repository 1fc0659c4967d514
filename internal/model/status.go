package model

// SubmissionStatus is the derived submission state of an assignment.
// It is computed once during normalization and never mutated afterwards.
type SubmissionStatus string

const (
	StatusUnsubmitted    SubmissionStatus = "unsubmitted"
	StatusSubmitted      SubmissionStatus = "submitted"
	StatusPendingReview  SubmissionStatus = "pending_review"
	StatusGraded         SubmissionStatus = "graded"
	StatusGroupSubmitted SubmissionStatus = "group_submitted"
)

// AllStatuses lists every submission status in display order.
var AllStatuses = []SubmissionStatus{
	StatusUnsubmitted,
	StatusPendingReview,
	StatusSubmitted,
	StatusGroupSubmitted,
	StatusGraded,
}

// SortRank returns the tie-break rank used when two assignments share a
// due date: uncompleted work sorts ahead of completed work.
func (s SubmissionStatus) SortRank() int {
	switch s {
	case StatusUnsubmitted:
		return 0
	case StatusPendingReview:
		return 1
	case StatusSubmitted, StatusGroupSubmitted:
		return 2
	case StatusGraded:
		return 3
	default:
		return 4
	}
}

// Completed reports whether the status counts as submitted-equivalent:
// such assignments are excluded from the upcoming/unsubmitted partitions.
func (s SubmissionStatus) Completed() bool {
	switch s {
	case StatusSubmitted, StatusGroupSubmitted, StatusGraded:
		return true
	default:
		return false
	}
}

// Urgency classifies how soon an assignment needs attention. It is a
// presentation label only; filtering decisions use raw day offsets.
type Urgency string

const (
	UrgencyOverdue     Urgency = "overdue"
	UrgencyAlmostDue   Urgency = "almost_due"
	UrgencyDueSoon     Urgency = "due_soon"
	UrgencyLowPriority Urgency = "low_priority"
)
