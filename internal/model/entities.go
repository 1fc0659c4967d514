package model

import "time"

// Course is a favorited Canvas course. Immutable once fetched.
type Course struct {
	// ID is the upstream numeric course identifier.
	ID int `json:"id"`

	// Name is the raw upstream course name.
	Name string `json:"name"`

	// Label is the canonicalized "<CODE> - <SECTION>" display name.
	Label string `json:"label"`
}

// Grade holds the score of a graded assignment. Present only when the
// submission reached the graded workflow state with a non-null score.
type Grade struct {
	Score          float64  `json:"score"`
	PointsPossible *float64 `json:"points_possible,omitempty"`
}

// Assignment is the processed shape of an upstream assignment: the raw
// record augmented with its owning course and derived submission state.
type Assignment struct {
	ID       int    `json:"id"`
	CourseID int    `json:"course_id"`
	Name     string `json:"name"`

	// DueAt is nil when the assignment has no due date.
	DueAt *time.Time `json:"due_at,omitempty"`

	HTMLURL         string           `json:"html_url"`
	PointsPossible  *float64         `json:"points_possible,omitempty"`
	GroupID         int              `json:"assignment_group_id"`
	Status          SubmissionStatus `json:"submission_status"`
	Grade           *Grade           `json:"grade,omitempty"`
	LockedForUser   bool             `json:"locked_for_user"`
	UnlockAt        *time.Time       `json:"unlock_at,omitempty"`
	CanSubmit       bool             `json:"can_submit"`
	SubmissionTypes []string         `json:"submission_types,omitempty"`
}

// Announcement is the processed shape of an upstream announcement:
// linked to its course, with the message body and author dropped.
type Announcement struct {
	ID       int    `json:"id"`
	CourseID int    `json:"course_id"`
	Title    string `json:"title"`

	// PostedAt is nil when the upstream record carries no post date.
	PostedAt *time.Time `json:"posted_at,omitempty"`

	URL string `json:"url"`
}
