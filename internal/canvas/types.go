package canvas

import "time"

// RawCourse is a course record as returned by
// GET /api/v1/users/self/favorites/courses.
type RawCourse struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// RawSubmission is the student's submission object embedded in an
// assignment when the listing is requested with include[]=submission.
type RawSubmission struct {
	// WorkflowState is one of unsubmitted, submitted, pending_review,
	// graded.
	WorkflowState string `json:"workflow_state"`

	Score *float64 `json:"score"`
}

// RawLockInfo describes why an assignment is locked for the user.
type RawLockInfo struct {
	UnlockAt *time.Time `json:"unlock_at,omitempty"`
}

// RawAssignment is an assignment record as returned by
// GET /api/v1/courses/{id}/assignments.
type RawAssignment struct {
	ID                      int            `json:"id"`
	Name                    string         `json:"name"`
	DueAt                   *time.Time     `json:"due_at"`
	HTMLURL                 string         `json:"html_url"`
	PointsPossible          *float64       `json:"points_possible"`
	AssignmentGroupID       int            `json:"assignment_group_id"`
	LockedForUser           bool           `json:"locked_for_user"`
	LockInfo                *RawLockInfo   `json:"lock_info,omitempty"`
	CanSubmit               bool           `json:"can_submit"`
	SubmissionTypes         []string       `json:"submission_types"`
	Submission              *RawSubmission `json:"submission,omitempty"`
	HasSubmittedSubmissions bool           `json:"has_submitted_submissions"`
}

// RawAnnouncementAuthor is the author object on an announcement.
type RawAnnouncementAuthor struct {
	DisplayName string `json:"display_name"`
}

// RawAnnouncement is an announcement record as returned by
// GET /api/v1/announcements.
type RawAnnouncement struct {
	ID       int        `json:"id"`
	Title    string     `json:"title"`
	Message  string     `json:"message"`
	PostedAt *time.Time `json:"posted_at"`
	URL      string     `json:"url"`

	// ContextCode links the announcement to its course, in the
	// compound form "course_<id>".
	ContextCode string `json:"context_code"`

	Author RawAnnouncementAuthor `json:"author"`
}

// Self is the response from GET /api/v1/users/self, used to validate a
// token and display an identity.
type Self struct {
	Name string `json:"name"`
}

// canvasError is the standard Canvas error response format.
type canvasError struct {
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
	Message string `json:"message,omitempty"`
}
