package model

// Preferences holds the user's persisted filter selections. They survive
// across refreshes and sessions and change only through explicit filter
// actions in the UI; the filter pipeline receives them as a plain value.
type Preferences struct {
	// IgnoredAssignments and IgnoredAnnouncements are the IDs the user
	// has hidden from the default views.
	IgnoredAssignments   map[int]bool
	IgnoredAnnouncements map[int]bool

	// StatusFilters keeps only assignments whose derived status is in
	// the set. Empty means no status filtering.
	StatusFilters map[SubmissionStatus]bool

	// AssignmentCourses / AnnouncementCourses restrict items to the
	// selected course IDs; the SelectAll* flags bypass the restriction.
	AssignmentCourses   map[int]bool
	AnnouncementCourses map[int]bool

	SelectAllAssignmentCourses   bool
	SelectAllAnnouncementCourses bool
}

// DefaultPreferences returns the selections used before the user has
// touched any filter: nothing ignored, every course selected.
func DefaultPreferences() Preferences {
	return Preferences{
		IgnoredAssignments:           make(map[int]bool),
		IgnoredAnnouncements:         make(map[int]bool),
		StatusFilters:                make(map[SubmissionStatus]bool),
		AssignmentCourses:            make(map[int]bool),
		AnnouncementCourses:          make(map[int]bool),
		SelectAllAssignmentCourses:   true,
		SelectAllAnnouncementCourses: true,
	}
}

// ToggleIgnoredAssignment flips the ignored flag for an assignment ID.
func (p *Preferences) ToggleIgnoredAssignment(id int) {
	if p.IgnoredAssignments == nil {
		p.IgnoredAssignments = make(map[int]bool)
	}
	if p.IgnoredAssignments[id] {
		delete(p.IgnoredAssignments, id)
	} else {
		p.IgnoredAssignments[id] = true
	}
}

// ToggleIgnoredAnnouncement flips the ignored flag for an announcement ID.
func (p *Preferences) ToggleIgnoredAnnouncement(id int) {
	if p.IgnoredAnnouncements == nil {
		p.IgnoredAnnouncements = make(map[int]bool)
	}
	if p.IgnoredAnnouncements[id] {
		delete(p.IgnoredAnnouncements, id)
	} else {
		p.IgnoredAnnouncements[id] = true
	}
}
