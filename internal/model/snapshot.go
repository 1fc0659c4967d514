package model

import "time"

// Snapshot is the full normalized entity store plus derived index views
// produced by one aggregation run. A snapshot is immutable: a refresh
// builds a new one and swaps it in wholesale, it never patches views.
type Snapshot struct {
	Courses       map[int]Course
	Assignments   map[int]Assignment
	Announcements map[int]Announcement

	// AssignmentsByCourse and AnnouncementsByCourse group entity IDs by
	// their owning course.
	AssignmentsByCourse   map[int][]int
	AnnouncementsByCourse map[int][]int

	// Upcoming and Unsubmitted are a disjoint partition of the IDs of
	// every assignment whose status is not submitted-equivalent, split
	// on whether the due date is in the future (Upcoming) or in the
	// past / absent (Unsubmitted).
	Upcoming    []int
	Unsubmitted []int

	// GeneratedAt is the capture time of the whole snapshot.
	GeneratedAt time.Time

	// Generation tags the refresh that produced this snapshot so stale
	// in-flight refreshes can be discarded on completion.
	Generation string
}

// NewSnapshot returns an empty snapshot stamped with the given
// generation tag and capture time.
func NewSnapshot(generation string, now time.Time) *Snapshot {
	return &Snapshot{
		Courses:               make(map[int]Course),
		Assignments:           make(map[int]Assignment),
		Announcements:         make(map[int]Announcement),
		AssignmentsByCourse:   make(map[int][]int),
		AnnouncementsByCourse: make(map[int][]int),
		GeneratedAt:           now,
		Generation:            generation,
	}
}

// Empty reports whether the snapshot holds no courses at all.
func (s *Snapshot) Empty() bool {
	return len(s.Courses) == 0
}
