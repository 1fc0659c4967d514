// Package prefs persists the user's filter selections across sessions
// in named slots backed by a local SQLite database.
package prefs

import (
	"context"
	"sort"

	"github.com/jrcapio/lasalleboard/internal/model"
)

// Slot names one persisted preference value. The set of slots is fixed;
// each holds a single JSON-serializable value.
type Slot string

const (
	SlotIgnoredAssignments           Slot = "ignored_assignments"
	SlotIgnoredAnnouncements         Slot = "ignored_announcements"
	SlotStatusFilters                Slot = "status_filters"
	SlotAssignmentCourses            Slot = "assignment_courses"
	SlotAnnouncementCourses          Slot = "announcement_courses"
	SlotSelectAllAssignmentCourses   Slot = "select_all_assignment_courses"
	SlotSelectAllAnnouncementCourses Slot = "select_all_announcement_courses"
)

// AllSlots lists every known slot.
var AllSlots = []Slot{
	SlotIgnoredAssignments,
	SlotIgnoredAnnouncements,
	SlotStatusFilters,
	SlotAssignmentCourses,
	SlotAnnouncementCourses,
	SlotSelectAllAssignmentCourses,
	SlotSelectAllAnnouncementCourses,
}

// Store is the slot-level persistence contract. Get decodes the stored
// JSON into dest and reports whether a usable value was present; a
// corrupt stored value counts as absent so callers fall back to the
// slot's default instead of failing.
type Store interface {
	Get(ctx context.Context, slot Slot, dest interface{}) (bool, error)
	Set(ctx context.Context, slot Slot, value interface{}) error
	Remove(ctx context.Context, slot Slot) error
}

// Load assembles a Preferences value from the store, slot by slot.
// Missing or corrupt slots keep their defaults.
func Load(ctx context.Context, s Store) (model.Preferences, error) {
	p := model.DefaultPreferences()

	var ids []int
	if ok, err := s.Get(ctx, SlotIgnoredAssignments, &ids); err != nil {
		return p, err
	} else if ok {
		p.IgnoredAssignments = intSet(ids)
	}

	ids = nil
	if ok, err := s.Get(ctx, SlotIgnoredAnnouncements, &ids); err != nil {
		return p, err
	} else if ok {
		p.IgnoredAnnouncements = intSet(ids)
	}

	var statuses []model.SubmissionStatus
	if ok, err := s.Get(ctx, SlotStatusFilters, &statuses); err != nil {
		return p, err
	} else if ok {
		p.StatusFilters = make(map[model.SubmissionStatus]bool, len(statuses))
		for _, st := range statuses {
			p.StatusFilters[st] = true
		}
	}

	ids = nil
	if ok, err := s.Get(ctx, SlotAssignmentCourses, &ids); err != nil {
		return p, err
	} else if ok {
		p.AssignmentCourses = intSet(ids)
	}

	ids = nil
	if ok, err := s.Get(ctx, SlotAnnouncementCourses, &ids); err != nil {
		return p, err
	} else if ok {
		p.AnnouncementCourses = intSet(ids)
	}

	var flag bool
	if ok, err := s.Get(ctx, SlotSelectAllAssignmentCourses, &flag); err != nil {
		return p, err
	} else if ok {
		p.SelectAllAssignmentCourses = flag
	}

	if ok, err := s.Get(ctx, SlotSelectAllAnnouncementCourses, &flag); err != nil {
		return p, err
	} else if ok {
		p.SelectAllAnnouncementCourses = flag
	}

	return p, nil
}

// Save writes every slot of a Preferences value to the store. Sets are
// stored as sorted arrays so the persisted form is stable.
func Save(ctx context.Context, s Store, p model.Preferences) error {
	if err := s.Set(ctx, SlotIgnoredAssignments, sortedKeys(p.IgnoredAssignments)); err != nil {
		return err
	}
	if err := s.Set(ctx, SlotIgnoredAnnouncements, sortedKeys(p.IgnoredAnnouncements)); err != nil {
		return err
	}

	statuses := make([]model.SubmissionStatus, 0, len(p.StatusFilters))
	for _, st := range model.AllStatuses {
		if p.StatusFilters[st] {
			statuses = append(statuses, st)
		}
	}
	if err := s.Set(ctx, SlotStatusFilters, statuses); err != nil {
		return err
	}

	if err := s.Set(ctx, SlotAssignmentCourses, sortedKeys(p.AssignmentCourses)); err != nil {
		return err
	}
	if err := s.Set(ctx, SlotAnnouncementCourses, sortedKeys(p.AnnouncementCourses)); err != nil {
		return err
	}
	if err := s.Set(ctx, SlotSelectAllAssignmentCourses, p.SelectAllAssignmentCourses); err != nil {
		return err
	}
	return s.Set(ctx, SlotSelectAllAnnouncementCourses, p.SelectAllAnnouncementCourses)
}

func intSet(ids []int) map[int]bool {
	set := make(map[int]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}

func sortedKeys(set map[int]bool) []int {
	keys := make([]int, 0, len(set))
	for k, v := range set {
		if v {
			keys = append(keys, k)
		}
	}
	sort.Ints(keys)
	return keys
}
