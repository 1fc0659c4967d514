// Package dashboard aggregates Canvas data for one student into an
// immutable snapshot of normalized entities and derived views.
package dashboard

import (
	"context"
	"fmt"
	"log"
	"sort"
	"sync"
	"time"

	"github.com/jrcapio/lasalleboard/internal/canvas"
	"github.com/jrcapio/lasalleboard/internal/model"
	"github.com/jrcapio/lasalleboard/internal/normalize"
)

// Fetcher is the slice of the Canvas client the builder needs. The
// concrete *canvas.Client satisfies it; tests substitute stubs.
type Fetcher interface {
	FetchFavoriteCourses(ctx context.Context) ([]canvas.RawCourse, error)
	FetchAssignments(ctx context.Context, courseID int) ([]canvas.RawAssignment, error)
	FetchAnnouncements(
		ctx context.Context,
		courseIDs []int,
		start time.Time,
		end time.Time,
	) ([]canvas.RawAnnouncement, error)
}

// Builder runs one aggregation pass against the upstream API.
type Builder struct {
	fetcher Fetcher

	// announcementDays is how far back the announcement window reaches.
	announcementDays int
}

// NewBuilder creates a Builder over the given fetcher. announcementDays
// controls the announcement fetch window; values below 1 fall back to 14.
func NewBuilder(f Fetcher, announcementDays int) *Builder {
	if announcementDays < 1 {
		announcementDays = 14
	}
	return &Builder{
		fetcher:          f,
		announcementDays: announcementDays,
	}
}

// courseResult pairs a course ID with the outcome of its assignment fetch.
type courseResult struct {
	courseID int
	raw      []canvas.RawAssignment
	err      error
}

// Build fetches, normalizes, and indexes one full snapshot, tagged with
// the given refresh generation.
//
// A 401 on the course fetch is fatal and propagates as a
// *canvas.AuthError. Per-course assignment failures and any announcement
// failure are absorbed: the affected course contributes an empty list
// and the failure is only logged.
func (b *Builder) Build(ctx context.Context, generation string) (*model.Snapshot, error) {
	now := time.Now()

	rawCourses, err := b.fetcher.FetchFavoriteCourses(ctx)
	if err != nil {
		return nil, fmt.Errorf("building snapshot: %w", err)
	}

	snap := model.NewSnapshot(generation, now)
	if len(rawCourses) == 0 {
		// No favorited courses is an empty dashboard, not a failure.
		return snap, nil
	}

	courseIDs := make([]int, 0, len(rawCourses))
	for _, rc := range rawCourses {
		course := normalize.Course(rc)
		snap.Courses[course.ID] = course
		courseIDs = append(courseIDs, course.ID)
	}

	for _, res := range b.fetchAssignments(ctx, courseIDs) {
		if res.err != nil {
			log.Printf(
				"dashboard: assignments for course %d failed, continuing without them: %v",
				res.courseID, res.err,
			)
			continue
		}
		for _, ra := range res.raw {
			a := normalize.Assignment(res.courseID, ra)
			snap.Assignments[a.ID] = a
		}
	}

	for _, a := range b.fetchAnnouncements(ctx, courseIDs, now) {
		snap.Announcements[a.ID] = a
	}

	buildViews(snap, now)
	return snap, nil
}

// fetchAssignments fans out one fetch per course and waits for every
// task, success or failure, before returning.
func (b *Builder) fetchAssignments(ctx context.Context, courseIDs []int) []courseResult {
	results := make([]courseResult, len(courseIDs))

	var wg sync.WaitGroup
	for i, id := range courseIDs {
		wg.Add(1)
		go func(i, courseID int) {
			defer wg.Done()
			raw, err := b.fetcher.FetchAssignments(ctx, courseID)
			results[i] = courseResult{courseID: courseID, raw: raw, err: err}
		}(i, id)
	}
	wg.Wait()

	return results
}

// fetchAnnouncements retrieves and normalizes announcements for the
// course set. Failures degrade to an empty result.
func (b *Builder) fetchAnnouncements(
	ctx context.Context,
	courseIDs []int,
	now time.Time,
) []model.Announcement {
	start := now.AddDate(0, 0, -b.announcementDays)

	raw, err := b.fetcher.FetchAnnouncements(ctx, courseIDs, start, now)
	if err != nil {
		log.Printf("dashboard: announcement fetch failed, continuing without announcements: %v", err)
		return nil
	}

	announcements := make([]model.Announcement, 0, len(raw))
	for _, r := range raw {
		a, err := normalize.Announcement(r)
		if err != nil {
			log.Printf("dashboard: skipping announcement %d: %v", r.ID, err)
			continue
		}
		announcements = append(announcements, a)
	}

	return announcements
}

// buildViews recomputes every derived view wholesale from the entity
// maps. Views are never patched incrementally.
func buildViews(snap *model.Snapshot, now time.Time) {
	assignmentIDs := make([]int, 0, len(snap.Assignments))
	for id := range snap.Assignments {
		assignmentIDs = append(assignmentIDs, id)
	}
	sort.Ints(assignmentIDs)

	for _, id := range assignmentIDs {
		a := snap.Assignments[id]
		snap.AssignmentsByCourse[a.CourseID] = append(snap.AssignmentsByCourse[a.CourseID], id)

		if a.Status.Completed() {
			continue
		}
		if a.DueAt != nil && a.DueAt.After(now) {
			snap.Upcoming = append(snap.Upcoming, id)
		} else {
			snap.Unsubmitted = append(snap.Unsubmitted, id)
		}
	}

	announcementIDs := make([]int, 0, len(snap.Announcements))
	for id := range snap.Announcements {
		announcementIDs = append(announcementIDs, id)
	}
	sort.Ints(announcementIDs)

	for _, id := range announcementIDs {
		a := snap.Announcements[id]
		snap.AnnouncementsByCourse[a.CourseID] = append(snap.AnnouncementsByCourse[a.CourseID], id)
	}
}
