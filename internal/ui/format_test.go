package ui

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDueLabel(t *testing.T) {
	now := time.Date(2026, time.March, 10, 12, 0, 0, 0, time.UTC)

	ptr := func(t time.Time) *time.Time { return &t }

	tests := []struct {
		name  string
		dueAt *time.Time
		want  string
	}{
		{"nil due date", nil, "no due date"},
		{"due in hours", ptr(now.Add(5 * time.Hour)), "due in 5h"},
		{"due in days", ptr(now.Add(72 * time.Hour)), "due in 3d"},
		{"due in weeks", ptr(now.Add(15 * 24 * time.Hour)), "due in 2w"},
		{"just overdue", ptr(now.Add(-30 * time.Minute)), "overdue 30m"},
		{"long overdue", ptr(now.Add(-50 * time.Hour)), "overdue 2d"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DueLabel(tt.dueAt, now))
		})
	}
}

func TestPostedLabel(t *testing.T) {
	now := time.Date(2026, time.March, 10, 12, 0, 0, 0, time.UTC)

	ptr := func(t time.Time) *time.Time { return &t }

	tests := []struct {
		name     string
		postedAt *time.Time
		want     string
	}{
		{"nil posted date", nil, "Not Indicated"},
		{"recent", ptr(now.Add(-3 * time.Hour)), "3h ago"},
		{"days old", ptr(now.Add(-4 * 24 * time.Hour)), "4d ago"},
		{"just inside the cutoff", ptr(now.Add(-299 * 24 * time.Hour)), "42w ago"},
		{"past the cutoff", ptr(now.Add(-301 * 24 * time.Hour)), "Not Indicated"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PostedLabel(tt.postedAt, now))
		})
	}
}
