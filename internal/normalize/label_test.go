package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanonicalCourseLabel(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "bracketed registrar name",
			in:   "[1221_NSTP101_S25E] - NATIONAL SERVICE TRAINING PROGRAM- GENERAL ORIENTATION",
			want: "NSTP101 - S25E",
		},
		{
			name: "already canonical passes through",
			in:   "NSTP101 - S25E",
			want: "NSTP101 - S25E",
		},
		{
			name: "descriptive multi-word name unchanged",
			in:   "CCS Student Handbook",
			want: "CCS Student Handbook",
		},
		{
			name: "keyword name unchanged",
			in:   "Freshman-Orientation",
			want: "Freshman-Orientation",
		},
		{
			name: "bare code with trailing junk takes leading code token",
			in:   "CSMATH1X2024",
			want: "CSMATH1",
		},
		{
			name: "no recognizable code falls back to first token",
			in:   "ABCDEF",
			want: "ABCDEF",
		},
		{
			name: "bracketed with different term",
			in:   "[1223_LCLSONE_EQ1] - Lasallian Core Course",
			want: "LCLSONE - EQ1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanonicalCourseLabel(tt.in))
		})
	}
}

func TestCanonicalCourseLabel_Idempotent(t *testing.T) {
	inputs := []string{
		"[1221_NSTP101_S25E] - NATIONAL SERVICE TRAINING PROGRAM- GENERAL ORIENTATION",
		"NSTP101 - S25E",
		"CCS Student Handbook",
		"CSMATH1X2024",
		"ABCDEF",
		"Animo Lounge",
	}

	for _, in := range inputs {
		once := CanonicalCourseLabel(in)
		twice := CanonicalCourseLabel(once)
		assert.Equal(t, once, twice, "canonicalize(%q) is not idempotent", in)
	}
}
