package testutil

import (
	"testing"

	"github.com/jrcapio/lasalleboard/internal/prefs"
)

// NewTestStore creates an in-memory preference store with all migrations
// applied. It automatically closes the store when the test completes.
func NewTestStore(t *testing.T) *prefs.SQLiteStore {
	t.Helper()

	s, err := prefs.NewSQLiteStore(":memory:")
	if err != nil {
		t.Fatalf("creating test store: %v", err)
	}

	t.Cleanup(func() {
		if err := s.Close(); err != nil {
			t.Errorf("closing test store: %v", err)
		}
	})

	return s
}
