package dashboard

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jrcapio/lasalleboard/internal/canvas"
)

// gatedFetcher blocks its first favorites fetch until released, so a
// test can interleave two refreshes deterministically.
type gatedFetcher struct {
	mu      sync.Mutex
	calls   int
	started chan struct{}
	release chan struct{}
}

func (f *gatedFetcher) FetchFavoriteCourses(ctx context.Context) ([]canvas.RawCourse, error) {
	f.mu.Lock()
	f.calls++
	first := f.calls == 1
	f.mu.Unlock()

	if first {
		close(f.started)
		<-f.release
	}
	return []canvas.RawCourse{{ID: 1, Name: "CSARCH2 - S11"}}, nil
}

func (f *gatedFetcher) FetchAssignments(ctx context.Context, courseID int) ([]canvas.RawAssignment, error) {
	return nil, nil
}

func (f *gatedFetcher) FetchAnnouncements(
	ctx context.Context, courseIDs []int, start, end time.Time,
) ([]canvas.RawAnnouncement, error) {
	return nil, nil
}

func TestRefresher_StoresSnapshot(t *testing.T) {
	r := NewRefresher(NewBuilder(&stubFetcher{
		courses: []canvas.RawCourse{{ID: 1, Name: "CSARCH2 - S11"}},
	}, 14))

	assert.Nil(t, r.Snapshot(), "no snapshot before the first refresh")

	snap, err := r.Refresh(context.Background())
	require.NoError(t, err)
	require.NotNil(t, snap)
	assert.Same(t, snap, r.Snapshot())
	assert.NotEmpty(t, snap.Generation)
}

func TestRefresher_SlowOlderRefreshIsDiscarded(t *testing.T) {
	f := &gatedFetcher{
		started: make(chan struct{}),
		release: make(chan struct{}),
	}
	r := NewRefresher(NewBuilder(f, 14))

	type result struct {
		err error
	}
	firstDone := make(chan result, 1)

	go func() {
		_, err := r.Refresh(context.Background())
		firstDone <- result{err: err}
	}()

	// Wait until the first refresh is in flight, then run a second one
	// to completion while the first is still blocked upstream.
	<-f.started
	second, err := r.Refresh(context.Background())
	require.NoError(t, err)

	// Unblock the first refresh; it finished after being superseded, so
	// its snapshot must be discarded.
	close(f.release)
	res := <-firstDone
	require.ErrorIs(t, res.err, ErrStaleRefresh)

	assert.Same(t, second, r.Snapshot(), "the newer refresh's snapshot must survive")
}
