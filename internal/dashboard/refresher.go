package dashboard

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/jrcapio/lasalleboard/internal/model"
)

// ErrStaleRefresh is returned when a refresh completes after a newer one
// has already been started; its snapshot is discarded.
var ErrStaleRefresh = errors.New("refresh superseded by a newer one")

// Refresher serializes snapshot replacement. Each refresh is tagged with
// a generation; a newer refresh starting invalidates every older one, so
// a slow earlier fetch can never overwrite a later result ("last started
// wins"). Readers get the current snapshot through an atomic pointer and
// never block on an in-flight refresh.
type Refresher struct {
	builder *Builder

	mu         sync.Mutex
	currentGen string

	snapshot atomic.Pointer[model.Snapshot]
}

// NewRefresher creates a Refresher around the given builder.
func NewRefresher(b *Builder) *Refresher {
	return &Refresher{builder: b}
}

// Refresh runs one aggregation pass and, if it is still the most recent
// refresh on completion, swaps its snapshot in. A superseded refresh
// returns ErrStaleRefresh; build failures propagate unchanged.
func (r *Refresher) Refresh(ctx context.Context) (*model.Snapshot, error) {
	gen := uuid.NewString()

	r.mu.Lock()
	r.currentGen = gen
	r.mu.Unlock()

	snap, err := r.builder.Build(ctx, gen)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.currentGen != gen {
		return nil, ErrStaleRefresh
	}

	r.snapshot.Store(snap)
	return snap, nil
}

// Snapshot returns the most recently completed snapshot, or nil before
// the first successful refresh.
func (r *Refresher) Snapshot() *model.Snapshot {
	return r.snapshot.Load()
}
