package progress

import (
	"context"
	"sync"
	"time"

	"github.com/viant/gqlotel/internal/clock"
)

// Delta represents an incremental counter change emitted around a field
// resolution.  The fields are signed and therefore can be either positive
// (increment) or negative (decrement).
type Delta struct {
	Total         int
	Completed     int
	Failed        int
	Running       int
	Introspection int
}

// Progress is a point-in-time view of a request's counters.
type Progress struct {
	RequestID  string
	Operation  string
	StartedAt  time.Time
	FinishedAt time.Time

	TotalFields         int
	CompletedFields     int
	FailedFields        int
	RunningFields       int
	IntrospectionFields int
}

// Done reports whether the request has finished.
func (p Progress) Done() bool {
	return !p.FinishedAt.IsZero()
}

// Elapsed returns the request duration so far, or in total once done.
func (p Progress) Elapsed() time.Duration {
	if p.Done() {
		return p.FinishedAt.Sub(p.StartedAt)
	}
	return clock.Since(p.StartedAt)
}

// Tracker aggregates counters for one request. It is safe for concurrent use.
type Tracker struct {
	mu       sync.Mutex
	progress Progress
	onChange func(Progress)
}

// Update applies the supplied delta.  If an onChange callback has been
// registered it is invoked with a snapshot outside the critical section.
func (t *Tracker) Update(d Delta) {
	if t == nil {
		return
	}
	t.mu.Lock()
	t.progress.TotalFields += d.Total
	t.progress.CompletedFields += d.Completed
	t.progress.FailedFields += d.Failed
	t.progress.RunningFields += d.Running
	t.progress.IntrospectionFields += d.Introspection
	snapshot := t.progress
	cb := t.onChange
	t.mu.Unlock()

	if cb != nil {
		cb(snapshot)
	}
}

// SetOperation records the executed operation name.
func (t *Tracker) SetOperation(name string) {
	if t == nil {
		return
	}
	t.mu.Lock()
	t.progress.Operation = name
	t.mu.Unlock()
}

// Finish stamps the end time and notifies the callback.
func (t *Tracker) Finish() {
	if t == nil {
		return
	}
	t.mu.Lock()
	t.progress.FinishedAt = clock.Now()
	snapshot := t.progress
	cb := t.onChange
	t.mu.Unlock()

	if cb != nil {
		cb(snapshot)
	}
}

// Snapshot returns a copy of the counters.
func (t *Tracker) Snapshot() Progress {
	if t == nil {
		return Progress{}
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.progress
}

// ----------------------------------------------------------------------------
// Context helpers
// ----------------------------------------------------------------------------

type trackerKeyT struct{}

var trackerKey trackerKeyT

// WithNewTracker creates a tracker, embeds it in a derived context and
// returns both.  onChange may be nil.
func WithNewTracker(ctx context.Context, requestID string, onChange func(Progress)) (context.Context, *Tracker) {
	if ctx == nil {
		ctx = context.Background()
	}
	tr := &Tracker{
		progress: Progress{RequestID: requestID, StartedAt: clock.Now()},
		onChange: onChange,
	}
	return context.WithValue(ctx, trackerKey, tr), tr
}

// FromContext extracts the tracker from ctx.
func FromContext(ctx context.Context) (*Tracker, bool) {
	if ctx == nil {
		return nil, false
	}
	tr, ok := ctx.Value(trackerKey).(*Tracker)
	return tr, ok
}

// GetSnapshot combines FromContext and Snapshot.
func GetSnapshot(ctx context.Context) (Progress, bool) {
	if tr, ok := FromContext(ctx); ok {
		return tr.Snapshot(), true
	}
	return Progress{}, false
}

// UpdateCtx applies the delta to the tracker in ctx, if any.
func UpdateCtx(ctx context.Context, d Delta) {
	if tr, ok := FromContext(ctx); ok {
		tr.Update(d)
	}
}
