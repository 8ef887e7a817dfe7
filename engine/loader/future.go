package loader

import (
	"context"

	"github.com/Carmen-Shannon/oxy-viewer/engine/scene"
)

// Result is the outcome of an asynchronous model load. Exactly one of Root and Err is set.
type Result struct {
	// Root is the imported node tree on success.
	Root *scene.Node
	// Err is the failure reason.
	Err error
}

// OK reports whether the load succeeded.
func (r Result) OK() bool {
	return r.Err == nil && r.Root != nil
}

// Future is a single-assignment container for a Result that becomes available later.
// It resolves exactly once; readers may poll Result, select on Done or block in Wait.
type Future struct {
	done   chan struct{}
	result Result
}

func newFuture() *Future {
	return &Future{done: make(chan struct{})}
}

// Resolved returns a Future that already holds r.
func Resolved(r Result) *Future {
	f := newFuture()
	f.resolve(r)
	return f
}

// resolve stores the result and releases every waiter. Must be called once.
func (f *Future) resolve(r Result) {
	f.result = r
	close(f.done)
}

// Done is closed when the result is available.
func (f *Future) Done() <-chan struct{} {
	return f.done
}

// Result returns the outcome without blocking.
//
// Returns:
//   - Result: the load outcome, zero until resolved
//   - bool: false if the load has not finished yet
func (f *Future) Result() (Result, bool) {
	select {
	case <-f.done:
		return f.result, true
	default:
		return Result{}, false
	}
}

// Wait blocks until the future resolves or ctx is done.
//
// Parameters:
//   - ctx: bounds the wait, not the load itself
//
// Returns:
//   - Result: the load outcome
//   - error: ctx.Err() if the context ended first
func (f *Future) Wait(ctx context.Context) (Result, error) {
	select {
	case <-f.done:
		return f.result, nil
	case <-ctx.Done():
		return Result{}, ctx.Err()
	}
}
