package backend

import (
	"context"
	"sync"
)

// Future holds the single outcome of a request handled by a Wrapper.
type Future struct {
	once  sync.Once
	done  chan struct{}
	value any
}

func newFuture() *Future {
	return &Future{done: make(chan struct{})}
}

// resolve sets the value and reports whether this call was the one that did it.
// Later calls are ignored.
func (f *Future) resolve(v any) bool {
	resolved := false
	f.once.Do(func() {
		f.value = v
		close(f.done)
		resolved = true
	})
	return resolved
}

// Done is closed once the value is available.
func (f *Future) Done() <-chan struct{} {
	return f.done
}

// Value returns the resolved value, or nil if the Future is still pending.
func (f *Future) Value() any {
	select {
	case <-f.done:
		return f.value
	default:
		return nil
	}
}

// Wait blocks until the Future resolves or ctx is done.
func (f *Future) Wait(ctx context.Context) (any, error) {
	select {
	case <-f.done:
		return f.value, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
