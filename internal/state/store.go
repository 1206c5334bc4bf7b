package state

import (
	"context"
	"time"
)

// Phase is where a load currently stands.
type Phase int

const (
	Loading Phase = iota
	Failed
	Ready
)

func (p Phase) String() string {
	switch p {
	case Loading:
		return "loading"
	case Failed:
		return "failed"
	case Ready:
		return "ready"
	default:
		return "unknown"
	}
}

// Token identifies one request issued by a Load. Responses carrying an older
// token are stale and must be ignored.
type Token uint64

// Load tracks the data behind one view: the phase, the last value or error and
// the generation of the request in flight. The zero value is Loading with no
// request issued.
type Load[T any] struct {
	phase   Phase
	value   T
	err     error
	gen     Token
	cancel  context.CancelFunc
	updated time.Time
}

// Begin starts a new request. Any request still in flight is cancelled and its
// token becomes stale. The returned context is derived from parent and is
// cancelled by the next Begin or by Cancel.
func (l *Load[T]) Begin(parent context.Context) (context.Context, Token) {
	l.Cancel()
	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := context.WithCancel(parent)
	l.gen++
	l.cancel = cancel
	l.phase = Loading
	l.err = nil
	var zero T
	l.value = zero
	return ctx, l.gen
}

// Cancel aborts the request in flight, if any, and makes its token stale. The
// phase is left untouched.
func (l *Load[T]) Cancel() {
	if l.cancel != nil {
		l.cancel()
		l.cancel = nil
	}
	l.gen++
}

// Current reports whether tok belongs to the request in flight.
func (l *Load[T]) Current(tok Token) bool {
	return tok == l.gen && l.cancel != nil
}

// Resolve records the outcome of the request identified by tok. It returns
// false, changing nothing, when tok is stale.
func (l *Load[T]) Resolve(tok Token, value T, err error) bool {
	if !l.Current(tok) {
		return false
	}
	l.cancel()
	l.cancel = nil
	l.updated = time.Now()
	if err != nil {
		l.phase = Failed
		l.err = err
		return true
	}
	l.phase = Ready
	l.value = value
	return true
}

// Set replaces the value of a ready load, used for local optimistic edits. It
// is a no-op in any other phase.
func (l *Load[T]) Set(value T) {
	if l.phase == Ready {
		l.value = value
	}
}

// Phase returns the current phase.
func (l *Load[T]) Phase() Phase { return l.phase }

// Value returns the loaded value; only meaningful when Ready.
func (l *Load[T]) Value() T { return l.value }

// Err returns the failure of the last request; only set when Failed.
func (l *Load[T]) Err() error { return l.err }

// Updated returns when the last request resolved.
func (l *Load[T]) Updated() time.Time { return l.updated }
