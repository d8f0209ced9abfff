// Package latest holds a single most-recent value and fans it out to
// subscribers through depth-1 channels. A publish never blocks: a subscriber
// that has not consumed the previous value has it replaced by the new one.
package latest

import (
	"context"
	"sync"
)

// Value is a conflated, observable holder of the most recent T.
// The zero value is not usable; construct with New.
type Value[T any] struct {
	mu      sync.Mutex
	current T
	set     bool
	version uint64
	subs    map[chan T]struct{}
}

// New returns an empty Value.
func New[T any]() *Value[T] {
	return &Value[T]{subs: make(map[chan T]struct{})}
}

// NewWith returns a Value that already holds v.
func NewWith[T any](v T) *Value[T] {
	l := New[T]()
	l.Publish(v)
	return l
}

// Publish stores v and offers it to every subscriber. It returns how many
// subscribers had an unconsumed value replaced.
func (l *Value[T]) Publish(v T) (dropped int) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.current = v
	l.set = true
	l.version++
	for ch := range l.subs {
		select {
		case <-ch:
			dropped++
		default:
		}
		// Only publishers send and they hold mu, so the buffer is empty here.
		ch <- v
	}
	return dropped
}

// Update applies fn to the current value under the lock and publishes the
// result. fn receives the zero T and false when nothing was published yet.
func (l *Value[T]) Update(fn func(cur T, ok bool) T) (next T, dropped int) {
	l.mu.Lock()
	defer l.mu.Unlock()

	next = fn(l.current, l.set)
	l.current = next
	l.set = true
	l.version++
	for ch := range l.subs {
		select {
		case <-ch:
			dropped++
		default:
		}
		ch <- next
	}
	return next, dropped
}

// Load returns the current value and whether one has been published.
func (l *Value[T]) Load() (T, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.current, l.set
}

// publishes counts publishes so far.
func (l *Value[T]) publishes() uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.version
}

// Subscribe returns a channel that receives the current value (if any)
// immediately and every later publish, conflated to depth 1. The channel is
// closed once ctx is done.
func (l *Value[T]) Subscribe(ctx context.Context) <-chan T {
	ch := make(chan T, 1)

	l.mu.Lock()
	if l.set {
		ch <- l.current
	}
	l.subs[ch] = struct{}{}
	l.mu.Unlock()

	go func() {
		<-ctx.Done()
		l.mu.Lock()
		delete(l.subs, ch)
		close(ch)
		l.mu.Unlock()
	}()
	return ch
}

// subscribers reports the number of live subscriptions.
func (l *Value[T]) subscribers() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.subs)
}
