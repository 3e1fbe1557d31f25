// Package history provides a generic undo/redo engine over immutable values.
package history

import "reflect"

// EqualFunc reports whether two values are structurally equal.
type EqualFunc[T any] func(a, b T) bool

// Snapshot is a copy of the engine state. Future is ordered so that Future[0]
// is the value the next Redo installs.
type Snapshot[T any] struct {
	Past    []T
	Present T
	Future  []T
}

// History records a linear sequence of values with undo and redo. Setting a
// value equal to the present is a no-op. History is not safe for concurrent
// use; callers serialize access.
type History[T any] struct {
	past    []T
	present T
	// future is stored reversed: the last element is the next redo target.
	future []T
	equal  EqualFunc[T]
	limit  int
}

// Option configures a History.
type Option[T any] func(*History[T])

// WithLimit caps the number of undo steps kept. The oldest entries are
// dropped first. Zero or less means unlimited.
func WithLimit[T any](n int) Option[T] {
	return func(h *History[T]) {
		if n > 0 {
			h.limit = n
		}
	}
}

// New creates a History whose present is initial. A nil equal falls back to
// reflect.DeepEqual.
func New[T any](initial T, equal EqualFunc[T], opts ...Option[T]) *History[T] {
	if equal == nil {
		equal = func(a, b T) bool { return reflect.DeepEqual(a, b) }
	}
	h := &History[T]{present: initial, equal: equal}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Present returns the current value.
func (h *History[T]) Present() T {
	return h.present
}

// CanUndo reports whether past is non-empty.
func (h *History[T]) CanUndo() bool {
	return len(h.past) > 0
}

// CanRedo reports whether future is non-empty.
func (h *History[T]) CanRedo() bool {
	return len(h.future) > 0
}

// Set installs next as the present. It returns false, leaving the state
// untouched, when next equals the present. Otherwise the old present is
// pushed onto past and future is discarded.
func (h *History[T]) Set(next T) bool {
	if h.equal(h.present, next) {
		return false
	}
	h.past = append(h.past, h.present)
	if h.limit > 0 && len(h.past) > h.limit {
		drop := len(h.past) - h.limit
		h.past = append(h.past[:0:0], h.past[drop:]...)
	}
	h.present = next
	h.future = nil
	return true
}

// Update computes the candidate from the latest present and applies it as Set.
func (h *History[T]) Update(fn func(T) T) bool {
	return h.Set(fn(h.present))
}

// Undo moves back one step. It returns false when past is empty.
func (h *History[T]) Undo() bool {
	if len(h.past) == 0 {
		return false
	}
	last := len(h.past) - 1
	prev := h.past[last]
	h.past = h.past[:last]
	h.future = append(h.future, h.present)
	h.present = prev
	return true
}

// Redo moves forward one step. It returns false when future is empty.
func (h *History[T]) Redo() bool {
	if len(h.future) == 0 {
		return false
	}
	last := len(h.future) - 1
	next := h.future[last]
	h.future = h.future[:last]
	h.past = append(h.past, h.present)
	h.present = next
	return true
}

// Snapshot returns a copy of the state.
func (h *History[T]) Snapshot() Snapshot[T] {
	future := make([]T, len(h.future))
	for i, v := range h.future {
		future[len(h.future)-1-i] = v
	}
	return Snapshot[T]{
		Past:    append([]T(nil), h.past...),
		Present: h.present,
		Future:  future,
	}
}
