// Package arena implements a monotonic bump allocator over a fixed
// reservation, in the style of the index-addressed allocators used
// throughout the outofforest/quantum storage engine: a single
// pre-sized backing slice, LIFO pop, and element-count bookkeeping.
// Arenas never relocate — every pointer handed out by Push remains
// valid until the arena itself is released.
package arena

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/Vivaldi101/SimpleTextureAtlas/internal/atlaserr"
)

// Arena is a bounded, non-thread-safe bump allocator for elements of type T.
type Arena[T any] struct {
	slots []T
	count int
}

// New reserves an arena with room for exactly capacity elements.
func New[T any](capacity int) (*Arena[T], error) {
	if capacity <= 0 {
		return nil, errors.Wrapf(atlaserr.ErrResource, "arena: capacity must be positive, got %d", capacity)
	}
	return &Arena[T]{slots: make([]T, capacity)}, nil
}

// Push reserves the next element and returns its stable index and a
// pointer to it. Fails when the reservation is exhausted.
func (a *Arena[T]) Push() (int, *T, error) {
	if a.count >= len(a.slots) {
		return 0, nil, errors.Wrapf(atlaserr.ErrResource, "arena: out of space (%d/%d elements used)", a.count, len(a.slots))
	}
	idx := a.count
	a.count++
	return idx, &a.slots[idx], nil
}

// Pop releases the top element. Fails on underflow.
func (a *Arena[T]) Pop() (T, error) {
	var zero T
	if a.count == 0 {
		return zero, errors.Wrap(atlaserr.ErrResource, "arena: pop underflow")
	}
	a.count--
	v := a.slots[a.count]
	a.slots[a.count] = zero
	return v, nil
}

// Top returns a pointer to the most recently pushed element without
// removing it. Panics via an InvariantViolation-wrapped error is not
// appropriate here since this is a caller-programming error, not a
// runtime data condition — callers must check IsEmpty first.
func (a *Arena[T]) Top() *T {
	if a.count == 0 {
		panic(fmt.Sprintf("arena: Top called on empty arena"))
	}
	return &a.slots[a.count-1]
}

// At returns a pointer to the element at the given index.
func (a *Arena[T]) At(index int) *T {
	if index < 0 || index >= a.count {
		panic(fmt.Sprintf("arena: At index %d out of range [0,%d)", index, a.count))
	}
	return &a.slots[index]
}

// Last is an alias for At(ElementCount() - 1).
func (a *Arena[T]) Last() *T {
	return a.Top()
}

// IsEmpty reports whether the arena currently holds no elements.
func (a *Arena[T]) IsEmpty() bool {
	return a.count == 0
}

// ElementCount returns the number of elements currently pushed.
func (a *Arena[T]) ElementCount() int {
	return a.count
}

// Capacity returns the total reservation size.
func (a *Arena[T]) Capacity() int {
	return len(a.slots)
}

// Release drops the arena's backing storage. Safe to call once; the
// arena must not be used afterwards.
func (a *Arena[T]) Release() {
	a.slots = nil
	a.count = 0
}
