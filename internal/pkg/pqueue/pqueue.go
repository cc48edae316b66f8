// Package pqueue provides a bounded, blocking priority queue.
//
// The queue is the only shared structure between goroutines that take items
// out, work on them privately, and put them back. Its critical sections cover
// exactly one heap operation each: Pop and Push hold the lock for O(log n),
// never for the work done on an item between them.
package pqueue

import (
	"container/heap"
	"context"
	"sync"
)

type Queue[T any] struct {
	mu    sync.Mutex
	cond  *sync.Cond // signalled on Push; broadcast on context cancellation
	items items[T]
	max   int
}

// New returns an empty queue holding at most capacity items, ordered so that
// Pop yields the minimal item under less.
func New[T any](capacity int, less func(a, b T) bool) *Queue[T] {
	if capacity <= 0 {
		panic("pqueue: capacity must be positive")
	}
	if less == nil {
		panic("pqueue: nil less function")
	}
	q := &Queue[T]{
		items: items[T]{s: make([]T, 0, capacity), less: less},
		max:   capacity,
	}
	q.cond = sync.NewCond(&q.mu)
	return q
}

// Push inserts v and wakes one blocked Pop.
// Pushing into a full queue means an item was put back twice; it panics.
func (q *Queue[T]) Push(v T) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.items.Len() >= q.max {
		panic("pqueue: push exceeds capacity")
	}
	heap.Push(&q.items, v)
	q.cond.Signal()
}

// Pop removes and returns the minimal item, blocking while the queue is empty.
// It returns ctx.Err() only if ctx ends while blocked; an available item is
// always returned even when ctx is already done.
func (q *Queue[T]) Pop(ctx context.Context) (T, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.items.Len() == 0 {
		stop := context.AfterFunc(ctx, func() {
			q.mu.Lock()
			q.cond.Broadcast()
			q.mu.Unlock()
		})
		defer stop()

		for q.items.Len() == 0 {
			if err := ctx.Err(); err != nil {
				var zero T
				return zero, err
			}
			q.cond.Wait() // releases q.mu while blocked
		}
	}
	return heap.Pop(&q.items).(T), nil
}

func (q *Queue[T]) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.items.Len()
}

func (q *Queue[T]) Cap() int { return q.max }

// Range calls fn for every queued item, in heap order, with the lock held.
// fn must not call back into the queue.
func (q *Queue[T]) Range(fn func(T)) {
	q.mu.Lock()
	defer q.mu.Unlock()
	for _, v := range q.items.s {
		fn(v)
	}
}

// items implements heap.Interface.
type items[T any] struct {
	s    []T
	less func(a, b T) bool
}

func (h *items[T]) Len() int           { return len(h.s) }
func (h *items[T]) Less(i, j int) bool { return h.less(h.s[i], h.s[j]) }
func (h *items[T]) Swap(i, j int)      { h.s[i], h.s[j] = h.s[j], h.s[i] }

func (h *items[T]) Push(x any) {
	h.s = append(h.s, x.(T))
}

func (h *items[T]) Pop() any {
	n := len(h.s)
	v := h.s[n-1]
	var zero T
	h.s[n-1] = zero
	h.s = h.s[:n-1]
	return v
}
