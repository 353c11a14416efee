package queue

import (
	"context"
	"sync"
	"time"

	ring "github.com/eapache/queue"
	"github.com/pkg/errors"

	"github.com/huynhanx03/go-bqueue/pkg/common/locks"
)

var _ Queue[int] = (*BoundedQueue[int])(nil)

// Stats is a point-in-time view of a BoundedQueue taken under its lock.
type Stats struct {
	Size     int    `json:"size"`
	Capacity int    `json:"capacity"`
	Puts     uint64 `json:"puts"`
	Gets     uint64 `json:"gets"`
}

// BoundedQueue is a fixed-capacity FIFO queue safe for any number of
// concurrent producers and consumers.
//
// Producers block while the queue is full and consumers block while it is
// empty. A single mutex guards the buffer; notEmpty and notFull are condition
// variables on that mutex. Items leave in the order they entered, as
// serialized by the mutex. Which blocked goroutine is woken first is not
// part of the contract.
type BoundedQueue[T any] struct {
	mu       sync.Mutex
	notEmpty *locks.Cond // signalled after an item is added
	notFull  *locks.Cond // signalled after an item is removed

	buf      *ring.Queue
	capacity int

	puts uint64
	gets uint64
}

// NewBounded creates a queue holding at most capacity items.
// Returns an error wrapping ErrInvalidCapacity if capacity <= 0.
func NewBounded[T any](capacity int) (*BoundedQueue[T], error) {
	if capacity <= 0 {
		return nil, errors.Wrapf(ErrInvalidCapacity, "capacity %d", capacity)
	}

	q := &BoundedQueue[T]{
		buf:      ring.New(),
		capacity: capacity,
	}
	q.notEmpty = locks.NewCond(&q.mu)
	q.notFull = locks.NewCond(&q.mu)

	return q, nil
}

// MustNewBounded is like NewBounded but panics on an invalid capacity.
func MustNewBounded[T any](capacity int) *BoundedQueue[T] {
	q, err := NewBounded[T](capacity)
	if err != nil {
		panic(err)
	}
	return q
}

// Put adds item to the tail, blocking until there is room.
func (q *BoundedQueue[T]) Put(item T) {
	// Background never ends, so the wait cannot fail.
	_ = q.PutContext(context.Background(), item)
}

// Get removes and returns the head item, blocking until one is available.
func (q *BoundedQueue[T]) Get() T {
	item, _ := q.GetContext(context.Background())
	return item
}

// PutContext adds item to the tail, blocking until there is room or ctx is
// done. On ctx.Err() the item was not added.
func (q *BoundedQueue[T]) PutContext(ctx context.Context, item T) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	for q.buf.Length() == q.capacity {
		if err := q.notFull.Wait(ctx); err != nil {
			return err
		}
	}

	q.push(item)
	return nil
}

// GetContext removes and returns the head item, blocking until one is
// available or ctx is done. On ctx.Err() nothing was removed.
func (q *BoundedQueue[T]) GetContext(ctx context.Context) (T, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	for q.buf.Length() == 0 {
		if err := q.notEmpty.Wait(ctx); err != nil {
			var zero T
			return zero, err
		}
	}

	return q.pop(), nil
}

// TryPut adds item if there is room. Returns false if the queue is full.
func (q *BoundedQueue[T]) TryPut(item T) bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.buf.Length() == q.capacity {
		return false
	}
	q.push(item)
	return true
}

// TryGet removes the head item if there is one.
// Returns (zero, false) if the queue is empty.
func (q *BoundedQueue[T]) TryGet() (T, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.buf.Length() == 0 {
		var zero T
		return zero, false
	}
	return q.pop(), true
}

// PutTimeout waits at most timeout for room. Returns false if the item was
// not added.
func (q *BoundedQueue[T]) PutTimeout(item T, timeout time.Duration) bool {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return q.PutContext(ctx, item) == nil
}

// GetTimeout waits at most timeout for an item.
// Returns (zero, false) if none arrived in time.
func (q *BoundedQueue[T]) GetTimeout(timeout time.Duration) (T, bool) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	item, err := q.GetContext(ctx)
	return item, err == nil
}

// Size returns the number of queued items. The value may be stale as soon as
// it is returned; do not use it to decide whether Get would block.
func (q *BoundedQueue[T]) Size() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.buf.Length()
}

// Capacity returns the maximum number of items.
func (q *BoundedQueue[T]) Capacity() int { return q.capacity }

// Stats returns a consistent snapshot of size and lifetime counters.
func (q *BoundedQueue[T]) Stats() Stats {
	q.mu.Lock()
	defer q.mu.Unlock()
	return Stats{
		Size:     q.buf.Length(),
		Capacity: q.capacity,
		Puts:     q.puts,
		Gets:     q.gets,
	}
}

// Snapshot returns a copy of the queued items, head first.
func (q *BoundedQueue[T]) Snapshot() []T {
	q.mu.Lock()
	defer q.mu.Unlock()

	items := make([]T, q.buf.Length())
	for i := range items {
		items[i], _ = q.buf.Get(i).(T)
	}
	return items
}

// push appends item and wakes one consumer. Caller holds q.mu.
func (q *BoundedQueue[T]) push(item T) {
	q.buf.Add(item)
	q.puts++
	q.notEmpty.Signal()
}

// pop removes the head and wakes one producer. Caller holds q.mu and has
// checked the buffer is non-empty.
func (q *BoundedQueue[T]) pop() T {
	// A stored nil fails the assertion and comes back as the zero T.
	item, _ := q.buf.Remove().(T)
	q.gets++
	q.notFull.Signal()
	return item
}
