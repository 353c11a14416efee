package queue

import (
	"context"

	"github.com/pkg/errors"
)

var _ Queue[int] = (*ChanQueue[int])(nil)

// ChanQueue is a Queue backed by a buffered channel.
// It has the same blocking behavior as BoundedQueue but no Stats or Snapshot.
type ChanQueue[T any] struct {
	ch chan T
}

// NewChanQueue creates a channel-backed queue holding at most capacity items.
func NewChanQueue[T any](capacity int) (*ChanQueue[T], error) {
	if capacity <= 0 {
		return nil, errors.Wrapf(ErrInvalidCapacity, "capacity %d", capacity)
	}
	return &ChanQueue[T]{ch: make(chan T, capacity)}, nil
}

func (q *ChanQueue[T]) Put(item T) { q.ch <- item }

func (q *ChanQueue[T]) Get() T { return <-q.ch }

// PutContext prefers room over a done ctx, matching BoundedQueue.
func (q *ChanQueue[T]) PutContext(ctx context.Context, item T) error {
	if q.TryPut(item) {
		return nil
	}
	select {
	case q.ch <- item:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (q *ChanQueue[T]) GetContext(ctx context.Context) (T, error) {
	if item, ok := q.TryGet(); ok {
		return item, nil
	}
	select {
	case item := <-q.ch:
		return item, nil
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

func (q *ChanQueue[T]) TryPut(item T) bool {
	select {
	case q.ch <- item:
		return true
	default:
		return false
	}
}

func (q *ChanQueue[T]) TryGet() (T, bool) {
	select {
	case item := <-q.ch:
		return item, true
	default:
		var zero T
		return zero, false
	}
}

// Size returns len of the channel, which is racy by nature.
func (q *ChanQueue[T]) Size() int { return len(q.ch) }

func (q *ChanQueue[T]) Capacity() int { return cap(q.ch) }
