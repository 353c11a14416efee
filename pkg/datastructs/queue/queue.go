package queue

import "context"

// Queue is a generic interface for bounded FIFO queues with backpressure.
type Queue[T any] interface {
	// Put adds an item to the tail, blocking while the queue is full.
	Put(item T)

	// Get removes and returns the head item, blocking while the queue is empty.
	Get() T

	// PutContext is Put that gives up when ctx is done.
	// Returns ctx.Err() in that case and leaves the queue unchanged.
	PutContext(ctx context.Context, item T) error

	// GetContext is Get that gives up when ctx is done.
	// Returns ctx.Err() in that case and leaves the queue unchanged.
	GetContext(ctx context.Context) (T, error)

	// TryPut adds an item without blocking.
	// Returns false if the queue is full.
	TryPut(item T) bool

	// TryGet removes and returns the head item without blocking.
	// Returns (zero, false) if the queue is empty.
	TryGet() (T, bool)

	// Size returns the number of items at the instant of the call.
	Size() int

	// Capacity returns the maximum number of items the queue holds.
	Capacity() int
}
