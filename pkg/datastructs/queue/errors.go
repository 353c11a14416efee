package queue

import "errors"

// ErrInvalidCapacity is returned when a queue is constructed with capacity <= 0.
var ErrInvalidCapacity = errors.New("queue capacity must be positive")
