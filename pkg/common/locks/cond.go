package locks

import (
	"context"
	"sync"
)

// Cond is a condition variable bound to a Locker, in the spirit of sync.Cond,
// whose Wait can be abandoned through a context.
//
// All methods must be called with L held. Waiters are woken in the order they
// started waiting, but callers must still re-check their predicate in a loop:
// another goroutine may acquire L between the wake-up and the relock.
type Cond struct {
	L sync.Locker

	waiters []chan struct{}
}

// NewCond returns a new Cond with Locker l.
func NewCond(l sync.Locker) *Cond {
	return &Cond{L: l}
}

// Wait atomically unlocks c.L and suspends the calling goroutine until it is
// woken by Signal or Broadcast, or until ctx is done. c.L is locked again
// before Wait returns, on every path.
//
// Wait returns ctx.Err() if the context ended. A wake-up delivered to a
// cancelled waiter is handed to the next waiter so it is never lost.
func (c *Cond) Wait(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	ch := make(chan struct{})
	c.waiters = append(c.waiters, ch)

	c.L.Unlock()
	select {
	case <-ch:
		c.L.Lock()
		return nil
	case <-ctx.Done():
	}
	c.L.Lock()

	if !c.remove(ch) {
		// Signalled between ctx.Done and the relock.
		c.Signal()
	}
	return ctx.Err()
}

// Signal wakes the longest waiting goroutine, if there is one.
func (c *Cond) Signal() {
	if len(c.waiters) == 0 {
		return
	}
	ch := c.waiters[0]
	c.waiters[0] = nil
	c.waiters = c.waiters[1:]
	close(ch)
}

// Broadcast wakes all waiting goroutines.
func (c *Cond) Broadcast() {
	for _, ch := range c.waiters {
		close(ch)
	}
	c.waiters = nil
}

// Waiters returns the number of goroutines parked in Wait.
func (c *Cond) Waiters() int {
	return len(c.waiters)
}

// remove drops ch from the waiter list and reports whether it was still there.
func (c *Cond) remove(ch chan struct{}) bool {
	for i, w := range c.waiters {
		if w == ch {
			copy(c.waiters[i:], c.waiters[i+1:])
			c.waiters[len(c.waiters)-1] = nil
			c.waiters = c.waiters[:len(c.waiters)-1]
			return true
		}
	}
	return false
}
