// Package driver runs producer and consumer goroutines around a queue.Queue
// using only its public API.
package driver

import (
	"context"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/huynhanx03/go-bqueue/pkg/datastructs/queue"
	"github.com/huynhanx03/go-bqueue/pkg/settings"
)

// Item is a value tagged with the producer that made it and its position in
// that producer's sequence.
type Item struct {
	Producer int `json:"producer"`
	Seq      int `json:"seq"`
}

// Report summarizes a finished run.
type Report struct {
	Produced    int
	Consumed    int
	PerConsumer map[int][]Item
	Duration    time.Duration

	producers        int
	itemsPerProducer int
}

// Run starts cfg.Producers producers, each putting cfg.ItemsPerProducer
// items, and cfg.Consumers consumers that together get every item. Each
// goroutine pauses a random duration in [MinDelay, MaxDelay] after every
// operation.
//
// Run returns once all goroutines have exited. If ctx ends first, the
// partial report is returned with ctx.Err().
func Run(ctx context.Context, q queue.Queue[Item], cfg settings.Driver, log *zap.Logger) (*Report, error) {
	if cfg.Producers <= 0 || cfg.Consumers <= 0 {
		return nil, errors.Errorf("driver needs producers and consumers, got %d/%d", cfg.Producers, cfg.Consumers)
	}
	if log == nil {
		log = zap.NewNop()
	}

	rep := &Report{
		PerConsumer:      make(map[int][]Item, cfg.Consumers),
		producers:        cfg.Producers,
		itemsPerProducer: cfg.ItemsPerProducer,
	}
	var mu sync.Mutex

	start := time.Now()
	g, gctx := errgroup.WithContext(ctx)

	for p := 0; p < cfg.Producers; p++ {
		id := p
		g.Go(func() error {
			for seq := 0; seq < cfg.ItemsPerProducer; seq++ {
				item := Item{Producer: id, Seq: seq}
				if err := q.PutContext(gctx, item); err != nil {
					return errors.Wrapf(err, "producer %d", id)
				}
				mu.Lock()
				rep.Produced++
				mu.Unlock()
				log.Debug("produced", zap.Int("producer", id), zap.Int("seq", seq))

				if err := pause(gctx, cfg.MinDelay, cfg.MaxDelay); err != nil {
					return errors.Wrapf(err, "producer %d", id)
				}
			}
			return nil
		})
	}

	total := cfg.Producers * cfg.ItemsPerProducer
	for c := 0; c < cfg.Consumers; c++ {
		id := c
		share := total / cfg.Consumers
		if id < total%cfg.Consumers {
			share++
		}
		g.Go(func() error {
			for i := 0; i < share; i++ {
				item, err := q.GetContext(gctx)
				if err != nil {
					return errors.Wrapf(err, "consumer %d", id)
				}
				mu.Lock()
				rep.Consumed++
				rep.PerConsumer[id] = append(rep.PerConsumer[id], item)
				mu.Unlock()
				log.Debug("consumed", zap.Int("consumer", id),
					zap.Int("producer", item.Producer), zap.Int("seq", item.Seq))

				if err := pause(gctx, cfg.MinDelay, cfg.MaxDelay); err != nil {
					return errors.Wrapf(err, "consumer %d", id)
				}
			}
			return nil
		})
	}

	err := g.Wait()
	rep.Duration = time.Since(start)

	log.Info("driver finished",
		zap.Int("produced", rep.Produced),
		zap.Int("consumed", rep.Consumed),
		zap.Duration("duration", rep.Duration),
		zap.Error(err))

	return rep, err
}

// Verify checks that every produced item was consumed exactly once and that
// each consumer saw any one producer's items in increasing order.
func (r *Report) Verify() error {
	seen := make(map[Item]int, r.Consumed)
	for consumer, items := range r.PerConsumer {
		last := make(map[int]int)
		for _, item := range items {
			if item.Producer < 0 || item.Producer >= r.producers ||
				item.Seq < 0 || item.Seq >= r.itemsPerProducer {
				return errors.Wrapf(ErrUnknownItem, "%+v", item)
			}
			if prev, ok := last[item.Producer]; ok && item.Seq <= prev {
				return errors.Wrapf(ErrOutOfOrder, "consumer %d: producer %d seq %d after %d",
					consumer, item.Producer, item.Seq, prev)
			}
			last[item.Producer] = item.Seq
			seen[item]++
		}
	}

	for p := 0; p < r.producers; p++ {
		for s := 0; s < r.itemsPerProducer; s++ {
			item := Item{Producer: p, Seq: s}
			switch n := seen[item]; {
			case n == 0:
				return errors.Wrapf(ErrLostItem, "%+v", item)
			case n > 1:
				return errors.Wrapf(ErrDuplicateItem, "%+v seen %d times", item, n)
			}
		}
	}
	return nil
}

// pause sleeps a random duration in [lo, hi] or until ctx ends.
func pause(ctx context.Context, lo, hi time.Duration) error {
	d := lo
	if hi > lo {
		d += rand.N(hi - lo + 1)
	}
	if d <= 0 {
		return ctx.Err()
	}

	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
