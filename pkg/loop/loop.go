// Package loop runs a task repeatedly, passing each result to the next round.
//
// Example: purge expired records every hour, until ctx is done.
//
//	loop.Start(ctx, 0, func(ctx context.Context, total int64) (int64, loop.Next) {
//		n, err := payments.PurgeExpired(ctx, time.Now().Add(-retention))
//		if err != nil {
//			return total, loop.Break(err)
//		}
//		return total + n, loop.Continue(time.Hour)
//	})
package loop

import (
	"context"
	"fmt"
	"time"
)

// Next tells Start what to do after a round.
//
// The zero value means Continue(0).
type Next struct {
	err      error
	quit     bool
	interval time.Duration
}

func (n Next) String() string {
	switch {
	case n.err != nil:
		return fmt.Sprintf("[break] with error: %v", n.err)
	case n.quit:
		return "[break] without error"
	default:
		return fmt.Sprintf("[continue] interval: %s", n.interval)
	}
}

// Continue runs the next round after interval.
func Continue(interval time.Duration) Next {
	return Next{interval: interval}
}

// Break stops the loop. err is returned from Start (it can be nil).
func Break(err error) Next {
	return Next{quit: true, err: err}
}

// Task is a round of a loop.
//
// It receives the value returned by the previous round (or the initial value).
type Task[T any] func(context.Context, T) (T, Next)

// Start runs task repeatedly until it breaks or ctx is done.
//
// Args
//
// - ctx: When it is done, Start returns ctx.Err() after the current round.
//
// - init: the value passed to the first round.
//
// - task: a round of the loop.
//
// - options: LoopOption modifying contexts passed to each round.
//
// Returns
//
// - T: the value returned by the last round, even when an error is returned together.
//
// - error: error passed to Break, or ctx.Err().
func Start[T any](ctx context.Context, init T, task Task[T], options ...LoopOption) (T, error) {
	if err := ctx.Err(); err != nil {
		return init, err
	}

	value := init
	for {
		v, next := round(ctx, value, task, options)
		value = v
		if next.err != nil {
			return value, next.err
		}
		if next.quit {
			return value, nil
		}

		timer := time.NewTimer(next.interval)
		select {
		case <-ctx.Done():
			// shutting down goes first.
			timer.Stop()
			return value, ctx.Err()
		case <-timer.C:
		}
	}
}

func round[T any](ctx context.Context, value T, task Task[T], options []LoopOption) (T, Next) {
	lc := &loopConfig{ctx: ctx}
	for _, opt := range options {
		lc = opt(lc)
	}
	for _, d := range lc.deferred {
		defer d()
	}
	return task(lc.ctx, value)
}

type loopConfig struct {
	ctx      context.Context
	deferred []func()
}

type LoopOption func(*loopConfig) *loopConfig

// WithTimeout sets timeout on the context passed to each round.
func WithTimeout(d time.Duration) LoopOption {
	return func(lc *loopConfig) *loopConfig {
		ctx, cancel := context.WithTimeout(lc.ctx, d)
		return &loopConfig{
			ctx:      ctx,
			deferred: append(lc.deferred, cancel),
		}
	}
}
