package context

import (
	"context"
	"testing"
	"time"
)

// WithTest wraps ctx with the deadline of t.
//
// The deadline is 1 second before the test's deadline, to leave time for clean-up.
func WithTest(ctx context.Context, t *testing.T) (context.Context, context.CancelFunc) {
	if deadline, ok := t.Deadline(); ok {
		return context.WithDeadline(ctx, deadline.Add(-time.Second))
	}
	return context.WithCancel(ctx)
}
