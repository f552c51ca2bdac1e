// Package purge removes payments which are soft-deleted long ago.
package purge

import (
	"context"
	"time"

	dblock "github.com/opst/mealplanner/pkg/domain/lock/db"
	dbpayment "github.com/opst/mealplanner/pkg/domain/payment/db"
	"github.com/opst/mealplanner/pkg/loop/recurring"
	"github.com/opst/mealplanner/pkg/metrics"
)

// LockName is the name of the lock held while purging.
//
// Only one server purges at a time.
const LockName = "payment-purge"

// Seed is the initial value of the task: the number of purged payments so far.
func Seed() int64 {
	return 0
}

// Task purges payments soft-deleted before retention.
//
// Args
//
// - payments, lock: repositories.
//
// - retention: how long soft-deleted payments are kept.
//
// - observer: receives the result of each round.
//
// - now: clock. nil means time.Now.
//
// Returns
//
// - recurring.Task: counts purged payments up. It reports updated when it purged something.
func Task(
	payments dbpayment.PaymentInterface,
	lock dblock.LockInterface,
	retention time.Duration,
	observer metrics.PurgeObserver,
	now func() time.Time,
) recurring.Task[int64] {
	if now == nil {
		now = time.Now
	}
	return func(ctx context.Context, total int64) (int64, bool, error) {
		var purged int64
		err := lock.Lock(ctx, LockName, func(ctx context.Context) error {
			n, err := payments.PurgeExpired(ctx, now().Add(-retention))
			purged = n
			return err
		})
		if observer != nil {
			observer.PaymentsPurged(purged, err)
		}
		return total + purged, 0 < purged, err
	}
}
