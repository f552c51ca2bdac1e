package db

import "context"

type LockInterface interface {
	// Lock takes the lock named name, and run criticalSection while holding it.
	//
	// Other callers of Lock with the same name wait until criticalSection returns.
	//
	// Returns
	//
	// - error: error caused by taking the lock, or returned from criticalSection.
	Lock(ctx context.Context, name string, criticalSection func(context.Context) error) error
}
