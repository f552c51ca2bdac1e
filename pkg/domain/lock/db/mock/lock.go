package mock

import (
	"context"

	dblock "github.com/opst/mealplanner/pkg/domain/lock/db"
)

type LockInterface struct {
	Impl struct {
		Lock func(ctx context.Context, name string, criticalSection func(context.Context) error) error
	}
	Calls struct {
		Lock []string
	}
}

var _ dblock.LockInterface = &LockInterface{}

func NewLockInterface() *LockInterface {
	return &LockInterface{}
}

// Lock records name. When Impl.Lock is nil, it runs criticalSection without locking.
func (m *LockInterface) Lock(ctx context.Context, name string, criticalSection func(context.Context) error) error {
	m.Calls.Lock = append(m.Calls.Lock, name)
	if m.Impl.Lock == nil {
		return criticalSection(ctx)
	}
	return m.Impl.Lock(ctx, name, criticalSection)
}
