package postgres

import (
	"context"

	mpool "github.com/opst/mealplanner/pkg/conn/db/postgres/pool"
	dblock "github.com/opst/mealplanner/pkg/domain/lock/db"
	xe "github.com/opst/mealplanner/pkg/errors"
)

type pgLock struct {
	pool mpool.Pool
}

func New(pool mpool.Pool) dblock.LockInterface {
	return &pgLock{pool: pool}
}

func (l *pgLock) Lock(ctx context.Context, name string, criticalSection func(context.Context) error) error {
	return mpool.InTx(ctx, l.pool, func(tx mpool.Tx) error {
		var locked string
		if err := tx.QueryRow(
			ctx,
			`
			with
			"old" as (
				select "name" from "named_lock"
				where "name" = $1 for update
			),
			"new" as (
				insert into "named_lock" ("name") values ($1)
				on conflict ("name") do nothing
				returning "name"
			)
			select * from "old"
			union all
			select * from "new"
			`,
			name,
		).Scan(&locked); err != nil {
			return xe.Wrap(err)
		}

		return criticalSection(ctx)
	})
}
