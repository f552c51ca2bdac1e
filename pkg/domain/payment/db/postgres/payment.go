package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v4"
	mpool "github.com/opst/mealplanner/pkg/conn/db/postgres/pool"
	"github.com/opst/mealplanner/pkg/domain"
	domerr "github.com/opst/mealplanner/pkg/domain/errors"
	pgerr "github.com/opst/mealplanner/pkg/domain/errors/dberrors/postgres"
	dbpayment "github.com/opst/mealplanner/pkg/domain/payment/db"
	xe "github.com/opst/mealplanner/pkg/errors"
	"github.com/shopspring/decimal"
)

type pgPayment struct {
	pool mpool.Pool
}

func New(pool mpool.Pool) dbpayment.PaymentInterface {
	return &pgPayment{pool: pool}
}

func missing(paymentId int64) error {
	return pgerr.Missing{Table: "payment", Identity: fmt.Sprintf("payment_id=%d", paymentId)}
}

// deletedCondition returns a condition on "deleted_at" column.
func deletedCondition(f domain.DeletedFilter) (string, error) {
	switch f {
	case domain.ExcludeDeleted, "":
		return `"deleted_at" is null`, nil
	case domain.IncludeDeleted:
		return `true`, nil
	case domain.OnlyDeleted:
		return `"deleted_at" is not null`, nil
	}
	return "", xe.Wrap(fmt.Errorf("%w: deleted filter %q", domerr.ErrInvalidParam, f))
}

const selectPayment = `
select
	"payment_id", "user_id", "shopping_list_entry_id", "amount"::text, "note",
	"completed_at", "deleted_at", "created_at", "updated_at"
from "payment"
`

func retrieve(ctx context.Context, q mpool.Queryer, where string, params ...any) ([]domain.Payment, error) {
	rows, err := q.Query(ctx, selectPayment+" where "+where+` order by "payment_id"`, params...)
	if err != nil {
		return nil, xe.Wrap(err)
	}
	defer rows.Close()

	ret := []domain.Payment{}
	for rows.Next() {
		p := domain.Payment{}
		var amount string
		if err := rows.Scan(
			&p.Id, &p.UserId, &p.EntryId, &amount, &p.Note,
			&p.CompletedAt, &p.DeletedAt, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, xe.Wrap(err)
		}
		if p.Amount, err = decimal.NewFromString(amount); err != nil {
			return nil, xe.Wrap(err)
		}
		ret = append(ret, p)
	}
	if err := rows.Err(); err != nil {
		return nil, xe.Wrap(err)
	}
	return ret, nil
}

func getOne(ctx context.Context, q mpool.Queryer, owner domain.Owner, paymentId int64, deleted domain.DeletedFilter) (domain.Payment, error) {
	cond, err := deletedCondition(deleted)
	if err != nil {
		return domain.Payment{}, err
	}
	anyOwner, userId := owner.SQLParams()
	found, err := retrieve(
		ctx, q,
		`"payment_id" = $1 and ($2::bool or "user_id" = $3) and `+cond,
		paymentId, anyOwner, userId,
	)
	if err != nil {
		return domain.Payment{}, err
	}
	if len(found) == 0 {
		return domain.Payment{}, xe.Wrap(missing(paymentId))
	}
	return found[0], nil
}

func (p *pgPayment) Create(ctx context.Context, userId int64, param domain.PaymentParam) (domain.Payment, error) {
	param, err := param.Validate()
	if err != nil {
		return domain.Payment{}, err
	}

	var ret domain.Payment
	err = mpool.InTx(ctx, p.pool, func(tx mpool.Tx) error {
		var n int64
		if err := tx.QueryRow(
			ctx,
			`
			select count(*) from "shopping_list_entry"
			where "shopping_list_entry_id" = $1 and "user_id" = $2
			`,
			param.EntryId, userId,
		).Scan(&n); err != nil {
			return xe.Wrap(err)
		}
		if n == 0 {
			return xe.Wrap(pgerr.Missing{
				Table:    "shopping_list_entry",
				Identity: fmt.Sprintf("shopping_list_entry_id=%d", param.EntryId),
			})
		}

		var id int64
		if err := tx.QueryRow(
			ctx,
			`
			insert into "payment" ("user_id", "shopping_list_entry_id", "amount", "note")
			values ($1, $2, $3::numeric, $4)
			returning "payment_id"
			`,
			userId, param.EntryId, param.Amount.String(), param.Note,
		).Scan(&id); err != nil {
			return xe.Wrap(pgerr.Translate(err))
		}

		ret, err = getOne(ctx, tx, domain.OwnedBy(userId), id, domain.ExcludeDeleted)
		return err
	})
	if err != nil {
		return domain.Payment{}, err
	}
	return ret, nil
}

func (p *pgPayment) Get(ctx context.Context, owner domain.Owner, paymentId int64, deleted domain.DeletedFilter) (domain.Payment, error) {
	conn, err := p.pool.Acquire(ctx)
	if err != nil {
		return domain.Payment{}, xe.Wrap(err)
	}
	defer conn.Release()
	return getOne(ctx, conn, owner, paymentId, deleted)
}

func (p *pgPayment) Find(ctx context.Context, owner domain.Owner, query domain.PaymentFindQuery) ([]domain.Payment, error) {
	cond, err := deletedCondition(query.Deleted)
	if err != nil {
		return nil, err
	}

	conn, err := p.pool.Acquire(ctx)
	if err != nil {
		return nil, xe.Wrap(err)
	}
	defer conn.Release()

	anyOwner, userId := owner.SQLParams()
	return retrieve(
		ctx, conn,
		`
		($1::bool or "user_id" = $2)
		and ($3::bool is null or ("completed_at" is not null) = $3::bool)
		and ($4::bigint is null or "shopping_list_entry_id" = $4::bigint)
		and `+cond,
		anyOwner, userId, query.Completed, query.EntryId,
	)
}

// setCompletion updates a live payment and its entry in a transaction.
func (p *pgPayment) setCompletion(ctx context.Context, owner domain.Owner, paymentId int64, completed bool) (domain.Payment, error) {
	var ret domain.Payment
	err := mpool.InTx(ctx, p.pool, func(tx mpool.Tx) error {
		anyOwner, userId := owner.SQLParams()
		var entryId int64
		if err := tx.QueryRow(
			ctx,
			`
			update "payment"
			set
				"completed_at" = case when $4::bool then coalesce("completed_at", now()) end,
				"updated_at" = now()
			where "payment_id" = $1 and ($2::bool or "user_id" = $3) and "deleted_at" is null
			returning "shopping_list_entry_id"
			`,
			paymentId, anyOwner, userId, completed,
		).Scan(&entryId); errors.Is(err, pgx.ErrNoRows) {
			return xe.Wrap(missing(paymentId))
		} else if err != nil {
			return xe.Wrap(err)
		}

		if _, err := tx.Exec(
			ctx,
			`
			update "shopping_list_entry"
			set "purchased" = $2, "updated_at" = now()
			where "shopping_list_entry_id" = $1 and "purchased" <> $2
			`,
			entryId, completed,
		); pgerr.IsUniqueViolation(err) {
			return xe.Wrap(fmt.Errorf(
				"%w: shopping list entry %d can not be pending again, since another pending entry exists",
				domerr.ErrConflict, entryId,
			))
		} else if err != nil {
			return xe.Wrap(err)
		}

		var err error
		ret, err = getOne(ctx, tx, owner, paymentId, domain.ExcludeDeleted)
		return err
	})
	if err != nil {
		return domain.Payment{}, err
	}
	return ret, nil
}

func (p *pgPayment) Complete(ctx context.Context, owner domain.Owner, paymentId int64) (domain.Payment, error) {
	return p.setCompletion(ctx, owner, paymentId, true)
}

func (p *pgPayment) Uncomplete(ctx context.Context, owner domain.Owner, paymentId int64) (domain.Payment, error) {
	return p.setCompletion(ctx, owner, paymentId, false)
}

func (p *pgPayment) Delete(ctx context.Context, owner domain.Owner, paymentId int64) error {
	conn, err := p.pool.Acquire(ctx)
	if err != nil {
		return xe.Wrap(err)
	}
	defer conn.Release()

	anyOwner, userId := owner.SQLParams()
	ctag, err := conn.Exec(
		ctx,
		`
		update "payment" set "deleted_at" = now(), "updated_at" = now()
		where "payment_id" = $1 and ($2::bool or "user_id" = $3) and "deleted_at" is null
		`,
		paymentId, anyOwner, userId,
	)
	if err != nil {
		return xe.Wrap(err)
	}
	if ctag.RowsAffected() == 0 {
		return xe.Wrap(missing(paymentId))
	}
	return nil
}

func (p *pgPayment) Restore(ctx context.Context, owner domain.Owner, paymentId int64) (domain.Payment, error) {
	var ret domain.Payment
	err := mpool.InTx(ctx, p.pool, func(tx mpool.Tx) error {
		anyOwner, userId := owner.SQLParams()
		ctag, err := tx.Exec(
			ctx,
			`
			update "payment" set "deleted_at" = null, "updated_at" = now()
			where "payment_id" = $1 and ($2::bool or "user_id" = $3) and "deleted_at" is not null
			`,
			paymentId, anyOwner, userId,
		)
		if err != nil {
			return xe.Wrap(err)
		}
		if ctag.RowsAffected() == 0 {
			return xe.Wrap(missing(paymentId))
		}
		ret, err = getOne(ctx, tx, owner, paymentId, domain.ExcludeDeleted)
		return err
	})
	if err != nil {
		return domain.Payment{}, err
	}
	return ret, nil
}

func (p *pgPayment) Purge(ctx context.Context, owner domain.Owner, paymentId int64) error {
	return mpool.InTx(ctx, p.pool, func(tx mpool.Tx) error {
		anyOwner, userId := owner.SQLParams()
		var deleted bool
		if err := tx.QueryRow(
			ctx,
			`
			select "deleted_at" is not null from "payment"
			where "payment_id" = $1 and ($2::bool or "user_id" = $3)
			for update
			`,
			paymentId, anyOwner, userId,
		).Scan(&deleted); errors.Is(err, pgx.ErrNoRows) {
			return xe.Wrap(missing(paymentId))
		} else if err != nil {
			return xe.Wrap(err)
		}
		if !deleted {
			return xe.Wrap(fmt.Errorf("%w: payment %d", domerr.ErrNotDeleted, paymentId))
		}

		if _, err := tx.Exec(ctx, `delete from "payment" where "payment_id" = $1`, paymentId); err != nil {
			return xe.Wrap(err)
		}
		return nil
	})
}

func (p *pgPayment) PurgeExpired(ctx context.Context, before time.Time) (int64, error) {
	conn, err := p.pool.Acquire(ctx)
	if err != nil {
		return 0, xe.Wrap(err)
	}
	defer conn.Release()

	ctag, err := conn.Exec(
		ctx,
		`delete from "payment" where "deleted_at" is not null and "deleted_at" < $1`,
		before,
	)
	if err != nil {
		return 0, xe.Wrap(err)
	}
	return ctag.RowsAffected(), nil
}
