package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v4"
	mpool "github.com/opst/mealplanner/pkg/conn/db/postgres/pool"
	"github.com/opst/mealplanner/pkg/conn/db/postgres/scanner"
	"github.com/opst/mealplanner/pkg/domain"
	pgerr "github.com/opst/mealplanner/pkg/domain/errors/dberrors/postgres"
	dbuser "github.com/opst/mealplanner/pkg/domain/user/db"
	xe "github.com/opst/mealplanner/pkg/errors"
)

type pgUser struct {
	pool mpool.Pool
}

func New(pool mpool.Pool) dbuser.UserInterface {
	return &pgUser{pool: pool}
}

const userColumns = `"user_id" as "id", "name", "email", "admin", "created_at"`

func (u *pgUser) Create(ctx context.Context, param domain.UserParam) (domain.User, error) {
	param, err := param.Validate()
	if err != nil {
		return domain.User{}, err
	}

	ret := domain.User{}
	if err := u.pool.QueryRow(
		ctx,
		`
		insert into "user" ("name", "email", "admin") values ($1, $2, $3)
		returning `+userColumns,
		param.Name, param.Email, param.Admin,
	).Scan(&ret.Id, &ret.Name, &ret.Email, &ret.Admin, &ret.CreatedAt); err != nil {
		return domain.User{}, xe.Wrap(pgerr.Translate(err))
	}
	return ret, nil
}

func (u *pgUser) one(ctx context.Context, identity string, query string, params ...any) (domain.User, error) {
	user, err := scanner.QueryOne[domain.User](ctx, u.pool, query, params...)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.User{}, xe.Wrap(pgerr.Missing{Table: "user", Identity: identity})
	} else if err != nil {
		return domain.User{}, xe.Wrap(err)
	}
	return user, nil
}

func (u *pgUser) Get(ctx context.Context, userId int64) (domain.User, error) {
	return u.one(
		ctx, fmt.Sprintf("user_id=%d", userId),
		`select `+userColumns+` from "user" where "user_id" = $1`, userId,
	)
}

func (u *pgUser) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	return u.one(
		ctx, fmt.Sprintf("email=%s", email),
		`select `+userColumns+` from "user" where lower("email") = lower($1)`, email,
	)
}

func (u *pgUser) List(ctx context.Context) ([]domain.User, error) {
	conn, err := u.pool.Acquire(ctx)
	if err != nil {
		return nil, xe.Wrap(err)
	}
	defer conn.Release()

	users, err := scanner.New[domain.User]().QueryAll(
		ctx, conn, `select `+userColumns+` from "user" order by "user_id"`,
	)
	if err != nil {
		return nil, xe.Wrap(err)
	}
	return users, nil
}

func (u *pgUser) Update(ctx context.Context, userId int64, param domain.UserParam) (domain.User, error) {
	param, err := param.Validate()
	if err != nil {
		return domain.User{}, err
	}

	ret := domain.User{}
	if err := u.pool.QueryRow(
		ctx,
		`
		update "user" set "name" = $2, "email" = $3, "admin" = $4
		where "user_id" = $1
		returning `+userColumns,
		userId, param.Name, param.Email, param.Admin,
	).Scan(&ret.Id, &ret.Name, &ret.Email, &ret.Admin, &ret.CreatedAt); errors.Is(err, pgx.ErrNoRows) {
		return domain.User{}, xe.Wrap(pgerr.Missing{Table: "user", Identity: fmt.Sprintf("user_id=%d", userId)})
	} else if err != nil {
		return domain.User{}, xe.Wrap(pgerr.Translate(err))
	}
	return ret, nil
}

func (u *pgUser) Delete(ctx context.Context, userId int64) error {
	return mpool.InTx(ctx, u.pool, func(tx mpool.Tx) error {
		// polymorphic references have no foreign keys. comments on records of the user go first.
		if _, err := tx.Exec(
			ctx,
			`
			delete from "comment"
			where ("commentable_type" = 'recipe' and "commentable_id" in (
				select "recipe_id" from "recipe" where "user_id" = $1
			))
			or ("commentable_type" = 'meal_plan' and "commentable_id" in (
				select "meal_plan_id" from "meal_plan" where "user_id" = $1
			))
			`,
			userId,
		); err != nil {
			return xe.Wrap(err)
		}
		if _, err := tx.Exec(
			ctx,
			`
			delete from "meal_plan"
			where "plannable_type" = 'recipe' and "plannable_id" in (
				select "recipe_id" from "recipe" where "user_id" = $1
			)
			`,
			userId,
		); err != nil {
			return xe.Wrap(err)
		}
		// payments refer entries with "on delete restrict".
		if _, err := tx.Exec(ctx, `delete from "payment" where "user_id" = $1`, userId); err != nil {
			return xe.Wrap(err)
		}

		ctag, err := tx.Exec(ctx, `delete from "user" where "user_id" = $1`, userId)
		if err != nil {
			return xe.Wrap(pgerr.Translate(err))
		}
		if ctag.RowsAffected() == 0 {
			return xe.Wrap(pgerr.Missing{Table: "user", Identity: fmt.Sprintf("user_id=%d", userId)})
		}
		return nil
	})
}
