package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v4"
	mpool "github.com/opst/mealplanner/pkg/conn/db/postgres/pool"
	"github.com/opst/mealplanner/pkg/domain"
	pgerr "github.com/opst/mealplanner/pkg/domain/errors/dberrors/postgres"
	dbmealplan "github.com/opst/mealplanner/pkg/domain/mealplan/db"
	xe "github.com/opst/mealplanner/pkg/errors"
	"github.com/opst/mealplanner/pkg/utils"
)

type pgMealPlan struct {
	pool mpool.Pool
}

func New(pool mpool.Pool) dbmealplan.MealPlanInterface {
	return &pgMealPlan{pool: pool}
}

func missing(mealPlanId int64) error {
	return pgerr.Missing{Table: "meal_plan", Identity: fmt.Sprintf("meal_plan_id=%d", mealPlanId)}
}

// checkPlannable confirms the plannable exists and is usable by the user.
func checkPlannable(ctx context.Context, q mpool.Queryer, userId int64, p domain.Plannable) error {
	var n int64
	switch p.Type {
	case domain.PlannableRecipe:
		if err := q.QueryRow(
			ctx,
			`select count(*) from "recipe" where "recipe_id" = $1 and "user_id" = $2`,
			p.Id, userId,
		).Scan(&n); err != nil {
			return xe.Wrap(err)
		}
		if n == 0 {
			return xe.Wrap(pgerr.Missing{Table: "recipe", Identity: fmt.Sprintf("recipe_id=%d", p.Id)})
		}
	case domain.PlannableItem:
		if err := q.QueryRow(
			ctx, `select count(*) from "item" where "item_id" = $1`, p.Id,
		).Scan(&n); err != nil {
			return xe.Wrap(err)
		}
		if n == 0 {
			return xe.Wrap(pgerr.Missing{Table: "item", Identity: fmt.Sprintf("item_id=%d", p.Id)})
		}
	default:
		return xe.Wrap(missing(0))
	}
	return nil
}

const selectMealPlan = `
select
	"mp"."meal_plan_id", "mp"."user_id", "mp"."date", "mp"."slot",
	"mp"."plannable_type", "mp"."plannable_id",
	coalesce("r"."name", "i"."name", '') as "plannable_name",
	"mp"."servings", "mp"."note", "mp"."created_at", "mp"."updated_at"
from "meal_plan" as "mp"
left join "recipe" as "r"
	on "mp"."plannable_type" = 'recipe' and "r"."recipe_id" = "mp"."plannable_id"
left join "item" as "i"
	on "mp"."plannable_type" = 'item' and "i"."item_id" = "mp"."plannable_id"
`

const orderMealPlan = `
order by
	"mp"."date",
	array_position(array['breakfast', 'lunch', 'dinner', 'snack'], "mp"."slot"),
	"mp"."meal_plan_id"
`

func retrieve(ctx context.Context, q mpool.Queryer, where string, params ...any) ([]domain.MealPlan, error) {
	rows, err := q.Query(ctx, selectMealPlan+" where "+where+orderMealPlan, params...)
	if err != nil {
		return nil, xe.Wrap(err)
	}
	defer rows.Close()

	ret := []domain.MealPlan{}
	for rows.Next() {
		mp := domain.MealPlan{}
		var slot, ptype string
		if err := rows.Scan(
			&mp.Id, &mp.UserId, &mp.Date, &slot,
			&ptype, &mp.Plannable.Id, &mp.Plannable.Name,
			&mp.Servings, &mp.Note, &mp.CreatedAt, &mp.UpdatedAt,
		); err != nil {
			return nil, xe.Wrap(err)
		}
		mp.Slot = domain.Slot(slot)
		mp.Plannable.Type = domain.PlannableType(ptype)
		mp.Date = time.Date(mp.Date.Year(), mp.Date.Month(), mp.Date.Day(), 0, 0, 0, 0, time.UTC)
		ret = append(ret, mp)
	}
	if err := rows.Err(); err != nil {
		return nil, xe.Wrap(err)
	}
	return ret, nil
}

func getOne(ctx context.Context, q mpool.Queryer, owner domain.Owner, mealPlanId int64) (domain.MealPlan, error) {
	anyOwner, userId := owner.SQLParams()
	found, err := retrieve(
		ctx, q,
		`"mp"."meal_plan_id" = $1 and ($2::bool or "mp"."user_id" = $3)`,
		mealPlanId, anyOwner, userId,
	)
	if err != nil {
		return domain.MealPlan{}, err
	}
	if len(found) == 0 {
		return domain.MealPlan{}, xe.Wrap(missing(mealPlanId))
	}
	return found[0], nil
}

func (m *pgMealPlan) Create(ctx context.Context, userId int64, param domain.MealPlanParam) (domain.MealPlan, error) {
	param, err := param.Validate()
	if err != nil {
		return domain.MealPlan{}, err
	}

	var ret domain.MealPlan
	err = mpool.InTx(ctx, m.pool, func(tx mpool.Tx) error {
		if err := checkPlannable(ctx, tx, userId, param.Plannable); err != nil {
			return err
		}

		var id int64
		if err := tx.QueryRow(
			ctx,
			`
			insert into "meal_plan"
				("user_id", "date", "slot", "plannable_type", "plannable_id", "servings", "note")
			values ($1, $2, $3, $4, $5, $6, $7)
			returning "meal_plan_id"
			`,
			userId, param.Date, string(param.Slot),
			string(param.Plannable.Type), param.Plannable.Id, param.Servings, param.Note,
		).Scan(&id); err != nil {
			return xe.Wrap(pgerr.Translate(err))
		}

		ret, err = getOne(ctx, tx, domain.OwnedBy(userId), id)
		return err
	})
	if err != nil {
		return domain.MealPlan{}, err
	}
	return ret, nil
}

func (m *pgMealPlan) Get(ctx context.Context, owner domain.Owner, mealPlanId int64) (domain.MealPlan, error) {
	conn, err := m.pool.Acquire(ctx)
	if err != nil {
		return domain.MealPlan{}, xe.Wrap(err)
	}
	defer conn.Release()
	return getOne(ctx, conn, owner, mealPlanId)
}

func (m *pgMealPlan) Find(ctx context.Context, owner domain.Owner, query domain.MealPlanFindQuery) ([]domain.MealPlan, error) {
	conn, err := m.pool.Acquire(ctx)
	if err != nil {
		return nil, xe.Wrap(err)
	}
	defer conn.Release()

	anyOwner, userId := owner.SQLParams()
	var since, until *time.Time
	if !query.Since.IsZero() {
		since = &query.Since
	}
	if !query.Until.IsZero() {
		until = &query.Until
	}
	slots := utils.Map(query.Slot, func(s domain.Slot) string { return string(s) })

	return retrieve(
		ctx, conn,
		`
		($1::bool or "mp"."user_id" = $2)
		and ($3::date is null or $3::date <= "mp"."date")
		and ($4::date is null or "mp"."date" <= $4::date)
		and (coalesce(cardinality($5::text[]), 0) = 0 or "mp"."slot" = any($5::text[]))
		`,
		anyOwner, userId, since, until, slots,
	)
}

func (m *pgMealPlan) Update(ctx context.Context, owner domain.Owner, mealPlanId int64, param domain.MealPlanParam) (domain.MealPlan, error) {
	param, err := param.Validate()
	if err != nil {
		return domain.MealPlan{}, err
	}

	var ret domain.MealPlan
	err = mpool.InTx(ctx, m.pool, func(tx mpool.Tx) error {
		anyOwner, userId := owner.SQLParams()
		var planOwner int64
		if err := tx.QueryRow(
			ctx,
			`
			select "user_id" from "meal_plan"
			where "meal_plan_id" = $1 and ($2::bool or "user_id" = $3)
			for update
			`,
			mealPlanId, anyOwner, userId,
		).Scan(&planOwner); errors.Is(err, pgx.ErrNoRows) {
			return xe.Wrap(missing(mealPlanId))
		} else if err != nil {
			return xe.Wrap(err)
		}

		// the plannable should be usable by the owner of the plan, not by the operator.
		if err := checkPlannable(ctx, tx, planOwner, param.Plannable); err != nil {
			return err
		}

		if _, err := tx.Exec(
			ctx,
			`
			update "meal_plan"
			set "date" = $2, "slot" = $3, "plannable_type" = $4, "plannable_id" = $5,
				"servings" = $6, "note" = $7, "updated_at" = now()
			where "meal_plan_id" = $1
			`,
			mealPlanId, param.Date, string(param.Slot),
			string(param.Plannable.Type), param.Plannable.Id, param.Servings, param.Note,
		); err != nil {
			return xe.Wrap(pgerr.Translate(err))
		}

		ret, err = getOne(ctx, tx, owner, mealPlanId)
		return err
	})
	if err != nil {
		return domain.MealPlan{}, err
	}
	return ret, nil
}

func (m *pgMealPlan) Delete(ctx context.Context, owner domain.Owner, mealPlanId int64) error {
	return mpool.InTx(ctx, m.pool, func(tx mpool.Tx) error {
		anyOwner, userId := owner.SQLParams()
		ctag, err := tx.Exec(
			ctx,
			`delete from "meal_plan" where "meal_plan_id" = $1 and ($2::bool or "user_id" = $3)`,
			mealPlanId, anyOwner, userId,
		)
		if err != nil {
			return xe.Wrap(err)
		}
		if ctag.RowsAffected() == 0 {
			return xe.Wrap(missing(mealPlanId))
		}

		if _, err := tx.Exec(
			ctx,
			`delete from "comment" where "commentable_type" = 'meal_plan' and "commentable_id" = $1`,
			mealPlanId,
		); err != nil {
			return xe.Wrap(err)
		}
		return nil
	})
}
