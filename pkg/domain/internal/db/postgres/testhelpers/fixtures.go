// Package testhelpers inserts fixture rows for repository tests.
package testhelpers

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v4/pgxpool"
)

type Fatal interface {
	Helper()
	Fatal(...any)
}

func one(ctx context.Context, t Fatal, pool *pgxpool.Pool, query string, params ...any) int64 {
	t.Helper()
	var id int64
	if err := pool.QueryRow(ctx, query, params...).Scan(&id); err != nil {
		t.Fatal(err)
	}
	return id
}

func User(ctx context.Context, t *testing.T, pool *pgxpool.Pool, name string) int64 {
	t.Helper()
	return one(
		ctx, t, pool,
		`insert into "user" ("name", "email") values ($1, $1 || '@example.com') returning "user_id"`,
		name,
	)
}

func Ingredient(ctx context.Context, t *testing.T, pool *pgxpool.Pool, name string) int64 {
	t.Helper()
	return one(ctx, t, pool, `insert into "ingredient" ("name") values ($1) returning "ingredient_id"`, name)
}

func Item(ctx context.Context, t *testing.T, pool *pgxpool.Pool, name string) int64 {
	t.Helper()
	return one(ctx, t, pool, `insert into "item" ("name") values ($1) returning "item_id"`, name)
}

func Recipe(ctx context.Context, t *testing.T, pool *pgxpool.Pool, userId int64, name string, servings int) int64 {
	t.Helper()
	return one(
		ctx, t, pool,
		`insert into "recipe" ("user_id", "name", "servings") values ($1, $2, $3) returning "recipe_id"`,
		userId, name, servings,
	)
}

func RecipeIngredient(
	ctx context.Context, t *testing.T, pool *pgxpool.Pool,
	recipeId, ingredientId int64, quantity, unit string, position int,
) int64 {
	t.Helper()
	return one(
		ctx, t, pool,
		`
		insert into "recipe_ingredient" ("recipe_id", "ingredient_id", "quantity", "unit", "position")
		values ($1, $2, $3, $4, $5)
		returning "recipe_ingredient_id"
		`,
		recipeId, ingredientId, quantity, unit, position,
	)
}

func MealPlan(
	ctx context.Context, t *testing.T, pool *pgxpool.Pool,
	userId int64, date string, slot string, plannableType string, plannableId int64,
) int64 {
	t.Helper()
	return one(
		ctx, t, pool,
		`
		insert into "meal_plan" ("user_id", "date", "slot", "plannable_type", "plannable_id")
		values ($1, $2::date, $3, $4, $5)
		returning "meal_plan_id"
		`,
		userId, date, slot, plannableType, plannableId,
	)
}

func ShoppingListEntry(
	ctx context.Context, t *testing.T, pool *pgxpool.Pool,
	userId int64, purchasableType string, purchasableId int64, quantity float64, unit string, purchased bool,
) int64 {
	t.Helper()
	return one(
		ctx, t, pool,
		`
		insert into "shopping_list_entry"
			("user_id", "purchasable_type", "purchasable_id", "quantity", "unit", "purchased")
		values ($1, $2, $3, $4, $5, $6)
		returning "shopping_list_entry_id"
		`,
		userId, purchasableType, purchasableId, quantity, unit, purchased,
	)
}

// Payment inserts a payment. deletedAt is an SQL expression like "null" or "now() - interval '1 day'".
func Payment(
	ctx context.Context, t *testing.T, pool *pgxpool.Pool,
	userId int64, entryId int64, amount string, completed bool, deletedAt string,
) int64 {
	t.Helper()
	return one(
		ctx, t, pool,
		`
		insert into "payment" ("user_id", "shopping_list_entry_id", "amount", "completed_at", "deleted_at")
		values ($1, $2, $3::numeric, case when $4::bool then now() end, `+deletedAt+`)
		returning "payment_id"
		`,
		userId, entryId, amount, completed,
	)
}

func Comment(
	ctx context.Context, t *testing.T, pool *pgxpool.Pool,
	userId int64, commentableType string, commentableId int64, body string,
) int64 {
	t.Helper()
	return one(
		ctx, t, pool,
		`
		insert into "comment" ("user_id", "commentable_type", "commentable_id", "body")
		values ($1, $2, $3, $4)
		returning "comment_id"
		`,
		userId, commentableType, commentableId, body,
	)
}

// Count returns the number of rows matched with the query like `select count(*) from ...`.
func Count(ctx context.Context, t *testing.T, pool *pgxpool.Pool, query string, params ...any) int64 {
	t.Helper()
	return one(ctx, t, pool, query, params...)
}
