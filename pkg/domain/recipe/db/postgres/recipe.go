package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v4"
	mpool "github.com/opst/mealplanner/pkg/conn/db/postgres/pool"
	"github.com/opst/mealplanner/pkg/conn/db/postgres/scanner"
	"github.com/opst/mealplanner/pkg/domain"
	pgcatalog "github.com/opst/mealplanner/pkg/domain/catalog/db/postgres"
	pgerr "github.com/opst/mealplanner/pkg/domain/errors/dberrors/postgres"
	dbrecipe "github.com/opst/mealplanner/pkg/domain/recipe/db"
	xe "github.com/opst/mealplanner/pkg/errors"
	"github.com/opst/mealplanner/pkg/utils"
)

type pgRecipe struct {
	pool mpool.Pool
}

func New(pool mpool.Pool) dbrecipe.RecipeInterface {
	return &pgRecipe{pool: pool}
}

func missing(recipeId int64) error {
	return pgerr.Missing{Table: "recipe", Identity: fmt.Sprintf("recipe_id=%d", recipeId)}
}

type lineRow struct {
	RecipeId       int64
	Id             int64 `sql:"recipe_ingredient_id"`
	IngredientId   int64
	IngredientName string
	Quantity       string
	Unit           string
}

// retrieve fetches recipes with their lines.
func retrieve(ctx context.Context, q mpool.Queryer, where string, params ...any) ([]domain.Recipe, error) {
	rows, err := q.Query(
		ctx,
		`
		select
			"recipe_id", "user_id", "name", "description", "instructions", "servings",
			"created_at", "updated_at"
		from "recipe"
		where `+where+`
		order by "recipe_id"
		`,
		params...,
	)
	if err != nil {
		return nil, xe.Wrap(err)
	}
	defer rows.Close()

	recipes := []domain.Recipe{}
	for rows.Next() {
		r := domain.Recipe{Ingredients: []domain.RecipeIngredient{}}
		if err := rows.Scan(
			&r.Id, &r.UserId, &r.Name, &r.Description, &r.Instructions, &r.Servings,
			&r.CreatedAt, &r.UpdatedAt,
		); err != nil {
			return nil, xe.Wrap(err)
		}
		recipes = append(recipes, r)
	}
	if err := rows.Err(); err != nil {
		return nil, xe.Wrap(err)
	}
	rows.Close()

	if len(recipes) == 0 {
		return recipes, nil
	}

	lines, err := scanner.New[lineRow]().QueryAll(
		ctx, q,
		`
		select
			"ri"."recipe_id", "ri"."recipe_ingredient_id",
			"ri"."ingredient_id", "i"."name" as "ingredient_name",
			"ri"."quantity", "ri"."unit"
		from "recipe_ingredient" as "ri"
		inner join "ingredient" as "i" using ("ingredient_id")
		where "ri"."recipe_id" = any($1)
		order by "ri"."recipe_id", "ri"."position"
		`,
		utils.Map(recipes, func(r domain.Recipe) int64 { return r.Id }),
	)
	if err != nil {
		return nil, xe.Wrap(err)
	}

	index := map[int64]int{}
	for nth, r := range recipes {
		index[r.Id] = nth
	}
	for _, l := range lines {
		r := &recipes[index[l.RecipeId]]
		r.Ingredients = append(r.Ingredients, domain.RecipeIngredient{
			Id:         l.Id,
			RecipeId:   l.RecipeId,
			Ingredient: domain.Ingredient{Id: l.IngredientId, Name: l.IngredientName},
			Quantity:   l.Quantity,
			Unit:       l.Unit,
		})
	}
	return recipes, nil
}

func getOne(ctx context.Context, q mpool.Queryer, owner domain.Owner, recipeId int64) (domain.Recipe, error) {
	anyOwner, userId := owner.SQLParams()
	found, err := retrieve(ctx, q, `"recipe_id" = $1 and ($2::bool or "user_id" = $3)`, recipeId, anyOwner, userId)
	if err != nil {
		return domain.Recipe{}, err
	}
	if len(found) == 0 {
		return domain.Recipe{}, xe.Wrap(missing(recipeId))
	}
	return found[0], nil
}

func insertLines(ctx context.Context, tx mpool.Tx, recipeId int64, lines []domain.RecipeIngredientParam) error {
	for position, l := range lines {
		ingredientId := l.Ingredient.Id
		if ingredientId == 0 {
			ing, err := pgcatalog.FindOrCreateIngredient(ctx, tx, l.Ingredient.Name)
			if err != nil {
				return err
			}
			ingredientId = ing.Id
		}

		if _, err := tx.Exec(
			ctx,
			`
			insert into "recipe_ingredient"
				("recipe_id", "ingredient_id", "quantity", "unit", "position")
			values ($1, $2, $3, $4, $5)
			`,
			recipeId, ingredientId, l.Quantity, l.Unit, position,
		); err != nil {
			return xe.Wrap(pgerr.Translate(err))
		}
	}
	return nil
}

func (r *pgRecipe) Create(ctx context.Context, userId int64, param domain.RecipeParam) (domain.Recipe, error) {
	param, err := param.Validate()
	if err != nil {
		return domain.Recipe{}, err
	}

	var ret domain.Recipe
	err = mpool.InTx(ctx, r.pool, func(tx mpool.Tx) error {
		var recipeId int64
		if err := tx.QueryRow(
			ctx,
			`
			insert into "recipe" ("user_id", "name", "description", "instructions", "servings")
			values ($1, $2, $3, $4, $5)
			returning "recipe_id"
			`,
			userId, param.Name, param.Description, param.Instructions, param.Servings,
		).Scan(&recipeId); err != nil {
			return xe.Wrap(pgerr.Translate(err))
		}

		if err := insertLines(ctx, tx, recipeId, param.Ingredients); err != nil {
			return err
		}

		ret, err = getOne(ctx, tx, domain.OwnedBy(userId), recipeId)
		return err
	})
	if err != nil {
		return domain.Recipe{}, err
	}
	return ret, nil
}

func (r *pgRecipe) Get(ctx context.Context, owner domain.Owner, recipeId int64) (domain.Recipe, error) {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return domain.Recipe{}, xe.Wrap(err)
	}
	defer conn.Release()

	return getOne(ctx, conn, owner, recipeId)
}

func (r *pgRecipe) Find(ctx context.Context, owner domain.Owner) ([]domain.Recipe, error) {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return nil, xe.Wrap(err)
	}
	defer conn.Release()

	anyOwner, userId := owner.SQLParams()
	return retrieve(ctx, conn, `($1::bool or "user_id" = $2)`, anyOwner, userId)
}

func (r *pgRecipe) Update(ctx context.Context, owner domain.Owner, recipeId int64, param domain.RecipeParam) (domain.Recipe, error) {
	param, err := param.Validate()
	if err != nil {
		return domain.Recipe{}, err
	}

	var ret domain.Recipe
	err = mpool.InTx(ctx, r.pool, func(tx mpool.Tx) error {
		anyOwner, userId := owner.SQLParams()
		var locked int64
		if err := tx.QueryRow(
			ctx,
			`
			update "recipe"
			set "name" = $4, "description" = $5, "instructions" = $6, "servings" = $7,
				"updated_at" = now()
			where "recipe_id" = $1 and ($2::bool or "user_id" = $3)
			returning "recipe_id"
			`,
			recipeId, anyOwner, userId,
			param.Name, param.Description, param.Instructions, param.Servings,
		).Scan(&locked); errors.Is(err, pgx.ErrNoRows) {
			return xe.Wrap(missing(recipeId))
		} else if err != nil {
			return xe.Wrap(pgerr.Translate(err))
		}

		if _, err := tx.Exec(ctx, `delete from "recipe_ingredient" where "recipe_id" = $1`, recipeId); err != nil {
			return xe.Wrap(err)
		}
		if err := insertLines(ctx, tx, recipeId, param.Ingredients); err != nil {
			return err
		}

		ret, err = getOne(ctx, tx, owner, recipeId)
		return err
	})
	if err != nil {
		return domain.Recipe{}, err
	}
	return ret, nil
}

func (r *pgRecipe) Delete(ctx context.Context, owner domain.Owner, recipeId int64) error {
	return mpool.InTx(ctx, r.pool, func(tx mpool.Tx) error {
		anyOwner, userId := owner.SQLParams()
		var locked int64
		if err := tx.QueryRow(
			ctx,
			`
			select "recipe_id" from "recipe"
			where "recipe_id" = $1 and ($2::bool or "user_id" = $3)
			for update
			`,
			recipeId, anyOwner, userId,
		).Scan(&locked); errors.Is(err, pgx.ErrNoRows) {
			return xe.Wrap(missing(recipeId))
		} else if err != nil {
			return xe.Wrap(err)
		}

		for _, q := range []string{
			`
			delete from "comment"
			where "commentable_type" = 'meal_plan' and "commentable_id" in (
				select "meal_plan_id" from "meal_plan"
				where "plannable_type" = 'recipe' and "plannable_id" = $1
			)
			`,
			`delete from "meal_plan" where "plannable_type" = 'recipe' and "plannable_id" = $1`,
			`delete from "comment" where "commentable_type" = 'recipe' and "commentable_id" = $1`,
			`delete from "recipe" where "recipe_id" = $1`,
		} {
			if _, err := tx.Exec(ctx, q, recipeId); err != nil {
				return xe.Wrap(err)
			}
		}
		return nil
	})
}
