package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v4"
	mpool "github.com/opst/mealplanner/pkg/conn/db/postgres/pool"
	"github.com/opst/mealplanner/pkg/conn/db/postgres/scanner"
	"github.com/opst/mealplanner/pkg/domain"
	dbcatalog "github.com/opst/mealplanner/pkg/domain/catalog/db"
	domerr "github.com/opst/mealplanner/pkg/domain/errors"
	pgerr "github.com/opst/mealplanner/pkg/domain/errors/dberrors/postgres"
	xe "github.com/opst/mealplanner/pkg/errors"
)

// kind describes a catalog table.
type kind struct {
	table    string
	idColumn string

	// queries counting references to an entry. Each takes the entry id as $1.
	referrers []string
}

var ingredientKind = kind{
	table:    "ingredient",
	idColumn: "ingredient_id",
	referrers: []string{
		`select count(*) from "recipe_ingredient" where "ingredient_id" = $1`,
		`
		select count(*) from "shopping_list_entry"
		where "purchasable_type" = 'ingredient' and "purchasable_id" = $1
		`,
	},
}

var itemKind = kind{
	table:    "item",
	idColumn: "item_id",
	referrers: []string{
		`select count(*) from "meal_plan" where "plannable_type" = 'item' and "plannable_id" = $1`,
		`
		select count(*) from "shopping_list_entry"
		where "purchasable_type" = 'item' and "purchasable_id" = $1
		`,
	},
}

func (k kind) columns() string {
	return fmt.Sprintf(`"%s" as "id", "name", "created_at"`, k.idColumn)
}

func (k kind) missing(identity string) error {
	return pgerr.Missing{Table: k.table, Identity: identity}
}

type pgCatalog[T domain.Ingredient | domain.Item] struct {
	pool mpool.Pool
	kind kind
}

func NewIngredient(pool mpool.Pool) dbcatalog.IngredientInterface {
	return &pgCatalog[domain.Ingredient]{pool: pool, kind: ingredientKind}
}

func NewItem(pool mpool.Pool) dbcatalog.ItemInterface {
	return &pgCatalog[domain.Item]{pool: pool, kind: itemKind}
}

// FindOrCreateIngredient resolves an ingredient name in the transaction (or connection) q.
func FindOrCreateIngredient(ctx context.Context, q mpool.Queryer, name string) (domain.Ingredient, error) {
	return findOrCreate[domain.Ingredient](ctx, q, ingredientKind, name)
}

// FindOrCreateItem resolves an item name in the transaction (or connection) q.
func FindOrCreateItem(ctx context.Context, q mpool.Queryer, name string) (domain.Item, error) {
	return findOrCreate[domain.Item](ctx, q, itemKind, name)
}

func findOrCreate[T domain.Ingredient | domain.Item](ctx context.Context, q mpool.Queryer, k kind, name string) (T, error) {
	name, err := domain.NormalizeName(name)
	if err != nil {
		return *new(T), err
	}

	// "on conflict do nothing" returns no rows for existing names. Then, select it.
	found, err := scanner.New[T]().QueryAll(
		ctx, q,
		fmt.Sprintf(
			`
			with "new" as (
				insert into "%[1]s" ("name") values ($1)
				on conflict ((lower("name"))) do nothing
				returning %[2]s
			)
			select * from "new"
			union all
			select %[2]s from "%[1]s" where lower("name") = lower($1)
			`,
			k.table, k.columns(),
		),
		name,
	)
	if err != nil {
		return *new(T), xe.Wrap(err)
	}
	if len(found) == 0 {
		// inserted by a concurrent transaction which is not visible from this snapshot.
		return *new(T), xe.Wrap(fmt.Errorf("%w: %s %q is being created concurrently", domerr.ErrConflict, k.table, name))
	}
	return found[0], nil
}

func (c *pgCatalog[T]) FindOrCreate(ctx context.Context, name string) (T, error) {
	conn, err := c.pool.Acquire(ctx)
	if err != nil {
		return *new(T), xe.Wrap(err)
	}
	defer conn.Release()
	return findOrCreate[T](ctx, conn, c.kind, name)
}

func (c *pgCatalog[T]) Get(ctx context.Context, id int64) (T, error) {
	found, err := scanner.QueryOne[T](
		ctx, c.pool,
		fmt.Sprintf(`select %s from "%s" where "%s" = $1`, c.kind.columns(), c.kind.table, c.kind.idColumn),
		id,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return *new(T), xe.Wrap(c.kind.missing(fmt.Sprintf("%s=%d", c.kind.idColumn, id)))
	} else if err != nil {
		return *new(T), xe.Wrap(err)
	}
	return found, nil
}

// escapeLike escapes wildcards for "like" patterns.
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

func (c *pgCatalog[T]) Search(ctx context.Context, prefix string, limit int) ([]T, error) {
	conn, err := c.pool.Acquire(ctx)
	if err != nil {
		return nil, xe.Wrap(err)
	}
	defer conn.Release()

	var lim *int
	if 0 < limit {
		lim = &limit
	}

	found, err := scanner.New[T]().QueryAll(
		ctx, conn,
		fmt.Sprintf(
			`
			select %s from "%s"
			where lower("name") like lower($1) || '%%'
			order by lower("name")
			limit $2
			`,
			c.kind.columns(), c.kind.table,
		),
		escapeLike(strings.TrimSpace(prefix)), lim,
	)
	if err != nil {
		return nil, xe.Wrap(err)
	}
	return found, nil
}

func (c *pgCatalog[T]) Rename(ctx context.Context, id int64, name string) (T, error) {
	name, err := domain.NormalizeName(name)
	if err != nil {
		return *new(T), err
	}

	conn, err := c.pool.Acquire(ctx)
	if err != nil {
		return *new(T), xe.Wrap(err)
	}
	defer conn.Release()

	found, err := scanner.New[T]().QueryAll(
		ctx, conn,
		fmt.Sprintf(
			`update "%s" set "name" = $2 where "%s" = $1 returning %s`,
			c.kind.table, c.kind.idColumn, c.kind.columns(),
		),
		id, name,
	)
	if err != nil {
		return *new(T), xe.Wrap(pgerr.Translate(err))
	}
	if len(found) == 0 {
		return *new(T), xe.Wrap(c.kind.missing(fmt.Sprintf("%s=%d", c.kind.idColumn, id)))
	}
	return found[0], nil
}

func (c *pgCatalog[T]) Delete(ctx context.Context, id int64) error {
	return mpool.InTx(ctx, c.pool, func(tx mpool.Tx) error {
		var locked int64
		if err := tx.QueryRow(
			ctx,
			fmt.Sprintf(`select "%[2]s" from "%[1]s" where "%[2]s" = $1 for update`, c.kind.table, c.kind.idColumn),
			id,
		).Scan(&locked); errors.Is(err, pgx.ErrNoRows) {
			return xe.Wrap(c.kind.missing(fmt.Sprintf("%s=%d", c.kind.idColumn, id)))
		} else if err != nil {
			return xe.Wrap(err)
		}

		for _, q := range c.kind.referrers {
			var refs int64
			if err := tx.QueryRow(ctx, q, id).Scan(&refs); err != nil {
				return xe.Wrap(err)
			}
			if 0 < refs {
				return xe.Wrap(fmt.Errorf("%w: %s %d is in use", domerr.ErrConflict, c.kind.table, id))
			}
		}

		if _, err := tx.Exec(
			ctx,
			fmt.Sprintf(`delete from "%s" where "%s" = $1`, c.kind.table, c.kind.idColumn),
			id,
		); err != nil {
			if pgerr.IsForeignKeyViolation(err) {
				return xe.Wrap(fmt.Errorf("%w: %s %d is in use", domerr.ErrConflict, c.kind.table, id))
			}
			return xe.Wrap(err)
		}
		return nil
	})
}
