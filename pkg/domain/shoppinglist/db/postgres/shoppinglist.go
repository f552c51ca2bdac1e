package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v4"
	mpool "github.com/opst/mealplanner/pkg/conn/db/postgres/pool"
	"github.com/opst/mealplanner/pkg/domain"
	pgcatalog "github.com/opst/mealplanner/pkg/domain/catalog/db/postgres"
	domerr "github.com/opst/mealplanner/pkg/domain/errors"
	pgerr "github.com/opst/mealplanner/pkg/domain/errors/dberrors/postgres"
	dbshopping "github.com/opst/mealplanner/pkg/domain/shoppinglist/db"
	xe "github.com/opst/mealplanner/pkg/errors"
)

type pgShoppingList struct {
	pool mpool.Pool
}

func New(pool mpool.Pool) dbshopping.ShoppingListInterface {
	return &pgShoppingList{pool: pool}
}

func missing(entryId int64) error {
	return pgerr.Missing{
		Table:    "shopping_list_entry",
		Identity: fmt.Sprintf("shopping_list_entry_id=%d", entryId),
	}
}

// purchasableName looks up the name of a purchasable.
//
// The catalog row is locked "for share", so it can not be deleted until the transaction of q ends.
func purchasableName(ctx context.Context, q mpool.Queryer, p domain.Purchasable) (string, error) {
	var query string
	switch p.Type {
	case domain.PurchasableItem:
		query = `select "name" from "item" where "item_id" = $1 for share`
	case domain.PurchasableIngredient:
		query = `select "name" from "ingredient" where "ingredient_id" = $1 for share`
	default:
		return "", xe.Wrap(fmt.Errorf("%w: purchasable type %q", domerr.ErrInvalidParam, p.Type))
	}

	var name string
	if err := q.QueryRow(ctx, query, p.Id).Scan(&name); errors.Is(err, pgx.ErrNoRows) {
		return "", xe.Wrap(pgerr.Missing{Table: string(p.Type), Identity: p.String()})
	} else if err != nil {
		return "", xe.Wrap(err)
	}
	return name, nil
}

func (s *pgShoppingList) Resolve(ctx context.Context, ref domain.PurchasableRef) (domain.Purchasable, error) {
	ref, err := ref.Validate()
	if err != nil {
		return domain.Purchasable{}, err
	}

	conn, err := s.pool.Acquire(ctx)
	if err != nil {
		return domain.Purchasable{}, xe.Wrap(err)
	}
	defer conn.Release()

	if ref.ByName() {
		item, err := pgcatalog.FindOrCreateItem(ctx, conn, ref.Name)
		if err != nil {
			return domain.Purchasable{}, err
		}
		return domain.Purchasable{Type: domain.PurchasableItem, Id: item.Id, Name: item.Name}, nil
	}

	p := domain.Purchasable{Type: ref.Type, Id: ref.Id}
	name, err := purchasableName(ctx, conn, p)
	if err != nil {
		return domain.Purchasable{}, err
	}
	p.Name = name
	return p, nil
}

const selectEntry = `
select
	"e"."shopping_list_entry_id", "e"."user_id",
	"e"."purchasable_type", "e"."purchasable_id",
	coalesce("it"."name", "ing"."name", '') as "purchasable_name",
	"e"."quantity", "e"."unit", "e"."purchased", "e"."created_at", "e"."updated_at"
from "shopping_list_entry" as "e"
left join "item" as "it"
	on "e"."purchasable_type" = 'item' and "it"."item_id" = "e"."purchasable_id"
left join "ingredient" as "ing"
	on "e"."purchasable_type" = 'ingredient' and "ing"."ingredient_id" = "e"."purchasable_id"
`

func retrieve(ctx context.Context, q mpool.Queryer, where string, order string, params ...any) ([]domain.ShoppingListEntry, error) {
	rows, err := q.Query(ctx, selectEntry+" where "+where+" order by "+order, params...)
	if err != nil {
		return nil, xe.Wrap(err)
	}
	defer rows.Close()

	ret := []domain.ShoppingListEntry{}
	for rows.Next() {
		e := domain.ShoppingListEntry{}
		var ptype string
		if err := rows.Scan(
			&e.Id, &e.UserId,
			&ptype, &e.Purchasable.Id, &e.Purchasable.Name,
			&e.Quantity.Amount, &e.Quantity.Unit, &e.Purchased, &e.CreatedAt, &e.UpdatedAt,
		); err != nil {
			return nil, xe.Wrap(err)
		}
		e.Purchasable.Type = domain.PurchasableType(ptype)
		ret = append(ret, e)
	}
	if err := rows.Err(); err != nil {
		return nil, xe.Wrap(err)
	}
	return ret, nil
}

func getOne(ctx context.Context, q mpool.Queryer, owner domain.Owner, entryId int64) (domain.ShoppingListEntry, error) {
	anyOwner, userId := owner.SQLParams()
	found, err := retrieve(
		ctx, q,
		`"e"."shopping_list_entry_id" = $1 and ($2::bool or "e"."user_id" = $3)`,
		`"e"."shopping_list_entry_id"`,
		entryId, anyOwner, userId,
	)
	if err != nil {
		return domain.ShoppingListEntry{}, err
	}
	if len(found) == 0 {
		return domain.ShoppingListEntry{}, xe.Wrap(missing(entryId))
	}
	return found[0], nil
}

func (s *pgShoppingList) Add(ctx context.Context, userId int64, requirements []domain.Requirement) ([]domain.ShoppingListEntry, error) {
	requirements = domain.MergeRequirements(requirements)

	// A concurrent Add may insert a pending entry for the same purchasable after our lookup.
	// Then the partial unique index rejects ours, and retrying finds the entry.
	ret, err := s.add(ctx, userId, requirements)
	if pgerr.IsUniqueViolation(err) {
		ret, err = s.add(ctx, userId, requirements)
	}
	if err != nil {
		return nil, xe.Wrap(pgerr.Translate(err))
	}
	return ret, nil
}

func (s *pgShoppingList) add(ctx context.Context, userId int64, requirements []domain.Requirement) ([]domain.ShoppingListEntry, error) {
	ret := make([]domain.ShoppingListEntry, 0, len(requirements))
	err := mpool.InTx(ctx, s.pool, func(tx mpool.Tx) error {
		for _, req := range requirements {
			if req.Quantity.Amount < 0 {
				return xe.Wrap(domerr.NewInvalidParam("quantity", "should not be negative"))
			}
			if _, err := purchasableName(ctx, tx, req.Purchasable); err != nil {
				return err
			}

			var entryId int64
			current := domain.Quantity{}
			err := tx.QueryRow(
				ctx,
				`
				select "shopping_list_entry_id", "quantity", "unit"
				from "shopping_list_entry"
				where "user_id" = $1 and "purchasable_type" = $2 and "purchasable_id" = $3
					and not "purchased"
				for update
				`,
				userId, string(req.Purchasable.Type), req.Purchasable.Id,
			).Scan(&entryId, &current.Amount, &current.Unit)

			switch {
			case errors.Is(err, pgx.ErrNoRows):
				if err := tx.QueryRow(
					ctx,
					`
					insert into "shopping_list_entry"
						("user_id", "purchasable_type", "purchasable_id", "quantity", "unit")
					values ($1, $2, $3, $4, $5)
					returning "shopping_list_entry_id"
					`,
					userId, string(req.Purchasable.Type), req.Purchasable.Id,
					req.Quantity.Amount, req.Quantity.Unit,
				).Scan(&entryId); err != nil {
					return err
				}
			case err != nil:
				return xe.Wrap(err)
			default:
				merged := current.Add(req.Quantity)
				if _, err := tx.Exec(
					ctx,
					`
					update "shopping_list_entry"
					set "quantity" = $2, "unit" = $3, "updated_at" = now()
					where "shopping_list_entry_id" = $1
					`,
					entryId, merged.Amount, merged.Unit,
				); err != nil {
					return xe.Wrap(err)
				}
			}

			entry, err := getOne(ctx, tx, domain.OwnedBy(userId), entryId)
			if err != nil {
				return err
			}
			ret = append(ret, entry)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return ret, nil
}

func (s *pgShoppingList) Find(ctx context.Context, owner domain.Owner, query domain.ShoppingListFindQuery) ([]domain.ShoppingListEntry, error) {
	conn, err := s.pool.Acquire(ctx)
	if err != nil {
		return nil, xe.Wrap(err)
	}
	defer conn.Release()

	anyOwner, userId := owner.SQLParams()
	return retrieve(
		ctx, conn,
		`($1::bool or "e"."user_id" = $2) and ($3::bool is null or "e"."purchased" = $3::bool)`,
		`"e"."purchased", "e"."shopping_list_entry_id"`,
		anyOwner, userId, query.Purchased,
	)
}

func (s *pgShoppingList) Get(ctx context.Context, owner domain.Owner, entryId int64) (domain.ShoppingListEntry, error) {
	conn, err := s.pool.Acquire(ctx)
	if err != nil {
		return domain.ShoppingListEntry{}, xe.Wrap(err)
	}
	defer conn.Release()
	return getOne(ctx, conn, owner, entryId)
}

func (s *pgShoppingList) Update(ctx context.Context, owner domain.Owner, entryId int64, update domain.ShoppingListUpdate) (domain.ShoppingListEntry, error) {
	if update.Quantity != nil && update.Quantity.Amount < 0 {
		return domain.ShoppingListEntry{}, domerr.NewInvalidParam("quantity", "should not be negative")
	}

	var ret domain.ShoppingListEntry
	err := mpool.InTx(ctx, s.pool, func(tx mpool.Tx) error {
		anyOwner, userId := owner.SQLParams()
		var amount *float64
		var unit *string
		if update.Quantity != nil {
			amount, unit = &update.Quantity.Amount, &update.Quantity.Unit
		}

		ctag, err := tx.Exec(
			ctx,
			`
			update "shopping_list_entry"
			set
				"quantity" = coalesce($4, "quantity"),
				"unit" = coalesce($5, "unit"),
				"purchased" = coalesce($6, "purchased"),
				"updated_at" = now()
			where "shopping_list_entry_id" = $1 and ($2::bool or "user_id" = $3)
			`,
			entryId, anyOwner, userId, amount, unit, update.Purchased,
		)
		if err != nil {
			return xe.Wrap(pgerr.Translate(err))
		}
		if ctag.RowsAffected() == 0 {
			return xe.Wrap(missing(entryId))
		}

		ret, err = getOne(ctx, tx, owner, entryId)
		return err
	})
	if err != nil {
		return domain.ShoppingListEntry{}, err
	}
	return ret, nil
}

func (s *pgShoppingList) Delete(ctx context.Context, owner domain.Owner, entryId int64) error {
	conn, err := s.pool.Acquire(ctx)
	if err != nil {
		return xe.Wrap(err)
	}
	defer conn.Release()

	anyOwner, userId := owner.SQLParams()
	ctag, err := conn.Exec(
		ctx,
		`delete from "shopping_list_entry" where "shopping_list_entry_id" = $1 and ($2::bool or "user_id" = $3)`,
		entryId, anyOwner, userId,
	)
	if pgerr.IsForeignKeyViolation(err) {
		return xe.Wrap(fmt.Errorf("%w: shopping list entry %d has payments", domerr.ErrConflict, entryId))
	} else if err != nil {
		return xe.Wrap(err)
	}
	if ctag.RowsAffected() == 0 {
		return xe.Wrap(missing(entryId))
	}
	return nil
}
