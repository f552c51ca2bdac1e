package db

import (
	"context"

	"github.com/opst/mealplanner/pkg/domain"
)

type ShoppingListInterface interface {
	// Resolve turns a client reference into a Purchasable.
	//
	// A (type, id) reference is looked up, and ErrMissing is returned when it does not exist.
	// A name reference is resolved by find-or-create of an Item.
	Resolve(ctx context.Context, ref domain.PurchasableRef) (domain.Purchasable, error)

	// Add merges requirements into the shopping list of the user.
	//
	// For each Purchasable, when the user has a pending (not purchased) entry,
	// the quantity is added to the entry. Otherwise a new entry is created.
	// Requirements for the same Purchasable are merged beforehand.
	//
	// All requirements are merged in one transaction.
	//
	// Returns
	//
	// - []domain.ShoppingListEntry: entries affected, in the order of (merged) requirements.
	//
	// - error: ErrMissing when a Purchasable does not exist.
	Add(ctx context.Context, userId int64, requirements []domain.Requirement) ([]domain.ShoppingListEntry, error)

	// Find returns entries in the owner scope, pending first, then in id order.
	Find(ctx context.Context, owner domain.Owner, query domain.ShoppingListFindQuery) ([]domain.ShoppingListEntry, error)

	// Get returns an entry.
	//
	// Returns ErrMissing when not found or out of the owner scope.
	Get(ctx context.Context, owner domain.Owner, entryId int64) (domain.ShoppingListEntry, error)

	// Update changes quantity or purchased flag of an entry.
	//
	// Returns ErrMissing when not found or out of the owner scope,
	// or ErrConflict when it makes a second pending entry of the Purchasable.
	Update(ctx context.Context, owner domain.Owner, entryId int64, update domain.ShoppingListUpdate) (domain.ShoppingListEntry, error)

	// Delete removes an entry.
	//
	// Returns ErrMissing when not found or out of the owner scope,
	// or ErrConflict when payments refer it.
	Delete(ctx context.Context, owner domain.Owner, entryId int64) error
}
