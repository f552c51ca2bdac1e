package db

import (
	"context"

	"github.com/opst/mealplanner/pkg/domain"
)

// CatalogInterface is a repository of shared catalog entries.
//
// Catalog entries are visible to everyone. Names are unique case-insensitively.
type CatalogInterface[T domain.Ingredient | domain.Item] interface {
	// FindOrCreate returns the entry named as name, creating it when there are not.
	//
	// The name is normalized by domain.NormalizeName.
	FindOrCreate(ctx context.Context, name string) (T, error)

	// Get returns an entry by id.
	//
	// Returns ErrMissing when not found.
	Get(ctx context.Context, id int64) (T, error)

	// Search returns entries whose name starts with prefix case-insensitively, in name order.
	//
	// Empty prefix matches everything. limit <= 0 means no limit.
	Search(ctx context.Context, prefix string, limit int) ([]T, error)

	// Rename changes the name of an entry.
	//
	// Returns ErrMissing when not found, or ErrConflict when the name is taken.
	Rename(ctx context.Context, id int64, name string) (T, error)

	// Delete removes an entry.
	//
	// Returns ErrMissing when not found, or ErrConflict when it is referred from
	// recipes, meal plans or shopping lists.
	Delete(ctx context.Context, id int64) error
}

type IngredientInterface = CatalogInterface[domain.Ingredient]

type ItemInterface = CatalogInterface[domain.Item]
