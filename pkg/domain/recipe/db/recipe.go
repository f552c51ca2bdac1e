package db

import (
	"context"

	"github.com/opst/mealplanner/pkg/domain"
)

type RecipeInterface interface {
	// Create registers a recipe owned by the user.
	//
	// Ingredients referred by name are found or created.
	Create(ctx context.Context, userId int64, param domain.RecipeParam) (domain.Recipe, error)

	// Get returns a recipe with its ingredient lines.
	//
	// Returns ErrMissing when not found or out of the owner scope.
	Get(ctx context.Context, owner domain.Owner, recipeId int64) (domain.Recipe, error)

	// Find returns recipes in the owner scope, in id order.
	Find(ctx context.Context, owner domain.Owner) ([]domain.Recipe, error)

	// Update overwrites a recipe. Ingredient lines are replaced.
	//
	// Returns ErrMissing when not found or out of the owner scope.
	Update(ctx context.Context, owner domain.Owner, recipeId int64, param domain.RecipeParam) (domain.Recipe, error)

	// Delete removes a recipe, meal plans scheduling it, and comments on them.
	//
	// Returns ErrMissing when not found or out of the owner scope.
	Delete(ctx context.Context, owner domain.Owner, recipeId int64) error
}
