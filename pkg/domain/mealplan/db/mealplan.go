package db

import (
	"context"

	"github.com/opst/mealplanner/pkg/domain"
)

type MealPlanInterface interface {
	// Create schedules a recipe or an item for the user.
	//
	// Returns ErrMissing when the plannable does not exist,
	// or the recipe is not owned by the user.
	Create(ctx context.Context, userId int64, param domain.MealPlanParam) (domain.MealPlan, error)

	// Get returns a meal plan.
	//
	// Returns ErrMissing when not found or out of the owner scope.
	Get(ctx context.Context, owner domain.Owner, mealPlanId int64) (domain.MealPlan, error)

	// Find returns meal plans in the owner scope, ordered by date, slot and id.
	Find(ctx context.Context, owner domain.Owner, query domain.MealPlanFindQuery) ([]domain.MealPlan, error)

	// Update overwrites a meal plan.
	//
	// Returns ErrMissing when the meal plan or the new plannable is not found.
	Update(ctx context.Context, owner domain.Owner, mealPlanId int64, param domain.MealPlanParam) (domain.MealPlan, error)

	// Delete removes a meal plan and comments on it.
	//
	// Returns ErrMissing when not found or out of the owner scope.
	Delete(ctx context.Context, owner domain.Owner, mealPlanId int64) error
}
