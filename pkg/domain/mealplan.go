package domain

import (
	"fmt"
	"strings"
	"time"

	domerr "github.com/opst/mealplanner/pkg/domain/errors"
)

// Slot is a time slot of a day in meal plans.
type Slot string

const (
	Breakfast Slot = "breakfast"
	Lunch     Slot = "lunch"
	Dinner    Slot = "dinner"
	Snack     Slot = "snack"
)

var slots = []Slot{Breakfast, Lunch, Dinner, Snack}

func AsSlot(s string) (Slot, error) {
	for _, sl := range slots {
		if strings.EqualFold(s, string(sl)) {
			return sl, nil
		}
	}
	return "", fmt.Errorf(
		"%w: slot should be one of breakfast, lunch, dinner or snack: %q",
		domerr.ErrInvalidParam, s,
	)
}

type MealPlan struct {
	Id     int64
	UserId int64

	// calendar date, as midnight in UTC.
	Date      time.Time
	Slot      Slot
	Plannable Plannable

	// nil means "as the recipe says".
	Servings *int
	Note     string

	CreatedAt time.Time
	UpdatedAt time.Time
}

type MealPlanParam struct {
	Date      time.Time
	Slot      Slot
	Plannable Plannable
	Servings  *int
	Note      string
}

func (p MealPlanParam) Validate() (MealPlanParam, error) {
	if p.Date.IsZero() {
		return MealPlanParam{}, domerr.NewInvalidParam("date", "is required")
	}
	y, m, d := p.Date.Date()
	p.Date = time.Date(y, m, d, 0, 0, 0, 0, time.UTC)

	slot, err := AsSlot(string(p.Slot))
	if err != nil {
		return MealPlanParam{}, err
	}
	p.Slot = slot

	if _, err := AsPlannableType(string(p.Plannable.Type)); err != nil {
		return MealPlanParam{}, err
	}
	if p.Plannable.Id <= 0 {
		return MealPlanParam{}, domerr.NewInvalidParam("plannable.id", "should be positive")
	}
	if p.Servings != nil && *p.Servings <= 0 {
		return MealPlanParam{}, domerr.NewInvalidParam("servings", "should be positive")
	}
	p.Note = strings.TrimSpace(p.Note)
	return p, nil
}

type MealPlanFindQuery struct {
	// inclusive. zero means unbounded.
	Since time.Time

	// inclusive. zero means unbounded.
	Until time.Time

	Slot []Slot
}

// Requirements derives what should be bought for a meal plan.
//
// When the plan schedules a recipe, pass the recipe. For an item, recipe is ignored (nil is fine).
//
// For recipes, each ingredient line becomes a requirement of the ingredient,
// scaled by plan.Servings / recipe.Servings when the plan has servings.
// Lines of the same ingredient are merged.
//
// For items, the requirement is the item itself, as many as plan.Servings (or 1).
func Requirements(plan MealPlan, recipe *Recipe) ([]Requirement, error) {
	switch plan.Plannable.Type {
	case PlannableItem:
		amount := 1
		if plan.Servings != nil {
			amount = *plan.Servings
		}
		return []Requirement{
			{
				Purchasable: Purchasable{Type: PurchasableItem, Id: plan.Plannable.Id, Name: plan.Plannable.Name},
				Quantity:    Quantity{Amount: float64(amount)},
			},
		}, nil
	case PlannableRecipe:
		if recipe == nil || recipe.Id != plan.Plannable.Id {
			return nil, fmt.Errorf("%w: recipe %d for meal plan %d", domerr.ErrMissing, plan.Plannable.Id, plan.Id)
		}
		factor := 1.0
		if plan.Servings != nil && recipe.Servings > 0 {
			factor = float64(*plan.Servings) / float64(recipe.Servings)
		}

		ret := []Requirement{}
		index := map[int64]int{}
		for _, line := range recipe.Ingredients {
			q, err := line.Requirement()
			if err != nil {
				return nil, fmt.Errorf("ingredient %q in recipe %d: %w", line.Ingredient.Name, recipe.Id, err)
			}
			q = q.Scale(factor)
			if nth, ok := index[line.Ingredient.Id]; ok {
				ret[nth].Quantity = ret[nth].Quantity.Add(q)
				continue
			}
			index[line.Ingredient.Id] = len(ret)
			ret = append(ret, Requirement{
				Purchasable: Purchasable{
					Type: PurchasableIngredient,
					Id:   line.Ingredient.Id,
					Name: line.Ingredient.Name,
				},
				Quantity: q,
			})
		}
		return ret, nil
	}
	return nil, fmt.Errorf("%w: unknown plannable type %q", domerr.ErrInvalidParam, plan.Plannable.Type)
}
