package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/opst/mealplanner/pkg/api/binding"
	apierr "github.com/opst/mealplanner/pkg/api/types/errors"
	apimealplans "github.com/opst/mealplanner/pkg/api/types/mealplans"
	"github.com/opst/mealplanner/pkg/domain"
	dbmealplan "github.com/opst/mealplanner/pkg/domain/mealplan/db"
	dbrecipe "github.com/opst/mealplanner/pkg/domain/recipe/db"
	dbshopping "github.com/opst/mealplanner/pkg/domain/shoppinglist/db"
	"github.com/opst/mealplanner/pkg/utils"
	"github.com/opst/mealplanner/pkg/utils/rfctime"
)

// FindMealPlanHandler lists meal plans in scope.
//
// Queries:
//
// - since, until: date range like "2024-05-01", both inclusive.
//
// - slot: breakfast, lunch, dinner or snack. Can be repeated.
func FindMealPlanHandler(plans dbmealplan.MealPlanInterface, scope Scope) echo.HandlerFunc {
	return func(c echo.Context) error {
		owner, err := scope.Owner(c)
		if err != nil {
			return err
		}

		query := domain.MealPlanFindQuery{}
		if s := c.QueryParam("since"); s != "" {
			d, err := rfctime.ParseDate(s)
			if err != nil {
				return apierr.BadRequest(`query "since" should be a date like 2024-05-01`, err)
			}
			query.Since = d.Time()
		}
		if u := c.QueryParam("until"); u != "" {
			d, err := rfctime.ParseDate(u)
			if err != nil {
				return apierr.BadRequest(`query "until" should be a date like 2024-05-01`, err)
			}
			query.Until = d.Time()
		}
		slots, err := utils.MapUntilError(c.QueryParams()["slot"], domain.AsSlot)
		if err != nil {
			return apierr.BadRequest(`query "slot" should be one of breakfast, lunch, dinner or snack`, err)
		}
		query.Slot = slots

		found, err := plans.Find(c.Request().Context(), owner, query)
		if err != nil {
			return toHTTPError(err)
		}
		return c.JSON(http.StatusOK, utils.Map(found, binding.ComposeMealPlan))
	}
}

func CreateMealPlanHandler(plans dbmealplan.MealPlanInterface, scope Scope) echo.HandlerFunc {
	return func(c echo.Context) error {
		param, err := bindJSON[apimealplans.Param](c)
		if err != nil {
			return err
		}
		userId, err := scope.Creator(c)
		if err != nil {
			return err
		}
		plan, err := plans.Create(c.Request().Context(), userId, binding.MealPlanParam(param))
		if err != nil {
			return toHTTPError(err)
		}
		return c.JSON(http.StatusCreated, binding.ComposeMealPlan(plan))
	}
}

func GetMealPlanHandler(plans dbmealplan.MealPlanInterface, scope Scope, key string) echo.HandlerFunc {
	return func(c echo.Context) error {
		owner, err := scope.Owner(c)
		if err != nil {
			return err
		}
		id, err := pathId(c, key)
		if err != nil {
			return err
		}
		plan, err := plans.Get(c.Request().Context(), owner, id)
		if err != nil {
			return toHTTPError(err)
		}
		return c.JSON(http.StatusOK, binding.ComposeMealPlan(plan))
	}
}

func UpdateMealPlanHandler(plans dbmealplan.MealPlanInterface, scope Scope, key string) echo.HandlerFunc {
	return func(c echo.Context) error {
		owner, err := scope.Owner(c)
		if err != nil {
			return err
		}
		id, err := pathId(c, key)
		if err != nil {
			return err
		}
		param, err := bindJSON[apimealplans.Param](c)
		if err != nil {
			return err
		}
		plan, err := plans.Update(c.Request().Context(), owner, id, binding.MealPlanParam(param))
		if err != nil {
			return toHTTPError(err)
		}
		return c.JSON(http.StatusOK, binding.ComposeMealPlan(plan))
	}
}

func DeleteMealPlanHandler(plans dbmealplan.MealPlanInterface, scope Scope, key string) echo.HandlerFunc {
	return func(c echo.Context) error {
		owner, err := scope.Owner(c)
		if err != nil {
			return err
		}
		id, err := pathId(c, key)
		if err != nil {
			return err
		}
		if err := plans.Delete(c.Request().Context(), owner, id); err != nil {
			return toHTTPError(err)
		}
		return c.NoContent(http.StatusNoContent)
	}
}

// AddMealPlanToShoppingHandler merges what the meal plan needs into the shopping list of the plan's owner.
//
// It responses the meal plan and the shopping list entries touched.
func AddMealPlanToShoppingHandler(
	plans dbmealplan.MealPlanInterface,
	recipes dbrecipe.RecipeInterface,
	shopping dbshopping.ShoppingListInterface,
	scope Scope,
	key string,
) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		owner, err := scope.Owner(c)
		if err != nil {
			return err
		}
		id, err := pathId(c, key)
		if err != nil {
			return err
		}

		plan, err := plans.Get(ctx, owner, id)
		if err != nil {
			return toHTTPError(err)
		}

		var recipe *domain.Recipe
		if plan.Plannable.Type == domain.PlannableRecipe {
			r, err := recipes.Get(ctx, domain.OwnedBy(plan.UserId), plan.Plannable.Id)
			if err != nil {
				return toHTTPError(err)
			}
			recipe = &r
		}

		reqs, err := domain.Requirements(plan, recipe)
		if err != nil {
			return toHTTPError(err)
		}
		entries, err := shopping.Add(ctx, plan.UserId, reqs)
		if err != nil {
			return toHTTPError(err)
		}

		return c.JSON(http.StatusOK, apimealplans.ShoppingResult{
			MealPlan: binding.ComposeMealPlan(plan),
			Entries:  utils.Map(entries, binding.ComposeShoppingListEntry),
		})
	}
}
