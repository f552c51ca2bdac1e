package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/opst/mealplanner/pkg/api/binding"
	apirecipes "github.com/opst/mealplanner/pkg/api/types/recipes"
	dbrecipe "github.com/opst/mealplanner/pkg/domain/recipe/db"
	"github.com/opst/mealplanner/pkg/utils"
)

// FindRecipeHandler lists recipes in scope as summaries.
func FindRecipeHandler(recipes dbrecipe.RecipeInterface, scope Scope) echo.HandlerFunc {
	return func(c echo.Context) error {
		owner, err := scope.Owner(c)
		if err != nil {
			return err
		}
		found, err := recipes.Find(c.Request().Context(), owner)
		if err != nil {
			return toHTTPError(err)
		}
		return c.JSON(http.StatusOK, utils.Map(found, binding.ComposeRecipeSummary))
	}
}

func CreateRecipeHandler(recipes dbrecipe.RecipeInterface, scope Scope) echo.HandlerFunc {
	return func(c echo.Context) error {
		param, err := bindJSON[apirecipes.Param](c)
		if err != nil {
			return err
		}
		userId, err := scope.Creator(c)
		if err != nil {
			return err
		}
		recipe, err := recipes.Create(c.Request().Context(), userId, binding.RecipeParam(param))
		if err != nil {
			return toHTTPError(err)
		}
		return c.JSON(http.StatusCreated, binding.ComposeRecipe(recipe))
	}
}

func GetRecipeHandler(recipes dbrecipe.RecipeInterface, scope Scope, key string) echo.HandlerFunc {
	return func(c echo.Context) error {
		owner, err := scope.Owner(c)
		if err != nil {
			return err
		}
		id, err := pathId(c, key)
		if err != nil {
			return err
		}
		recipe, err := recipes.Get(c.Request().Context(), owner, id)
		if err != nil {
			return toHTTPError(err)
		}
		return c.JSON(http.StatusOK, binding.ComposeRecipe(recipe))
	}
}

// UpdateRecipeHandler replaces a recipe, including its ingredient lines.
func UpdateRecipeHandler(recipes dbrecipe.RecipeInterface, scope Scope, key string) echo.HandlerFunc {
	return func(c echo.Context) error {
		owner, err := scope.Owner(c)
		if err != nil {
			return err
		}
		id, err := pathId(c, key)
		if err != nil {
			return err
		}
		param, err := bindJSON[apirecipes.Param](c)
		if err != nil {
			return err
		}
		recipe, err := recipes.Update(c.Request().Context(), owner, id, binding.RecipeParam(param))
		if err != nil {
			return toHTTPError(err)
		}
		return c.JSON(http.StatusOK, binding.ComposeRecipe(recipe))
	}
}

func DeleteRecipeHandler(recipes dbrecipe.RecipeInterface, scope Scope, key string) echo.HandlerFunc {
	return func(c echo.Context) error {
		owner, err := scope.Owner(c)
		if err != nil {
			return err
		}
		id, err := pathId(c, key)
		if err != nil {
			return err
		}
		if err := recipes.Delete(c.Request().Context(), owner, id); err != nil {
			return toHTTPError(err)
		}
		return c.NoContent(http.StatusNoContent)
	}
}
