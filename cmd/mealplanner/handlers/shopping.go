package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/opst/mealplanner/pkg/api/binding"
	apishopping "github.com/opst/mealplanner/pkg/api/types/shopping"
	"github.com/opst/mealplanner/pkg/domain"
	dbshopping "github.com/opst/mealplanner/pkg/domain/shoppinglist/db"
	"github.com/opst/mealplanner/pkg/utils"
)

// FindShoppingListHandler lists shopping list entries in scope.
//
// Query "purchased" (true or false) filters entries. Without it, all entries are listed.
func FindShoppingListHandler(shopping dbshopping.ShoppingListInterface, scope Scope) echo.HandlerFunc {
	return func(c echo.Context) error {
		owner, err := scope.Owner(c)
		if err != nil {
			return err
		}
		purchased, err := queryBool(c, "purchased")
		if err != nil {
			return err
		}

		found, err := shopping.Find(
			c.Request().Context(), owner, domain.ShoppingListFindQuery{Purchased: purchased},
		)
		if err != nil {
			return toHTTPError(err)
		}
		return c.JSON(http.StatusOK, utils.Map(found, binding.ComposeShoppingListEntry))
	}
}

// AddShoppingListHandler adds a purchasable to the shopping list.
//
// When there is a pending entry of the purchasable, the quantity is merged into it.
func AddShoppingListHandler(shopping dbshopping.ShoppingListInterface, scope Scope) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		body, err := bindJSON[apishopping.AddParam](c)
		if err != nil {
			return err
		}
		userId, err := scope.Creator(c)
		if err != nil {
			return err
		}

		param, quantity, err := binding.ShoppingListAddParam(body).Validate()
		if err != nil {
			return toHTTPError(err)
		}
		purchasable, err := shopping.Resolve(ctx, param.Purchasable)
		if err != nil {
			return toHTTPError(err)
		}

		entries, err := shopping.Add(
			ctx, userId,
			[]domain.Requirement{{Purchasable: purchasable, Quantity: quantity}},
		)
		if err != nil {
			return toHTTPError(err)
		}
		if len(entries) != 1 {
			return toHTTPError(errors.New("unexpected number of shopping list entries are touched"))
		}
		return c.JSON(http.StatusOK, binding.ComposeShoppingListEntry(entries[0]))
	}
}

func GetShoppingListHandler(shopping dbshopping.ShoppingListInterface, scope Scope, key string) echo.HandlerFunc {
	return func(c echo.Context) error {
		owner, err := scope.Owner(c)
		if err != nil {
			return err
		}
		id, err := pathId(c, key)
		if err != nil {
			return err
		}
		entry, err := shopping.Get(c.Request().Context(), owner, id)
		if err != nil {
			return toHTTPError(err)
		}
		return c.JSON(http.StatusOK, binding.ComposeShoppingListEntry(entry))
	}
}

// UpdateShoppingListHandler changes quantity, unit or purchased flag of an entry.
func UpdateShoppingListHandler(shopping dbshopping.ShoppingListInterface, scope Scope, key string) echo.HandlerFunc {
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
		param, err := bindJSON[apishopping.UpdateParam](c)
		if err != nil {
			return err
		}

		current, err := shopping.Get(ctx, owner, id)
		if err != nil {
			return toHTTPError(err)
		}
		entry, err := shopping.Update(ctx, owner, id, binding.ShoppingListUpdate(current, param))
		if err != nil {
			return toHTTPError(err)
		}
		return c.JSON(http.StatusOK, binding.ComposeShoppingListEntry(entry))
	}
}

func DeleteShoppingListHandler(shopping dbshopping.ShoppingListInterface, scope Scope, key string) echo.HandlerFunc {
	return func(c echo.Context) error {
		owner, err := scope.Owner(c)
		if err != nil {
			return err
		}
		id, err := pathId(c, key)
		if err != nil {
			return err
		}
		if err := shopping.Delete(c.Request().Context(), owner, id); err != nil {
			return toHTTPError(err)
		}
		return c.NoContent(http.StatusNoContent)
	}
}
