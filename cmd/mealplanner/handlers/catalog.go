package handlers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	apicatalog "github.com/opst/mealplanner/pkg/api/types/catalog"
	apierr "github.com/opst/mealplanner/pkg/api/types/errors"
	"github.com/opst/mealplanner/pkg/domain"
	dbcatalog "github.com/opst/mealplanner/pkg/domain/catalog/db"
	"github.com/opst/mealplanner/pkg/utils"
)

// Handlers of ingredients and items are built from the same functions.
// compose converts an entry into its wire form.

// SearchCatalogHandler lists entries whose name starts with query "name".
//
// Query "limit" caps the number of entries.
func SearchCatalogHandler[T domain.Ingredient | domain.Item](
	catalog dbcatalog.CatalogInterface[T], compose func(T) apicatalog.Entry,
) echo.HandlerFunc {
	return func(c echo.Context) error {
		limit := 0
		if l := c.QueryParam("limit"); l != "" {
			n, err := strconv.Atoi(l)
			if err != nil || n < 0 {
				return apierr.BadRequest(`query "limit" should be a non-negative integer`, err)
			}
			limit = n
		}

		found, err := catalog.Search(c.Request().Context(), c.QueryParam("name"), limit)
		if err != nil {
			return toHTTPError(err)
		}
		return c.JSON(http.StatusOK, utils.Map(found, compose))
	}
}

// FindOrCreateCatalogHandler returns the entry named in the request, creating it when missing.
func FindOrCreateCatalogHandler[T domain.Ingredient | domain.Item](
	catalog dbcatalog.CatalogInterface[T], compose func(T) apicatalog.Entry,
) echo.HandlerFunc {
	return func(c echo.Context) error {
		param, err := bindJSON[apicatalog.Param](c)
		if err != nil {
			return err
		}
		entry, err := catalog.FindOrCreate(c.Request().Context(), param.Name)
		if err != nil {
			return toHTTPError(err)
		}
		return c.JSON(http.StatusOK, compose(entry))
	}
}

func GetCatalogHandler[T domain.Ingredient | domain.Item](
	catalog dbcatalog.CatalogInterface[T], compose func(T) apicatalog.Entry, key string,
) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := pathId(c, key)
		if err != nil {
			return err
		}
		entry, err := catalog.Get(c.Request().Context(), id)
		if err != nil {
			return toHTTPError(err)
		}
		return c.JSON(http.StatusOK, compose(entry))
	}
}

func RenameCatalogHandler[T domain.Ingredient | domain.Item](
	catalog dbcatalog.CatalogInterface[T], compose func(T) apicatalog.Entry, key string,
) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := pathId(c, key)
		if err != nil {
			return err
		}
		param, err := bindJSON[apicatalog.Param](c)
		if err != nil {
			return err
		}
		entry, err := catalog.Rename(c.Request().Context(), id, param.Name)
		if err != nil {
			return toHTTPError(err)
		}
		return c.JSON(http.StatusOK, compose(entry))
	}
}

func DeleteCatalogHandler[T domain.Ingredient | domain.Item](
	catalog dbcatalog.CatalogInterface[T], key string,
) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := pathId(c, key)
		if err != nil {
			return err
		}
		if err := catalog.Delete(c.Request().Context(), id); err != nil {
			return toHTTPError(err)
		}
		return c.NoContent(http.StatusNoContent)
	}
}
