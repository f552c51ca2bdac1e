package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/opst/mealplanner/pkg/api/binding"
	apierr "github.com/opst/mealplanner/pkg/api/types/errors"
	apiusers "github.com/opst/mealplanner/pkg/api/types/users"
	"github.com/opst/mealplanner/pkg/auth"
	dbuser "github.com/opst/mealplanner/pkg/domain/user/db"
	"github.com/opst/mealplanner/pkg/utils"
)

func GetMeHandler() echo.HandlerFunc {
	return func(c echo.Context) error {
		user, ok := auth.CurrentUser(c)
		if !ok {
			return apierr.Unauthorized("authentication is required", nil)
		}
		return c.JSON(http.StatusOK, binding.ComposeUser(user))
	}
}

func ListUsersHandler(users dbuser.UserInterface) echo.HandlerFunc {
	return func(c echo.Context) error {
		found, err := users.List(c.Request().Context())
		if err != nil {
			return toHTTPError(err)
		}
		return c.JSON(http.StatusOK, utils.Map(found, binding.ComposeUser))
	}
}

func CreateUserHandler(users dbuser.UserInterface) echo.HandlerFunc {
	return func(c echo.Context) error {
		param, err := bindJSON[apiusers.Param](c)
		if err != nil {
			return err
		}
		user, err := users.Create(c.Request().Context(), binding.UserParam(param))
		if err != nil {
			return toHTTPError(err)
		}
		return c.JSON(http.StatusCreated, binding.ComposeUser(user))
	}
}

func GetUserHandler(users dbuser.UserInterface, key string) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := pathId(c, key)
		if err != nil {
			return err
		}
		user, err := users.Get(c.Request().Context(), id)
		if err != nil {
			return toHTTPError(err)
		}
		return c.JSON(http.StatusOK, binding.ComposeUser(user))
	}
}

func UpdateUserHandler(users dbuser.UserInterface, key string) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := pathId(c, key)
		if err != nil {
			return err
		}
		param, err := bindJSON[apiusers.Param](c)
		if err != nil {
			return err
		}
		user, err := users.Update(c.Request().Context(), id, binding.UserParam(param))
		if err != nil {
			return toHTTPError(err)
		}
		return c.JSON(http.StatusOK, binding.ComposeUser(user))
	}
}

// DeleteUserHandler deletes a user with the records owned by the user.
//
// Admins can not delete themselves.
func DeleteUserHandler(users dbuser.UserInterface, key string) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := pathId(c, key)
		if err != nil {
			return err
		}
		if me, ok := auth.CurrentUser(c); ok && me.Id == id {
			return apierr.Conflict(
				"can not delete yourself",
				apierr.WithAdvice("ask another administrator"),
			)
		}
		if err := users.Delete(c.Request().Context(), id); err != nil {
			return toHTTPError(err)
		}
		return c.NoContent(http.StatusNoContent)
	}
}
