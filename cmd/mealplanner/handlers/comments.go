package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/opst/mealplanner/pkg/api/binding"
	apicomments "github.com/opst/mealplanner/pkg/api/types/comments"
	apierr "github.com/opst/mealplanner/pkg/api/types/errors"
	"github.com/opst/mealplanner/pkg/auth"
	"github.com/opst/mealplanner/pkg/domain"
	dbcomment "github.com/opst/mealplanner/pkg/domain/comment/db"
	"github.com/opst/mealplanner/pkg/utils"
)

// FindCommentHandler lists comments on the recipe or meal plan identified by path parameter key.
func FindCommentHandler(
	comments dbcomment.CommentInterface, scope Scope, on domain.CommentableType, key string,
) echo.HandlerFunc {
	return func(c echo.Context) error {
		owner, err := scope.Owner(c)
		if err != nil {
			return err
		}
		id, err := pathId(c, key)
		if err != nil {
			return err
		}
		found, err := comments.Find(
			c.Request().Context(), owner, domain.Commentable{Type: on, Id: id},
		)
		if err != nil {
			return toHTTPError(err)
		}
		return c.JSON(http.StatusOK, utils.Map(found, binding.ComposeComment))
	}
}

// CreateCommentHandler adds a comment written by the acting user.
func CreateCommentHandler(
	comments dbcomment.CommentInterface, scope Scope, on domain.CommentableType, key string,
) echo.HandlerFunc {
	return func(c echo.Context) error {
		user, ok := auth.CurrentUser(c)
		if !ok {
			return apierr.Unauthorized("authentication is required", nil)
		}
		owner, err := scope.Owner(c)
		if err != nil {
			return err
		}
		id, err := pathId(c, key)
		if err != nil {
			return err
		}
		param, err := bindJSON[apicomments.Param](c)
		if err != nil {
			return err
		}

		comment, err := comments.Create(
			c.Request().Context(), owner, user.Id, domain.Commentable{Type: on, Id: id}, param.Body,
		)
		if err != nil {
			return toHTTPError(err)
		}
		return c.JSON(http.StatusCreated, binding.ComposeComment(comment))
	}
}

func UpdateCommentHandler(comments dbcomment.CommentInterface, scope Scope, key string) echo.HandlerFunc {
	return func(c echo.Context) error {
		owner, err := scope.Owner(c)
		if err != nil {
			return err
		}
		id, err := pathId(c, key)
		if err != nil {
			return err
		}
		param, err := bindJSON[apicomments.Param](c)
		if err != nil {
			return err
		}
		comment, err := comments.Update(c.Request().Context(), owner, id, param.Body)
		if err != nil {
			return toHTTPError(err)
		}
		return c.JSON(http.StatusOK, binding.ComposeComment(comment))
	}
}

func DeleteCommentHandler(comments dbcomment.CommentInterface, scope Scope, key string) echo.HandlerFunc {
	return func(c echo.Context) error {
		owner, err := scope.Owner(c)
		if err != nil {
			return err
		}
		id, err := pathId(c, key)
		if err != nil {
			return err
		}
		if err := comments.Delete(c.Request().Context(), owner, id); err != nil {
			return toHTTPError(err)
		}
		return c.NoContent(http.StatusNoContent)
	}
}
