package handlers

import (
	"errors"
	"strconv"

	"github.com/labstack/echo/v4"
	apierr "github.com/opst/mealplanner/pkg/api/types/errors"
	"github.com/opst/mealplanner/pkg/auth"
	"github.com/opst/mealplanner/pkg/domain"
	domerr "github.com/opst/mealplanner/pkg/domain/errors"
	dbuser "github.com/opst/mealplanner/pkg/domain/user/db"
)

// Scope decides whose records a request can touch.
type Scope interface {
	// Owner returns the owner scope for reading or changing records.
	Owner(c echo.Context) (domain.Owner, error)

	// Creator returns the id of the user who will own newly created records.
	Creator(c echo.Context) (int64, error)
}

type ownScope struct{}

// OwnScope limits requests to records of the acting user.
func OwnScope() Scope {
	return ownScope{}
}

func (ownScope) Owner(c echo.Context) (domain.Owner, error) {
	user, ok := auth.CurrentUser(c)
	if !ok {
		return domain.Owner{}, apierr.Unauthorized("authentication is required", nil)
	}
	return user.Owner(), nil
}

func (ownScope) Creator(c echo.Context) (int64, error) {
	user, ok := auth.CurrentUser(c)
	if !ok {
		return 0, apierr.Unauthorized("authentication is required", nil)
	}
	return user.Id, nil
}

type adminScope struct {
	users dbuser.UserInterface
}

// AdminScope opens records of every user.
//
// Records are created on behalf of the user given as query "?user=ID".
func AdminScope(users dbuser.UserInterface) Scope {
	return adminScope{users: users}
}

func (adminScope) Owner(echo.Context) (domain.Owner, error) {
	return domain.AnyOwner, nil
}

func (s adminScope) Creator(c echo.Context) (int64, error) {
	q := c.QueryParam("user")
	if q == "" {
		return 0, apierr.BadRequest(`query "user" is required to create records on behalf of the user`, nil)
	}
	userId, err := strconv.ParseInt(q, 10, 64)
	if err != nil {
		return 0, apierr.BadRequest(`query "user" should be an integer`, err)
	}

	user, err := s.users.Get(c.Request().Context(), userId)
	if errors.Is(err, domerr.ErrMissing) {
		return 0, apierr.BadRequest(`user given by query "user" is not found`, err)
	} else if err != nil {
		return 0, apierr.InternalServerError(err)
	}
	return user.Id, nil
}
