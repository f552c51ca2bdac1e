package auth

import (
	"errors"
	"strings"

	"github.com/labstack/echo/v4"
	apierr "github.com/opst/mealplanner/pkg/api/types/errors"
	"github.com/opst/mealplanner/pkg/domain"
	domerr "github.com/opst/mealplanner/pkg/domain/errors"
	dbuser "github.com/opst/mealplanner/pkg/domain/user/db"
)

const (
	contextKeyUser   = "mealplanner/user"
	contextKeyClaims = "mealplanner/claims"
)

// Middleware resolves the acting user from "Authorization: Bearer ..." header.
//
// Requests without valid token are rejected with 401.
// The user is looked up for each request, so deleted users are rejected even if their tokens are alive.
func Middleware(keyring *Keyring, users dbuser.UserInterface) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			scheme, token, ok := strings.Cut(c.Request().Header.Get(echo.HeaderAuthorization), " ")
			if !ok || !strings.EqualFold(scheme, "bearer") || strings.TrimSpace(token) == "" {
				return apierr.Unauthorized(`"Authorization: Bearer TOKEN" header is required`, nil)
			}

			claims, err := keyring.Verify(strings.TrimSpace(token))
			if err != nil {
				return apierr.Unauthorized("token is invalid or expired. get new one.", err)
			}
			userId, err := claims.UserId()
			if err != nil {
				return apierr.Unauthorized("token is invalid. get new one.", err)
			}

			user, err := users.Get(c.Request().Context(), userId)
			if errors.Is(err, domerr.ErrMissing) {
				return apierr.Unauthorized("user is not found", err)
			} else if err != nil {
				return apierr.InternalServerError(err)
			}

			c.Set(contextKeyUser, user)
			c.Set(contextKeyClaims, claims)
			return next(c)
		}
	}
}

// RequireAdmin rejects requests by non-admin users with 403.
//
// Both the token and the user record should say admin. Use it after Middleware.
func RequireAdmin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user, ok := CurrentUser(c)
			if !ok {
				return apierr.Unauthorized("authentication is required", nil)
			}
			claims, _ := c.Get(contextKeyClaims).(*Claims)
			if !user.Admin || claims == nil || !claims.Admin {
				return apierr.Forbidden("only administrators can do this")
			}
			return next(c)
		}
	}
}

// CurrentUser returns the user set by Middleware.
func CurrentUser(c echo.Context) (domain.User, bool) {
	u, ok := c.Get(contextKeyUser).(domain.User)
	return u, ok
}

// WithUser sets the acting user on c, as Middleware does.
//
// This is for handlers tests.
func WithUser(c echo.Context, user domain.User) echo.Context {
	c.Set(contextKeyUser, user)
	c.Set(contextKeyClaims, &Claims{Admin: user.Admin})
	return c
}
