package auth_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	httptestutil "github.com/opst/mealplanner/internal/testutils/http"
	"github.com/opst/mealplanner/pkg/auth"
	"github.com/opst/mealplanner/pkg/domain"
	domerr "github.com/opst/mealplanner/pkg/domain/errors"
	usermock "github.com/opst/mealplanner/pkg/domain/user/db/mock"
	"github.com/opst/mealplanner/pkg/utils/try"
)

func statusOf(t *testing.T, err error) int {
	t.Helper()
	if err == nil {
		return http.StatusOK
	}
	httpErr := new(echo.HTTPError)
	if !errors.As(err, &httpErr) {
		t.Fatalf("unexpected error: %v", err)
	}
	return httpErr.Code
}

func TestMiddleware(t *testing.T) {
	keyring := try.To(auth.New("mealplanner", secret)).OrFatal(t)
	alice := domain.User{Id: 3, Name: "alice", Email: "alice@example.com"}

	type when struct {
		header     []httptestutil.RequestOption
		userExists bool
	}
	type then struct {
		status int
		user   *domain.User
	}

	theory := func(when when, then then) func(*testing.T) {
		return func(t *testing.T) {
			users := usermock.NewUserInterface()
			users.Impl.Get = func(ctx context.Context, userId int64) (domain.User, error) {
				if !when.userExists || userId != alice.Id {
					return domain.User{}, domerr.ErrMissing
				}
				return alice, nil
			}

			var actual *domain.User
			handler := auth.Middleware(keyring, users)(func(c echo.Context) error {
				u, ok := auth.CurrentUser(c)
				if ok {
					actual = &u
				}
				return c.NoContent(http.StatusOK)
			})

			e := echo.New()
			c, _ := httptestutil.Get(e, "/api/me", when.header...)
			if status := statusOf(t, handler(c)); status != then.status {
				t.Errorf("unexpected status: %d", status)
			}

			if then.user == nil {
				if actual != nil {
					t.Errorf("handler is called with user: %+v", actual)
				}
				return
			}
			if actual == nil || !actual.Equal(*then.user) {
				t.Errorf("unexpected user: %+v", actual)
			}
		}
	}

	valid := try.To(keyring.Issue(alice, time.Hour)).OrFatal(t)

	t.Run("When a valid token is given, it passes the user to the handler", theory(
		when{header: []httptestutil.RequestOption{httptestutil.Bearer(valid)}, userExists: true},
		then{status: http.StatusOK, user: &alice},
	))
	t.Run("When no token is given, it responds 401", theory(
		when{userExists: true},
		then{status: http.StatusUnauthorized},
	))
	t.Run("When the scheme is not Bearer, it responds 401", theory(
		when{
			header:     []httptestutil.RequestOption{httptestutil.WithHeader("Authorization", "Basic "+valid)},
			userExists: true,
		},
		then{status: http.StatusUnauthorized},
	))
	t.Run("When the token is broken, it responds 401", theory(
		when{header: []httptestutil.RequestOption{httptestutil.Bearer("broken")}, userExists: true},
		then{status: http.StatusUnauthorized},
	))
	t.Run("When the user has been deleted, it responds 401", theory(
		when{header: []httptestutil.RequestOption{httptestutil.Bearer(valid)}, userExists: false},
		then{status: http.StatusUnauthorized},
	))
}

func TestRequireAdmin(t *testing.T) {
	theory := func(user *domain.User, expected int) func(*testing.T) {
		return func(t *testing.T) {
			e := echo.New()
			c, _ := httptestutil.Get(e, "/api/admin/users")
			if user != nil {
				c = auth.WithUser(c, *user)
			}
			handler := auth.RequireAdmin()(func(c echo.Context) error {
				return c.NoContent(http.StatusOK)
			})
			if status := statusOf(t, handler(c)); status != expected {
				t.Errorf("unexpected status: %d", status)
			}
		}
	}

	t.Run("When the user is admin, it passes", theory(&domain.User{Id: 1, Admin: true}, http.StatusOK))
	t.Run("When the user is not admin, it responds 403", theory(&domain.User{Id: 1}, http.StatusForbidden))
	t.Run("When there is no user, it responds 401", theory(nil, http.StatusUnauthorized))
}
