package handlers_test

import (
	"errors"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/opst/mealplanner/pkg/auth"
	"github.com/opst/mealplanner/pkg/domain"
)

var (
	alice = domain.User{Id: 1, Name: "Alice", Email: "alice@example.com"}
	admin = domain.User{Id: 9, Name: "Admin", Email: "admin@example.com", Admin: true}
)

// as sets user as the acting user of c.
func as(c echo.Context, user domain.User) echo.Context {
	return auth.WithUser(c, user)
}

func statusOf(err error) int {
	var herr *echo.HTTPError
	if errors.As(err, &herr) {
		return herr.Code
	}
	return 0
}

// expectStatus checks err is echo.HTTPError with code.
func expectStatus(t *testing.T, err error, code int) {
	t.Helper()
	if got := statusOf(err); got != code {
		t.Errorf("status = %d (err: %v), want %d", got, err, code)
	}
}
