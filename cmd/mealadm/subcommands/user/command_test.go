package user_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/opst/mealplanner/cmd/mealadm/subcommands/internal/commandline"
	"github.com/opst/mealplanner/cmd/mealadm/subcommands/user"
	apiusers "github.com/opst/mealplanner/pkg/api/types/users"
	"github.com/opst/mealplanner/pkg/domain"
	domerr "github.com/opst/mealplanner/pkg/domain/errors"
	mockdb "github.com/opst/mealplanner/pkg/domain/mealplanner/db/mock"
	"github.com/opst/mealplanner/pkg/utils/rfctime"
)

func TestAdd(t *testing.T) {
	created := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)

	t.Run("When a user is created, it prints the user", func(t *testing.T) {
		db := mockdb.New()
		db.Users.Impl.Create = func(ctx context.Context, param domain.UserParam) (domain.User, error) {
			return domain.User{Id: 3, Name: param.Name, Email: param.Email, Admin: param.Admin, CreatedAt: created}, nil
		}
		stdout := new(strings.Builder)
		cl := commandline.MockCommandline[user.AddFlag]{
			Fullname_: "mealadm user add",
			Flags_:    user.AddFlag{Name: "Alice", Email: "alice@example.com", Admin: true},
			Stdout_:   stdout,
			Stderr_:   io.Discard,
		}

		if err := user.Add()(context.Background(), log.New(io.Discard, "", 0), nil, db, cl, nil); err != nil {
			t.Fatal(err)
		}

		if want := []domain.UserParam{{Name: "Alice", Email: "alice@example.com", Admin: true}}; !cmp.Equal(
			[]domain.UserParam(db.Users.Calls.Create), want,
		) {
			t.Errorf("Create is called with %+v", db.Users.Calls.Create)
		}

		got := apiusers.Detail{}
		if err := json.Unmarshal([]byte(stdout.String()), &got); err != nil {
			t.Fatal(err)
		}
		want := apiusers.Detail{
			Id: 3, Name: "Alice", Email: "alice@example.com", Admin: true,
			CreatedAt: rfctime.RFC3339(created),
		}
		if !got.Equal(want) {
			t.Errorf("printed: %+v, want %+v", got, want)
		}
	})

	t.Run("When the email is taken, it returns the error", func(t *testing.T) {
		db := mockdb.New()
		db.Users.Impl.Create = func(ctx context.Context, param domain.UserParam) (domain.User, error) {
			return domain.User{}, domerr.ErrConflict
		}
		stdout := new(strings.Builder)
		cl := commandline.MockCommandline[user.AddFlag]{
			Flags_:  user.AddFlag{Name: "Alice", Email: "alice@example.com"},
			Stdout_: stdout,
		}

		err := user.Add()(context.Background(), log.New(io.Discard, "", 0), nil, db, cl, nil)
		if !errors.Is(err, domerr.ErrConflict) {
			t.Errorf("err = %v, want ErrConflict", err)
		}
		if stdout.Len() != 0 {
			t.Errorf("unexpected output: %s", stdout.String())
		}
	})
}

func TestList(t *testing.T) {
	created := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	db := mockdb.New()
	db.Users.Impl.List = func(ctx context.Context) ([]domain.User, error) {
		return []domain.User{
			{Id: 1, Name: "Alice", Email: "alice@example.com", Admin: true, CreatedAt: created},
			{Id: 2, Name: "Bob", Email: "bob@example.com", CreatedAt: created},
		}, nil
	}
	stdout := new(strings.Builder)
	cl := commandline.MockCommandline[struct{}]{Stdout_: stdout}

	if err := user.List()(context.Background(), log.New(io.Discard, "", 0), nil, db, cl, nil); err != nil {
		t.Fatal(err)
	}

	got := []apiusers.Detail{}
	if err := json.Unmarshal([]byte(stdout.String()), &got); err != nil {
		t.Fatal(err)
	}
	want := []apiusers.Detail{
		{Id: 1, Name: "Alice", Email: "alice@example.com", Admin: true, CreatedAt: rfctime.RFC3339(created)},
		{Id: 2, Name: "Bob", Email: "bob@example.com", CreatedAt: rfctime.RFC3339(created)},
	}
	if !cmp.Equal(got, want) {
		t.Errorf("printed:\n%s", cmp.Diff(want, got))
	}
}
