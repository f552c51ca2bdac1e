package postgres_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/opst/mealplanner/pkg/conn/db/postgres/pool/testenv"
	"github.com/opst/mealplanner/pkg/domain"
	domerr "github.com/opst/mealplanner/pkg/domain/errors"
	"github.com/opst/mealplanner/pkg/domain/internal/db/postgres/testhelpers"
	pguser "github.com/opst/mealplanner/pkg/domain/user/db/postgres"
	"github.com/opst/mealplanner/pkg/utils/try"
)

var ignoreCreatedAt = cmpopts.IgnoreFields(domain.User{}, "CreatedAt")

func TestUser_CreateAndGet(t *testing.T) {
	poolBroaker := testenv.NewPoolBroaker(context.Background(), t)

	t.Run("When a user is created, it can be got by id and by email", func(t *testing.T) {
		ctx := context.Background()
		testee := pguser.New(poolBroaker.GetPool(ctx, t))

		created := try.To(testee.Create(ctx, domain.UserParam{
			Name: "alice", Email: "Alice@Example.com", Admin: true,
		})).OrFatal(t)

		expected := domain.User{Id: created.Id, Name: "alice", Email: "alice@example.com", Admin: true}
		if diff := cmp.Diff(expected, created, ignoreCreatedAt); diff != "" {
			t.Errorf("created (-expected +actual):\n%s", diff)
		}

		byId := try.To(testee.Get(ctx, created.Id)).OrFatal(t)
		if !byId.Equal(created) {
			t.Errorf("Get: (actual, expected) = (%+v, %+v)", byId, created)
		}

		byEmail := try.To(testee.GetByEmail(ctx, "ALICE@example.com")).OrFatal(t)
		if !byEmail.Equal(created) {
			t.Errorf("GetByEmail: (actual, expected) = (%+v, %+v)", byEmail, created)
		}
	})

	t.Run("When email is used, Create returns ErrConflict", func(t *testing.T) {
		ctx := context.Background()
		testee := pguser.New(poolBroaker.GetPool(ctx, t))

		try.To(testee.Create(ctx, domain.UserParam{Name: "alice", Email: "alice@example.com"})).OrFatal(t)
		_, err := testee.Create(ctx, domain.UserParam{Name: "alice2", Email: "ALICE@example.com"})
		if !errors.Is(err, domerr.ErrConflict) {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("When there are no such user, Get returns ErrMissing", func(t *testing.T) {
		ctx := context.Background()
		testee := pguser.New(poolBroaker.GetPool(ctx, t))

		if _, err := testee.Get(ctx, 9999); !errors.Is(err, domerr.ErrMissing) {
			t.Errorf("unexpected error: %v", err)
		}
	})
}

func TestUser_ListUpdateDelete(t *testing.T) {
	poolBroaker := testenv.NewPoolBroaker(context.Background(), t)

	t.Run("users are listed, updated and deleted with their records", func(t *testing.T) {
		ctx := context.Background()
		pool := poolBroaker.GetPool(ctx, t)
		raw := poolBroaker.Raw()
		testee := pguser.New(pool)

		alice := testhelpers.User(ctx, t, raw, "alice")
		bob := testhelpers.User(ctx, t, raw, "bob")

		recipe := testhelpers.Recipe(ctx, t, raw, alice, "pancake", 2)
		plan := testhelpers.MealPlan(ctx, t, raw, alice, "2024-05-01", "lunch", "recipe", recipe)
		testhelpers.Comment(ctx, t, raw, bob, "recipe", recipe, "looks good")
		testhelpers.Comment(ctx, t, raw, bob, "meal_plan", plan, "invite me")
		item := testhelpers.Item(ctx, t, raw, "banana")
		entry := testhelpers.ShoppingListEntry(ctx, t, raw, alice, "item", item, 1, "", false)
		testhelpers.Payment(ctx, t, raw, alice, entry, "1.00", false, "null")

		users := try.To(testee.List(ctx)).OrFatal(t)
		if len(users) != 2 || users[0].Id != alice || users[1].Id != bob {
			t.Fatalf("unexpected users: %+v", users)
		}

		updated := try.To(testee.Update(ctx, bob, domain.UserParam{
			Name: "robert", Email: "robert@example.com",
		})).OrFatal(t)
		if updated.Name != "robert" || updated.Email != "robert@example.com" || updated.Admin {
			t.Errorf("unexpected updated user: %+v", updated)
		}

		if err := testee.Delete(ctx, alice); err != nil {
			t.Fatal(err)
		}
		for table, query := range map[string]string{
			"recipe":              `select count(*) from "recipe"`,
			"meal_plan":           `select count(*) from "meal_plan"`,
			"comment":             `select count(*) from "comment"`,
			"shopping_list_entry": `select count(*) from "shopping_list_entry"`,
			"payment":             `select count(*) from "payment"`,
		} {
			if n := testhelpers.Count(ctx, t, raw, query); n != 0 {
				t.Errorf("%s: %d rows remain", table, n)
			}
		}
		if n := testhelpers.Count(ctx, t, raw, `select count(*) from "item"`); n != 1 {
			t.Errorf("catalog should be kept: item = %d", n)
		}

		if err := testee.Delete(ctx, alice); !errors.Is(err, domerr.ErrMissing) {
			t.Errorf("unexpected error: %v", err)
		}
	})
}
