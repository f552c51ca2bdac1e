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
	pgrecipe "github.com/opst/mealplanner/pkg/domain/recipe/db/postgres"
	"github.com/opst/mealplanner/pkg/utils/try"
)

var ignoreGenerated = cmp.Options{
	cmpopts.IgnoreFields(domain.Recipe{}, "Id", "CreatedAt", "UpdatedAt"),
	cmpopts.IgnoreFields(domain.RecipeIngredient{}, "Id", "RecipeId"),
	cmpopts.IgnoreFields(domain.Ingredient{}, "Id", "CreatedAt"),
}

func TestRecipe_Create(t *testing.T) {
	poolBroaker := testenv.NewPoolBroaker(context.Background(), t)

	t.Run("When a recipe is created with ingredient names and ids, it is stored with its lines in order", func(t *testing.T) {
		ctx := context.Background()
		raw := poolBroaker.Raw()
		testee := pgrecipe.New(poolBroaker.GetPool(ctx, t))

		alice := testhelpers.User(ctx, t, raw, "alice")
		egg := testhelpers.Ingredient(ctx, t, raw, "egg")

		created := try.To(testee.Create(ctx, alice, domain.RecipeParam{
			Name:     "pancake",
			Servings: 2,
			Ingredients: []domain.RecipeIngredientParam{
				{Ingredient: domain.IngredientRef{Name: "Flour"}, Quantity: "200", Unit: "g"},
				{Ingredient: domain.IngredientRef{Id: egg}, Quantity: "2"},
				{Ingredient: domain.IngredientRef{Name: "flour"}, Quantity: "1", Unit: "tbsp"},
			},
		})).OrFatal(t)

		expected := domain.Recipe{
			UserId:   alice,
			Name:     "pancake",
			Servings: 2,
			Ingredients: []domain.RecipeIngredient{
				{Ingredient: domain.Ingredient{Name: "Flour"}, Quantity: "200", Unit: "g"},
				{Ingredient: domain.Ingredient{Name: "egg"}, Quantity: "2"},
				{Ingredient: domain.Ingredient{Name: "Flour"}, Quantity: "1", Unit: "tbsp"},
			},
		}
		if diff := cmp.Diff(expected, created, ignoreGenerated); diff != "" {
			t.Errorf("created (-expected +actual):\n%s", diff)
		}
		if created.Ingredients[0].Ingredient.Id != created.Ingredients[2].Ingredient.Id {
			t.Errorf("same ingredient name should be resolved to same ingredient: %+v", created.Ingredients)
		}
		for _, l := range created.Ingredients {
			if l.RecipeId != created.Id {
				t.Errorf("line %d belongs to recipe %d, want %d", l.Id, l.RecipeId, created.Id)
			}
		}

		got := try.To(testee.Get(ctx, domain.OwnedBy(alice), created.Id)).OrFatal(t)
		if diff := cmp.Diff(created, got); diff != "" {
			t.Errorf("got (-created +got):\n%s", diff)
		}
	})

	t.Run("When an ingredient id is unknown, Create returns ErrMissing and nothing is left", func(t *testing.T) {
		ctx := context.Background()
		raw := poolBroaker.Raw()
		testee := pgrecipe.New(poolBroaker.GetPool(ctx, t))

		alice := testhelpers.User(ctx, t, raw, "alice")
		_, err := testee.Create(ctx, alice, domain.RecipeParam{
			Name: "mystery",
			Ingredients: []domain.RecipeIngredientParam{
				{Ingredient: domain.IngredientRef{Name: "salt"}},
				{Ingredient: domain.IngredientRef{Id: 9999}},
			},
		})
		if !errors.Is(err, domerr.ErrMissing) {
			t.Errorf("unexpected error: %v", err)
		}
		if n := testhelpers.Count(ctx, t, raw, `select count(*) from "recipe"`); n != 0 {
			t.Errorf("recipe remains: %d", n)
		}
		if n := testhelpers.Count(ctx, t, raw, `select count(*) from "ingredient"`); n != 0 {
			t.Errorf("ingredient remains: %d", n)
		}
	})
}

func TestRecipe_OwnerScope(t *testing.T) {
	poolBroaker := testenv.NewPoolBroaker(context.Background(), t)
	ctx := context.Background()
	raw := poolBroaker.Raw()
	testee := pgrecipe.New(poolBroaker.GetPool(ctx, t))

	alice := testhelpers.User(ctx, t, raw, "alice")
	bob := testhelpers.User(ctx, t, raw, "bob")
	aliceRecipe := testhelpers.Recipe(ctx, t, raw, alice, "pancake", 1)
	bobRecipe := testhelpers.Recipe(ctx, t, raw, bob, "curry", 4)

	t.Run("Find returns recipes in the scope", func(t *testing.T) {
		for name, testcase := range map[string]struct {
			owner    domain.Owner
			expected []int64
		}{
			"alice":  {owner: domain.OwnedBy(alice), expected: []int64{aliceRecipe}},
			"bob":    {owner: domain.OwnedBy(bob), expected: []int64{bobRecipe}},
			"anyone": {owner: domain.AnyOwner, expected: []int64{aliceRecipe, bobRecipe}},
		} {
			t.Run(name, func(t *testing.T) {
				found := try.To(testee.Find(ctx, testcase.owner)).OrFatal(t)
				ids := []int64{}
				for _, r := range found {
					ids = append(ids, r.Id)
				}
				if diff := cmp.Diff(testcase.expected, ids); diff != "" {
					t.Errorf("ids (-expected +actual):\n%s", diff)
				}
			})
		}
	})

	t.Run("Records out of the scope are missing", func(t *testing.T) {
		if _, err := testee.Get(ctx, domain.OwnedBy(alice), bobRecipe); !errors.Is(err, domerr.ErrMissing) {
			t.Errorf("Get: unexpected error: %v", err)
		}
		if _, err := testee.Update(
			ctx, domain.OwnedBy(alice), bobRecipe, domain.RecipeParam{Name: "stolen"},
		); !errors.Is(err, domerr.ErrMissing) {
			t.Errorf("Update: unexpected error: %v", err)
		}
		if err := testee.Delete(ctx, domain.OwnedBy(alice), bobRecipe); !errors.Is(err, domerr.ErrMissing) {
			t.Errorf("Delete: unexpected error: %v", err)
		}
		if _, err := testee.Get(ctx, domain.AnyOwner, bobRecipe); err != nil {
			t.Errorf("AnyOwner should see it: %v", err)
		}
	})
}

func TestRecipe_UpdateAndDelete(t *testing.T) {
	poolBroaker := testenv.NewPoolBroaker(context.Background(), t)

	t.Run("When a recipe is updated, its lines are replaced", func(t *testing.T) {
		ctx := context.Background()
		raw := poolBroaker.Raw()
		testee := pgrecipe.New(poolBroaker.GetPool(ctx, t))

		alice := testhelpers.User(ctx, t, raw, "alice")
		egg := testhelpers.Ingredient(ctx, t, raw, "egg")
		recipe := testhelpers.Recipe(ctx, t, raw, alice, "omelette", 1)
		testhelpers.RecipeIngredient(ctx, t, raw, recipe, egg, "2", "", 0)

		updated := try.To(testee.Update(ctx, domain.OwnedBy(alice), recipe, domain.RecipeParam{
			Name:         "cheese omelette",
			Instructions: "beat eggs, then fry",
			Servings:     2,
			Ingredients: []domain.RecipeIngredientParam{
				{Ingredient: domain.IngredientRef{Id: egg}, Quantity: "3"},
				{Ingredient: domain.IngredientRef{Name: "cheese"}, Quantity: "30", Unit: "g"},
			},
		})).OrFatal(t)

		expected := domain.Recipe{
			UserId:       alice,
			Name:         "cheese omelette",
			Instructions: "beat eggs, then fry",
			Servings:     2,
			Ingredients: []domain.RecipeIngredient{
				{Ingredient: domain.Ingredient{Name: "egg"}, Quantity: "3"},
				{Ingredient: domain.Ingredient{Name: "cheese"}, Quantity: "30", Unit: "g"},
			},
		}
		if diff := cmp.Diff(expected, updated, ignoreGenerated); diff != "" {
			t.Errorf("updated (-expected +actual):\n%s", diff)
		}
		if n := testhelpers.Count(ctx, t, raw, `select count(*) from "recipe_ingredient"`); n != 2 {
			t.Errorf("lines: %d", n)
		}
	})

	t.Run("When a recipe is deleted, meal plans of it and comments are deleted too", func(t *testing.T) {
		ctx := context.Background()
		raw := poolBroaker.Raw()
		testee := pgrecipe.New(poolBroaker.GetPool(ctx, t))

		alice := testhelpers.User(ctx, t, raw, "alice")
		recipe := testhelpers.Recipe(ctx, t, raw, alice, "omelette", 1)
		other := testhelpers.Recipe(ctx, t, raw, alice, "salad", 1)
		plan := testhelpers.MealPlan(ctx, t, raw, alice, "2024-05-01", "breakfast", "recipe", recipe)
		otherPlan := testhelpers.MealPlan(ctx, t, raw, alice, "2024-05-01", "lunch", "recipe", other)
		testhelpers.Comment(ctx, t, raw, alice, "recipe", recipe, "good")
		testhelpers.Comment(ctx, t, raw, alice, "meal_plan", plan, "early")
		testhelpers.Comment(ctx, t, raw, alice, "meal_plan", otherPlan, "kept")

		if err := testee.Delete(ctx, domain.OwnedBy(alice), recipe); err != nil {
			t.Fatal(err)
		}

		if n := testhelpers.Count(ctx, t, raw, `select count(*) from "meal_plan"`); n != 1 {
			t.Errorf("meal plans: %d", n)
		}
		if n := testhelpers.Count(ctx, t, raw, `select count(*) from "comment" where "body" = 'kept'`); n != 1 {
			t.Errorf("comment on other plan should be kept")
		}
		if n := testhelpers.Count(ctx, t, raw, `select count(*) from "comment"`); n != 1 {
			t.Errorf("comments: %d", n)
		}
	})
}
