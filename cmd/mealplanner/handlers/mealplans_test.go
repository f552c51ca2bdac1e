package handlers_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/labstack/echo/v4"
	"github.com/opst/mealplanner/cmd/mealplanner/handlers"
	httptestutil "github.com/opst/mealplanner/internal/testutils/http"
	apimealplans "github.com/opst/mealplanner/pkg/api/types/mealplans"
	"github.com/opst/mealplanner/pkg/domain"
	domerr "github.com/opst/mealplanner/pkg/domain/errors"
	mockmealplan "github.com/opst/mealplanner/pkg/domain/mealplan/db/mock"
	mockrecipe "github.com/opst/mealplanner/pkg/domain/recipe/db/mock"
	mockshopping "github.com/opst/mealplanner/pkg/domain/shoppinglist/db/mock"
	"github.com/opst/mealplanner/pkg/utils/pointer"
)

func TestFindMealPlanHandler(t *testing.T) {
	for name, testcase := range map[string]struct {
		target string
		since  time.Time
		until  time.Time
		slots  []domain.Slot
		status int
	}{
		"When no queries are given, it finds all": {
			target: "/api/mealplans/",
			slots:  []domain.Slot{},
		},
		"When since, until and slots are given, it finds by them": {
			target: "/api/mealplans/?since=2024-05-01&until=2024-05-07&slot=lunch&slot=Dinner",
			since:  time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
			until:  time.Date(2024, 5, 7, 0, 0, 0, 0, time.UTC),
			slots:  []domain.Slot{domain.Lunch, domain.Dinner},
		},
		"When since is not a date, it is bad request": {
			target: "/api/mealplans/?since=yesterday", status: http.StatusBadRequest,
		},
		"When slot is unknown, it is bad request": {
			target: "/api/mealplans/?slot=brunch", status: http.StatusBadRequest,
		},
	} {
		t.Run(name, func(t *testing.T) {
			e := echo.New()
			plans := mockmealplan.NewMealPlanInterface()
			plans.Impl.Find = func(ctx context.Context, owner domain.Owner, q domain.MealPlanFindQuery) ([]domain.MealPlan, error) {
				return []domain.MealPlan{}, nil
			}

			c, _ := httptestutil.Get(e, testcase.target)
			c = as(c, alice)

			err := handlers.FindMealPlanHandler(plans, handlers.OwnScope())(c)
			if testcase.status != 0 {
				expectStatus(t, err, testcase.status)
				if plans.Calls.Find.Times() != 0 {
					t.Errorf("Find is called")
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}

			if len(plans.Calls.Find) != 1 {
				t.Fatalf("Find is called %d times", len(plans.Calls.Find))
			}
			got := plans.Calls.Find[0]
			if got.Owner != domain.OwnedBy(alice.Id) {
				t.Errorf("owner = %s", got.Owner)
			}
			if !got.Query.Since.Equal(testcase.since) || !got.Query.Until.Equal(testcase.until) {
				t.Errorf("range = [%s, %s], want [%s, %s]", got.Query.Since, got.Query.Until, testcase.since, testcase.until)
			}
			if !cmp.Equal(got.Query.Slot, testcase.slots) {
				t.Errorf("slots:\n%s", cmp.Diff(testcase.slots, got.Query.Slot))
			}
		})
	}
}

func TestAddMealPlanToShoppingHandler(t *testing.T) {
	now := time.Date(2024, 5, 3, 10, 0, 0, 0, time.UTC)
	pancake := domain.Recipe{
		Id: 20, UserId: alice.Id, Name: "pancake", Servings: 2,
		Ingredients: []domain.RecipeIngredient{
			{Id: 1, RecipeId: 20, Ingredient: domain.Ingredient{Id: 5, Name: "flour"}, Quantity: "1 1/2", Unit: "cup"},
			{Id: 2, RecipeId: 20, Ingredient: domain.Ingredient{Id: 6, Name: "egg"}, Quantity: "2"},
			{Id: 3, RecipeId: 20, Ingredient: domain.Ingredient{Id: 5, Name: "flour"}, Quantity: "2", Unit: "tbsp"},
		},
	}

	type when struct {
		owner  domain.User
		scope  func() handlers.Scope
		plan   domain.MealPlan
		getErr error
	}
	type then struct {
		status       int
		recipeOwner  *domain.Owner
		requirements []domain.Requirement
	}

	theory := func(when when, then then) func(*testing.T) {
		return func(t *testing.T) {
			e := echo.New()
			plans := mockmealplan.NewMealPlanInterface()
			plans.Impl.Get = func(ctx context.Context, owner domain.Owner, id int64) (domain.MealPlan, error) {
				if when.getErr != nil {
					return domain.MealPlan{}, when.getErr
				}
				return when.plan, nil
			}
			recipes := mockrecipe.NewRecipeInterface()
			recipes.Impl.Get = func(ctx context.Context, owner domain.Owner, id int64) (domain.Recipe, error) {
				return pancake, nil
			}
			shopping := mockshopping.NewShoppingListInterface()
			shopping.Impl.Add = func(ctx context.Context, userId int64, reqs []domain.Requirement) ([]domain.ShoppingListEntry, error) {
				ret := make([]domain.ShoppingListEntry, 0, len(reqs))
				for i, r := range reqs {
					ret = append(ret, domain.ShoppingListEntry{
						Id: int64(100 + i), UserId: userId, Purchasable: r.Purchasable, Quantity: r.Quantity,
						CreatedAt: now, UpdatedAt: now,
					})
				}
				return ret, nil
			}

			c, resp := httptestutil.Post(e, "/api/mealplans/30/shopping/", nil)
			c = httptestutil.Params(as(c, when.owner), map[string]string{"id": "30"})

			err := handlers.AddMealPlanToShoppingHandler(plans, recipes, shopping, when.scope(), "id")(c)
			if then.status != http.StatusOK {
				expectStatus(t, err, then.status)
				if shopping.Calls.Add.Times() != 0 {
					t.Errorf("Add is called")
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}

			if then.recipeOwner == nil {
				if recipes.Calls.Get.Times() != 0 {
					t.Errorf("recipe is read: %+v", recipes.Calls.Get)
				}
			} else if len(recipes.Calls.Get) != 1 || recipes.Calls.Get[0].Owner != *then.recipeOwner {
				t.Errorf("recipe is read with %+v, want owner %s", recipes.Calls.Get, *then.recipeOwner)
			}

			if len(shopping.Calls.Add) != 1 {
				t.Fatalf("Add is called %d times", len(shopping.Calls.Add))
			}
			add := shopping.Calls.Add[0]
			if add.UserId != when.plan.UserId {
				t.Errorf("added for user %d, want %d", add.UserId, when.plan.UserId)
			}
			if !cmp.Equal(add.Requirements, then.requirements) {
				t.Errorf("requirements:\n%s", cmp.Diff(then.requirements, add.Requirements))
			}

			got := httptestutil.DecodeJSON[apimealplans.ShoppingResult](t, resp)
			if got.MealPlan.Id != when.plan.Id || len(got.Entries) != len(then.requirements) {
				t.Errorf("response: %+v", got)
			}
		}
	}

	t.Run("When the plan schedules a recipe with servings, it adds scaled ingredients", theory(
		when{
			owner: alice,
			scope: handlers.OwnScope,
			plan: domain.MealPlan{
				Id: 30, UserId: alice.Id, Date: now, Slot: domain.Breakfast,
				Plannable: domain.Plannable{Type: domain.PlannableRecipe, Id: 20, Name: "pancake"},
				Servings:  pointer.Ref(4),
			},
		},
		then{
			status:      http.StatusOK,
			recipeOwner: pointer.Ref(domain.OwnedBy(alice.Id)),
			requirements: []domain.Requirement{
				{
					Purchasable: domain.Purchasable{Type: domain.PurchasableIngredient, Id: 5, Name: "flour"},
					Quantity:    domain.Quantity{Amount: 7, Unit: "cup, tbsp"},
				},
				{
					Purchasable: domain.Purchasable{Type: domain.PurchasableIngredient, Id: 6, Name: "egg"},
					Quantity:    domain.Quantity{Amount: 4},
				},
			},
		},
	))

	t.Run("When the plan schedules an item, it adds the item without reading recipes", theory(
		when{
			owner: alice,
			scope: handlers.OwnScope,
			plan: domain.MealPlan{
				Id: 30, UserId: alice.Id, Date: now, Slot: domain.Snack,
				Plannable: domain.Plannable{Type: domain.PlannableItem, Id: 11, Name: "banana"},
				Servings:  pointer.Ref(3),
			},
		},
		then{
			status: http.StatusOK,
			requirements: []domain.Requirement{
				{
					Purchasable: domain.Purchasable{Type: domain.PurchasableItem, Id: 11, Name: "banana"},
					Quantity:    domain.Quantity{Amount: 3},
				},
			},
		},
	))

	t.Run("When an admin adds a plan of another user, it goes to the owner's list", theory(
		when{
			owner: admin,
			scope: func() handlers.Scope { return handlers.AdminScope(nil) },
			plan: domain.MealPlan{
				Id: 30, UserId: alice.Id, Date: now, Slot: domain.Breakfast,
				Plannable: domain.Plannable{Type: domain.PlannableRecipe, Id: 20, Name: "pancake"},
			},
		},
		then{
			status:      http.StatusOK,
			recipeOwner: pointer.Ref(domain.OwnedBy(alice.Id)),
			requirements: []domain.Requirement{
				{
					Purchasable: domain.Purchasable{Type: domain.PurchasableIngredient, Id: 5, Name: "flour"},
					Quantity:    domain.Quantity{Amount: 3.5, Unit: "cup, tbsp"},
				},
				{
					Purchasable: domain.Purchasable{Type: domain.PurchasableIngredient, Id: 6, Name: "egg"},
					Quantity:    domain.Quantity{Amount: 2},
				},
			},
		},
	))

	t.Run("When the plan is out of scope, it is not found", theory(
		when{owner: alice, scope: handlers.OwnScope, getErr: domerr.ErrMissing},
		then{status: http.StatusNotFound},
	))
}
