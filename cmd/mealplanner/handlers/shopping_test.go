package handlers_test

import (
	"context"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/labstack/echo/v4"
	"github.com/opst/mealplanner/cmd/mealplanner/handlers"
	httptestutil "github.com/opst/mealplanner/internal/testutils/http"
	apishopping "github.com/opst/mealplanner/pkg/api/types/shopping"
	"github.com/opst/mealplanner/pkg/domain"
	domerr "github.com/opst/mealplanner/pkg/domain/errors"
	mockshopping "github.com/opst/mealplanner/pkg/domain/shoppinglist/db/mock"
	"github.com/opst/mealplanner/pkg/utils/pointer"
	"github.com/opst/mealplanner/pkg/utils/rfctime"
)

func TestAddShoppingListHandler(t *testing.T) {
	now := time.Date(2024, 5, 3, 10, 0, 0, 0, time.UTC)
	milk := domain.Purchasable{Type: domain.PurchasableItem, Id: 11, Name: "milk"}

	type when struct {
		body       string
		resolveErr error
	}
	type then struct {
		status       int
		resolved     []domain.PurchasableRef
		requirements []domain.Requirement
		body         apishopping.Detail
	}

	theory := func(when when, then then) func(*testing.T) {
		return func(t *testing.T) {
			e := echo.New()
			shopping := mockshopping.NewShoppingListInterface()
			shopping.Impl.Resolve = func(ctx context.Context, ref domain.PurchasableRef) (domain.Purchasable, error) {
				if when.resolveErr != nil {
					return domain.Purchasable{}, when.resolveErr
				}
				return milk, nil
			}
			shopping.Impl.Add = func(ctx context.Context, userId int64, reqs []domain.Requirement) ([]domain.ShoppingListEntry, error) {
				// merged into an existing entry having 1 bottle.
				return []domain.ShoppingListEntry{
					{
						Id: 100, UserId: userId, Purchasable: reqs[0].Purchasable,
						Quantity:  domain.Quantity{Amount: 1 + reqs[0].Quantity.Amount, Unit: reqs[0].Quantity.Unit},
						CreatedAt: now, UpdatedAt: now,
					},
				}, nil
			}

			c, resp := httptestutil.Post(e, "/api/shopping/", strings.NewReader(when.body))
			c = as(c, alice)

			err := handlers.AddShoppingListHandler(shopping, handlers.OwnScope())(c)
			if then.status != http.StatusOK {
				expectStatus(t, err, then.status)
				if shopping.Calls.Add.Times() != 0 {
					t.Errorf("Add is called: %+v", shopping.Calls.Add)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}

			if !cmp.Equal([]domain.PurchasableRef(shopping.Calls.Resolve), then.resolved) {
				t.Errorf("Resolve is called with:\n%s", cmp.Diff(then.resolved, []domain.PurchasableRef(shopping.Calls.Resolve)))
			}
			if len(shopping.Calls.Add) != 1 {
				t.Fatalf("Add is called %d times", len(shopping.Calls.Add))
			}
			if got := shopping.Calls.Add[0]; got.UserId != alice.Id || !cmp.Equal(got.Requirements, then.requirements) {
				t.Errorf("Add is called with %+v, want user %d and\n%s", got, alice.Id, cmp.Diff(then.requirements, got.Requirements))
			}

			if resp.Code != http.StatusOK {
				t.Errorf("status = %d", resp.Code)
			}
			got := httptestutil.DecodeJSON[apishopping.Detail](t, resp)
			if !cmp.Equal(got, then.body) {
				t.Errorf("response:\n%s", cmp.Diff(then.body, got))
			}
		}
	}

	t.Run("When a purchasable is given by name, it is resolved and merged", theory(
		when{body: `{"purchasable": {"name": "Milk"}, "quantity": "1 1/2", "unit": "bottle"}`},
		then{
			status:   http.StatusOK,
			resolved: []domain.PurchasableRef{{Name: "Milk"}},
			requirements: []domain.Requirement{
				{Purchasable: milk, Quantity: domain.Quantity{Amount: 1.5, Unit: "bottle"}},
			},
			body: apishopping.Detail{
				Id: 100, UserId: alice.Id,
				Purchasable: apishopping.Purchasable{Type: "item", Id: 11, Name: "milk"},
				Quantity:    2.5, Unit: "bottle",
				CreatedAt: rfctime.RFC3339(now), UpdatedAt: rfctime.RFC3339(now),
			},
		},
	))

	t.Run("When quantity is omitted, it adds one", theory(
		when{body: `{"purchasable": {"type": "item", "id": 11}}`},
		then{
			status:   http.StatusOK,
			resolved: []domain.PurchasableRef{{Type: domain.PurchasableItem, Id: 11}},
			requirements: []domain.Requirement{
				{Purchasable: milk, Quantity: domain.Quantity{Amount: 1}},
			},
			body: apishopping.Detail{
				Id: 100, UserId: alice.Id,
				Purchasable: apishopping.Purchasable{Type: "item", Id: 11, Name: "milk"},
				Quantity:    2,
				CreatedAt:   rfctime.RFC3339(now), UpdatedAt: rfctime.RFC3339(now),
			},
		},
	))

	t.Run("When quantity is malformed, it is bad request", theory(
		when{body: `{"purchasable": {"name": "milk"}, "quantity": "a few"}`},
		then{status: http.StatusBadRequest},
	))

	t.Run("When quantity is negative, it is bad request", theory(
		when{body: `{"purchasable": {"name": "milk"}, "quantity": "-1"}`},
		then{status: http.StatusBadRequest},
	))

	t.Run("When the purchasable is missing, it is not found", theory(
		when{body: `{"purchasable": {"type": "ingredient", "id": 99}}`, resolveErr: domerr.ErrMissing},
		then{status: http.StatusNotFound},
	))

	t.Run("When the body has unknown fields, it is bad request", theory(
		when{body: `{"purchasable": {"name": "milk"}, "amount": 3}`},
		then{status: http.StatusBadRequest},
	))
}

func TestAddShoppingListHandler_ContentType(t *testing.T) {
	e := echo.New()
	shopping := mockshopping.NewShoppingListInterface()

	c, _ := httptestutil.Post(e, "/api/shopping/", strings.NewReader(`{"purchasable": {"name": "milk"}}`))
	c.Request().Header.Set(echo.HeaderContentType, echo.MIMETextPlain)
	c = as(c, alice)

	err := handlers.AddShoppingListHandler(shopping, handlers.OwnScope())(c)
	expectStatus(t, err, http.StatusBadRequest)
}

func TestUpdateShoppingListHandler(t *testing.T) {
	now := time.Date(2024, 5, 3, 10, 0, 0, 0, time.UTC)
	current := domain.ShoppingListEntry{
		Id: 100, UserId: alice.Id,
		Purchasable: domain.Purchasable{Type: domain.PurchasableIngredient, Id: 5, Name: "flour"},
		Quantity:    domain.Quantity{Amount: 200, Unit: "g"},
		CreatedAt:   now, UpdatedAt: now,
	}

	for name, testcase := range map[string]struct {
		body   string
		update domain.ShoppingListUpdate
	}{
		"When only quantity is given, it keeps the unit": {
			body:   `{"quantity": 300}`,
			update: domain.ShoppingListUpdate{Quantity: &domain.Quantity{Amount: 300, Unit: "g"}},
		},
		"When only unit is given, it keeps the amount": {
			body:   `{"unit": "cup"}`,
			update: domain.ShoppingListUpdate{Quantity: &domain.Quantity{Amount: 200, Unit: "cup"}},
		},
		"When only purchased is given, it changes the flag only": {
			body:   `{"purchased": true}`,
			update: domain.ShoppingListUpdate{Purchased: pointer.Ref(true)},
		},
	} {
		t.Run(name, func(t *testing.T) {
			e := echo.New()
			shopping := mockshopping.NewShoppingListInterface()
			shopping.Impl.Get = func(ctx context.Context, owner domain.Owner, id int64) (domain.ShoppingListEntry, error) {
				return current, nil
			}
			shopping.Impl.Update = func(ctx context.Context, owner domain.Owner, id int64, upd domain.ShoppingListUpdate) (domain.ShoppingListEntry, error) {
				return current, nil
			}

			c, _ := httptestutil.Put(e, "/api/shopping/100/", strings.NewReader(testcase.body))
			c = httptestutil.Params(as(c, alice), map[string]string{"id": "100"})

			if err := handlers.UpdateShoppingListHandler(shopping, handlers.OwnScope(), "id")(c); err != nil {
				t.Fatal(err)
			}

			if len(shopping.Calls.Update) != 1 {
				t.Fatalf("Update is called %d times", len(shopping.Calls.Update))
			}
			got := shopping.Calls.Update[0]
			if got.Owner != domain.OwnedBy(alice.Id) || got.EntryId != 100 {
				t.Errorf("Update is called for (%s, %d)", got.Owner, got.EntryId)
			}
			if !cmp.Equal(got.Update, testcase.update) {
				t.Errorf("update:\n%s", cmp.Diff(testcase.update, got.Update))
			}
		})
	}
}

func TestFindShoppingListHandler(t *testing.T) {
	for name, testcase := range map[string]struct {
		target    string
		purchased *bool
		status    int
	}{
		"When purchased is not given, it finds all entries": {
			target: "/api/shopping/",
		},
		"When purchased=false, it finds pending entries": {
			target: "/api/shopping/?purchased=false", purchased: pointer.Ref(false),
		},
		"When purchased is not a boolean, it is bad request": {
			target: "/api/shopping/?purchased=maybe", status: http.StatusBadRequest,
		},
	} {
		t.Run(name, func(t *testing.T) {
			e := echo.New()
			shopping := mockshopping.NewShoppingListInterface()
			shopping.Impl.Find = func(ctx context.Context, owner domain.Owner, q domain.ShoppingListFindQuery) ([]domain.ShoppingListEntry, error) {
				return []domain.ShoppingListEntry{}, nil
			}

			c, resp := httptestutil.Get(e, testcase.target)
			c = as(c, alice)

			err := handlers.FindShoppingListHandler(shopping, handlers.OwnScope())(c)
			if testcase.status != 0 {
				expectStatus(t, err, testcase.status)
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if len(shopping.Calls.Find) != 1 || !cmp.Equal(shopping.Calls.Find[0].Query.Purchased, testcase.purchased) {
				t.Errorf("Find is called with %+v", shopping.Calls.Find)
			}
			if got := httptestutil.DecodeJSON[[]apishopping.Detail](t, resp); len(got) != 0 {
				t.Errorf("response: %+v", got)
			}
		})
	}
}
