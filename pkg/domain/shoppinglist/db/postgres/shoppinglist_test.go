package postgres_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/opst/mealplanner/pkg/conn/db/postgres/pool/testenv"
	"github.com/opst/mealplanner/pkg/domain"
	domerr "github.com/opst/mealplanner/pkg/domain/errors"
	"github.com/opst/mealplanner/pkg/domain/internal/db/postgres/testhelpers"
	pgshopping "github.com/opst/mealplanner/pkg/domain/shoppinglist/db/postgres"
	"github.com/opst/mealplanner/pkg/utils"
	"github.com/opst/mealplanner/pkg/utils/pointer"
	"github.com/opst/mealplanner/pkg/utils/try"
)

var ignoreTimestamps = cmpopts.IgnoreFields(domain.ShoppingListEntry{}, "Id", "CreatedAt", "UpdatedAt")

func TestShoppingList_Resolve(t *testing.T) {
	poolBroaker := testenv.NewPoolBroaker(context.Background(), t)

	t.Run("When a name is given, an item is found or created", func(t *testing.T) {
		ctx := context.Background()
		raw := poolBroaker.Raw()
		testee := pgshopping.New(poolBroaker.GetPool(ctx, t))

		towel := testhelpers.Item(ctx, t, raw, "Paper Towel")

		found := try.To(testee.Resolve(ctx, domain.PurchasableRef{Name: "paper towel"})).OrFatal(t)
		if found != (domain.Purchasable{Type: domain.PurchasableItem, Id: towel, Name: "Paper Towel"}) {
			t.Errorf("unexpected: %+v", found)
		}

		created := try.To(testee.Resolve(ctx, domain.PurchasableRef{Name: "soap"})).OrFatal(t)
		if created.Type != domain.PurchasableItem || created.Name != "soap" || created.Id == towel {
			t.Errorf("unexpected: %+v", created)
		}
	})

	t.Run("When type and id are given, it is looked up", func(t *testing.T) {
		ctx := context.Background()
		raw := poolBroaker.Raw()
		testee := pgshopping.New(poolBroaker.GetPool(ctx, t))

		salt := testhelpers.Ingredient(ctx, t, raw, "salt")

		found := try.To(testee.Resolve(ctx, domain.PurchasableRef{
			Type: domain.PurchasableIngredient, Id: salt,
		})).OrFatal(t)
		if found != (domain.Purchasable{Type: domain.PurchasableIngredient, Id: salt, Name: "salt"}) {
			t.Errorf("unexpected: %+v", found)
		}

		_, err := testee.Resolve(ctx, domain.PurchasableRef{Type: domain.PurchasableItem, Id: salt})
		if !errors.Is(err, domerr.ErrMissing) {
			t.Errorf("unexpected error: %v", err)
		}
	})
}

func TestShoppingList_Add(t *testing.T) {
	poolBroaker := testenv.NewPoolBroaker(context.Background(), t)

	t.Run("When there are no pending entry, it creates. When there is, it merges", func(t *testing.T) {
		ctx := context.Background()
		raw := poolBroaker.Raw()
		testee := pgshopping.New(poolBroaker.GetPool(ctx, t))

		alice := testhelpers.User(ctx, t, raw, "alice")
		bob := testhelpers.User(ctx, t, raw, "bob")
		flour := domain.Purchasable{
			Type: domain.PurchasableIngredient, Id: testhelpers.Ingredient(ctx, t, raw, "flour"), Name: "flour",
		}
		milk := domain.Purchasable{
			Type: domain.PurchasableIngredient, Id: testhelpers.Ingredient(ctx, t, raw, "milk"), Name: "milk",
		}

		// purchased entries are history. they are not merged into.
		testhelpers.ShoppingListEntry(ctx, t, raw, alice, "ingredient", flour.Id, 1, "kg", true)
		// entries of other users are not merged into.
		testhelpers.ShoppingListEntry(ctx, t, raw, bob, "ingredient", flour.Id, 1, "kg", false)

		first := try.To(testee.Add(ctx, alice, []domain.Requirement{
			{Purchasable: flour, Quantity: domain.Quantity{Amount: 200, Unit: "g"}},
			{Purchasable: milk, Quantity: domain.Quantity{Amount: 1, Unit: "cup"}},
			{Purchasable: flour, Quantity: domain.Quantity{Amount: 100, Unit: "g"}},
		})).OrFatal(t)

		expectedFirst := []domain.ShoppingListEntry{
			{UserId: alice, Purchasable: flour, Quantity: domain.Quantity{Amount: 300, Unit: "g"}},
			{UserId: alice, Purchasable: milk, Quantity: domain.Quantity{Amount: 1, Unit: "cup"}},
		}
		if diff := cmp.Diff(expectedFirst, first, ignoreTimestamps); diff != "" {
			t.Errorf("first (-expected +actual):\n%s", diff)
		}

		second := try.To(testee.Add(ctx, alice, []domain.Requirement{
			{Purchasable: flour, Quantity: domain.Quantity{Amount: 0.5, Unit: "cup"}},
		})).OrFatal(t)
		expectedSecond := []domain.ShoppingListEntry{
			{UserId: alice, Purchasable: flour, Quantity: domain.Quantity{Amount: 300.5, Unit: "g, cup"}},
		}
		if diff := cmp.Diff(expectedSecond, second, ignoreTimestamps); diff != "" {
			t.Errorf("second (-expected +actual):\n%s", diff)
		}
		if second[0].Id != first[0].Id {
			t.Errorf("entry is not merged: (first, second) = (%d, %d)", first[0].Id, second[0].Id)
		}

		pending := testhelpers.Count(
			ctx, t, raw,
			`select count(*) from "shopping_list_entry" where "user_id" = $1 and not "purchased"`,
			alice,
		)
		if pending != 2 {
			t.Errorf("pending entries: %d", pending)
		}
	})

	t.Run("When a purchasable does not exist, nothing is added", func(t *testing.T) {
		ctx := context.Background()
		raw := poolBroaker.Raw()
		testee := pgshopping.New(poolBroaker.GetPool(ctx, t))

		alice := testhelpers.User(ctx, t, raw, "alice")
		banana := testhelpers.Item(ctx, t, raw, "banana")

		_, err := testee.Add(ctx, alice, []domain.Requirement{
			{Purchasable: domain.Purchasable{Type: domain.PurchasableItem, Id: banana}, Quantity: domain.Quantity{Amount: 1}},
			{Purchasable: domain.Purchasable{Type: domain.PurchasableItem, Id: 9999}, Quantity: domain.Quantity{Amount: 1}},
		})
		if !errors.Is(err, domerr.ErrMissing) {
			t.Errorf("unexpected error: %v", err)
		}
		if n := testhelpers.Count(ctx, t, raw, `select count(*) from "shopping_list_entry"`); n != 0 {
			t.Errorf("entries: %d", n)
		}
	})

	t.Run("When the purchasable is deleted while adding, Add waits for it and returns ErrMissing", func(t *testing.T) {
		ctx := context.Background()
		raw := poolBroaker.Raw()
		testee := pgshopping.New(poolBroaker.GetPool(ctx, t))

		alice := testhelpers.User(ctx, t, raw, "alice")
		banana := testhelpers.Item(ctx, t, raw, "banana")

		// hold the row as deleting catalog does.
		deleting := try.To(raw.Begin(ctx)).OrFatal(t)
		defer deleting.Rollback(ctx)
		if _, err := deleting.Exec(ctx, `select "item_id" from "item" where "item_id" = $1 for update`, banana); err != nil {
			t.Fatal(err)
		}

		done := make(chan error, 1)
		go func() {
			_, err := testee.Add(ctx, alice, []domain.Requirement{
				{Purchasable: domain.Purchasable{Type: domain.PurchasableItem, Id: banana}, Quantity: domain.Quantity{Amount: 1}},
			})
			done <- err
		}()

		select {
		case err := <-done:
			t.Fatalf("Add does not wait for the lock: %v", err)
		case <-time.After(200 * time.Millisecond):
		}

		if _, err := deleting.Exec(ctx, `delete from "item" where "item_id" = $1`, banana); err != nil {
			t.Fatal(err)
		}
		if err := deleting.Commit(ctx); err != nil {
			t.Fatal(err)
		}

		if err := <-done; !errors.Is(err, domerr.ErrMissing) {
			t.Errorf("unexpected error: %v", err)
		}
		if n := testhelpers.Count(ctx, t, raw, `select count(*) from "shopping_list_entry"`); n != 0 {
			t.Errorf("entries: %d", n)
		}
	})

	t.Run("When Add runs concurrently, there is only one pending entry", func(t *testing.T) {
		ctx := context.Background()
		raw := poolBroaker.Raw()
		testee := pgshopping.New(poolBroaker.GetPool(ctx, t))

		alice := testhelpers.User(ctx, t, raw, "alice")
		banana := domain.Purchasable{Type: domain.PurchasableItem, Id: testhelpers.Item(ctx, t, raw, "banana")}

		const n = 8
		wg := sync.WaitGroup{}
		errs := make([]error, n)
		for i := range n {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, errs[i] = testee.Add(ctx, alice, []domain.Requirement{
					{Purchasable: banana, Quantity: domain.Quantity{Amount: 1}},
				})
			}()
		}
		wg.Wait()

		succeeded := 0
		for _, err := range errs {
			if err == nil {
				succeeded++
			} else if !errors.Is(err, domerr.ErrConflict) {
				t.Errorf("unexpected error: %v", err)
			}
		}

		entries := try.To(testee.Find(ctx, domain.OwnedBy(alice), domain.ShoppingListFindQuery{})).OrFatal(t)
		if len(entries) != 1 {
			t.Fatalf("entries: %+v", entries)
		}
		if entries[0].Quantity.Amount != float64(succeeded) {
			t.Errorf("quantity: (actual, expected) = (%f, %d)", entries[0].Quantity.Amount, succeeded)
		}
	})
}

func TestShoppingList_FindUpdateDelete(t *testing.T) {
	poolBroaker := testenv.NewPoolBroaker(context.Background(), t)

	t.Run("Find filters by purchased flag, pending first", func(t *testing.T) {
		ctx := context.Background()
		raw := poolBroaker.Raw()
		testee := pgshopping.New(poolBroaker.GetPool(ctx, t))

		alice := testhelpers.User(ctx, t, raw, "alice")
		banana := testhelpers.Item(ctx, t, raw, "banana")
		bought := testhelpers.ShoppingListEntry(ctx, t, raw, alice, "item", banana, 1, "", true)
		pending := testhelpers.ShoppingListEntry(ctx, t, raw, alice, "item", banana, 2, "", false)

		for name, testcase := range map[string]struct {
			purchased *bool
			expected  []int64
		}{
			"all":       {expected: []int64{pending, bought}},
			"purchased": {purchased: pointer.Ref(true), expected: []int64{bought}},
			"pending":   {purchased: pointer.Ref(false), expected: []int64{pending}},
		} {
			t.Run(name, func(t *testing.T) {
				found := try.To(testee.Find(
					ctx, domain.OwnedBy(alice), domain.ShoppingListFindQuery{Purchased: testcase.purchased},
				)).OrFatal(t)
				ids := utils.Map(found, func(e domain.ShoppingListEntry) int64 { return e.Id })
				if diff := cmp.Diff(testcase.expected, ids); diff != "" {
					t.Errorf("ids (-expected +actual):\n%s", diff)
				}
			})
		}
	})

	t.Run("Update to make second pending entry is ErrConflict", func(t *testing.T) {
		ctx := context.Background()
		raw := poolBroaker.Raw()
		testee := pgshopping.New(poolBroaker.GetPool(ctx, t))

		alice := testhelpers.User(ctx, t, raw, "alice")
		banana := testhelpers.Item(ctx, t, raw, "banana")
		bought := testhelpers.ShoppingListEntry(ctx, t, raw, alice, "item", banana, 1, "", true)
		testhelpers.ShoppingListEntry(ctx, t, raw, alice, "item", banana, 2, "", false)

		_, err := testee.Update(ctx, domain.OwnedBy(alice), bought, domain.ShoppingListUpdate{
			Purchased: pointer.Ref(false),
		})
		if !errors.Is(err, domerr.ErrConflict) {
			t.Errorf("unexpected error: %v", err)
		}

		updated := try.To(testee.Update(ctx, domain.OwnedBy(alice), bought, domain.ShoppingListUpdate{
			Quantity: &domain.Quantity{Amount: 6, Unit: "pcs"},
		})).OrFatal(t)
		if updated.Quantity != (domain.Quantity{Amount: 6, Unit: "pcs"}) || !updated.Purchased {
			t.Errorf("unexpected updated: %+v", updated)
		}
	})

	t.Run("Delete of an entry with payments is ErrConflict", func(t *testing.T) {
		ctx := context.Background()
		raw := poolBroaker.Raw()
		testee := pgshopping.New(poolBroaker.GetPool(ctx, t))

		alice := testhelpers.User(ctx, t, raw, "alice")
		bob := testhelpers.User(ctx, t, raw, "bob")
		banana := testhelpers.Item(ctx, t, raw, "banana")
		paid := testhelpers.ShoppingListEntry(ctx, t, raw, alice, "item", banana, 1, "", true)
		testhelpers.Payment(ctx, t, raw, alice, paid, "1.20", true, "null")
		free := testhelpers.ShoppingListEntry(ctx, t, raw, alice, "item", banana, 1, "", false)

		if err := testee.Delete(ctx, domain.OwnedBy(alice), paid); !errors.Is(err, domerr.ErrConflict) {
			t.Errorf("unexpected error: %v", err)
		}
		if err := testee.Delete(ctx, domain.OwnedBy(bob), free); !errors.Is(err, domerr.ErrMissing) {
			t.Errorf("unexpected error: %v", err)
		}
		if err := testee.Delete(ctx, domain.OwnedBy(alice), free); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})
}
