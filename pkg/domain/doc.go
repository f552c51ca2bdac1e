package domain

// domain package contains the Domain Models and rules of the meal planner.
//
// `domain/mealplanner` package exposes the root object (the database).
// Entrypoints should instantiate it and use it to interact with the domain.
//
// `domain/ENTITY.go` has high-level entities (Domain Model types) and pure functions.
// For example, `domain/shoppinglist.go` contains `ShoppingListEntry` and the merge rule.
//
// `domain/ENTITY/db` directory contains the RDB expression of the entity:
// the repository interface, its postgres implementation and a mock.
//
// # Entities
//
// - `user`: people planning meals. An admin user can operate the back-office.
//
// - `catalog`: Ingredients and Items, shared by all users.
// Ingredients are used by Recipes. Items are things bought as they are (a bottle of milk).
// Both of them are Purchasable, and Items and Recipes are Plannable.
//
// - `recipe`: how to cook, with ingredient lines (Ingredient + quantity).
//
// - `mealplan`: a Plannable scheduled on a date and a slot (breakfast, lunch, ...).
// A meal plan derives Requirements for the shopping list.
//
// - `shoppinglist`: entries of Purchasables to buy.
// A user has at most one pending (not purchased) entry for a Purchasable;
// new Requirements are merged into it.
//
// - `payment`: records of money paid for shopping list entries.
// Completing a payment marks its entry purchased. Payments are soft-deleted.
//
// - `comment`: notes on recipes and meal plans.
//
// - `schema`: version of the database schema.
//
