package db

import (
	dbcatalog "github.com/opst/mealplanner/pkg/domain/catalog/db"
	dbcomment "github.com/opst/mealplanner/pkg/domain/comment/db"
	dblock "github.com/opst/mealplanner/pkg/domain/lock/db"
	dbmealplan "github.com/opst/mealplanner/pkg/domain/mealplan/db"
	dbpayment "github.com/opst/mealplanner/pkg/domain/payment/db"
	dbrecipe "github.com/opst/mealplanner/pkg/domain/recipe/db"
	dbschema "github.com/opst/mealplanner/pkg/domain/schema/db"
	dbshopping "github.com/opst/mealplanner/pkg/domain/shoppinglist/db"
	dbuser "github.com/opst/mealplanner/pkg/domain/user/db"
)

type Database interface {
	User() dbuser.UserInterface
	Ingredient() dbcatalog.IngredientInterface
	Item() dbcatalog.ItemInterface
	Recipe() dbrecipe.RecipeInterface
	MealPlan() dbmealplan.MealPlanInterface
	ShoppingList() dbshopping.ShoppingListInterface
	Payment() dbpayment.PaymentInterface
	Comment() dbcomment.CommentInterface
	Schema() dbschema.SchemaInterface
	Lock() dblock.LockInterface
	Close() error
}
