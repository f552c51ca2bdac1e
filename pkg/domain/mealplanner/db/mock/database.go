package mock

import (
	"github.com/opst/mealplanner/pkg/domain"
	dbcatalog "github.com/opst/mealplanner/pkg/domain/catalog/db"
	mockcatalog "github.com/opst/mealplanner/pkg/domain/catalog/db/mock"
	dbcomment "github.com/opst/mealplanner/pkg/domain/comment/db"
	mockcomment "github.com/opst/mealplanner/pkg/domain/comment/db/mock"
	dblock "github.com/opst/mealplanner/pkg/domain/lock/db"
	mocklock "github.com/opst/mealplanner/pkg/domain/lock/db/mock"
	dbmealplan "github.com/opst/mealplanner/pkg/domain/mealplan/db"
	mockmealplan "github.com/opst/mealplanner/pkg/domain/mealplan/db/mock"
	dbmealplanner "github.com/opst/mealplanner/pkg/domain/mealplanner/db"
	dbpayment "github.com/opst/mealplanner/pkg/domain/payment/db"
	mockpayment "github.com/opst/mealplanner/pkg/domain/payment/db/mock"
	dbrecipe "github.com/opst/mealplanner/pkg/domain/recipe/db"
	mockrecipe "github.com/opst/mealplanner/pkg/domain/recipe/db/mock"
	dbschema "github.com/opst/mealplanner/pkg/domain/schema/db"
	mockschema "github.com/opst/mealplanner/pkg/domain/schema/db/mock"
	dbshopping "github.com/opst/mealplanner/pkg/domain/shoppinglist/db"
	mockshopping "github.com/opst/mealplanner/pkg/domain/shoppinglist/db/mock"
	dbuser "github.com/opst/mealplanner/pkg/domain/user/db"
	mockuser "github.com/opst/mealplanner/pkg/domain/user/db/mock"
)

// Database bundles mocks of each repository.
type Database struct {
	Users       *mockuser.UserInterface
	Ingredients *mockcatalog.CatalogInterface[domain.Ingredient]
	Items       *mockcatalog.CatalogInterface[domain.Item]
	Recipes     *mockrecipe.RecipeInterface
	MealPlans   *mockmealplan.MealPlanInterface
	Shopping    *mockshopping.ShoppingListInterface
	Payments    *mockpayment.PaymentInterface
	Comments    *mockcomment.CommentInterface
	SchemaMock  *mockschema.SchemaInterface
	Locks       *mocklock.LockInterface
	ClosedTimes uint
}

var _ dbmealplanner.Database = &Database{}

func New() *Database {
	return &Database{
		Users:       mockuser.NewUserInterface(),
		Ingredients: mockcatalog.NewIngredientInterface(),
		Items:       mockcatalog.NewItemInterface(),
		Recipes:     mockrecipe.NewRecipeInterface(),
		MealPlans:   mockmealplan.NewMealPlanInterface(),
		Shopping:    mockshopping.NewShoppingListInterface(),
		Payments:    mockpayment.NewPaymentInterface(),
		Comments:    mockcomment.NewCommentInterface(),
		SchemaMock:  &mockschema.SchemaInterface{},
		Locks:       mocklock.NewLockInterface(),
	}
}

func (d *Database) User() dbuser.UserInterface { return d.Users }

func (d *Database) Ingredient() dbcatalog.IngredientInterface { return d.Ingredients }

func (d *Database) Item() dbcatalog.ItemInterface { return d.Items }

func (d *Database) Recipe() dbrecipe.RecipeInterface { return d.Recipes }

func (d *Database) MealPlan() dbmealplan.MealPlanInterface { return d.MealPlans }

func (d *Database) ShoppingList() dbshopping.ShoppingListInterface { return d.Shopping }

func (d *Database) Payment() dbpayment.PaymentInterface { return d.Payments }

func (d *Database) Comment() dbcomment.CommentInterface { return d.Comments }

func (d *Database) Schema() dbschema.SchemaInterface { return d.SchemaMock }

func (d *Database) Lock() dblock.LockInterface { return d.Locks }

func (d *Database) Close() error {
	d.ClosedTimes += 1
	return nil
}
