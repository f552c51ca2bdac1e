package postgres

import (
	"context"

	mpool "github.com/opst/mealplanner/pkg/conn/db/postgres/pool"
	dbcatalog "github.com/opst/mealplanner/pkg/domain/catalog/db"
	pgcatalog "github.com/opst/mealplanner/pkg/domain/catalog/db/postgres"
	dbcomment "github.com/opst/mealplanner/pkg/domain/comment/db"
	pgcomment "github.com/opst/mealplanner/pkg/domain/comment/db/postgres"
	dblock "github.com/opst/mealplanner/pkg/domain/lock/db"
	pglock "github.com/opst/mealplanner/pkg/domain/lock/db/postgres"
	dbmealplan "github.com/opst/mealplanner/pkg/domain/mealplan/db"
	pgmealplan "github.com/opst/mealplanner/pkg/domain/mealplan/db/postgres"
	dbInterface "github.com/opst/mealplanner/pkg/domain/mealplanner/db"
	dbpayment "github.com/opst/mealplanner/pkg/domain/payment/db"
	pgpayment "github.com/opst/mealplanner/pkg/domain/payment/db/postgres"
	dbrecipe "github.com/opst/mealplanner/pkg/domain/recipe/db"
	pgrecipe "github.com/opst/mealplanner/pkg/domain/recipe/db/postgres"
	dbschema "github.com/opst/mealplanner/pkg/domain/schema/db"
	pgschema "github.com/opst/mealplanner/pkg/domain/schema/db/postgres"
	dbshopping "github.com/opst/mealplanner/pkg/domain/shoppinglist/db"
	pgshopping "github.com/opst/mealplanner/pkg/domain/shoppinglist/db/postgres"
	dbuser "github.com/opst/mealplanner/pkg/domain/user/db"
	pguser "github.com/opst/mealplanner/pkg/domain/user/db/postgres"
	xe "github.com/opst/mealplanner/pkg/errors"
)

type mealplannerDBPostgres struct {
	pool mpool.Pool

	user         dbuser.UserInterface
	ingredient   dbcatalog.IngredientInterface
	item         dbcatalog.ItemInterface
	recipe       dbrecipe.RecipeInterface
	mealPlan     dbmealplan.MealPlanInterface
	shoppingList dbshopping.ShoppingListInterface
	payment      dbpayment.PaymentInterface
	comment      dbcomment.CommentInterface
	schema       dbschema.SchemaInterface
	lock         dblock.LockInterface
}

type Config struct {
	SchemaRepository string
	SchemaOptions    []pgschema.Option
}

type Option func(*Config) *Config

func WithSchemaRepository(repository string, options ...pgschema.Option) Option {
	return func(c *Config) *Config {
		c.SchemaRepository = repository
		c.SchemaOptions = options
		return c
	}
}

// New connects to the database at url.
//
// Without WithSchemaRepository, Schema() of the returned Database does nothing.
func New(
	ctx context.Context,
	url string,
	options ...Option,
) (dbInterface.Database, error) {
	p, err := mpool.Connect(ctx, url)
	if err != nil {
		return nil, xe.Wrap(err)
	}

	c := Config{}
	for _, option := range options {
		c = *option(&c)
	}

	var schema dbschema.SchemaInterface = pgschema.Null()
	if c.SchemaRepository != "" {
		schema = pgschema.New(p, c.SchemaRepository, c.SchemaOptions...)
	}

	return &mealplannerDBPostgres{
		pool:         p,
		user:         pguser.New(p),
		ingredient:   pgcatalog.NewIngredient(p),
		item:         pgcatalog.NewItem(p),
		recipe:       pgrecipe.New(p),
		mealPlan:     pgmealplan.New(p),
		shoppingList: pgshopping.New(p),
		payment:      pgpayment.New(p),
		comment:      pgcomment.New(p),
		schema:       schema,
		lock:         pglock.New(p),
	}, nil
}

func (m *mealplannerDBPostgres) User() dbuser.UserInterface {
	return m.user
}

func (m *mealplannerDBPostgres) Ingredient() dbcatalog.IngredientInterface {
	return m.ingredient
}

func (m *mealplannerDBPostgres) Item() dbcatalog.ItemInterface {
	return m.item
}

func (m *mealplannerDBPostgres) Recipe() dbrecipe.RecipeInterface {
	return m.recipe
}

func (m *mealplannerDBPostgres) MealPlan() dbmealplan.MealPlanInterface {
	return m.mealPlan
}

func (m *mealplannerDBPostgres) ShoppingList() dbshopping.ShoppingListInterface {
	return m.shoppingList
}

func (m *mealplannerDBPostgres) Payment() dbpayment.PaymentInterface {
	return m.payment
}

func (m *mealplannerDBPostgres) Comment() dbcomment.CommentInterface {
	return m.comment
}

func (m *mealplannerDBPostgres) Schema() dbschema.SchemaInterface {
	return m.schema
}

func (m *mealplannerDBPostgres) Lock() dblock.LockInterface {
	return m.lock
}

func (m *mealplannerDBPostgres) Close() error {
	m.pool.Close()
	return nil
}
