package mock

import (
	"context"
	"errors"

	"github.com/opst/mealplanner/pkg/domain"
	mockdb "github.com/opst/mealplanner/pkg/domain/internal/db/mock"
	dbrecipe "github.com/opst/mealplanner/pkg/domain/recipe/db"
)

type CreateArgs struct {
	UserId int64
	Param  domain.RecipeParam
}

type GetArgs struct {
	Owner    domain.Owner
	RecipeId int64
}

type UpdateArgs struct {
	Owner    domain.Owner
	RecipeId int64
	Param    domain.RecipeParam
}

type RecipeInterface struct {
	Impl struct {
		Create func(context.Context, int64, domain.RecipeParam) (domain.Recipe, error)
		Get    func(context.Context, domain.Owner, int64) (domain.Recipe, error)
		Find   func(context.Context, domain.Owner) ([]domain.Recipe, error)
		Update func(context.Context, domain.Owner, int64, domain.RecipeParam) (domain.Recipe, error)
		Delete func(context.Context, domain.Owner, int64) error
	}
	Calls struct {
		Create mockdb.CallLog[CreateArgs]
		Get    mockdb.CallLog[GetArgs]
		Find   mockdb.CallLog[domain.Owner]
		Update mockdb.CallLog[UpdateArgs]
		Delete mockdb.CallLog[GetArgs]
	}
}

var _ dbrecipe.RecipeInterface = &RecipeInterface{}

func NewRecipeInterface() *RecipeInterface {
	return &RecipeInterface{}
}

func (m *RecipeInterface) Create(ctx context.Context, userId int64, param domain.RecipeParam) (domain.Recipe, error) {
	m.Calls.Create = append(m.Calls.Create, CreateArgs{UserId: userId, Param: param})
	if m.Impl.Create != nil {
		return m.Impl.Create(ctx, userId, param)
	}
	panic(errors.New("should not be called"))
}

func (m *RecipeInterface) Get(ctx context.Context, owner domain.Owner, recipeId int64) (domain.Recipe, error) {
	m.Calls.Get = append(m.Calls.Get, GetArgs{Owner: owner, RecipeId: recipeId})
	if m.Impl.Get != nil {
		return m.Impl.Get(ctx, owner, recipeId)
	}
	panic(errors.New("should not be called"))
}

func (m *RecipeInterface) Find(ctx context.Context, owner domain.Owner) ([]domain.Recipe, error) {
	m.Calls.Find = append(m.Calls.Find, owner)
	if m.Impl.Find != nil {
		return m.Impl.Find(ctx, owner)
	}
	panic(errors.New("should not be called"))
}

func (m *RecipeInterface) Update(ctx context.Context, owner domain.Owner, recipeId int64, param domain.RecipeParam) (domain.Recipe, error) {
	m.Calls.Update = append(m.Calls.Update, UpdateArgs{Owner: owner, RecipeId: recipeId, Param: param})
	if m.Impl.Update != nil {
		return m.Impl.Update(ctx, owner, recipeId, param)
	}
	panic(errors.New("should not be called"))
}

func (m *RecipeInterface) Delete(ctx context.Context, owner domain.Owner, recipeId int64) error {
	m.Calls.Delete = append(m.Calls.Delete, GetArgs{Owner: owner, RecipeId: recipeId})
	if m.Impl.Delete != nil {
		return m.Impl.Delete(ctx, owner, recipeId)
	}
	panic(errors.New("should not be called"))
}
