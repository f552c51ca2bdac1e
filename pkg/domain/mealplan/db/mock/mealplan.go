package mock

import (
	"context"
	"errors"

	"github.com/opst/mealplanner/pkg/domain"
	mockdb "github.com/opst/mealplanner/pkg/domain/internal/db/mock"
	dbmealplan "github.com/opst/mealplanner/pkg/domain/mealplan/db"
)

type CreateArgs struct {
	UserId int64
	Param  domain.MealPlanParam
}

type GetArgs struct {
	Owner      domain.Owner
	MealPlanId int64
}

type FindArgs struct {
	Owner domain.Owner
	Query domain.MealPlanFindQuery
}

type UpdateArgs struct {
	Owner      domain.Owner
	MealPlanId int64
	Param      domain.MealPlanParam
}

type MealPlanInterface struct {
	Impl struct {
		Create func(context.Context, int64, domain.MealPlanParam) (domain.MealPlan, error)
		Get    func(context.Context, domain.Owner, int64) (domain.MealPlan, error)
		Find   func(context.Context, domain.Owner, domain.MealPlanFindQuery) ([]domain.MealPlan, error)
		Update func(context.Context, domain.Owner, int64, domain.MealPlanParam) (domain.MealPlan, error)
		Delete func(context.Context, domain.Owner, int64) error
	}
	Calls struct {
		Create mockdb.CallLog[CreateArgs]
		Get    mockdb.CallLog[GetArgs]
		Find   mockdb.CallLog[FindArgs]
		Update mockdb.CallLog[UpdateArgs]
		Delete mockdb.CallLog[GetArgs]
	}
}

var _ dbmealplan.MealPlanInterface = &MealPlanInterface{}

func NewMealPlanInterface() *MealPlanInterface {
	return &MealPlanInterface{}
}

func (m *MealPlanInterface) Create(ctx context.Context, userId int64, param domain.MealPlanParam) (domain.MealPlan, error) {
	m.Calls.Create = append(m.Calls.Create, CreateArgs{UserId: userId, Param: param})
	if m.Impl.Create != nil {
		return m.Impl.Create(ctx, userId, param)
	}
	panic(errors.New("should not be called"))
}

func (m *MealPlanInterface) Get(ctx context.Context, owner domain.Owner, mealPlanId int64) (domain.MealPlan, error) {
	m.Calls.Get = append(m.Calls.Get, GetArgs{Owner: owner, MealPlanId: mealPlanId})
	if m.Impl.Get != nil {
		return m.Impl.Get(ctx, owner, mealPlanId)
	}
	panic(errors.New("should not be called"))
}

func (m *MealPlanInterface) Find(ctx context.Context, owner domain.Owner, query domain.MealPlanFindQuery) ([]domain.MealPlan, error) {
	m.Calls.Find = append(m.Calls.Find, FindArgs{Owner: owner, Query: query})
	if m.Impl.Find != nil {
		return m.Impl.Find(ctx, owner, query)
	}
	panic(errors.New("should not be called"))
}

func (m *MealPlanInterface) Update(ctx context.Context, owner domain.Owner, mealPlanId int64, param domain.MealPlanParam) (domain.MealPlan, error) {
	m.Calls.Update = append(m.Calls.Update, UpdateArgs{Owner: owner, MealPlanId: mealPlanId, Param: param})
	if m.Impl.Update != nil {
		return m.Impl.Update(ctx, owner, mealPlanId, param)
	}
	panic(errors.New("should not be called"))
}

func (m *MealPlanInterface) Delete(ctx context.Context, owner domain.Owner, mealPlanId int64) error {
	m.Calls.Delete = append(m.Calls.Delete, GetArgs{Owner: owner, MealPlanId: mealPlanId})
	if m.Impl.Delete != nil {
		return m.Impl.Delete(ctx, owner, mealPlanId)
	}
	panic(errors.New("should not be called"))
}
