package mock

import (
	"context"
	"errors"

	"github.com/opst/mealplanner/pkg/domain"
	mockdb "github.com/opst/mealplanner/pkg/domain/internal/db/mock"
	dbshopping "github.com/opst/mealplanner/pkg/domain/shoppinglist/db"
)

type AddArgs struct {
	UserId       int64
	Requirements []domain.Requirement
}

type FindArgs struct {
	Owner domain.Owner
	Query domain.ShoppingListFindQuery
}

type GetArgs struct {
	Owner   domain.Owner
	EntryId int64
}

type UpdateArgs struct {
	Owner   domain.Owner
	EntryId int64
	Update  domain.ShoppingListUpdate
}

type ShoppingListInterface struct {
	Impl struct {
		Resolve func(context.Context, domain.PurchasableRef) (domain.Purchasable, error)
		Add     func(context.Context, int64, []domain.Requirement) ([]domain.ShoppingListEntry, error)
		Find    func(context.Context, domain.Owner, domain.ShoppingListFindQuery) ([]domain.ShoppingListEntry, error)
		Get     func(context.Context, domain.Owner, int64) (domain.ShoppingListEntry, error)
		Update  func(context.Context, domain.Owner, int64, domain.ShoppingListUpdate) (domain.ShoppingListEntry, error)
		Delete  func(context.Context, domain.Owner, int64) error
	}
	Calls struct {
		Resolve mockdb.CallLog[domain.PurchasableRef]
		Add     mockdb.CallLog[AddArgs]
		Find    mockdb.CallLog[FindArgs]
		Get     mockdb.CallLog[GetArgs]
		Update  mockdb.CallLog[UpdateArgs]
		Delete  mockdb.CallLog[GetArgs]
	}
}

var _ dbshopping.ShoppingListInterface = &ShoppingListInterface{}

func NewShoppingListInterface() *ShoppingListInterface {
	return &ShoppingListInterface{}
}

func (m *ShoppingListInterface) Resolve(ctx context.Context, ref domain.PurchasableRef) (domain.Purchasable, error) {
	m.Calls.Resolve = append(m.Calls.Resolve, ref)
	if m.Impl.Resolve != nil {
		return m.Impl.Resolve(ctx, ref)
	}
	panic(errors.New("should not be called"))
}

func (m *ShoppingListInterface) Add(ctx context.Context, userId int64, requirements []domain.Requirement) ([]domain.ShoppingListEntry, error) {
	m.Calls.Add = append(m.Calls.Add, AddArgs{UserId: userId, Requirements: requirements})
	if m.Impl.Add != nil {
		return m.Impl.Add(ctx, userId, requirements)
	}
	panic(errors.New("should not be called"))
}

func (m *ShoppingListInterface) Find(ctx context.Context, owner domain.Owner, query domain.ShoppingListFindQuery) ([]domain.ShoppingListEntry, error) {
	m.Calls.Find = append(m.Calls.Find, FindArgs{Owner: owner, Query: query})
	if m.Impl.Find != nil {
		return m.Impl.Find(ctx, owner, query)
	}
	panic(errors.New("should not be called"))
}

func (m *ShoppingListInterface) Get(ctx context.Context, owner domain.Owner, entryId int64) (domain.ShoppingListEntry, error) {
	m.Calls.Get = append(m.Calls.Get, GetArgs{Owner: owner, EntryId: entryId})
	if m.Impl.Get != nil {
		return m.Impl.Get(ctx, owner, entryId)
	}
	panic(errors.New("should not be called"))
}

func (m *ShoppingListInterface) Update(ctx context.Context, owner domain.Owner, entryId int64, update domain.ShoppingListUpdate) (domain.ShoppingListEntry, error) {
	m.Calls.Update = append(m.Calls.Update, UpdateArgs{Owner: owner, EntryId: entryId, Update: update})
	if m.Impl.Update != nil {
		return m.Impl.Update(ctx, owner, entryId, update)
	}
	panic(errors.New("should not be called"))
}

func (m *ShoppingListInterface) Delete(ctx context.Context, owner domain.Owner, entryId int64) error {
	m.Calls.Delete = append(m.Calls.Delete, GetArgs{Owner: owner, EntryId: entryId})
	if m.Impl.Delete != nil {
		return m.Impl.Delete(ctx, owner, entryId)
	}
	panic(errors.New("should not be called"))
}
