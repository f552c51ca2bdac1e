package mock

import (
	"context"
	"errors"

	"github.com/opst/mealplanner/pkg/domain"
	dbcatalog "github.com/opst/mealplanner/pkg/domain/catalog/db"
	mockdb "github.com/opst/mealplanner/pkg/domain/internal/db/mock"
)

type SearchArgs struct {
	Prefix string
	Limit  int
}

type RenameArgs struct {
	Id   int64
	Name string
}

type CatalogInterface[T domain.Ingredient | domain.Item] struct {
	Impl struct {
		FindOrCreate func(context.Context, string) (T, error)
		Get          func(context.Context, int64) (T, error)
		Search       func(context.Context, string, int) ([]T, error)
		Rename       func(context.Context, int64, string) (T, error)
		Delete       func(context.Context, int64) error
	}
	Calls struct {
		FindOrCreate mockdb.CallLog[string]
		Get          mockdb.CallLog[int64]
		Search       mockdb.CallLog[SearchArgs]
		Rename       mockdb.CallLog[RenameArgs]
		Delete       mockdb.CallLog[int64]
	}
}

var _ dbcatalog.IngredientInterface = &CatalogInterface[domain.Ingredient]{}
var _ dbcatalog.ItemInterface = &CatalogInterface[domain.Item]{}

func NewIngredientInterface() *CatalogInterface[domain.Ingredient] {
	return &CatalogInterface[domain.Ingredient]{}
}

func NewItemInterface() *CatalogInterface[domain.Item] {
	return &CatalogInterface[domain.Item]{}
}

func (m *CatalogInterface[T]) FindOrCreate(ctx context.Context, name string) (T, error) {
	m.Calls.FindOrCreate = append(m.Calls.FindOrCreate, name)
	if m.Impl.FindOrCreate != nil {
		return m.Impl.FindOrCreate(ctx, name)
	}
	panic(errors.New("should not be called"))
}

func (m *CatalogInterface[T]) Get(ctx context.Context, id int64) (T, error) {
	m.Calls.Get = append(m.Calls.Get, id)
	if m.Impl.Get != nil {
		return m.Impl.Get(ctx, id)
	}
	panic(errors.New("should not be called"))
}

func (m *CatalogInterface[T]) Search(ctx context.Context, prefix string, limit int) ([]T, error) {
	m.Calls.Search = append(m.Calls.Search, SearchArgs{Prefix: prefix, Limit: limit})
	if m.Impl.Search != nil {
		return m.Impl.Search(ctx, prefix, limit)
	}
	panic(errors.New("should not be called"))
}

func (m *CatalogInterface[T]) Rename(ctx context.Context, id int64, name string) (T, error) {
	m.Calls.Rename = append(m.Calls.Rename, RenameArgs{Id: id, Name: name})
	if m.Impl.Rename != nil {
		return m.Impl.Rename(ctx, id, name)
	}
	panic(errors.New("should not be called"))
}

func (m *CatalogInterface[T]) Delete(ctx context.Context, id int64) error {
	m.Calls.Delete = append(m.Calls.Delete, id)
	if m.Impl.Delete != nil {
		return m.Impl.Delete(ctx, id)
	}
	panic(errors.New("should not be called"))
}
