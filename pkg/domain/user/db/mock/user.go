package mock

import (
	"context"
	"errors"

	"github.com/opst/mealplanner/pkg/domain"
	mockdb "github.com/opst/mealplanner/pkg/domain/internal/db/mock"
	dbuser "github.com/opst/mealplanner/pkg/domain/user/db"
)

type UpdateArgs struct {
	UserId int64
	Param  domain.UserParam
}

type UserInterface struct {
	Impl struct {
		Create     func(context.Context, domain.UserParam) (domain.User, error)
		Get        func(context.Context, int64) (domain.User, error)
		GetByEmail func(context.Context, string) (domain.User, error)
		List       func(context.Context) ([]domain.User, error)
		Update     func(context.Context, int64, domain.UserParam) (domain.User, error)
		Delete     func(context.Context, int64) error
	}
	Calls struct {
		Create     mockdb.CallLog[domain.UserParam]
		Get        mockdb.CallLog[int64]
		GetByEmail mockdb.CallLog[string]
		List       mockdb.CallLog[struct{}]
		Update     mockdb.CallLog[UpdateArgs]
		Delete     mockdb.CallLog[int64]
	}
}

var _ dbuser.UserInterface = &UserInterface{}

func NewUserInterface() *UserInterface {
	return &UserInterface{}
}

func (m *UserInterface) Create(ctx context.Context, param domain.UserParam) (domain.User, error) {
	m.Calls.Create = append(m.Calls.Create, param)
	if m.Impl.Create != nil {
		return m.Impl.Create(ctx, param)
	}
	panic(errors.New("should not be called"))
}

func (m *UserInterface) Get(ctx context.Context, userId int64) (domain.User, error) {
	m.Calls.Get = append(m.Calls.Get, userId)
	if m.Impl.Get != nil {
		return m.Impl.Get(ctx, userId)
	}
	panic(errors.New("should not be called"))
}

func (m *UserInterface) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	m.Calls.GetByEmail = append(m.Calls.GetByEmail, email)
	if m.Impl.GetByEmail != nil {
		return m.Impl.GetByEmail(ctx, email)
	}
	panic(errors.New("should not be called"))
}

func (m *UserInterface) List(ctx context.Context) ([]domain.User, error) {
	m.Calls.List = append(m.Calls.List, struct{}{})
	if m.Impl.List != nil {
		return m.Impl.List(ctx)
	}
	panic(errors.New("should not be called"))
}

func (m *UserInterface) Update(ctx context.Context, userId int64, param domain.UserParam) (domain.User, error) {
	m.Calls.Update = append(m.Calls.Update, UpdateArgs{UserId: userId, Param: param})
	if m.Impl.Update != nil {
		return m.Impl.Update(ctx, userId, param)
	}
	panic(errors.New("should not be called"))
}

func (m *UserInterface) Delete(ctx context.Context, userId int64) error {
	m.Calls.Delete = append(m.Calls.Delete, userId)
	if m.Impl.Delete != nil {
		return m.Impl.Delete(ctx, userId)
	}
	panic(errors.New("should not be called"))
}
