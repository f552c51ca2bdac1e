package mock

import (
	"context"
	"errors"
	"time"

	"github.com/opst/mealplanner/pkg/domain"
	mockdb "github.com/opst/mealplanner/pkg/domain/internal/db/mock"
	dbpayment "github.com/opst/mealplanner/pkg/domain/payment/db"
)

type CreateArgs struct {
	UserId int64
	Param  domain.PaymentParam
}

type GetArgs struct {
	Owner     domain.Owner
	PaymentId int64
	Deleted   domain.DeletedFilter
}

type FindArgs struct {
	Owner domain.Owner
	Query domain.PaymentFindQuery
}

// OpArgs are arguments of operations on a payment: Complete, Uncomplete, Delete, Restore and Purge.
type OpArgs struct {
	Owner     domain.Owner
	PaymentId int64
}

type PaymentInterface struct {
	Impl struct {
		Create       func(context.Context, int64, domain.PaymentParam) (domain.Payment, error)
		Get          func(context.Context, domain.Owner, int64, domain.DeletedFilter) (domain.Payment, error)
		Find         func(context.Context, domain.Owner, domain.PaymentFindQuery) ([]domain.Payment, error)
		Complete     func(context.Context, domain.Owner, int64) (domain.Payment, error)
		Uncomplete   func(context.Context, domain.Owner, int64) (domain.Payment, error)
		Delete       func(context.Context, domain.Owner, int64) error
		Restore      func(context.Context, domain.Owner, int64) (domain.Payment, error)
		Purge        func(context.Context, domain.Owner, int64) error
		PurgeExpired func(context.Context, time.Time) (int64, error)
	}
	Calls struct {
		Create       mockdb.CallLog[CreateArgs]
		Get          mockdb.CallLog[GetArgs]
		Find         mockdb.CallLog[FindArgs]
		Complete     mockdb.CallLog[OpArgs]
		Uncomplete   mockdb.CallLog[OpArgs]
		Delete       mockdb.CallLog[OpArgs]
		Restore      mockdb.CallLog[OpArgs]
		Purge        mockdb.CallLog[OpArgs]
		PurgeExpired mockdb.CallLog[time.Time]
	}
}

var _ dbpayment.PaymentInterface = &PaymentInterface{}

func NewPaymentInterface() *PaymentInterface {
	return &PaymentInterface{}
}

func (m *PaymentInterface) Create(ctx context.Context, userId int64, param domain.PaymentParam) (domain.Payment, error) {
	m.Calls.Create = append(m.Calls.Create, CreateArgs{UserId: userId, Param: param})
	if m.Impl.Create != nil {
		return m.Impl.Create(ctx, userId, param)
	}
	panic(errors.New("should not be called"))
}

func (m *PaymentInterface) Get(ctx context.Context, owner domain.Owner, paymentId int64, deleted domain.DeletedFilter) (domain.Payment, error) {
	m.Calls.Get = append(m.Calls.Get, GetArgs{Owner: owner, PaymentId: paymentId, Deleted: deleted})
	if m.Impl.Get != nil {
		return m.Impl.Get(ctx, owner, paymentId, deleted)
	}
	panic(errors.New("should not be called"))
}

func (m *PaymentInterface) Find(ctx context.Context, owner domain.Owner, query domain.PaymentFindQuery) ([]domain.Payment, error) {
	m.Calls.Find = append(m.Calls.Find, FindArgs{Owner: owner, Query: query})
	if m.Impl.Find != nil {
		return m.Impl.Find(ctx, owner, query)
	}
	panic(errors.New("should not be called"))
}

func (m *PaymentInterface) Complete(ctx context.Context, owner domain.Owner, paymentId int64) (domain.Payment, error) {
	m.Calls.Complete = append(m.Calls.Complete, OpArgs{Owner: owner, PaymentId: paymentId})
	if m.Impl.Complete != nil {
		return m.Impl.Complete(ctx, owner, paymentId)
	}
	panic(errors.New("should not be called"))
}

func (m *PaymentInterface) Uncomplete(ctx context.Context, owner domain.Owner, paymentId int64) (domain.Payment, error) {
	m.Calls.Uncomplete = append(m.Calls.Uncomplete, OpArgs{Owner: owner, PaymentId: paymentId})
	if m.Impl.Uncomplete != nil {
		return m.Impl.Uncomplete(ctx, owner, paymentId)
	}
	panic(errors.New("should not be called"))
}

func (m *PaymentInterface) Delete(ctx context.Context, owner domain.Owner, paymentId int64) error {
	m.Calls.Delete = append(m.Calls.Delete, OpArgs{Owner: owner, PaymentId: paymentId})
	if m.Impl.Delete != nil {
		return m.Impl.Delete(ctx, owner, paymentId)
	}
	panic(errors.New("should not be called"))
}

func (m *PaymentInterface) Restore(ctx context.Context, owner domain.Owner, paymentId int64) (domain.Payment, error) {
	m.Calls.Restore = append(m.Calls.Restore, OpArgs{Owner: owner, PaymentId: paymentId})
	if m.Impl.Restore != nil {
		return m.Impl.Restore(ctx, owner, paymentId)
	}
	panic(errors.New("should not be called"))
}

func (m *PaymentInterface) Purge(ctx context.Context, owner domain.Owner, paymentId int64) error {
	m.Calls.Purge = append(m.Calls.Purge, OpArgs{Owner: owner, PaymentId: paymentId})
	if m.Impl.Purge != nil {
		return m.Impl.Purge(ctx, owner, paymentId)
	}
	panic(errors.New("should not be called"))
}

func (m *PaymentInterface) PurgeExpired(ctx context.Context, before time.Time) (int64, error) {
	m.Calls.PurgeExpired = append(m.Calls.PurgeExpired, before)
	if m.Impl.PurgeExpired != nil {
		return m.Impl.PurgeExpired(ctx, before)
	}
	panic(errors.New("should not be called"))
}
