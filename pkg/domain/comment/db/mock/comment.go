package mock

import (
	"context"
	"errors"

	"github.com/opst/mealplanner/pkg/domain"
	dbcomment "github.com/opst/mealplanner/pkg/domain/comment/db"
	mockdb "github.com/opst/mealplanner/pkg/domain/internal/db/mock"
)

type CreateArgs struct {
	Owner  domain.Owner
	UserId int64
	On     domain.Commentable
	Body   string
}

type FindArgs struct {
	Owner domain.Owner
	On    domain.Commentable
}

type GetArgs struct {
	Owner     domain.Owner
	CommentId int64
}

type UpdateArgs struct {
	Owner     domain.Owner
	CommentId int64
	Body      string
}

type CommentInterface struct {
	Impl struct {
		Create func(context.Context, domain.Owner, int64, domain.Commentable, string) (domain.Comment, error)
		Find   func(context.Context, domain.Owner, domain.Commentable) ([]domain.Comment, error)
		Get    func(context.Context, domain.Owner, int64) (domain.Comment, error)
		Update func(context.Context, domain.Owner, int64, string) (domain.Comment, error)
		Delete func(context.Context, domain.Owner, int64) error
	}
	Calls struct {
		Create mockdb.CallLog[CreateArgs]
		Find   mockdb.CallLog[FindArgs]
		Get    mockdb.CallLog[GetArgs]
		Update mockdb.CallLog[UpdateArgs]
		Delete mockdb.CallLog[GetArgs]
	}
}

var _ dbcomment.CommentInterface = &CommentInterface{}

func NewCommentInterface() *CommentInterface {
	return &CommentInterface{}
}

func (m *CommentInterface) Create(ctx context.Context, owner domain.Owner, userId int64, on domain.Commentable, body string) (domain.Comment, error) {
	m.Calls.Create = append(m.Calls.Create, CreateArgs{Owner: owner, UserId: userId, On: on, Body: body})
	if m.Impl.Create != nil {
		return m.Impl.Create(ctx, owner, userId, on, body)
	}
	panic(errors.New("should not be called"))
}

func (m *CommentInterface) Find(ctx context.Context, owner domain.Owner, on domain.Commentable) ([]domain.Comment, error) {
	m.Calls.Find = append(m.Calls.Find, FindArgs{Owner: owner, On: on})
	if m.Impl.Find != nil {
		return m.Impl.Find(ctx, owner, on)
	}
	panic(errors.New("should not be called"))
}

func (m *CommentInterface) Get(ctx context.Context, owner domain.Owner, commentId int64) (domain.Comment, error) {
	m.Calls.Get = append(m.Calls.Get, GetArgs{Owner: owner, CommentId: commentId})
	if m.Impl.Get != nil {
		return m.Impl.Get(ctx, owner, commentId)
	}
	panic(errors.New("should not be called"))
}

func (m *CommentInterface) Update(ctx context.Context, owner domain.Owner, commentId int64, body string) (domain.Comment, error) {
	m.Calls.Update = append(m.Calls.Update, UpdateArgs{Owner: owner, CommentId: commentId, Body: body})
	if m.Impl.Update != nil {
		return m.Impl.Update(ctx, owner, commentId, body)
	}
	panic(errors.New("should not be called"))
}

func (m *CommentInterface) Delete(ctx context.Context, owner domain.Owner, commentId int64) error {
	m.Calls.Delete = append(m.Calls.Delete, GetArgs{Owner: owner, CommentId: commentId})
	if m.Impl.Delete != nil {
		return m.Impl.Delete(ctx, owner, commentId)
	}
	panic(errors.New("should not be called"))
}
