package postgres

import (
	"context"
	"fmt"

	mpool "github.com/opst/mealplanner/pkg/conn/db/postgres/pool"
	"github.com/opst/mealplanner/pkg/domain"
	dbcomment "github.com/opst/mealplanner/pkg/domain/comment/db"
	domerr "github.com/opst/mealplanner/pkg/domain/errors"
	pgerr "github.com/opst/mealplanner/pkg/domain/errors/dberrors/postgres"
	xe "github.com/opst/mealplanner/pkg/errors"
)

type pgComment struct {
	pool mpool.Pool
}

func New(pool mpool.Pool) dbcomment.CommentInterface {
	return &pgComment{pool: pool}
}

func missing(commentId int64) error {
	return pgerr.Missing{Table: "comment", Identity: fmt.Sprintf("comment_id=%d", commentId)}
}

// checkCommentable confirms the commentable exists in the owner scope.
func checkCommentable(ctx context.Context, q mpool.Queryer, owner domain.Owner, on domain.Commentable) error {
	var query string
	switch on.Type {
	case domain.CommentOnRecipe:
		query = `select count(*) from "recipe" where "recipe_id" = $1 and ($2::bool or "user_id" = $3)`
	case domain.CommentOnMealPlan:
		query = `select count(*) from "meal_plan" where "meal_plan_id" = $1 and ($2::bool or "user_id" = $3)`
	default:
		return xe.Wrap(fmt.Errorf("%w: commentable type %q", domerr.ErrInvalidParam, on.Type))
	}

	anyOwner, userId := owner.SQLParams()
	var n int64
	if err := q.QueryRow(ctx, query, on.Id, anyOwner, userId).Scan(&n); err != nil {
		return xe.Wrap(err)
	}
	if n == 0 {
		return xe.Wrap(pgerr.Missing{Table: string(on.Type), Identity: fmt.Sprintf("%s=%d", on.Type, on.Id)})
	}
	return nil
}

func retrieve(ctx context.Context, q mpool.Queryer, where string, params ...any) ([]domain.Comment, error) {
	rows, err := q.Query(
		ctx,
		`
		select
			"comment_id", "user_id", "commentable_type", "commentable_id", "body",
			"created_at", "updated_at"
		from "comment"
		where `+where+`
		order by "created_at", "comment_id"
		`,
		params...,
	)
	if err != nil {
		return nil, xe.Wrap(err)
	}
	defer rows.Close()

	ret := []domain.Comment{}
	for rows.Next() {
		c := domain.Comment{}
		var ctype string
		if err := rows.Scan(
			&c.Id, &c.UserId, &ctype, &c.Commentable.Id, &c.Body, &c.CreatedAt, &c.UpdatedAt,
		); err != nil {
			return nil, xe.Wrap(err)
		}
		c.Commentable.Type = domain.CommentableType(ctype)
		ret = append(ret, c)
	}
	if err := rows.Err(); err != nil {
		return nil, xe.Wrap(err)
	}
	return ret, nil
}

func getOne(ctx context.Context, q mpool.Queryer, owner domain.Owner, commentId int64) (domain.Comment, error) {
	anyOwner, userId := owner.SQLParams()
	found, err := retrieve(
		ctx, q,
		`"comment_id" = $1 and ($2::bool or "user_id" = $3)`,
		commentId, anyOwner, userId,
	)
	if err != nil {
		return domain.Comment{}, err
	}
	if len(found) == 0 {
		return domain.Comment{}, xe.Wrap(missing(commentId))
	}
	return found[0], nil
}

func (c *pgComment) Create(ctx context.Context, owner domain.Owner, userId int64, on domain.Commentable, body string) (domain.Comment, error) {
	body, err := domain.ValidateCommentBody(body)
	if err != nil {
		return domain.Comment{}, err
	}

	var ret domain.Comment
	err = mpool.InTx(ctx, c.pool, func(tx mpool.Tx) error {
		if err := checkCommentable(ctx, tx, owner, on); err != nil {
			return err
		}

		var id int64
		if err := tx.QueryRow(
			ctx,
			`
			insert into "comment" ("user_id", "commentable_type", "commentable_id", "body")
			values ($1, $2, $3, $4)
			returning "comment_id"
			`,
			userId, string(on.Type), on.Id, body,
		).Scan(&id); err != nil {
			return xe.Wrap(pgerr.Translate(err))
		}

		ret, err = getOne(ctx, tx, domain.AnyOwner, id)
		return err
	})
	if err != nil {
		return domain.Comment{}, err
	}
	return ret, nil
}

func (c *pgComment) Find(ctx context.Context, owner domain.Owner, on domain.Commentable) ([]domain.Comment, error) {
	conn, err := c.pool.Acquire(ctx)
	if err != nil {
		return nil, xe.Wrap(err)
	}
	defer conn.Release()

	if err := checkCommentable(ctx, conn, owner, on); err != nil {
		return nil, err
	}
	return retrieve(
		ctx, conn,
		`"commentable_type" = $1 and "commentable_id" = $2`,
		string(on.Type), on.Id,
	)
}

func (c *pgComment) Get(ctx context.Context, owner domain.Owner, commentId int64) (domain.Comment, error) {
	conn, err := c.pool.Acquire(ctx)
	if err != nil {
		return domain.Comment{}, xe.Wrap(err)
	}
	defer conn.Release()
	return getOne(ctx, conn, owner, commentId)
}

func (c *pgComment) Update(ctx context.Context, owner domain.Owner, commentId int64, body string) (domain.Comment, error) {
	body, err := domain.ValidateCommentBody(body)
	if err != nil {
		return domain.Comment{}, err
	}

	var ret domain.Comment
	err = mpool.InTx(ctx, c.pool, func(tx mpool.Tx) error {
		anyOwner, userId := owner.SQLParams()
		ctag, err := tx.Exec(
			ctx,
			`
			update "comment" set "body" = $4, "updated_at" = now()
			where "comment_id" = $1 and ($2::bool or "user_id" = $3)
			`,
			commentId, anyOwner, userId, body,
		)
		if err != nil {
			return xe.Wrap(err)
		}
		if ctag.RowsAffected() == 0 {
			return xe.Wrap(missing(commentId))
		}
		ret, err = getOne(ctx, tx, owner, commentId)
		return err
	})
	if err != nil {
		return domain.Comment{}, err
	}
	return ret, nil
}

func (c *pgComment) Delete(ctx context.Context, owner domain.Owner, commentId int64) error {
	conn, err := c.pool.Acquire(ctx)
	if err != nil {
		return xe.Wrap(err)
	}
	defer conn.Release()

	anyOwner, userId := owner.SQLParams()
	ctag, err := conn.Exec(
		ctx,
		`delete from "comment" where "comment_id" = $1 and ($2::bool or "user_id" = $3)`,
		commentId, anyOwner, userId,
	)
	if err != nil {
		return xe.Wrap(err)
	}
	if ctag.RowsAffected() == 0 {
		return xe.Wrap(missing(commentId))
	}
	return nil
}
