package db

import (
	"context"

	"github.com/opst/mealplanner/pkg/domain"
)

type CommentInterface interface {
	// Create attaches a comment to a recipe or a meal plan.
	//
	// The commentable should be in the owner scope: users comment on their own records,
	// and the back-office comments on anything.
	//
	// Returns ErrMissing when the commentable is not found or out of the owner scope.
	Create(ctx context.Context, owner domain.Owner, userId int64, on domain.Commentable, body string) (domain.Comment, error)

	// Find returns comments on the commentable, oldest first.
	//
	// Returns ErrMissing when the commentable is not found or out of the owner scope.
	Find(ctx context.Context, owner domain.Owner, on domain.Commentable) ([]domain.Comment, error)

	// Get returns a comment.
	//
	// Returns ErrMissing when not found or out of the owner scope.
	Get(ctx context.Context, owner domain.Owner, commentId int64) (domain.Comment, error)

	// Update rewrites the body of a comment.
	//
	// Returns ErrMissing when not found or out of the owner scope.
	Update(ctx context.Context, owner domain.Owner, commentId int64, body string) (domain.Comment, error)

	// Delete removes a comment.
	//
	// Returns ErrMissing when not found or out of the owner scope.
	Delete(ctx context.Context, owner domain.Owner, commentId int64) error
}
