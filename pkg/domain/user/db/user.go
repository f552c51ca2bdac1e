package db

import (
	"context"

	"github.com/opst/mealplanner/pkg/domain"
)

type UserInterface interface {
	// Create registers a new user.
	//
	// Returns
	//
	// - domain.User: created user
	//
	// - error: ErrConflict when the email is used by another user.
	Create(context.Context, domain.UserParam) (domain.User, error)

	// Get returns a user by id.
	//
	// Returns ErrMissing when not found.
	Get(ctx context.Context, userId int64) (domain.User, error)

	// GetByEmail returns a user by email, case-insensitively.
	//
	// Returns ErrMissing when not found.
	GetByEmail(ctx context.Context, email string) (domain.User, error)

	// List returns all users in id order.
	List(context.Context) ([]domain.User, error)

	// Update overwrites a user.
	//
	// Returns ErrMissing when not found, or ErrConflict when the email is used by another user.
	Update(ctx context.Context, userId int64, param domain.UserParam) (domain.User, error)

	// Delete removes a user and all records owned by them.
	//
	// Returns ErrMissing when not found.
	Delete(ctx context.Context, userId int64) error
}
