package db

import (
	"context"
	"time"

	"github.com/opst/mealplanner/pkg/domain"
)

// PaymentInterface is a repository of payments.
//
// Payments are soft-deleted first. Soft-deleted payments are excluded from
// queries unless asked, and can be restored or purged.
type PaymentInterface interface {
	// Create records a payment for a shopping list entry of the user.
	//
	// Returns ErrMissing when the entry is not found or not owned by the user.
	Create(ctx context.Context, userId int64, param domain.PaymentParam) (domain.Payment, error)

	// Get returns a payment.
	//
	// Returns ErrMissing when not found, out of the owner scope, or filtered out by deleted.
	Get(ctx context.Context, owner domain.Owner, paymentId int64, deleted domain.DeletedFilter) (domain.Payment, error)

	// Find returns payments in the owner scope, in id order.
	Find(ctx context.Context, owner domain.Owner, query domain.PaymentFindQuery) ([]domain.Payment, error)

	// Complete marks a live payment completed, and its entry purchased.
	//
	// Completing a completed payment keeps its completion time.
	//
	// Returns ErrMissing when not found, out of the owner scope, or soft-deleted.
	Complete(ctx context.Context, owner domain.Owner, paymentId int64) (domain.Payment, error)

	// Uncomplete clears completion of a live payment, and marks its entry not purchased.
	//
	// Returns ErrMissing when not found, out of the owner scope, or soft-deleted,
	// or ErrConflict when there is another pending entry of the same Purchasable.
	Uncomplete(ctx context.Context, owner domain.Owner, paymentId int64) (domain.Payment, error)

	// Delete soft-deletes a live payment.
	//
	// Returns ErrMissing when not found, out of the owner scope, or already soft-deleted.
	Delete(ctx context.Context, owner domain.Owner, paymentId int64) error

	// Restore brings a soft-deleted payment back.
	//
	// Returns ErrMissing when there are no such soft-deleted payment in the owner scope.
	Restore(ctx context.Context, owner domain.Owner, paymentId int64) (domain.Payment, error)

	// Purge removes a soft-deleted payment permanently.
	//
	// Returns ErrMissing when not found or out of the owner scope,
	// or ErrNotDeleted when it is not soft-deleted.
	Purge(ctx context.Context, owner domain.Owner, paymentId int64) error

	// PurgeExpired removes payments soft-deleted before the time permanently.
	//
	// Returns the number of purged payments.
	PurgeExpired(ctx context.Context, before time.Time) (int64, error)
}
