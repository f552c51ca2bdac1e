package domain

import (
	"fmt"
	"strings"
	"time"

	domerr "github.com/opst/mealplanner/pkg/domain/errors"
	"github.com/shopspring/decimal"
)

type Payment struct {
	Id      int64
	UserId  int64
	EntryId int64
	Amount  decimal.Decimal
	Note    string

	// nil unless completed.
	CompletedAt *time.Time

	// nil unless soft-deleted.
	DeletedAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (p Payment) Completed() bool {
	return p.CompletedAt != nil
}

func (p Payment) Deleted() bool {
	return p.DeletedAt != nil
}

// maximum digits after the decimal point of payment amounts.
const PaymentAmountScale = 2

type PaymentParam struct {
	EntryId int64
	Amount  decimal.Decimal
	Note    string
}

func (p PaymentParam) Validate() (PaymentParam, error) {
	if p.EntryId <= 0 {
		return PaymentParam{}, domerr.NewInvalidParam("entryId", "should be positive")
	}
	if p.Amount.IsNegative() {
		return PaymentParam{}, domerr.NewInvalidParam("amount", "should not be negative")
	}
	if !p.Amount.Equal(p.Amount.Truncate(PaymentAmountScale)) {
		return PaymentParam{}, domerr.NewInvalidParam(
			"amount", fmt.Sprintf("should have at most %d decimal places", PaymentAmountScale),
		)
	}
	p.Note = strings.TrimSpace(p.Note)
	return p, nil
}

// DeletedFilter chooses payments by soft-deletion.
type DeletedFilter string

const (
	// live payments only. This is the default.
	ExcludeDeleted DeletedFilter = "exclude"

	// both live and soft-deleted payments.
	IncludeDeleted DeletedFilter = "include"

	// soft-deleted payments only.
	OnlyDeleted DeletedFilter = "only"
)

func AsDeletedFilter(s string) (DeletedFilter, error) {
	switch f := DeletedFilter(strings.ToLower(s)); f {
	case "":
		return ExcludeDeleted, nil
	case ExcludeDeleted, IncludeDeleted, OnlyDeleted:
		return f, nil
	}
	return "", fmt.Errorf(
		"%w: deleted should be one of exclude, include or only: %q",
		domerr.ErrInvalidParam, s,
	)
}

type PaymentFindQuery struct {
	Deleted DeletedFilter

	// nil means both.
	Completed *bool

	// nil means any entries.
	EntryId *int64
}
