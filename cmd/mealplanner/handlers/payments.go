package handlers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/opst/mealplanner/pkg/api/binding"
	apierr "github.com/opst/mealplanner/pkg/api/types/errors"
	apipayments "github.com/opst/mealplanner/pkg/api/types/payments"
	"github.com/opst/mealplanner/pkg/domain"
	dbpayment "github.com/opst/mealplanner/pkg/domain/payment/db"
	"github.com/opst/mealplanner/pkg/utils"
	"github.com/opst/mealplanner/pkg/utils/rfctime"
)

func queryDeleted(c echo.Context) (domain.DeletedFilter, error) {
	f, err := domain.AsDeletedFilter(c.QueryParam("deleted"))
	if err != nil {
		return "", apierr.BadRequest(`query "deleted" should be one of exclude, include or only`, err)
	}
	return f, nil
}

// FindPaymentHandler lists payments in scope.
//
// Queries:
//
// - deleted: exclude (default), include or only.
//
// - completed: true or false. Without it, both.
//
// - entry: id of shopping list entry.
func FindPaymentHandler(payments dbpayment.PaymentInterface, scope Scope) echo.HandlerFunc {
	return func(c echo.Context) error {
		owner, err := scope.Owner(c)
		if err != nil {
			return err
		}

		query := domain.PaymentFindQuery{}
		if query.Deleted, err = queryDeleted(c); err != nil {
			return err
		}
		if query.Completed, err = queryBool(c, "completed"); err != nil {
			return err
		}
		if e := c.QueryParam("entry"); e != "" {
			entryId, err := strconv.ParseInt(e, 10, 64)
			if err != nil {
				return apierr.BadRequest(`query "entry" should be an integer`, err)
			}
			query.EntryId = &entryId
		}

		found, err := payments.Find(c.Request().Context(), owner, query)
		if err != nil {
			return toHTTPError(err)
		}
		return c.JSON(http.StatusOK, utils.Map(found, binding.ComposePayment))
	}
}

func CreatePaymentHandler(payments dbpayment.PaymentInterface, scope Scope) echo.HandlerFunc {
	return func(c echo.Context) error {
		param, err := bindJSON[apipayments.Param](c)
		if err != nil {
			return err
		}
		userId, err := scope.Creator(c)
		if err != nil {
			return err
		}
		payment, err := payments.Create(c.Request().Context(), userId, binding.PaymentParam(param))
		if err != nil {
			return toHTTPError(err)
		}
		return c.JSON(http.StatusCreated, binding.ComposePayment(payment))
	}
}

// GetPaymentHandler returns a payment. Query "deleted" works as FindPaymentHandler.
func GetPaymentHandler(payments dbpayment.PaymentInterface, scope Scope, key string) echo.HandlerFunc {
	return func(c echo.Context) error {
		owner, err := scope.Owner(c)
		if err != nil {
			return err
		}
		id, err := pathId(c, key)
		if err != nil {
			return err
		}
		deleted, err := queryDeleted(c)
		if err != nil {
			return err
		}
		payment, err := payments.Get(c.Request().Context(), owner, id, deleted)
		if err != nil {
			return toHTTPError(err)
		}
		return c.JSON(http.StatusOK, binding.ComposePayment(payment))
	}
}

// paymentHandler responses the payment after op.
func paymentHandler(
	scope Scope, key string,
	op func(c echo.Context, owner domain.Owner, id int64) (domain.Payment, error),
) echo.HandlerFunc {
	return func(c echo.Context) error {
		owner, err := scope.Owner(c)
		if err != nil {
			return err
		}
		id, err := pathId(c, key)
		if err != nil {
			return err
		}
		payment, err := op(c, owner, id)
		if err != nil {
			return toHTTPError(err)
		}
		return c.JSON(http.StatusOK, binding.ComposePayment(payment))
	}
}

// CompletePaymentHandler completes a payment, and marks its entry purchased.
func CompletePaymentHandler(payments dbpayment.PaymentInterface, scope Scope, key string) echo.HandlerFunc {
	return paymentHandler(scope, key, func(c echo.Context, owner domain.Owner, id int64) (domain.Payment, error) {
		return payments.Complete(c.Request().Context(), owner, id)
	})
}

// UncompletePaymentHandler reverts completion of a payment, and marks its entry not purchased.
//
// It fails with 409 when the entry has been replaced by another pending entry.
func UncompletePaymentHandler(payments dbpayment.PaymentInterface, scope Scope, key string) echo.HandlerFunc {
	return paymentHandler(scope, key, func(c echo.Context, owner domain.Owner, id int64) (domain.Payment, error) {
		return payments.Uncomplete(c.Request().Context(), owner, id)
	})
}

func RestorePaymentHandler(payments dbpayment.PaymentInterface, scope Scope, key string) echo.HandlerFunc {
	return paymentHandler(scope, key, func(c echo.Context, owner domain.Owner, id int64) (domain.Payment, error) {
		return payments.Restore(c.Request().Context(), owner, id)
	})
}

// DeletePaymentHandler soft-deletes a payment.
func DeletePaymentHandler(payments dbpayment.PaymentInterface, scope Scope, key string) echo.HandlerFunc {
	return func(c echo.Context) error {
		owner, err := scope.Owner(c)
		if err != nil {
			return err
		}
		id, err := pathId(c, key)
		if err != nil {
			return err
		}
		if err := payments.Delete(c.Request().Context(), owner, id); err != nil {
			return toHTTPError(err)
		}
		return c.NoContent(http.StatusNoContent)
	}
}

// PurgePaymentHandler removes a soft-deleted payment permanently.
func PurgePaymentHandler(payments dbpayment.PaymentInterface, scope Scope, key string) echo.HandlerFunc {
	return func(c echo.Context) error {
		owner, err := scope.Owner(c)
		if err != nil {
			return err
		}
		id, err := pathId(c, key)
		if err != nil {
			return err
		}
		if err := payments.Purge(c.Request().Context(), owner, id); err != nil {
			return toHTTPError(err)
		}
		return c.NoContent(http.StatusNoContent)
	}
}

// PurgeExpiredPaymentHandler purges payments soft-deleted before query "before" (RFC3339 date-time).
func PurgeExpiredPaymentHandler(payments dbpayment.PaymentInterface) echo.HandlerFunc {
	return func(c echo.Context) error {
		b := c.QueryParam("before")
		if b == "" {
			return apierr.BadRequest(`query "before" is required`, nil)
		}
		before, err := rfctime.ParseRFC3339DateTime(b)
		if err != nil {
			return apierr.BadRequest(`query "before" should be RFC3339 date-time`, err)
		}

		n, err := payments.PurgeExpired(c.Request().Context(), before.Time())
		if err != nil {
			return toHTTPError(err)
		}
		return c.JSON(http.StatusOK, apipayments.PurgeResult{Purged: n})
	}
}
