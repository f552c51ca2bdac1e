package handlers

import (
	"encoding/json"
	"errors"
	"mime"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	apierr "github.com/opst/mealplanner/pkg/api/types/errors"
	domerr "github.com/opst/mealplanner/pkg/domain/errors"
)

// toHTTPError converts errors from domain into echo.HTTPError.
func toHTTPError(err error) error {
	if err == nil {
		return nil
	}

	var herr *echo.HTTPError
	if errors.As(err, &herr) {
		return herr
	}

	var invalid *domerr.InvalidParam
	switch {
	case errors.As(err, &invalid):
		return apierr.InvalidParam(invalid.Field, invalid.Reason, err)
	case errors.Is(err, domerr.ErrInvalidQuantity):
		return apierr.InvalidParam(
			"quantity",
			`it should be like "2", "1.5", "1/2" or "1 1/2", optionally followed by unit`,
			err,
		)
	case errors.Is(err, domerr.ErrInvalidParam):
		return apierr.BadRequest(err.Error(), err)
	case errors.Is(err, domerr.ErrMissing):
		return apierr.NotFound(apierr.WithError(err))
	case errors.Is(err, domerr.ErrNotDeleted):
		return apierr.Conflict(
			"not deleted",
			apierr.WithAdvice("delete it before purging"),
			apierr.WithError(err),
		)
	case errors.Is(err, domerr.ErrConflict):
		return apierr.Conflict(
			"conflict",
			apierr.WithAdvice(err.Error()),
			apierr.WithError(err),
		)
	case errors.Is(err, domerr.ErrForbidden):
		return apierr.Forbidden(err.Error())
	default:
		return apierr.InternalServerError(err)
	}
}

// pathId reads a path parameter as a record id.
func pathId(c echo.Context, key string) (int64, error) {
	v := c.Param(key)
	id, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, apierr.NotFound()
	}
	return id, nil
}

// queryBool reads a query parameter as *bool. Missing or empty parameter is nil.
func queryBool(c echo.Context, key string) (*bool, error) {
	v := c.QueryParam(key)
	if v == "" {
		return nil, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return nil, apierr.BadRequest(`query "`+key+`" should be true or false`, err)
	}
	return &b, nil
}

// bindJSON decodes the request body of application/json.
func bindJSON[T any](c echo.Context) (T, error) {
	req := c.Request()
	var v T

	mediatype, _, err := mime.ParseMediaType(req.Header.Get(echo.HeaderContentType))
	if err != nil || mediatype != echo.MIMEApplicationJSON {
		return v, apierr.BadRequest(
			"unexpected content type. it should be application/json", err,
		)
	}

	dec := json.NewDecoder(req.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&v); err != nil {
		return v, apierr.NewErrorMessage(
			http.StatusBadRequest,
			"format error",
			apierr.WithAdvice(err.Error()),
			apierr.WithError(err),
		)
	}
	return v, nil
}
