// Package errors declares the error payload of the API and echo.HTTPError constructors.
//
// Every error response has the shape
//
//	{"message": {"reason": "...", "advice": "...", "field": "..."}}
//
// "advice" and "field" are optional.
package errors

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

type ErrorResponse struct {
	Message ErrorMessage `json:"message"`
}

type ErrorMessage struct {
	Reason string `json:"reason"`
	Advice string `json:"advice,omitempty"`

	// name of the request parameter which is wrong, if any.
	Field string `json:"field,omitempty"`

	Cause error `json:"-"`
}

func (em *ErrorMessage) UnmarshalJSON(bytes []byte) error {
	var f struct {
		Reason *string `json:"reason"`
		Advice string  `json:"advice"`
		Field  string  `json:"field"`
	}
	if err := json.Unmarshal(bytes, &f); err != nil {
		return err
	}
	if f.Reason == nil {
		return fmt.Errorf(`required field missing: "reason"`)
	}

	*em = ErrorMessage{Reason: *f.Reason, Advice: f.Advice, Field: f.Field}
	return nil
}

func (e ErrorMessage) Error() string {
	b := new(strings.Builder)
	b.WriteString(e.Reason)
	if e.Field != "" {
		fmt.Fprintf(b, " (%s)", e.Field)
	}
	if e.Advice != "" {
		b.WriteString(": ")
		b.WriteString(e.Advice)
	}
	if e.Cause != nil {
		b.WriteString("\n caused by: ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

func (e ErrorMessage) Unwrap() error {
	return e.Cause
}

type ErrorMessageOption func(*ErrorMessage)

func WithAdvice(advice string) ErrorMessageOption {
	return func(in *ErrorMessage) {
		if advice != "" {
			in.Advice = advice
		}
	}
}

func WithError(err error) ErrorMessageOption {
	return func(in *ErrorMessage) {
		if err != nil {
			in.Cause = err
		}
	}
}

func WithField(field string) ErrorMessageOption {
	return func(in *ErrorMessage) {
		in.Field = field
	}
}

func NewErrorMessage(code int, reason string, opts ...ErrorMessageOption) *echo.HTTPError {
	msg := ErrorMessage{Reason: reason}
	for _, opt := range opts {
		opt(&msg)
	}
	return echo.NewHTTPError(code, ErrorResponse{Message: msg}).SetInternal(msg)
}

// NotFound is also the answer for records owned by others.
func NotFound(opts ...ErrorMessageOption) *echo.HTTPError {
	return NewErrorMessage(http.StatusNotFound, "not found", opts...)
}

func Unauthorized(advice string, err error) *echo.HTTPError {
	return NewErrorMessage(
		http.StatusUnauthorized, "unauthorized",
		WithAdvice(advice), WithError(err),
	)
}

func Forbidden(advice string) *echo.HTTPError {
	return NewErrorMessage(http.StatusForbidden, "forbidden", WithAdvice(advice))
}

func BadRequest(advice string, err error) *echo.HTTPError {
	return NewErrorMessage(
		http.StatusBadRequest, "bad request",
		WithAdvice(advice), WithError(err),
	)
}

// InvalidParam is BadRequest pointing the wrong parameter.
func InvalidParam(field string, advice string, err error) *echo.HTTPError {
	return NewErrorMessage(
		http.StatusBadRequest, "invalid parameter",
		WithField(field), WithAdvice(advice), WithError(err),
	)
}

func Conflict(reason string, options ...ErrorMessageOption) *echo.HTTPError {
	return NewErrorMessage(http.StatusConflict, reason, options...)
}

func InternalServerError(err error) *echo.HTTPError {
	return NewErrorMessage(http.StatusInternalServerError, "unexpected error", WithError(err))
}
