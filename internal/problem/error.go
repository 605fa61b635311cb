package problem

import (
	"errors"
	"fmt"
	"net/http"
)

// Error carries a Problem up the call chain to the response boundary.
type Error struct {
	Problem *Problem
	// Err is the underlying cause, if any. It is logged, never sent.
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%d %s: %v", e.Problem.StatusCode(), e.Problem.Type(), e.Err)
	}
	return fmt.Sprintf("%d %s", e.Problem.StatusCode(), e.Problem.Type())
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// Wrap returns an error carrying p with cause err.
func Wrap(p *Problem, err error) *Error {
	return &Error{Problem: p, Err: err}
}

// From extracts the Problem carried by err, if any.
func From(err error) (*Problem, bool) {
	var pe *Error
	if errors.As(err, &pe) {
		return pe.Problem, true
	}
	return nil, false
}

// NotFound returns a 404 about:blank problem error with a detail message.
func NotFound(detail string) *Error {
	p := MustNew(http.StatusNotFound, "")
	p.Set("detail", detail)
	return &Error{Problem: p}
}

// InvalidBodyFormat returns a 400 invalid_body_format problem error.
func InvalidBodyFormat(cause error) *Error {
	return &Error{Problem: MustNew(http.StatusBadRequest, TypeInvalidBodyFormat), Err: cause}
}

// ValidationFailed returns a 400 validation_error problem error with the
// given error tree under "errors".
func ValidationFailed(errs any) *Error {
	p := MustNew(http.StatusBadRequest, TypeValidationError)
	p.Set("errors", errs)
	return &Error{Problem: p}
}

// Status returns a problem error with the given status and about:blank type.
func Status(status int, cause error) *Error {
	return &Error{Problem: MustNew(status, ""), Err: cause}
}
