package service

import (
	"errors"
	"fmt"
)

// Common service errors. Store sentinels (store.ErrWidgetNotFound,
// store.ErrWidgetNameExists, store.ErrEmailExists) are passed through wrapped,
// so callers match them with errors.Is.
var (
	// ErrNilDependency is returned by constructors given a nil collaborator.
	ErrNilDependency = errors.New("required dependency is nil")
)

// ServiceError wraps an unexpected failure with the operation that hit it.
type ServiceError struct {
	Service   string
	Operation string
	Err       error
}

// Error implements the error interface for ServiceError.
func (e *ServiceError) Error() string {
	return fmt.Sprintf("%s service %s failed: %v", e.Service, e.Operation, e.Err)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ServiceError) Unwrap() error {
	return e.Err
}

func newServiceError(service, operation string, err error) *ServiceError {
	return &ServiceError{Service: service, Operation: operation, Err: err}
}
