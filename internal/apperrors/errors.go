package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrConversionUnavailable indicates that a currency pair is missing from the
// current rate table. Aggregations treat it as "skip this entry", it is never
// surfaced as a request failure.
var ErrConversionUnavailable = errors.New("currency conversion unavailable")

// ErrUpstream indicates that an external collaborator (rate feed, forecasting
// service) failed. Callers log it and keep prior state.
var ErrUpstream = errors.New("upstream failure")

// NewNotFoundError wraps ErrNotFound with a descriptive message.
func NewNotFoundError(msg string) error {
	return fmt.Errorf("%w: %s", ErrNotFound, msg)
}

// NewValidationError wraps ErrValidation with a descriptive message.
func NewValidationError(msg string) error {
	return fmt.Errorf("%w: %s", ErrValidation, msg)
}
