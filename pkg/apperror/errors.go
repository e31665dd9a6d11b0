// Package apperror defines the error kinds surfaced by the notification engine.
//
// Callers branch on kind with errors.As rather than on message text.
package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// ValidationError reports malformed or missing input. Never retried.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// NewValidation creates a ValidationError for field.
func NewValidation(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// DataUnavailableError reports that no quote could be produced for a symbol.
type DataUnavailableError struct {
	Symbol string
	Cause  error
}

func (e *DataUnavailableError) Error() string {
	if e.Cause == nil {
		return fmt.Sprintf("market data unavailable for %s", e.Symbol)
	}
	return fmt.Sprintf("market data unavailable for %s: %v", e.Symbol, e.Cause)
}

func (e *DataUnavailableError) Unwrap() error { return e.Cause }

// NewDataUnavailable creates a DataUnavailableError.
func NewDataUnavailable(symbol string, cause error) error {
	return &DataUnavailableError{Symbol: symbol, Cause: cause}
}

// DeliveryError reports that a single device failed to receive a notification.
type DeliveryError struct {
	Token string
	Cause error
}

func (e *DeliveryError) Error() string {
	return fmt.Sprintf("delivery to %s failed: %v", e.Token, e.Cause)
}

func (e *DeliveryError) Unwrap() error { return e.Cause }

// IsValidation reports whether err is, or wraps, a ValidationError.
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

// IsDataUnavailable reports whether err is, or wraps, a DataUnavailableError.
func IsDataUnavailable(err error) bool {
	var d *DataUnavailableError
	return errors.As(err, &d)
}

// StatusCode maps an error kind to the HTTP status the request surface returns.
func StatusCode(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case IsValidation(err):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
