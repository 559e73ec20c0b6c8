// Package errors provides custom error types for domain-specific errors.
package errors

import (
	"errors"
	"fmt"
)

// Standard sentinel errors
var (
	// ErrDataUnavailable means the market-data provider failed; the CLI
	// offers the manual-entry path instead of aborting.
	ErrDataUnavailable = errors.New("market data unavailable")
	// ErrEmptyStrikeSet means a chain had no strikes to select from.
	ErrEmptyStrikeSet = errors.New("no strikes available")
	// ErrComputationUndefined means Greeks were requested with zero or
	// negative time-to-expiry or volatility.
	ErrComputationUndefined = errors.New("computation undefined for degenerate inputs")
	// ErrUnpricedLeg marks a leg whose premium resolved to 0. It is
	// warning-grade: analysis proceeds but results are low-confidence.
	ErrUnpricedLeg = errors.New("leg is unpriced or illiquid")
	// ErrSlotNotFound means a named position slot does not exist.
	ErrSlotNotFound = errors.New("position slot not found")
	// ErrInputValidation means analysis inputs failed validation.
	ErrInputValidation = errors.New("input validation failed")
	// ErrConfigInvalid means the configuration failed validation.
	ErrConfigInvalid = errors.New("invalid configuration")
	// ErrDatabaseError wraps failures of the slot store.
	ErrDatabaseError = errors.New("database error")
)

// DataError represents a market-data retrieval error.
type DataError struct {
	DataType string
	Symbol   string
	Message  string
	Err      error
}

func (e *DataError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("data error [%s] %s: %s: %v", e.DataType, e.Symbol, e.Message, e.Err)
	}
	return fmt.Sprintf("data error [%s] %s: %s", e.DataType, e.Symbol, e.Message)
}

func (e *DataError) Unwrap() error {
	return e.Err
}

// Is marks every DataError as ErrDataUnavailable so callers can test the
// category while Unwrap keeps the underlying cause reachable.
func (e *DataError) Is(target error) bool {
	return target == ErrDataUnavailable
}

// NewDataError creates a new DataError.
func NewDataError(dataType, symbol, message string, err error) *DataError {
	return &DataError{
		DataType: dataType,
		Symbol:   symbol,
		Message:  message,
		Err:      err,
	}
}

// ValidationError represents a validation error.
type ValidationError struct {
	Field   string
	Value   interface{}
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error: %s (%v): %s", e.Field, e.Value, e.Message)
}

func (e *ValidationError) Unwrap() error {
	return ErrInputValidation
}

// NewValidationError creates a new ValidationError.
func NewValidationError(field string, value interface{}, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Value:   value,
		Message: message,
	}
}

// Wrap wraps an error with additional context.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf wraps an error with formatted context.
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
