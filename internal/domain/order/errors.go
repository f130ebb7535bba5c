// internal/domain/order/errors.go
package order

import (
	"errors"
	"strings"
)

// ErrUnknownItem is returned when a cart operation references an item id
// that does not resolve against the catalog or is not available
var ErrUnknownItem = errors.New("order: unknown or unavailable item")

// ValidationCode identifies a submit-time validation failure
type ValidationCode string

const (
	CodeEmptyCart         ValidationCode = "empty_cart"
	CodeMissingAddress    ValidationCode = "missing_address"
	CodeInvalidPhone      ValidationCode = "invalid_phone"
	CodeMissingPickupTime ValidationCode = "missing_pickup_time"
)

// ValidationError is a single user-recoverable submit validation failure
type ValidationError struct {
	Code    ValidationCode `json:"code"`
	Message string         `json:"message"`
}

// Error implements the error interface
func (e ValidationError) Error() string {
	return string(e.Code) + ": " + e.Message
}

// ValidationErrors collects every violated rule so callers can surface
// all of them at once
type ValidationErrors []ValidationError

// Error implements the error interface
func (e ValidationErrors) Error() string {
	msgs := make([]string, len(e))
	for i, ve := range e {
		msgs[i] = ve.Message
	}
	return "order validation failed: " + strings.Join(msgs, "; ")
}
