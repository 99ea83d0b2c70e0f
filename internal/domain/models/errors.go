package models

import "errors"

// Domain errors. Callers wrap these with fmt.Errorf("...: %w", ...) context
// and check them with errors.Is.
var (
	// ErrValidation indicates a malformed record or invalid command input.
	ErrValidation = errors.New("validation failed")

	// ErrNotFound indicates the product has no inventory entry.
	ErrNotFound = errors.New("product not found")

	// ErrInsufficientStock indicates a sale exceeds the available stock.
	ErrInsufficientStock = errors.New("insufficient stock")
)
