package domain

import (
	"errors"
	"fmt"
)

var (
	ErrItemNotFound     = errors.New("item not found")
	ErrEventNotFound    = errors.New("event not found")
	ErrClientNotFound   = errors.New("client not found")
	ErrInvalidQuantity  = errors.New("invalid quantity")
	ErrInvalidAmount    = errors.New("invalid amount")
	ErrNameRequired     = errors.New("name is required")
	ErrInvalidDateRange = errors.New("invalid date range")
	ErrItemsRequired    = errors.New("at least one line item is required")
	ErrStockConflict    = errors.New("stock update conflict")
	ErrAlreadyFulfilled = errors.New("event already fulfilled")
	ErrDateBlocked      = errors.New("date is blocked")
	ErrDateNotBlocked   = errors.New("date is not blocked")
	ErrClientMismatch   = errors.New("event belongs to another client")
	ErrInvalidID        = errors.New("invalid id")
)

// InsufficientStockError refuses a whole reservation and names the first
// offending item together with the quantity actually available.
type InsufficientStockError struct {
	ItemName  string
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for %s, available: %d", e.ItemName, e.Available)
}

// IsInsufficientStock reports whether err is an InsufficientStockError.
func IsInsufficientStock(err error) bool {
	var target *InsufficientStockError
	return errors.As(err, &target)
}
