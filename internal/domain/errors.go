package domain

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyCart = errors.New("cart is empty, nothing to checkout")
	ErrNotFound  = errors.New("not found")
)

// InsufficientStockError names the product that could not be covered so the
// caller can surface the specific line, not a generic failure.
type InsufficientStockError struct {
	ProductID string
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for product %s", e.ProductID)
}

type IllegalTransitionError struct {
	From OrderStatus
	To   OrderStatus
}

func (e *IllegalTransitionError) Error() string {
	return fmt.Sprintf("illegal order status transition from %s to %s", e.From, e.To)
}
