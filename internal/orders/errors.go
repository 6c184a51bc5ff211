package orders

import "errors"

var (
	// ErrInsufficientStock is returned when the conditional stock decrement
	// finds fewer units than requested.
	ErrInsufficientStock = errors.New("insufficient stock")

	// ErrOrderNotFound is returned when an order id does not resolve.
	ErrOrderNotFound = errors.New("order not found")

	// ErrInvalidStatus is returned for an unknown status transition target.
	ErrInvalidStatus = errors.New("invalid order status")
)
