package services

import (
	"errors"
	"fmt"
)

// Sentinel errors shared across services. Controllers translate these into
// HTTP status codes; services never log-and-swallow them.
var (
	ErrCategoryNotFound = errors.New("category not found")
	ErrCategoryInUse    = errors.New("category still has products")
	ErrProductNotFound  = errors.New("product not found")
	ErrOrderNotFound    = errors.New("order not found")
	ErrInvalidStatus    = errors.New("invalid order status")

	// ErrOrderNumberExhausted is returned when every attempt at generating a
	// unique order number collided. It is internal: the retry loop makes it
	// effectively unreachable unless the number space is nearly full.
	ErrOrderNumberExhausted = errors.New("could not generate a unique order number")
)

// ProductNotFoundError identifies the offending line item of an order request.
type ProductNotFoundError struct {
	ProductID uint
}

func (e *ProductNotFoundError) Error() string {
	return fmt.Sprintf("product %d not found", e.ProductID)
}

// ProductUnavailableError is returned when an order references a product
// whose Available flag is off.
type ProductUnavailableError struct {
	ProductID   uint
	ProductName string
}

func (e *ProductUnavailableError) Error() string {
	return fmt.Sprintf("product %d (%s) is not available", e.ProductID, e.ProductName)
}
