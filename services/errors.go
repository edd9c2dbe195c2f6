package services

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyCart rejects a checkout with nothing in the cart.
	ErrEmptyCart = errors.New("cart is empty, cannot create order")

	// ErrInconsistentCart means a cart line references a product that no
	// longer exists. Surfaced to the caller, never retried automatically.
	ErrInconsistentCart = errors.New("cart references an unknown product")

	// ErrPaymentDeclined is a business rejection from the payment service
	// (typically insufficient balance). Surfaced verbatim, never retried.
	ErrPaymentDeclined = errors.New("payment declined")

	// ErrPaymentServiceUnavailable is a transient connectivity failure to
	// the payment service, distinct from a decline so callers may retry.
	ErrPaymentServiceUnavailable = errors.New("payment service is unavailable")

	// ErrLineNotFound means the cart has no line for the given product.
	ErrLineNotFound = errors.New("cart line not found")

	// ErrEmailTaken rejects a registration for an existing email.
	ErrEmailTaken = errors.New("email already registered")

	// ErrInvalidCredentials rejects a login with a wrong email or password.
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// PersistenceError is the most severe checkout outcome: payment has been
// captured but the order write set failed and rolled back, so funds moved
// with no corresponding order. It is logged for reconciliation at the point
// it is raised; no automatic refund is attempted.
type PersistenceError struct {
	UserID int64
	Amount int64
	Err    error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("order persistence failed after payment capture for user %d (amount %d): %v", e.UserID, e.Amount, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// OrderNotFoundError reports a lookup of a non-existent order id.
type OrderNotFoundError struct {
	ID int64
}

func (e *OrderNotFoundError) Error() string {
	return fmt.Sprintf("Order not found with id: %d", e.ID)
}

// ProductNotFoundError reports a lookup of a non-existent product id.
type ProductNotFoundError struct {
	ID int64
}

func (e *ProductNotFoundError) Error() string {
	return fmt.Sprintf("Product not found with id: %d", e.ID)
}
