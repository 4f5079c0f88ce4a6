/*
Package orders 定义订单领域错误。
*/
package orders

import (
	"errors"
	"fmt"

	"podmarket/domain/shared"
)

var (
	ErrInvalidTransition  = errors.New("invalid order status transition")
	ErrProductUnavailable = errors.New("product is not available for purchase")
)

func NewOrderNotFoundError(orderID string) error {
	return &orderDomainError{
		sentinel: shared.ErrNotFound,
		entity:   "order",
		message:  "order not found: " + orderID,
		stack:    shared.CaptureStack(3),
	}
}

func NewInvalidTransitionError(orderID string, from, to OrderStatus) error {
	return &orderDomainError{
		sentinel: ErrInvalidTransition,
		entity:   "order",
		field:    "status",
		message:  fmt.Sprintf("order %s cannot move from %s to %s", orderID, from, to),
		stack:    shared.CaptureStack(3),
	}
}

func NewProductUnavailableError(productID string) error {
	return &orderDomainError{
		sentinel: ErrProductUnavailable,
		entity:   "order",
		field:    "product_id",
		message:  "product " + productID + " is not available for purchase",
		stack:    shared.CaptureStack(3),
	}
}

type orderDomainError struct {
	sentinel error
	entity   string
	field    string
	message  string
	stack    []uintptr
}

func (e *orderDomainError) Error() string   { return e.message }
func (e *orderDomainError) Unwrap() error   { return e.sentinel }
func (e *orderDomainError) Stack() []string { return shared.FormatStack(e.stack) }
