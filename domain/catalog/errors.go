/*
Package catalog 定义商品目录领域错误。
*/
package catalog

import (
	"errors"

	"podmarket/domain/shared"
)

var (
	ErrDesignInUse = errors.New("design is referenced by existing products")
)

func NewProductNotFoundError(productID string) error {
	return &catalogDomainError{
		sentinel: shared.ErrNotFound,
		entity:   "product",
		message:  "product not found: " + productID,
		stack:    shared.CaptureStack(3),
	}
}

func NewDesignNotFoundError(designID string) error {
	return &catalogDomainError{
		sentinel: shared.ErrNotFound,
		entity:   "design",
		message:  "design not found: " + designID,
		stack:    shared.CaptureStack(3),
	}
}

func NewDesignInUseError(designID string) error {
	return &catalogDomainError{
		sentinel: ErrDesignInUse,
		entity:   "design",
		message:  "design " + designID + " is referenced by existing products",
		stack:    shared.CaptureStack(3),
	}
}

type catalogDomainError struct {
	sentinel error
	entity   string
	field    string
	message  string
	stack    []uintptr
}

func (e *catalogDomainError) Error() string   { return e.message }
func (e *catalogDomainError) Unwrap() error   { return e.sentinel }
func (e *catalogDomainError) Stack() []string { return shared.FormatStack(e.stack) }
