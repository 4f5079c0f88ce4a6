/*
Package shops 定义店铺领域错误。
*/
package shops

import (
	"errors"

	"podmarket/domain/shared"
)

var (
	ErrSlugTaken  = errors.New("shop slug already exists")
	ErrShopClosed = errors.New("shop is not active")
)

func NewShopNotFoundError(shopID string) error {
	return &shopDomainError{
		sentinel: shared.ErrNotFound,
		entity:   "shop",
		message:  "shop not found: " + shopID,
		stack:    shared.CaptureStack(3),
	}
}

func NewSlugTakenError(slug string) error {
	return &shopDomainError{
		sentinel: ErrSlugTaken,
		entity:   "shop",
		field:    "slug",
		message:  "shop slug already exists: " + slug,
		stack:    shared.CaptureStack(3),
	}
}

func NewShopClosedError(shopID string) error {
	return &shopDomainError{
		sentinel: ErrShopClosed,
		entity:   "shop",
		message:  "shop " + shopID + " is not active",
		stack:    shared.CaptureStack(3),
	}
}

type shopDomainError struct {
	sentinel error
	entity   string
	field    string
	message  string
	stack    []uintptr
}

func (e *shopDomainError) Error() string   { return e.message }
func (e *shopDomainError) Unwrap() error   { return e.sentinel }
func (e *shopDomainError) Stack() []string { return shared.FormatStack(e.stack) }
