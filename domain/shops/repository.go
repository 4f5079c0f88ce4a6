package shops

import (
	"context"

	"podmarket/domain/shared"
)

// Repository 店铺仓储接口，契约与 catalog 仓储一致：
// 单表查询、批量读取走 FindByIDs、跨聚合引用只传 DomainId。
type Repository interface {
	FindByID(ctx context.Context, id string) (*Shop, error)
	FindByIDs(ctx context.Context, ids []string) (map[string]*Shop, error)
	FindPage(ctx context.Context, req shared.PageRequest) (*shared.Page[*Shop], error)

	// FindBySlug serves the storefront URL lookup; slug is unique.
	// Returns (nil, nil) when no shop has the slug.
	FindBySlug(ctx context.Context, slug string) (*Shop, error)

	Create(ctx context.Context, fields ShopFields) (*Shop, error)
	Update(ctx context.Context, id string, update ShopUpdate) (*Shop, error)
	Delete(ctx context.Context, id string) (bool, error)
}

// StatsRepository maintains the shop read-model counters and the idempotency
// ledger for deferred event handlers. It is deliberately separate from
// Repository: counters are written by event handlers on the worker, never by
// request-path use cases.
//
// Each mutation records (eventID, handlerName) in the ledger and applies the
// counter change as one atomic unit. A pair already in the ledger means the
// envelope is a re-delivery: nothing is written and (false, nil) comes back.
// When the counter write fails the ledger entry rolls back with it, so the
// queue retries the whole effect instead of losing it.
type StatsRepository interface {
	// AdjustProductCount adds delta to the shop's listed-product counter.
	AdjustProductCount(ctx context.Context, eventID, handlerName, shopID string, delta int64) (bool, error)

	// AddSale adds one completed order to the shop's sales totals.
	AddSale(ctx context.Context, eventID, handlerName, shopID string, totalCents int64) (bool, error)
}
