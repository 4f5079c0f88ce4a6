package catalog

import (
	"context"

	"podmarket/domain/shared"
)

// ProductRepository 商品仓储接口
// DDD principles:
//  1. One aggregate root per call; related aggregates cross the boundary as
//     DomainId strings only, never as loaded objects
//  2. Every read is a single-table query; FindByIDs is the batch primitive the
//     hydrator builds on (exactly one query regardless of input size)
//  3. Include context.Context to support timeout, cancellation and transaction
type ProductRepository interface {
	// FindByID loads one aggregate root, its own columns only.
	// Returns (nil, nil) when no row matches.
	FindByID(ctx context.Context, id string) (*Product, error)

	// FindByIDs loads many aggregates in exactly one query. Missing ids are
	// simply absent from the result map, not an error.
	FindByIDs(ctx context.Context, ids []string) (map[string]*Product, error)

	// FindPage returns one page of aggregates plus pagination metadata.
	FindPage(ctx context.Context, req shared.PageRequest) (*shared.Page[*Product], error)

	// Create persists a new row and returns the freshly hydrated aggregate
	// with its assigned DomainId.
	Create(ctx context.Context, fields ProductFields) (*Product, error)

	// Update applies a partial update and returns the updated aggregate, or
	// (nil, nil) if no row matched the id.
	Update(ctx context.Context, id string, update ProductUpdate) (*Product, error)

	// Delete removes the row; false means nothing matched.
	Delete(ctx context.Context, id string) (bool, error)
}

// DesignRepository 设计稿仓储接口，契约与 ProductRepository 一致
type DesignRepository interface {
	FindByID(ctx context.Context, id string) (*Design, error)
	FindByIDs(ctx context.Context, ids []string) (map[string]*Design, error)
	FindPage(ctx context.Context, req shared.PageRequest) (*shared.Page[*Design], error)
	Create(ctx context.Context, fields DesignFields) (*Design, error)
	Update(ctx context.Context, id string, update DesignUpdate) (*Design, error)
	Delete(ctx context.Context, id string) (bool, error)
}
