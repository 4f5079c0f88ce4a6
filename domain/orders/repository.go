package orders

import (
	"context"

	"podmarket/domain/shared"
)

// Repository 订单仓储接口
type Repository interface {
	FindByID(ctx context.Context, id string) (*Order, error)
	FindByIDs(ctx context.Context, ids []string) (map[string]*Order, error)
	FindPage(ctx context.Context, req shared.PageRequest) (*shared.Page[*Order], error)
	Create(ctx context.Context, fields OrderFields) (*Order, error)
	Update(ctx context.Context, id string, update OrderUpdate) (*Order, error)
	Delete(ctx context.Context, id string) (bool, error)
}
