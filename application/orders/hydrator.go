package orders

import (
	"context"

	"podmarket/domain/catalog"
	"podmarket/domain/orders"
	"podmarket/domain/shared"
)

// ProductSummary is the displayable slice of the product an order bought.
type ProductSummary struct {
	ID       string `json:"id"`
	Resolved bool   `json:"resolved"`
	Title    string `json:"title,omitempty"`
	Kind     string `json:"kind,omitempty"`
}

// OrderView is an order plus its resolved product reference.
type OrderView struct {
	Order   *OrderResponse `json:"order"`
	Product ProductSummary `json:"product"`
}

// OrderHydrator resolves product references for a page of orders: one
// deduplicated FindByIDs per page, map held only for this call. Same query
// bound as the catalog hydrator, with a single referenced type.
type OrderHydrator struct {
	products catalog.ProductRepository
}

func NewOrderHydrator(products catalog.ProductRepository) *OrderHydrator {
	return &OrderHydrator{products: products}
}

func (h *OrderHydrator) Hydrate(ctx context.Context, items []*orders.Order) ([]OrderView, error) {
	ids := make([]string, 0, len(items))
	seen := make(map[string]struct{}, len(items))
	for _, o := range items {
		if _, dup := seen[o.ProductID()]; dup {
			continue
		}
		seen[o.ProductID()] = struct{}{}
		ids = append(ids, o.ProductID())
	}

	productMap := map[string]*catalog.Product{}
	if len(ids) > 0 {
		var err error
		productMap, err = h.products.FindByIDs(ctx, ids)
		if err != nil {
			return nil, err
		}
	}

	views := make([]OrderView, 0, len(items))
	for _, o := range items {
		summary := ProductSummary{ID: o.ProductID()}
		if p, ok := productMap[o.ProductID()]; ok {
			summary = ProductSummary{ID: p.ID(), Resolved: true, Title: p.Title(), Kind: string(p.Kind())}
		}
		views = append(views, OrderView{Order: toOrderResponse(o), Product: summary})
	}
	return views, nil
}

func (h *OrderHydrator) HydratePage(ctx context.Context, page *shared.Page[*orders.Order]) (*shared.Page[OrderView], error) {
	views, err := h.Hydrate(ctx, page.Items)
	if err != nil {
		return nil, err
	}
	return &shared.Page[OrderView]{
		Items:      views,
		Page:       page.Page,
		PageSize:   page.PageSize,
		TotalItems: page.TotalItems,
		TotalPages: page.TotalPages,
	}, nil
}
