package catalog

import (
	"context"

	"podmarket/domain/catalog"
	"podmarket/domain/shared"
	"podmarket/domain/shops"
)

// DesignSummary is the displayable slice of a referenced design. Resolved is
// false when the referenced id had no backing row; the id is still reported
// so the caller can render an explicit placeholder instead of fabricating
// data or crashing on a nil.
type DesignSummary struct {
	ID        string `json:"id"`
	Resolved  bool   `json:"resolved"`
	Title     string `json:"title,omitempty"`
	ObjectKey string `json:"object_key,omitempty"`
}

// ShopSummary is the displayable slice of a referenced shop.
type ShopSummary struct {
	ID       string `json:"id"`
	Resolved bool   `json:"resolved"`
	Name     string `json:"name,omitempty"`
	Slug     string `json:"slug,omitempty"`
}

// ProductView is a product plus its resolved references, keyed by the
// product's own DomainId for the response-shaping layer.
type ProductView struct {
	Product *ProductResponse `json:"product"`
	Design  DesignSummary    `json:"design"`
	Shop    ShopSummary      `json:"shop"`
}

// ProductHydrator resolves the design and shop references of a page of
// products in a bounded number of queries.
//
// 查询上界：1（商品页本身）+ 出现了非空引用的关联类型数。
// 对一页 24 个商品（引用 design 和 shop 两类）总计 3 条查询，与页大小无关；
// 逐条解析则是 1 + 2×24 = 49 条。这是仓储 FindByIDs 契约存在的全部意义。
//
// id→聚合 的映射只活在一次 Hydrate 调用里，绝不跨请求保留：
// 跨请求的进程级缓存会把一个请求看到的聚合状态泄漏给下一个请求。
type ProductHydrator struct {
	designs catalog.DesignRepository
	shops   shops.Repository
}

func NewProductHydrator(designs catalog.DesignRepository, shopRepo shops.Repository) *ProductHydrator {
	return &ProductHydrator{designs: designs, shops: shopRepo}
}

// Hydrate resolves references for the whole input slice. Output order matches
// input order.
func (h *ProductHydrator) Hydrate(ctx context.Context, products []*catalog.Product) ([]ProductView, error) {
	designIDs := distinctIDs(products, (*catalog.Product).DesignID)
	shopIDs := distinctIDs(products, (*catalog.Product).ShopID)

	// 每个被引用类型至多一条 FindByIDs 查询；空集合连这一条都省掉
	designMap := map[string]*catalog.Design{}
	if len(designIDs) > 0 {
		var err error
		designMap, err = h.designs.FindByIDs(ctx, designIDs)
		if err != nil {
			return nil, err
		}
	}
	shopMap := map[string]*shops.Shop{}
	if len(shopIDs) > 0 {
		var err error
		shopMap, err = h.shops.FindByIDs(ctx, shopIDs)
		if err != nil {
			return nil, err
		}
	}

	views := make([]ProductView, 0, len(products))
	for _, p := range products {
		views = append(views, ProductView{
			Product: toProductResponse(p),
			Design:  summarizeDesign(p.DesignID(), designMap),
			Shop:    summarizeShop(p.ShopID(), shopMap),
		})
	}
	return views, nil
}

// HydratePage is the page-shaped convenience used by list endpoints.
func (h *ProductHydrator) HydratePage(ctx context.Context, page *shared.Page[*catalog.Product]) (*shared.Page[ProductView], error) {
	views, err := h.Hydrate(ctx, page.Items)
	if err != nil {
		return nil, err
	}
	return &shared.Page[ProductView]{
		Items:      views,
		Page:       page.Page,
		PageSize:   page.PageSize,
		TotalItems: page.TotalItems,
		TotalPages: page.TotalPages,
	}, nil
}

func summarizeDesign(id string, m map[string]*catalog.Design) DesignSummary {
	d, ok := m[id]
	if !ok {
		return DesignSummary{ID: id}
	}
	return DesignSummary{ID: d.ID(), Resolved: true, Title: d.Title(), ObjectKey: d.ObjectKey()}
}

func summarizeShop(id string, m map[string]*shops.Shop) ShopSummary {
	s, ok := m[id]
	if !ok {
		return ShopSummary{ID: id}
	}
	return ShopSummary{ID: s.ID(), Resolved: true, Name: s.Name(), Slug: s.Slug()}
}

// distinctIDs collects the deduplicated non-empty foreign ids of one
// referenced type across the whole input, preserving first-seen order.
func distinctIDs[T any](items []T, ref func(T) string) []string {
	seen := make(map[string]struct{}, len(items))
	out := make([]string, 0, len(items))
	for _, it := range items {
		id := ref(it)
		if id == "" {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
