package catalog

import (
	"context"
	"time"

	"podmarket/domain/catalog"
	"podmarket/domain/shared"
	"podmarket/domain/shops"
)

// ProductService User-facing use cases of the catalog context.
// DDD principle: the application service orchestrates repository calls and
// event publication for one business operation; it owns no business rules
// beyond sequencing.
type ProductService struct {
	products catalog.ProductRepository
	designs  catalog.DesignRepository
	shops    shops.Repository
	bus      *shared.EventBus
	hydrator *ProductHydrator
}

func NewProductService(
	products catalog.ProductRepository,
	designs catalog.DesignRepository,
	shopRepo shops.Repository,
	bus *shared.EventBus,
) *ProductService {
	return &ProductService{
		products: products,
		designs:  designs,
		shops:    shopRepo,
		bus:      bus,
		hydrator: NewProductHydrator(designs, shopRepo),
	}
}

// CreateProductRequest Create product request DTO
type CreateProductRequest struct {
	ShopID     string `json:"shop_id" binding:"required"`
	DesignID   string `json:"design_id" binding:"required"`
	Title      string `json:"title" binding:"required"`
	Kind       string `json:"kind" binding:"required"`
	PriceCents int64  `json:"price_cents" binding:"required,min=1"`
	Currency   string `json:"currency" binding:"required,len=3"`
	Published  bool   `json:"published"`
}

// ProductResponse Product response DTO
type ProductResponse struct {
	ID         string    `json:"id"`
	ShopID     string    `json:"shop_id"`
	DesignID   string    `json:"design_id"`
	Title      string    `json:"title"`
	Kind       string    `json:"kind"`
	PriceCents int64     `json:"price_cents"`
	Currency   string    `json:"currency"`
	Published  bool      `json:"published"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// CreateProduct 创建商品用例
//
// 顺序是契约的一部分：仓储 Create 在单个存储事务内提交；事件在提交成功后
// 才发布（先提交、后发布）。Create 失败则事件绝不发布——
// 任何事件都不允许描述一个没有持久化成功的状态。
func (s *ProductService) CreateProduct(ctx context.Context, req CreateProductRequest) (*ProductResponse, error) {
	fields := catalog.ProductFields{
		ShopID:     req.ShopID,
		DesignID:   req.DesignID,
		Title:      req.Title,
		Kind:       catalog.ProductKind(req.Kind),
		PriceCents: req.PriceCents,
		Currency:   req.Currency,
		Published:  req.Published,
	}
	if err := fields.Validate(); err != nil {
		return nil, err
	}

	// 被引用的聚合必须存在；引用只以 DomainId 传递
	shop, err := s.shops.FindByID(ctx, fields.ShopID)
	if err != nil {
		return nil, err
	}
	if shop == nil {
		return nil, shops.NewShopNotFoundError(fields.ShopID)
	}
	if !shop.Active() {
		return nil, shops.NewShopClosedError(shop.ID())
	}
	design, err := s.designs.FindByID(ctx, fields.DesignID)
	if err != nil {
		return nil, err
	}
	if design == nil {
		return nil, catalog.NewDesignNotFoundError(fields.DesignID)
	}
	if design.ShopID() != shop.ID() {
		return nil, shared.NewValidationError("product", "design_id", "design belongs to a different shop")
	}

	p, err := s.products.Create(ctx, fields)
	if err != nil {
		return nil, err
	}

	if err := s.bus.Publish(ctx, catalog.NewProductCreatedEvent(p)); err != nil {
		// 商品已提交；同步处理器失败按设计上浮给调用方
		return nil, err
	}
	return toProductResponse(p), nil
}

// GetProduct 查询单个商品（含引用解析）
func (s *ProductService) GetProduct(ctx context.Context, productID string) (*ProductView, error) {
	p, err := s.products.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, catalog.NewProductNotFoundError(productID)
	}
	views, err := s.hydrator.Hydrate(ctx, []*catalog.Product{p})
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

// ListProducts 分页查询商品，批量解析 design/shop 引用
func (s *ProductService) ListProducts(ctx context.Context, req shared.PageRequest) (*shared.Page[ProductView], error) {
	page, err := s.products.FindPage(ctx, req)
	if err != nil {
		return nil, err
	}
	return s.hydrator.HydratePage(ctx, page)
}

// UpdateProductRequest Update product request DTO (partial)
type UpdateProductRequest struct {
	Title      *string `json:"title"`
	PriceCents *int64  `json:"price_cents"`
	Currency   *string `json:"currency"`
	Published  *bool   `json:"published"`
}

// UpdateProduct 更新商品用例
func (s *ProductService) UpdateProduct(ctx context.Context, productID string, req UpdateProductRequest) (*ProductResponse, error) {
	update := catalog.ProductUpdate{
		Title:      req.Title,
		PriceCents: req.PriceCents,
		Currency:   req.Currency,
		Published:  req.Published,
	}
	if err := update.Validate(); err != nil {
		return nil, err
	}
	p, err := s.products.Update(ctx, productID, update)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, catalog.NewProductNotFoundError(productID)
	}
	return toProductResponse(p), nil
}

// DeleteProduct 删除商品用例，成功后发布删除事件
func (s *ProductService) DeleteProduct(ctx context.Context, productID string) error {
	p, err := s.products.FindByID(ctx, productID)
	if err != nil {
		return err
	}
	if p == nil {
		return catalog.NewProductNotFoundError(productID)
	}
	removed, err := s.products.Delete(ctx, productID)
	if err != nil {
		return err
	}
	if !removed {
		// 并发删除：行在 FindByID 和 Delete 之间消失，视为已完成
		return nil
	}
	return s.bus.Publish(ctx, catalog.NewProductDeletedEvent(p.ID(), p.ShopID()))
}

func toProductResponse(p *catalog.Product) *ProductResponse {
	return &ProductResponse{
		ID:         p.ID(),
		ShopID:     p.ShopID(),
		DesignID:   p.DesignID(),
		Title:      p.Title(),
		Kind:       string(p.Kind()),
		PriceCents: p.PriceCents(),
		Currency:   p.Currency(),
		Published:  p.Published(),
		CreatedAt:  p.CreatedAt(),
		UpdatedAt:  p.UpdatedAt(),
	}
}
