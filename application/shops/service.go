package shops

import (
	"context"
	"time"

	"podmarket/domain/shared"
	"podmarket/domain/shops"
)

// Service Shop use cases.
type Service struct {
	shops shops.Repository
	bus   *shared.EventBus
}

func NewService(shopRepo shops.Repository, bus *shared.EventBus) *Service {
	return &Service{shops: shopRepo, bus: bus}
}

type CreateShopRequest struct {
	Name       string `json:"name" binding:"required"`
	Slug       string `json:"slug" binding:"required"`
	OwnerEmail string `json:"owner_email" binding:"required,email"`
}

type ShopResponse struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Slug         string    `json:"slug"`
	OwnerEmail   string    `json:"owner_email"`
	Active       bool      `json:"active"`
	ProductCount int64     `json:"product_count"`
	SalesCount   int64     `json:"sales_count"`
	SalesCents   int64     `json:"sales_cents"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// CreateShop 创建店铺用例：先提交、后发布
func (s *Service) CreateShop(ctx context.Context, req CreateShopRequest) (*ShopResponse, error) {
	fields := shops.ShopFields{
		Name:       req.Name,
		Slug:       req.Slug,
		OwnerEmail: req.OwnerEmail,
	}
	if err := fields.Validate(); err != nil {
		return nil, err
	}
	shop, err := s.shops.Create(ctx, fields)
	if err != nil {
		return nil, err
	}
	if err := s.bus.Publish(ctx, shops.NewShopCreatedEvent(shop)); err != nil {
		return nil, err
	}
	return toShopResponse(shop), nil
}

func (s *Service) GetShop(ctx context.Context, shopID string) (*ShopResponse, error) {
	shop, err := s.shops.FindByID(ctx, shopID)
	if err != nil {
		return nil, err
	}
	if shop == nil {
		return nil, shops.NewShopNotFoundError(shopID)
	}
	return toShopResponse(shop), nil
}

// GetShopBySlug 店面 URL 查询
func (s *Service) GetShopBySlug(ctx context.Context, slug string) (*ShopResponse, error) {
	shop, err := s.shops.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if shop == nil {
		return nil, shared.NewNotFoundError("shop")
	}
	return toShopResponse(shop), nil
}

func (s *Service) ListShops(ctx context.Context, req shared.PageRequest) (*shared.Page[*ShopResponse], error) {
	page, err := s.shops.FindPage(ctx, req)
	if err != nil {
		return nil, err
	}
	items := make([]*ShopResponse, 0, len(page.Items))
	for _, shop := range page.Items {
		items = append(items, toShopResponse(shop))
	}
	return &shared.Page[*ShopResponse]{
		Items:      items,
		Page:       page.Page,
		PageSize:   page.PageSize,
		TotalItems: page.TotalItems,
		TotalPages: page.TotalPages,
	}, nil
}

type UpdateShopRequest struct {
	Name   *string `json:"name"`
	Active *bool   `json:"active"`
}

func (s *Service) UpdateShop(ctx context.Context, shopID string, req UpdateShopRequest) (*ShopResponse, error) {
	update := shops.ShopUpdate{Name: req.Name, Active: req.Active}
	if err := update.Validate(); err != nil {
		return nil, err
	}
	shop, err := s.shops.Update(ctx, shopID, update)
	if err != nil {
		return nil, err
	}
	if shop == nil {
		return nil, shops.NewShopNotFoundError(shopID)
	}
	return toShopResponse(shop), nil
}

func (s *Service) DeleteShop(ctx context.Context, shopID string) error {
	removed, err := s.shops.Delete(ctx, shopID)
	if err != nil {
		return err
	}
	if !removed {
		return shops.NewShopNotFoundError(shopID)
	}
	return nil
}

func toShopResponse(shop *shops.Shop) *ShopResponse {
	return &ShopResponse{
		ID:           shop.ID(),
		Name:         shop.Name(),
		Slug:         shop.Slug(),
		OwnerEmail:   shop.OwnerEmail(),
		Active:       shop.Active(),
		ProductCount: shop.ProductCount(),
		SalesCount:   shop.SalesCount(),
		SalesCents:   shop.SalesCents(),
		CreatedAt:    shop.CreatedAt(),
		UpdatedAt:    shop.UpdatedAt(),
	}
}
