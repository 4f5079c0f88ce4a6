package orders

import (
	"context"
	"time"

	"podmarket/domain/catalog"
	"podmarket/domain/orders"
	"podmarket/domain/shared"
)

// Service Order use cases. Placing an order reads the product once to
// snapshot its price and to learn the shop id carried on the placed event.
type Service struct {
	orders   orders.Repository
	products catalog.ProductRepository
	bus      *shared.EventBus
	hydrator *OrderHydrator
}

func NewService(orderRepo orders.Repository, products catalog.ProductRepository, bus *shared.EventBus) *Service {
	return &Service{
		orders:   orderRepo,
		products: products,
		bus:      bus,
		hydrator: NewOrderHydrator(products),
	}
}

type PlaceOrderRequest struct {
	ProductID  string `json:"product_id" binding:"required"`
	BuyerEmail string `json:"buyer_email" binding:"required,email"`
	Quantity   int    `json:"quantity" binding:"required,min=1"`
}

type OrderResponse struct {
	ID             string    `json:"id"`
	ProductID      string    `json:"product_id"`
	BuyerEmail     string    `json:"buyer_email"`
	Quantity       int       `json:"quantity"`
	UnitPriceCents int64     `json:"unit_price_cents"`
	TotalCents     int64     `json:"total_cents"`
	Currency       string    `json:"currency"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// PlaceOrder 下单用例
//
// 价格从商品快照到订单上；事件载荷额外携带 shop_id（反规范化），
// 让 shops 上下文的销量处理器不必回查 catalog。
// 顺序契约同 CreateProduct：仓储提交成功后才发布事件。
func (s *Service) PlaceOrder(ctx context.Context, req PlaceOrderRequest) (*OrderResponse, error) {
	product, err := s.products.FindByID(ctx, req.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, catalog.NewProductNotFoundError(req.ProductID)
	}
	if !product.Published() {
		return nil, orders.NewProductUnavailableError(product.ID())
	}

	fields := orders.OrderFields{
		ProductID:      product.ID(),
		BuyerEmail:     req.BuyerEmail,
		Quantity:       req.Quantity,
		UnitPriceCents: product.PriceCents(),
		Currency:       product.Currency(),
		Status:         orders.StatusNew,
	}
	if err := fields.Validate(); err != nil {
		return nil, err
	}

	order, err := s.orders.Create(ctx, fields)
	if err != nil {
		return nil, err
	}

	if err := s.bus.Publish(ctx, orders.NewOrderPlacedEvent(order, product.ShopID())); err != nil {
		return nil, err
	}
	return toOrderResponse(order), nil
}

func (s *Service) GetOrder(ctx context.Context, orderID string) (*OrderView, error) {
	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, orders.NewOrderNotFoundError(orderID)
	}
	views, err := s.hydrator.Hydrate(ctx, []*orders.Order{order})
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

func (s *Service) ListOrders(ctx context.Context, req shared.PageRequest) (*shared.Page[OrderView], error) {
	page, err := s.orders.FindPage(ctx, req)
	if err != nil {
		return nil, err
	}
	return s.hydrator.HydratePage(ctx, page)
}

// PayOrder NEW→PAID 状态迁移
func (s *Service) PayOrder(ctx context.Context, orderID string) (*OrderResponse, error) {
	return s.transition(ctx, orderID, orders.StatusPaid)
}

// CancelOrder NEW→CANCELLED 状态迁移，成功后发布取消事件
func (s *Service) CancelOrder(ctx context.Context, orderID string) (*OrderResponse, error) {
	resp, err := s.transition(ctx, orderID, orders.StatusCancelled)
	if err != nil {
		return nil, err
	}
	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order != nil {
		if err := s.bus.Publish(ctx, orders.NewOrderCancelledEvent(order)); err != nil {
			return nil, err
		}
	}
	return resp, nil
}

func (s *Service) transition(ctx context.Context, orderID string, next orders.OrderStatus) (*OrderResponse, error) {
	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, orders.NewOrderNotFoundError(orderID)
	}
	if !order.CanTransitionTo(next) {
		return nil, orders.NewInvalidTransitionError(orderID, order.Status(), next)
	}
	updated, err := s.orders.Update(ctx, orderID, orders.OrderUpdate{Status: &next})
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, orders.NewOrderNotFoundError(orderID)
	}
	return toOrderResponse(updated), nil
}

func toOrderResponse(o *orders.Order) *OrderResponse {
	total := o.Total()
	return &OrderResponse{
		ID:             o.ID(),
		ProductID:      o.ProductID(),
		BuyerEmail:     o.BuyerEmail(),
		Quantity:       o.Quantity(),
		UnitPriceCents: o.UnitPriceCents(),
		TotalCents:     total.Amount(),
		Currency:       total.Currency(),
		Status:         string(o.Status()),
		CreatedAt:      o.CreatedAt(),
		UpdatedAt:      o.UpdatedAt(),
	}
}
