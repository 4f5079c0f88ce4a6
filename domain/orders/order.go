package orders

import (
	"time"

	"podmarket/domain/shared"
)

// OrderStatus is the order lifecycle state.
type OrderStatus string

const (
	StatusNew       OrderStatus = "NEW"
	StatusPaid      OrderStatus = "PAID"
	StatusCancelled OrderStatus = "CANCELLED"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case StatusNew, StatusPaid, StatusCancelled:
		return true
	}
	return false
}

// Order 订单聚合根（单商品购买）
//
// 订单只持有 Product 的 DomainId；下单时的单价被快照到订单上，
// 之后商品改价不影响已有订单。
type Order struct {
	id             string
	productID      string
	buyerEmail     string
	quantity       int
	unitPriceCents int64
	currency       string
	status         OrderStatus
	createdAt      time.Time
	updatedAt      time.Time
}

// OrderFields is the creation payload. The price snapshot fields are filled
// by the use case from the product, not by the API caller.
type OrderFields struct {
	ProductID      string
	BuyerEmail     string
	Quantity       int
	UnitPriceCents int64
	Currency       string
	Status         OrderStatus
}

func (f OrderFields) Validate() error {
	if f.ProductID == "" {
		return shared.NewValidationError("order", "product_id", "product_id is required")
	}
	if f.BuyerEmail == "" {
		return shared.NewValidationError("order", "buyer_email", "buyer_email is required")
	}
	if f.Quantity < 1 || f.Quantity > 1000 {
		return shared.NewValidationError("order", "quantity", "quantity must be between 1 and 1000")
	}
	if f.UnitPriceCents <= 0 {
		return shared.NewValidationError("order", "unit_price_cents", "unit price must be positive")
	}
	if !f.Status.Valid() {
		return shared.NewValidationError("order", "status", "unknown order status")
	}
	return nil
}

type OrderUpdate struct {
	Status *OrderStatus
}

func (u OrderUpdate) Validate() error {
	if u.Status != nil && !u.Status.Valid() {
		return shared.NewValidationError("order", "status", "unknown order status")
	}
	return nil
}

func (o *Order) ID() string            { return o.id }
func (o *Order) ProductID() string     { return o.productID }
func (o *Order) BuyerEmail() string    { return o.buyerEmail }
func (o *Order) Quantity() int         { return o.quantity }
func (o *Order) UnitPriceCents() int64 { return o.unitPriceCents }
func (o *Order) Currency() string      { return o.currency }
func (o *Order) Status() OrderStatus   { return o.status }
func (o *Order) CreatedAt() time.Time  { return o.createdAt }
func (o *Order) UpdatedAt() time.Time  { return o.updatedAt }

// Total 订单总额（单价快照 × 数量）
func (o *Order) Total() shared.Money {
	return shared.NewMoney(o.unitPriceCents, o.currency).Multiply(int64(o.quantity))
}

// CanTransitionTo 业务规则：只有 NEW 订单可以支付或取消
func (o *Order) CanTransitionTo(next OrderStatus) bool {
	return o.status == StatusNew && (next == StatusPaid || next == StatusCancelled)
}

// OrderDTO 订单重建数据传输对象，仅限仓储层使用
type OrderDTO struct {
	ID             string
	ProductID      string
	BuyerEmail     string
	Quantity       int
	UnitPriceCents int64
	Currency       string
	Status         OrderStatus
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func RebuildOrder(dto OrderDTO) *Order {
	return &Order{
		id:             dto.ID,
		productID:      dto.ProductID,
		buyerEmail:     dto.BuyerEmail,
		quantity:       dto.Quantity,
		unitPriceCents: dto.UnitPriceCents,
		currency:       dto.Currency,
		status:         dto.Status,
		createdAt:      dto.CreatedAt,
		updatedAt:      dto.UpdatedAt,
	}
}
