package orders

import "time"

const (
	OrderPlacedEventName    = "orders.order.placed"
	OrderCancelledEventName = "orders.order.cancelled"
)

// OrderPlacedPayload carries the shop id even though the order row does not:
// the placing use case already holds the product, and subscribers (shop sales
// stats) must not have to query the catalog to find the shop.
type OrderPlacedPayload struct {
	OrderID    string `json:"order_id"`
	ProductID  string `json:"product_id"`
	ShopID     string `json:"shop_id"`
	Quantity   int    `json:"quantity"`
	TotalCents int64  `json:"total_cents"`
	Currency   string `json:"currency"`
}

type OrderPlacedEvent struct {
	payload    OrderPlacedPayload
	occurredOn time.Time
}

func NewOrderPlacedEvent(o *Order, shopID string) *OrderPlacedEvent {
	total := o.Total()
	return &OrderPlacedEvent{
		payload: OrderPlacedPayload{
			OrderID:    o.ID(),
			ProductID:  o.ProductID(),
			ShopID:     shopID,
			Quantity:   o.Quantity(),
			TotalCents: total.Amount(),
			Currency:   total.Currency(),
		},
		occurredOn: time.Now(),
	}
}

func (e *OrderPlacedEvent) EventName() string     { return OrderPlacedEventName }
func (e *OrderPlacedEvent) OccurredOn() time.Time { return e.occurredOn }
func (e *OrderPlacedEvent) AggregateID() string   { return e.payload.OrderID }
func (e *OrderPlacedEvent) EventPayload() any     { return e.payload }

type OrderCancelledPayload struct {
	OrderID   string `json:"order_id"`
	ProductID string `json:"product_id"`
}

type OrderCancelledEvent struct {
	payload    OrderCancelledPayload
	occurredOn time.Time
}

func NewOrderCancelledEvent(o *Order) *OrderCancelledEvent {
	return &OrderCancelledEvent{
		payload:    OrderCancelledPayload{OrderID: o.ID(), ProductID: o.ProductID()},
		occurredOn: time.Now(),
	}
}

func (e *OrderCancelledEvent) EventName() string     { return OrderCancelledEventName }
func (e *OrderCancelledEvent) OccurredOn() time.Time { return e.occurredOn }
func (e *OrderCancelledEvent) AggregateID() string   { return e.payload.OrderID }
func (e *OrderCancelledEvent) EventPayload() any     { return e.payload }
