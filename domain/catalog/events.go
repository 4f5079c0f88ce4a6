package catalog

import "time"

// Event names published by the catalog context. Subscribers in other
// contexts bind to these strings plus the payload shapes below; they never
// import catalog aggregate types.
const (
	ProductCreatedEventName = "catalog.product.created"
	ProductDeletedEventName = "catalog.product.deleted"
)

// ProductCreatedPayload carries the denormalized fields subscribers need
// without re-querying the catalog.
type ProductCreatedPayload struct {
	ProductID  string `json:"product_id"`
	ShopID     string `json:"shop_id"`
	DesignID   string `json:"design_id"`
	Title      string `json:"title"`
	Kind       string `json:"kind"`
	PriceCents int64  `json:"price_cents"`
	Currency   string `json:"currency"`
}

// ProductCreatedEvent is recorded after a product row durably commits.
type ProductCreatedEvent struct {
	payload    ProductCreatedPayload
	occurredOn time.Time
}

func NewProductCreatedEvent(p *Product) *ProductCreatedEvent {
	return &ProductCreatedEvent{
		payload: ProductCreatedPayload{
			ProductID:  p.ID(),
			ShopID:     p.ShopID(),
			DesignID:   p.DesignID(),
			Title:      p.Title(),
			Kind:       string(p.Kind()),
			PriceCents: p.PriceCents(),
			Currency:   p.Currency(),
		},
		occurredOn: time.Now(),
	}
}

func (e *ProductCreatedEvent) EventName() string     { return ProductCreatedEventName }
func (e *ProductCreatedEvent) OccurredOn() time.Time { return e.occurredOn }
func (e *ProductCreatedEvent) AggregateID() string   { return e.payload.ProductID }
func (e *ProductCreatedEvent) EventPayload() any     { return e.payload }

type ProductDeletedPayload struct {
	ProductID string `json:"product_id"`
	ShopID    string `json:"shop_id"`
}

type ProductDeletedEvent struct {
	payload    ProductDeletedPayload
	occurredOn time.Time
}

func NewProductDeletedEvent(productID, shopID string) *ProductDeletedEvent {
	return &ProductDeletedEvent{
		payload:    ProductDeletedPayload{ProductID: productID, ShopID: shopID},
		occurredOn: time.Now(),
	}
}

func (e *ProductDeletedEvent) EventName() string     { return ProductDeletedEventName }
func (e *ProductDeletedEvent) OccurredOn() time.Time { return e.occurredOn }
func (e *ProductDeletedEvent) AggregateID() string   { return e.payload.ProductID }
func (e *ProductDeletedEvent) EventPayload() any     { return e.payload }
