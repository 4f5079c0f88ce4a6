package shops

import "time"

const ShopCreatedEventName = "shops.shop.created"

type ShopCreatedPayload struct {
	ShopID     string `json:"shop_id"`
	Name       string `json:"name"`
	Slug       string `json:"slug"`
	OwnerEmail string `json:"owner_email"`
}

type ShopCreatedEvent struct {
	payload    ShopCreatedPayload
	occurredOn time.Time
}

func NewShopCreatedEvent(s *Shop) *ShopCreatedEvent {
	return &ShopCreatedEvent{
		payload: ShopCreatedPayload{
			ShopID:     s.ID(),
			Name:       s.Name(),
			Slug:       s.Slug(),
			OwnerEmail: s.OwnerEmail(),
		},
		occurredOn: time.Now(),
	}
}

func (e *ShopCreatedEvent) EventName() string     { return ShopCreatedEventName }
func (e *ShopCreatedEvent) OccurredOn() time.Time { return e.occurredOn }
func (e *ShopCreatedEvent) AggregateID() string   { return e.payload.ShopID }
func (e *ShopCreatedEvent) EventPayload() any     { return e.payload }
