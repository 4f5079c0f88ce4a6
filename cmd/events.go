package cmd

import (
	"fmt"

	"podmarket/application/audit"
	shopsapp "podmarket/application/shops"
	"podmarket/domain/catalog"
	"podmarket/domain/orders"
	"podmarket/domain/shared"
	"podmarket/domain/shops"
)

// RegisterEventHandlers wires the process-wide event subscriptions and seals
// the bus. API server and outbox worker share this wiring: the server needs
// the deferred registrations so Publish knows to enqueue, the worker needs
// them to dispatch. Registration order per event name is delivery order.
func RegisterEventHandlers(bus *shared.EventBus, stats shops.StatsRepository) error {
	auditLog := audit.NewLogHandler()
	productCount := shopsapp.NewProductCountHandler(stats)
	salesStats := shopsapp.NewSalesStatsHandler(stats)

	subscriptions := []struct {
		event   string
		handler shared.EventHandler
		mode    shared.DeliveryMode
	}{
		{shops.ShopCreatedEventName, auditLog, shared.DeliverSync},
		{catalog.ProductCreatedEventName, auditLog, shared.DeliverSync},
		{catalog.ProductCreatedEventName, productCount, shared.DeliverDeferred},
		{catalog.ProductDeletedEventName, auditLog, shared.DeliverSync},
		{catalog.ProductDeletedEventName, productCount, shared.DeliverDeferred},
		{orders.OrderPlacedEventName, auditLog, shared.DeliverSync},
		{orders.OrderPlacedEventName, salesStats, shared.DeliverDeferred},
		{orders.OrderCancelledEventName, auditLog, shared.DeliverSync},
	}

	for _, s := range subscriptions {
		if err := bus.Subscribe(s.event, s.handler, s.mode); err != nil {
			return fmt.Errorf("subscribe %s to %s: %w", s.handler.Name(), s.event, err)
		}
	}

	bus.Seal()
	return nil
}
