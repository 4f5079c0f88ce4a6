package shops

import (
	"context"

	"podmarket/domain/catalog"
	"podmarket/domain/orders"
	"podmarket/domain/shared"
	"podmarket/domain/shops"
	"podmarket/pkg/logger"

	"go.uber.org/zap"
)

// Deferred event handlers of the shops context. They bind to event names
// published by catalog and orders plus the payload shapes those names carry;
// no aggregate type crosses the context boundary.
//
// 投递语义是 at-least-once：队列可能在 crash 后重投同一信封。
// 幂等账本的登记和计数更新由 StatsRepository 在同一个事务里完成：
// 重投返回 fresh=false，处理器跳过；更新失败则账本一起回滚，
// 下次重投还能把效果补上。

// ProductCountHandler keeps Shop.ProductCount in sync with the catalog.
// Subscribed (deferred) to catalog.product.created and
// catalog.product.deleted.
type ProductCountHandler struct {
	stats shops.StatsRepository
}

func NewProductCountHandler(stats shops.StatsRepository) *ProductCountHandler {
	return &ProductCountHandler{stats: stats}
}

func (h *ProductCountHandler) Name() string { return "shops.product-count" }

func (h *ProductCountHandler) Handle(ctx context.Context, env shared.EventEnvelope) error {
	switch env.Name {
	case catalog.ProductCreatedEventName:
		var p catalog.ProductCreatedPayload
		if err := env.DecodePayload(&p); err != nil {
			return err
		}
		return h.adjust(ctx, env, p.ShopID, 1)
	case catalog.ProductDeletedEventName:
		var p catalog.ProductDeletedPayload
		if err := env.DecodePayload(&p); err != nil {
			return err
		}
		return h.adjust(ctx, env, p.ShopID, -1)
	default:
		logger.Warn("Product count handler received unexpected event",
			zap.String("event", env.Name))
		return nil
	}
}

func (h *ProductCountHandler) adjust(ctx context.Context, env shared.EventEnvelope, shopID string, delta int64) error {
	fresh, err := h.stats.AdjustProductCount(ctx, env.EventID, h.Name(), shopID, delta)
	if err != nil {
		return err
	}
	if !fresh {
		logger.WithEvent(env.EventID, env.Name).Debug("Skipping re-delivered event",
			zap.String("handler", h.Name()))
	}
	return nil
}

// SalesStatsHandler accumulates a shop's lifetime sales totals.
// Subscribed (deferred) to orders.order.placed; the payload already carries
// the shop id, so no query back into the catalog is needed.
type SalesStatsHandler struct {
	stats shops.StatsRepository
}

func NewSalesStatsHandler(stats shops.StatsRepository) *SalesStatsHandler {
	return &SalesStatsHandler{stats: stats}
}

func (h *SalesStatsHandler) Name() string { return "shops.sales-stats" }

func (h *SalesStatsHandler) Handle(ctx context.Context, env shared.EventEnvelope) error {
	var p orders.OrderPlacedPayload
	if err := env.DecodePayload(&p); err != nil {
		return err
	}

	fresh, err := h.stats.AddSale(ctx, env.EventID, h.Name(), p.ShopID, p.TotalCents)
	if err != nil {
		return err
	}
	if !fresh {
		logger.WithEvent(env.EventID, env.Name).Debug("Skipping re-delivered event",
			zap.String("handler", h.Name()))
	}
	return nil
}

var (
	_ shared.EventHandler = (*ProductCountHandler)(nil)
	_ shared.EventHandler = (*SalesStatsHandler)(nil)
)
