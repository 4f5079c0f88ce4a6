package mocks

import (
	"context"
	"sync"

	"podmarket/domain/shops"
)

// ShopStats 单个店铺的读模型计数器快照
type ShopStats struct {
	ProductCount int64
	SalesCount   int64
	SalesCents   int64
}

// StatsRepository 店铺统计仓储的内存实现，行为与 MySQL 实现一致：
// 幂等台账登记和计数更新是一个原子单元，重复的 (event_id, handler)
// 返回 false，计数失败时台账不落账。
type StatsRepository struct {
	mu     sync.Mutex
	ledger map[string]struct{}
	stats  map[string]*ShopStats

	// Err fails every call.
	Err error
	// EffectErr fails the next counter mutation after the ledger check and is
	// consumed by it; the ledger entry rolls back with the failure, as in the
	// MySQL implementation's transaction.
	EffectErr error
}

func NewStatsRepository() *StatsRepository {
	return &StatsRepository{
		ledger: make(map[string]struct{}),
		stats:  make(map[string]*ShopStats),
	}
}

func (r *StatsRepository) AdjustProductCount(ctx context.Context, eventID, handlerName, shopID string, delta int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return false, r.Err
	}
	key := ledgerKey(eventID, handlerName)
	if _, dup := r.ledger[key]; dup {
		return false, nil
	}
	if err := r.takeEffectErr(); err != nil {
		return false, err
	}
	r.ledger[key] = struct{}{}
	r.statsFor(shopID).ProductCount += delta
	return true, nil
}

func (r *StatsRepository) AddSale(ctx context.Context, eventID, handlerName, shopID string, totalCents int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return false, r.Err
	}
	key := ledgerKey(eventID, handlerName)
	if _, dup := r.ledger[key]; dup {
		return false, nil
	}
	if err := r.takeEffectErr(); err != nil {
		return false, err
	}
	r.ledger[key] = struct{}{}
	s := r.statsFor(shopID)
	s.SalesCount++
	s.SalesCents += totalCents
	return true, nil
}

// Stats returns the current counters for a shop, zero-valued if untouched.
func (r *StatsRepository) Stats(shopID string) ShopStats {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.stats[shopID]; ok {
		return *s
	}
	return ShopStats{}
}

func ledgerKey(eventID, handlerName string) string {
	return eventID + "|" + handlerName
}

func (r *StatsRepository) takeEffectErr() error {
	err := r.EffectErr
	r.EffectErr = nil
	return err
}

func (r *StatsRepository) statsFor(shopID string) *ShopStats {
	if s, ok := r.stats[shopID]; ok {
		return s
	}
	s := &ShopStats{}
	r.stats[shopID] = s
	return s
}

var _ shops.StatsRepository = (*StatsRepository)(nil)
