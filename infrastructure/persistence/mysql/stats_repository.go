package mysql

import (
	"context"
	"errors"

	"podmarket/domain/shared"
	"podmarket/domain/shops"
	"podmarket/infrastructure/persistence"
	"podmarket/infrastructure/persistence/mysql/po"

	"gorm.io/gorm"
)

// errEventAlreadyProcessed 账本里已有 (event_id, handler)，本次投递是重投。
var errEventAlreadyProcessed = errors.New("event already processed by handler")

// ShopStatsRepository 店铺统计读模型与幂等账本
//
// 只在 worker 的延迟处理器里使用。计数器用原子 UPDATE 表达式累加，
// 不经过聚合，避免和请求路径上的店铺更新互相覆盖。
//
// 账本登记和计数更新在同一个事务里提交：计数失败时账本一起回滚，
// 队列重投后效果还能落地；账本冲突（唯一键）则整个事务放弃，计数
// 不会被加第二次。
type ShopStatsRepository struct {
	db *gorm.DB
}

func NewShopStatsRepository(db *gorm.DB) *ShopStatsRepository {
	return &ShopStatsRepository{db: db}
}

// getDB returns the transaction from context if available, otherwise the default db
func (r *ShopStatsRepository) getDB(ctx context.Context) *gorm.DB {
	if tx := persistence.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.db.WithContext(ctx)
}

func (r *ShopStatsRepository) AdjustProductCount(ctx context.Context, eventID, handlerName, shopID string, delta int64) (bool, error) {
	key, err := shared.ParseID("shop", shopID)
	if err != nil {
		return false, err
	}

	err = r.getDB(ctx).Transaction(func(tx *gorm.DB) error {
		if err := markProcessed(tx, eventID, handlerName); err != nil {
			return err
		}
		// 店铺可能已被删除；此时事件只是过期了，不是错误。
		return tx.Model(&po.ShopPO{}).
			Where("id = ?", key).
			UpdateColumn("product_count", gorm.Expr("product_count + ?", delta)).Error
	})
	return finishStatsTx(err)
}

func (r *ShopStatsRepository) AddSale(ctx context.Context, eventID, handlerName, shopID string, totalCents int64) (bool, error) {
	key, err := shared.ParseID("shop", shopID)
	if err != nil {
		return false, err
	}

	err = r.getDB(ctx).Transaction(func(tx *gorm.DB) error {
		if err := markProcessed(tx, eventID, handlerName); err != nil {
			return err
		}
		return tx.Model(&po.ShopPO{}).
			Where("id = ?", key).
			UpdateColumns(map[string]interface{}{
				"sales_count": gorm.Expr("sales_count + 1"),
				"sales_cents": gorm.Expr("sales_cents + ?", totalCents),
			}).Error
	})
	return finishStatsTx(err)
}

// markProcessed 向幂等账本插入 (event_id, handler)。
// 唯一键冲突翻译成 errEventAlreadyProcessed，让外层事务整体放弃。
func markProcessed(tx *gorm.DB, eventID, handlerName string) error {
	entry := po.ProcessedEventPO{
		EventID:     eventID,
		HandlerName: handlerName,
	}
	if err := tx.Create(&entry).Error; err != nil {
		if isDuplicateKeyError(err) {
			return errEventAlreadyProcessed
		}
		return err
	}
	return nil
}

func finishStatsTx(err error) (bool, error) {
	if err == nil {
		return true, nil
	}
	if errors.Is(err, errEventAlreadyProcessed) {
		return false, nil
	}
	if isConnectionError(err) {
		return false, shared.NewStorageUnavailableError("shop", err)
	}
	return false, err
}

var _ shops.StatsRepository = (*ShopStatsRepository)(nil)
