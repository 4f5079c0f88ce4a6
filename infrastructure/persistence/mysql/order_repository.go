package mysql

import (
	"context"
	"errors"

	"podmarket/domain/orders"
	"podmarket/domain/shared"
	"podmarket/infrastructure/persistence"
	"podmarket/infrastructure/persistence/mysql/po"

	"gorm.io/gorm"
)

// OrderRepository GORM 实现的订单仓储
type OrderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

func (r *OrderRepository) getDB(ctx context.Context) *gorm.DB {
	if tx := persistence.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.db.WithContext(ctx)
}

func (r *OrderRepository) FindByID(ctx context.Context, id string) (*orders.Order, error) {
	key, err := shared.ParseID("order", id)
	if err != nil {
		return nil, err
	}

	var orderPO po.OrderPO
	result := r.getDB(ctx).First(&orderPO, "id = ?", key)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		if isConnectionError(result.Error) {
			return nil, shared.NewStorageUnavailableError("order", result.Error)
		}
		return nil, result.Error
	}

	return orderPO.ToDomain(), nil
}

func (r *OrderRepository) FindByIDs(ctx context.Context, ids []string) (map[string]*orders.Order, error) {
	result := make(map[string]*orders.Order, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	keys := make([]uint64, 0, len(ids))
	for _, id := range ids {
		key, err := shared.ParseID("order", id)
		if err != nil {
			return nil, err
		}
		keys = append(keys, key)
	}

	var orderPOs []po.OrderPO
	if err := r.getDB(ctx).Where("id IN ?", keys).Find(&orderPOs).Error; err != nil {
		if isConnectionError(err) {
			return nil, shared.NewStorageUnavailableError("order", err)
		}
		return nil, err
	}

	for i := range orderPOs {
		o := orderPOs[i].ToDomain()
		result[o.ID()] = o
	}
	return result, nil
}

func (r *OrderRepository) FindPage(ctx context.Context, req shared.PageRequest) (*shared.Page[*orders.Order], error) {
	req = req.Normalize()
	db := r.getDB(ctx)

	var total int64
	if err := db.Model(&po.OrderPO{}).Count(&total).Error; err != nil {
		return nil, err
	}

	var orderPOs []po.OrderPO
	if err := db.Order("id DESC").
		Offset(req.Offset()).
		Limit(req.PageSize).
		Find(&orderPOs).Error; err != nil {
		return nil, err
	}

	items := make([]*orders.Order, len(orderPOs))
	for i := range orderPOs {
		items[i] = orderPOs[i].ToDomain()
	}
	return shared.NewPage(items, req, total), nil
}

func (r *OrderRepository) Create(ctx context.Context, fields orders.OrderFields) (*orders.Order, error) {
	orderPO, err := po.FromOrderFields(fields)
	if err != nil {
		return nil, err
	}

	if err := r.getDB(ctx).Create(orderPO).Error; err != nil {
		if isMissingParentError(err) {
			return nil, shared.NewConstraintViolationError("order", "product_id", "referenced product does not exist")
		}
		if isConnectionError(err) {
			return nil, shared.NewStorageUnavailableError("order", err)
		}
		return nil, err
	}

	return orderPO.ToDomain(), nil
}

func (r *OrderRepository) Update(ctx context.Context, id string, update orders.OrderUpdate) (*orders.Order, error) {
	key, err := shared.ParseID("order", id)
	if err != nil {
		return nil, err
	}

	var updated *orders.Order
	err = r.transact(ctx, func(tx *gorm.DB) error {
		var orderPO po.OrderPO
		if err := tx.First(&orderPO, "id = ?", key).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return err
		}

		if update.Status != nil {
			if err := tx.Model(&orderPO).Update("status", string(*update.Status)).Error; err != nil {
				return err
			}
		}

		updated = orderPO.ToDomain()
		return nil
	})
	if err != nil {
		if isConnectionError(err) {
			return nil, shared.NewStorageUnavailableError("order", err)
		}
		return nil, err
	}
	return updated, nil
}

func (r *OrderRepository) Delete(ctx context.Context, id string) (bool, error) {
	key, err := shared.ParseID("order", id)
	if err != nil {
		return false, err
	}

	result := r.getDB(ctx).Delete(&po.OrderPO{}, "id = ?", key)
	if result.Error != nil {
		if isConnectionError(result.Error) {
			return false, shared.NewStorageUnavailableError("order", result.Error)
		}
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *OrderRepository) transact(ctx context.Context, fn func(tx *gorm.DB) error) error {
	if tx := persistence.TxFromContext(ctx); tx != nil {
		return fn(tx)
	}
	return r.db.WithContext(ctx).Transaction(fn)
}

var _ orders.Repository = (*OrderRepository)(nil)
