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

// ShopRepository GORM 实现的店铺仓储
type ShopRepository struct {
	db *gorm.DB
}

func NewShopRepository(db *gorm.DB) *ShopRepository {
	return &ShopRepository{db: db}
}

func (r *ShopRepository) getDB(ctx context.Context) *gorm.DB {
	if tx := persistence.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.db.WithContext(ctx)
}

func (r *ShopRepository) FindByID(ctx context.Context, id string) (*shops.Shop, error) {
	key, err := shared.ParseID("shop", id)
	if err != nil {
		return nil, err
	}

	var shopPO po.ShopPO
	result := r.getDB(ctx).First(&shopPO, "id = ?", key)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		if isConnectionError(result.Error) {
			return nil, shared.NewStorageUnavailableError("shop", result.Error)
		}
		return nil, result.Error
	}

	return shopPO.ToDomain(), nil
}

func (r *ShopRepository) FindByIDs(ctx context.Context, ids []string) (map[string]*shops.Shop, error) {
	result := make(map[string]*shops.Shop, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	keys := make([]uint64, 0, len(ids))
	for _, id := range ids {
		key, err := shared.ParseID("shop", id)
		if err != nil {
			return nil, err
		}
		keys = append(keys, key)
	}

	var shopPOs []po.ShopPO
	if err := r.getDB(ctx).Where("id IN ?", keys).Find(&shopPOs).Error; err != nil {
		if isConnectionError(err) {
			return nil, shared.NewStorageUnavailableError("shop", err)
		}
		return nil, err
	}

	for i := range shopPOs {
		s := shopPOs[i].ToDomain()
		result[s.ID()] = s
	}
	return result, nil
}

func (r *ShopRepository) FindPage(ctx context.Context, req shared.PageRequest) (*shared.Page[*shops.Shop], error) {
	req = req.Normalize()
	db := r.getDB(ctx)

	var total int64
	if err := db.Model(&po.ShopPO{}).Count(&total).Error; err != nil {
		return nil, err
	}

	var shopPOs []po.ShopPO
	if err := db.Order("id DESC").
		Offset(req.Offset()).
		Limit(req.PageSize).
		Find(&shopPOs).Error; err != nil {
		return nil, err
	}

	items := make([]*shops.Shop, len(shopPOs))
	for i := range shopPOs {
		items[i] = shopPOs[i].ToDomain()
	}
	return shared.NewPage(items, req, total), nil
}

func (r *ShopRepository) FindBySlug(ctx context.Context, slug string) (*shops.Shop, error) {
	var shopPO po.ShopPO
	result := r.getDB(ctx).First(&shopPO, "slug = ?", slug)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		if isConnectionError(result.Error) {
			return nil, shared.NewStorageUnavailableError("shop", result.Error)
		}
		return nil, result.Error
	}

	return shopPO.ToDomain(), nil
}

func (r *ShopRepository) Create(ctx context.Context, fields shops.ShopFields) (*shops.Shop, error) {
	shopPO := po.FromShopFields(fields)

	if err := r.getDB(ctx).Create(shopPO).Error; err != nil {
		if isDuplicateKeyError(err) {
			return nil, shops.NewSlugTakenError(fields.Slug)
		}
		if isConnectionError(err) {
			return nil, shared.NewStorageUnavailableError("shop", err)
		}
		return nil, err
	}

	return shopPO.ToDomain(), nil
}

func (r *ShopRepository) Update(ctx context.Context, id string, update shops.ShopUpdate) (*shops.Shop, error) {
	key, err := shared.ParseID("shop", id)
	if err != nil {
		return nil, err
	}

	var updated *shops.Shop
	err = r.transact(ctx, func(tx *gorm.DB) error {
		var shopPO po.ShopPO
		if err := tx.First(&shopPO, "id = ?", key).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return err
		}

		values := map[string]interface{}{}
		if update.Name != nil {
			values["name"] = *update.Name
		}
		if update.Active != nil {
			values["active"] = *update.Active
		}
		if len(values) > 0 {
			if err := tx.Model(&shopPO).Updates(values).Error; err != nil {
				return err
			}
		}

		updated = shopPO.ToDomain()
		return nil
	})
	if err != nil {
		if isConnectionError(err) {
			return nil, shared.NewStorageUnavailableError("shop", err)
		}
		return nil, err
	}
	return updated, nil
}

func (r *ShopRepository) Delete(ctx context.Context, id string) (bool, error) {
	key, err := shared.ParseID("shop", id)
	if err != nil {
		return false, err
	}

	result := r.getDB(ctx).Delete(&po.ShopPO{}, "id = ?", key)
	if result.Error != nil {
		if isRowReferencedError(result.Error) {
			return false, shared.NewConstraintViolationError("shop", "id", "shop still has designs or products")
		}
		if isConnectionError(result.Error) {
			return false, shared.NewStorageUnavailableError("shop", result.Error)
		}
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *ShopRepository) transact(ctx context.Context, fn func(tx *gorm.DB) error) error {
	if tx := persistence.TxFromContext(ctx); tx != nil {
		return fn(tx)
	}
	return r.db.WithContext(ctx).Transaction(fn)
}

var _ shops.Repository = (*ShopRepository)(nil)
