package mysql

import (
	"context"
	"errors"

	"podmarket/domain/catalog"
	"podmarket/domain/shared"
	"podmarket/infrastructure/persistence"
	"podmarket/infrastructure/persistence/mysql/po"

	"gorm.io/gorm"
)

// DesignRepository GORM 实现的设计稿仓储
type DesignRepository struct {
	db *gorm.DB
}

func NewDesignRepository(db *gorm.DB) *DesignRepository {
	return &DesignRepository{db: db}
}

func (r *DesignRepository) getDB(ctx context.Context) *gorm.DB {
	if tx := persistence.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.db.WithContext(ctx)
}

func (r *DesignRepository) FindByID(ctx context.Context, id string) (*catalog.Design, error) {
	key, err := shared.ParseID("design", id)
	if err != nil {
		return nil, err
	}

	var designPO po.DesignPO
	result := r.getDB(ctx).First(&designPO, "id = ?", key)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		if isConnectionError(result.Error) {
			return nil, shared.NewStorageUnavailableError("design", result.Error)
		}
		return nil, result.Error
	}

	return designPO.ToDomain(), nil
}

func (r *DesignRepository) FindByIDs(ctx context.Context, ids []string) (map[string]*catalog.Design, error) {
	designs := make(map[string]*catalog.Design, len(ids))
	if len(ids) == 0 {
		return designs, nil
	}

	keys := make([]uint64, 0, len(ids))
	for _, id := range ids {
		key, err := shared.ParseID("design", id)
		if err != nil {
			return nil, err
		}
		keys = append(keys, key)
	}

	var designPOs []po.DesignPO
	if err := r.getDB(ctx).Where("id IN ?", keys).Find(&designPOs).Error; err != nil {
		if isConnectionError(err) {
			return nil, shared.NewStorageUnavailableError("design", err)
		}
		return nil, err
	}

	for i := range designPOs {
		d := designPOs[i].ToDomain()
		designs[d.ID()] = d
	}
	return designs, nil
}

func (r *DesignRepository) FindPage(ctx context.Context, req shared.PageRequest) (*shared.Page[*catalog.Design], error) {
	req = req.Normalize()
	db := r.getDB(ctx)

	var total int64
	if err := db.Model(&po.DesignPO{}).Count(&total).Error; err != nil {
		return nil, err
	}

	var designPOs []po.DesignPO
	if err := db.Order("id DESC").
		Offset(req.Offset()).
		Limit(req.PageSize).
		Find(&designPOs).Error; err != nil {
		return nil, err
	}

	items := make([]*catalog.Design, len(designPOs))
	for i := range designPOs {
		items[i] = designPOs[i].ToDomain()
	}
	return shared.NewPage(items, req, total), nil
}

func (r *DesignRepository) Create(ctx context.Context, fields catalog.DesignFields) (*catalog.Design, error) {
	designPO, err := po.FromDesignFields(fields)
	if err != nil {
		return nil, err
	}

	if err := r.getDB(ctx).Create(designPO).Error; err != nil {
		if isMissingParentError(err) {
			return nil, shared.NewConstraintViolationError("design", "shop_id", "referenced shop does not exist")
		}
		if isConnectionError(err) {
			return nil, shared.NewStorageUnavailableError("design", err)
		}
		return nil, err
	}

	return designPO.ToDomain(), nil
}

func (r *DesignRepository) Update(ctx context.Context, id string, update catalog.DesignUpdate) (*catalog.Design, error) {
	key, err := shared.ParseID("design", id)
	if err != nil {
		return nil, err
	}

	var updated *catalog.Design
	err = r.transact(ctx, func(tx *gorm.DB) error {
		var designPO po.DesignPO
		if err := tx.First(&designPO, "id = ?", key).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return err
		}

		if update.Title != nil {
			if err := tx.Model(&designPO).Update("title", *update.Title).Error; err != nil {
				return err
			}
		}

		updated = designPO.ToDomain()
		return nil
	})
	if err != nil {
		if isConnectionError(err) {
			return nil, shared.NewStorageUnavailableError("design", err)
		}
		return nil, err
	}
	return updated, nil
}

// Delete 被商品引用的设计稿不可删除，外键 1451 映射为 ErrDesignInUse。
func (r *DesignRepository) Delete(ctx context.Context, id string) (bool, error) {
	key, err := shared.ParseID("design", id)
	if err != nil {
		return false, err
	}

	result := r.getDB(ctx).Delete(&po.DesignPO{}, "id = ?", key)
	if result.Error != nil {
		if isRowReferencedError(result.Error) {
			return false, catalog.NewDesignInUseError(id)
		}
		if isConnectionError(result.Error) {
			return false, shared.NewStorageUnavailableError("design", result.Error)
		}
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *DesignRepository) transact(ctx context.Context, fn func(tx *gorm.DB) error) error {
	if tx := persistence.TxFromContext(ctx); tx != nil {
		return fn(tx)
	}
	return r.db.WithContext(ctx).Transaction(fn)
}

var _ catalog.DesignRepository = (*DesignRepository)(nil)
