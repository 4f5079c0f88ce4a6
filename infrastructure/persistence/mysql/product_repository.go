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

// ProductRepository GORM 实现的商品仓储
//
// DomainId 只在这一层被解码成数字主键；领域层和应用层拿到的
// 永远是字符串形式。
type ProductRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

func (r *ProductRepository) getDB(ctx context.Context) *gorm.DB {
	if tx := persistence.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.db.WithContext(ctx)
}

func (r *ProductRepository) FindByID(ctx context.Context, id string) (*catalog.Product, error) {
	key, err := shared.ParseID("product", id)
	if err != nil {
		return nil, err
	}

	var productPO po.ProductPO
	result := r.getDB(ctx).First(&productPO, "id = ?", key)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		if isConnectionError(result.Error) {
			return nil, shared.NewStorageUnavailableError("product", result.Error)
		}
		return nil, result.Error
	}

	return productPO.ToDomain(), nil
}

// FindByIDs 单条 IN 查询批量加载；未命中的 id 不出现在结果里。
func (r *ProductRepository) FindByIDs(ctx context.Context, ids []string) (map[string]*catalog.Product, error) {
	products := make(map[string]*catalog.Product, len(ids))
	if len(ids) == 0 {
		return products, nil
	}

	keys := make([]uint64, 0, len(ids))
	for _, id := range ids {
		key, err := shared.ParseID("product", id)
		if err != nil {
			return nil, err
		}
		keys = append(keys, key)
	}

	var productPOs []po.ProductPO
	if err := r.getDB(ctx).Where("id IN ?", keys).Find(&productPOs).Error; err != nil {
		if isConnectionError(err) {
			return nil, shared.NewStorageUnavailableError("product", err)
		}
		return nil, err
	}

	for i := range productPOs {
		p := productPOs[i].ToDomain()
		products[p.ID()] = p
	}
	return products, nil
}

func (r *ProductRepository) FindPage(ctx context.Context, req shared.PageRequest) (*shared.Page[*catalog.Product], error) {
	req = req.Normalize()
	db := r.getDB(ctx)

	var total int64
	if err := db.Model(&po.ProductPO{}).Count(&total).Error; err != nil {
		return nil, err
	}

	var productPOs []po.ProductPO
	if err := db.Order("id DESC").
		Offset(req.Offset()).
		Limit(req.PageSize).
		Find(&productPOs).Error; err != nil {
		return nil, err
	}

	items := make([]*catalog.Product, len(productPOs))
	for i := range productPOs {
		items[i] = productPOs[i].ToDomain()
	}
	return shared.NewPage(items, req, total), nil
}

func (r *ProductRepository) Create(ctx context.Context, fields catalog.ProductFields) (*catalog.Product, error) {
	productPO, err := po.FromProductFields(fields)
	if err != nil {
		return nil, err
	}

	if err := r.getDB(ctx).Create(productPO).Error; err != nil {
		if isMissingParentError(err) {
			return nil, shared.NewConstraintViolationError("product", "design_id", "referenced shop or design does not exist")
		}
		if isConnectionError(err) {
			return nil, shared.NewStorageUnavailableError("product", err)
		}
		return nil, err
	}

	return productPO.ToDomain(), nil
}

func (r *ProductRepository) Update(ctx context.Context, id string, update catalog.ProductUpdate) (*catalog.Product, error) {
	key, err := shared.ParseID("product", id)
	if err != nil {
		return nil, err
	}

	var updated *catalog.Product
	err = r.transact(ctx, func(tx *gorm.DB) error {
		var productPO po.ProductPO
		if err := tx.First(&productPO, "id = ?", key).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return err
		}

		values := map[string]interface{}{}
		if update.Title != nil {
			values["title"] = *update.Title
		}
		if update.PriceCents != nil {
			values["price_cents"] = *update.PriceCents
		}
		if update.Currency != nil {
			values["currency"] = *update.Currency
		}
		if update.Published != nil {
			values["published"] = *update.Published
		}
		if len(values) > 0 {
			if err := tx.Model(&productPO).Updates(values).Error; err != nil {
				return err
			}
		}

		updated = productPO.ToDomain()
		return nil
	})
	if err != nil {
		if isConnectionError(err) {
			return nil, shared.NewStorageUnavailableError("product", err)
		}
		return nil, err
	}
	return updated, nil
}

func (r *ProductRepository) Delete(ctx context.Context, id string) (bool, error) {
	key, err := shared.ParseID("product", id)
	if err != nil {
		return false, err
	}

	result := r.getDB(ctx).Delete(&po.ProductPO{}, "id = ?", key)
	if result.Error != nil {
		if isRowReferencedError(result.Error) {
			return false, shared.NewConstraintViolationError("product", "id", "product is referenced by existing orders")
		}
		if isConnectionError(result.Error) {
			return false, shared.NewStorageUnavailableError("product", result.Error)
		}
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// transact 优先复用 context 里的事务，否则开启自己的单事务。
func (r *ProductRepository) transact(ctx context.Context, fn func(tx *gorm.DB) error) error {
	if tx := persistence.TxFromContext(ctx); tx != nil {
		return fn(tx)
	}
	return r.db.WithContext(ctx).Transaction(fn)
}

var _ catalog.ProductRepository = (*ProductRepository)(nil)
