package catalog

import (
	"time"

	"podmarket/domain/shared"
)

// ProductKind is the physical product a design is printed on.
type ProductKind string

const (
	KindTee    ProductKind = "tee"
	KindMug    ProductKind = "mug"
	KindPoster ProductKind = "poster"
	KindHoodie ProductKind = "hoodie"
)

func (k ProductKind) Valid() bool {
	switch k {
	case KindTee, KindMug, KindPoster, KindHoodie:
		return true
	}
	return false
}

// Product 商品聚合根（一个在售的印刷品 listing）
//
// 聚合根特征：
// 1. 所有字段私有，构造后不可变；更新由仓储返回新实例，而非原地修改
// 2. 对其他聚合（Design、Shop）只持有字符串 DomainId，从不持有对象引用
// 3. 跨聚合引用的解析是展示层 Batch Hydrator 的职责，不在聚合内发生
type Product struct {
	id         string
	shopID     string
	designID   string
	title      string
	kind       ProductKind
	priceCents int64
	currency   string
	published  bool
	createdAt  time.Time
	updatedAt  time.Time
}

// ProductFields is the creation payload for a product. Validation lives here
// so every creation path (HTTP, worker, tests) shares the same rules.
type ProductFields struct {
	ShopID     string
	DesignID   string
	Title      string
	Kind       ProductKind
	PriceCents int64
	Currency   string
	Published  bool
}

func (f ProductFields) Validate() error {
	if f.Title == "" {
		return shared.NewValidationError("product", "title", "title is required")
	}
	if len(f.Title) > 200 {
		return shared.NewValidationError("product", "title", "title must be at most 200 characters")
	}
	if f.ShopID == "" {
		return shared.NewValidationError("product", "shop_id", "shop_id is required")
	}
	if f.DesignID == "" {
		return shared.NewValidationError("product", "design_id", "design_id is required")
	}
	if !f.Kind.Valid() {
		return shared.NewValidationError("product", "kind", "unknown product kind")
	}
	if f.PriceCents <= 0 {
		return shared.NewValidationError("product", "price_cents", "price must be positive")
	}
	if len(f.Currency) != 3 {
		return shared.NewValidationError("product", "currency", "currency must be a 3-letter code")
	}
	return nil
}

// ProductUpdate is a partial update; nil fields keep their current value.
type ProductUpdate struct {
	Title      *string
	PriceCents *int64
	Currency   *string
	Published  *bool
}

func (u ProductUpdate) Validate() error {
	if u.Title != nil && (*u.Title == "" || len(*u.Title) > 200) {
		return shared.NewValidationError("product", "title", "title must be 1-200 characters")
	}
	if u.PriceCents != nil && *u.PriceCents <= 0 {
		return shared.NewValidationError("product", "price_cents", "price must be positive")
	}
	if u.Currency != nil && len(*u.Currency) != 3 {
		return shared.NewValidationError("product", "currency", "currency must be a 3-letter code")
	}
	return nil
}

// Getters - 只读访问器
func (p *Product) ID() string           { return p.id }
func (p *Product) ShopID() string       { return p.shopID }
func (p *Product) DesignID() string     { return p.designID }
func (p *Product) Title() string        { return p.title }
func (p *Product) Kind() ProductKind    { return p.kind }
func (p *Product) PriceCents() int64    { return p.priceCents }
func (p *Product) Currency() string     { return p.currency }
func (p *Product) Published() bool      { return p.published }
func (p *Product) CreatedAt() time.Time { return p.createdAt }
func (p *Product) UpdatedAt() time.Time { return p.updatedAt }

// ProductDTO 商品重建数据传输对象
// 仅限于仓储层使用，用于从数据库行重建聚合根
type ProductDTO struct {
	ID         string
	ShopID     string
	DesignID   string
	Title      string
	Kind       ProductKind
	PriceCents int64
	Currency   string
	Published  bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// RebuildProduct 从 DTO 重建聚合根，仅应在仓储实现中调用
func RebuildProduct(dto ProductDTO) *Product {
	return &Product{
		id:         dto.ID,
		shopID:     dto.ShopID,
		designID:   dto.DesignID,
		title:      dto.Title,
		kind:       dto.Kind,
		priceCents: dto.PriceCents,
		currency:   dto.Currency,
		published:  dto.Published,
		createdAt:  dto.CreatedAt,
		updatedAt:  dto.UpdatedAt,
	}
}
