package po

import (
	"time"

	"podmarket/domain/shared"
	"podmarket/domain/shops"
)

// ShopPO 店铺持久化对象
//
// 统计列（product_count、sales_count、sales_cents）由延迟事件处理器
// 通过原子 UPDATE 维护，聚合本身从不直接写它们。
type ShopPO struct {
	ID           uint64    `gorm:"primaryKey;autoIncrement"`
	Name         string    `gorm:"size:100;not null"`
	Slug         string    `gorm:"size:100;uniqueIndex;not null"`
	OwnerEmail   string    `gorm:"size:254;not null"`
	Active       bool      `gorm:"default:true;not null"`
	ProductCount int64     `gorm:"default:0;not null"`
	SalesCount   int64     `gorm:"default:0;not null"`
	SalesCents   int64     `gorm:"default:0;not null"`
	CreatedAt    time.Time `gorm:"autoCreateTime"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime"`
}

func (ShopPO) TableName() string {
	return "shops"
}

func FromShopFields(fields shops.ShopFields) *ShopPO {
	return &ShopPO{
		Name:       fields.Name,
		Slug:       fields.Slug,
		OwnerEmail: fields.OwnerEmail,
		Active:     true,
	}
}

func (po *ShopPO) ToDomain() *shops.Shop {
	return shops.RebuildShop(shops.ShopDTO{
		ID:           shared.FormatID(po.ID),
		Name:         po.Name,
		Slug:         po.Slug,
		OwnerEmail:   po.OwnerEmail,
		Active:       po.Active,
		ProductCount: po.ProductCount,
		SalesCount:   po.SalesCount,
		SalesCents:   po.SalesCents,
		CreatedAt:    po.CreatedAt,
		UpdatedAt:    po.UpdatedAt,
	})
}
