// Package po holds the persistence objects of the MySQL layer. POs are the
// only place where the numeric primary keys exist; conversion to and from
// the string DomainId happens here, at the repository edge, in both
// directions.
package po

import (
	"time"

	"podmarket/domain/catalog"
	"podmarket/domain/shared"
)

type ProductPO struct {
	ID         uint64    `gorm:"primaryKey;autoIncrement"`
	ShopID     uint64    `gorm:"index;not null"`
	DesignID   uint64    `gorm:"index;not null"`
	Title      string    `gorm:"size:200;not null"`
	Kind       string    `gorm:"size:20;not null"`
	PriceCents int64     `gorm:"not null"`
	Currency   string    `gorm:"size:3;not null"`
	Published  bool      `gorm:"default:false;not null"`
	CreatedAt  time.Time `gorm:"autoCreateTime"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime"`
}

func (ProductPO) TableName() string {
	return "products"
}

// FromProductFields maps a creation payload onto a new row. The foreign
// DomainIds are decoded to numeric keys; a malformed id surfaces as
// ErrInvalidIdentifier before any SQL runs.
func FromProductFields(fields catalog.ProductFields) (*ProductPO, error) {
	shopKey, err := shared.ParseID("shop", fields.ShopID)
	if err != nil {
		return nil, err
	}
	designKey, err := shared.ParseID("design", fields.DesignID)
	if err != nil {
		return nil, err
	}
	return &ProductPO{
		ShopID:     shopKey,
		DesignID:   designKey,
		Title:      fields.Title,
		Kind:       string(fields.Kind),
		PriceCents: fields.PriceCents,
		Currency:   fields.Currency,
		Published:  fields.Published,
	}, nil
}

func (po *ProductPO) ToDomain() *catalog.Product {
	return catalog.RebuildProduct(catalog.ProductDTO{
		ID:         shared.FormatID(po.ID),
		ShopID:     shared.FormatID(po.ShopID),
		DesignID:   shared.FormatID(po.DesignID),
		Title:      po.Title,
		Kind:       catalog.ProductKind(po.Kind),
		PriceCents: po.PriceCents,
		Currency:   po.Currency,
		Published:  po.Published,
		CreatedAt:  po.CreatedAt,
		UpdatedAt:  po.UpdatedAt,
	})
}
