package po

import (
	"time"

	"podmarket/domain/catalog"
	"podmarket/domain/shared"
)

type DesignPO struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement"`
	ShopID    uint64    `gorm:"index;not null"`
	Title     string    `gorm:"size:200;not null"`
	ObjectKey string    `gorm:"size:512;not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (DesignPO) TableName() string {
	return "designs"
}

func FromDesignFields(fields catalog.DesignFields) (*DesignPO, error) {
	shopKey, err := shared.ParseID("shop", fields.ShopID)
	if err != nil {
		return nil, err
	}
	return &DesignPO{
		ShopID:    shopKey,
		Title:     fields.Title,
		ObjectKey: fields.ObjectKey,
	}, nil
}

func (po *DesignPO) ToDomain() *catalog.Design {
	return catalog.RebuildDesign(catalog.DesignDTO{
		ID:        shared.FormatID(po.ID),
		ShopID:    shared.FormatID(po.ShopID),
		Title:     po.Title,
		ObjectKey: po.ObjectKey,
		CreatedAt: po.CreatedAt,
		UpdatedAt: po.UpdatedAt,
	})
}
