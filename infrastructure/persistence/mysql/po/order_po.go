package po

import (
	"time"

	"podmarket/domain/orders"
	"podmarket/domain/shared"
)

type OrderPO struct {
	ID             uint64    `gorm:"primaryKey;autoIncrement"`
	ProductID      uint64    `gorm:"index;not null"`
	BuyerEmail     string    `gorm:"size:254;not null"`
	Quantity       int       `gorm:"not null"`
	UnitPriceCents int64     `gorm:"not null"`
	Currency       string    `gorm:"size:3;not null"`
	Status         string    `gorm:"size:20;index;not null"`
	CreatedAt      time.Time `gorm:"autoCreateTime"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime"`
}

func (OrderPO) TableName() string {
	return "orders"
}

func FromOrderFields(fields orders.OrderFields) (*OrderPO, error) {
	productKey, err := shared.ParseID("product", fields.ProductID)
	if err != nil {
		return nil, err
	}
	return &OrderPO{
		ProductID:      productKey,
		BuyerEmail:     fields.BuyerEmail,
		Quantity:       fields.Quantity,
		UnitPriceCents: fields.UnitPriceCents,
		Currency:       fields.Currency,
		Status:         string(fields.Status),
	}, nil
}

func (po *OrderPO) ToDomain() *orders.Order {
	return orders.RebuildOrder(orders.OrderDTO{
		ID:             shared.FormatID(po.ID),
		ProductID:      shared.FormatID(po.ProductID),
		BuyerEmail:     po.BuyerEmail,
		Quantity:       po.Quantity,
		UnitPriceCents: po.UnitPriceCents,
		Currency:       po.Currency,
		Status:         orders.OrderStatus(po.Status),
		CreatedAt:      po.CreatedAt,
		UpdatedAt:      po.UpdatedAt,
	})
}
