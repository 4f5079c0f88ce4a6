package catalog

import (
	"time"

	"podmarket/domain/shared"
)

// Design is uploaded artwork a product prints. The image itself lives in
// object storage; the aggregate only keeps the object key.
type Design struct {
	id        string
	shopID    string
	title     string
	objectKey string
	createdAt time.Time
	updatedAt time.Time
}

type DesignFields struct {
	ShopID    string
	Title     string
	ObjectKey string
}

func (f DesignFields) Validate() error {
	if f.Title == "" {
		return shared.NewValidationError("design", "title", "title is required")
	}
	if f.ShopID == "" {
		return shared.NewValidationError("design", "shop_id", "shop_id is required")
	}
	if f.ObjectKey == "" {
		return shared.NewValidationError("design", "object_key", "object_key is required")
	}
	return nil
}

type DesignUpdate struct {
	Title *string
}

func (u DesignUpdate) Validate() error {
	if u.Title != nil && *u.Title == "" {
		return shared.NewValidationError("design", "title", "title cannot be empty")
	}
	return nil
}

func (d *Design) ID() string           { return d.id }
func (d *Design) ShopID() string       { return d.shopID }
func (d *Design) Title() string        { return d.title }
func (d *Design) ObjectKey() string    { return d.objectKey }
func (d *Design) CreatedAt() time.Time { return d.createdAt }
func (d *Design) UpdatedAt() time.Time { return d.updatedAt }

// DesignDTO 设计稿重建数据传输对象，仅限仓储层使用
type DesignDTO struct {
	ID        string
	ShopID    string
	Title     string
	ObjectKey string
	CreatedAt time.Time
	UpdatedAt time.Time
}

func RebuildDesign(dto DesignDTO) *Design {
	return &Design{
		id:        dto.ID,
		shopID:    dto.ShopID,
		title:     dto.Title,
		objectKey: dto.ObjectKey,
		createdAt: dto.CreatedAt,
		updatedAt: dto.UpdatedAt,
	}
}
