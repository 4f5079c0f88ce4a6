package shops

import (
	"regexp"
	"time"

	"podmarket/domain/shared"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

// Shop 店铺聚合根（卖家店面）
//
// 统计字段（productCount、salesCount、salesCents）是由延迟事件处理器维护的
// 读模型：catalog 和 orders 上下文发布事件，shops 上下文消费并累加，
// 两边只通过事件名和载荷耦合，不共享类型。
type Shop struct {
	id           string
	name         string
	slug         string
	ownerEmail   string
	active       bool
	productCount int64
	salesCount   int64
	salesCents   int64
	createdAt    time.Time
	updatedAt    time.Time
}

type ShopFields struct {
	Name       string
	Slug       string
	OwnerEmail string
}

func (f ShopFields) Validate() error {
	if f.Name == "" {
		return shared.NewValidationError("shop", "name", "name is required")
	}
	if !slugPattern.MatchString(f.Slug) {
		return shared.NewValidationError("shop", "slug", "slug must be lowercase letters, digits and hyphens")
	}
	if f.OwnerEmail == "" {
		return shared.NewValidationError("shop", "owner_email", "owner_email is required")
	}
	return nil
}

type ShopUpdate struct {
	Name   *string
	Active *bool
}

func (u ShopUpdate) Validate() error {
	if u.Name != nil && *u.Name == "" {
		return shared.NewValidationError("shop", "name", "name cannot be empty")
	}
	return nil
}

func (s *Shop) ID() string           { return s.id }
func (s *Shop) Name() string         { return s.name }
func (s *Shop) Slug() string         { return s.slug }
func (s *Shop) OwnerEmail() string   { return s.ownerEmail }
func (s *Shop) Active() bool         { return s.active }
func (s *Shop) ProductCount() int64  { return s.productCount }
func (s *Shop) SalesCount() int64    { return s.salesCount }
func (s *Shop) SalesCents() int64    { return s.salesCents }
func (s *Shop) CreatedAt() time.Time { return s.createdAt }
func (s *Shop) UpdatedAt() time.Time { return s.updatedAt }

// ShopDTO 店铺重建数据传输对象，仅限仓储层使用
type ShopDTO struct {
	ID           string
	Name         string
	Slug         string
	OwnerEmail   string
	Active       bool
	ProductCount int64
	SalesCount   int64
	SalesCents   int64
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func RebuildShop(dto ShopDTO) *Shop {
	return &Shop{
		id:           dto.ID,
		name:         dto.Name,
		slug:         dto.Slug,
		ownerEmail:   dto.OwnerEmail,
		active:       dto.Active,
		productCount: dto.ProductCount,
		salesCount:   dto.SalesCount,
		salesCents:   dto.SalesCents,
		createdAt:    dto.CreatedAt,
		updatedAt:    dto.UpdatedAt,
	}
}
