package mocks

import (
	"context"
	"sort"
	"sync"
	"time"

	"podmarket/domain/shared"
	"podmarket/domain/shops"
)

// ShopRepository 店铺仓储的内存实现。slug 唯一约束在这里也强制执行，
// 让应用层测试能覆盖 MySQL 唯一键冲突的那条路径。
type ShopRepository struct {
	mu   sync.RWMutex
	seq  uint64
	rows map[string]shops.ShopDTO

	FindByIDCalls  int
	FindByIDsCalls int
	FindPageCalls  int

	Err error
}

func NewShopRepository() *ShopRepository {
	return &ShopRepository{rows: make(map[string]shops.ShopDTO)}
}

func (r *ShopRepository) FindByID(ctx context.Context, id string) (*shops.Shop, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.FindByIDCalls++
	if r.Err != nil {
		return nil, r.Err
	}
	dto, ok := r.rows[id]
	if !ok {
		return nil, nil
	}
	return shops.RebuildShop(dto), nil
}

func (r *ShopRepository) FindByIDs(ctx context.Context, ids []string) (map[string]*shops.Shop, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.FindByIDsCalls++
	if r.Err != nil {
		return nil, r.Err
	}
	out := make(map[string]*shops.Shop, len(ids))
	for _, id := range ids {
		if dto, ok := r.rows[id]; ok {
			out[id] = shops.RebuildShop(dto)
		}
	}
	return out, nil
}

func (r *ShopRepository) FindPage(ctx context.Context, req shared.PageRequest) (*shared.Page[*shops.Shop], error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.FindPageCalls++
	if r.Err != nil {
		return nil, r.Err
	}
	req = req.Normalize()
	dtos := make([]shops.ShopDTO, 0, len(r.rows))
	for _, dto := range r.rows {
		dtos = append(dtos, dto)
	}
	sort.Slice(dtos, func(i, j int) bool { return newestFirst(dtos[i].ID, dtos[j].ID) })
	items := make([]*shops.Shop, 0, req.PageSize)
	for _, dto := range pageSlice(dtos, req) {
		items = append(items, shops.RebuildShop(dto))
	}
	return shared.NewPage(items, req, int64(len(dtos))), nil
}

func (r *ShopRepository) FindBySlug(ctx context.Context, slug string) (*shops.Shop, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.Err != nil {
		return nil, r.Err
	}
	for _, dto := range r.rows {
		if dto.Slug == slug {
			return shops.RebuildShop(dto), nil
		}
	}
	return nil, nil
}

func (r *ShopRepository) Create(ctx context.Context, fields shops.ShopFields) (*shops.Shop, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	for _, dto := range r.rows {
		if dto.Slug == fields.Slug {
			return nil, shops.NewSlugTakenError(fields.Slug)
		}
	}
	r.seq++
	now := time.Now()
	dto := shops.ShopDTO{
		ID:         shared.FormatID(r.seq),
		Name:       fields.Name,
		Slug:       fields.Slug,
		OwnerEmail: fields.OwnerEmail,
		Active:     true,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	r.rows[dto.ID] = dto
	return shops.RebuildShop(dto), nil
}

func (r *ShopRepository) Update(ctx context.Context, id string, update shops.ShopUpdate) (*shops.Shop, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	dto, ok := r.rows[id]
	if !ok {
		return nil, nil
	}
	if update.Name != nil {
		dto.Name = *update.Name
	}
	if update.Active != nil {
		dto.Active = *update.Active
	}
	dto.UpdatedAt = time.Now()
	r.rows[id] = dto
	return shops.RebuildShop(dto), nil
}

func (r *ShopRepository) Delete(ctx context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return false, r.Err
	}
	if _, ok := r.rows[id]; !ok {
		return false, nil
	}
	delete(r.rows, id)
	return true, nil
}

var _ shops.Repository = (*ShopRepository)(nil)
