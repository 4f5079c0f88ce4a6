package mocks

import (
	"context"
	"sort"
	"sync"
	"time"

	"podmarket/domain/catalog"
	"podmarket/domain/shared"
)

// ProductRepository 商品仓储的内存实现，用于应用层测试。
// 记录每个查询方法的调用次数，便于断言批量水合的查询上界。
type ProductRepository struct {
	mu   sync.RWMutex
	seq  uint64
	rows map[string]catalog.ProductDTO

	FindByIDCalls  int
	FindByIDsCalls int
	FindPageCalls  int

	// Err 非空时所有方法直接返回它，用于模拟存储故障
	Err error
}

func NewProductRepository() *ProductRepository {
	return &ProductRepository{rows: make(map[string]catalog.ProductDTO)}
}

func (r *ProductRepository) FindByID(ctx context.Context, id string) (*catalog.Product, error) {
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
	return catalog.RebuildProduct(dto), nil
}

func (r *ProductRepository) FindByIDs(ctx context.Context, ids []string) (map[string]*catalog.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.FindByIDsCalls++
	if r.Err != nil {
		return nil, r.Err
	}
	out := make(map[string]*catalog.Product, len(ids))
	for _, id := range ids {
		if dto, ok := r.rows[id]; ok {
			out[id] = catalog.RebuildProduct(dto)
		}
	}
	return out, nil
}

func (r *ProductRepository) FindPage(ctx context.Context, req shared.PageRequest) (*shared.Page[*catalog.Product], error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.FindPageCalls++
	if r.Err != nil {
		return nil, r.Err
	}
	req = req.Normalize()
	dtos := make([]catalog.ProductDTO, 0, len(r.rows))
	for _, dto := range r.rows {
		dtos = append(dtos, dto)
	}
	sort.Slice(dtos, func(i, j int) bool { return newestFirst(dtos[i].ID, dtos[j].ID) })
	items := make([]*catalog.Product, 0, req.PageSize)
	for _, dto := range pageSlice(dtos, req) {
		items = append(items, catalog.RebuildProduct(dto))
	}
	return shared.NewPage(items, req, int64(len(dtos))), nil
}

func (r *ProductRepository) Create(ctx context.Context, fields catalog.ProductFields) (*catalog.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	r.seq++
	now := time.Now()
	dto := catalog.ProductDTO{
		ID:         shared.FormatID(r.seq),
		ShopID:     fields.ShopID,
		DesignID:   fields.DesignID,
		Title:      fields.Title,
		Kind:       fields.Kind,
		PriceCents: fields.PriceCents,
		Currency:   fields.Currency,
		Published:  fields.Published,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	r.rows[dto.ID] = dto
	return catalog.RebuildProduct(dto), nil
}

func (r *ProductRepository) Update(ctx context.Context, id string, update catalog.ProductUpdate) (*catalog.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	dto, ok := r.rows[id]
	if !ok {
		return nil, nil
	}
	if update.Title != nil {
		dto.Title = *update.Title
	}
	if update.PriceCents != nil {
		dto.PriceCents = *update.PriceCents
	}
	if update.Currency != nil {
		dto.Currency = *update.Currency
	}
	if update.Published != nil {
		dto.Published = *update.Published
	}
	dto.UpdatedAt = time.Now()
	r.rows[id] = dto
	return catalog.RebuildProduct(dto), nil
}

func (r *ProductRepository) Delete(ctx context.Context, id string) (bool, error) {
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

var _ catalog.ProductRepository = (*ProductRepository)(nil)
