package mocks

import (
	"context"
	"sort"
	"sync"
	"time"

	"podmarket/domain/catalog"
	"podmarket/domain/shared"
)

// DesignRepository 设计稿仓储的内存实现
type DesignRepository struct {
	mu   sync.RWMutex
	seq  uint64
	rows map[string]catalog.DesignDTO

	FindByIDCalls  int
	FindByIDsCalls int
	FindPageCalls  int

	Err error
}

func NewDesignRepository() *DesignRepository {
	return &DesignRepository{rows: make(map[string]catalog.DesignDTO)}
}

func (r *DesignRepository) FindByID(ctx context.Context, id string) (*catalog.Design, error) {
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
	return catalog.RebuildDesign(dto), nil
}

func (r *DesignRepository) FindByIDs(ctx context.Context, ids []string) (map[string]*catalog.Design, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.FindByIDsCalls++
	if r.Err != nil {
		return nil, r.Err
	}
	out := make(map[string]*catalog.Design, len(ids))
	for _, id := range ids {
		if dto, ok := r.rows[id]; ok {
			out[id] = catalog.RebuildDesign(dto)
		}
	}
	return out, nil
}

func (r *DesignRepository) FindPage(ctx context.Context, req shared.PageRequest) (*shared.Page[*catalog.Design], error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.FindPageCalls++
	if r.Err != nil {
		return nil, r.Err
	}
	req = req.Normalize()
	dtos := make([]catalog.DesignDTO, 0, len(r.rows))
	for _, dto := range r.rows {
		dtos = append(dtos, dto)
	}
	sort.Slice(dtos, func(i, j int) bool { return newestFirst(dtos[i].ID, dtos[j].ID) })
	items := make([]*catalog.Design, 0, req.PageSize)
	for _, dto := range pageSlice(dtos, req) {
		items = append(items, catalog.RebuildDesign(dto))
	}
	return shared.NewPage(items, req, int64(len(dtos))), nil
}

func (r *DesignRepository) Create(ctx context.Context, fields catalog.DesignFields) (*catalog.Design, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	r.seq++
	now := time.Now()
	dto := catalog.DesignDTO{
		ID:        shared.FormatID(r.seq),
		ShopID:    fields.ShopID,
		Title:     fields.Title,
		ObjectKey: fields.ObjectKey,
		CreatedAt: now,
		UpdatedAt: now,
	}
	r.rows[dto.ID] = dto
	return catalog.RebuildDesign(dto), nil
}

func (r *DesignRepository) Update(ctx context.Context, id string, update catalog.DesignUpdate) (*catalog.Design, error) {
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
	dto.UpdatedAt = time.Now()
	r.rows[id] = dto
	return catalog.RebuildDesign(dto), nil
}

func (r *DesignRepository) Delete(ctx context.Context, id string) (bool, error) {
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

var _ catalog.DesignRepository = (*DesignRepository)(nil)
