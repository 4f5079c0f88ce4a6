package mocks

import (
	"context"
	"sort"
	"sync"
	"time"

	"podmarket/domain/orders"
	"podmarket/domain/shared"
)

// OrderRepository 订单仓储的内存实现
type OrderRepository struct {
	mu   sync.RWMutex
	seq  uint64
	rows map[string]orders.OrderDTO

	FindByIDCalls  int
	FindByIDsCalls int
	FindPageCalls  int

	Err error
}

func NewOrderRepository() *OrderRepository {
	return &OrderRepository{rows: make(map[string]orders.OrderDTO)}
}

func (r *OrderRepository) FindByID(ctx context.Context, id string) (*orders.Order, error) {
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
	return orders.RebuildOrder(dto), nil
}

func (r *OrderRepository) FindByIDs(ctx context.Context, ids []string) (map[string]*orders.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.FindByIDsCalls++
	if r.Err != nil {
		return nil, r.Err
	}
	out := make(map[string]*orders.Order, len(ids))
	for _, id := range ids {
		if dto, ok := r.rows[id]; ok {
			out[id] = orders.RebuildOrder(dto)
		}
	}
	return out, nil
}

func (r *OrderRepository) FindPage(ctx context.Context, req shared.PageRequest) (*shared.Page[*orders.Order], error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.FindPageCalls++
	if r.Err != nil {
		return nil, r.Err
	}
	req = req.Normalize()
	dtos := make([]orders.OrderDTO, 0, len(r.rows))
	for _, dto := range r.rows {
		dtos = append(dtos, dto)
	}
	sort.Slice(dtos, func(i, j int) bool { return newestFirst(dtos[i].ID, dtos[j].ID) })
	items := make([]*orders.Order, 0, req.PageSize)
	for _, dto := range pageSlice(dtos, req) {
		items = append(items, orders.RebuildOrder(dto))
	}
	return shared.NewPage(items, req, int64(len(dtos))), nil
}

func (r *OrderRepository) Create(ctx context.Context, fields orders.OrderFields) (*orders.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	r.seq++
	now := time.Now()
	dto := orders.OrderDTO{
		ID:             shared.FormatID(r.seq),
		ProductID:      fields.ProductID,
		BuyerEmail:     fields.BuyerEmail,
		Quantity:       fields.Quantity,
		UnitPriceCents: fields.UnitPriceCents,
		Currency:       fields.Currency,
		Status:         fields.Status,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	r.rows[dto.ID] = dto
	return orders.RebuildOrder(dto), nil
}

func (r *OrderRepository) Update(ctx context.Context, id string, update orders.OrderUpdate) (*orders.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	dto, ok := r.rows[id]
	if !ok {
		return nil, nil
	}
	if update.Status != nil {
		dto.Status = *update.Status
	}
	dto.UpdatedAt = time.Now()
	r.rows[id] = dto
	return orders.RebuildOrder(dto), nil
}

func (r *OrderRepository) Delete(ctx context.Context, id string) (bool, error) {
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

var _ orders.Repository = (*OrderRepository)(nil)
