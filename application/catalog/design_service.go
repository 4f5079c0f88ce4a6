package catalog

import (
	"context"
	"time"

	"podmarket/domain/catalog"
	"podmarket/domain/shared"
	"podmarket/domain/shops"
)

// DesignService Design use cases of the catalog context.
type DesignService struct {
	designs catalog.DesignRepository
	shops   shops.Repository
}

func NewDesignService(designs catalog.DesignRepository, shopRepo shops.Repository) *DesignService {
	return &DesignService{designs: designs, shops: shopRepo}
}

type CreateDesignRequest struct {
	ShopID    string `json:"shop_id" binding:"required"`
	Title     string `json:"title" binding:"required"`
	ObjectKey string `json:"object_key" binding:"required"`
}

type DesignResponse struct {
	ID        string    `json:"id"`
	ShopID    string    `json:"shop_id"`
	Title     string    `json:"title"`
	ObjectKey string    `json:"object_key"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (s *DesignService) CreateDesign(ctx context.Context, req CreateDesignRequest) (*DesignResponse, error) {
	fields := catalog.DesignFields{
		ShopID:    req.ShopID,
		Title:     req.Title,
		ObjectKey: req.ObjectKey,
	}
	if err := fields.Validate(); err != nil {
		return nil, err
	}
	shop, err := s.shops.FindByID(ctx, fields.ShopID)
	if err != nil {
		return nil, err
	}
	if shop == nil {
		return nil, shops.NewShopNotFoundError(fields.ShopID)
	}
	d, err := s.designs.Create(ctx, fields)
	if err != nil {
		return nil, err
	}
	return toDesignResponse(d), nil
}

func (s *DesignService) GetDesign(ctx context.Context, designID string) (*DesignResponse, error) {
	d, err := s.designs.FindByID(ctx, designID)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, catalog.NewDesignNotFoundError(designID)
	}
	return toDesignResponse(d), nil
}

func (s *DesignService) ListDesigns(ctx context.Context, req shared.PageRequest) (*shared.Page[*DesignResponse], error) {
	page, err := s.designs.FindPage(ctx, req)
	if err != nil {
		return nil, err
	}
	items := make([]*DesignResponse, 0, len(page.Items))
	for _, d := range page.Items {
		items = append(items, toDesignResponse(d))
	}
	return &shared.Page[*DesignResponse]{
		Items:      items,
		Page:       page.Page,
		PageSize:   page.PageSize,
		TotalItems: page.TotalItems,
		TotalPages: page.TotalPages,
	}, nil
}

type UpdateDesignRequest struct {
	Title *string `json:"title"`
}

func (s *DesignService) UpdateDesign(ctx context.Context, designID string, req UpdateDesignRequest) (*DesignResponse, error) {
	update := catalog.DesignUpdate{Title: req.Title}
	if err := update.Validate(); err != nil {
		return nil, err
	}
	d, err := s.designs.Update(ctx, designID, update)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, catalog.NewDesignNotFoundError(designID)
	}
	return toDesignResponse(d), nil
}

func (s *DesignService) DeleteDesign(ctx context.Context, designID string) error {
	removed, err := s.designs.Delete(ctx, designID)
	if err != nil {
		return err
	}
	if !removed {
		return catalog.NewDesignNotFoundError(designID)
	}
	return nil
}

func toDesignResponse(d *catalog.Design) *DesignResponse {
	return &DesignResponse{
		ID:        d.ID(),
		ShopID:    d.ShopID(),
		Title:     d.Title(),
		ObjectKey: d.ObjectKey(),
		CreatedAt: d.CreatedAt(),
		UpdatedAt: d.UpdatedAt(),
	}
}
