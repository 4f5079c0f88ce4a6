package catalog

import (
	"context"
	"fmt"
	"testing"
	"time"

	"podmarket/domain/catalog"
	"podmarket/domain/shared"
	"podmarket/infrastructure/persistence/mocks"
)

func seedShopAndDesigns(t *testing.T, shopRepo *mocks.ShopRepository, designRepo *mocks.DesignRepository, designCount int) (string, []string) {
	t.Helper()
	ctx := context.Background()

	shop, err := shopRepo.Create(ctx, testShopFields("hydrator-shop"))
	if err != nil {
		t.Fatalf("create shop: %v", err)
	}

	designIDs := make([]string, 0, designCount)
	for i := 0; i < designCount; i++ {
		design, err := designRepo.Create(ctx, catalog.DesignFields{
			ShopID:    shop.ID(),
			Title:     fmt.Sprintf("Design %d", i),
			ObjectKey: fmt.Sprintf("designs/%d.png", i),
		})
		if err != nil {
			t.Fatalf("create design: %v", err)
		}
		designIDs = append(designIDs, design.ID())
	}
	return shop.ID(), designIDs
}

func rebuildProduct(id, shopID, designID string) *catalog.Product {
	return catalog.RebuildProduct(catalog.ProductDTO{
		ID:         id,
		ShopID:     shopID,
		DesignID:   designID,
		Title:      "Tee " + id,
		Kind:       catalog.KindTee,
		PriceCents: 1999,
		Currency:   "USD",
		Published:  true,
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
	})
}

func TestHydrateUsesOneQueryPerReferencedType(t *testing.T) {
	shopRepo := mocks.NewShopRepository()
	designRepo := mocks.NewDesignRepository()
	shopID, designIDs := seedShopAndDesigns(t, shopRepo, designRepo, 3)

	// 一整页 24 个商品，引用同一家店铺和 3 个设计稿
	products := make([]*catalog.Product, 0, 24)
	for i := 0; i < 24; i++ {
		products = append(products, rebuildProduct(shared.FormatID(uint64(i+1)), shopID, designIDs[i%3]))
	}

	hydrator := NewProductHydrator(designRepo, shopRepo)
	views, err := hydrator.Hydrate(context.Background(), products)
	if err != nil {
		t.Fatalf("Hydrate: %v", err)
	}

	if designRepo.FindByIDsCalls != 1 {
		t.Errorf("design FindByIDs called %d times, want exactly 1", designRepo.FindByIDsCalls)
	}
	if shopRepo.FindByIDsCalls != 1 {
		t.Errorf("shop FindByIDs called %d times, want exactly 1", shopRepo.FindByIDsCalls)
	}
	if designRepo.FindByIDCalls != 0 || shopRepo.FindByIDCalls != 0 {
		t.Error("hydrator fell back to per-item FindByID")
	}

	if len(views) != len(products) {
		t.Fatalf("got %d views for %d products", len(views), len(products))
	}
	for i, v := range views {
		if v.Product.ID != products[i].ID() {
			t.Fatalf("view %d out of order: %s", i, v.Product.ID)
		}
		if !v.Design.Resolved || !v.Shop.Resolved {
			t.Errorf("view %d has unresolved references", i)
		}
	}
}

func TestHydrateMarksDanglingReferences(t *testing.T) {
	shopRepo := mocks.NewShopRepository()
	designRepo := mocks.NewDesignRepository()
	shopID, designIDs := seedShopAndDesigns(t, shopRepo, designRepo, 1)

	products := []*catalog.Product{
		rebuildProduct("1", shopID, designIDs[0]),
		// design row deleted after the product was listed
		rebuildProduct("2", shopID, "424242"),
	}

	hydrator := NewProductHydrator(designRepo, shopRepo)
	views, err := hydrator.Hydrate(context.Background(), products)
	if err != nil {
		t.Fatalf("Hydrate: %v", err)
	}

	if !views[0].Design.Resolved {
		t.Error("existing design reported unresolved")
	}
	missing := views[1].Design
	if missing.Resolved {
		t.Error("dangling design reported resolved")
	}
	if missing.ID != "424242" {
		t.Errorf("dangling reference lost its id: %q", missing.ID)
	}
	if missing.Title != "" || missing.ObjectKey != "" {
		t.Errorf("dangling summary carries fabricated data: %+v", missing)
	}
}

func TestHydrateDeduplicatesReferenceIDs(t *testing.T) {
	shopRepo := mocks.NewShopRepository()
	designRepo := mocks.NewDesignRepository()
	shopID, designIDs := seedShopAndDesigns(t, shopRepo, designRepo, 1)

	// 同一个 design 被引用 10 次，批量查询的 id 列表必须去重
	products := make([]*catalog.Product, 0, 10)
	for i := 0; i < 10; i++ {
		products = append(products, rebuildProduct(shared.FormatID(uint64(i+1)), shopID, designIDs[0]))
	}

	hydrator := NewProductHydrator(designRepo, shopRepo)
	if _, err := hydrator.Hydrate(context.Background(), products); err != nil {
		t.Fatalf("Hydrate: %v", err)
	}
	if designRepo.FindByIDsCalls != 1 {
		t.Errorf("design FindByIDs called %d times, want 1", designRepo.FindByIDsCalls)
	}
}

func TestHydrateEmptyInputSkipsAllQueries(t *testing.T) {
	shopRepo := mocks.NewShopRepository()
	designRepo := mocks.NewDesignRepository()

	hydrator := NewProductHydrator(designRepo, shopRepo)
	views, err := hydrator.Hydrate(context.Background(), nil)
	if err != nil {
		t.Fatalf("Hydrate: %v", err)
	}
	if len(views) != 0 {
		t.Errorf("got %d views from empty input", len(views))
	}
	if designRepo.FindByIDsCalls != 0 || shopRepo.FindByIDsCalls != 0 {
		t.Error("hydrator queried repositories for an empty page")
	}
}

func TestHydratePagePreservesMetadata(t *testing.T) {
	shopRepo := mocks.NewShopRepository()
	designRepo := mocks.NewDesignRepository()
	shopID, designIDs := seedShopAndDesigns(t, shopRepo, designRepo, 1)

	req := shared.PageRequest{Page: 2, PageSize: 24}.Normalize()
	page := shared.NewPage([]*catalog.Product{rebuildProduct("25", shopID, designIDs[0])}, req, 25)

	hydrator := NewProductHydrator(designRepo, shopRepo)
	hydrated, err := hydrator.HydratePage(context.Background(), page)
	if err != nil {
		t.Fatalf("HydratePage: %v", err)
	}
	if hydrated.Page != 2 || hydrated.PageSize != 24 || hydrated.TotalItems != 25 || hydrated.TotalPages != 2 {
		t.Errorf("metadata = %+v", hydrated)
	}
}
