package catalog

import (
	"context"
	"errors"
	"testing"

	"podmarket/domain/catalog"
	"podmarket/domain/shared"
	"podmarket/domain/shops"
	"podmarket/infrastructure/persistence/mocks"
)

func testShopFields(slug string) shops.ShopFields {
	return shops.ShopFields{
		Name:       "Test Shop",
		Slug:       slug,
		OwnerEmail: "owner@example.com",
	}
}

// newCatalogBus mirrors the production wiring: audit-style sync recording plus
// a deferred registration, so Publish also exercises the enqueue path.
func newCatalogBus(t *testing.T, queue shared.EventQueue, recorded *[]shared.EventEnvelope) *shared.EventBus {
	t.Helper()
	bus := shared.NewEventBus(queue)
	record := shared.NewFuncHandler("test.recorder", func(ctx context.Context, env shared.EventEnvelope) error {
		*recorded = append(*recorded, env)
		return nil
	})
	noop := shared.NewFuncHandler("test.deferred", func(ctx context.Context, env shared.EventEnvelope) error {
		return nil
	})
	for _, name := range []string{catalog.ProductCreatedEventName, catalog.ProductDeletedEventName} {
		if err := bus.Subscribe(name, record, shared.DeliverSync); err != nil {
			t.Fatalf("subscribe recorder to %s: %v", name, err)
		}
		if err := bus.Subscribe(name, noop, shared.DeliverDeferred); err != nil {
			t.Fatalf("subscribe deferred to %s: %v", name, err)
		}
	}
	bus.Seal()
	return bus
}

type productFixture struct {
	service  *ProductService
	products *mocks.ProductRepository
	designs  *mocks.DesignRepository
	shops    *mocks.ShopRepository
	queue    *mocks.EventQueue
	recorded []shared.EventEnvelope
	shopID   string
	designID string
}

func newProductFixture(t *testing.T) *productFixture {
	t.Helper()
	ctx := context.Background()
	f := &productFixture{
		products: mocks.NewProductRepository(),
		designs:  mocks.NewDesignRepository(),
		shops:    mocks.NewShopRepository(),
		queue:    mocks.NewEventQueue(),
	}
	bus := newCatalogBus(t, f.queue, &f.recorded)
	f.service = NewProductService(f.products, f.designs, f.shops, bus)

	shop, err := f.shops.Create(ctx, testShopFields("fixture-shop"))
	if err != nil {
		t.Fatalf("create shop: %v", err)
	}
	f.shopID = shop.ID()

	design, err := f.designs.Create(ctx, catalog.DesignFields{
		ShopID:    f.shopID,
		Title:     "Sunset",
		ObjectKey: "designs/sunset.png",
	})
	if err != nil {
		t.Fatalf("create design: %v", err)
	}
	f.designID = design.ID()
	return f
}

func (f *productFixture) createRequest() CreateProductRequest {
	return CreateProductRequest{
		ShopID:     f.shopID,
		DesignID:   f.designID,
		Title:      "Sunset Tee",
		Kind:       "tee",
		PriceCents: 2499,
		Currency:   "USD",
		Published:  true,
	}
}

func TestCreateProductCommitsThenPublishes(t *testing.T) {
	f := newProductFixture(t)
	ctx := context.Background()

	resp, err := f.service.CreateProduct(ctx, f.createRequest())
	if err != nil {
		t.Fatalf("CreateProduct: %v", err)
	}
	if resp.ID == "" {
		t.Fatal("response has no id")
	}

	if f.queue.Len() != 1 {
		t.Errorf("queue has %d envelopes, want 1", f.queue.Len())
	}
	if len(f.recorded) != 1 {
		t.Fatalf("recorded %d sync deliveries, want 1", len(f.recorded))
	}
	env := f.recorded[0]
	if env.Name != catalog.ProductCreatedEventName || env.AggregateID != resp.ID {
		t.Errorf("envelope = %+v", env)
	}

	var payload catalog.ProductCreatedPayload
	if err := env.DecodePayload(&payload); err != nil {
		t.Fatalf("DecodePayload: %v", err)
	}
	if payload.ShopID != f.shopID || payload.PriceCents != 2499 {
		t.Errorf("payload = %+v", payload)
	}
}

func TestCreateProductStorageFailurePublishesNothing(t *testing.T) {
	f := newProductFixture(t)
	f.products.Err = errors.New("connection refused")

	_, err := f.service.CreateProduct(context.Background(), f.createRequest())
	if err == nil {
		t.Fatal("expected storage failure")
	}
	if f.queue.Len() != 0 {
		t.Error("event enqueued for a write that never committed")
	}
	if len(f.recorded) != 0 {
		t.Error("sync handler ran for a write that never committed")
	}
}

func TestCreateProductRejectsClosedShop(t *testing.T) {
	f := newProductFixture(t)
	ctx := context.Background()

	inactive := false
	if _, err := f.shops.Update(ctx, f.shopID, shops.ShopUpdate{Active: &inactive}); err != nil {
		t.Fatalf("deactivate shop: %v", err)
	}

	_, err := f.service.CreateProduct(ctx, f.createRequest())
	if !errors.Is(err, shops.ErrShopClosed) {
		t.Fatalf("error = %v, want ErrShopClosed", err)
	}
	if f.queue.Len() != 0 || len(f.recorded) != 0 {
		t.Error("events published for rejected create")
	}
}

func TestCreateProductRejectsDesignOfAnotherShop(t *testing.T) {
	f := newProductFixture(t)
	ctx := context.Background()

	other, err := f.shops.Create(ctx, testShopFields("other-shop"))
	if err != nil {
		t.Fatalf("create shop: %v", err)
	}
	foreign, err := f.designs.Create(ctx, catalog.DesignFields{
		ShopID:    other.ID(),
		Title:     "Foreign",
		ObjectKey: "designs/foreign.png",
	})
	if err != nil {
		t.Fatalf("create design: %v", err)
	}

	req := f.createRequest()
	req.DesignID = foreign.ID()
	_, err = f.service.CreateProduct(ctx, req)
	if !errors.Is(err, shared.ErrInvalidInput) {
		t.Fatalf("error = %v, want ErrInvalidInput", err)
	}
}

func TestCreateProductUnknownShop(t *testing.T) {
	f := newProductFixture(t)
	req := f.createRequest()
	req.ShopID = "999999"

	_, err := f.service.CreateProduct(context.Background(), req)
	if !errors.Is(err, shared.ErrNotFound) {
		t.Fatalf("error = %v, want ErrNotFound", err)
	}
}

func TestCreateProductRejectsUnknownKind(t *testing.T) {
	f := newProductFixture(t)
	req := f.createRequest()
	req.Kind = "sticker"

	_, err := f.service.CreateProduct(context.Background(), req)
	if !errors.Is(err, shared.ErrInvalidInput) {
		t.Fatalf("error = %v, want ErrInvalidInput", err)
	}
}

func TestDeleteProductPublishesDeletedEvent(t *testing.T) {
	f := newProductFixture(t)
	ctx := context.Background()

	resp, err := f.service.CreateProduct(ctx, f.createRequest())
	if err != nil {
		t.Fatalf("CreateProduct: %v", err)
	}
	if err := f.service.DeleteProduct(ctx, resp.ID); err != nil {
		t.Fatalf("DeleteProduct: %v", err)
	}

	if len(f.recorded) != 2 {
		t.Fatalf("recorded %d deliveries, want created+deleted", len(f.recorded))
	}
	env := f.recorded[1]
	if env.Name != catalog.ProductDeletedEventName {
		t.Errorf("second event = %s", env.Name)
	}
	var payload catalog.ProductDeletedPayload
	if err := env.DecodePayload(&payload); err != nil {
		t.Fatalf("DecodePayload: %v", err)
	}
	if payload.ShopID != f.shopID || payload.ProductID != resp.ID {
		t.Errorf("payload = %+v", payload)
	}
}

func TestDeleteProductNotFound(t *testing.T) {
	f := newProductFixture(t)
	err := f.service.DeleteProduct(context.Background(), "31337")
	if !errors.Is(err, shared.ErrNotFound) {
		t.Fatalf("error = %v, want ErrNotFound", err)
	}
}

func TestUpdateProductNotFound(t *testing.T) {
	f := newProductFixture(t)
	title := "New Title"
	_, err := f.service.UpdateProduct(context.Background(), "31337", UpdateProductRequest{Title: &title})
	if !errors.Is(err, shared.ErrNotFound) {
		t.Fatalf("error = %v, want ErrNotFound", err)
	}
}

func TestGetProductResolvesReferences(t *testing.T) {
	f := newProductFixture(t)
	ctx := context.Background()

	resp, err := f.service.CreateProduct(ctx, f.createRequest())
	if err != nil {
		t.Fatalf("CreateProduct: %v", err)
	}

	view, err := f.service.GetProduct(ctx, resp.ID)
	if err != nil {
		t.Fatalf("GetProduct: %v", err)
	}
	if !view.Design.Resolved || view.Design.Title != "Sunset" {
		t.Errorf("design summary = %+v", view.Design)
	}
	if !view.Shop.Resolved || view.Shop.Slug != "fixture-shop" {
		t.Errorf("shop summary = %+v", view.Shop)
	}
}
