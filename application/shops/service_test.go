package shops

import (
	"context"
	"errors"
	"testing"

	"podmarket/domain/shared"
	"podmarket/domain/shops"
	"podmarket/infrastructure/persistence/mocks"
)

type shopFixture struct {
	service  *Service
	repo     *mocks.ShopRepository
	recorded []shared.EventEnvelope
}

func newShopFixture(t *testing.T) *shopFixture {
	t.Helper()
	f := &shopFixture{repo: mocks.NewShopRepository()}

	bus := shared.NewEventBus(mocks.NewEventQueue())
	record := shared.NewFuncHandler("test.recorder", func(ctx context.Context, env shared.EventEnvelope) error {
		f.recorded = append(f.recorded, env)
		return nil
	})
	if err := bus.Subscribe(shops.ShopCreatedEventName, record, shared.DeliverSync); err != nil {
		t.Fatalf("subscribe: %v", err)
	}
	bus.Seal()

	f.service = NewService(f.repo, bus)
	return f
}

func createRequest(slug string) CreateShopRequest {
	return CreateShopRequest{
		Name:       "Sunset Prints",
		Slug:       slug,
		OwnerEmail: "owner@example.com",
	}
}

func TestCreateShopPublishesCreatedEvent(t *testing.T) {
	f := newShopFixture(t)

	resp, err := f.service.CreateShop(context.Background(), createRequest("sunset-prints"))
	if err != nil {
		t.Fatalf("CreateShop: %v", err)
	}
	if !resp.Active {
		t.Error("new shop is not active")
	}

	if len(f.recorded) != 1 {
		t.Fatalf("recorded %d deliveries, want 1", len(f.recorded))
	}
	var payload shops.ShopCreatedPayload
	if err := f.recorded[0].DecodePayload(&payload); err != nil {
		t.Fatalf("DecodePayload: %v", err)
	}
	if payload.ShopID != resp.ID || payload.Slug != "sunset-prints" {
		t.Errorf("payload = %+v", payload)
	}
}

func TestCreateShopDuplicateSlug(t *testing.T) {
	f := newShopFixture(t)
	ctx := context.Background()

	if _, err := f.service.CreateShop(ctx, createRequest("sunset-prints")); err != nil {
		t.Fatalf("first CreateShop: %v", err)
	}
	_, err := f.service.CreateShop(ctx, createRequest("sunset-prints"))
	if !errors.Is(err, shops.ErrSlugTaken) {
		t.Fatalf("error = %v, want ErrSlugTaken", err)
	}
	// 第二次创建失败，不得发布第二个事件
	if len(f.recorded) != 1 {
		t.Errorf("recorded %d deliveries, want 1", len(f.recorded))
	}
}

func TestCreateShopRejectsBadSlug(t *testing.T) {
	f := newShopFixture(t)
	for _, slug := range []string{"", "Has Spaces", "UPPER", "trailing-", "-leading", "dots.not.allowed"} {
		_, err := f.service.CreateShop(context.Background(), createRequest(slug))
		if !errors.Is(err, shared.ErrInvalidInput) {
			t.Errorf("slug %q: error = %v, want ErrInvalidInput", slug, err)
		}
	}
}

func TestGetShopBySlug(t *testing.T) {
	f := newShopFixture(t)
	ctx := context.Background()

	created, err := f.service.CreateShop(ctx, createRequest("sunset-prints"))
	if err != nil {
		t.Fatalf("CreateShop: %v", err)
	}

	found, err := f.service.GetShopBySlug(ctx, "sunset-prints")
	if err != nil {
		t.Fatalf("GetShopBySlug: %v", err)
	}
	if found.ID != created.ID {
		t.Errorf("found shop %s, want %s", found.ID, created.ID)
	}

	if _, err := f.service.GetShopBySlug(ctx, "no-such-shop"); !errors.Is(err, shared.ErrNotFound) {
		t.Errorf("missing slug: error = %v, want ErrNotFound", err)
	}
}

func TestUpdateShopDeactivates(t *testing.T) {
	f := newShopFixture(t)
	ctx := context.Background()

	created, err := f.service.CreateShop(ctx, createRequest("sunset-prints"))
	if err != nil {
		t.Fatalf("CreateShop: %v", err)
	}

	inactive := false
	updated, err := f.service.UpdateShop(ctx, created.ID, UpdateShopRequest{Active: &inactive})
	if err != nil {
		t.Fatalf("UpdateShop: %v", err)
	}
	if updated.Active {
		t.Error("shop still active after deactivation")
	}
}

func TestDeleteShopNotFound(t *testing.T) {
	f := newShopFixture(t)
	if err := f.service.DeleteShop(context.Background(), "31337"); !errors.Is(err, shared.ErrNotFound) {
		t.Fatalf("error = %v, want ErrNotFound", err)
	}
}
