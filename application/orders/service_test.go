package orders

import (
	"context"
	"errors"
	"testing"

	"podmarket/domain/catalog"
	"podmarket/domain/orders"
	"podmarket/domain/shared"
	"podmarket/infrastructure/persistence/mocks"
)

type orderFixture struct {
	service  *Service
	orders   *mocks.OrderRepository
	products *mocks.ProductRepository
	queue    *mocks.EventQueue
	recorded []shared.EventEnvelope
}

func newOrderFixture(t *testing.T) *orderFixture {
	t.Helper()
	f := &orderFixture{
		orders:   mocks.NewOrderRepository(),
		products: mocks.NewProductRepository(),
		queue:    mocks.NewEventQueue(),
	}

	bus := shared.NewEventBus(f.queue)
	record := shared.NewFuncHandler("test.recorder", func(ctx context.Context, env shared.EventEnvelope) error {
		f.recorded = append(f.recorded, env)
		return nil
	})
	noop := shared.NewFuncHandler("test.deferred", func(ctx context.Context, env shared.EventEnvelope) error {
		return nil
	})
	for _, name := range []string{orders.OrderPlacedEventName, orders.OrderCancelledEventName} {
		if err := bus.Subscribe(name, record, shared.DeliverSync); err != nil {
			t.Fatalf("subscribe recorder: %v", err)
		}
	}
	if err := bus.Subscribe(orders.OrderPlacedEventName, noop, shared.DeliverDeferred); err != nil {
		t.Fatalf("subscribe deferred: %v", err)
	}
	bus.Seal()

	f.service = NewService(f.orders, f.products, bus)
	return f
}

func (f *orderFixture) seedProduct(t *testing.T, published bool, priceCents int64) *catalog.Product {
	t.Helper()
	p, err := f.products.Create(context.Background(), catalog.ProductFields{
		ShopID:     "7",
		DesignID:   "3",
		Title:      "Sunset Tee",
		Kind:       catalog.KindTee,
		PriceCents: priceCents,
		Currency:   "USD",
		Published:  published,
	})
	if err != nil {
		t.Fatalf("seed product: %v", err)
	}
	return p
}

func TestPlaceOrderSnapshotsPrice(t *testing.T) {
	f := newOrderFixture(t)
	ctx := context.Background()
	product := f.seedProduct(t, true, 1999)

	resp, err := f.service.PlaceOrder(ctx, PlaceOrderRequest{
		ProductID:  product.ID(),
		BuyerEmail: "buyer@example.com",
		Quantity:   3,
	})
	if err != nil {
		t.Fatalf("PlaceOrder: %v", err)
	}
	if resp.UnitPriceCents != 1999 || resp.TotalCents != 5997 {
		t.Errorf("price snapshot = %d total %d", resp.UnitPriceCents, resp.TotalCents)
	}
	if resp.Status != string(orders.StatusNew) {
		t.Errorf("status = %s", resp.Status)
	}

	// later price change must not touch the committed order
	newPrice := int64(9999)
	if _, err := f.products.Update(ctx, product.ID(), catalog.ProductUpdate{PriceCents: &newPrice}); err != nil {
		t.Fatalf("update product: %v", err)
	}
	view, err := f.service.GetOrder(ctx, resp.ID)
	if err != nil {
		t.Fatalf("GetOrder: %v", err)
	}
	if view.Order.UnitPriceCents != 1999 {
		t.Errorf("order price drifted to %d after product update", view.Order.UnitPriceCents)
	}
}

func TestPlaceOrderEventCarriesShopAndTotal(t *testing.T) {
	f := newOrderFixture(t)
	product := f.seedProduct(t, true, 500)

	resp, err := f.service.PlaceOrder(context.Background(), PlaceOrderRequest{
		ProductID:  product.ID(),
		BuyerEmail: "buyer@example.com",
		Quantity:   4,
	})
	if err != nil {
		t.Fatalf("PlaceOrder: %v", err)
	}

	if f.queue.Len() != 1 {
		t.Fatalf("queue has %d envelopes, want 1", f.queue.Len())
	}
	if len(f.recorded) != 1 {
		t.Fatalf("recorded %d deliveries", len(f.recorded))
	}

	var payload orders.OrderPlacedPayload
	if err := f.recorded[0].DecodePayload(&payload); err != nil {
		t.Fatalf("DecodePayload: %v", err)
	}
	if payload.OrderID != resp.ID || payload.ShopID != "7" || payload.TotalCents != 2000 {
		t.Errorf("payload = %+v", payload)
	}
}

func TestPlaceOrderRejectsUnpublishedProduct(t *testing.T) {
	f := newOrderFixture(t)
	product := f.seedProduct(t, false, 1999)

	_, err := f.service.PlaceOrder(context.Background(), PlaceOrderRequest{
		ProductID:  product.ID(),
		BuyerEmail: "buyer@example.com",
		Quantity:   1,
	})
	if !errors.Is(err, orders.ErrProductUnavailable) {
		t.Fatalf("error = %v, want ErrProductUnavailable", err)
	}
	if f.queue.Len() != 0 {
		t.Error("event enqueued for rejected order")
	}
}

func TestPlaceOrderUnknownProduct(t *testing.T) {
	f := newOrderFixture(t)
	_, err := f.service.PlaceOrder(context.Background(), PlaceOrderRequest{
		ProductID:  "31337",
		BuyerEmail: "buyer@example.com",
		Quantity:   1,
	})
	if !errors.Is(err, shared.ErrNotFound) {
		t.Fatalf("error = %v, want ErrNotFound", err)
	}
}

func TestPlaceOrderStorageFailurePublishesNothing(t *testing.T) {
	f := newOrderFixture(t)
	product := f.seedProduct(t, true, 1999)
	f.orders.Err = errors.New("deadlock found when trying to get lock")

	_, err := f.service.PlaceOrder(context.Background(), PlaceOrderRequest{
		ProductID:  product.ID(),
		BuyerEmail: "buyer@example.com",
		Quantity:   1,
	})
	if err == nil {
		t.Fatal("expected storage failure")
	}
	if f.queue.Len() != 0 || len(f.recorded) != 0 {
		t.Error("events published for a write that never committed")
	}
}

func TestPayOrderTransition(t *testing.T) {
	f := newOrderFixture(t)
	ctx := context.Background()
	product := f.seedProduct(t, true, 1000)

	placed, err := f.service.PlaceOrder(ctx, PlaceOrderRequest{
		ProductID:  product.ID(),
		BuyerEmail: "buyer@example.com",
		Quantity:   1,
	})
	if err != nil {
		t.Fatalf("PlaceOrder: %v", err)
	}

	paid, err := f.service.PayOrder(ctx, placed.ID)
	if err != nil {
		t.Fatalf("PayOrder: %v", err)
	}
	if paid.Status != string(orders.StatusPaid) {
		t.Errorf("status = %s", paid.Status)
	}

	// a paid order can neither be paid again nor cancelled
	if _, err := f.service.PayOrder(ctx, placed.ID); !errors.Is(err, orders.ErrInvalidTransition) {
		t.Errorf("second pay: %v", err)
	}
	if _, err := f.service.CancelOrder(ctx, placed.ID); !errors.Is(err, orders.ErrInvalidTransition) {
		t.Errorf("cancel after pay: %v", err)
	}
}

func TestCancelOrderPublishesCancelledEvent(t *testing.T) {
	f := newOrderFixture(t)
	ctx := context.Background()
	product := f.seedProduct(t, true, 1000)

	placed, err := f.service.PlaceOrder(ctx, PlaceOrderRequest{
		ProductID:  product.ID(),
		BuyerEmail: "buyer@example.com",
		Quantity:   2,
	})
	if err != nil {
		t.Fatalf("PlaceOrder: %v", err)
	}

	cancelled, err := f.service.CancelOrder(ctx, placed.ID)
	if err != nil {
		t.Fatalf("CancelOrder: %v", err)
	}
	if cancelled.Status != string(orders.StatusCancelled) {
		t.Errorf("status = %s", cancelled.Status)
	}

	if len(f.recorded) != 2 {
		t.Fatalf("recorded %d deliveries, want placed+cancelled", len(f.recorded))
	}
	if f.recorded[1].Name != orders.OrderCancelledEventName {
		t.Errorf("second event = %s", f.recorded[1].Name)
	}
}

func TestTransitionUnknownOrder(t *testing.T) {
	f := newOrderFixture(t)
	if _, err := f.service.PayOrder(context.Background(), "31337"); !errors.Is(err, shared.ErrNotFound) {
		t.Fatalf("error = %v, want ErrNotFound", err)
	}
}

func TestListOrdersHydratesWithSingleProductQuery(t *testing.T) {
	f := newOrderFixture(t)
	ctx := context.Background()
	product := f.seedProduct(t, true, 1000)

	for i := 0; i < 5; i++ {
		if _, err := f.service.PlaceOrder(ctx, PlaceOrderRequest{
			ProductID:  product.ID(),
			BuyerEmail: "buyer@example.com",
			Quantity:   1,
		}); err != nil {
			t.Fatalf("PlaceOrder %d: %v", i, err)
		}
	}

	before := f.products.FindByIDsCalls
	page, err := f.service.ListOrders(ctx, shared.PageRequest{Page: 1, PageSize: 24})
	if err != nil {
		t.Fatalf("ListOrders: %v", err)
	}
	if len(page.Items) != 5 {
		t.Fatalf("got %d orders", len(page.Items))
	}
	if f.products.FindByIDsCalls != before+1 {
		t.Errorf("product FindByIDs called %d extra times, want 1", f.products.FindByIDsCalls-before)
	}
	for _, v := range page.Items {
		if !v.Product.Resolved || v.Product.Title != "Sunset Tee" {
			t.Errorf("product summary = %+v", v.Product)
		}
	}
}
