package orders

import (
	"errors"
	"testing"
	"time"

	"podmarket/domain/shared"
)

func rebuildTestOrder(status OrderStatus) *Order {
	return RebuildOrder(OrderDTO{
		ID:             "1",
		ProductID:      "10",
		BuyerEmail:     "buyer@example.com",
		Quantity:       3,
		UnitPriceCents: 1999,
		Currency:       "USD",
		Status:         status,
		CreatedAt:      time.Now(),
		UpdatedAt:      time.Now(),
	})
}

func TestOrderTotalIsSnapshotTimesQuantity(t *testing.T) {
	order := rebuildTestOrder(StatusNew)
	total := order.Total()
	if total.Amount() != 5997 {
		t.Errorf("total = %d, want 5997", total.Amount())
	}
	if total.Currency() != "USD" {
		t.Errorf("currency = %s", total.Currency())
	}
}

func TestOrderTransitions(t *testing.T) {
	cases := []struct {
		from    OrderStatus
		to      OrderStatus
		allowed bool
	}{
		{StatusNew, StatusPaid, true},
		{StatusNew, StatusCancelled, true},
		{StatusPaid, StatusCancelled, false},
		{StatusPaid, StatusPaid, false},
		{StatusCancelled, StatusPaid, false},
		{StatusCancelled, StatusNew, false},
		{StatusNew, StatusNew, false},
	}
	for _, tc := range cases {
		order := rebuildTestOrder(tc.from)
		if got := order.CanTransitionTo(tc.to); got != tc.allowed {
			t.Errorf("%s -> %s: allowed = %v, want %v", tc.from, tc.to, got, tc.allowed)
		}
	}
}

func TestOrderFieldsValidate(t *testing.T) {
	valid := OrderFields{
		ProductID:      "10",
		BuyerEmail:     "buyer@example.com",
		Quantity:       1,
		UnitPriceCents: 100,
		Currency:       "USD",
		Status:         StatusNew,
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("valid fields rejected: %v", err)
	}

	cases := []struct {
		name   string
		mutate func(*OrderFields)
	}{
		{"missing product", func(f *OrderFields) { f.ProductID = "" }},
		{"missing buyer", func(f *OrderFields) { f.BuyerEmail = "" }},
		{"zero quantity", func(f *OrderFields) { f.Quantity = 0 }},
		{"quantity over cap", func(f *OrderFields) { f.Quantity = 1001 }},
		{"free order", func(f *OrderFields) { f.UnitPriceCents = 0 }},
		{"bad status", func(f *OrderFields) { f.Status = OrderStatus("SHIPPED") }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := valid
			tc.mutate(&f)
			err := f.Validate()
			if err == nil {
				t.Fatal("invalid fields accepted")
			}
			if !errors.Is(err, shared.ErrInvalidInput) {
				t.Errorf("error is not ErrInvalidInput: %v", err)
			}
		})
	}
}
