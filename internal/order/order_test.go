package order

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rizalmf/backend-storefront/internal/config"
)

func testOrder(items ...Item) Order {
	return Order{
		ID:         "ord-1",
		CustomerID: 7,
		Items:      items,
		Status:     StatusPending,
		CreatedAt:  time.Date(2025, time.March, 15, 10, 30, 0, 0, time.UTC),
	}
}

func amount(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestOrderTotals(t *testing.T) {
	rules := config.DefaultPricing()
	o := testOrder(
		Item{ProductID: 1, Name: "Python Book", Qty: 1, UnitPrice: amount("39.99")},
		Item{ProductID: 2, Name: "Notebook", Qty: 1, UnitPrice: amount("25.01")},
	)

	if got := o.Subtotal().StringFixed(2); got != "65.00" {
		t.Fatalf("subtotal = %s, want 65.00", got)
	}
	if got := o.Tax(rules.TaxRate).StringFixed(2); got != "5.20" {
		t.Fatalf("tax = %s, want 5.20", got)
	}
	if got := o.Shipping(rules).StringFixed(2); got != "0.00" {
		t.Fatalf("shipping = %s, want 0.00", got)
	}
	if got := o.Total(rules).StringFixed(2); got != "70.20" {
		t.Fatalf("total = %s, want 70.20", got)
	}
}

func TestOrderTotalsBelowFreeShipping(t *testing.T) {
	rules := config.DefaultPricing()
	o := testOrder(Item{ProductID: 1, Name: "Notebook", Qty: 2, UnitPrice: amount("10.00")})

	if got := o.Shipping(rules).StringFixed(2); got != "5.99" {
		t.Fatalf("shipping = %s, want 5.99", got)
	}
	// 20.00 + 1.60 tax + 5.99 shipping
	if got := o.Total(rules).StringFixed(2); got != "27.59" {
		t.Fatalf("total = %s, want 27.59", got)
	}
}

func TestOrderTaxCustomRate(t *testing.T) {
	o := testOrder(Item{ProductID: 1, Name: "Notebook", Qty: 1, UnitPrice: amount("65.00")})

	if got := o.Tax(amount("0.10")).StringFixed(2); got != "6.50" {
		t.Fatalf("tax = %s, want 6.50", got)
	}
}

func TestSubtotalRoundsPerLine(t *testing.T) {
	o := testOrder(
		Item{ProductID: 1, Name: "A", Qty: 3, UnitPrice: amount("1.115")},
		Item{ProductID: 2, Name: "B", Qty: 3, UnitPrice: amount("1.115")},
	)

	// Each line is 3.345, rounded to 3.35 before summing. Summing raw and
	// rounding once would give 6.69.
	if got := o.Subtotal().StringFixed(2); got != "6.70" {
		t.Fatalf("subtotal = %s, want 6.70", got)
	}
}

func TestItemTotal(t *testing.T) {
	item := Item{ProductID: 1, Name: "Sticker", Qty: 5, UnitPrice: amount("7.03")}
	if got := item.Total().StringFixed(2); got != "35.15" {
		t.Fatalf("item total = %s, want 35.15", got)
	}
}

func TestCanCancel(t *testing.T) {
	cases := []struct {
		status Status
		want   bool
	}{
		{StatusPending, true},
		{StatusConfirmed, true},
		{StatusProcessing, true},
		{StatusShipped, false},
		{StatusInTransit, false},
		{StatusDelivered, false},
		{StatusCancelled, false},
		{StatusRefunded, false},
	}
	for _, tc := range cases {
		o := testOrder()
		o.Status = tc.status
		if got := o.CanCancel(); got != tc.want {
			t.Errorf("CanCancel(%s) = %v, want %v", tc.status, got, tc.want)
		}
	}
}

func TestStatusValid(t *testing.T) {
	for _, s := range []Status{StatusPending, StatusConfirmed, StatusProcessing, StatusShipped, StatusInTransit, StatusDelivered, StatusCancelled, StatusRefunded} {
		if !s.Valid() {
			t.Errorf("Valid(%s) = false", s)
		}
	}
	if Status("shipped").Valid() {
		t.Error("lowercase status should not be valid")
	}
	if Status("ARCHIVED").Valid() {
		t.Error("unknown status should not be valid")
	}
}
