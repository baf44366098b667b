package order

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/rizalmf/backend-storefront/internal/config"
	"github.com/rizalmf/backend-storefront/internal/money"
)

// Status is the closed set of order states. Serialized values use
// UPPER_SNAKE casing; terminal states persist as history.
type Status string

// Order statuses in lifecycle order.
const (
	StatusPending    Status = "PENDING"
	StatusConfirmed  Status = "CONFIRMED"
	StatusProcessing Status = "PROCESSING"
	StatusShipped    Status = "SHIPPED"
	StatusInTransit  Status = "IN_TRANSIT"
	StatusDelivered  Status = "DELIVERED"
	StatusCancelled  Status = "CANCELLED"
	StatusRefunded   Status = "REFUNDED"
)

// Valid reports whether the status belongs to the closed set.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusProcessing, StatusShipped,
		StatusInTransit, StatusDelivered, StatusCancelled, StatusRefunded:
		return true
	}
	return false
}

// Item is a frozen order line. UnitPrice is snapshotted at order time; later
// catalog price changes must not move historical totals.
type Item struct {
	ProductID int64           `json:"productId"`
	Name      string          `json:"name"`
	Qty       int             `json:"qty"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
}

// Total returns the rounded line amount.
func (i Item) Total() decimal.Decimal {
	return money.Round2(i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Qty))))
}

// Order is a placed order. Only status transitions mutate it.
type Order struct {
	ID              string    `json:"id"`
	CustomerID      int64     `json:"customerId"`
	Items           []Item    `json:"items"`
	Status          Status    `json:"status"`
	CreatedAt       time.Time `json:"createdAt"`
	ShippingAddress string    `json:"shippingAddress,omitempty"`
}

// Subtotal sums the individually rounded line totals, the same rounding order
// the cart quote engine uses.
func (o Order) Subtotal() decimal.Decimal {
	sum := money.Zero
	for _, item := range o.Items {
		sum = sum.Add(item.Total())
	}
	return money.Round2(sum)
}

// Tax returns the rounded tax amount for the given rate.
func (o Order) Tax(rate decimal.Decimal) decimal.Decimal {
	return money.Round2(o.Subtotal().Mul(rate))
}

// Shipping applies the shared flat-fee/free-threshold rule to the order.
func (o Order) Shipping(rules config.Pricing) decimal.Decimal {
	if o.Subtotal().GreaterThanOrEqual(rules.FreeShippingMin) {
		return money.Zero
	}
	return rules.ShippingFlatFee
}

// Total combines subtotal, tax, and shipping under one set of constants.
func (o Order) Total(rules config.Pricing) decimal.Decimal {
	return money.Round2(o.Subtotal().Add(o.Tax(rules.TaxRate)).Add(o.Shipping(rules)))
}

// CanCancel reports whether the order may still be cancelled. Once the order
// ships, or reaches a terminal state, cancellation is no longer possible.
func (o Order) CanCancel() bool {
	switch o.Status {
	case StatusPending, StatusConfirmed, StatusProcessing:
		return true
	}
	return false
}
