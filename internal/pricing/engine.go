package pricing

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/rizalmf/backend-storefront/internal/catalog"
	"github.com/rizalmf/backend-storefront/internal/config"
	"github.com/rizalmf/backend-storefront/internal/customer"
	"github.com/rizalmf/backend-storefront/internal/discount"
	"github.com/rizalmf/backend-storefront/internal/money"
)

// CatalogReader is the slice of the catalog store the engine needs. Quoting
// is a dry run: it reads availability but never mutates stock.
type CatalogReader interface {
	Get(id int64) (catalog.Product, bool)
	CheckAvailability(id int64, qty int) bool
}

// Line is one requested cart entry.
type Line struct {
	ProductID int64 `json:"productId" validate:"required"`
	Qty       int   `json:"qty" validate:"required,gt=0"`
}

// LineItem is a priced cart line. LineTotal is already discounted and rounded.
type LineItem struct {
	ProductID int64           `json:"productId"`
	Name      string          `json:"name"`
	Qty       int             `json:"qty"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	LineTotal decimal.Decimal `json:"lineTotal"`
}

// Summary is the full rounded breakdown of a priced cart. It is produced
// fresh per quote and never mutated afterwards.
type Summary struct {
	Items    []LineItem      `json:"items"`
	Subtotal decimal.Decimal `json:"subtotal"`
	Shipping decimal.Decimal `json:"shipping"`
	Tax      decimal.Decimal `json:"tax"`
	Total    decimal.Decimal `json:"total"`
	Discount decimal.Decimal `json:"discount"`
	Currency string          `json:"currency"`
}

// NotFoundError reports a cart line referencing an unknown product.
type NotFoundError struct {
	ProductID int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("pricing: product %d not found", e.ProductID)
}

// InsufficientStockError reports a line requesting more than is available.
type InsufficientStockError struct {
	ProductName string
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("pricing: insufficient stock for %s", e.ProductName)
}

// Engine composes the catalog and the discount policy into cart quotes.
type Engine struct {
	Catalog  CatalogReader
	Discount discount.Policy
	Rules    config.Pricing
}

// NewEngine constructs an Engine sharing one set of pricing constants.
func NewEngine(reader CatalogReader, rules config.Pricing) (*Engine, error) {
	if reader == nil {
		return nil, errors.New("pricing: catalog reader is required")
	}
	return &Engine{Catalog: reader, Discount: discount.NewPolicy(rules), Rules: rules}, nil
}

// Quote prices the requested lines for an optional customer. The first
// unresolvable or unavailable line aborts the whole quote; a cart that is
// partly priced and partly rejected is not a usable checkout input.
func (e *Engine) Quote(lines []Line, cust *customer.Customer) (Summary, error) {
	tier := 0
	if cust != nil {
		tier = cust.DiscountTier
	}

	items := make([]LineItem, 0, len(lines))
	subtotal := money.Zero
	totalDiscount := money.Zero
	for _, line := range lines {
		product, ok := e.Catalog.Get(line.ProductID)
		if !ok {
			return Summary{}, &NotFoundError{ProductID: line.ProductID}
		}
		if !e.Catalog.CheckAvailability(line.ProductID, line.Qty) {
			return Summary{}, &InsufficientStockError{ProductName: product.Name}
		}

		fullPrice := product.Price.Mul(decimal.NewFromInt(int64(line.Qty)))
		fraction := e.Discount.Line(line.Qty, tier)
		lineTotal, err := discount.Apply(fullPrice, fraction)
		if err != nil {
			return Summary{}, fmt.Errorf("price line %d: %w", line.ProductID, err)
		}

		// Each line is rounded before it joins the subtotal; summing raw
		// amounts and rounding once produces different cents.
		subtotal = subtotal.Add(lineTotal)
		totalDiscount = totalDiscount.Add(fullPrice.Sub(lineTotal))
		items = append(items, LineItem{
			ProductID: product.ID,
			Name:      product.Name,
			Qty:       line.Qty,
			UnitPrice: product.Price,
			LineTotal: lineTotal,
		})
	}

	subtotal = money.Round2(subtotal)
	shipping := money.Zero
	if len(items) > 0 {
		shipping = ShippingFor(subtotal, e.Rules)
	}
	tax := money.Round2(subtotal.Mul(e.Rules.TaxRate))
	total := money.Round2(subtotal.Add(shipping).Add(tax))

	return Summary{
		Items:    items,
		Subtotal: subtotal,
		Shipping: shipping,
		Tax:      tax,
		Total:    total,
		Discount: money.Round2(totalDiscount),
		Currency: e.Rules.Currency,
	}, nil
}

// ShippingFor applies the flat-fee/free-threshold rule. The threshold is
// inclusive: a subtotal exactly at the minimum ships free.
func ShippingFor(subtotal decimal.Decimal, rules config.Pricing) decimal.Decimal {
	if subtotal.GreaterThanOrEqual(rules.FreeShippingMin) {
		return money.Zero
	}
	return rules.ShippingFlatFee
}
