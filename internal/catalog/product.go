package catalog

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Category is the closed set of product categories.
type Category string

// Known categories.
const (
	CategoryElectronics Category = "electronics"
	CategoryClothing    Category = "clothing"
	CategoryFood        Category = "food"
	CategoryBooks       Category = "books"
)

// ParseCategory normalises a raw category value.
func ParseCategory(value string) (Category, error) {
	switch Category(strings.ToLower(strings.TrimSpace(value))) {
	case CategoryElectronics:
		return CategoryElectronics, nil
	case CategoryClothing:
		return CategoryClothing, nil
	case CategoryFood:
		return CategoryFood, nil
	case CategoryBooks:
		return CategoryBooks, nil
	default:
		return "", fmt.Errorf("catalog: unknown category %q", value)
	}
}

// Product is a catalog record. Products are never deleted; retirement happens
// through the Active flag.
type Product struct {
	ID       int64
	Name     string
	Price    decimal.Decimal
	Category Category
	Stock    int
	Active   bool
	Tags     []string
}

// InStock reports whether the product can currently be sold.
func (p Product) InStock() bool {
	return p.Stock > 0 && p.Active
}

func (p Product) matches(query string) bool {
	if strings.Contains(strings.ToLower(p.Name), query) {
		return true
	}
	for _, tag := range p.Tags {
		if strings.Contains(strings.ToLower(tag), query) {
			return true
		}
	}
	return false
}
