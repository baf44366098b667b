package catalog

import (
	"errors"
	"fmt"
	"strings"
	"sync"
)

// ErrNotFound indicates the requested product does not exist.
var ErrNotFound = errors.New("catalog: product not found")

// Store is an in-memory product catalog. Stock mutation goes through Reserve
// and Restock under a single lock so concurrent reservations cannot oversell.
type Store struct {
	mu       sync.RWMutex
	products map[int64]*Product
	order    []int64
}

// NewStore constructs an empty Store.
func NewStore() *Store {
	return &Store{products: make(map[int64]*Product)}
}

// Add inserts or replaces a product record.
func (s *Store) Add(p Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.products[p.ID]; !exists {
		s.order = append(s.order, p.ID)
	}
	stored := p
	stored.Tags = append([]string(nil), p.Tags...)
	s.products[p.ID] = &stored
}

// Get returns a copy of the product, if present.
func (s *Store) Get(id int64) (Product, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.products[id]
	if !ok {
		return Product{}, false
	}
	return copyProduct(p), true
}

// All returns every product in insertion order.
func (s *Store) All() []Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.collect(func(*Product) bool { return true })
}

// CheckAvailability reports whether the product exists, is sellable, and has
// at least qty units in stock.
func (s *Store) CheckAvailability(id int64, qty int) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.products[id]
	if !ok {
		return false
	}
	return p.InStock() && p.Stock >= qty
}

// Reserve decrements stock by qty if the full quantity is available. The
// check and the decrement happen under one lock; a failed reservation leaves
// stock untouched.
func (s *Store) Reserve(id int64, qty int) bool {
	if qty <= 0 {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.products[id]
	if !ok || !p.InStock() || p.Stock < qty {
		return false
	}
	p.Stock -= qty
	return true
}

// Restock increments stock by qty and returns the new level.
func (s *Store) Restock(id int64, qty int) (int, error) {
	if qty < 0 {
		return 0, fmt.Errorf("catalog: restock quantity must not be negative: %d", qty)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.products[id]
	if !ok {
		return 0, fmt.Errorf("product %d: %w", id, ErrNotFound)
	}
	p.Stock += qty
	return p.Stock, nil
}

// Search matches the query case-insensitively against product names and tags.
// Inactive products are excluded. Query-length policy belongs to the caller.
func (s *Store) Search(query string) []Product {
	q := strings.ToLower(strings.TrimSpace(query))
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.collect(func(p *Product) bool {
		return p.Active && p.matches(q)
	})
}

// LowStock returns active products with stock strictly below threshold.
func (s *Store) LowStock(threshold int) []Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.collect(func(p *Product) bool {
		return p.Active && p.Stock < threshold
	})
}

// ByCategory returns active products in the given category.
func (s *Store) ByCategory(category Category) []Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.collect(func(p *Product) bool {
		return p.Active && p.Category == category
	})
}

// SellableProducts returns every product that is currently in stock.
func (s *Store) SellableProducts() []Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.collect(func(p *Product) bool {
		return p.InStock()
	})
}

// collect must be called with at least the read lock held.
func (s *Store) collect(keep func(*Product) bool) []Product {
	result := make([]Product, 0, len(s.order))
	for _, id := range s.order {
		p := s.products[id]
		if keep(p) {
			result = append(result, copyProduct(p))
		}
	}
	return result
}

func copyProduct(p *Product) Product {
	out := *p
	out.Tags = append([]string(nil), p.Tags...)
	return out
}
